// Package contract defines the JSON documents the generation endpoint must
// return. A single definition drives both the schema block embedded in
// prompts and the validator applied to responses.
package contract

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

type FieldKind int

const (
	String FieldKind = iota
	Number
	StringList
	ObjectList
)

// Field is one key of a contract document
type Field struct {
	Name     string
	Kind     FieldKind
	Required bool

	// Example is the placeholder shown in the prompt. For Number fields it is
	// emitted unquoted; for StringList fields Examples is used instead.
	Example  string
	Examples []string

	// ObjectList only
	IDKind string
	Fields []Field

	// Number only
	Min, Max float64
}

// Contract is an ordered set of top-level fields
type Contract struct {
	Name   string
	Fields []Field

	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
}

func itemField(name string) Field {
	return Field{Name: name, Kind: String, Example: "string"}
}

// Resume is the tailored resume document
var Resume = &Contract{
	Name: "resume",
	Fields: []Field{
		{Name: "header", Kind: String, Required: true, Example: "Full Name | Email"},
		{Name: "summary", Kind: String, Required: true, Example: "2-3 sentence professional summary tailored to the job description"},
		{Name: "education", Kind: ObjectList, IDKind: "edu", Fields: []Field{
			itemField("school"), itemField("degree"), itemField("field"), itemField("startDate"), itemField("endDate"),
		}},
		{Name: "experience", Kind: ObjectList, IDKind: "exp", Fields: []Field{
			itemField("company"), itemField("position"), itemField("startDate"), itemField("endDate"),
			{Name: "description", Kind: StringList, Examples: []string{
				"Achievement-focused bullet using metrics where possible",
				"Each bullet must be a single sentence",
			}},
		}},
		{Name: "projects", Kind: ObjectList, IDKind: "proj", Fields: []Field{
			itemField("name"),
			{Name: "description", Kind: String, Example: "1-2 sentence description emphasizing relevance to the job"},
		}},
		{Name: "techStack", Kind: StringList, Examples: []string{"tools, platforms, systems"}},
		{Name: "frameworks", Kind: StringList, Examples: []string{"frameworks only"}},
		{Name: "libraries", Kind: StringList, Examples: []string{"libraries only"}},
		{Name: "programmingLanguages", Kind: StringList, Examples: []string{"programming languages only"}},
	},
}

// ATS is the applicant-tracking-system analysis document
var ATS = &Contract{
	Name: "ats",
	Fields: []Field{
		{Name: "score", Kind: Number, Required: true, Example: "integer between 0 and 100", Min: 0, Max: 100},
		{Name: "missing_keywords", Kind: StringList, Examples: []string{"important keyword from the job that is missing"}},
		{Name: "matched_keywords", Kind: StringList, Examples: []string{"keyword that matches well"}},
		{Name: "strengths", Kind: StringList, Examples: []string{"strong point of the resume"}},
		{Name: "improvements", Kind: StringList, Examples: []string{"specific suggestion to improve the ATS score"}},
	},
}

// Example renders the document skeleton shown to the generator
func (c *Contract) Example() string {
	var b strings.Builder
	writeObject(&b, c.Fields, "", "")
	return b.String()
}

func writeObject(b *strings.Builder, fields []Field, idKind, indent string) {
	inner := indent + "  "
	b.WriteString("{\n")

	lines := make([]string, 0, len(fields)+1)
	if idKind != "" {
		lines = append(lines, inner+quote("id")+": "+quote(idKind+"-1"))
	}
	for _, f := range fields {
		var line strings.Builder
		line.WriteString(inner + quote(f.Name) + ": ")
		switch f.Kind {
		case String:
			line.WriteString(quote(f.Example))
		case Number:
			line.WriteString(f.Example)
		case StringList:
			writeStringList(&line, f.Examples, inner)
		case ObjectList:
			line.WriteString("[\n" + inner + "  ")
			writeObject(&line, f.Fields, f.IDKind, inner+"  ")
			line.WriteString("\n" + inner + "]")
		}
		lines = append(lines, line.String())
	}

	b.WriteString(strings.Join(lines, ",\n"))
	b.WriteString("\n" + indent + "}")
}

func writeStringList(b *strings.Builder, examples []string, indent string) {
	if len(examples) <= 1 {
		b.WriteString("[")
		if len(examples) == 1 {
			b.WriteString(quote(examples[0]))
		}
		b.WriteString("]")
		return
	}

	b.WriteString("[\n")
	for i, e := range examples {
		b.WriteString(indent + "  " + quote(e))
		if i < len(examples)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(indent + "]")
}

func quote(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}

// JSONSchema returns the draft-04 JSON Schema equivalent of the contract
func (c *Contract) JSONSchema() map[string]interface{} {
	return objectSchema(c.Fields, false)
}

func objectSchema(fields []Field, nullable bool) map[string]interface{} {
	properties := make(map[string]interface{}, len(fields))
	required := []interface{}{}

	for _, f := range fields {
		properties[f.Name] = fieldSchema(f, nullable)
		if f.Required {
			required = append(required, f.Name)
		}
	}

	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// fieldSchema describes one field. Scalars inside list items may be null;
// the generator commonly emits null for an unknown end date.
func fieldSchema(f Field, nullable bool) map[string]interface{} {
	scalar := func(t string) interface{} {
		if nullable {
			return []interface{}{t, "null"}
		}
		return t
	}

	switch f.Kind {
	case Number:
		return map[string]interface{}{"type": scalar("number"), "minimum": f.Min, "maximum": f.Max}
	case StringList:
		return map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}}
	case ObjectList:
		return map[string]interface{}{"type": "array", "items": objectSchema(f.Fields, true)}
	default:
		return map[string]interface{}{"type": scalar("string")}
	}
}

func (c *Contract) compiledSchema() (*gojsonschema.Schema, error) {
	c.schemaOnce.Do(func() {
		c.schema, c.schemaErr = gojsonschema.NewSchema(gojsonschema.NewGoLoader(c.JSONSchema()))
	})
	return c.schema, c.schemaErr
}
