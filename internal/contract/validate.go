package contract

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/pkg/models"
	"github.com/xeipuuv/gojsonschema"
)

// ValidateResume parses and checks a sanitized candidate against the Resume
// contract. List fields that are missing or null become empty lists, entry
// ids are regenerated as <kind>-<position>, and blank or repeated bullets
// are dropped within each experience entry.
func ValidateResume(candidate string) (*models.GeneratedResume, error) {
	var resume models.GeneratedResume
	if err := Resume.decode(candidate, &resume); err != nil {
		return nil, err
	}

	NormalizeResume(&resume)
	return &resume, nil
}

// ValidateResumeDocument checks an already-parsed document, such as a merged
// user update, against the Resume contract
func ValidateResumeDocument(doc map[string]interface{}) (*models.GeneratedResume, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, &SchemaError{Kind: InvalidJSON, Contract: Resume.Name, Detail: err.Error()}
	}
	return ValidateResume(string(raw))
}

// ValidateATS parses and checks a sanitized candidate against the ATS
// contract. The score is rounded to the nearest integer.
func ValidateATS(candidate string) (*models.ATSResult, error) {
	var decoded struct {
		Score           float64  `json:"score"`
		MissingKeywords []string `json:"missing_keywords"`
		MatchedKeywords []string `json:"matched_keywords"`
		Strengths       []string `json:"strengths"`
		Improvements    []string `json:"improvements"`
	}
	if err := ATS.decode(candidate, &decoded); err != nil {
		return nil, err
	}

	return &models.ATSResult{
		Score:           int(math.Round(decoded.Score)),
		MissingKeywords: nonNil(decoded.MissingKeywords),
		MatchedKeywords: nonNil(decoded.MatchedKeywords),
		Strengths:       nonNil(decoded.Strengths),
		Improvements:    nonNil(decoded.Improvements),
	}, nil
}

// decode parses candidate, fills list defaults, validates against the
// contract's JSON Schema and unmarshals into out
func (c *Contract) decode(candidate string, out interface{}) error {
	var parsed interface{}
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return &SchemaError{Kind: InvalidJSON, Contract: c.Name, Raw: candidate, Detail: err.Error()}
	}

	doc, ok := parsed.(map[string]interface{})
	if !ok {
		return &SchemaError{
			Kind:     SchemaViolation,
			Contract: c.Name,
			Raw:      candidate,
			Detail:   fmt.Sprintf("top level must be an object, got %s", jsonType(parsed)),
		}
	}

	fillListDefaults(doc, c.Fields)

	schema, err := c.compiledSchema()
	if err != nil {
		return fmt.Errorf("failed to compile %s schema: %w", c.Name, err)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return &SchemaError{Kind: SchemaViolation, Contract: c.Name, Raw: candidate, Detail: err.Error()}
	}
	if !result.Valid() {
		violations := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			violations = append(violations, e.String())
		}
		return &SchemaError{
			Kind:       SchemaViolation,
			Contract:   c.Name,
			Raw:        candidate,
			Detail:     strings.Join(violations, "; "),
			Violations: violations,
		}
	}

	normalized, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to re-encode %s document: %w", c.Name, err)
	}
	if err := json.Unmarshal(normalized, out); err != nil {
		return &SchemaError{Kind: SchemaViolation, Contract: c.Name, Raw: candidate, Detail: err.Error()}
	}
	return nil
}

// fillListDefaults replaces missing or null list fields with empty lists,
// recursing into object list items and dropping their ids
func fillListDefaults(doc map[string]interface{}, fields []Field) {
	for _, f := range fields {
		switch f.Kind {
		case StringList, ObjectList:
			if v, ok := doc[f.Name]; !ok || v == nil {
				doc[f.Name] = []interface{}{}
			}
		}

		if f.Kind != ObjectList {
			continue
		}
		items, ok := doc[f.Name].([]interface{})
		if !ok {
			continue
		}
		for _, item := range items {
			if obj, ok := item.(map[string]interface{}); ok {
				// ids are regenerated from position, whatever type arrived
				delete(obj, "id")
				fillListDefaults(obj, f.Fields)
			}
		}
	}
}

// NormalizeResume assigns positional ids and cleans experience bullets. It is
// idempotent.
func NormalizeResume(r *models.GeneratedResume) {
	r.Education = nonNilSlice(r.Education)
	r.Experience = nonNilSlice(r.Experience)
	r.Projects = nonNilSlice(r.Projects)
	r.TechStack = nonNil(r.TechStack)
	r.Frameworks = nonNil(r.Frameworks)
	r.Libraries = nonNil(r.Libraries)
	r.ProgrammingLanguages = nonNil(r.ProgrammingLanguages)

	for i := range r.Education {
		r.Education[i].ID = positionalID("edu", i)
	}
	for i := range r.Experience {
		r.Experience[i].ID = positionalID("exp", i)
		r.Experience[i].Description = dedupeBullets(r.Experience[i].Description)
	}
	for i := range r.Projects {
		r.Projects[i].ID = positionalID("proj", i)
	}
}

func positionalID(kind string, index int) string {
	return fmt.Sprintf("%s-%d", kind, index+1)
}

// dedupeBullets keeps the first occurrence of each bullet, comparing trimmed text
func dedupeBullets(bullets []string) []string {
	seen := make(map[string]struct{}, len(bullets))
	out := make([]string, 0, len(bullets))
	for _, b := range bullets {
		b = strings.TrimSpace(b)
		if b == "" {
			continue
		}
		if _, dup := seen[b]; dup {
			continue
		}
		seen[b] = struct{}{}
		out = append(out, b)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func jsonType(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case []interface{}:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
