package prompt

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/contract"
)

const banner = "======================"

var promptFuncs = template.FuncMap{
	"section": func(title string) string {
		return banner + "\n" + title + "\n" + banner
	},
}

var resumeTemplate = template.Must(template.New("resume").Funcs(promptFuncs).Parse(`You are an automated resume-structuring engine inside a production system.

Your task is to transform a master resume into a job-tailored structured resume object.

You MUST follow all rules EXACTLY.

{{section "INPUT DATA"}}

CANDIDATE PROFILE:
Name: {{.Name}}
Email: {{.Email}}

SKILLS:
{{.Sections.Skills}}

WORK EXPERIENCE:
{{.Sections.Experience}}

PROJECTS:
{{.Sections.Projects}}

EDUCATION:
{{.Sections.Education}}

JOB DESCRIPTION:
{{.JobDescription}}

{{section "TASK"}}

Analyze the job description and select, reorder, and emphasize the most relevant information from the candidate profile.

You are NOT allowed to invent any information. Every technology, company, school and fact in the output must appear in the candidate profile above.

You must restructure the resume into a machine-readable JSON object.

{{section "CRITICAL OUTPUT RULES"}}

YOU MUST RETURN VALID JSON ONLY.

DO NOT:

- Do NOT include explanations
- Do NOT include markdown
- Do NOT include backticks or code fences
- Do NOT include comments
- Do NOT include trailing commas
- Do NOT include extra fields
- Do NOT include natural language outside the JSON object
- Do NOT invent technologies, employers, dates or achievements

You MAY reorder and reword existing content.

{{section "REQUIRED JSON SCHEMA"}}

You MUST return exactly this JSON structure:

{{.Schema}}

{{section "NORMALIZATION RULES"}}

1. Reorder experience and projects by relevance to the job
2. Prioritize technical skills mentioned in the job description
3. Use strong action verbs
4. Do NOT repeat identical bullets
5. IDs must be stable strings like "exp-1", "proj-2", etc.

{{section "FINAL INSTRUCTION"}}

Return ONLY the JSON object.
Nothing else.

Begin.
`))

var atsTemplate = template.Must(template.New("ats").Parse(`You are an Applicant Tracking System (ATS) analyzer.

Analyze how well this resume matches the job description.

Return STRICT JSON only, with no prose and no code fences, using this exact structure:

{{.Schema}}

RESUME:
{{.Resume}}

JOB DESCRIPTION:
{{.JobDescription}}
`))

// BuildResumePrompt assembles the resume tailoring prompt. The job
// description is embedded verbatim and the schema block comes from the
// resume contract the validator enforces.
func BuildResumePrompt(sections Sections, name, email, jobDescription string) (string, error) {
	if strings.TrimSpace(name) == "" {
		name = "Candidate"
	}

	var buf bytes.Buffer
	err := resumeTemplate.Execute(&buf, struct {
		Name           string
		Email          string
		Sections       Sections
		JobDescription string
		Schema         string
	}{
		Name:           name,
		Email:          email,
		Sections:       sections,
		JobDescription: jobDescription,
		Schema:         contract.Resume.Example(),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// BuildATSPrompt assembles the ATS analysis prompt for an already-encoded resume
func BuildATSPrompt(resumeJSON, jobDescription string) (string, error) {
	var buf bytes.Buffer
	err := atsTemplate.Execute(&buf, struct {
		Schema         string
		Resume         string
		JobDescription string
	}{
		Schema:         contract.ATS.Example(),
		Resume:         resumeJSON,
		JobDescription: jobDescription,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
