package models

import "time"

// GeneratedResume is the structured, job-tailored resume produced by the generation pipeline
type GeneratedResume struct {
	Header               string             `json:"header"`
	Summary              string             `json:"summary"`
	Education            []ResumeEducation  `json:"education"`
	Experience           []ResumeExperience `json:"experience"`
	Projects             []ResumeProject    `json:"projects"`
	TechStack            []string           `json:"techStack"`
	Frameworks           []string           `json:"frameworks"`
	Libraries            []string           `json:"libraries"`
	ProgrammingLanguages []string           `json:"programmingLanguages"`
}

type ResumeEducation struct {
	ID        string `json:"id"`
	School    string `json:"school"`
	Degree    string `json:"degree"`
	Field     string `json:"field"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type ResumeExperience struct {
	ID          string   `json:"id"`
	Company     string   `json:"company"`
	Position    string   `json:"position"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Description []string `json:"description"`
}

type ResumeProject struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// StoredResume is the persisted resume of a job; one per job, replaced on every build
type StoredResume struct {
	ID        int64           `json:"id"`
	JobID     int64           `json:"jobId"`
	Data      GeneratedResume `json:"data"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ResumeResponse flattens the resume data next to its storage id and job id
type ResumeResponse struct {
	ID            int64 `json:"id"`
	ApplicationID int64 `json:"applicationId"`
	GeneratedResume
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewResumeResponse converts a stored resume into its API representation
func NewResumeResponse(r *StoredResume) ResumeResponse {
	return ResumeResponse{
		ID:              r.ID,
		ApplicationID:   r.JobID,
		GeneratedResume: r.Data,
		UpdatedAt:       r.UpdatedAt,
	}
}

// ATSResult is the simulated applicant-tracking-system analysis of a resume against a job
type ATSResult struct {
	Score           int      `json:"score"`
	MissingKeywords []string `json:"missing_keywords"`
	MatchedKeywords []string `json:"matched_keywords"`
	Strengths       []string `json:"strengths"`
	Improvements    []string `json:"improvements"`
}

// Generation kinds and outcomes recorded in the audit log
const (
	GenerationKindResume = "resume"
	GenerationKindATS    = "ats"

	GenerationOutcomeOK            = "ok"
	GenerationOutcomeUpstreamError = "upstream_error"
	GenerationOutcomeSchemaError   = "schema_error"
)

// GenerationRecord is one audited call to the generation endpoint
type GenerationRecord struct {
	ID          string    `json:"id"`
	JobID       int64     `json:"jobId"`
	Kind        string    `json:"kind"`
	Provider    string    `json:"provider"`
	Model       string    `json:"model"`
	PromptChars int       `json:"prompt_chars"`
	Raw         string    `json:"raw,omitempty"`
	Outcome     string    `json:"outcome"`
	Error       string    `json:"error,omitempty"`
	DurationMS  int64     `json:"duration_ms"`
	CreatedAt   time.Time `json:"created_at"`
}
