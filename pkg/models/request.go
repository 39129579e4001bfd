package models

import "time"

// ApplicationParams carries the :id path parameter of the resume routes
type ApplicationParams struct {
	ID    string `param:"id" validate:"required,job_id"`
	Theme string `query:"theme" validate:"omitempty,theme"`
}

// CreateJobRequest represents the request payload for storing a job posting.
// DescriptionHTML, when set, is converted to text and takes the place of Description.
type CreateJobRequest struct {
	Company         string     `json:"company" validate:"required"`
	Title           string     `json:"title" validate:"required"`
	Description     string     `json:"description"`
	DescriptionHTML string     `json:"description_html,omitempty"`
	Location        string     `json:"location,omitempty"`
	Link            string     `json:"link,omitempty" validate:"omitempty,url"`
	PostedAt        *time.Time `json:"postedAt,omitempty"`
	TechStack       []string   `json:"techStack,omitempty"`
	SalaryMin       *int       `json:"salaryMin,omitempty" validate:"omitempty,min=0"`
	SalaryMax       *int       `json:"salaryMax,omitempty" validate:"omitempty,min=0"`
}

// ImportJobRequest asks the service to fetch a posting from a URL and store it as a job
type ImportJobRequest struct {
	URL      string `json:"url" validate:"required,url"`
	Company  string `json:"company" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Location string `json:"location,omitempty"`
}

// ExportResumeRequest selects the theme used when exporting a resume to the bucket
type ExportResumeRequest struct {
	Theme string `json:"theme" validate:"omitempty,theme"`
}
