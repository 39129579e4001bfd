package models

import "time"

// Job represents a job posting the user is applying to
type Job struct {
	ID          int64      `json:"id"`
	UserID      string     `json:"userId"`
	Company     string     `json:"company"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location,omitempty"`
	Link        string     `json:"link,omitempty"`
	PostedAt    *time.Time `json:"postedAt,omitempty"`
	TechStack   []string   `json:"techStack"`
	SalaryMin   *int       `json:"salaryMin,omitempty"`
	SalaryMax   *int       `json:"salaryMax,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
