package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Profile is a user's master professional data, the ground truth for resume generation
type Profile struct {
	UserID               string       `json:"userId,omitempty"`
	Name                 string       `json:"name" validate:"required"`
	Email                string       `json:"email" validate:"omitempty,email"`
	Location             string       `json:"location,omitempty"`
	ProgrammingLanguages []string     `json:"programmingLanguages"`
	Frameworks           []string     `json:"frameworks"`
	Libraries            []string     `json:"libraries"`
	Experience           []Experience `json:"experience" validate:"dive"`
	Projects             []Project    `json:"projects" validate:"dive"`
	Education            []Education  `json:"education" validate:"dive"`
	UpdatedAt            time.Time    `json:"updatedAt,omitempty"`
}

// Experience is one work entry of a profile
type Experience struct {
	Company     string   `json:"company" validate:"required"`
	Position    string   `json:"position" validate:"required"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Location    string   `json:"location,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	Description Bullets  `json:"description"`
}

type Project struct {
	Name         string   `json:"name" validate:"required"`
	URL          string   `json:"url,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Event        string   `json:"event,omitempty"`
	Description  string   `json:"description"`
}

type Education struct {
	School    string   `json:"school" validate:"required"`
	Degree    string   `json:"degree"`
	Field     string   `json:"field"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	GPA       string   `json:"gpa,omitempty"`
	Courses   []string `json:"courses,omitempty"`
	Clubs     []string `json:"clubs,omitempty"`
	Awards    []string `json:"awards,omitempty"`
}

// Bullets is a description that arrives either as a list of strings or as one
// free-text string. A single string becomes a one-bullet list.
type Bullets []string

func (b *Bullets) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*b = nil
		return nil
	}

	if strings.HasPrefix(trimmed, "\"") {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			*b = nil
			return nil
		}
		*b = Bullets{s}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("description must be a string or a list of strings: %w", err)
	}
	*b = list
	return nil
}
