// Package prompt turns a profile and a job description into the instruction
// prompts sent to the generation endpoint.
package prompt

import (
	"fmt"
	"strings"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/pkg/models"
)

// Placeholders used when a profile section has no entries
const (
	NoSkills     = "No specific skills listed"
	NoExperience = "No work experience listed"
	NoProjects   = "No projects listed"
	NoEducation  = "No education listed"
)

// Sections are the plain-text renderings of a profile
type Sections struct {
	Skills     string
	Experience string
	Projects   string
	Education  string
}

// FormatProfile renders every profile section. Empty sections render their
// placeholder and missing optional fields render as empty segments.
func FormatProfile(p models.Profile) Sections {
	return Sections{
		Skills:     FormatSkills(p),
		Experience: FormatExperience(p.Experience),
		Projects:   FormatProjects(p.Projects),
		Education:  FormatEducation(p.Education),
	}
}

func FormatSkills(p models.Profile) string {
	var lines []string
	if len(p.ProgrammingLanguages) > 0 {
		lines = append(lines, "Programming Languages: "+strings.Join(p.ProgrammingLanguages, ", "))
	}
	if len(p.Frameworks) > 0 {
		lines = append(lines, "Frameworks: "+strings.Join(p.Frameworks, ", "))
	}
	if len(p.Libraries) > 0 {
		lines = append(lines, "Libraries: "+strings.Join(p.Libraries, ", "))
	}

	if len(lines) == 0 {
		return NoSkills
	}
	return strings.Join(lines, "\n")
}

func FormatExperience(entries []models.Experience) string {
	if len(entries) == 0 {
		return NoExperience
	}

	blocks := make([]string, 0, len(entries))
	for _, e := range entries {
		var b strings.Builder
		fmt.Fprintf(&b, "%s at %s (%s - %s)", e.Position, e.Company, e.StartDate, orPresent(e.EndDate))
		for _, bullet := range e.Description {
			b.WriteString("\n  • " + bullet)
		}
		if len(e.Skills) > 0 {
			b.WriteString("\n  Skills: " + strings.Join(e.Skills, ", "))
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}

func FormatProjects(entries []models.Project) string {
	if len(entries) == 0 {
		return NoProjects
	}

	blocks := make([]string, 0, len(entries))
	for _, p := range entries {
		var b strings.Builder
		b.WriteString(p.Name)
		if p.URL != "" {
			b.WriteString(" (" + p.URL + ")")
		}
		if p.Event != "" {
			b.WriteString("\n  Event: " + p.Event)
		}
		if len(p.Technologies) > 0 {
			b.WriteString("\n  Technologies: " + strings.Join(p.Technologies, ", "))
		}
		if p.Description != "" {
			b.WriteString("\n  " + p.Description)
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}

func FormatEducation(entries []models.Education) string {
	if len(entries) == 0 {
		return NoEducation
	}

	blocks := make([]string, 0, len(entries))
	for _, e := range entries {
		var b strings.Builder
		b.WriteString(e.School)
		if e.Degree != "" {
			b.WriteString("\n  " + e.Degree)
		}
		if e.Field != "" {
			b.WriteString(" in " + e.Field)
		}
		// the end date always defaults to Present, so the period is always shown
		fmt.Fprintf(&b, " (%s - %s)", e.StartDate, orPresent(e.EndDate))
		if e.GPA != "" {
			b.WriteString("\n  GPA: " + e.GPA)
		}
		if len(e.Courses) > 0 {
			b.WriteString("\n  Courses: " + strings.Join(e.Courses, ", "))
		}
		if len(e.Clubs) > 0 {
			b.WriteString("\n  Clubs: " + strings.Join(e.Clubs, ", "))
		}
		if len(e.Awards) > 0 {
			b.WriteString("\n  Awards: " + strings.Join(e.Awards, ", "))
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}

func orPresent(end string) string {
	if strings.TrimSpace(end) == "" {
		return "Present"
	}
	return end
}
