package latex

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/pkg/models"
)

// Engine renders resume data into LaTeX using named themes. Rendering is pure:
// no I/O and the same resume always yields the same source.
type Engine struct {
	tmpl *template.Template
}

func NewEngine() *Engine {
	funcMap := template.FuncMap{
		"escape":  Escape,
		"escJoin": escJoin,
	}
	return &Engine{tmpl: template.Must(template.New("resume").Funcs(funcMap).Parse(resumeTemplate))}
}

// ===== Theme selection =====

const (
	DefaultTheme = "DEFAULT_THEME"
	CompactTheme = "COMPACT"
)

var ErrUnknownTheme = errors.New("unknown theme")

// Theme holds the page parameters a theme changes; content and section order never change
type Theme struct {
	FontSize string
	Margin   string
	Spacing  string
}

var themes = map[string]Theme{
	DefaultTheme: {FontSize: "11pt", Margin: "0.75in", Spacing: "10pt"},
	CompactTheme: {FontSize: "10pt", Margin: "0.5in", Spacing: "6pt"},
}

func getTheme(theme string) (Theme, error) {
	name := strings.ToUpper(strings.TrimSpace(theme))
	if name == "" {
		name = DefaultTheme
	}
	t, ok := themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("%w: %s", ErrUnknownTheme, theme)
	}
	return t, nil
}

// ValidTheme reports whether name selects a theme; empty means the default
func ValidTheme(name string) bool {
	_, err := getTheme(name)
	return err == nil
}

// Themes lists the supported theme names
func Themes() []string {
	return []string{DefaultTheme, CompactTheme}
}

// ===== Rendering =====

type viewModel struct {
	Theme  Theme
	Resume models.GeneratedResume
}

// HasSkills reports whether the Technical Skills section has any content
func (vm viewModel) HasSkills() bool {
	r := vm.Resume
	return len(r.ProgrammingLanguages) > 0 || len(r.Frameworks) > 0 || len(r.Libraries) > 0 || len(r.TechStack) > 0
}

// Render takes a generated resume and theme name, and returns LaTeX content as string
func (e *Engine) Render(resume models.GeneratedResume, theme string) (string, error) {
	t, err := getTheme(theme)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, viewModel{Theme: t, Resume: resume}); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// RenderToSource renders with the default theme
func (e *Engine) RenderToSource(resume models.GeneratedResume) (string, error) {
	return e.Render(resume, DefaultTheme)
}

// Sections: header, summary, Education, Experience, Projects, Technical Skills.
// Empty sections are left out and entries keep their given order.
const resumeTemplate = `\documentclass[{{ .Theme.FontSize }},letterpaper]{article}

\usepackage[utf8]{inputenc}
\usepackage[T1]{fontenc}
\usepackage[margin={{ .Theme.Margin }}]{geometry}
\usepackage{titlesec}
\usepackage{enumitem}
\usepackage{hyperref}

\pagestyle{empty}
\setlist{nosep, leftmargin=*}
\titleformat{\section}{\large\bfseries}{}{0em}{}[\titlerule]
\titlespacing{\section}{0pt}{ {{- .Theme.Spacing -}} }{5pt}

\begin{document}

\begin{center}
\textbf{ {{- escape .Resume.Header -}} }
\end{center}
{{ with .Resume.Summary }}
\noindent {{ escape . }}
{{ end }}
{{- if .Resume.Education }}
\section*{Education}
{{- range .Resume.Education }}
\textbf{ {{- escape .School -}} } \hfill {{ escape .StartDate }} -- {{ escape .EndDate }}\\
{{ escape .Degree }}{{ if and .Degree .Field }} in {{ end }}{{ escape .Field }}\\
{{ end }}
{{- end }}
{{- if .Resume.Experience }}
\section*{Experience}
{{- range .Resume.Experience }}
\textbf{ {{- escape .Position -}} } \hfill {{ escape .StartDate }} -- {{ escape .EndDate }}\\
\textit{ {{- escape .Company -}} }
{{- if .Description }}
\begin{itemize}
{{- range .Description }}
\item {{ escape . }}
{{- end }}
\end{itemize}
{{- end }}
{{ end }}
{{- end }}
{{- if .Resume.Projects }}
\section*{Projects}
{{- range .Resume.Projects }}
\textbf{ {{- escape .Name -}} }\\
{{ escape .Description }}\\
{{ end }}
{{- end }}
{{- if .HasSkills }}
\section*{Technical Skills}
{{- with .Resume.ProgrammingLanguages }}
\textbf{Programming Languages:} {{ escJoin . ", " }}\\
{{- end }}
{{- with .Resume.Frameworks }}
\textbf{Frameworks:} {{ escJoin . ", " }}\\
{{- end }}
{{- with .Resume.Libraries }}
\textbf{Libraries:} {{ escJoin . ", " }}\\
{{- end }}
{{- with .Resume.TechStack }}
\textbf{Tools \& Technologies:} {{ escJoin . ", " }}\\
{{- end }}
{{- end }}

\end{document}
`
