package models

import "time"

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response. Detail and Raw carry the
// diagnostic payload (parse error, toolchain log, raw generator output).
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Detail    string    `json:"detail,omitempty"`
	Raw       string    `json:"raw,omitempty"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

type JobListResponse struct {
	Jobs  []Job `json:"jobs"`
	Count int   `json:"count"`
}

type GenerationHistoryResponse struct {
	ApplicationID int64              `json:"applicationId"`
	Generations   []GenerationRecord `json:"generations"`
}

// ExportResponse holds the public URLs of an exported resume
type ExportResponse struct {
	Status string `json:"status"`
	TexURL string `json:"tex_url"`
	PDFURL string `json:"pdf_url"`
}
