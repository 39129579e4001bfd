package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/contract"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/exporter"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/ids"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/jobs"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/latex"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/llm/types"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/resume"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/store"
)

func TestClassify(t *testing.T) {
	_, idErr := ids.Parse("nope")

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"input", &resume.InputError{Message: "empty"}, http.StatusBadRequest, "invalid_input"},
		{"invalid id", idErr, http.StatusBadRequest, "invalid_id"},
		{"not a posting", fmt.Errorf("%w: search page", jobs.ErrNotJobPosting), http.StatusBadRequest, "invalid_url"},
		{"not found", &resume.NotFoundError{Resource: "job", ID: "4"}, http.StatusNotFound, "not_found"},
		{"store not found", store.ErrNotFound, http.StatusNotFound, "not_found"},
		{"build in progress", resume.ErrBuildInProgress, http.StatusConflict, "build_in_progress"},
		{"upstream timeout", &types.UpstreamError{Kind: types.KindTimeout, Err: errors.New("deadline")}, http.StatusInternalServerError, "upstream_timeout"},
		{"upstream status", &types.UpstreamError{Kind: types.KindStatus, StatusCode: 503}, http.StatusInternalServerError, "upstream_error"},
		{"schema", &contract.SchemaError{Kind: contract.SchemaViolation, Contract: "resume"}, http.StatusInternalServerError, "schema_violation"},
		{"compile", &latex.CompileError{Pass: 2, ExitCode: 1}, http.StatusInternalServerError, "compile_error"},
		{"import unavailable", jobs.ErrImportUnavailable, http.StatusServiceUnavailable, "import_unavailable"},
		{"fetch", fmt.Errorf("%w: 404", jobs.ErrFetch), http.StatusBadGateway, "import_failed"},
		{"upload", fmt.Errorf("%w: denied", exporter.ErrUpload), http.StatusInternalServerError, "upload_failed"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ce := classify(tt.err)
			if ce.Code != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, ce.Code)
			}
			if code != tt.code {
				t.Errorf("Expected code '%s', got '%s'", tt.code, code)
			}
		})
	}
}

func TestClassifyCarriesDiagnostics(t *testing.T) {
	_, ce := classify(&contract.SchemaError{Kind: contract.InvalidJSON, Contract: "resume", Raw: "not json", Detail: "invalid character"})
	if ce.Raw != "not json" {
		t.Errorf("Expected raw 'not json', got '%s'", ce.Raw)
	}

	_, ce = classify(fmt.Errorf("render: %w", &latex.CompileError{Pass: 1, Log: "! Missing $ inserted."}))
	if ce.Detail != "! Missing $ inserted." {
		t.Errorf("Expected compile log as detail, got '%s'", ce.Detail)
	}
}
