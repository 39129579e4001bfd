package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/latex"
)

func TestValidateLatex(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		valid bool
	}{
		{"plain document", `\documentclass{article}\usepackage[margin=1in]{geometry}\begin{document}Hi\end{document}`, true},
		{"relative include", `\input{sections/header}`, true},
		{"empty", "   ", false},
		{"write18", `\immediate\write18{rm -rf /}`, false},
		{"openout", `\newwrite\f\openout\f=x.txt`, false},
		{"shellesc package", `\usepackage{graphicx, shellesc}`, false},
		{"absolute include", `\input{/etc/passwd}`, false},
		{"parent include", `\include{../secret}`, false},
		{"url include", `\input{http://example.com/x}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateLatex(tt.src)
			if tt.valid && err != nil {
				t.Errorf("Expected valid, got %v", err)
			}
			if !tt.valid && err == nil {
				t.Error("Expected rejection")
			}
		})
	}
}

type fakeCompiler struct {
	err error
}

func (f *fakeCompiler) Compile(ctx context.Context, source string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4"), nil
}

func TestCompileEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		compiler *fakeCompiler
		body     string
		status   int
		contains string
	}{
		{"success", &fakeCompiler{}, `{"latex": "\\documentclass{article}"}`, http.StatusOK, "%PDF"},
		{"missing latex", &fakeCompiler{}, `{}`, http.StatusBadRequest, "latex is required"},
		{"rejected", &fakeCompiler{}, `{"latex": "\\write18{ls}"}`, http.StatusBadRequest, "latex rejected"},
		{"compile failure", &fakeCompiler{err: &latex.CompileError{Pass: 1, ExitCode: 1, Log: "! Undefined control sequence."}}, `{"latex": "\\bad"}`, http.StatusBadRequest, "Undefined control sequence"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newServer(tt.compiler)
			req := httptest.NewRequest(http.MethodPost, "/compile", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.contains) {
				t.Errorf("Expected body to contain '%s', got '%s'", tt.contains, rec.Body.String())
			}
		})
	}
}
