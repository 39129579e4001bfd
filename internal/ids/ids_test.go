package ids

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ID
		wantErr bool
	}{
		{name: "bare", input: "12", want: ID{Value: 12}},
		{name: "bare with spaces", input: " 7 ", want: ID{Value: 7}},
		{name: "job prefix", input: "job-12", want: ID{Kind: "job", Value: 12}},
		{name: "app underscore", input: "app_3", want: ID{Kind: "application", Value: 3}},
		{name: "application prefix uppercase", input: "Application-44", want: ID{Kind: "application", Value: 44}},
		{name: "empty", input: "", wantErr: true},
		{name: "zero", input: "0", wantErr: true},
		{name: "negative", input: "-4", wantErr: true},
		{name: "unknown kind", input: "user-5", wantErr: true},
		{name: "trailing garbage", input: "12abc", wantErr: true},
		{name: "slice remnant", input: "job-", wantErr: true},
		{name: "overflow", input: "99999999999999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error for %q, got %+v", tt.input, got)
				}
				if !errors.Is(err, ErrInvalidIDFormat) {
					t.Errorf("Expected ErrInvalidIDFormat, got %v", err)
				}
				var invalid *InvalidIDError
				if !errors.As(err, &invalid) || invalid.Input != tt.input {
					t.Errorf("Expected InvalidIDError carrying input %q, got %v", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestIDString(t *testing.T) {
	if s := (ID{Kind: "job", Value: 9}).String(); s != "job-9" {
		t.Errorf("Expected 'job-9', got '%s'", s)
	}
	if s := (ID{Value: 9}).String(); s != "9" {
		t.Errorf("Expected '9', got '%s'", s)
	}
}
