package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestBulletsUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Bullets
	}{
		{"list", `["Built APIs", "Cut latency"]`, Bullets{"Built APIs", "Cut latency"}},
		{"single string", `"Maintained the billing service"`, Bullets{"Maintained the billing service"}},
		{"blank string", `"   "`, nil},
		{"null", `null`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var exp Experience
			if err := json.Unmarshal([]byte(`{"company":"Acme","position":"Dev","description":`+tt.input+`}`), &exp); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if !reflect.DeepEqual(exp.Description, tt.want) {
				t.Errorf("Expected description %#v, got %#v", tt.want, exp.Description)
			}
		})
	}
}

func TestBulletsUnmarshalRejectsObjects(t *testing.T) {
	var exp Experience
	if err := json.Unmarshal([]byte(`{"description":{"text":"x"}}`), &exp); err == nil {
		t.Error("Expected error for object description")
	}
}

func TestResumeResponseFlattensData(t *testing.T) {
	stored := &StoredResume{
		ID:    7,
		JobID: 12,
		Data:  GeneratedResume{Header: "Ada | ada@example.com"},
	}

	data, err := json.Marshal(NewResumeResponse(stored))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if out["header"] != "Ada | ada@example.com" {
		t.Errorf("Expected flattened header, got %v", out["header"])
	}
	if out["applicationId"] != float64(12) {
		t.Errorf("Expected applicationId 12, got %v", out["applicationId"])
	}
	if _, nested := out["data"]; nested {
		t.Error("Expected data to be flattened, found nested key")
	}
}
