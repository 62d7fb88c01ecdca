package config

import (
	"encoding/json"
	"testing"
)

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	if err != nil {
		t.Fatalf("GenerateSchema failed: %v", err)
	}

	var schema struct {
		Title      string                     `json:"title"`
		Properties map[string]json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(data, &schema); err != nil {
		t.Fatalf("Schema is not valid JSON: %v", err)
	}

	if schema.Title != "memvfs Configuration" {
		t.Errorf("Unexpected title %q", schema.Title)
	}
	for _, key := range []string{"logging", "metrics", "naming", "content"} {
		if _, ok := schema.Properties[key]; !ok {
			t.Errorf("Schema missing property %q", key)
		}
	}
}
