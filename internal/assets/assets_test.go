package assets

import (
	"encoding/json"
	"testing"
)

func TestGetSchema(t *testing.T) {
	data, ok := GetSchema("manifest/manifest-v1.0.0.json")
	if !ok {
		t.Fatal("manifest schema not embedded")
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("manifest schema is not valid JSON: %v", err)
	}
	if doc["type"] != "object" {
		t.Errorf("expected object schema, got %v", doc["type"])
	}
}

func TestGetSchemaNamesCoversEmbeddedFiles(t *testing.T) {
	names := GetSchemaNames()
	if len(names) == 0 {
		t.Fatal("no schemas registered")
	}
	for _, info := range names {
		if _, ok := GetSchema(info.Path); !ok {
			t.Errorf("registered schema %s missing at %s", info.Name, info.Path)
		}
	}
}

func TestGetSchemaMissing(t *testing.T) {
	if _, ok := GetSchema("manifest/nope.json"); ok {
		t.Error("expected miss for unknown schema path")
	}
}
