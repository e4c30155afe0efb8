package manifest

import (
	"fmt"
	"strings"

	"github.com/fulmenhq/manifestneat/pkg/schema"
)

// SchemaName is the embedded schema the validator checks manifests against.
const SchemaName = "manifest-v1.0.0"

// Result is the validation outcome for one manifest.
type Result struct {
	Path    string   `json:"path"`
	Name    string   `json:"name"`
	Valid   bool     `json:"valid"`
	Reasons []string `json:"reasons,omitempty"`
}

// BatchResult aggregates validation results across a manifest tree.
type BatchResult struct {
	Total   int       `json:"total"`
	Valid   int       `json:"valid"`
	Results []*Result `json:"results"`
}

// AllValid reports whether every manifest in the batch passed.
func (b *BatchResult) AllValid() bool {
	return b.Valid == b.Total
}

// Validate checks a parsed manifest against the embedded schema and the
// key-ordering rule.
func Validate(doc *Document) *Result {
	res := &Result{Valid: true}

	data, err := doc.Interface()
	if err != nil {
		res.Valid = false
		res.Reasons = append(res.Reasons, fmt.Sprintf("invalid value: %v", err))
		return res
	}

	schemaRes, err := schema.Validate(data, SchemaName)
	if err != nil {
		res.Valid = false
		res.Reasons = append(res.Reasons, fmt.Sprintf("schema validation unavailable: %v", err))
	} else if !schemaRes.Valid {
		res.Valid = false
		for _, verr := range schemaRes.Errors {
			res.Reasons = append(res.Reasons, formatSchemaReason(doc, verr))
		}
	}

	for _, reason := range checkKeyOrder(doc.Keys()) {
		res.Valid = false
		res.Reasons = append(res.Reasons, reason)
	}
	return res
}

// formatSchemaReason translates cryptic schema validator messages into more
// actionable ones. The enum message in particular does not name the offending
// value, which the report needs.
func formatSchemaReason(doc *Document, verr schema.ValidationError) string {
	if verr.Path == "integration_type" && strings.Contains(verr.Message, "must be one of") {
		if value, ok := doc.StringValue("integration_type"); ok {
			return fmt.Sprintf("invalid integration_type %q, must be one of device, service, hub", value)
		}
	}
	return fmt.Sprintf("%s: %s", verr.Path, verr.Message)
}

// checkKeyOrder verifies that all keys besides domain and name appear in
// ascending order. Each inversion is reported with the offending pair;
// domain/name position is never flagged.
func checkKeyOrder(keys []string) []string {
	var reasons []string
	prev := ""
	for _, key := range keys {
		if key == "domain" || key == "name" {
			continue
		}
		if prev != "" && prev > key {
			reasons = append(reasons, fmt.Sprintf("keys out of order: %q before %q", prev, key))
		}
		prev = key
	}
	return reasons
}

// ValidateFile loads and validates one manifest. A JSON parse failure
// short-circuits all other checks.
func ValidateFile(path string) *Result {
	name := IntegrationName(path)
	doc, err := Load(path)
	if err != nil {
		return &Result{
			Path:    path,
			Name:    name,
			Valid:   false,
			Reasons: []string{fmt.Sprintf("invalid JSON: %v", err)},
		}
	}
	res := Validate(doc)
	res.Path = path
	res.Name = name
	return res
}

// ValidateTree validates every manifest under root matching the patterns,
// regardless of update status. Processing is sequential and deterministic.
func ValidateTree(root string, patterns []string) (*BatchResult, error) {
	paths, err := ListManifests(root, patterns)
	if err != nil {
		return nil, err
	}

	batch := &BatchResult{Total: len(paths)}
	for _, path := range paths {
		res := ValidateFile(path)
		if res.Valid {
			batch.Valid++
		}
		batch.Results = append(batch.Results, res)
	}
	return batch, nil
}
