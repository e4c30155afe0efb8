package schema

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/fulmenhq/manifestneat/internal/assets"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Result holds the validation result.
type Result struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error.
type ValidationError struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// registry caches compiled schemas by name for reuse
var (
	schemaRegistry map[string]*gojsonschema.Schema
	schemaPaths    map[string]string // name -> embed path
	regMu          sync.RWMutex
)

// Validator wraps a compiled schema for repeated validation.
type Validator struct {
	schema *gojsonschema.Schema
}

func init() {
	schemaRegistry = make(map[string]*gojsonschema.Schema)
	schemaPaths = make(map[string]string)
	for _, info := range assets.GetSchemaNames() {
		if data, ok := assets.GetSchema(info.Path); ok {
			if sch, err := compileSchemaBytes(data); err == nil {
				schemaRegistry[info.Name] = sch
				schemaPaths[info.Name] = info.Path
			}
		}
	}
}

func compileSchemaBytes(schemaBytes []byte) (*gojsonschema.Schema, error) {
	// Try YAML first; if it parses, convert to canonical JSON bytes for the loader
	var tmp any
	if err := yaml.Unmarshal(schemaBytes, &tmp); err == nil {
		jb, jerr := json.Marshal(tmp)
		if jerr != nil {
			return nil, fmt.Errorf("failed to encode schema to JSON: %w", jerr)
		}
		schemaBytes = jb
	}
	loader := gojsonschema.NewBytesLoader(schemaBytes)
	sch, err := gojsonschema.NewSchema(loader)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}
	return sch, nil
}

// NewValidatorFromBytes compiles schema bytes (JSON or YAML) into a reusable validator.
func NewValidatorFromBytes(schemaBytes []byte) (*Validator, error) {
	sch, err := compileSchemaBytes(schemaBytes)
	if err != nil {
		return nil, err
	}
	return &Validator{schema: sch}, nil
}

// GetEmbeddedValidator returns a validator for a named embedded schema (e.g., manifest-v1.0.0).
func GetEmbeddedValidator(schemaName string) (*Validator, error) {
	regMu.RLock()
	sch, ok := schemaRegistry[schemaName]
	path := schemaPaths[schemaName]
	regMu.RUnlock()
	if ok {
		return &Validator{schema: sch}, nil
	}
	if path == "" {
		return nil, fmt.Errorf("schema %s not found", schemaName)
	}

	data, ok := assets.GetSchema(path)
	if !ok || len(data) == 0 {
		return nil, fmt.Errorf("schema %s not found", schemaName)
	}
	sch, err := compileSchemaBytes(data)
	if err != nil {
		return nil, err
	}

	regMu.Lock()
	schemaRegistry[schemaName] = sch
	regMu.Unlock()
	return &Validator{schema: sch}, nil
}

// Validate applies the compiled schema to the provided data structure.
func (v *Validator) Validate(data interface{}) (*Result, error) {
	if v == nil || v.schema == nil {
		return nil, fmt.Errorf("validator not initialised")
	}
	return validateWithCompiled(v.schema, data)
}

// ValidateBytes parses JSON bytes and validates them against the compiled schema.
func (v *Validator) ValidateBytes(dataBytes []byte) (*Result, error) {
	if v == nil || v.schema == nil {
		return nil, fmt.Errorf("validator not initialised")
	}
	var data interface{}
	if err := json.Unmarshal(dataBytes, &data); err != nil {
		return nil, fmt.Errorf("failed to parse data bytes: %w", err)
	}
	return validateWithCompiled(v.schema, data)
}

func validateWithCompiled(sch *gojsonschema.Schema, data interface{}) (*Result, error) {
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode data to JSON: %w", err)
	}
	docLoader := gojsonschema.NewBytesLoader(dataJSON)
	result, err := sch.Validate(docLoader)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	res := &Result{Valid: result.Valid()}
	if !result.Valid() {
		for _, verr := range result.Errors() {
			field := verr.Field()
			if field == "" {
				field = "root"
			}
			res.Errors = append(res.Errors, ValidationError{
				Path:    field,
				Message: verr.Description(),
			})
		}
	}
	return res, nil
}

// Validate validates data against the named embedded schema (e.g., "manifest-v1.0.0").
func Validate(data interface{}, schemaName string) (*Result, error) {
	validator, err := GetEmbeddedValidator(schemaName)
	if err != nil {
		return nil, err
	}
	return validator.Validate(data)
}
