// Package manifest reads, rewrites, and validates integration manifest files.
//
// A manifest is a single JSON object whose top-level key order is significant:
// domain and name come first, every other key is sorted ascending. The
// Document type keeps the on-disk key order so ordering can be checked and
// rewrites stay diff-friendly.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// Document is one manifest with its top-level key order preserved.
type Document struct {
	keys   []string
	values map[string]json.RawMessage
}

// Parse decodes manifest bytes, capturing top-level key order.
func Parse(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("manifest root must be a JSON object")
	}

	doc := &Document{values: make(map[string]json.RawMessage)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse manifest key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v for manifest key", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse value for %q: %w", key, err)
		}
		if _, dup := doc.values[key]; dup {
			return nil, fmt.Errorf("duplicate key %q", key)
		}
		doc.keys = append(doc.keys, key)
		doc.values[key] = raw
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after manifest object")
	}
	return doc, nil
}

// Load reads and parses the manifest at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- operator-supplied manifest path
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Keys returns the top-level keys in their current order.
func (d *Document) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Has reports whether key is present.
func (d *Document) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

// StringValue returns the value for key when it is a JSON string.
func (d *Document) StringValue(key string) (string, bool) {
	raw, ok := d.values[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// BoolValue returns the value for key when it is a JSON boolean.
func (d *Document) BoolValue(key string) (bool, bool) {
	raw, ok := d.values[key]
	if !ok {
		return false, false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false, false
	}
	return b, true
}

// Domain returns the manifest's domain identifier, or "" when absent.
func (d *Document) Domain() string {
	s, _ := d.StringValue("domain")
	return s
}

// Set inserts or overwrites key and restores canonical key order.
func (d *Document) Set(key string, value interface{}) error {
	raw, err := marshalValue(value)
	if err != nil {
		return fmt.Errorf("encode value for %q: %w", key, err)
	}
	if _, exists := d.values[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.values[key] = raw
	d.keys = CanonicalOrder(d.keys)
	return nil
}

// Interface returns the manifest as a generic structure for schema validation.
func (d *Document) Interface() (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(d.keys))
	for key, raw := range d.values {
		var v interface{}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode value for %q: %w", key, err)
		}
		out[key] = v
	}
	return out, nil
}

// Encode serializes the document in its current key order: two-space indent,
// trailing newline, no HTML escaping. Encoding is stable, so an encode →
// parse → encode round trip is byte-identical.
func (d *Document) Encode() ([]byte, error) {
	if len(d.keys) == 0 {
		return []byte("{}\n"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString("\n  ")
		kb, err := marshalValue(key)
		if err != nil {
			return nil, fmt.Errorf("encode key %q: %w", key, err)
		}
		buf.Write(kb)
		buf.WriteString(": ")

		var compact bytes.Buffer
		if err := json.Compact(&compact, d.values[key]); err != nil {
			return nil, fmt.Errorf("compact value for %q: %w", key, err)
		}
		var indented bytes.Buffer
		if err := json.Indent(&indented, compact.Bytes(), "  ", "  "); err != nil {
			return nil, fmt.Errorf("indent value for %q: %w", key, err)
		}
		buf.Write(indented.Bytes())
	}
	buf.WriteString("\n}\n")
	return buf.Bytes(), nil
}

// CanonicalOrder returns keys with domain and name first (original relative
// order preserved) and the remainder sorted ascending, case-sensitive.
func CanonicalOrder(keys []string) []string {
	special := make([]string, 0, 2)
	rest := make([]string, 0, len(keys))
	for _, key := range keys {
		if key == "domain" || key == "name" {
			special = append(special, key)
		} else {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(special, rest...)
}

// IntegrationName derives the integration identifier from a manifest path
// (the containing directory name).
func IntegrationName(path string) string {
	return filepath.Base(filepath.Dir(path))
}

// marshalValue encodes v as JSON without HTML escaping, so URLs and
// non-ASCII text survive rewrites untouched.
func marshalValue(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
