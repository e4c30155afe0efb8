package manifest

import (
	"bytes"
	"strings"
	"testing"
)

const sampleManifest = `{
  "domain": "sample_device",
  "name": "Sample Device",
  "config_flow": true,
  "documentation": "https://example.com/sample_device",
  "requirements": [
    "sample-lib==1.0.0"
  ]
}
`

func TestParsePreservesKeyOrder(t *testing.T) {
	doc, err := Parse([]byte(`{"b": 1, "a": 2, "domain": "x"}`))
	if err != nil {
		t.Fatal(err)
	}
	got := doc.Keys()
	want := []string{"b", "a", "domain"}
	if len(got) != len(want) {
		t.Fatalf("got %d keys, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("key[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseRejectsNonObject(t *testing.T) {
	for _, input := range []string{`[]`, `"str"`, `42`, `{"a": 1} extra`, `{"a": 1, "a": 2}`, `{bad`} {
		if _, err := Parse([]byte(input)); err == nil {
			t.Errorf("expected parse failure for %s", input)
		}
	}
}

func TestEncodeRoundTripIsByteIdentical(t *testing.T) {
	doc, err := Parse([]byte(sampleManifest))
	if err != nil {
		t.Fatal(err)
	}
	first, err := doc.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, []byte(sampleManifest)) {
		t.Errorf("encode changed canonical input:\n%s", first)
	}

	reparsed, err := Parse(first)
	if err != nil {
		t.Fatal(err)
	}
	second, err := reparsed.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("round trip not stable:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

func TestEncodePreservesNonASCIIAndURLs(t *testing.T) {
	doc, err := Parse([]byte(`{"domain": "lámpara", "name": "Lámpara España", "documentation": "https://example.com/a?b=1&c=2"}`))
	if err != nil {
		t.Fatal(err)
	}
	out, err := doc.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "Lámpara España") {
		t.Errorf("non-ASCII text was escaped:\n%s", out)
	}
	if !strings.Contains(string(out), "b=1&c=2") {
		t.Errorf("URL ampersand was escaped:\n%s", out)
	}
	if !strings.HasSuffix(string(out), "\n") {
		t.Error("missing trailing newline")
	}
}

func TestSetIntegrationTypeOrdering(t *testing.T) {
	doc, err := Parse([]byte(sampleManifest))
	if err != nil {
		t.Fatal(err)
	}
	if err := doc.SetIntegrationType("device"); err != nil {
		t.Fatal(err)
	}

	got := doc.Keys()
	want := []string{"domain", "name", "config_flow", "documentation", "integration_type", "requirements"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("key[%d] = %q, want %q (all: %v)", i, got[i], want[i], got)
		}
	}

	if v, ok := doc.StringValue("integration_type"); !ok || v != "device" {
		t.Errorf("integration_type = %q, ok=%v", v, ok)
	}
	// Other values untouched
	if v, ok := doc.StringValue("documentation"); !ok || v != "https://example.com/sample_device" {
		t.Errorf("documentation changed: %q", v)
	}
}

func TestSetOverwritesExistingValue(t *testing.T) {
	doc, err := Parse([]byte(`{"domain": "x", "integration_type": "hub"}`))
	if err != nil {
		t.Fatal(err)
	}
	if err := doc.SetIntegrationType("service"); err != nil {
		t.Fatal(err)
	}
	if v, _ := doc.StringValue("integration_type"); v != "service" {
		t.Errorf("expected overwrite, got %q", v)
	}
	if len(doc.Keys()) != 2 {
		t.Errorf("key duplicated on overwrite: %v", doc.Keys())
	}
}

func TestCanonicalOrder(t *testing.T) {
	got := CanonicalOrder([]string{"requirements", "name", "config_flow", "domain", "Zeta"})
	want := []string{"name", "domain", "Zeta", "config_flow", "requirements"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order[%d] = %q, want %q (all: %v)", i, got[i], want[i], got)
		}
	}
}

func TestBoolValue(t *testing.T) {
	doc, err := Parse([]byte(`{"config_flow": true, "name": "x"}`))
	if err != nil {
		t.Fatal(err)
	}
	if b, ok := doc.BoolValue("config_flow"); !ok || !b {
		t.Error("expected config_flow true")
	}
	if _, ok := doc.BoolValue("name"); ok {
		t.Error("string value must not read as bool")
	}
	if _, ok := doc.BoolValue("missing"); ok {
		t.Error("missing key must not read as bool")
	}
}

func TestIntegrationName(t *testing.T) {
	if got := IntegrationName("integrations/hue/manifest.json"); got != "hue" {
		t.Errorf("IntegrationName = %q", got)
	}
}
