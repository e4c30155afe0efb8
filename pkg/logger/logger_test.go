package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelString(t *testing.T) {
	cases := map[Level]string{
		TraceLevel: "TRACE",
		DebugLevel: "DEBUG",
		InfoLevel:  "INFO",
		WarnLevel:  "WARN",
		ErrorLevel: "ERROR",
		Level(42):  "UNKNOWN",
	}
	for level, want := range cases {
		if got := level.String(); got != want {
			t.Errorf("Level(%d).String() = %q, want %q", level, got, want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("DEBUG") != DebugLevel {
		t.Error("expected case-insensitive parse of DEBUG")
	}
	if ParseLevel("bogus") != InfoLevel {
		t.Error("expected InfoLevel default for unknown level names")
	}
}

func TestLogFiltersBelowConfiguredLevel(t *testing.T) {
	if err := Initialize(Config{Level: WarnLevel, Component: "test"}); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	SetOutput(&buf)

	Info("should be filtered")
	Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "should be filtered") {
		t.Errorf("info message leaked through warn filter: %s", out)
	}
	if !strings.Contains(out, "should appear") {
		t.Errorf("warn message missing: %s", out)
	}
}

func TestJSONOutput(t *testing.T) {
	if err := Initialize(Config{Level: InfoLevel, JSON: true, Component: "test"}); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	SetOutput(&buf)

	Info("structured", String("domain", "hue"), Int("count", 3))

	var entry LogEntry
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("log output is not valid JSON: %v\n%s", err, buf.String())
	}
	if entry.Message != "structured" {
		t.Errorf("unexpected message: %q", entry.Message)
	}
	if entry.Component != "test" {
		t.Errorf("unexpected component: %q", entry.Component)
	}
	if entry.Fields["domain"] != "hue" {
		t.Errorf("missing domain field: %v", entry.Fields)
	}
}

func TestErrField(t *testing.T) {
	f := Err(errTest{})
	if f.Key != "error" || f.Value != "boom" {
		t.Errorf("unexpected error field: %+v", f)
	}
}

type errTest struct{}

func (errTest) Error() string { return "boom" }
