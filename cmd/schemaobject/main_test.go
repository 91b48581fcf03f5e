package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/caarlos0/env/v11"
)

const testSchema = `
name:
  type: string
  minLength: 1
age:
  type: number
  min: 0
`

func writeSchema(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "schema.yaml")
	if err := os.WriteFile(p, []byte(testSchema), 0o644); err != nil {
		t.Fatalf("write schema: %v", err)
	}
	return p
}

func TestCheckCmd(t *testing.T) {
	p := writeSchema(t)
	var out bytes.Buffer
	code := checkCmd([]string{"-schema", p, "-lang", "en"}, config{Lang: "en"}, strings.NewReader(`{"name":"ann","age":"41"}`), &out)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, out.String())
	}
	if !strings.Contains(out.String(), `"age": 41`) || !strings.Contains(out.String(), `"issues": []`) {
		t.Fatalf("unexpected output: %s", out.String())
	}

	out.Reset()
	code = checkCmd([]string{"-schema", p}, config{Lang: "en"}, strings.NewReader(`{"name":"","age":"old"}`), &out)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	for _, want := range []string{"length_violation", "type_mismatch", `"/age"`} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("missing %q in output: %s", want, out.String())
		}
	}
}

func TestJSONSchemaCmd(t *testing.T) {
	p := writeSchema(t)
	var out bytes.Buffer
	if code := jsonSchemaCmd([]string{"-schema", p}, config{}, &out); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out.String(), `"minLength": 1`) {
		t.Fatalf("unexpected schema: %s", out.String())
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("SCHEMAOBJECT_LANG", "ja")
	t.Setenv("SCHEMAOBJECT_VERBOSE", "true")
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Lang != "ja" || !cfg.Verbose {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}
