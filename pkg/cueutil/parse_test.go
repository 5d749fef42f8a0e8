// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"strings"
	"testing"
)

const testSchema = `
#Thing: {
	name:   string
	count?: int & >=0
}
`

type thing struct {
	Name  string `json:"name"`
	Count int    `json:"count,omitempty"`
}

func TestParseAndDecodeString_ValidCUE(t *testing.T) {
	data := []byte(`name: "alpha"` + "\n" + `count: 3`)

	result, err := ParseAndDecodeString[thing](testSchema, data, "#Thing")
	if err != nil {
		t.Fatalf("ParseAndDecodeString() error: %v", err)
	}

	if result.Value.Name != "alpha" {
		t.Errorf("Name = %s, want alpha", result.Value.Name)
	}
	if result.Value.Count != 3 {
		t.Errorf("Count = %d, want 3", result.Value.Count)
	}
}

func TestParseAndDecodeString_ValidJSON(t *testing.T) {
	// JSON is a subset of CUE; metadata files are plain JSON.
	data := []byte(`{"name": "beta", "count": 1}`)

	result, err := ParseAndDecodeString[thing](testSchema, data, "#Thing")
	if err != nil {
		t.Fatalf("ParseAndDecodeString() error: %v", err)
	}

	if result.Value.Name != "beta" {
		t.Errorf("Name = %s, want beta", result.Value.Name)
	}
}

func TestParseAndDecodeString_SchemaViolation(t *testing.T) {
	data := []byte(`{"name": "gamma", "count": -1}`)

	_, err := ParseAndDecodeString[thing](testSchema, data, "#Thing", WithFilename("gamma.json"))
	if err == nil {
		t.Fatal("expected error for negative count, got nil")
	}
	if !strings.Contains(err.Error(), "gamma.json") {
		t.Errorf("error does not name the file: %v", err)
	}
}

func TestParseAndDecodeString_SyntaxError(t *testing.T) {
	data := []byte(`{"name": `)

	_, err := ParseAndDecodeString[thing](testSchema, data, "#Thing", WithFilename("broken.json"))
	if err == nil {
		t.Fatal("expected error for malformed input, got nil")
	}
}

func TestParseAndDecodeString_ConcreteRequired(t *testing.T) {
	// With WithConcrete, a missing required field is an error.
	data := []byte(`count: 2`)

	_, err := ParseAndDecodeString[thing](testSchema, data, "#Thing", WithConcrete())
	if err == nil {
		t.Fatal("expected error for missing name with WithConcrete, got nil")
	}
}

func TestParseAndDecodeString_UnknownSchemaPath(t *testing.T) {
	_, err := ParseAndDecodeString[thing](testSchema, []byte(`name: "x"`), "#Missing")
	if err == nil {
		t.Fatal("expected internal error for unknown schema path, got nil")
	}
	if !strings.Contains(err.Error(), "internal error") {
		t.Errorf("error = %v, want internal error", err)
	}
}

func TestCheckFileSize(t *testing.T) {
	if err := CheckFileSize(make([]byte, 10), 10, "ok.json"); err != nil {
		t.Errorf("CheckFileSize() at limit returned error: %v", err)
	}
	err := CheckFileSize(make([]byte, 11), 10, "big.json")
	if err == nil {
		t.Fatal("CheckFileSize() over limit returned nil")
	}
	if !strings.Contains(err.Error(), "big.json") {
		t.Errorf("error does not name the file: %v", err)
	}
}
