package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultRecognizedNames(t *testing.T) {
	names := DefaultRecognizedNames()
	if len(names.PropertyDecorators) == 0 {
		t.Fatal("defaults must include property decorators")
	}
	found := false
	for _, name := range names.PropertyDecorators {
		if name == "property" {
			found = true
		}
	}
	if !found {
		t.Errorf("property missing from defaults: %v", names.PropertyDecorators)
	}
}

func TestLoadRecognizedNamesOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pyrite.yaml")
	content := []byte("property_decorators:\n  - property\n  - util.lazy_property\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	names, err := LoadRecognizedNames(path)
	if err != nil {
		t.Fatalf("LoadRecognizedNames() error: %v", err)
	}
	if len(names.PropertyDecorators) != 2 || names.PropertyDecorators[1] != "util.lazy_property" {
		t.Errorf("property decorators = %v, want override", names.PropertyDecorators)
	}
	if len(names.ClassmethodDecorators) == 0 {
		t.Errorf("unset sections must keep their defaults")
	}
}

func TestLoadRecognizedNamesErrors(t *testing.T) {
	if _, err := LoadRecognizedNames(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should error")
	}

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("property_decorators: {not: a list"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRecognizedNames(path); err == nil {
		t.Error("malformed yaml should error")
	}
}
