// Recognized-name sets for decorator classification.
//
// The statement services never hard-code which decorators make a define a
// property or a classmethod: the sets are injected by the caller so that
// project-specific wrappers (cached properties, custom classmethod shims)
// can be recognized without code changes. Defaults cover the standard
// library spellings; a pyrite.yaml file can replace any of them, list by
// list: a list given in the file replaces the default list whole.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RecognizedNames holds the configurable decorator sets consulted by the
// define and class services.
type RecognizedNames struct {
	// PropertyDecorators mark a define as an instance property getter.
	PropertyDecorators []string `yaml:"property_decorators"`

	// ClassPropertyDecorators mark a define as a class-level property; the
	// resulting attribute annotation is wrapped in typing.ClassVar.
	ClassPropertyDecorators []string `yaml:"class_property_decorators"`

	// ClassmethodDecorators mark a define as a classmethod.
	ClassmethodDecorators []string `yaml:"classmethod_decorators"`
}

// DefaultRecognizedNames returns the built-in sets.
func DefaultRecognizedNames() *RecognizedNames {
	return &RecognizedNames{
		PropertyDecorators: []string{
			"property",
			"abstractproperty",
			"abc.abstractproperty",
			"functools.cached_property",
			"cached_property",
		},
		ClassPropertyDecorators: []string{
			"util.classproperty",
			"util.etc.cached_classproperty",
			"util.etc.class_property",
		},
		ClassmethodDecorators: []string{
			"classmethod",
			"abc.abstractclassmethod",
		},
	}
}

// LoadRecognizedNames reads a YAML override file and overlays it on the
// defaults. Empty lists in the file leave the corresponding default intact.
func LoadRecognizedNames(path string) (*RecognizedNames, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading recognized-names config: %w", err)
	}
	var loaded RecognizedNames
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	names := DefaultRecognizedNames()
	if len(loaded.PropertyDecorators) > 0 {
		names.PropertyDecorators = loaded.PropertyDecorators
	}
	if len(loaded.ClassPropertyDecorators) > 0 {
		names.ClassPropertyDecorators = loaded.ClassPropertyDecorators
	}
	if len(loaded.ClassmethodDecorators) > 0 {
		names.ClassmethodDecorators = loaded.ClassmethodDecorators
	}
	return names, nil
}
