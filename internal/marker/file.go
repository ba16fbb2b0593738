package marker

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadVocabulary overlays the YAML marker file at path onto base. Keys
// missing from the file keep their base values.
//
//	elite: ["@", "＠", "#", "＃"]
//	daughter: "(F)"
//	g1_prefix: "G1-"
//	g1_threshold: 7
func LoadVocabulary(path string, base Vocabulary) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read marker file: %w", err)
	}
	v := base
	if err := yaml.Unmarshal(data, &v); err != nil {
		return base, fmt.Errorf("parse marker file %s: %w", path, err)
	}
	if err := v.Validate(); err != nil {
		return base, fmt.Errorf("marker file %s: %w", path, err)
	}
	return v, nil
}
