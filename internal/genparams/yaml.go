package genparams

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAML reads a hand-authored preset file (flat.yaml, mountains.yaml,
// ...) and decodes it into GenerationParameters. This is an alternate,
// human-editable configuration surface; the binary BSER codec remains the
// authoritative runtime/save format. Grounded on
// firestar-voxel-world/chunk-server's use of gopkg.in/yaml.v3 for its own
// config loading.
func LoadYAML(path string) (GenerationParameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return GenerationParameters{}, fmt.Errorf("genparams: read %s: %w", path, err)
	}
	var p GenerationParameters
	if err := yaml.Unmarshal(data, &p); err != nil {
		return GenerationParameters{}, fmt.Errorf("genparams: decode %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return GenerationParameters{}, fmt.Errorf("genparams: %s failed validation: %w", path, err)
	}
	return p, nil
}

// SaveYAML writes GenerationParameters back out in the hand-editable YAML
// form, e.g. after a CLI run tunes a preset interactively.
func SaveYAML(path string, p GenerationParameters) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("genparams: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("genparams: write %s: %w", path, err)
	}
	return nil
}
