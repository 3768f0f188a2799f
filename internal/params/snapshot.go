package params

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Snapshot renders a resolved set as YAML. The generator is not included.
func Snapshot(set Set) ([]byte, error) {
	data, err := yaml.Marshal(set)
	if err != nil {
		return nil, fmt.Errorf("params: snapshot %s: %w", set.Kind(), err)
	}
	return data, nil
}
