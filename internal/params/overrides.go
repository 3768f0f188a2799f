package params

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Overrides holds optional per-section YAML overrides. Each section is
// decoded onto a draft after the model defaults and before the shared
// overlay; unknown keys are rejected.
//
//	shared:
//	  batch_size: 25
//	lca:
//	  num_steps: 100
//	mlp:
//	  dropout_rate: [0.2]
type Overrides struct {
	Shared yaml.Node `yaml:"shared"`
	LCA    yaml.Node `yaml:"lca"`
	MLP    yaml.Node `yaml:"mlp"`
}

// LoadOverrides reads an overrides document from path.
func LoadOverrides(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("params: read overrides: %w", err)
	}
	return ParseOverrides(data)
}

// ParseOverrides decodes an overrides document. An empty document yields
// empty overrides.
func ParseOverrides(data []byte) (*Overrides, error) {
	o := &Overrides{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(o); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("params: parse overrides: %w", err)
	}

	// Check the sections eagerly so that typos surface before any build.
	if _, err := o.sharedOverlay(MNISTShared()); err != nil {
		return nil, err
	}
	if err := decodeSection("lca", &o.LCA, &LCA{}); err != nil {
		return nil, err
	}
	if err := decodeSection("mlp", &o.MLP, &MLP{}); err != nil {
		return nil, err
	}
	return o, nil
}

// LCALayer decodes the lca section onto the draft. It is a no-op on nil overrides.
func (o *Overrides) LCALayer() Layer[LCA] {
	return func(p *LCA) error {
		if o == nil {
			return nil
		}
		return decodeMember("lca", &o.LCA, p, &p.Base)
	}
}

// MLPLayer decodes the mlp section onto the draft. It is a no-op on nil overrides.
func (o *Overrides) MLPLayer() Layer[MLP] {
	return func(p *MLP) error {
		if o == nil {
			return nil
		}
		return decodeMember("mlp", &o.MLP, p, &p.Base)
	}
}

// apply returns s with the shared section decoded on top. Errors were
// reported by ParseOverrides, so s is returned unchanged on failure.
func (o *Overrides) apply(s Shared) Shared {
	out, err := o.sharedOverlay(s)
	if err != nil {
		return s
	}
	return out
}

func (o *Overrides) sharedOverlay(s Shared) (Shared, error) {
	if o == nil {
		return s, nil
	}
	if err := decodeSection("shared", &o.Shared, &s); err != nil {
		return Shared{}, err
	}
	return s, nil
}

// decodeMember decodes a model section. The device comes from the capability
// probe, so a section may restate it but not change it.
func decodeMember(name string, node *yaml.Node, out any, b *Base) error {
	device := b.Device
	if err := decodeSection(name, node, out); err != nil {
		return err
	}
	if b.Device != device {
		return fmt.Errorf("params: overrides section %q: %w", name,
			invalid("device", "probed %s, got %s", device, b.Device))
	}
	return nil
}

// decodeSection re-encodes node and decodes it strictly onto out, so that
// fields absent from the section keep their current values.
func decodeSection(name string, node *yaml.Node, out any) error {
	if node.IsZero() || (node.Kind == yaml.ScalarNode && node.Tag == "!!null") {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("params: overrides section %q must be a mapping", name)
	}

	data, err := yaml.Marshal(node)
	if err != nil {
		return fmt.Errorf("params: overrides section %q: %w", name, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("params: overrides section %q: %w", name, err)
	}
	return nil
}
