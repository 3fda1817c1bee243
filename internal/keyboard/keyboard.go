// Package keyboard holds the layout model: keyboards, their named key
// configurations, and the geometry of each key in key-width units.
package keyboard

import (
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

var (
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid layout")
)

// AllConfiguration names the keys shared by every configuration.
const AllConfiguration = "all"

// MaxLabelLength caps label text, counted in runes.
const MaxLabelLength = 32

// Vec is an (x, y) pair in key-width units. It is written as [x, y] in YAML.
type Vec struct {
	X, Y float64
}

func (v *Vec) UnmarshalYAML(node *yaml.Node) error {
	var xy []float64
	if err := node.Decode(&xy); err != nil {
		return err
	}
	if len(xy) != 2 {
		return fmt.Errorf("line %d: expected [x, y], got %d values", node.Line, len(xy))
	}
	v.X, v.Y = xy[0], xy[1]
	return nil
}

func (v Vec) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, f := range []float64{v.X, v.Y} {
		var item yaml.Node
		if err := item.Encode(f); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &item)
	}
	return node, nil
}

// Key is one key of a keyboard. Size is a multiple of the standard key
// width; an omitted size means 1.
type Key struct {
	ID       string  `yaml:"-" json:"id"`
	Size     float64 `yaml:"size,omitempty" json:"size"`
	Position Vec     `yaml:"position" json:"position"`
	Rotation float64 `yaml:"rotation,omitempty" json:"rotation"`
	Value    string  `yaml:"value,omitempty" json:"value"`

	sizeSet bool
}

// UnmarshalYAML records whether size was written. Unknown fields are
// rejected here since the decoder's strict mode does not reach custom
// unmarshalers.
func (k *Key) UnmarshalYAML(node *yaml.Node) error {
	type plain Key
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*k = Key(p)
	for i := 0; i+1 < len(node.Content); i += 2 {
		field := node.Content[i]
		switch field.Value {
		case "size":
			k.sizeSet = true
		case "position", "rotation", "value":
		default:
			return fmt.Errorf("line %d: field %s not found in key", field.Line, field.Value)
		}
	}
	return nil
}

// Width returns the key width in key-width units.
func (k Key) Width() float64 {
	if k.Size == 0 {
		return 1
	}
	return k.Size
}

// Configuration is a set of keys indexed by id.
type Configuration map[string]Key

// IDs returns the key ids in sorted order.
func (c Configuration) IDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Keyboard is a named layout with its footprint and key configurations.
type Keyboard struct {
	Name           string                   `yaml:"name"`
	Size           Vec                      `yaml:"size"`
	Configurations map[string]Configuration `yaml:"keys"`
}

// ConfigurationNames returns the selectable configurations, i.e. every
// configuration except "all", in sorted order.
func (kb *Keyboard) ConfigurationNames() []string {
	names := make([]string, 0, len(kb.Configurations))
	for name := range kb.Configurations {
		if name == AllConfiguration {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks the authoring invariants of the keyboard.
func (kb *Keyboard) Validate() error {
	if kb.Name == "" {
		return fmt.Errorf("%w: keyboard without a name", ErrInvalid)
	}
	if kb.Size.X <= 0 || kb.Size.Y <= 0 {
		return fmt.Errorf("%w: keyboard %q: size must be positive, got [%g, %g]", ErrInvalid, kb.Name, kb.Size.X, kb.Size.Y)
	}
	if len(kb.ConfigurationNames()) == 0 {
		return fmt.Errorf("%w: keyboard %q: needs at least one configuration besides %q", ErrInvalid, kb.Name, AllConfiguration)
	}

	shared := kb.Configurations[AllConfiguration]
	for _, name := range sortedConfigurationNames(kb.Configurations) {
		for _, id := range kb.Configurations[name].IDs() {
			key := kb.Configurations[name][id]
			if err := kb.validateKey(id, key); err != nil {
				return fmt.Errorf("%w: keyboard %q, configuration %q: %v", ErrInvalid, kb.Name, name, err)
			}
			if name == AllConfiguration {
				continue
			}
			if _, dup := shared[id]; dup {
				return fmt.Errorf("%w: keyboard %q: key %q is in both %q and %q", ErrInvalid, kb.Name, id, AllConfiguration, name)
			}
		}
	}
	return nil
}

func (kb *Keyboard) validateKey(id string, key Key) error {
	if id == "" {
		return errors.New("empty key id")
	}
	if key.Size < 0 || (key.sizeSet && key.Size == 0) {
		return fmt.Errorf("key %q: size must be positive, got %g", id, key.Size)
	}
	if key.Position.X < 0 || key.Position.X >= kb.Size.X || key.Position.Y < 0 || key.Position.Y >= kb.Size.Y {
		return fmt.Errorf("key %q: position [%g, %g] outside [0, %g) x [0, %g)", id, key.Position.X, key.Position.Y, kb.Size.X, kb.Size.Y)
	}
	if n := utf8.RuneCountInString(key.Value); n > MaxLabelLength {
		return fmt.Errorf("key %q: label is %d characters, limit is %d", id, n, MaxLabelLength)
	}
	return nil
}

func sortedConfigurationNames(configurations map[string]Configuration) []string {
	names := make([]string, 0, len(configurations))
	for name := range configurations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CheckLabel reports whether value can be used as a key label.
func CheckLabel(value string) error {
	if n := utf8.RuneCountInString(value); n > MaxLabelLength {
		return fmt.Errorf("%w: label is %d characters, limit is %d", ErrInvalid, n, MaxLabelLength)
	}
	return nil
}
