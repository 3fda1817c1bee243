package keyboard

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed layouts/*.yaml
var layoutsFS embed.FS

// File is the on-disk layout table.
type File struct {
	Keyboards []*Keyboard `yaml:"keyboards"`
	Keymaps   []Keymap    `yaml:"keymaps,omitempty"`
}

// Load parses a YAML layout table and returns a registry holding its
// keyboards and keymaps.
func Load(data []byte) (*Registry, error) {
	var file File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse layout table: %w", err)
	}

	registry := NewRegistry()
	for _, kb := range file.Keyboards {
		if kb == nil {
			continue
		}
		for _, configuration := range kb.Configurations {
			for id, key := range configuration {
				key.ID = id
				configuration[id] = key
			}
		}
		if err := registry.Add(kb); err != nil {
			return nil, err
		}
	}
	for _, km := range file.Keymaps {
		if err := registry.AddKeymap(km); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// LoadFile reads a layout table from disk.
func LoadFile(filename string) (*Registry, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout table: %w", err)
	}
	registry, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return registry, nil
}

// Bundled returns a registry with every layout table embedded in the binary.
func Bundled() (*Registry, error) {
	entries, err := fs.ReadDir(layoutsFS, "layouts")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	registry := NewRegistry()
	for _, name := range names {
		data, err := layoutsFS.ReadFile(path.Join("layouts", name))
		if err != nil {
			return nil, err
		}
		loaded, err := Load(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if err := registry.Merge(loaded); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return registry, nil
}

// Marshal encodes a keyboard as a single-keyboard layout table.
func Marshal(kb *Keyboard) ([]byte, error) {
	return yaml.Marshal(File{Keyboards: []*Keyboard{kb}})
}
