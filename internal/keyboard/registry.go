package keyboard

import (
	"fmt"
	"sort"
)

// Keymap overrides key labels of one keyboard.
type Keymap struct {
	Name     string            `yaml:"name"`
	Keyboard string            `yaml:"keyboard"`
	Labels   map[string]string `yaml:"labels"`
}

func (km Keymap) Validate() error {
	if km.Name == "" {
		return fmt.Errorf("%w: keymap without a name", ErrInvalid)
	}
	for id, label := range km.Labels {
		if err := CheckLabel(label); err != nil {
			return fmt.Errorf("keymap %q, key %q: %w", km.Name, id, err)
		}
	}
	return nil
}

// UnknownKeys returns the sorted ids labelled by km that no configuration of
// kb defines. Such labels are never drawn.
func (km Keymap) UnknownKeys(kb *Keyboard) []string {
	var unknown []string
	for id := range km.Labels {
		defined := false
		for _, configuration := range kb.Configurations {
			if _, ok := configuration[id]; ok {
				defined = true
				break
			}
		}
		if !defined {
			unknown = append(unknown, id)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// Registry is a named lookup of keyboards and keymaps.
type Registry struct {
	keyboards map[string]*Keyboard
	keymaps   map[string]map[string]Keymap // keyboard -> keymap name -> keymap
}

func NewRegistry() *Registry {
	return &Registry{
		keyboards: make(map[string]*Keyboard),
		keymaps:   make(map[string]map[string]Keymap),
	}
}

// Add validates kb and registers it under its name.
func (r *Registry) Add(kb *Keyboard) error {
	if kb == nil {
		return fmt.Errorf("%w: nil keyboard", ErrInvalid)
	}
	if err := kb.Validate(); err != nil {
		return err
	}
	if _, exists := r.keyboards[kb.Name]; exists {
		return fmt.Errorf("%w: keyboard %q defined twice", ErrInvalid, kb.Name)
	}
	r.keyboards[kb.Name] = kb
	return nil
}

// AddKeymap registers km for an already registered keyboard.
func (r *Registry) AddKeymap(km Keymap) error {
	if err := km.Validate(); err != nil {
		return err
	}
	if _, err := r.Keyboard(km.Keyboard); err != nil {
		return fmt.Errorf("keymap %q: %w", km.Name, err)
	}
	byName := r.keymaps[km.Keyboard]
	if byName == nil {
		byName = make(map[string]Keymap)
		r.keymaps[km.Keyboard] = byName
	}
	if _, exists := byName[km.Name]; exists {
		return fmt.Errorf("%w: keymap %q defined twice for %q", ErrInvalid, km.Name, km.Keyboard)
	}
	byName[km.Name] = km
	return nil
}

// Merge adds every keyboard and keymap of other to r.
func (r *Registry) Merge(other *Registry) error {
	for _, name := range other.Names() {
		if err := r.Add(other.keyboards[name]); err != nil {
			return err
		}
	}
	for _, kbName := range other.Names() {
		for _, kmName := range other.Keymaps(kbName) {
			if err := r.AddKeymap(other.keymaps[kbName][kmName]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Registry) Keyboard(name string) (*Keyboard, error) {
	kb, ok := r.keyboards[name]
	if !ok {
		return nil, fmt.Errorf("keyboard %q: %w", name, ErrNotFound)
	}
	return kb, nil
}

// Names returns the registered keyboard names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.keyboards))
	for name := range r.keyboards {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Keymap(keyboardName, name string) (Keymap, error) {
	km, ok := r.keymaps[keyboardName][name]
	if !ok {
		return Keymap{}, fmt.Errorf("keymap %q for keyboard %q: %w", name, keyboardName, ErrNotFound)
	}
	return km, nil
}

// Keymaps returns the keymap names of a keyboard in sorted order.
func (r *Registry) Keymaps(keyboardName string) []string {
	names := make([]string, 0, len(r.keymaps[keyboardName]))
	for name := range r.keymaps[keyboardName] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the keys drawn for one configuration of a keyboard.
func (r *Registry) Resolve(keyboardName, configurationName string) (Layout, error) {
	kb, err := r.Keyboard(keyboardName)
	if err != nil {
		return Layout{}, err
	}
	return kb.Resolve(configurationName)
}
