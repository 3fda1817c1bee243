package keyboard

import "fmt"

// Layout is the resolved, ordered key list of one keyboard configuration.
// Keys are copies; changing them never touches the keyboard.
type Layout struct {
	Keyboard      *Keyboard
	Configuration string
	Keymap        string
	Keys          []Key
}

// Resolve returns the keys of the named configuration followed by the keys of
// "all", each group sorted by id. Every key's Value defaults to its id.
func (kb *Keyboard) Resolve(configurationName string) (Layout, error) {
	if configurationName == AllConfiguration {
		return Layout{}, fmt.Errorf("configuration %q of keyboard %q is not selectable: %w", configurationName, kb.Name, ErrNotFound)
	}
	selected, ok := kb.Configurations[configurationName]
	if !ok {
		return Layout{}, fmt.Errorf("configuration %q of keyboard %q: %w", configurationName, kb.Name, ErrNotFound)
	}
	shared := kb.Configurations[AllConfiguration]

	keys := make([]Key, 0, len(selected)+len(shared))
	for _, group := range []Configuration{selected, shared} {
		for _, id := range group.IDs() {
			key := group[id]
			key.ID = id
			if key.Value == "" {
				key.Value = id
			}
			keys = append(keys, key)
		}
	}
	return Layout{Keyboard: kb, Configuration: configurationName, Keys: keys}, nil
}

// WithKeymap returns a copy of l with the keymap's labels applied. Labels for
// ids that are not part of the layout are ignored.
func (l Layout) WithKeymap(km Keymap) (Layout, error) {
	if km.Keyboard != "" && l.Keyboard != nil && km.Keyboard != l.Keyboard.Name {
		return Layout{}, fmt.Errorf("%w: keymap %q belongs to %q, not %q", ErrInvalid, km.Name, km.Keyboard, l.Keyboard.Name)
	}
	out := l
	out.Keymap = km.Name
	out.Keys = make([]Key, len(l.Keys))
	for i, key := range l.Keys {
		if label, ok := km.Labels[key.ID]; ok {
			if err := CheckLabel(label); err != nil {
				return Layout{}, fmt.Errorf("keymap %q, key %q: %w", km.Name, key.ID, err)
			}
			key.Value = label
		}
		out.Keys[i] = key
	}
	return out, nil
}

// Key returns the resolved key with the given id.
func (l Layout) Key(id string) (Key, bool) {
	for _, key := range l.Keys {
		if key.ID == id {
			return key, true
		}
	}
	return Key{}, false
}
