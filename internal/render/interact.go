package render

import (
	"fmt"

	"github.com/rook-computer/keyviz/internal/keyboard"
)

// PointerEnter shows the hover overlay of a key.
func (s *Scene) PointerEnter(id string) error {
	k, err := s.mustKey(id)
	if err != nil {
		return err
	}
	k.hovered = true
	k.Overlay.Style.Opacity = hoverOpacity
	return nil
}

// PointerLeave hides the hover overlay of a key.
func (s *Scene) PointerLeave(id string) error {
	k, err := s.mustKey(id)
	if err != nil {
		return err
	}
	k.hovered = false
	k.Overlay.Style.Opacity = 0
	return nil
}

// PointerRelease paints the key in the highlight colour. Under the Single
// policy the previously selected key goes back to its normal fill.
func (s *Scene) PointerRelease(id string) error {
	k, err := s.mustKey(id)
	if err != nil {
		return err
	}
	if s.Policy == Single && s.selected != "" && s.selected != id {
		if prev, ok := s.Key(s.selected); ok {
			s.unhighlight(prev)
		}
	}
	k.highlighted = true
	k.Base.Style.Fill = s.Theme.Highlight
	s.selected = id
	return nil
}

// ClearSelection resets every highlighted key.
func (s *Scene) ClearSelection() {
	for _, k := range s.Keys {
		if k.highlighted {
			s.unhighlight(k)
		}
	}
	s.selected = ""
}

// SetLabel changes the label of one key.
func (s *Scene) SetLabel(id, value string) error {
	if err := keyboard.CheckLabel(value); err != nil {
		return err
	}
	k, err := s.mustKey(id)
	if err != nil {
		return err
	}
	k.Update(value)
	return nil
}

func (s *Scene) unhighlight(k *KeyShape) {
	k.highlighted = false
	k.Base.Style.Fill = s.Theme.Key
}

func (s *Scene) mustKey(id string) (*KeyShape, error) {
	k, ok := s.Key(id)
	if !ok {
		return nil, fmt.Errorf("key %q in %s/%s: %w", id, s.Keyboard, s.Configuration, keyboard.ErrNotFound)
	}
	return k, nil
}
