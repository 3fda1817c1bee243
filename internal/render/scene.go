package render

import (
	"encoding/json"
	"image/color"
	"math"

	"github.com/rook-computer/keyviz/internal/palette"
)

// Style is the paint of one primitive. A nil Stroke draws no outline.
type Style struct {
	Fill    color.Color
	Stroke  color.Color
	Opacity float64
}

func (s Style) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Fill    string  `json:"fill"`
		Stroke  string  `json:"stroke"`
		Opacity float64 `json:"opacity"`
	}{palette.Hex(s.Fill), palette.Hex(s.Stroke), s.Opacity})
}

// Rect is a rectangle rotated by Rotation degrees about its centre.
type Rect struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	W        float64 `json:"w"`
	H        float64 `json:"h"`
	Radius   float64 `json:"radius,omitempty"`
	Rotation float64 `json:"rotation"`
	Style    Style   `json:"style"`
}

// Center returns the rotation origin of the rectangle.
func (r Rect) Center() (x, y float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Text is a label centred on (X, Y), rotated then scaled about that point.
type Text struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Value      string  `json:"value"`
	Rotation   float64 `json:"rotation"`
	Scale      float64 `json:"scale"`
	FontFamily string  `json:"fontFamily"`
	FontSize   float64 `json:"fontSize"`
	Style      Style   `json:"style"`
}

type KeyState int

const (
	KeyIdle KeyState = iota
	KeyHovered
	KeyPressed
)

func (s KeyState) String() string {
	switch s {
	case KeyHovered:
		return "hovered"
	case KeyPressed:
		return "pressed"
	default:
		return "idle"
	}
}

func (s KeyState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// KeyShape is a drawn key: base rectangle, label, and the transparent
// overlay that receives pointer events.
type KeyShape struct {
	ID       string  `json:"id"`
	Size     float64 `json:"size"`
	Rotation float64 `json:"rotation"`

	Base    Rect `json:"base"`
	Label   Text `json:"label"`
	Overlay Rect `json:"overlay"`

	hovered     bool
	highlighted bool
}

func (k *KeyShape) State() KeyState {
	switch {
	case k.highlighted:
		return KeyPressed
	case k.hovered:
		return KeyHovered
	default:
		return KeyIdle
	}
}

// Highlighted reports whether the key was pressed and not reset since.
func (k *KeyShape) Highlighted() bool { return k.highlighted }

// HighlightPolicy decides what a press does to previously pressed keys.
type HighlightPolicy int

const (
	// Sticky keeps every pressed key highlighted.
	Sticky HighlightPolicy = iota
	// Single keeps at most one key highlighted.
	Single
)

func (p HighlightPolicy) String() string {
	if p == Single {
		return "single"
	}
	return "sticky"
}

// ParseHighlightPolicy accepts "sticky", "single" or "" (sticky).
func ParseHighlightPolicy(s string) (HighlightPolicy, bool) {
	switch s {
	case "", "sticky":
		return Sticky, true
	case "single":
		return Single, true
	}
	return Sticky, false
}

// Scene holds the primitives of one keyboard configuration in draw order.
type Scene struct {
	Keyboard      string
	Configuration string
	Keymap        string

	Width   float64
	Height  float64
	KeySize float64
	Border  Rect
	Keys    []*KeyShape

	Theme  palette.Theme
	Policy HighlightPolicy

	selected string
	byID     map[string]*KeyShape
}

// Key returns the drawn key with the given id. When several keys share an
// id the one drawn last wins.
func (s *Scene) Key(id string) (*KeyShape, bool) {
	if s.byID == nil {
		s.index()
	}
	k, ok := s.byID[id]
	return k, ok
}

// Selected returns the id of the most recently pressed key, or "".
func (s *Scene) Selected() string { return s.selected }

func (s *Scene) index() {
	s.byID = make(map[string]*KeyShape, len(s.Keys))
	for _, k := range s.Keys {
		s.byID[k.ID] = k
	}
}

// Clone returns a deep copy that shares nothing with s.
func (s *Scene) Clone() *Scene {
	out := *s
	out.Keys = make([]*KeyShape, len(s.Keys))
	for i, k := range s.Keys {
		copied := *k
		out.Keys[i] = &copied
	}
	out.index()
	return &out
}

// Corners returns the four corners of the rotated rectangle, clockwise from
// the unrotated top-left.
func (r Rect) Corners() [4][2]float64 {
	cx, cy := r.Center()
	sin, cos := math.Sincos(r.Rotation * math.Pi / 180)
	points := [4][2]float64{{r.X, r.Y}, {r.X + r.W, r.Y}, {r.X + r.W, r.Y + r.H}, {r.X, r.Y + r.H}}
	for i, p := range points {
		dx, dy := p[0]-cx, p[1]-cy
		points[i] = [2]float64{cx + dx*cos - dy*sin, cy + dx*sin + dy*cos}
	}
	return points
}

// Bounds returns the axis-aligned box around the rotated rectangle.
func (r Rect) Bounds() (minX, minY, maxX, maxY float64) {
	corners := r.Corners()
	minX, minY = corners[0][0], corners[0][1]
	maxX, maxY = minX, minY
	for _, c := range corners[1:] {
		minX, maxX = math.Min(minX, c[0]), math.Max(maxX, c[0])
		minY, maxY = math.Min(minY, c[1]), math.Max(maxY, c[1])
	}
	return minX, minY, maxX, maxY
}
