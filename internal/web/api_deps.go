package web

import (
	"errors"
	"io"

	"github.com/rook-computer/keyviz/internal/keyboard"
	"github.com/rook-computer/keyviz/internal/render"
	"github.com/rook-computer/keyviz/internal/state"
)

// SessionStore abstracts the viewer session used by the API.
//
// The concrete implementation is *state.Store.
type SessionStore interface {
	Registry() *keyboard.Registry
	Open(session state.Session) error
	Snapshot() state.Snapshot
	PointerEnter(id string) error
	PointerLeave(id string) error
	PointerRelease(id string) error
	SetLabel(id, value string) error
	ClearSelection() error
}

// PNGEncoder paints a scene as PNG. *render.Rasterizer implements it.
type PNGEncoder interface {
	EncodePNG(w io.Writer, scene *render.Scene) error
}

// apiLogger matches app.Logger so callers can pass it without adapters.
type apiLogger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type APIV1Deps struct {
	Store  SessionStore
	PNG    PNGEncoder
	Logger apiLogger
}

func (d APIV1Deps) withDefaults() APIV1Deps {
	out := d
	if out.Store == nil {
		out.Store = NoopSessionStore{}
	}
	if out.PNG == nil {
		out.PNG = render.NewRasterizer()
	}
	if out.Logger == nil {
		out.Logger = noopLogger{}
	}
	return out
}

var errNoStore = errors.New("session store not configured")

// NoopSessionStore serves an empty registry and rejects every change.
type NoopSessionStore struct{}

func (NoopSessionStore) Registry() *keyboard.Registry  { return keyboard.NewRegistry() }
func (NoopSessionStore) Open(state.Session) error      { return errNoStore }
func (NoopSessionStore) Snapshot() state.Snapshot      { return state.Snapshot{} }
func (NoopSessionStore) PointerEnter(string) error     { return errNoStore }
func (NoopSessionStore) PointerLeave(string) error     { return errNoStore }
func (NoopSessionStore) PointerRelease(string) error   { return errNoStore }
func (NoopSessionStore) SetLabel(string, string) error { return errNoStore }
func (NoopSessionStore) ClearSelection() error         { return errNoStore }

type noopLogger struct{}

func (noopLogger) Infof(string, string, ...interface{})  {}
func (noopLogger) Errorf(string, string, ...interface{}) {}
