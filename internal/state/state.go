package state

import (
	"errors"
	"sync"

	"github.com/rook-computer/keyviz/internal/keyboard"
	"github.com/rook-computer/keyviz/internal/render"
)

// Session identifies what the viewer is showing.
type Session struct {
	Keyboard      string `json:"keyboard"`
	Configuration string `json:"configuration"`
	Keymap        string `json:"keymap,omitempty"`
}

// Snapshot is a consistent copy of the store. Scene is nil until a session
// has been opened.
type Snapshot struct {
	Session Session
	Scene   *render.Scene
	Version uint64
}

// Store owns the scene shown by the viewer. Every change bumps Version so
// displays can skip redundant redraws.
type Store struct {
	mu       sync.RWMutex
	registry *keyboard.Registry
	options  render.Options
	session  Session
	scene    *render.Scene
	version  uint64
}

var ErrNoSession = errors.New("no keyboard opened")

func NewStore(registry *keyboard.Registry, options render.Options) *Store {
	return &Store{registry: registry, options: options}
}

func (store *Store) Registry() *keyboard.Registry { return store.registry }

// Open draws a fresh scene for the given keyboard configuration and replaces
// the current one. On error the current scene stays.
func (store *Store) Open(session Session) error {
	options := store.options
	options.Keymap = session.Keymap
	scene, err := render.LayoutAndRenderKeyboard(store.registry, session.Keyboard, session.Configuration, options)
	if err != nil {
		return err
	}

	store.mu.Lock()
	store.session = session
	store.scene = scene
	store.version++
	store.mu.Unlock()
	return nil
}

func (store *Store) Snapshot() Snapshot {
	store.mu.RLock()
	defer store.mu.RUnlock()

	snap := Snapshot{Session: store.session, Version: store.version}
	if store.scene != nil {
		snap.Scene = store.scene.Clone()
	}
	return snap
}

func (store *Store) Version() uint64 {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.version
}

func (store *Store) PointerEnter(id string) error {
	return store.update(func(scene *render.Scene) error { return scene.PointerEnter(id) })
}

func (store *Store) PointerLeave(id string) error {
	return store.update(func(scene *render.Scene) error { return scene.PointerLeave(id) })
}

func (store *Store) PointerRelease(id string) error {
	return store.update(func(scene *render.Scene) error { return scene.PointerRelease(id) })
}

func (store *Store) SetLabel(id, value string) error {
	return store.update(func(scene *render.Scene) error { return scene.SetLabel(id, value) })
}

func (store *Store) ClearSelection() error {
	return store.update(func(scene *render.Scene) error {
		scene.ClearSelection()
		return nil
	})
}

func (store *Store) update(change func(scene *render.Scene) error) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.scene == nil {
		return ErrNoSession
	}
	if err := change(store.scene); err != nil {
		return err
	}
	store.version++
	return nil
}
