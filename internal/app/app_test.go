package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/keyviz/internal/keyboard"
	"github.com/rook-computer/keyviz/internal/render"
	"github.com/rook-computer/keyviz/internal/state"
	"github.com/rook-computer/keyviz/internal/web"
)

type countingDisplay struct {
	started  atomic.Bool
	stopped  atomic.Bool
	redraws  atomic.Int32
	lastSeen atomic.Uint64
}

func (d *countingDisplay) Start(ctx context.Context) error { d.started.Store(true); return nil }
func (d *countingDisplay) Stop() error                     { d.stopped.Store(true); return nil }
func (d *countingDisplay) RunLoop(ctx context.Context, store *state.Store) {
	<-ctx.Done()
}
func (d *countingDisplay) RedrawWithState(snap state.Snapshot) {
	d.redraws.Add(1)
	d.lastSeen.Store(snap.Version)
}

func newStore(t *testing.T) *state.Store {
	t.Helper()
	registry, err := keyboard.Bundled()
	require.NoError(t, err)
	return state.NewStore(registry, render.Options{})
}

func TestStart_OpensSessionAndExits(t *testing.T) {
	disp := &countingDisplay{}
	a := New(newStore(t), disp, &web.NoopServer{})
	a.Session = state.Session{Keyboard: "ErgoDox", Configuration: "Long Thumbs"}

	done := make(chan error, 1)
	go func() { done <- a.Start(context.Background()) }()

	require.Eventually(t, func() bool { return disp.redraws.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.True(t, disp.started.Load())
	assert.Equal(t, uint64(1), disp.lastSeen.Load())

	wantErr := errors.New("bye")
	a.Exit(wantErr)
	a.Exit(errors.New("ignored"))

	select {
	case err := <-done:
		assert.Equal(t, wantErr, err)
	case <-time.After(time.Second):
		t.Fatal("app did not exit")
	}
	assert.True(t, disp.stopped.Load())
}

func TestStart_ContextCancel(t *testing.T) {
	a := New(newStore(t), nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, a.Start(ctx), context.Canceled)
}

func TestStart_BadSession(t *testing.T) {
	disp := &countingDisplay{}
	a := New(newStore(t), disp, nil)
	a.Session = state.Session{Keyboard: "ErgoDox", Configuration: "Short Thumbs"}

	err := a.Start(context.Background())
	assert.ErrorIs(t, err, keyboard.ErrNotFound)
	assert.False(t, disp.started.Load())
}

func TestFileLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewFileLogger(&buf)
	logger.Infof("web", "listening on %s", ":80")
	logger.Errorf("fb", "open failed: %v", os.ErrNotExist)

	out := buf.String()
	assert.Contains(t, out, "[INFO] web: listening on :80\n")
	assert.Contains(t, out, "[ERROR] fb: open failed: file does not exist\n")
}

func TestDefaultConfigFromEnv(t *testing.T) {
	t.Setenv(web.EnvListenAddr, "")
	t.Setenv(web.EnvDevMode, "")
	t.Setenv(EnvKeyboard, "")
	t.Setenv(EnvConfiguration, "Split Thumbs")
	t.Setenv(EnvStdioLog, "/tmp/keyviz.log")

	cfg, err := DefaultConfigFromEnv(":8080")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.ListenAddr)
	assert.Equal(t, state.Session{Keyboard: DefaultKeyboard, Configuration: "Split Thumbs"}, cfg.Session)
	assert.Equal(t, "/tmp/keyviz.log", cfg.StdioLog)
	assert.Equal(t, float64(render.DefaultTargetWidth), cfg.Width)
}

func TestRenderOptions(t *testing.T) {
	cfg := Config{Width: 990, Policy: "single", Theme: "solarized-dark", Session: state.Session{Keymap: "QWERTY"}}
	opts, err := cfg.RenderOptions()
	require.NoError(t, err)
	assert.Equal(t, render.Options{Keymap: "QWERTY", TargetWidth: 990, Theme: "solarized-dark", Policy: render.Single}, opts)

	cfg.Policy = "toggle"
	_, err = cfg.RenderOptions()
	assert.ErrorIs(t, err, keyboard.ErrInvalid)

	cfg.Policy = ""
	cfg.Width = 0
	_, err = cfg.RenderOptions()
	assert.ErrorIs(t, err, keyboard.ErrInvalid)
}

func TestLoadRegistry(t *testing.T) {
	registry, err := LoadRegistry("")
	require.NoError(t, err)
	assert.Equal(t, []string{"ErgoDox"}, registry.Names())

	path := filepath.Join(t.TempDir(), "macropad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
keyboards:
  - name: Macropad
    size: [3, 2]
    keys:
      all:
        a: { position: [0, 0] }
      Default: {}
`), 0o644))
	registry, err = LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"ErgoDox", "Macropad"}, registry.Names())

	_, err = LoadRegistry(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
