package app

import (
	"fmt"
	"os"

	"github.com/rook-computer/keyviz/internal/keyboard"
	"github.com/rook-computer/keyviz/internal/render"
	"github.com/rook-computer/keyviz/internal/state"
	"github.com/rook-computer/keyviz/internal/web"
)

const (
	EnvKeyboard      = "KEYVIZ_KEYBOARD"
	EnvConfiguration = "KEYVIZ_CONFIGURATION"
	EnvStdioLog      = "KEYVIZ_STDIO_LOG"

	DefaultKeyboard      = "ErgoDox"
	DefaultConfiguration = "Long Thumbs"
	DefaultDebugLog      = "./keyviz-debug.log"
)

// Config is everything the viewer binary can be told from flags and env.
type Config struct {
	Server    web.ServerConfig
	StaticDir string

	Session state.Session
	Theme   string
	Width   float64
	Policy  string

	// LayoutsPath is an optional YAML layout table merged over the bundled one.
	LayoutsPath string

	Framebuffer       bool
	FramebufferDevice string

	Debug    bool
	StdioLog string
}

// DefaultConfigFromEnv returns the defaults with environment overrides
// applied. Flags are expected to be parsed on top of it.
func DefaultConfigFromEnv(defaultListenAddr string) (Config, error) {
	server, err := web.ServerConfigFromEnv(defaultListenAddr)
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		Server: server,
		Session: state.Session{
			Keyboard:      envOr(EnvKeyboard, DefaultKeyboard),
			Configuration: envOr(EnvConfiguration, DefaultConfiguration),
		},
		Width:    render.DefaultTargetWidth,
		StdioLog: os.Getenv(EnvStdioLog),
	}
	return cfg, nil
}

// RenderOptions validates the drawing settings.
func (c Config) RenderOptions() (render.Options, error) {
	policy, ok := render.ParseHighlightPolicy(c.Policy)
	if !ok {
		return render.Options{}, fmt.Errorf("%w: unknown highlight policy %q", keyboard.ErrInvalid, c.Policy)
	}
	if c.Width <= 0 {
		return render.Options{}, fmt.Errorf("%w: width must be positive (got %v)", keyboard.ErrInvalid, c.Width)
	}
	return render.Options{
		Keymap:      c.Session.Keymap,
		TargetWidth: c.Width,
		Theme:       c.Theme,
		Policy:      policy,
	}, nil
}

// LoadRegistry returns the bundled layouts, plus the keyboards of path when
// it is set.
func LoadRegistry(path string) (*keyboard.Registry, error) {
	registry, err := keyboard.Bundled()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return registry, nil
	}
	extra, err := keyboard.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := registry.Merge(extra); err != nil {
		return nil, err
	}
	return registry, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
