package web

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	EnvListenAddr = "KEYVIZ_LISTEN"
	EnvDevMode    = "KEYVIZ_DEV"

	// DefaultListenAddr serves the viewer on every interface, so the QR code
	// shown on the framebuffer points at a reachable address.
	DefaultListenAddr = ":8080"
)

// ServerConfig is the viewer's HTTP listener. DevMode adds permissive CORS
// for a UI served from another origin.
type ServerConfig struct {
	ListenAddr string
	DevMode    bool
}

// ServerConfigFromEnv reads KEYVIZ_LISTEN and KEYVIZ_DEV. An unset or blank
// KEYVIZ_LISTEN keeps fallback, or DefaultListenAddr when fallback is empty.
func ServerConfigFromEnv(fallback string) (ServerConfig, error) {
	cfg := ServerConfig{ListenAddr: fallback}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	if addr := strings.TrimSpace(os.Getenv(EnvListenAddr)); addr != "" {
		cfg.ListenAddr = addr
	}

	if raw := strings.TrimSpace(os.Getenv(EnvDevMode)); raw != "" {
		dev, err := strconv.ParseBool(raw)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("%s=%q is not a boolean: %w", EnvDevMode, raw, err)
		}
		cfg.DevMode = dev
	}
	return cfg, nil
}
