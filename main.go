package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/keyviz/internal/app"
	"github.com/rook-computer/keyviz/internal/display"
	"github.com/rook-computer/keyviz/internal/render"
	"github.com/rook-computer/keyviz/internal/state"
	"github.com/rook-computer/keyviz/internal/system"
	"github.com/rook-computer/keyviz/internal/web"
)

func main() {
	cfg, err := app.DefaultConfigFromEnv(web.DefaultListenAddr)
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	flag.StringVar(&cfg.Server.ListenAddr, "listen", cfg.Server.ListenAddr, "http listen address; also configurable via "+web.EnvListenAddr)
	flag.BoolVar(&cfg.Server.DevMode, "dev", cfg.Server.DevMode, "enable dev mode (permissive CORS); also configurable via "+web.EnvDevMode)
	flag.StringVar(&cfg.StaticDir, "static-dir", "", "serve static UI from this directory (optional); when empty, embedded web UI assets are served")
	flag.StringVar(&cfg.Session.Keyboard, "keyboard", cfg.Session.Keyboard, "keyboard to open; also configurable via "+app.EnvKeyboard)
	flag.StringVar(&cfg.Session.Configuration, "configuration", cfg.Session.Configuration, "configuration to open; also configurable via "+app.EnvConfiguration)
	flag.StringVar(&cfg.Session.Keymap, "keymap", "", "label keymap to apply (optional)")
	flag.StringVar(&cfg.Theme, "theme", "", "colour theme: tango | solarized-dark | solarized-light")
	flag.Float64Var(&cfg.Width, "width", cfg.Width, "drawing width in pixels")
	flag.StringVar(&cfg.Policy, "policy", "", "highlight policy: sticky | single")
	flag.StringVar(&cfg.LayoutsPath, "layouts", "", "extra YAML layout table to load next to the bundled ones")
	flag.BoolVar(&cfg.Framebuffer, "framebuffer", false, "also draw on the Linux framebuffer; F4 exits")
	flag.StringVar(&cfg.FramebufferDevice, "fb-device", display.DefaultDevice, "framebuffer device")
	flag.BoolVar(&cfg.Debug, "debug", false, "enable debug logging to "+app.DefaultDebugLog)
	flag.StringVar(&cfg.StdioLog, "stdio-log", cfg.StdioLog, "redirect stdout+stderr (including panics) to this file; also configurable via "+app.EnvStdioLog)
	flag.Parse()

	// Best-effort: redirect all stdout/stderr output (including panic stack traces)
	// to a file so crashes are diagnosable even when the console is left in graphics mode.
	if cfg.StdioLog != "" {
		if err := redirectStdIO(cfg.StdioLog); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	var logger app.Logger = app.NoopLogger{}
	if cfg.Debug {
		f, err := os.OpenFile(app.DefaultDebugLog, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	options, err := cfg.RenderOptions()
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}
	registry, err := app.LoadRegistry(cfg.LayoutsPath)
	if err != nil {
		fmt.Println("layout error:", err)
		os.Exit(2)
	}

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := state.NewStore(registry, options)

	server := web.NewHTTPServer(cfg.Server)
	server.StaticDir = cfg.StaticDir
	server.Logger = logger
	rasterizer := render.NewRasterizer()
	rasterizer.Logger = logger
	server.Deps = web.APIV1Deps{Store: store, PNG: rasterizer, Logger: logger}

	var disp display.Display = &display.NoopDisplay{}
	if cfg.Framebuffer {
		fb := display.NewFBDisplay(cfg.FramebufferDevice)
		fb.Logger = logger
		disp = fb
	}

	a := app.New(store, disp, server)
	a.Logger = logger
	a.Session = cfg.Session
	a.Console = cfg.Framebuffer

	fmt.Println("keyviz viewer")
	fmt.Println("Keyboard:", cfg.Session.Keyboard+" / "+cfg.Session.Configuration)
	ip, _ := system.LocalIPv4()
	fmt.Println("Open:", system.ViewerURL(cfg.Server.ListenAddr, ip))

	if err := a.Start(processCtx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("app error:", err)
		os.Exit(1)
	}
}
