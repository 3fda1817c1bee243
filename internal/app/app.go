package app

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rook-computer/keyviz/internal/display"
	"github.com/rook-computer/keyviz/internal/state"
	"github.com/rook-computer/keyviz/internal/system"
	"github.com/rook-computer/keyviz/internal/web"
)

type App struct {
	Store   *state.Store
	Display display.Display
	Web     web.Server
	Logger  Logger

	// Session is opened before anything is shown. Leave Keyboard empty to
	// start without a scene.
	Session state.Session

	// Console switches the local VT to graphics mode and exits on F4.
	// Only meaningful with a framebuffer display.
	Console bool

	exitOnce atomic.Bool
	exitCh   chan error
}

func New(store *state.Store, disp display.Display, webServer web.Server) *App {
	return &App{Store: store, Display: disp, Web: webServer, Logger: NoopLogger{}, exitCh: make(chan error, 1)}
}

// Exit requests the app to stop running.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// Start opens the initial session, brings up the web server and display,
// and blocks until ctx is done or Exit is called.
func (app *App) Start(ctx context.Context) error {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	app.exitOnce.Store(false)
	if app.Logger == nil {
		app.Logger = NoopLogger{}
	}
	if app.Display == nil {
		app.Display = &display.NoopDisplay{}
	}
	if app.Web == nil {
		app.Web = &web.NoopServer{}
	}

	if app.Session.Keyboard != "" {
		if err := app.Store.Open(app.Session); err != nil {
			app.Logger.Errorf("app", "open %s/%s failed: %v", app.Session.Keyboard, app.Session.Configuration, err)
			return err
		}
		app.Logger.Infof("app", "opened %s/%s", app.Session.Keyboard, app.Session.Configuration)
	}

	if err := app.Web.Start(ctx); err != nil {
		app.Logger.Errorf("app", "web start error: %v", err)
		return err
	}
	defer func() { _ = app.Web.Stop() }()

	if err := app.Display.Start(ctx); err != nil {
		app.Logger.Errorf("app", "display start error: %v", err)
		return err
	}
	defer func() { _ = app.Display.Stop() }()

	if app.Console {
		// Switch console to KD_GRAPHICS to suppress hardware cursor
		if err := system.SetGraphicsModeWithLog(app.Logger); err != nil {
			app.Logger.Errorf("tty", "set graphics mode failed: %v", err)
		}
		_ = system.HideCursorWithLog(app.Logger)
		defer func() { _ = system.ShowCursorWithLog(app.Logger); _ = system.RestoreTextModeWithLog(app.Logger) }()
		system.StartExitOnF4(ctx, app.Logger, func() { app.Exit(nil) })
	}

	// Draw once right away instead of waiting for the first tick.
	app.Display.RedrawWithState(app.Store.Snapshot())

	loopCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		app.Display.RunLoop(loopCtx, app.Store)
	}()

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-app.exitCh:
	}
	cancel()
	wg.Wait()
	return err
}

// Logger interface and implementations
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

type FileLogger struct {
	mu *sync.Mutex
	w  io.Writer
}

func NewFileLogger(w io.Writer) FileLogger { return FileLogger{mu: &sync.Mutex{}, w: w} }
func (l FileLogger) Infof(component string, format string, args ...interface{}) {
	l.write("INFO", component, format, args...)
}
func (l FileLogger) Errorf(component string, format string, args ...interface{}) {
	l.write("ERROR", component, format, args...)
}

func (l FileLogger) write(level, component, format string, args ...interface{}) {
	if l.w == nil {
		return
	}
	if l.mu != nil {
		l.mu.Lock()
		defer l.mu.Unlock()
	}
	writeLog(l.w, level, component, format, args...)
}

func writeLog(w io.Writer, level, component, format string, args ...interface{}) {
	timestamp := time.Now().Format(time.RFC3339)
	msg := fmt.Sprintf(format, args...)
	_, _ = io.WriteString(w, timestamp+" ["+level+"] "+component+": "+msg+"\n")
}
