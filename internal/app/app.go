package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rook-computer/pixelscale/internal/buttons"
	"github.com/rook-computer/pixelscale/internal/render"
	"github.com/rook-computer/pixelscale/internal/scenes"
	"github.com/rook-computer/pixelscale/internal/state"
	"github.com/rook-computer/pixelscale/internal/web"
)

// Console is the terminal the output draws over; system.Console on a
// device, nil elsewhere.
type Console interface {
	Acquire() error
	Release() error
}

type App struct {
	Store   *state.Store
	Render  render.Renderer
	Web     web.Server
	Buttons buttons.Buttons
	Console Console
	Logger  Logger

	// Screen is drawn into the virtual framebuffer; the status scene when nil.
	Screen render.Screen

	currentScreen render.Screen

	exitOnce atomic.Bool
	exitCh   chan error
}

func New(store *state.Store, renderer render.Renderer, webServer web.Server, buttonDriver buttons.Buttons) *App {
	return &App{Store: store, Render: renderer, Web: webServer, Buttons: buttonDriver, Logger: NoopLogger{}, exitCh: make(chan error, 1)}
}

// Exit requests the app to stop running. Only the first call counts.
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

// ResetFramebuffer drops the virtual framebuffer. The render loop notices
// on its next tick and recreates it.
func (app *App) ResetFramebuffer(ctx context.Context) error {
	fr, ok := app.Render.(*render.FrameRenderer)
	if !ok {
		return errors.New("renderer has no framebuffer")
	}
	fr.Framebuffer().Invalidate()
	app.Logger.Infof("app", "framebuffer reset requested")
	return nil
}

func (app *App) Start(ctx context.Context) error {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	if app.Logger == nil {
		app.Logger = NoopLogger{}
	}
	app.exitOnce.Store(false)
	app.Store.SetPhase(state.BOOTING)
	defer app.Store.SetPhase(state.STOPPED)

	if app.Render == nil {
		app.Render = &render.NoopRenderer{}
	}
	if err := app.Render.Start(ctx); err != nil {
		app.Logger.Errorf("app", "renderer start error: %v", err)
		return err
	}
	defer app.Render.Stop()

	if app.Console != nil {
		_ = app.Console.Acquire()
		defer func() { _ = app.Console.Release() }()
	}

	if app.Web != nil {
		if err := app.Web.Start(ctx); err != nil {
			app.Logger.Errorf("app", "web start error: %v", err)
			return err
		}
		defer app.Web.Stop()
		if srv, ok := app.Web.(*web.HTTPServer); ok {
			app.Store.SetStatusURL(StatusURL(srv.Addr))
		}
	}

	loopCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()

	if app.Buttons != nil {
		if err := app.Buttons.Start(loopCtx); err != nil {
			app.Logger.Errorf("input", "buttons start error: %v", err)
		} else {
			wg.Add(1)
			go func() {
				defer wg.Done()
				app.handleButtons(loopCtx)
			}()
			defer app.Buttons.Stop()
		}
	}

	screen := app.Screen
	if screen == nil {
		screen = scenes.NewStatusScreen(app.Logger)
	}
	if err := app.setScreen(ctx, screen); err != nil {
		return err
	}
	defer func() { _ = screen.Stop() }()

	app.Store.SetPhase(state.RUNNING)

	// First frame right away instead of one interval later.
	if fr, ok := app.Render.(*render.FrameRenderer); ok {
		fr.Frame(app.Store)
	} else {
		app.Render.RedrawWithState(app.Store.Snapshot())
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.Render.RunLoop(loopCtx, app.Store)
	}()

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-app.exitCh:
	}
	return err
}

func (app *App) handleButtons(ctx context.Context) {
	events := app.Buttons.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev {
			case buttons.Exit:
				app.Exit(nil)
			case buttons.Reset:
				if err := app.ResetFramebuffer(ctx); err != nil {
					app.Logger.Errorf("input", "reset failed: %v", err)
				}
			}
		}
	}
}

func (app *App) setScreen(ctx context.Context, screen render.Screen) error {
	if app.currentScreen != nil {
		_ = app.currentScreen.Stop()
	}
	app.currentScreen = screen
	app.Render.SetScreen(screen)
	return screen.Start(ctx)
}

// Logger interface and implementations
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

// FileLogger writes one line per entry. Safe for concurrent use.
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
