package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/pixelscale/internal/app"
	"github.com/rook-computer/pixelscale/internal/buttons"
	"github.com/rook-computer/pixelscale/internal/config"
	"github.com/rook-computer/pixelscale/internal/display"
	"github.com/rook-computer/pixelscale/internal/render"
	"github.com/rook-computer/pixelscale/internal/state"
	"github.com/rook-computer/pixelscale/internal/web"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file (optional)")
	listenAddr := flag.String("listen", "", "http listen address; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", false, "enable dev mode; also configurable via "+web.EnvDevMode)
	staticDir := flag.String("static-dir", "", "serve static UI from this directory (optional); when empty, embedded web UI assets are served")
	width := flag.Int("width", 1280, "initial simulated display width")
	height := flag.Int("height", 720, "initial simulated display height")
	effect := flag.String("effect", "", "output effect: none | scanlines")
	verbose := flag.Bool("v", false, "log to stderr")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}
	if *effect != "" {
		cfg.Output.Effect = *effect
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}
	serverCfg, err := cfg.Server()
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}
	if *listenAddr != "" {
		serverCfg.ListenAddr = *listenAddr
	}
	if *devMode {
		serverCfg.DevMode = true
	}

	var logger app.Logger = app.NoopLogger{}
	if *verbose {
		logger = app.NewFileLogger(os.Stderr)
	}

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mem := display.NewMemory(*width, *height)
	renderer, err := newRenderer(cfg, mem, logger)
	if err != nil {
		fmt.Println("renderer error:", err)
		os.Exit(2)
	}

	store := state.NewStore()
	server := web.NewHTTPServer(serverCfg)
	server.Logger = logger

	a := app.New(store, renderer, server, buttons.NewNoopButtons())
	a.Logger = logger

	control := NewSimControl(mem, renderer.Framebuffer(), *width, *height)
	mux := web.NewDefaultMux(*staticDir, web.APIV1Config{
		Handlers: web.APIV1Handlers{ResetFunc: a.ResetFramebuffer},
		Deps:     web.APIV1Deps{State: store, Framebuffer: renderer.Framebuffer()},
	})
	registerSimEndpoints(mux, control)
	server.Handler = mux

	fmt.Printf("pixelscale simulator: virtual %dx%d on a %dx%d display\n", cfg.Virtual.Width, cfg.Virtual.Height, *width, *height)

	if err := a.Start(processCtx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("app error:", err)
		os.Exit(1)
	}
}

func newRenderer(cfg *config.Config, d render.Display, logger app.Logger) (*render.FrameRenderer, error) {
	opts, err := cfg.RenderOptions()
	if err != nil {
		return nil, err
	}
	opts.Logger = logger
	return render.NewFrameRenderer(d, opts)
}
