package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/rook-computer/pixelscale/internal/app"
	"github.com/rook-computer/pixelscale/internal/config"
	"github.com/rook-computer/pixelscale/internal/display/glwindow"
	"github.com/rook-computer/pixelscale/internal/render"
	"github.com/rook-computer/pixelscale/internal/state"
	"github.com/rook-computer/pixelscale/internal/web"
)

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "YAML configuration file (optional)")
	width := flag.Int("width", 960, "initial window width")
	height := flag.Int("height", 720, "initial window height")
	effect := flag.String("effect", "", "output effect: none | scanlines")
	serve := flag.Bool("serve", false, "also run the status web server")
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

	var logger app.Logger = app.NoopLogger{}
	if *verbose {
		logger = app.NewFileLogger(os.Stderr)
	}

	win, err := glwindow.Open("pixelscale", *width, *height, logger)
	if err != nil {
		fmt.Println("window error:", err)
		os.Exit(1)
	}
	defer win.Close()

	opts, err := cfg.RenderOptions()
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}
	opts.Logger = logger
	renderer, err := render.NewFrameRenderer(win, opts)
	if err != nil {
		fmt.Println("renderer error:", err)
		os.Exit(2)
	}

	store := state.NewStore()
	var server web.Server = web.NoopServer{}
	a := app.New(store, renderer, server, win.Input())
	a.Logger = logger
	if *serve {
		serverCfg, err := cfg.Server()
		if err != nil {
			fmt.Println("server config error:", err)
			os.Exit(2)
		}
		httpServer := web.NewHTTPServer(serverCfg)
		httpServer.Logger = logger
		httpServer.Handler = web.NewDefaultMux("", web.APIV1Config{
			Handlers: web.APIV1Handlers{ResetFunc: a.ResetFramebuffer},
			Deps:     web.APIV1Deps{State: store, Framebuffer: renderer.Framebuffer()},
		})
		a.Web = httpServer
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	appCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- a.Start(appCtx)
		cancel()
	}()

	win.Run(appCtx)
	a.Exit(nil)

	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("app error:", err)
		os.Exit(1)
	}
}
