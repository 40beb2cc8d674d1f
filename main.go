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
	"github.com/rook-computer/pixelscale/internal/system"
	"github.com/rook-computer/pixelscale/internal/web"
)

func main() {
	fmt.Println("pixelscale starting")

	configPath := flag.String("config", "/etc/pixelscale.yaml", "YAML configuration file; defaults apply when it does not exist")
	debug := flag.Bool("debug", false, "enable debug logging to ./pixelscale-debug.log")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via PIXELSCALE_STDIO_LOG")
	device := flag.String("device", "", "framebuffer device (overrides display.device)")
	effect := flag.String("effect", "", "output effect: none | scanlines (overrides output.effect)")
	noConsole := flag.Bool("no-console", false, "leave the virtual terminal in text mode")
	flag.Parse()

	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv("PIXELSCALE_STDIO_LOG")
	}
	if logPath != "" {
		if err := redirectStdIO(logPath); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	var logger app.Logger = app.NoopLogger{}
	if *debug {
		f, err := os.OpenFile("./pixelscale-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}
	if *device != "" {
		cfg.Display.Device = *device
	}
	if *effect != "" {
		cfg.Output.Effect = *effect
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fbDev, err := display.OpenFB(cfg.Display.Device)
	if err != nil {
		fmt.Println("display error:", err)
		os.Exit(1)
	}
	defer fbDev.Close()
	fbDev.Logger = logger

	renderer, err := newRenderer(cfg, fbDev, logger)
	if err != nil {
		fmt.Println("renderer error:", err)
		os.Exit(2)
	}

	serverCfg, err := cfg.Server()
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}
	server := web.NewHTTPServer(serverCfg)
	server.Logger = logger

	keyboard := buttons.NewKeyboard()
	keyboard.Logger = logger

	store := state.NewStore()
	a := app.New(store, renderer, server, keyboard)
	a.Logger = logger
	if !*noConsole {
		a.Console = system.NewConsole(logger)
	}
	server.Handler = web.NewDefaultMux("", web.APIV1Config{
		Handlers: web.APIV1Handlers{ResetFunc: a.ResetFramebuffer},
		Deps:     web.APIV1Deps{State: store, Framebuffer: renderer.Framebuffer()},
	})

	if err := a.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
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
