package web

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvListenAddr = "PIXELSCALE_LISTEN"
	EnvDevMode    = "PIXELSCALE_DEV"

	DefaultListenAddr = ":8080"
)

// ServerConfig contains settings for running the HTTP server.
type ServerConfig struct {
	ListenAddr string
	DevMode    bool
}

// ApplyEnv overrides cfg with the PIXELSCALE_* environment variables.
func ApplyEnv(cfg ServerConfig) (ServerConfig, error) {
	if listenAddr := os.Getenv(EnvListenAddr); listenAddr != "" {
		cfg.ListenAddr = listenAddr
	}

	if raw := os.Getenv(EnvDevMode); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("%s must be a boolean (got %q): %w", EnvDevMode, raw, err)
		}
		cfg.DevMode = parsed
	}

	return cfg, nil
}
