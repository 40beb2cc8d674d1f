package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rook-computer/pixelscale/internal/display"
	"github.com/rook-computer/pixelscale/internal/framebuffer"
	"github.com/rook-computer/pixelscale/internal/web"
)

// maxSimDimension bounds /sim/resize so a typo cannot allocate gigabytes.
const maxSimDimension = 8192

// SimControl drives the simulated display from HTTP: the "window" can be
// resized and the framebuffer lost at will.
type SimControl struct {
	display *display.Memory
	fb      *framebuffer.Buffer

	startWidth  int
	startHeight int
}

func NewSimControl(d *display.Memory, fb *framebuffer.Buffer, width, height int) *SimControl {
	return &SimControl{display: d, fb: fb, startWidth: width, startHeight: height}
}

func (c *SimControl) Resize(width, height int) error {
	if width < 0 || height < 0 || width > maxSimDimension || height > maxSimDimension {
		return fmt.Errorf("size %dx%d out of range [0,%d]", width, height, maxSimDimension)
	}
	c.display.SetSize(width, height)
	return nil
}

// Invalidate simulates a lost render target.
func (c *SimControl) Invalidate() { c.fb.Invalidate() }

// Reset restores the startup display size.
func (c *SimControl) Reset() {
	c.display.SetSize(c.startWidth, c.startHeight)
}

type simDisplay struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Framebuffer string `json:"framebuffer"`
}

func (c *SimControl) status() simDisplay {
	w, h := c.display.Size()
	fb := "valid"
	if !c.fb.IsValid() {
		fb = "invalid"
	}
	return simDisplay{Width: w, Height: h, Framebuffer: fb}
}

func registerSimEndpoints(mux *http.ServeMux, control *SimControl) {
	mux.HandleFunc("/sim/resize", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			web.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
			return
		}
		var req struct {
			Width  *int `json:"width"`
			Height *int `json:"height"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Width == nil || req.Height == nil {
			web.WriteError(w, http.StatusBadRequest, "invalid_json", `expected {"width":N,"height":N}`)
			return
		}
		if err := control.Resize(*req.Width, *req.Height); err != nil {
			web.WriteError(w, http.StatusBadRequest, "invalid_size", err.Error())
			return
		}
		web.WriteJSON(w, http.StatusOK, control.status())
	})

	mux.HandleFunc("/sim/invalidate", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			web.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
			return
		}
		control.Invalidate()
		web.WriteJSON(w, http.StatusOK, control.status())
	})

	mux.HandleFunc("/sim/reset", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			web.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
			return
		}
		control.Reset()
		web.WriteJSON(w, http.StatusOK, control.status())
	})

	mux.HandleFunc("/sim/display", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			web.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
			return
		}
		web.WriteJSON(w, http.StatusOK, control.status())
	})

	mux.HandleFunc("/sim/display.png", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			web.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
			return
		}
		frame := control.display.Snapshot()
		if frame == nil {
			web.WriteError(w, http.StatusServiceUnavailable, "no_frame", "nothing presented yet")
			return
		}
		web.WritePNG(w, frame)
	})
}
