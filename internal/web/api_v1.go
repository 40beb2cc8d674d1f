package web

import (
	"context"
	"encoding/json"
	"image"
	"image/png"
	"net/http"

	"github.com/rook-computer/pixelscale/internal/state"
)

// StateSource is the published presentation state, normally *state.Store.
type StateSource interface {
	Snapshot() state.State
}

// FrameSource returns a copy of an image, normally the virtual framebuffer.
type FrameSource interface {
	Snapshot() (*image.RGBA, error)
}

type APIV1Deps struct {
	State       StateSource
	Framebuffer FrameSource
}

type APIV1Handlers struct {
	// ResetFunc drops the virtual framebuffer; the render loop recreates it
	// on its next tick.
	ResetFunc func(ctx context.Context) error
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type displayResponse struct {
	Phase     string            `json:"phase"`
	StatusURL string            `json:"statusUrl,omitempty"`
	Display   state.DisplayInfo `json:"display"`
}

func apiV1Router(handlers APIV1Handlers, deps APIV1Deps) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/display", func(w http.ResponseWriter, r *http.Request) { handleDisplay(w, r, deps) })
	mux.HandleFunc("/framebuffer.png", func(w http.ResponseWriter, r *http.Request) { handleFramebufferPNG(w, r, deps) })
	mux.HandleFunc("/framebuffer/reset", func(w http.ResponseWriter, r *http.Request) {
		handleReset(w, r, handlers.ResetFunc)
	})
	return mux
}

func handleDisplay(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if deps.State == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "state not configured")
		return
	}
	snap := deps.State.Snapshot()
	writeJSON(w, http.StatusOK, displayResponse{
		Phase:     snap.Phase.String(),
		StatusURL: snap.StatusURL,
		Display:   snap.Display,
	})
}

func handleFramebufferPNG(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if deps.Framebuffer == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "framebuffer not configured")
		return
	}
	img, err := deps.Framebuffer.Snapshot()
	if err != nil {
		writeAPIError(w, http.StatusServiceUnavailable, "framebuffer_unavailable", err.Error())
		return
	}
	WritePNG(w, img)
}

func handleReset(w http.ResponseWriter, r *http.Request, resetFunc func(ctx context.Context) error) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if resetFunc == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "reset not configured")
		return
	}
	if err := resetFunc(r.Context()); err != nil {
		writeAPIError(w, http.StatusInternalServerError, "reset_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, okResponse{OK: true})
}

// WritePNG encodes img as the response body.
func WritePNG(w http.ResponseWriter, img image.Image) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_ = png.Encode(w, img)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}

// WriteJSON and WriteError expose the API's response shape to other
// binaries' endpoints.
func WriteJSON(w http.ResponseWriter, status int, v any) { writeJSON(w, status, v) }

func WriteError(w http.ResponseWriter, status int, code, message string) {
	writeAPIError(w, status, code, message)
}
