package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rook-computer/pixelscale/internal/display"
	"github.com/rook-computer/pixelscale/internal/framebuffer"
)

func newSimMux(t *testing.T) (*http.ServeMux, *display.Memory, *framebuffer.Buffer) {
	t.Helper()
	mem := display.NewMemory(640, 480)
	fb, err := framebuffer.New(320, 240, framebuffer.DefaultFormat())
	if err != nil {
		t.Fatal(err)
	}
	mux := http.NewServeMux()
	registerSimEndpoints(mux, NewSimControl(mem, fb, 640, 480))
	return mux, mem, fb
}

func post(mux http.Handler, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))
	return rec
}

func TestSimResize(t *testing.T) {
	mux, mem, _ := newSimMux(t)
	var notified [][2]int
	mem.OnResize(func(w, h int) { notified = append(notified, [2]int{w, h}) })

	rec := post(mux, "/sim/resize", `{"width":1281,"height":960}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	var got simDisplay
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Width != 1281 || got.Height != 960 || got.Framebuffer != "valid" {
		t.Errorf("status = %+v", got)
	}
	if len(notified) != 1 {
		t.Errorf("notifications = %v", notified)
	}

	for _, body := range []string{`{"width":10}`, `nope`, `{"width":-1,"height":5}`, `{"width":99999,"height":5}`} {
		if rec := post(mux, "/sim/resize", body); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d", body, rec.Code)
		}
	}

	// Zero is a legal (degenerate) size.
	if rec := post(mux, "/sim/resize", `{"width":0,"height":0}`); rec.Code != http.StatusOK {
		t.Errorf("zero size status = %d", rec.Code)
	}
}

func TestSimInvalidateAndReset(t *testing.T) {
	mux, mem, fb := newSimMux(t)
	if rec := post(mux, "/sim/invalidate", ""); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "invalid") {
		t.Errorf("invalidate: %d %s", rec.Code, rec.Body.String())
	}
	if fb.IsValid() {
		t.Error("framebuffer still valid")
	}

	mem.SetSize(100, 100)
	if rec := post(mux, "/sim/reset", ""); rec.Code != http.StatusOK {
		t.Errorf("reset status = %d", rec.Code)
	}
	if w, h := mem.Size(); w != 640 || h != 480 {
		t.Errorf("size after reset = %dx%d", w, h)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sim/reset", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET reset status = %d", rec.Code)
	}
}

func TestSimDisplayPNG(t *testing.T) {
	mux, mem, _ := newSimMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sim/display.png", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("before present status = %d", rec.Code)
	}

	if err := mem.Present(image.NewRGBA(image.Rect(0, 0, 640, 480))); err != nil {
		t.Fatal(err)
	}
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sim/display.png", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 640 || img.Bounds().Dy() != 480 {
		t.Errorf("bounds = %v", img.Bounds())
	}
}
