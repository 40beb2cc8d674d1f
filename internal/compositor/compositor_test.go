package compositor

import (
	"errors"
	"testing"
)

type fakeSurface struct {
	width, height int
	reads         int
}

func (s *fakeSurface) PixelWidth() int  { s.reads++; return s.width }
func (s *fakeSurface) PixelHeight() int { return s.height }

type notifyingSurface struct {
	fakeSurface
	listeners []func(int, int)
}

func (s *notifyingSurface) OnResize(fn func(int, int)) { s.listeners = append(s.listeners, fn) }

func (s *notifyingSurface) resize(w, h int) {
	s.width, s.height = w, h
	for _, fn := range s.listeners {
		fn(w, h)
	}
}

type fakeTransform struct {
	scaleX, scaleY float64
	posX, posY     float64
	writes         int
}

func (t *fakeTransform) SetScale(x, y float64)    { t.scaleX, t.scaleY = x, y; t.writes++ }
func (t *fakeTransform) SetPosition(x, y float64) { t.posX, t.posY = x, y }

type fakeFramebuffer struct {
	valid     bool
	recreates int
	err       error
}

func (f *fakeFramebuffer) IsValid() bool { return f.valid }

func (f *fakeFramebuffer) Recreate() error {
	f.recreates++
	if f.err != nil {
		return f.err
	}
	f.valid = true
	return nil
}

func newTestCompositor(t *testing.T, vw, vh int, surface Surface, hooks ...Hook) (*Compositor, *fakeTransform) {
	t.Helper()
	out := &fakeTransform{}
	c, err := New(Config{
		Window:  VirtualWindow{Width: vw, Height: vh},
		Surface: surface,
		Output:  out,
		Hooks:   hooks,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, out
}

func TestEvaluateExamples(t *testing.T) {
	tests := []struct {
		name       string
		vw, vh     int
		dw, dh     int
		wantScale  int
		wantOffset Offset
	}{
		{"exact fit", 320, 240, 1280, 960, 4, Offset{0, 0}},
		{"odd width", 320, 240, 1281, 960, 4, Offset{1, 0}},
		{"800x600", 320, 240, 800, 600, 2, Offset{0, 0}},
		{"narrow display", 320, 240, 100, 600, 0, Offset{0, 0}},
		{"odd both", 320, 240, 1921, 1081, 4, Offset{1, 1}},
		{"height bound", 320, 240, 3000, 500, 2, Offset{0, 0}},
		{"same size", 320, 240, 320, 240, 1, Offset{0, 0}},
		{"zero display", 320, 240, 0, 0, 0, Offset{0, 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, out := newTestCompositor(t, tc.vw, tc.vh, &fakeSurface{width: tc.dw, height: tc.dh})
			st := c.State()
			if st.Scale != tc.wantScale {
				t.Errorf("scale = %d, want %d", st.Scale, tc.wantScale)
			}
			if st.Offset != tc.wantOffset {
				t.Errorf("offset = %+v, want %+v", st.Offset, tc.wantOffset)
			}
			if st.CachedWidth != tc.dw || st.CachedHeight != tc.dh {
				t.Errorf("cached = %dx%d, want %dx%d", st.CachedWidth, st.CachedHeight, tc.dw, tc.dh)
			}
			if out.scaleX != float64(tc.vw*tc.wantScale) || out.scaleY != float64(tc.vh*tc.wantScale) {
				t.Errorf("transform scale = (%v, %v)", out.scaleX, out.scaleY)
			}
			if out.posX != float64(tc.wantOffset.X) || out.posY != float64(tc.wantOffset.Y) {
				t.Errorf("transform position = (%v, %v)", out.posX, out.posY)
			}
			if c.Scale() != tc.wantScale {
				t.Errorf("Scale() = %d, want %d", c.Scale(), tc.wantScale)
			}
		})
	}
}

func TestEvaluateMatchesIntegerDivision(t *testing.T) {
	for vw := 1; vw <= 7; vw++ {
		for vh := 1; vh <= 7; vh++ {
			for dw := 0; dw <= 30; dw += 3 {
				for dh := 0; dh <= 30; dh += 5 {
					c, _ := newTestCompositor(t, vw, vh, &fakeSurface{width: dw, height: dh})
					want := min(dw/vw, dh/vh)
					st := c.State()
					if st.Scale != want || st.Offset != (Offset{dw % 2, dh % 2}) {
						t.Fatalf("v=%dx%d d=%dx%d: got %+v, want scale %d", vw, vh, dw, dh, st, want)
					}
					if st.Scale*vw > dw || st.Scale*vh > dh {
						t.Fatalf("v=%dx%d d=%dx%d: scale %d overflows display", vw, vh, dw, dh, st.Scale)
					}
				}
			}
		}
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	c, out := newTestCompositor(t, 320, 240, &fakeSurface{width: 1281, height: 961})
	first, firstOut := c.State(), *out
	c.Evaluate()
	if c.State() != first {
		t.Errorf("state changed: %+v != %+v", c.State(), first)
	}
	if out.scaleX != firstOut.scaleX || out.scaleY != firstOut.scaleY || out.posX != firstOut.posX || out.posY != firstOut.posY {
		t.Errorf("transform changed: %+v != %+v", *out, firstOut)
	}
}

func TestNewRejectsEmptyWindow(t *testing.T) {
	tests := []VirtualWindow{{0, 240}, {320, 0}, {-1, 240}, {320, -5}}
	for _, w := range tests {
		out := &fakeTransform{}
		_, err := New(Config{Window: w, Surface: &fakeSurface{width: 800, height: 600}, Output: out})
		var cfgErr *ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Errorf("window %+v: err = %v, want ConfigurationError", w, err)
		}
		if out.writes != 0 {
			t.Errorf("window %+v: transform written before validation", w)
		}
	}
}

func TestNewRequiresCollaborators(t *testing.T) {
	w := VirtualWindow{Width: 320, Height: 240}
	if _, err := New(Config{Window: w, Output: &fakeTransform{}}); err == nil {
		t.Error("expected error for nil surface")
	}
	if _, err := New(Config{Window: w, Surface: &fakeSurface{}}); err == nil {
		t.Error("expected error for nil output")
	}
}

func TestTickEvaluatesOncePerChange(t *testing.T) {
	surface := &fakeSurface{width: 1280, height: 960}
	c, _ := newTestCompositor(t, 320, 240, surface)
	if c.Phase() != PhaseInitialized {
		t.Fatalf("phase = %v, want initialized", c.Phase())
	}
	if c.Evaluations() != 1 {
		t.Fatalf("evaluations after init = %d, want 1", c.Evaluations())
	}

	for i := 0; i < 5; i++ {
		c.Tick()
	}
	if c.Evaluations() != 1 {
		t.Errorf("evaluations without change = %d, want 1", c.Evaluations())
	}
	if c.Phase() != PhaseStable {
		t.Errorf("phase = %v, want stable", c.Phase())
	}

	surface.width, surface.height = 800, 600
	c.Tick()
	c.Tick()
	if c.Evaluations() != 2 {
		t.Errorf("evaluations after one change = %d, want 2", c.Evaluations())
	}
	if c.Scale() != 2 {
		t.Errorf("scale = %d, want 2", c.Scale())
	}

	surface.height = 601
	c.Tick()
	if c.Evaluations() != 3 {
		t.Errorf("evaluations after height change = %d, want 3", c.Evaluations())
	}
	if got := c.State().Offset; got != (Offset{0, 1}) {
		t.Errorf("offset = %+v, want {0 1}", got)
	}
}

func TestTickWithResizeNotifier(t *testing.T) {
	surface := &notifyingSurface{fakeSurface: fakeSurface{width: 640, height: 480}}
	c, _ := newTestCompositor(t, 320, 240, surface)
	if len(surface.listeners) != 1 {
		t.Fatalf("listeners = %d, want 1", len(surface.listeners))
	}

	reads := surface.reads
	c.Tick()
	c.Tick()
	if surface.reads != reads {
		t.Errorf("surface read %d times without a notification", surface.reads-reads)
	}

	surface.resize(1280, 960)
	c.Tick()
	if c.Evaluations() != 2 || c.Scale() != 4 {
		t.Errorf("after resize: evaluations=%d scale=%d", c.Evaluations(), c.Scale())
	}

	// A notification that does not change the size must not evaluate.
	surface.resize(1280, 960)
	c.Tick()
	if c.Evaluations() != 2 {
		t.Errorf("spurious notification evaluated: %d", c.Evaluations())
	}

	// Several notifications between ticks collapse into one evaluation.
	surface.resize(700, 700)
	surface.resize(960, 720)
	c.Tick()
	if c.Evaluations() != 3 || c.Scale() != 3 {
		t.Errorf("after burst: evaluations=%d scale=%d", c.Evaluations(), c.Scale())
	}
}

func TestTickRecreatesInvalidFramebuffer(t *testing.T) {
	fb := &fakeFramebuffer{valid: true}
	c, err := New(Config{
		Window:      VirtualWindow{Width: 320, Height: 240},
		Surface:     &fakeSurface{width: 640, height: 480},
		Framebuffer: fb,
		Output:      &fakeTransform{},
	})
	if err != nil {
		t.Fatal(err)
	}

	c.Tick()
	if fb.recreates != 0 {
		t.Fatalf("recreated a valid framebuffer")
	}

	fb.valid = false
	c.Tick()
	if fb.recreates != 1 || !fb.valid || c.Recreations() != 1 {
		t.Errorf("recreates=%d valid=%v recreations=%d", fb.recreates, fb.valid, c.Recreations())
	}
	if c.Evaluations() != 1 {
		t.Errorf("framebuffer recovery triggered evaluation")
	}

	fb.valid = false
	fb.err = errors.New("device lost")
	c.Tick()
	if c.Recreations() != 1 {
		t.Errorf("failed recreation counted")
	}
}

func TestHooksSeePostEvaluationScale(t *testing.T) {
	surface := &fakeSurface{width: 960, height: 720}
	out := &fakeTransform{}
	var seen []int
	var scaleAtHook float64
	hook := HookFunc(func(scale int) {
		seen = append(seen, scale)
		scaleAtHook = out.scaleX
	})
	c, err := New(Config{
		Window:  VirtualWindow{Width: 320, Height: 240},
		Surface: surface,
		Output:  out,
		Hooks:   []Hook{hook},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(seen) != 1 || seen[0] != 3 {
		t.Fatalf("hook calls = %v, want [3]", seen)
	}
	if scaleAtHook != 960 {
		t.Errorf("transform not written before hook: %v", scaleAtHook)
	}

	surface.width, surface.height = 320, 240
	c.Tick()
	if len(seen) != 2 || seen[1] != 1 {
		t.Errorf("hook calls = %v, want [3 1]", seen)
	}
}

func TestNegativeSurfaceDimensions(t *testing.T) {
	c, out := newTestCompositor(t, 320, 240, &fakeSurface{width: -10, height: -3})
	if c.Scale() != 0 || c.State().Offset != (Offset{}) {
		t.Errorf("state = %+v", c.State())
	}
	if out.scaleX != 0 || out.scaleY != 0 {
		t.Errorf("transform scale = (%v, %v)", out.scaleX, out.scaleY)
	}
}

func TestPhaseTransitions(t *testing.T) {
	surface := &fakeSurface{width: 640, height: 480}
	var c *Compositor
	var during []Phase
	hook := HookFunc(func(int) {
		if c != nil {
			during = append(during, c.Phase())
		}
	})
	c, _ = newTestCompositor(t, 320, 240, surface, hook)

	if c.Phase() != PhaseInitialized {
		t.Fatalf("after New: %v", c.Phase())
	}
	c.Tick()
	if c.Phase() != PhaseStable {
		t.Fatalf("after first tick: %v", c.Phase())
	}

	surface.width = 1280
	c.Tick()
	if c.Phase() != PhaseStable {
		t.Errorf("after resize tick: %v", c.Phase())
	}
	if len(during) != 1 || during[0] != PhaseReevaluating {
		t.Errorf("phases seen by hook = %v", during)
	}
}
