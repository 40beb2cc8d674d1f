package render

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rook-computer/pixelscale/internal/compositor"
	"github.com/rook-computer/pixelscale/internal/effects"
	"github.com/rook-computer/pixelscale/internal/framebuffer"
	"github.com/rook-computer/pixelscale/internal/state"
)

// Options configures a FrameRenderer.
type Options struct {
	Window compositor.VirtualWindow
	Format framebuffer.Format
	// Effect is optional; it is registered as a compositor hook and as a
	// presenter overlay.
	Effect effects.Effect
	Border color.RGBA
	FPS    int
	Logger compositor.Logger
}

// FrameRenderer draws the current screen into the virtual framebuffer and
// presents it integer-scaled on a Display, one frame per tick.
type FrameRenderer struct {
	Logger compositor.Logger

	display    Display
	fb         *framebuffer.Buffer
	quad       *Quad
	compositor *compositor.Compositor
	presenter  *Presenter
	effect     effects.Effect
	interval   time.Duration

	fonts   *Fonts
	running atomic.Bool
	frames  atomic.Uint64

	mu      sync.Mutex
	current Screen
}

// NewFrameRenderer creates the virtual framebuffer and the output quad and
// runs the first scaling evaluation against display.
func NewFrameRenderer(display Display, opts Options) (*FrameRenderer, error) {
	if err := opts.Window.Validate(); err != nil {
		return nil, err
	}
	if display == nil {
		return nil, errors.New("render: nil display")
	}

	fb, err := framebuffer.New(opts.Window.Width, opts.Window.Height, opts.Format)
	if err != nil {
		return nil, err
	}
	quad := &Quad{}

	presenter := &Presenter{Border: opts.Border, Filter: opts.Format.Filter}
	var hooks []compositor.Hook
	if opts.Effect != nil {
		hooks = append(hooks, opts.Effect)
		presenter.Overlays = append(presenter.Overlays, opts.Effect)
	}

	comp, err := compositor.New(compositor.Config{
		Window:      opts.Window,
		Surface:     display,
		Framebuffer: fb,
		Output:      quad,
		Hooks:       hooks,
		Logger:      opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	return &FrameRenderer{
		Logger:     opts.Logger,
		display:    display,
		fb:         fb,
		quad:       quad,
		compositor: comp,
		presenter:  presenter,
		effect:     opts.Effect,
		interval:   frameInterval(opts.FPS),
	}, nil
}

func (r *FrameRenderer) Start(ctx context.Context) error {
	fonts, err := LoadFonts()
	if err != nil {
		r.errorf("font load failed, using bitmap face only: %v", err)
	}
	r.fonts = fonts
	r.running.Store(true)
	return nil
}

func (r *FrameRenderer) Stop() error {
	r.running.Store(false)
	return nil
}

// SetScreen sets the current logical screen to be drawn.
func (r *FrameRenderer) SetScreen(screen Screen) {
	r.mu.Lock()
	r.current = screen
	r.mu.Unlock()
}

func (r *FrameRenderer) screen() Screen {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Frame runs one tick: resize detection, state publication, drawing and
// presentation.
func (r *FrameRenderer) Frame(store *state.Store) {
	if syncer, ok := r.display.(Syncer); ok {
		if err := syncer.Sync(); err != nil {
			r.errorf("display sync failed: %v", err)
		}
	}
	r.compositor.Tick()
	store.UpdateDisplay(r.Info())
	r.RedrawWithState(store.Snapshot())
}

// RedrawWithState draws the current screen into the virtual framebuffer
// and presents it. A lost framebuffer presents the border only; the next
// tick recreates it.
func (r *FrameRenderer) RedrawWithState(snap state.State) {
	if !r.running.Load() {
		return
	}
	screen := r.screen()
	st := r.compositor.State()
	rect := r.quad.Rect(st.CachedWidth, st.CachedHeight)

	var frame *image.RGBA
	ok := r.fb.Draw(func(img *image.RGBA) {
		if screen != nil {
			screen.Draw(NewCanvas(img, r.fonts), snap)
		}
		frame = r.presenter.Compose(img, rect, st.CachedWidth, st.CachedHeight)
	})
	if !ok {
		frame = r.presenter.Compose(nil, rect, st.CachedWidth, st.CachedHeight)
	}
	if err := r.display.Present(frame); err != nil {
		r.errorf("present failed: %v", err)
	}
	r.frames.Add(1)
}

// RunLoop ticks at the configured frame rate until the context is done.
func (r *FrameRenderer) RunLoop(ctx context.Context, store *state.Store) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	lastLog := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Frame(store)
			if r.Logger != nil && time.Since(lastLog) > 10*time.Second {
				st := r.compositor.State()
				r.Logger.Infof("render", "heartbeat frame=%d display=%dx%d scale=%d",
					r.frames.Load(), st.CachedWidth, st.CachedHeight, st.Scale)
				lastLog = time.Now()
			}
		}
	}
}

// Info describes the presentation state for the store and the API.
func (r *FrameRenderer) Info() state.DisplayInfo {
	st := r.compositor.State()
	window := r.compositor.Window()
	rect := r.quad.Rect(st.CachedWidth, st.CachedHeight)
	info := state.DisplayInfo{
		VirtualWidth:  window.Width,
		VirtualHeight: window.Height,
		DisplayWidth:  st.CachedWidth,
		DisplayHeight: st.CachedHeight,
		Scale:         st.Scale,
		OffsetX:       st.Offset.X,
		OffsetY:       st.Offset.Y,
		QuadX:         rect.Min.X,
		QuadY:         rect.Min.Y,
		QuadWidth:     rect.Dx(),
		QuadHeight:    rect.Dy(),
		Evaluations:   r.compositor.Evaluations(),
		Recreations:   r.compositor.Recreations(),
		Frames:        r.frames.Load(),
		Effect:        effects.NameNone,
	}
	if r.effect != nil {
		info.Effect = r.effect.Name()
		info.EffectActive = true
		if toggled, ok := r.effect.(interface{ Enabled() bool }); ok {
			info.EffectActive = toggled.Enabled()
		}
	}
	return info
}

func (r *FrameRenderer) Compositor() *compositor.Compositor { return r.compositor }

func (r *FrameRenderer) Framebuffer() *framebuffer.Buffer { return r.fb }

func (r *FrameRenderer) Quad() *Quad { return r.quad }

func (r *FrameRenderer) errorf(format string, args ...interface{}) {
	if r.Logger != nil {
		r.Logger.Errorf("render", format, args...)
	}
}
