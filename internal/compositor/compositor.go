package compositor

import (
	"errors"
	"sync/atomic"
)

// Surface is the display the virtual framebuffer is presented on.
// Both dimensions are in device pixels and are read once per tick.
type Surface interface {
	PixelWidth() int
	PixelHeight() int
}

// ResizeNotifier is implemented by surfaces that can report size changes.
// The callback may be invoked from any goroutine.
type ResizeNotifier interface {
	OnResize(fn func(width, height int))
}

// Framebuffer is the off-screen color target the scene renders into.
type Framebuffer interface {
	IsValid() bool
	Recreate() error
}

// Transform is the on-screen quad displaying the virtual framebuffer.
// Position is measured from the display origin in display pixels.
type Transform interface {
	SetScale(x, y float64)
	SetPosition(x, y float64)
}

// Hook derives presentation parameters from a freshly computed scale.
// Hooks run after the output transform has been written.
type Hook interface {
	AfterEvaluate(scale int)
}

// HookFunc adapts a plain function to Hook.
type HookFunc func(scale int)

func (f HookFunc) AfterEvaluate(scale int) { f(scale) }

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Infof(string, string, ...interface{})  {}
func (noopLogger) Errorf(string, string, ...interface{}) {}

// Offset is the per-axis 0/1 nudge applied on odd display dimensions.
type Offset struct {
	X int
	Y int
}

// ScaleState is the result of the last evaluation.
type ScaleState struct {
	Scale        int
	Offset       Offset
	CachedWidth  int
	CachedHeight int
}

type Phase int

const (
	PhaseInitialized Phase = iota
	PhaseStable
	PhaseReevaluating
)

func (p Phase) String() string {
	switch p {
	case PhaseInitialized:
		return "initialized"
	case PhaseStable:
		return "stable"
	case PhaseReevaluating:
		return "reevaluating"
	default:
		return "unknown"
	}
}

// Config carries the collaborators of a Compositor.
// Framebuffer and Logger are optional.
type Config struct {
	Window      VirtualWindow
	Surface     Surface
	Framebuffer Framebuffer
	Output      Transform
	Hooks       []Hook
	Logger      Logger
}

// Compositor keeps the virtual framebuffer integer-scaled and centered on a
// display surface whose size may change between frames. It is not safe for
// concurrent use; Tick and Evaluate belong to the render goroutine.
type Compositor struct {
	window      VirtualWindow
	surface     Surface
	framebuffer Framebuffer
	output      Transform
	hooks       []Hook
	logger      Logger

	state       ScaleState
	phase       Phase
	degenerate  bool
	evaluations uint64
	recreations uint64

	// Set when the surface notifies; nil means the surface is polled.
	resized *atomic.Bool
}

// New validates the virtual window, wires the collaborators and runs the
// first evaluation.
func New(cfg Config) (*Compositor, error) {
	if err := cfg.Window.Validate(); err != nil {
		return nil, err
	}
	if cfg.Surface == nil {
		return nil, errors.New("compositor: nil display surface")
	}
	if cfg.Output == nil {
		return nil, errors.New("compositor: nil output transform")
	}

	c := &Compositor{
		window:      cfg.Window,
		surface:     cfg.Surface,
		framebuffer: cfg.Framebuffer,
		output:      cfg.Output,
		hooks:       append([]Hook(nil), cfg.Hooks...),
		logger:      cfg.Logger,
	}
	if c.logger == nil {
		c.logger = noopLogger{}
	}

	if notifier, ok := cfg.Surface.(ResizeNotifier); ok {
		c.resized = new(atomic.Bool)
		flag := c.resized
		notifier.OnResize(func(int, int) { flag.Store(true) })
	}

	c.phase = PhaseReevaluating
	c.evaluate()
	c.phase = PhaseInitialized
	c.logger.Infof("compositor", "initialized virtual=%dx%d display=%dx%d scale=%d",
		c.window.Width, c.window.Height, c.state.CachedWidth, c.state.CachedHeight, c.state.Scale)
	return c, nil
}

// Evaluate recomputes the scale and offset from the current display size
// and writes them to the output transform.
func (c *Compositor) Evaluate() {
	c.phase = PhaseReevaluating
	c.evaluate()
	c.phase = PhaseStable
}

func (c *Compositor) evaluate() {
	displayWidth := nonNegative(c.surface.PixelWidth())
	displayHeight := nonNegative(c.surface.PixelHeight())

	scale := min(displayWidth/c.window.Width, displayHeight/c.window.Height)

	c.state.Offset.X = displayWidth % 2
	c.state.Offset.Y = displayHeight % 2

	c.output.SetScale(float64(c.window.Width*scale), float64(c.window.Height*scale))
	c.output.SetPosition(float64(c.state.Offset.X), float64(c.state.Offset.Y))

	c.state.CachedWidth = displayWidth
	c.state.CachedHeight = displayHeight
	c.state.Scale = scale
	c.evaluations++

	if scale == 0 && !c.degenerate {
		c.logger.Infof("compositor", "display %dx%d smaller than virtual window %dx%d, output hidden",
			displayWidth, displayHeight, c.window.Width, c.window.Height)
	}
	c.degenerate = scale == 0

	for _, hook := range c.hooks {
		hook.AfterEvaluate(scale)
	}
}

// Tick is called once per frame. It re-evaluates only when the display size
// differs from the cached one and asks for framebuffer recreation when the
// framebuffer has been lost.
func (c *Compositor) Tick() {
	if c.resized == nil || c.resized.Swap(false) {
		width := nonNegative(c.surface.PixelWidth())
		height := nonNegative(c.surface.PixelHeight())
		if width != c.state.CachedWidth || height != c.state.CachedHeight {
			c.Evaluate()
		}
	}
	if c.phase == PhaseInitialized {
		c.phase = PhaseStable
	}

	if c.framebuffer != nil && !c.framebuffer.IsValid() {
		c.logger.Infof("compositor", "virtual framebuffer invalid, recreating")
		if err := c.framebuffer.Recreate(); err != nil {
			c.logger.Errorf("compositor", "framebuffer recreate failed: %v", err)
			return
		}
		c.recreations++
	}
}

// Scale returns the scale factor of the last evaluation.
func (c *Compositor) Scale() int { return c.state.Scale }

func (c *Compositor) State() ScaleState { return c.state }

func (c *Compositor) Window() VirtualWindow { return c.window }

func (c *Compositor) Phase() Phase { return c.phase }

// Evaluations counts completed evaluations, including the initial one.
func (c *Compositor) Evaluations() uint64 { return c.evaluations }

// Recreations counts successful framebuffer recreations requested by Tick.
func (c *Compositor) Recreations() uint64 { return c.recreations }

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
