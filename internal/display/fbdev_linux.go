//go:build linux

package display

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"unsafe"

	fb "github.com/gonutz/framebuffer"
	"golang.org/x/sys/unix"
)

// fbioGetVScreenInfo is FBIOGET_VSCREENINFO from linux/fb.h.
const fbioGetVScreenInfo = 0x4600

// fbVarScreenInfo mirrors struct fb_var_screeninfo; only xres and yres are read.
type fbVarScreenInfo struct {
	XRes, YRes uint32
	_          [38]uint32
}

type fbLogger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// FB is a Linux framebuffer device used as a display surface. The device
// sends no resize notification; Sync re-reads the video mode so a mode
// change (fbset, HDMI hotplug) shows up on the next compositor tick.
type FB struct {
	Logger fbLogger

	path   string
	dev    *fb.Device
	width  int
	height int
}

func OpenFB(path string) (*FB, error) {
	d := &FB{path: path}
	if err := d.open(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *FB) open() error {
	dev, err := fb.Open(d.path)
	if err != nil {
		return fmt.Errorf("open framebuffer %s: %w", d.path, err)
	}
	d.dev = dev
	bounds := dev.Bounds()
	d.width, d.height = bounds.Dx(), bounds.Dy()
	if d.Logger != nil {
		d.Logger.Infof("fb", "framebuffer open, bounds=%dx%d", d.width, d.height)
	}
	return nil
}

func (d *FB) PixelWidth() int  { return d.width }
func (d *FB) PixelHeight() int { return d.height }

// Sync reopens the device when the kernel reports a different resolution.
func (d *FB) Sync() error {
	w, h, err := queryMode(d.path)
	if err != nil {
		return err
	}
	if w == d.width && h == d.height {
		return nil
	}
	if d.Logger != nil {
		d.Logger.Infof("fb", "mode changed %dx%d -> %dx%d, reopening", d.width, d.height, w, h)
	}
	if d.dev != nil {
		d.dev.Close()
		d.dev = nil
	}
	return d.open()
}

// Present copies a composited frame into the device, clipped to both.
func (d *FB) Present(frame *image.RGBA) error {
	if d.dev == nil {
		return fmt.Errorf("framebuffer %s not open", d.path)
	}
	if frame == nil {
		return nil
	}
	bounds := d.dev.Bounds()
	area := frame.Bounds().Intersect(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			pixel := frame.RGBAAt(x, y)
			d.dev.Set(bounds.Min.X+x, bounds.Min.Y+y, color.RGBA{R: pixel.R, G: pixel.G, B: pixel.B, A: 0xFF})
		}
	}
	return nil
}

func (d *FB) Close() error {
	if d.dev != nil {
		d.dev.Close()
		d.dev = nil
	}
	return nil
}

func queryMode(path string) (int, int, error) {
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return 0, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var info fbVarScreenInfo
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), fbioGetVScreenInfo, uintptr(unsafe.Pointer(&info)))
	if errno != 0 {
		return 0, 0, fmt.Errorf("FBIOGET_VSCREENINFO on %s: %w", path, errno)
	}
	return int(info.XRes), int(info.YRes), nil
}
