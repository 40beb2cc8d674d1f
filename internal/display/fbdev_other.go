//go:build !linux

package display

import (
	"errors"
	"image"
)

var errNoFramebuffer = errors.New("framebuffer devices are only available on linux")

type fbLogger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// FB is unavailable off linux; OpenFB always fails.
type FB struct {
	Logger fbLogger
}

func OpenFB(path string) (*FB, error) { return nil, errNoFramebuffer }

func (d *FB) PixelWidth() int                 { return 0 }
func (d *FB) PixelHeight() int                { return 0 }
func (d *FB) Sync() error                     { return errNoFramebuffer }
func (d *FB) Present(frame *image.RGBA) error { return errNoFramebuffer }
func (d *FB) Close() error                    { return nil }
