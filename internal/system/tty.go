// Package system owns the Linux console the fbdev output draws over.
package system

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// Console switches the active virtual terminal into graphics mode for the
// lifetime of the app so the text cursor does not blink over the frame.
type Console struct {
	Logger logger
	// Paths are tried in order; the first that accepts the request wins.
	Paths []string

	graphics bool
}

func NewConsole(l logger) *Console {
	return &Console{Logger: l, Paths: []string{"/dev/tty", "/dev/tty0"}}
}

// Acquire hides the cursor and sets KD_GRAPHICS. Failures are logged; the
// first one is returned.
func (c *Console) Acquire() error {
	err := c.setMode(kdGraphics)
	if err != nil {
		c.errorf("KD_GRAPHICS failed: %v", err)
	} else {
		c.graphics = true
		c.infof("KD_GRAPHICS set")
	}
	if cerr := c.writeVT(hideCursor); cerr != nil {
		c.errorf("hide cursor failed: %v", cerr)
		if err == nil {
			err = cerr
		}
	}
	return err
}

// Release restores the cursor and, when Acquire switched it, text mode.
func (c *Console) Release() error {
	err := c.writeVT(showCursor)
	if err != nil {
		c.errorf("show cursor failed: %v", err)
	}
	if !c.graphics {
		return err
	}
	if merr := c.setMode(kdText); merr != nil {
		c.errorf("KD_TEXT failed: %v", merr)
		return merr
	}
	c.graphics = false
	c.infof("KD_TEXT set")
	return err
}

const (
	hideCursor = "\x1b[?25l"
	showCursor = "\x1b[?25h"
)

func (c *Console) infof(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Infof("tty", format, args...)
	}
}

func (c *Console) errorf(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Errorf("tty", format, args...)
	}
}
