package compositor

import "fmt"

// VirtualWindow is the logical resolution the scene is rendered at.
type VirtualWindow struct {
	Width  int
	Height int
}

// NewVirtualWindow returns a validated virtual window.
func NewVirtualWindow(width, height int) (VirtualWindow, error) {
	w := VirtualWindow{Width: width, Height: height}
	if err := w.Validate(); err != nil {
		return VirtualWindow{}, err
	}
	return w, nil
}

// Validate reports a *ConfigurationError for a zero-area window.
func (w VirtualWindow) Validate() error {
	if w.Width <= 0 {
		return &ConfigurationError{Field: "width", Value: w.Width}
	}
	if w.Height <= 0 {
		return &ConfigurationError{Field: "height", Value: w.Height}
	}
	return nil
}

// ConfigurationError reports a virtual window that has no valid scale.
type ConfigurationError struct {
	Field string
	Value int
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("virtual window %s must be positive (got %d)", e.Field, e.Value)
}
