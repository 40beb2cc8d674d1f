//go:build !linux

package buttons

import "context"

// Start is a no-op without evdev.
func (k *Keyboard) Start(ctx context.Context) error {
	if k.Logger != nil {
		k.Logger.Infof("input", "keyboard input unsupported on this platform")
	}
	return nil
}
