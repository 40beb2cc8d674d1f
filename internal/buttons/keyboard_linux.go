//go:build linux

package buttons

import (
	"context"
	"encoding/binary"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// input_event = timeval + u16 type + u16 code + s32 value.
var (
	timevalSize = binary.Size(unix.Timeval{})
	eventSize   = timevalSize + 2 + 2 + 4
)

// Start opens every matching evdev device. It is best-effort: with no
// devices it logs and returns nil.
func (k *Keyboard) Start(ctx context.Context) error {
	paths, err := filepath.Glob(k.Glob)
	if err != nil || len(paths) == 0 {
		if k.Logger != nil {
			k.Logger.Infof("input", "no evdev devices match %s", k.Glob)
		}
		return nil
	}

	for _, path := range paths {
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
		if err != nil {
			continue
		}
		k.wg.Add(1)
		go k.read(ctx, path, fd)
	}
	return nil
}

func (k *Keyboard) read(ctx context.Context, path string, fd int) {
	defer k.wg.Done()
	defer unix.Close(fd)

	buf := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			return
		case <-k.done:
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			// Device might have gone away.
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			if k.Logger != nil {
				k.Logger.Errorf("input", "read %s: %v", path, err)
			}
			return
		}
		k.parse(buf[:n])
	}
}

// parse handles a sequence of input_event records.
func (k *Keyboard) parse(data []byte) {
	for off := 0; off+eventSize <= len(data); off += eventSize {
		rec := data[off : off+eventSize]
		typ := binary.LittleEndian.Uint16(rec[timevalSize : timevalSize+2])
		if typ != evKey {
			continue
		}
		code := binary.LittleEndian.Uint16(rec[timevalSize+2 : timevalSize+4])
		value := int32(binary.LittleEndian.Uint32(rec[timevalSize+4 : timevalSize+8]))
		k.emit(code, value)
	}
}
