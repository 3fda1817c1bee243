//go:build linux

package system

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

// StartExitOnF4 watches every /dev/input/event* device and calls onExit once
// when F4 goes down. Without input devices it logs and returns.
func StartExitOnF4(ctx context.Context, logger keyboardExitLogger, onExit func()) {
	if onExit == nil {
		return
	}

	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil || len(paths) == 0 {
		if logger != nil {
			logger.Infof("input", "no evdev devices found for F4 exit")
		}
		return
	}

	var once sync.Once
	trigger := func() {
		once.Do(func() {
			if logger != nil {
				logger.Infof("input", "F4 pressed: exiting")
			}
			onExit()
		})
	}

	layout := nativeEventLayout()
	for _, path := range paths {
		go watchDevice(ctx, path, layout, trigger)
	}
}

// nativeEventLayout sizes struct input_event for this architecture:
// timeval, u16 type, u16 code, s32 value.
func nativeEventLayout() eventLayout {
	tv := binary.Size(unix.Timeval{})
	if tv <= 0 {
		tv = 16
	}
	return eventLayout{timevalSize: tv}
}

func watchDevice(ctx context.Context, path string, layout eventLayout, trigger func()) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer func() { _ = f.Close() }()

	buf := make([]byte, 64*layout.size())
	for ctx.Err() == nil {
		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			// Device went away.
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
			return
		}
		if layout.keyDown(buf[:n], keyF4) {
			trigger()
			return
		}
	}
}
