//go:build !linux

package system

import "context"

// StartExitOnF4 needs evdev; elsewhere it only logs that it is unavailable.
func StartExitOnF4(ctx context.Context, logger keyboardExitLogger, onExit func()) {
	if logger != nil {
		logger.Infof("input", "F4 exit is only available on linux")
	}
}
