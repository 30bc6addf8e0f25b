//go:build windows

// Package stderr is a no-op on Windows, whose audio stack does not
// write to file descriptor 2 the way ALSA does.
package stderr

import "os"

// Capture returns the real stderr and a closed channel on Windows.
func Capture() (*os.File, <-chan string, error) {
	lines := make(chan string)
	close(lines)
	return os.Stderr, lines, nil
}

// Restore is a no-op on Windows.
func Restore() {}
