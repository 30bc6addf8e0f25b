//go:build !windows

// Package stderr captures writes to file descriptor 2 made by C
// libraries (ALSA, minimp3) that bypass Go's os.Stderr. Without this
// their raw output would interleave with the daemon's log stream.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"syscall"
)

var (
	origFd    int
	pipeRead  *os.File
	pipeWrite *os.File
	captured  bool
)

// Capture redirects fd 2 into a pipe and returns a file on the
// original stderr plus a channel of captured lines. The caller logs
// through the returned file; whatever C libraries write to fd 2 shows
// up on the channel instead.
//
// Must be called before any C library initialization.
func Capture() (*os.File, <-chan string, error) {
	if captured {
		return nil, nil, os.ErrExist
	}

	r, w, err := os.Pipe()
	if err != nil {
		return nil, nil, err
	}

	origFd, err = syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return nil, nil, err
	}

	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(origFd)
		r.Close()
		w.Close()
		return nil, nil, err
	}

	pipeRead = r
	pipeWrite = w
	captured = true

	lines := make(chan string, 100)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(pipeRead)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			select {
			case lines <- line:
			default:
				// Channel full, drop rather than block the reader
			}
		}
	}()

	return os.NewFile(uintptr(origFd), "/dev/stderr"), lines, nil
}

// Restore puts fd 2 back. Should be called on shutdown.
func Restore() {
	if !captured {
		return
	}
	_ = syscall.Dup2(origFd, int(os.Stderr.Fd()))
	_ = syscall.Close(origFd)
	pipeWrite.Close()
	pipeRead.Close()
	captured = false
}
