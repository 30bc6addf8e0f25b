//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPlay,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpConnect,
			err:      errors.New("connection refused"),
			expected: "Failed to connect to server: connection refused",
		},
		{
			name:     "login operation",
			op:       OpLogin,
			err:      errors.New("unknown user"),
			expected: "Failed to log in: unknown user",
		},
		{
			name:     "playback operation",
			op:       OpPlay,
			err:      errors.New("no audio device"),
			expected: "Failed to start playback: no audio device",
		},
		{
			name:     "persistence operation",
			op:       OpPlaylistScan,
			err:      errors.New("no such directory"),
			expected: "Failed to scan playlist directory: no such directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpStartPlayer,
			context:  "road trip",
			err:      nil,
			expected: "",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpStartPlayer,
			context:  "",
			err:      errors.New("boom"),
			expected: "Failed to start player: boom",
		},
		{
			name:     "context included",
			op:       OpStartPlayer,
			context:  "road trip",
			err:      errors.New("unknown playlist"),
			expected: "Failed to start player 'road trip': unknown playlist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith() = %q, want %q", result, tt.expected)
			}
		})
	}
}
