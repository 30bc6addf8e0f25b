// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Connection operations
	OpConnect    Op = "connect to server"
	OpDisconnect Op = "close connection"

	// Session operations
	OpLogin       Op = "log in"
	OpLogout      Op = "log out"
	OpStartPlayer Op = "start player"

	// Playback operations
	OpPlay    Op = "start playback"
	OpPause   Op = "pause playback"
	OpStop    Op = "stop playback"
	OpNext    Op = "skip to next track"
	OpPrev    Op = "skip to previous track"
	OpSetMode Op = "set playback mode"
	OpStatus  Op = "query playback status"

	// Persistence operations
	OpStoreOpen    Op = "open state database"
	OpPlaylistScan Op = "scan playlist directory"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
