package playlist

import (
	"strings"
	"time"
)

// Track represents a single track in a playlist.
type Track struct {
	Title    string
	Artist   string
	Album    string
	Genre    string
	Duration time.Duration
	Path     string // playable resource handle ("" if the track has none)
}

// SameSong reports whether two tracks are the same song for playlist
// membership purposes. Identity is title+artist, case-insensitive.
// Duplicates of the same song within one playlist are allowed.
func (t Track) SameSong(other Track) bool {
	return strings.EqualFold(t.Title, other.Title) &&
		strings.EqualFold(t.Artist, other.Artist)
}
