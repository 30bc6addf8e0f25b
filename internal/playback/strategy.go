package playback

import "github.com/mlevasseur/encore/internal/playlist"

// The mode set is fixed and exhaustive, so navigation dispatch is a
// closed switch rather than an interface hierarchy.

// advance applies the navigation mode to the cursor for a "next" request.
func advance(m Mode, c *playlist.Cursor) {
	switch m {
	case ModeSequential:
		c.Next()
	case ModeShuffle:
		c.Shuffle()
	case ModeRepeat:
		// repeat never moves the cursor
	}
}

// retreat applies the navigation mode to the cursor for a "previous"
// request. Shuffle has no notion of history: retreating under shuffle is
// another random pick, same as advancing.
func retreat(m Mode, c *playlist.Cursor) {
	switch m {
	case ModeSequential:
		c.Previous()
	case ModeShuffle:
		c.Shuffle()
	case ModeRepeat:
	}
}
