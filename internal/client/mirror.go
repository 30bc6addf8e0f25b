package client

// Mirror is the client-side cache of believed playback state.
//
// It is not authoritative: its only invariant is that it reflects the
// last server response seen. It is updated exclusively from command
// acknowledgments and status replies, never predictively, so it can be
// at most one round-trip stale and any divergence self-corrects on the
// next exchange.
type Mirror struct {
	LoggedIn    bool
	User        string
	Playing     bool
	Paused      bool
	TrackTitle  string
	TrackArtist string
}

// StateName renders the believed state the way the server names it.
func (m Mirror) StateName() string {
	switch {
	case m.Playing:
		return "Playing"
	case m.Paused:
		return "Paused"
	default:
		return "Stopped"
	}
}
