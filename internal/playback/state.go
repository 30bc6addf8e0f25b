package playback

// State represents the playback state machine.
//
// The state machine has three states with the following valid transitions:
//
//	Stopped → Playing  (via Play, playlist non-empty)
//	Playing → Paused   (via Pause)
//	Playing → Stopped  (via Stop)
//	Paused  → Playing  (via Play, or via Next/Previous which promote
//	                    playback: skipping implies intent to keep listening)
//	Paused  → Stopped  (via Stop)
//
// Everything else is a reported no-op, never an error: Pause while
// Stopped, Stop while Stopped, Play while Playing. Next/Previous while
// Stopped move the cursor but do not start output.
type State int

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if playback is active (playing or paused).
func (s State) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}
