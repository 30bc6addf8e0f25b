package playback

// Mode defines the navigation behavior: what "next" and "previous" mean
// against the playlist cursor. The numeric values are the wire protocol's
// mode codes.
type Mode int

const (
	ModeSequential Mode = iota + 1
	ModeShuffle
	ModeRepeat
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeSequential:
		return "Sequential"
	case ModeShuffle:
		return "Shuffle"
	case ModeRepeat:
		return "Repeat"
	default:
		return "Unknown"
	}
}

// ModeFromCode maps a protocol mode code to a Mode.
// Returns false for codes outside 1..3.
func ModeFromCode(code int) (Mode, bool) {
	m := Mode(code)
	switch m {
	case ModeSequential, ModeShuffle, ModeRepeat:
		return m, true
	default:
		return 0, false
	}
}
