package playback

import "testing"

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateStopped, "Stopped"},
		{StatePlaying, "Playing"},
		{StatePaused, "Paused"},
		{State(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestState_IsActive(t *testing.T) {
	tests := []struct {
		state State
		want  bool
	}{
		{StateStopped, false},
		{StatePlaying, true},
		{StatePaused, true},
	}
	for _, tt := range tests {
		if got := tt.state.IsActive(); got != tt.want {
			t.Errorf("%v.IsActive() = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestMode_String(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeSequential, "Sequential"},
		{ModeShuffle, "Shuffle"},
		{ModeRepeat, "Repeat"},
		{Mode(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestModeFromCode(t *testing.T) {
	tests := []struct {
		code   int
		want   Mode
		wantOK bool
	}{
		{1, ModeSequential, true},
		{2, ModeShuffle, true},
		{3, ModeRepeat, true},
		{0, 0, false},
		{4, 0, false},
		{-1, 0, false},
	}
	for _, tt := range tests {
		got, ok := ModeFromCode(tt.code)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ModeFromCode(%d) = (%v, %v), want (%v, %v)",
				tt.code, got, ok, tt.want, tt.wantOK)
		}
	}
}
