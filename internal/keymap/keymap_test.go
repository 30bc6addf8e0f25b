package keymap

import (
	"strings"
	"testing"
)

func TestResolverResolve(t *testing.T) {
	r := NewResolver(All)

	tests := []struct {
		key  string
		want Action
	}{
		{" ", ActionPlayPause},
		{"s", ActionStop},
		{"n", ActionNextTrack},
		{"right", ActionNextTrack},
		{"b", ActionPrevTrack},
		{"q", ActionQuit},
		{"ctrl+c", ActionQuit},
		{"z", ""},
	}
	for _, tt := range tests {
		if got := r.Resolve(tt.key); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestResolverKeysFor(t *testing.T) {
	r := NewResolver(All)

	keys := r.KeysFor(ActionNextTrack)
	if len(keys) != 2 || keys[0] != "n" || keys[1] != "right" {
		t.Errorf("KeysFor(ActionNextTrack) = %v, want [n right]", keys)
	}
	if got := r.KeysFor(Action("missing")); got != nil {
		t.Errorf("KeysFor(missing) = %v, want nil", got)
	}
}

func TestHelpLine(t *testing.T) {
	line := HelpLine(All)

	if !strings.Contains(line, "space play/pause") {
		t.Errorf("help line missing space binding: %q", line)
	}
	if !strings.Contains(line, "q quit") {
		t.Errorf("help line missing quit binding: %q", line)
	}
}
