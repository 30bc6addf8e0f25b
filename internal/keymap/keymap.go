// Package keymap defines key bindings and action dispatch for the remote.
package keymap

import "strings"

// Action represents a user-triggerable action.
type Action string

const (
	ActionQuit         Action = "quit"
	ActionLogin        Action = "login"
	ActionLogout       Action = "logout"
	ActionOpenPlaylist Action = "open_playlist"

	ActionPlayPause      Action = "play_pause"
	ActionStop           Action = "stop"
	ActionNextTrack      Action = "next_track"
	ActionPrevTrack      Action = "prev_track"
	ActionModeSequential Action = "mode_sequential"
	ActionModeShuffle    Action = "mode_shuffle"
	ActionModeRepeat     Action = "mode_repeat"
)

// Binding ties keys to one action, with a label for help output.
type Binding struct {
	Keys        []string
	Action      Action
	Description string
}

// All contains the remote's key bindings, in help display order.
var All = []Binding{
	{[]string{" "}, ActionPlayPause, "play/pause"},
	{[]string{"s"}, ActionStop, "stop"},
	{[]string{"n", "right"}, ActionNextTrack, "next"},
	{[]string{"b", "left"}, ActionPrevTrack, "previous"},
	{[]string{"1"}, ActionModeSequential, "sequential"},
	{[]string{"2"}, ActionModeShuffle, "shuffle"},
	{[]string{"3"}, ActionModeRepeat, "repeat"},
	{[]string{"l"}, ActionLogin, "login"},
	{[]string{"o"}, ActionOpenPlaylist, "open playlist"},
	{[]string{"L"}, ActionLogout, "logout"},
	{[]string{"q", "ctrl+c"}, ActionQuit, "quit"},
}

// Resolver maps key strings to actions.
type Resolver struct {
	bindings map[string]Action
	byAction map[Action][]string
}

// NewResolver creates a resolver from bindings.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings: make(map[string]Action),
		byAction: make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.bindings[key] = b.Action
		}
		r.byAction[b.Action] = append(r.byAction[b.Action], b.Keys...)
	}
	return r
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(key string) Action {
	return r.bindings[key]
}

// KeysFor returns the keys bound to an action.
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}

// HelpLine renders a one-line summary of the given bindings.
func HelpLine(bindings []Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		key := b.Keys[0]
		if key == " " {
			key = "space"
		}
		parts = append(parts, key+" "+b.Description)
	}
	return strings.Join(parts, " · ")
}
