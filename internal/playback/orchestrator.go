package playback

import (
	"errors"
	"fmt"

	"github.com/mlevasseur/encore/internal/player"
	"github.com/mlevasseur/encore/internal/playlist"
)

// ErrShuffleNotEntitled is returned when a session without the shuffle
// entitlement asks for shuffle mode. The prior mode is retained.
var ErrShuffleNotEntitled = errors.New("shuffle is not available for this account")

// Observer is notified after every completed playback mutation with the
// (possibly unchanged) state and current track.
type Observer interface {
	PlaybackChanged(state State, track *playlist.Track)
}

// Outcome reports the result of a playback command.
type Outcome struct {
	State   State
	Track   *playlist.Track
	Message string
	NoOp    bool  // reported condition, nothing changed
	Warning error // output-device failure; the logical state already advanced
}

// Orchestrator is the per-session authoritative playback object. It
// composes the playlist cursor, the playback state, the navigation mode
// and the observer registry, and owns all mutation.
//
// Orchestrator has no internal locking: the session protocol handler
// serializes commands for a session, so at most one command executes at a
// time. Observer notification is synchronous, in registration order,
// strictly after the mutation is committed.
type Orchestrator struct {
	cursor     *playlist.Cursor
	state      State
	mode       Mode
	device     player.Device
	observers  []Observer
	canShuffle bool
}

// NewOrchestrator creates an orchestrator over a cursor and an output
// device. The initial state is Stopped and the initial mode Sequential.
func NewOrchestrator(cursor *playlist.Cursor, device player.Device, canShuffle bool) *Orchestrator {
	return &Orchestrator{
		cursor:     cursor,
		state:      StateStopped,
		mode:       ModeSequential,
		device:     device,
		canShuffle: canShuffle,
	}
}

// State returns the current playback state.
func (o *Orchestrator) State() State {
	return o.state
}

// Mode returns the current navigation mode.
func (o *Orchestrator) Mode() Mode {
	return o.mode
}

// CurrentTrack returns the track at the cursor, or nil if the playlist
// is empty.
func (o *Orchestrator) CurrentTrack() *playlist.Track {
	return o.cursor.Current()
}

// Play starts or resumes playback.
func (o *Orchestrator) Play() Outcome {
	var out Outcome
	switch o.state {
	case StateStopped:
		if o.cursor.IsEmpty() {
			out = Outcome{Message: "playlist is empty", NoOp: true}
			break
		}
		warn := o.loadCurrent()
		o.state = StatePlaying
		out = Outcome{Message: "Playing " + o.currentTitle(), Warning: warn}
	case StatePlaying:
		out = Outcome{Message: "already playing", NoOp: true}
	case StatePaused:
		o.device.Resume()
		o.state = StatePlaying
		out = Outcome{Message: "Resumed " + o.currentTitle()}
	}
	return o.finish(out)
}

// Pause suspends playback.
func (o *Orchestrator) Pause() Outcome {
	var out Outcome
	switch o.state {
	case StateStopped:
		out = Outcome{Message: "not playing", NoOp: true}
	case StatePlaying:
		o.device.Pause()
		o.state = StatePaused
		out = Outcome{Message: "Paused " + o.currentTitle()}
	case StatePaused:
		out = Outcome{Message: "already paused", NoOp: true}
	}
	return o.finish(out)
}

// Stop halts playback.
func (o *Orchestrator) Stop() Outcome {
	var out Outcome
	switch o.state {
	case StateStopped:
		out = Outcome{Message: "already stopped", NoOp: true}
	case StatePlaying, StatePaused:
		o.device.Stop()
		o.state = StateStopped
		out = Outcome{Message: "Stopped"}
	}
	return o.finish(out)
}

// Next advances the cursor via the navigation mode. While Playing the
// output restarts on the new current track; while Paused playback is
// promoted to Playing; while Stopped only the cursor moves.
func (o *Orchestrator) Next() Outcome {
	return o.navigate(advance)
}

// Previous retreats the cursor via the navigation mode, with the same
// state semantics as Next.
func (o *Orchestrator) Previous() Outcome {
	return o.navigate(retreat)
}

func (o *Orchestrator) navigate(move func(Mode, *playlist.Cursor)) Outcome {
	var out Outcome
	if o.cursor.IsEmpty() {
		out = Outcome{Message: "playlist is empty", NoOp: true}
		return o.finish(out)
	}

	move(o.mode, o.cursor)

	switch o.state {
	case StateStopped:
		// Cursor moves, output stays off.
		out = Outcome{Message: "Selected " + o.currentTitle()}
	case StatePlaying:
		warn := o.restartCurrent()
		out = Outcome{Message: "Playing " + o.currentTitle(), Warning: warn}
	case StatePaused:
		warn := o.restartCurrent()
		o.state = StatePlaying
		out = Outcome{Message: "Playing " + o.currentTitle(), Warning: warn}
	}
	return o.finish(out)
}

// SetMode replaces the navigation mode. The change takes effect on the
// next navigation command; it never moves the cursor. Shuffle requires
// the session's entitlement.
func (o *Orchestrator) SetMode(m Mode) error {
	if m == ModeShuffle && !o.canShuffle {
		return ErrShuffleNotEntitled
	}
	o.mode = m
	return nil
}

// SetShuffleEntitled updates the session's shuffle entitlement, e.g.
// after the session re-resolves its identity. When the entitlement is
// withdrawn while shuffle is active, the mode falls back to Sequential.
func (o *Orchestrator) SetShuffleEntitled(ok bool) {
	o.canShuffle = ok
	if !ok && o.mode == ModeShuffle {
		o.mode = ModeSequential
	}
}

// SetPlaylist replaces the cursor and always resets to Stopped. The
// prior cursor is discarded; no position is carried over.
func (o *Orchestrator) SetPlaylist(cursor *playlist.Cursor) Outcome {
	if o.state.IsActive() {
		o.device.Stop()
	}
	o.cursor = cursor
	o.state = StateStopped
	return o.finish(Outcome{Message: fmt.Sprintf("Loaded playlist with %d tracks", cursor.Len())})
}

// RegisterObserver appends an observer. Notification order is
// registration order.
func (o *Orchestrator) RegisterObserver(obs Observer) {
	o.observers = append(o.observers, obs)
}

// RemoveObserver detaches an observer by identity.
func (o *Orchestrator) RemoveObserver(obs Observer) {
	for i, existing := range o.observers {
		if existing == obs {
			o.observers = append(o.observers[:i], o.observers[i+1:]...)
			return
		}
	}
}

// finish stamps the outcome with the committed state and track, then
// notifies observers exactly once.
func (o *Orchestrator) finish(out Outcome) Outcome {
	out.State = o.state
	out.Track = o.cursor.Current()
	o.notifyObservers()
	return out
}

// notifyObservers runs over a snapshot so an observer registering or
// removing observers cannot corrupt the iteration. A panicking observer
// must not prevent the remaining ones from being notified.
func (o *Orchestrator) notifyObservers() {
	snapshot := make([]Observer, len(o.observers))
	copy(snapshot, o.observers)

	state := o.state
	track := o.cursor.Current()
	for _, obs := range snapshot {
		func() {
			defer func() {
				_ = recover()
			}()
			obs.PlaybackChanged(state, track)
		}()
	}
}

// loadCurrent points the output device at the current track. A missing
// resource or a device failure is a warning, not a state-machine fault.
func (o *Orchestrator) loadCurrent() error {
	t := o.cursor.Current()
	if t == nil {
		return nil
	}
	if t.Path == "" {
		return fmt.Errorf("no playable resource for %q", t.Title)
	}
	if err := o.device.Load(t.Path); err != nil {
		return fmt.Errorf("output device failed for %q: %w", t.Title, err)
	}
	return nil
}

// restartCurrent stops the output and reloads it on the current track.
func (o *Orchestrator) restartCurrent() error {
	o.device.Stop()
	return o.loadCurrent()
}

func (o *Orchestrator) currentTitle() string {
	if t := o.cursor.Current(); t != nil {
		return t.Title
	}
	return ""
}
