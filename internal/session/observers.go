package session

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/mlevasseur/encore/internal/playback"
	"github.com/mlevasseur/encore/internal/playlist"
	"github.com/mlevasseur/encore/internal/store"
)

// nowPlayingLogger logs every committed playback change for the session.
type nowPlayingLogger struct {
	log zerolog.Logger
}

func (n *nowPlayingLogger) PlaybackChanged(state playback.State, track *playlist.Track) {
	ev := n.log.Debug().Stringer("state", state)
	if track != nil {
		ev = ev.Str("track", track.Title).Str("artist", track.Artist)
	}
	ev.Msg("playback changed")
}

// lastStateSaver persists the session user's last playback state after
// each committed change.
type lastStateSaver struct {
	mu   sync.Mutex
	st   *store.Store
	user string
	log  zerolog.Logger
}

func (l *lastStateSaver) setUser(name string) {
	l.mu.Lock()
	l.user = name
	l.mu.Unlock()
}

func (l *lastStateSaver) PlaybackChanged(state playback.State, track *playlist.Track) {
	l.mu.Lock()
	user := l.user
	l.mu.Unlock()

	title := ""
	if track != nil {
		title = track.Title
	}
	if err := l.st.SaveUserState(user, state.String(), title); err != nil {
		l.log.Warn().Err(err).Msg("failed to save user state")
	}
}
