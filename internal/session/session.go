package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mlevasseur/encore/internal/playback"
	"github.com/mlevasseur/encore/internal/player"
	"github.com/mlevasseur/encore/internal/playlist"
	"github.com/mlevasseur/encore/internal/store"
)

const maxLineLen = 4096

// session is the per-connection protocol handler. It owns at most one
// orchestrator and processes each command to completion before reading
// the next line, which is what gives the orchestrator its single-writer
// guarantee.
type session struct {
	srv  *Server
	conn net.Conn
	log  zerolog.Logger

	id       string // opaque identity minted at login
	user     *store.User
	orch     *playback.Orchestrator
	device   player.Device
	saver    *lastStateSaver
	lastSeen time.Time
	now      func() time.Time // injectable clock
}

func newSession(srv *Server, conn net.Conn) *session {
	return &session{
		srv:  srv,
		conn: conn,
		log:  srv.log.With().Str("remote", conn.RemoteAddr().String()).Logger(),
		now:  time.Now,
	}
}

func (s *session) run() {
	defer s.teardown()
	s.log.Info().Msg("client connected")

	r := bufio.NewReaderSize(s.conn, maxLineLen)
	for {
		line, tooLong, err := readLine(r)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.log.Warn().Err(err).Msg("connection read failed")
			}
			return
		}

		var resp string
		if tooLong {
			// Oversized input is a malformed command, not a reason to
			// drop the session.
			resp = "ERROR: Command too long"
		} else {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			resp = s.dispatch(line)
		}
		if _, err := fmt.Fprintf(s.conn, "%s\n", resp); err != nil {
			s.log.Warn().Err(err).Msg("response write failed")
			return
		}
	}
}

// readLine reads one newline-terminated line. A line longer than the
// reader's buffer is drained to its newline and reported as tooLong.
func readLine(r *bufio.Reader) (line string, tooLong bool, err error) {
	chunk, err := r.ReadSlice('\n')
	if err == nil || (errors.Is(err, io.EOF) && len(chunk) > 0) {
		return strings.TrimRight(string(chunk), "\n"), false, nil
	}
	if !errors.Is(err, bufio.ErrBufferFull) {
		return "", false, err
	}

	for errors.Is(err, bufio.ErrBufferFull) {
		_, err = r.ReadSlice('\n')
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, err
	}
	return "", true, nil
}

// dispatch executes one command line and returns exactly one response
// line. Commands run to completion here, never handed off.
func (s *session) dispatch(line string) string {
	now := s.now()
	if s.user != nil && now.Sub(s.lastSeen) > time.Duration(s.srv.cfg.IdleTimeout)*time.Second {
		// Logical logout: the connection stays open, but the next
		// command needs a fresh LOGIN to re-resolve identity.
		s.log.Info().Str("user", s.user.Name).Msg("session identity expired")
		s.user = nil
		s.id = ""
	}
	s.lastSeen = now

	cmd, arg, _ := strings.Cut(line, " ")
	switch cmd {
	case "LOGIN":
		return s.handleLogin(strings.TrimSpace(arg))
	case "LOGOUT":
		return s.handleLogout()
	case "START_PLAYER":
		if s.user == nil {
			return "ERROR: Not logged in"
		}
		return s.handleStartPlayer(strings.TrimSpace(arg))
	case "PLAYER_PLAY":
		return s.playerCommand((*playback.Orchestrator).Play)
	case "PLAYER_PAUSE":
		return s.playerCommand((*playback.Orchestrator).Pause)
	case "PLAYER_STOP":
		return s.playerCommand((*playback.Orchestrator).Stop)
	case "PLAYER_NEXT":
		return s.playerCommand((*playback.Orchestrator).Next)
	case "PLAYER_PREV":
		return s.playerCommand((*playback.Orchestrator).Previous)
	case "SET_PLAYBACK_MODE":
		return s.handleSetMode(strings.TrimSpace(arg))
	case "PLAYER_STATUS":
		return s.handleStatus()
	default:
		return "ERROR: Unknown command"
	}
}

func (s *session) playerCommand(fn func(*playback.Orchestrator) playback.Outcome) string {
	if s.user == nil {
		return "ERROR: Not logged in"
	}
	if s.orch == nil {
		return "ERROR: Player not started"
	}
	return ack(fn(s.orch))
}

// ack renders a command outcome as one response line. Reported no-ops
// (empty playlist, pause while stopped) are informational, not errors;
// device failures ride along as a warning, never as a failed command.
func ack(out playback.Outcome) string {
	prefix := "SUCCESS: "
	if out.NoOp {
		prefix = "INFO: "
	}
	resp := prefix + out.Message
	if out.Warning != nil {
		resp += " (warning: " + out.Warning.Error() + ")"
	}
	return resp
}

func (s *session) handleLogin(name string) string {
	if name == "" {
		return "ERROR: LOGIN requires a username"
	}
	u, err := s.srv.store.UserByName(name)
	if errors.Is(err, store.ErrUnknownUser) {
		return "ERROR: Unknown user " + name
	}
	if err != nil {
		s.log.Error().Err(err).Str("user", name).Msg("user lookup failed")
		return "ERROR: Internal error"
	}

	s.user = u
	s.id = uuid.NewString()
	if s.orch != nil {
		// Identity re-resolved mid-session: refresh the entitlement
		// and rebind the state saver to the new user.
		s.orch.SetShuffleEntitled(u.CanUseShuffle)
		if s.saver != nil {
			s.saver.setUser(u.Name)
		}
	}
	s.log.Info().Str("user", u.Name).Str("session", s.id).Msg("logged in")
	return "SUCCESS: Logged in as " + u.Name
}

func (s *session) handleLogout() string {
	if s.user == nil {
		return "INFO: not logged in"
	}
	name := s.user.Name
	s.closePlayer()
	s.user = nil
	s.id = ""
	s.log.Info().Str("user", name).Msg("logged out")
	return "SUCCESS: Logged out " + name
}

func (s *session) handleStartPlayer(name string) string {
	if name == "" {
		return "ERROR: START_PLAYER requires a playlist name"
	}
	tracks, err := s.srv.store.PlaylistTracks(name)
	if errors.Is(err, store.ErrUnknownPlaylist) {
		return "ERROR: Unknown playlist " + name
	}
	if err != nil {
		s.log.Error().Err(err).Str("playlist", name).Msg("playlist load failed")
		return "ERROR: Internal error"
	}
	cursor := playlist.FromTracks(tracks)

	if s.orch != nil {
		// Swapping playlists always resets to Stopped.
		out := s.orch.SetPlaylist(cursor)
		return ack(out)
	}

	dev, err := s.srv.device()
	if err != nil {
		s.log.Error().Err(err).Msg("output device unavailable")
		return "ERROR: Output device unavailable"
	}
	s.device = dev
	s.orch = playback.NewOrchestrator(cursor, dev, s.user.CanUseShuffle)
	s.saver = &lastStateSaver{st: s.srv.store, user: s.user.Name, log: s.log}
	s.orch.RegisterObserver(&nowPlayingLogger{log: s.log})
	s.orch.RegisterObserver(s.saver)

	return fmt.Sprintf("SUCCESS: Player started with playlist %s (%d tracks)", name, cursor.Len())
}

func (s *session) handleSetMode(arg string) string {
	if s.user == nil {
		return "ERROR: Not logged in"
	}
	if s.orch == nil {
		return "ERROR: Player not started"
	}
	code, err := strconv.Atoi(arg)
	if err != nil {
		return "ERROR: Invalid playback mode"
	}
	mode, ok := playback.ModeFromCode(code)
	if !ok {
		return "ERROR: Invalid playback mode"
	}
	if err := s.orch.SetMode(mode); err != nil {
		return "ERROR: " + err.Error()
	}
	return "SUCCESS: Playback mode set to " + mode.String()
}

// handleStatus answers the mirror-reconciliation query. Pipe-separated:
// state|title|artist.
func (s *session) handleStatus() string {
	if s.orch == nil {
		return "STATUS: Stopped||"
	}
	title, artist := "", ""
	if t := s.orch.CurrentTrack(); t != nil {
		title, artist = t.Title, t.Artist
	}
	return fmt.Sprintf("STATUS: %s|%s|%s", s.orch.State(), title, artist)
}

// closePlayer discards the orchestrator and releases the output device.
func (s *session) closePlayer() {
	if s.orch == nil {
		return
	}
	if s.orch.State().IsActive() {
		s.orch.Stop()
	}
	s.orch.RemoveObserver(s.saver)
	s.orch = nil
	s.saver = nil
	if s.device != nil {
		if err := s.device.Close(); err != nil {
			s.log.Warn().Err(err).Msg("output device close failed")
		}
		s.device = nil
	}
}

// teardown runs on connection loss: playback state is not preserved, the
// next connection starts clean with a fresh START_PLAYER.
func (s *session) teardown() {
	s.closePlayer()
	s.conn.Close()
	s.log.Info().Msg("client disconnected")
}
