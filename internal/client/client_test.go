package client

import (
	"bufio"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedServer answers each received command with the next scripted
// response line.
func scriptedServer(t *testing.T, conn net.Conn, responses ...string) <-chan string {
	t.Helper()
	received := make(chan string, len(responses))
	go func() {
		defer close(received)
		r := bufio.NewReader(conn)
		for _, resp := range responses {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			received <- strings.TrimRight(line, "\n")
			if _, err := conn.Write([]byte(resp + "\n")); err != nil {
				return
			}
		}
	}()
	return received
}

func newTestClient(t *testing.T) (*Client, net.Conn) {
	t.Helper()
	clientEnd, serverEnd := net.Pipe()
	c := New(clientEnd)
	t.Cleanup(func() { c.Close(); serverEnd.Close() })
	return c, serverEnd
}

func TestClient_LoginUpdatesMirror(t *testing.T) {
	c, srv := newTestClient(t)
	recv := scriptedServer(t, srv, "SUCCESS: Logged in as alice")

	resp, err := c.Login("alice")
	require.NoError(t, err)

	assert.Equal(t, "LOGIN alice", <-recv)
	assert.Equal(t, "SUCCESS: Logged in as alice", resp)
	assert.True(t, c.Mirror().LoggedIn)
	assert.Equal(t, "alice", c.Mirror().User)
}

func TestClient_LoginRejectionLeavesMirror(t *testing.T) {
	c, srv := newTestClient(t)
	scriptedServer(t, srv, "ERROR: Unknown user mallory")

	resp, err := c.Login("mallory")
	require.NoError(t, err)

	assert.True(t, IsError(resp))
	assert.False(t, c.Mirror().LoggedIn)
}

func TestClient_PlayAckUpdatesMirror(t *testing.T) {
	c, srv := newTestClient(t)
	scriptedServer(t, srv, "SUCCESS: Playing Breathe")

	_, err := c.Play()
	require.NoError(t, err)

	m := c.Mirror()
	assert.True(t, m.Playing)
	assert.False(t, m.Paused)
	assert.Equal(t, "Breathe", m.TrackTitle)
}

func TestClient_MirrorNotUpdatedBeforeResponse(t *testing.T) {
	c, srv := newTestClient(t)

	// Prime the mirror into a known playing state.
	scriptedServer(t, srv, "SUCCESS: Playing Breathe")
	_, err := c.Play()
	require.NoError(t, err)
	require.True(t, c.Mirror().Playing)

	// Send PLAYER_PAUSE but hold the response back.
	commandSeen := make(chan struct{})
	release := make(chan struct{})
	go func() {
		r := bufio.NewReader(srv)
		_, _ = r.ReadString('\n')
		close(commandSeen)
		<-release
		_, _ = srv.Write([]byte("SUCCESS: Paused Breathe\n"))
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.Pause()
	}()

	<-commandSeen
	// The command is in flight: the mirror must still show the
	// pre-command state.
	m := c.Mirror()
	assert.True(t, m.Playing, "mirror reflected unacknowledged pause")
	assert.False(t, m.Paused)

	close(release)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("pause round-trip did not complete")
	}

	m = c.Mirror()
	assert.False(t, m.Playing)
	assert.True(t, m.Paused)
}

func TestClient_InfoAndErrorAcksChangeNothing(t *testing.T) {
	c, srv := newTestClient(t)
	scriptedServer(t, srv,
		"SUCCESS: Playing Breathe",
		"INFO: already playing",
		"ERROR: Not logged in",
	)

	_, err := c.Play()
	require.NoError(t, err)
	before := c.Mirror()

	_, err = c.Play()
	require.NoError(t, err)
	assert.Equal(t, before, c.Mirror())

	_, err = c.Next()
	require.NoError(t, err)
	assert.Equal(t, before, c.Mirror())
}

func TestClient_StopAck(t *testing.T) {
	c, srv := newTestClient(t)
	scriptedServer(t, srv,
		"SUCCESS: Playing Breathe",
		"SUCCESS: Stopped",
	)

	_, err := c.Play()
	require.NoError(t, err)
	_, err = c.StopPlay()
	require.NoError(t, err)

	m := c.Mirror()
	assert.False(t, m.Playing)
	assert.False(t, m.Paused)
	assert.Equal(t, "Stopped", m.StateName())
}

func TestClient_SelectedAckChangesTrackOnly(t *testing.T) {
	c, srv := newTestClient(t)
	scriptedServer(t, srv, "SUCCESS: Selected Time")

	_, err := c.Next()
	require.NoError(t, err)

	m := c.Mirror()
	assert.False(t, m.Playing)
	assert.Equal(t, "Time", m.TrackTitle)
}

func TestClient_AckWithWarningStillApplies(t *testing.T) {
	c, srv := newTestClient(t)
	scriptedServer(t, srv, `SUCCESS: Playing Ghost (warning: no playable resource for "Ghost")`)

	resp, err := c.Play()
	require.NoError(t, err)

	assert.Contains(t, resp, "warning:")
	m := c.Mirror()
	assert.True(t, m.Playing)
	assert.Equal(t, "Ghost", m.TrackTitle)
}

func TestClient_StatusReconcilesMirror(t *testing.T) {
	c, srv := newTestClient(t)
	scriptedServer(t, srv, "STATUS: Paused|Time|Pink Floyd")

	m, err := c.Status()
	require.NoError(t, err)

	assert.False(t, m.Playing)
	assert.True(t, m.Paused)
	assert.Equal(t, "Time", m.TrackTitle)
	assert.Equal(t, "Pink Floyd", m.TrackArtist)
	assert.Equal(t, m, c.Mirror())
}

func TestClient_StatusMalformed(t *testing.T) {
	c, srv := newTestClient(t)
	scriptedServer(t, srv, "BOGUS")

	_, err := c.Status()
	assert.Error(t, err)
}

func TestClient_StartPlayerResetsPlaybackMirror(t *testing.T) {
	c, srv := newTestClient(t)
	scriptedServer(t, srv,
		"SUCCESS: Logged in as alice",
		"SUCCESS: Playing Breathe",
		"SUCCESS: Player started with playlist mix (3 tracks)",
	)

	_, err := c.Login("alice")
	require.NoError(t, err)
	_, err = c.Play()
	require.NoError(t, err)
	_, err = c.StartPlayer("mix")
	require.NoError(t, err)

	m := c.Mirror()
	assert.True(t, m.LoggedIn)
	assert.False(t, m.Playing)
	assert.Empty(t, m.TrackTitle)
}

func TestClient_LogoutClearsMirror(t *testing.T) {
	c, srv := newTestClient(t)
	scriptedServer(t, srv,
		"SUCCESS: Logged in as alice",
		"SUCCESS: Logged out alice",
	)

	_, err := c.Login("alice")
	require.NoError(t, err)
	_, err = c.Logout()
	require.NoError(t, err)

	assert.Equal(t, Mirror{}, c.Mirror())
}

func TestMirror_StateName(t *testing.T) {
	tests := []struct {
		mirror Mirror
		want   string
	}{
		{Mirror{Playing: true}, "Playing"},
		{Mirror{Paused: true}, "Paused"},
		{Mirror{}, "Stopped"},
	}
	for _, tt := range tests {
		if got := tt.mirror.StateName(); got != tt.want {
			t.Errorf("StateName() = %q, want %q", got, tt.want)
		}
	}
}
