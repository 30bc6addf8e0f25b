// Package client implements the remote-control side of the protocol: a
// lockstep line connection to the daemon plus the local state mirror.
package client

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"
)

const dialTimeout = 5 * time.Second

// Client talks to the daemon over one persistent connection. Commands
// are strictly lockstep: every command waits for its single response
// line before the next command may be sent (no pipelining), which is
// what bounds the mirror's staleness to one round-trip.
type Client struct {
	conn net.Conn
	r    *bufio.Reader

	cmdMu sync.Mutex // serializes command/response exchanges

	mirrorMu sync.Mutex
	mirror   Mirror
}

// Dial connects to the daemon at addr.
func Dial(addr string) (*Client, error) {
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return nil, err
	}
	return New(conn), nil
}

// New wraps an established connection.
func New(conn net.Conn) *Client {
	return &Client{
		conn: conn,
		r:    bufio.NewReader(conn),
	}
}

// Close terminates the connection. The server discards all playback
// state for the session; reconnecting requires a fresh start sequence.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Mirror returns a copy of the believed playback state.
func (c *Client) Mirror() Mirror {
	c.mirrorMu.Lock()
	defer c.mirrorMu.Unlock()
	return c.mirror
}

// roundTrip sends one command line and reads exactly one response line.
// The mirror is never touched between send and receive.
func (c *Client) roundTrip(cmd string) (string, error) {
	c.cmdMu.Lock()
	defer c.cmdMu.Unlock()

	if _, err := fmt.Fprintf(c.conn, "%s\n", cmd); err != nil {
		return "", err
	}
	line, err := c.r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// IsError reports whether a response line is a server-side rejection.
func IsError(resp string) bool {
	return strings.HasPrefix(resp, "ERROR:")
}

// Login resolves the session identity on the server.
func (c *Client) Login(user string) (string, error) {
	resp, err := c.roundTrip("LOGIN " + user)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(resp, "SUCCESS:") {
		c.mirrorMu.Lock()
		c.mirror.LoggedIn = true
		c.mirror.User = user
		c.mirrorMu.Unlock()
	}
	return resp, nil
}

// Logout drops the session identity and the server-side player.
func (c *Client) Logout() (string, error) {
	resp, err := c.roundTrip("LOGOUT")
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(resp, "SUCCESS:") {
		c.mirrorMu.Lock()
		c.mirror = Mirror{}
		c.mirrorMu.Unlock()
	}
	return resp, nil
}

// StartPlayer asks the server to build a player over the named playlist.
func (c *Client) StartPlayer(playlist string) (string, error) {
	resp, err := c.roundTrip("START_PLAYER " + playlist)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(resp, "SUCCESS:") {
		// A fresh player always starts Stopped.
		c.mirrorMu.Lock()
		c.mirror.Playing = false
		c.mirror.Paused = false
		c.mirror.TrackTitle = ""
		c.mirror.TrackArtist = ""
		c.mirrorMu.Unlock()
	}
	return resp, nil
}

func (c *Client) Play() (string, error)     { return c.playerCommand("PLAYER_PLAY") }
func (c *Client) Pause() (string, error)    { return c.playerCommand("PLAYER_PAUSE") }
func (c *Client) StopPlay() (string, error) { return c.playerCommand("PLAYER_STOP") }
func (c *Client) Next() (string, error)     { return c.playerCommand("PLAYER_NEXT") }
func (c *Client) Previous() (string, error) { return c.playerCommand("PLAYER_PREV") }

func (c *Client) playerCommand(cmd string) (string, error) {
	resp, err := c.roundTrip(cmd)
	if err != nil {
		return "", err
	}
	c.applyAck(resp)
	return resp, nil
}

// SetMode selects the navigation mode by protocol code (1=Sequential,
// 2=Shuffle, 3=Repeat).
func (c *Client) SetMode(code int) (string, error) {
	return c.roundTrip(fmt.Sprintf("SET_PLAYBACK_MODE %d", code))
}

// Status queries the authoritative state and reconciles the mirror.
func (c *Client) Status() (Mirror, error) {
	resp, err := c.roundTrip("PLAYER_STATUS")
	if err != nil {
		return Mirror{}, err
	}
	rest, ok := strings.CutPrefix(resp, "STATUS: ")
	if !ok {
		return c.Mirror(), fmt.Errorf("unexpected status reply %q", resp)
	}
	parts := strings.SplitN(rest, "|", 3)
	if len(parts) != 3 {
		return c.Mirror(), fmt.Errorf("malformed status reply %q", resp)
	}

	c.mirrorMu.Lock()
	c.mirror.Playing = parts[0] == "Playing"
	c.mirror.Paused = parts[0] == "Paused"
	c.mirror.TrackTitle = parts[1]
	c.mirror.TrackArtist = parts[2]
	m := c.mirror
	c.mirrorMu.Unlock()
	return m, nil
}

// applyAck folds a command acknowledgment into the mirror. Only what the
// ack states explicitly is believed; anything else waits for the next
// status reconciliation. INFO and ERROR lines change nothing.
func (c *Client) applyAck(resp string) {
	body, ok := strings.CutPrefix(resp, "SUCCESS: ")
	if !ok {
		return
	}
	// Device warnings ride along after the ack text.
	if i := strings.Index(body, " (warning:"); i >= 0 {
		body = body[:i]
	}

	c.mirrorMu.Lock()
	defer c.mirrorMu.Unlock()
	switch {
	case strings.HasPrefix(body, "Playing "):
		c.mirror.Playing = true
		c.mirror.Paused = false
		c.mirror.TrackTitle = strings.TrimPrefix(body, "Playing ")
	case strings.HasPrefix(body, "Resumed "):
		c.mirror.Playing = true
		c.mirror.Paused = false
		c.mirror.TrackTitle = strings.TrimPrefix(body, "Resumed ")
	case strings.HasPrefix(body, "Paused "):
		c.mirror.Playing = false
		c.mirror.Paused = true
		c.mirror.TrackTitle = strings.TrimPrefix(body, "Paused ")
	case body == "Stopped":
		c.mirror.Playing = false
		c.mirror.Paused = false
	case strings.HasPrefix(body, "Selected "):
		// Navigation while stopped: track changed, state did not.
		c.mirror.TrackTitle = strings.TrimPrefix(body, "Selected ")
	}
}
