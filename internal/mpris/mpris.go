//go:build linux

// Package mpris exposes the remote player on the session bus so desktop
// media keys and applets can drive it.
package mpris

import (
	"fmt"
	"hash/fnv"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/mlevasseur/encore/internal/client"
)

// Adapter bridges a daemon connection to MPRIS over D-Bus. Media-key
// presses become protocol commands; status queries read the client's
// mirror, so what MPRIS reports is at most one round-trip stale.
type Adapter struct {
	server *server.Server
}

// New creates and starts a new MPRIS adapter over c.
func New(c *client.Client) (*Adapter, error) {
	a := &Adapter{}
	a.server = server.NewServer("encore", &rootAdapter{}, &playerAdapter{client: c})

	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported, the TUI manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Encore", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{}, nil // Playback sources live on the daemon
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/mp3"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	client *client.Client
}

func (p *playerAdapter) Next() error {
	_, err := p.client.Next()
	return err
}

func (p *playerAdapter) Previous() error {
	_, err := p.client.Previous()
	return err
}

func (p *playerAdapter) Pause() error {
	_, err := p.client.Pause()
	return err
}

func (p *playerAdapter) PlayPause() error {
	if p.client.Mirror().Playing {
		return p.Pause()
	}
	return p.Play()
}

func (p *playerAdapter) Stop() error {
	_, err := p.client.StopPlay()
	return err
}

func (p *playerAdapter) Play() error {
	_, err := p.client.Play()
	return err
}

func (p *playerAdapter) Seek(_ types.Microseconds) error {
	return nil // Not supported, the protocol has no seek
}

func (p *playerAdapter) SetPosition(_ string, _ types.Microseconds) error {
	return nil // Not supported
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	m := p.client.Mirror()
	switch {
	case m.Playing:
		return types.PlaybackStatusPlaying, nil
	case m.Paused:
		return types.PlaybackStatusPaused, nil
	default:
		return types.PlaybackStatusStopped, nil
	}
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	m := p.client.Mirror()
	if m.TrackTitle == "" {
		return types.Metadata{}, nil
	}
	return types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(m.TrackTitle + "|" + m.TrackArtist)),
		Title:   m.TrackTitle,
		Artist:  []string{m.TrackArtist},
	}, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil // Volume lives on the daemon's output device
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Position() (int64, error) {
	return 0, nil // Position is not reported by the daemon
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.client.Mirror().LoggedIn, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

func formatTrackID(key string) string {
	h := fnv.New64a()
	h.Write([]byte(key))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
