// Package player provides the output-device capability consumed by the
// playback engine. The engine never decodes audio itself: it hands the
// device a resource handle and fires control operations at it.
package player

// Device is the audio output capability.
//
// Load failures are reported to the caller but never change the playback
// state machine; Pause, Resume and Stop are fire-and-forget.
type Device interface {
	Load(path string) error
	Pause()
	Resume()
	Stop()
	Close() error
}
