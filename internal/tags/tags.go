// Package tags reads metadata from mp3 files for playlist seeding.
package tags

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/gopxl/beep/v2/mp3"

	"github.com/mlevasseur/encore/internal/playlist"
)

const ExtMP3 = ".mp3"

// Read builds a playlist track from a music file's metadata. Files
// without usable tags still produce a track, with the title taken from
// the file name.
func Read(path string) (playlist.Track, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ExtMP3 {
		return playlist.Track{}, fmt.Errorf("unsupported format: %s", ext)
	}

	t := playlist.Track{
		Title: TitleFromFilename(path),
		Path:  path,
	}

	f, err := os.Open(path)
	if err != nil {
		return playlist.Track{}, err
	}
	defer f.Close()

	if m, err := tag.ReadFrom(f); err == nil {
		if m.Title() != "" {
			t.Title = m.Title()
		}
		t.Artist = m.Artist()
		t.Album = m.Album()
		t.Genre = m.Genre()
	}

	if d, err := probeDuration(path); err == nil {
		t.Duration = d
	}
	return t, nil
}

// probeDuration decodes the stream header to compute track length.
func probeDuration(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	stream, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return 0, err
	}
	defer stream.Close()

	return format.SampleRate.D(stream.Len()), nil
}

// TitleFromFilename derives a display title from a file name, dropping
// the extension and a leading track number like "01 - " or "01. ".
func TitleFromFilename(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	trimmed := strings.TrimLeft(name, "0123456789")
	if trimmed != name && trimmed != "" {
		trimmed = strings.TrimLeft(trimmed, " .-")
		if trimmed != "" {
			return trimmed
		}
	}
	return name
}
