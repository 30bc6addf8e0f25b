package tags

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTitleFromFilename(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/music/01 - Breathe.mp3", "Breathe"},
		{"/music/02. Time.mp3", "Time"},
		{"/music/03-Money.mp3", "Money"},
		{"/music/Echoes.mp3", "Echoes"},
		{"/music/99.mp3", "99"},
	}
	for _, tt := range tests {
		if got := TitleFromFilename(tt.path); got != tt.want {
			t.Errorf("TitleFromFilename(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestReadRejectsUnsupportedFormat(t *testing.T) {
	if _, err := Read("/music/track.flac"); err == nil {
		t.Fatal("expected error for non-mp3 file")
	}
}

func TestReadUntaggedFileFallsBackToFilename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "04 - Us and Them.mp3")
	if err := os.WriteFile(path, []byte("not really an mp3"), 0o600); err != nil {
		t.Fatal(err)
	}

	track, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if track.Title != "Us and Them" {
		t.Errorf("Title = %q, want %q", track.Title, "Us and Them")
	}
	if track.Path != path {
		t.Errorf("Path = %q, want %q", track.Path, path)
	}
}
