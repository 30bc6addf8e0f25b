package store

import (
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/mlevasseur/encore/internal/db"
	"github.com/mlevasseur/encore/internal/playlist"
)

// ErrUnknownPlaylist is returned when a playlist name does not resolve.
var ErrUnknownPlaylist = errors.New("unknown playlist")

// PlaylistTracks loads the ordered track list for a named playlist.
// This is the loadPlaylistTracks capability: sessions build a fresh
// cursor from the result when playback starts.
func (s *Store) PlaylistTracks(name string) ([]playlist.Track, error) {
	var exists int
	row := s.db.QueryRow(`SELECT COUNT(*) FROM playlists WHERE name = ?`, name)
	if err := row.Scan(&exists); err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, ErrUnknownPlaylist
	}

	rows, err := s.db.Query(`
		SELECT title, artist, album, genre, duration_secs, path
		FROM playlist_tracks
		WHERE playlist = ?
		ORDER BY position
	`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []playlist.Track
	for rows.Next() {
		var t playlist.Track
		var album, genre, path sql.NullString
		var durationSecs int64

		if err := rows.Scan(&t.Title, &t.Artist, &album, &genre, &durationSecs, &path); err != nil {
			return nil, err
		}

		t.Album = dbutil.NullStringValue(album)
		t.Genre = dbutil.NullStringValue(genre)
		t.Path = dbutil.NullStringValue(path)
		t.Duration = time.Duration(durationSecs) * time.Second
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

// SavePlaylist replaces the named playlist's track list.
func (s *Store) SavePlaylist(name string, tracks []playlist.Track) error {
	return dbutil.WithTx(s.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO playlists (name) VALUES (?)`, name); err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM playlist_tracks WHERE playlist = ?`, name); err != nil {
			return err
		}
		for i, t := range tracks {
			_, err := tx.Exec(`
				INSERT INTO playlist_tracks
					(playlist, position, title, artist, album, genre, duration_secs, path)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, name, i, t.Title, t.Artist, t.Album, t.Genre, int64(t.Duration/time.Second), t.Path)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Playlists returns all playlist names.
func (s *Store) Playlists() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM playlists ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
