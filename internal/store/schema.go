package store

import (
	"database/sql"
)

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			name TEXT PRIMARY KEY,
			can_use_shuffle INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS playlists (
			name TEXT PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS playlist_tracks (
			playlist TEXT NOT NULL REFERENCES playlists(name) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			artist TEXT NOT NULL,
			album TEXT,
			genre TEXT,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			path TEXT,
			UNIQUE(playlist, position)
		);

		CREATE INDEX IF NOT EXISTS idx_playlist_tracks_playlist
			ON playlist_tracks(playlist);

		CREATE TABLE IF NOT EXISTS user_state (
			user TEXT PRIMARY KEY REFERENCES users(name) ON DELETE CASCADE,
			last_state TEXT NOT NULL,
			last_track TEXT,
			updated_at INTEGER NOT NULL
		);
	`)
	return err
}
