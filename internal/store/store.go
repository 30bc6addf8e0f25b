// Package store persists users, playlists and last-known playback state
// in SQLite. It implements the persistence and entitlement collaborators
// consumed by the session layer.
package store

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "encore"
	dbFileName = "encore.db"
)

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path. An empty path
// resolves to the XDG data file for the application.
func Open(path string) (*Store, error) {
	if path == "" {
		var err error
		path, err = xdg.DataFile(filepath.Join(appName, dbFileName))
		if err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
