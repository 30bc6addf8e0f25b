package store

import (
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/mlevasseur/encore/internal/db"
)

// ErrUnknownUser is returned when a username does not resolve.
var ErrUnknownUser = errors.New("unknown user")

// User carries a session's identity-resolution result: the name and the
// entitlement flags attached to it.
type User struct {
	Name          string
	CanUseShuffle bool
}

// UserByName resolves a username to its entitlements.
func (s *Store) UserByName(name string) (*User, error) {
	var u User
	row := s.db.QueryRow(`SELECT name, can_use_shuffle FROM users WHERE name = ?`, name)
	err := row.Scan(&u.Name, &u.CanUseShuffle)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUnknownUser
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts or replaces a user record.
func (s *Store) CreateUser(name string, canUseShuffle bool) error {
	_, err := s.db.Exec(`
		INSERT INTO users (name, can_use_shuffle) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET can_use_shuffle = excluded.can_use_shuffle
	`, name, canUseShuffle)
	return err
}

// UserState is the last playback state recorded for a user.
type UserState struct {
	LastState string
	LastTrack string
}

// SaveUserState upserts the user's last-known playback state. Sessions
// call this on teardown and from the state observer.
func (s *Store) SaveUserState(user, state, track string) error {
	return dbutil.WithTx(s.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO user_state (user, last_state, last_track, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(user) DO UPDATE SET
				last_state = excluded.last_state,
				last_track = excluded.last_track,
				updated_at = excluded.updated_at
		`, user, state, track, time.Now().Unix())
		return err
	})
}

// GetUserState returns the user's last recorded playback state, or nil
// if none was ever saved.
func (s *Store) GetUserState(user string) (*UserState, error) {
	var st UserState
	var track sql.NullString
	row := s.db.QueryRow(`SELECT last_state, last_track FROM user_state WHERE user = ?`, user)
	err := row.Scan(&st.LastState, &track)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	st.LastTrack = dbutil.NullStringValue(track)
	return &st, nil
}
