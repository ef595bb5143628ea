package auth

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"
)

// Fixed key names for the persisted token set. The four entries survive
// process restarts and are only removed by logout or failed-refresh cleanup.
const (
	keyAccessToken  = "spotify_access_token"
	keyRefreshToken = "spotify_refresh_token"
	keyTokenExpiry  = "spotify_token_expiry"
	keyAuthState    = "spotify_auth_state"
)

// expirySkew is subtracted from the stored expiry when checking validity so a
// token about to lapse is refreshed before it can fail mid-request.
const expirySkew = 30 * time.Second

// TokenRecord holds the persisted Spotify token set.
//
// ExpiresAt is derived once, at the moment the token response is received,
// as now + expires_in. It is never recomputed afterwards.
type TokenRecord struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// TokenStore persists the token record and the transient OAuth state in the
// auth_state table. It is the only writer of those keys.
type TokenStore struct {
	db *sql.DB
}

// NewTokenStore creates a [TokenStore] backed by the given database connection.
func NewTokenStore(db *sql.DB) *TokenStore {
	return &TokenStore{db: db}
}

// Save persists the token record. All three fields are written in a single
// transaction. An empty refresh token leaves the previously stored refresh
// token in place, since refresh responses may omit it.
func (s *TokenStore) Save(rec TokenRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	expiry := strconv.FormatInt(rec.ExpiresAt.UnixMilli(), 10)

	pairs := [][2]string{
		{keyAccessToken, rec.AccessToken},
		{keyTokenExpiry, expiry},
	}
	if rec.RefreshToken != "" {
		pairs = append(pairs, [2]string{keyRefreshToken, rec.RefreshToken})
	}

	for _, pair := range pairs {
		if err := setValue(tx, pair[0], pair[1]); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Load returns the persisted token record, or nil when any of the three
// fields is absent or unreadable.
func (s *TokenStore) Load() (*TokenRecord, error) {
	access, ok, err := s.get(keyAccessToken)
	if err != nil || !ok {
		return nil, err
	}

	refresh, ok, err := s.get(keyRefreshToken)
	if err != nil || !ok {
		return nil, err
	}

	expiry, ok, err := s.get(keyTokenExpiry)
	if err != nil || !ok {
		return nil, err
	}

	ms, err := strconv.ParseInt(expiry, 10, 64)
	if err != nil {
		return nil, nil
	}

	return &TokenRecord{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    time.UnixMilli(ms),
	}, nil
}

// RefreshToken returns the stored refresh token, or "" when none exists.
func (s *TokenStore) RefreshToken() (string, error) {
	refresh, _, err := s.get(keyRefreshToken)
	return refresh, err
}

// Valid reports whether a stored expiry exists and lies far enough in the
// future that the access token can still be used.
func (s *TokenStore) Valid() bool {
	expiry, ok, err := s.get(keyTokenExpiry)
	if err != nil || !ok {
		return false
	}

	ms, err := strconv.ParseInt(expiry, 10, 64)
	if err != nil {
		return false
	}

	return time.Now().Add(expirySkew).Before(time.UnixMilli(ms))
}

// Clear removes the token record and any transient OAuth state.
func (s *TokenStore) Clear() error {
	_, err := s.db.Exec(
		"DELETE FROM auth_state WHERE key IN (?, ?, ?, ?)",
		keyAccessToken, keyRefreshToken, keyTokenExpiry, keyAuthState,
	)
	if err != nil {
		return fmt.Errorf("failed to clear auth state: %w", err)
	}
	return nil
}

// SaveState persists the OAuth state value generated before redirecting to
// the provider, replacing any earlier one.
func (s *TokenStore) SaveState(state string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := setValue(tx, keyAuthState, state); err != nil {
		return err
	}

	return tx.Commit()
}

// ConsumeState returns the stored OAuth state and deletes it, so each state
// value can be verified at most once.
func (s *TokenStore) ConsumeState() (string, error) {
	state, ok, err := s.get(keyAuthState)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}

	if _, err := s.db.Exec("DELETE FROM auth_state WHERE key = ?", keyAuthState); err != nil {
		return "", fmt.Errorf("failed to consume state: %w", err)
	}

	return state, nil
}

func (s *TokenStore) get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM auth_state WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

func setValue(tx *sql.Tx, key, value string) error {
	query := `
		INSERT INTO auth_state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := tx.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
