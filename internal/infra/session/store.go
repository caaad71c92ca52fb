package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/boddenberg/bankup-app-go/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// Storage keys.
const (
	keyToken           = "token"
	keyProfileComplete = "profile_complete"
	keyUser            = "user"
	keyPending         = "pending_verification"
	keyResetToken      = "reset_token"
	keyDisplayName     = "display_name"
	keyDisplayAvatar   = "display_avatar"
)

// Store is the typed session storage on top of the kv table.
type Store struct {
	db   *sql.DB
	repo *Repository
	now  func() time.Time
}

// NewStore wraps an opened and migrated database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, repo: NewRepository(db), now: time.Now}
}

// Open opens the sqlite file at dsn and returns a Store on it.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := OpenDatabase(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return NewStore(db), nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Repository exposes the raw key/value table.
func (s *Store) Repository() *Repository {
	return s.repo
}

// ============================================================
// Session token
// ============================================================

// Token returns the session token, or "" when there is none or its JWT exp
// claim is in the past. The signature is not checked: only the server can.
func (s *Store) Token(ctx context.Context) (string, error) {
	raw, err := s.repo.Get(ctx, keyToken)
	if err != nil || raw == nil {
		return "", err
	}
	token := string(raw)
	if s.expired(token) {
		return "", nil
	}
	return token, nil
}

func (s *Store) expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(s.now())
}

// SaveLogin persists what a successful login verification returns, in one
// transaction.
func (s *Store) SaveLogin(ctx context.Context, token string, profileComplete bool, user *domain.User) error {
	return withTx(ctx, s.db, func(tx DBTX) error {
		repo := NewRepository(tx)
		if err := repo.Set(ctx, keyToken, []byte(token)); err != nil {
			return err
		}
		if err := repo.Set(ctx, keyProfileComplete, []byte(strconv.FormatBool(profileComplete))); err != nil {
			return err
		}
		if user == nil {
			return repo.Delete(ctx, keyUser)
		}
		if err := setJSON(ctx, repo, keyUser, user); err != nil {
			return err
		}
		if err := repo.Set(ctx, keyDisplayName, []byte(user.Name)); err != nil {
			return err
		}
		return repo.Set(ctx, keyDisplayAvatar, []byte(user.Avatar))
	})
}

// ProfileComplete returns the stored profile_complete flag.
func (s *Store) ProfileComplete(ctx context.Context) (bool, error) {
	raw, err := s.repo.Get(ctx, keyProfileComplete)
	if err != nil || raw == nil {
		return false, err
	}
	complete, err := strconv.ParseBool(string(raw))
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", keyProfileComplete, err)
	}
	return complete, nil
}

// SetProfileComplete updates the profile_complete flag.
func (s *Store) SetProfileComplete(ctx context.Context, complete bool) error {
	return s.repo.Set(ctx, keyProfileComplete, []byte(strconv.FormatBool(complete)))
}

// User returns the cached user, nil when absent.
func (s *Store) User(ctx context.Context) (*domain.User, error) {
	var u domain.User
	ok, err := getJSON(ctx, s.repo, keyUser, &u)
	if err != nil || !ok {
		return nil, err
	}
	return &u, nil
}

// SaveUser replaces the cached user.
func (s *Store) SaveUser(ctx context.Context, user *domain.User) error {
	return setJSON(ctx, s.repo, keyUser, user)
}

// ============================================================
// Pending verification (userId / type / email)
// ============================================================

// Pending returns the verification the code screen is waiting for, nil when none.
func (s *Store) Pending(ctx context.Context) (*domain.PendingVerification, error) {
	var p domain.PendingVerification
	ok, err := getJSON(ctx, s.repo, keyPending, &p)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

// SavePending stores the verification in progress.
func (s *Store) SavePending(ctx context.Context, p *domain.PendingVerification) error {
	return setJSON(ctx, s.repo, keyPending, p)
}

// ClearPending forgets the verification in progress.
func (s *Store) ClearPending(ctx context.Context) error {
	return s.repo.Delete(ctx, keyPending)
}

// ============================================================
// Password reset token
// ============================================================

// ResetToken returns the reset token, "" when absent or expired.
func (s *Store) ResetToken(ctx context.Context) (string, error) {
	raw, err := s.repo.Get(ctx, keyResetToken)
	if err != nil || raw == nil {
		return "", err
	}
	token := string(raw)
	if s.expired(token) {
		return "", nil
	}
	return token, nil
}

// SaveResetToken stores the reset token.
func (s *Store) SaveResetToken(ctx context.Context, token string) error {
	return s.repo.Set(ctx, keyResetToken, []byte(token))
}

// ClearResetToken forgets the reset token.
func (s *Store) ClearResetToken(ctx context.Context) error {
	return s.repo.Delete(ctx, keyResetToken)
}

// ============================================================
// Display cache
// ============================================================

// Display returns the cached name and avatar shown in the header.
func (s *Store) Display(ctx context.Context) (string, string, error) {
	name, err := s.repo.Get(ctx, keyDisplayName)
	if err != nil {
		return "", "", err
	}
	avatar, err := s.repo.Get(ctx, keyDisplayAvatar)
	if err != nil {
		return "", "", err
	}
	return string(name), string(avatar), nil
}

// SaveDisplay updates the cached name and avatar.
func (s *Store) SaveDisplay(ctx context.Context, name, avatar string) error {
	return withTx(ctx, s.db, func(tx DBTX) error {
		repo := NewRepository(tx)
		if err := repo.Set(ctx, keyDisplayName, []byte(name)); err != nil {
			return err
		}
		return repo.Set(ctx, keyDisplayAvatar, []byte(avatar))
	})
}

// ClearSession wipes everything on logout.
func (s *Store) ClearSession(ctx context.Context) error {
	return s.repo.Clear(ctx)
}

func getJSON(ctx context.Context, repo *Repository, key string, v any) (bool, error) {
	raw, err := repo.Get(ctx, key)
	if err != nil || raw == nil {
		return false, err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func setJSON(ctx context.Context, repo *Repository, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return repo.Set(ctx, key, raw)
}
