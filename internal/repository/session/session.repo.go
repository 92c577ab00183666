package session

import (
	"encoding/json"
	"errors"
	"fmt"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/redis"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	// ErrGuardHeld means another submission for the session is in flight.
	ErrGuardHeld = errors.New("processing guard already held")
)

const (
	sessionKeyPrefix = "pos:session:"
	guardKeyPrefix   = "pos:guard:"
)

type IRepository interface {
	Get(sessionID string) (*types.Session, error)
	Save(s *types.Session, ttl time.Duration) error
	Delete(sessionID string) error

	AcquireGuard(sessionID string, ttl time.Duration) (string, error)
	ReleaseGuard(sessionID, token string) error
}

type Repository struct {
	rds redis.IRedis
}

func NewRepo(rds redis.IRedis) IRepository {
	return &Repository{rds: rds}
}

func sessionKey(id string) string { return sessionKeyPrefix + id }
func guardKey(id string) string   { return guardKeyPrefix + id }

func (r *Repository) Get(sessionID string) (*types.Session, error) {
	raw, err := r.rds.Get(sessionKey(sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to read session %s: %w", sessionID, err)
	}
	if raw == "" {
		return nil, ErrSessionNotFound
	}

	var s types.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", sessionID, err)
	}
	s.EnsureCart()
	return &s, nil
}

func (r *Repository) Save(s *types.Session, ttl time.Duration) error {
	s.UpdatedAt = time.Now()
	if err := r.rds.Set(sessionKey(s.ID), s, ttl); err != nil {
		return fmt.Errorf("failed to save session %s: %w", s.ID, err)
	}
	return nil
}

func (r *Repository) Delete(sessionID string) error {
	return r.rds.Del(sessionKey(sessionID), guardKey(sessionID))
}

// AcquireGuard sets the per-session processing flag. The returned token is
// required to release it; the TTL frees it if the holder never does.
func (r *Repository) AcquireGuard(sessionID string, ttl time.Duration) (string, error) {
	token, err := gonanoid.New()
	if err != nil {
		return "", err
	}

	ok, err := r.rds.SetNX(guardKey(sessionID), token, ttl)
	if err != nil {
		return "", fmt.Errorf("failed to acquire guard: %w", err)
	}
	if !ok {
		return "", ErrGuardHeld
	}
	return token, nil
}

// ReleaseGuard clears the flag only if it still carries token.
func (r *Repository) ReleaseGuard(sessionID, token string) error {
	if _, err := r.rds.CompareAndDelete(guardKey(sessionID), token); err != nil {
		return fmt.Errorf("failed to release guard: %w", err)
	}
	return nil
}
