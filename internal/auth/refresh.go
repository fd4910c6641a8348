package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/inventory-console/internal/redissvc"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found or expired")

// RefreshStore maps opaque refresh tokens to the username they were issued to.
type RefreshStore interface {
	Save(token, username string, ttl time.Duration) error
	Username(token string) (string, error)
	Revoke(token string) error
}

func NewRefreshToken() string {
	return uuid.NewString()
}

type refreshEntry struct {
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MemoryRefreshStore keeps refresh tokens in a map, optionally mirrored to a JSON file
// so they survive a restart.
type MemoryRefreshStore struct {
	mu     sync.Mutex
	tokens map[string]refreshEntry
	path   string
	now    func() time.Time
}

func NewMemoryRefreshStore(path string) *MemoryRefreshStore {
	s := &MemoryRefreshStore{tokens: map[string]refreshEntry{}, path: path, now: time.Now}
	if path != "" {
		if err := s.load(); err != nil {
			log.Printf("Error loading refresh token file: %v", err)
		}
	}
	return s
}

func (s *MemoryRefreshStore) Save(token, username string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = refreshEntry{Username: username, ExpiresAt: s.now().Add(ttl)}
	return s.persist()
}

func (s *MemoryRefreshStore) Username(token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.tokens[token]
	if !ok || !s.now().Before(e.ExpiresAt) {
		return "", ErrRefreshTokenNotFound
	}
	return e.Username, nil
}

func (s *MemoryRefreshStore) Revoke(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return s.persist()
}

// StartCleanupLoop drops expired tokens every interval until ctx is done.
func (s *MemoryRefreshStore) StartCleanupLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.removeExpired()
		}
	}
}

func (s *MemoryRefreshStore) removeExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for token, e := range s.tokens {
		if !now.Before(e.ExpiresAt) {
			delete(s.tokens, token)
		}
	}
	if err := s.persist(); err != nil {
		log.Printf("Error saving refresh token file: %v", err)
	}
}

func (s *MemoryRefreshStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, &s.tokens)
}

func (s *MemoryRefreshStore) persist() error {
	if s.path == "" {
		return nil
	}
	data, err := json.MarshalIndent(s.tokens, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

const refreshKeyPrefix = "inventory:refresh:"

// RedisRefreshStore keeps each token under its own key and lets Redis expire it.
type RedisRefreshStore struct {
	rs *redissvc.RedisService
}

func NewRedisRefreshStore(rs *redissvc.RedisService) *RedisRefreshStore {
	return &RedisRefreshStore{rs: rs}
}

func (s *RedisRefreshStore) Save(token, username string, ttl time.Duration) error {
	return s.rs.SetWithTTL(refreshKeyPrefix+token, username, ttl)
}

func (s *RedisRefreshStore) Username(token string) (string, error) {
	username, err := s.rs.Get(refreshKeyPrefix + token)
	if errors.Is(err, redissvc.ErrMissing) {
		return "", ErrRefreshTokenNotFound
	}
	return username, err
}

func (s *RedisRefreshStore) Revoke(token string) error {
	return s.rs.Del(refreshKeyPrefix + token)
}
