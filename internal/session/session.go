// Package session is the current-user collaborator: it owns the auth token
// and the signed-in user, nothing else. It is the single writer of the token.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/AhmaadMostafa/Talabat-FrontEnd/internal/domain"
	"github.com/AhmaadMostafa/Talabat-FrontEnd/internal/storage"
)

type Session struct {
	mu    sync.RWMutex
	store storage.Store
	user  *domain.User
	token string
}

func New(store storage.Store) *Session {
	return &Session{store: store}
}

// Restore loads a previously persisted token and user. A missing token just
// leaves the session signed out.
func (s *Session) Restore(ctx context.Context) error {
	token, err := s.store.Get(ctx, storage.KeyToken)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore token: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token

	raw, err := s.store.Get(ctx, storage.KeyUser)
	if err == nil {
		var user domain.User
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			log.Printf("restore user: %v", err)
		} else {
			s.user = &user
		}
	}
	return nil
}

// SignIn records the authenticated user and durably persists the token.
func (s *Session) SignIn(ctx context.Context, user domain.User) error {
	if err := s.store.Set(ctx, storage.KeyToken, user.Token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	if raw, err := json.Marshal(user); err == nil {
		if err := s.store.Set(ctx, storage.KeyUser, string(raw)); err != nil {
			log.Printf("persist user: %v", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
	s.token = user.Token
	return nil
}

// Token returns the current auth token, empty when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// CurrentUser returns the signed-in user, or nil.
func (s *Session) CurrentUser() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Authenticated reports whether a session token exists.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// Clear drops the token and user, locally and from durable storage. Used on
// sign-out and when the server rejects the token.
func (s *Session) Clear() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	ctx := context.Background()
	if err := s.store.Delete(ctx, storage.KeyToken); err != nil {
		log.Printf("clear token: %v", err)
	}
	if err := s.store.Delete(ctx, storage.KeyUser); err != nil {
		log.Printf("clear user: %v", err)
	}
}
