package session

import (
	"fmt"
	"time"

	"meet-halfway/internal/models"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Store keeps sessions in memory. A session expires after ttl without use.
type Store struct {
	deps     *Deps
	sessions *cache.Cache
}

// NewStore creates an empty store.
func NewStore(deps *Deps, ttl time.Duration) *Store {
	return &Store{
		deps:     deps,
		sessions: cache.New(ttl, ttl/2),
	}
}

// Create starts a new session.
func (st *Store) Create() *Session {
	s := newSession(uuid.New().String(), st.deps)
	st.sessions.SetDefault(s.ID, s)
	return s
}

// Get returns the session with id and extends its lifetime.
func (st *Store) Get(id string) (*Session, error) {
	v, ok := st.sessions.Get(id)
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, models.ErrNotFound)
	}
	s := v.(*Session)
	st.sessions.SetDefault(id, s)
	return s, nil
}

// Count reports how many sessions are live.
func (st *Store) Count() int {
	return st.sessions.ItemCount()
}
