package memory

import (
	"time"

	"ai-mediagen-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionRepository caches chat sessions that were recently opened or resumed.
// It is a read-through aid only; the database stays authoritative.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Create a cache with a default expiration time of 1 hour, and which
	// purges expired items every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *entity.ChatSession) {
	copied := *session
	r.cache.Set(session.Id.String(), &copied, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID uuid.UUID) (*entity.ChatSession, bool) {
	if x, found := r.cache.Get(sessionID.String()); found {
		copied := *x.(*entity.ChatSession)
		return &copied, true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID uuid.UUID) {
	r.cache.Delete(sessionID.String())
}
