package memory

import (
	"time"

	"promo-insights-be/internal/constant"
	"promo-insights-be/internal/dto"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ChatSession is the transient state of one chat conversation. State follows
// the stream lifecycle: idle -> sending -> streaming -> idle. Exactly one
// request may be in flight per session.
type ChatSession struct {
	Id        uuid.UUID
	State     string
	Messages  []dto.ChatHistoryEntry
	CreatedAt time.Time
}

type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Sessions expire after an hour of inactivity; expired items are purged
	// every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Create() *ChatSession {
	now := time.Now()
	session := &ChatSession{
		Id:        uuid.New(),
		State:     constant.ChatStateIdle,
		CreatedAt: now,
		Messages: []dto.ChatHistoryEntry{
			{
				Id:        uuid.New(),
				Role:      constant.ChatMessageRoleModel,
				Chat:      "Hi, ask me anything about your promotions.",
				CreatedAt: now,
			},
		},
	}
	r.Save(session)
	return session
}

func (r *SessionRepository) Save(session *ChatSession) {
	r.cache.Set(session.Id.String(), session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionId uuid.UUID) (*ChatSession, bool) {
	if x, found := r.cache.Get(sessionId.String()); found {
		return x.(*ChatSession), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionId uuid.UUID) {
	r.cache.Delete(sessionId.String())
}
