package flash

import (
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/redis"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookie = "fyyur_session"
	sessionKey    = "flash.session"
)

// RedisStore keeps pending messages in Redis under a per-browser session id.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Add(c *gin.Context, message string) error {
	sid := s.session(c, true)
	return s.client.PushFlash(c.Request.Context(), sid, message, s.ttl)
}

func (s *RedisStore) Pop(c *gin.Context) ([]string, error) {
	sid := s.session(c, false)
	if sid == "" {
		return nil, nil
	}
	return s.client.PopFlashes(c.Request.Context(), sid)
}

func (s *RedisStore) session(c *gin.Context, create bool) string {
	if v, ok := c.Get(sessionKey); ok {
		return v.(string)
	}
	if sid, err := c.Cookie(sessionCookie); err == nil {
		if _, err := uuid.Parse(sid); err == nil {
			c.Set(sessionKey, sid)
			return sid
		}
	}
	if !create {
		return ""
	}
	sid := uuid.NewString()
	c.Set(sessionKey, sid)
	setCookie(c, sessionCookie, sid, int((24 * time.Hour).Seconds()))
	return sid
}
