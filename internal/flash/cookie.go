package flash

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const cookieName = "fyyur_flash"

type flashClaims struct {
	Messages []string `json:"msgs"`
	jwt.RegisteredClaims
}

// CookieStore keeps pending messages client side in an HS256 signed token.
type CookieStore struct {
	secret []byte
	ttl    time.Duration
}

func NewCookieStore(secret string, ttl time.Duration) *CookieStore {
	return &CookieStore{secret: []byte(secret), ttl: ttl}
}

func (s *CookieStore) Add(c *gin.Context, message string) error {
	msgs := append(s.current(c), message)

	token, err := s.sign(msgs)
	if err != nil {
		return err
	}
	c.Set(pendingKey, msgs)
	setCookie(c, cookieName, token, int(s.ttl.Seconds()))
	return nil
}

func (s *CookieStore) Pop(c *gin.Context) ([]string, error) {
	msgs := s.current(c)
	c.Set(pendingKey, []string{})
	if _, err := c.Cookie(cookieName); err == nil {
		setCookie(c, cookieName, "", -1)
	}
	return msgs, nil
}

func (s *CookieStore) current(c *gin.Context) []string {
	if v, ok := c.Get(pendingKey); ok {
		return append([]string(nil), v.([]string)...)
	}
	raw, err := c.Cookie(cookieName)
	if err != nil || raw == "" {
		return nil
	}
	msgs, err := s.parse(raw)
	if err != nil {
		// tampered or expired: drop silently
		return nil
	}
	return msgs
}

func (s *CookieStore) sign(msgs []string) (string, error) {
	now := time.Now()
	claims := flashClaims{
		Messages: msgs,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *CookieStore) parse(raw string) ([]string, error) {
	claims := &flashClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid flash token")
	}
	return claims.Messages, nil
}
