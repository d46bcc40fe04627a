package flash

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/redis"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// browser replays the cookies a real client would keep.
type browser struct {
	router  *gin.Engine
	cookies map[string]*http.Cookie
}

func newBrowser(store Store) *browser {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/add", func(c *gin.Context) {
		for _, m := range c.QueryArray("m") {
			if err := store.Add(c, m); err != nil {
				c.Status(http.StatusInternalServerError)
				return
			}
		}
		c.Status(http.StatusNoContent)
	})
	r.GET("/pop", func(c *gin.Context) {
		msgs, err := store.Pop(c)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, msgs)
	})
	return &browser{router: r, cookies: map[string]*http.Cookie{}}
}

func (b *browser) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range b.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	b.router.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(b.cookies, ck.Name)
			continue
		}
		b.cookies[ck.Name] = ck
	}
	return rec
}

func (b *browser) pop(t *testing.T) []string {
	t.Helper()
	rec := b.get(t, "/pop")
	require.Equal(t, http.StatusOK, rec.Code)
	var msgs []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msgs))
	return msgs
}

func TestCookieStoreRoundTrip(t *testing.T) {
	b := newBrowser(NewCookieStore("secret", time.Minute))

	assert.Empty(t, b.pop(t))

	b.get(t, "/add?m=Venue+The+Musical+Hop+was+successfully+listed!&m=second")
	assert.Equal(t, []string{"Venue The Musical Hop was successfully listed!", "second"}, b.pop(t))
	assert.Empty(t, b.pop(t))
}

func TestCookieStoreAccumulatesAcrossRequests(t *testing.T) {
	b := newBrowser(NewCookieStore("secret", time.Minute))

	b.get(t, "/add?m=one")
	b.get(t, "/add?m=two")
	assert.Equal(t, []string{"one", "two"}, b.pop(t))
}

func TestCookieStoreRejectsForgedToken(t *testing.T) {
	b := newBrowser(NewCookieStore("secret", time.Minute))
	b.get(t, "/add?m=hello")

	forged := NewCookieStore("other-secret", time.Minute)
	token, err := forged.sign([]string{"forged"})
	require.NoError(t, err)
	b.cookies[cookieName].Value = token

	assert.Empty(t, b.pop(t))
}

func TestRedisStoreRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClientWithAddr(mr.Addr())
	defer client.Close()

	b := newBrowser(NewRedisStore(client, time.Minute))

	assert.Empty(t, b.pop(t))
	assert.NotContains(t, b.cookies, sessionCookie)

	b.get(t, "/add?m=Show+was+successfully+listed!")
	require.Contains(t, b.cookies, sessionCookie)
	assert.Equal(t, []string{"Show was successfully listed!"}, b.pop(t))
	assert.Empty(t, b.pop(t))
}

func TestRedisStoreSessionsAreIsolated(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClientWithAddr(mr.Addr())
	defer client.Close()

	store := NewRedisStore(client, time.Minute)
	alice := newBrowser(store)
	bob := newBrowser(store)

	alice.get(t, "/add?m=for-alice")
	assert.Empty(t, bob.pop(t))
	assert.Equal(t, []string{"for-alice"}, alice.pop(t))
}
