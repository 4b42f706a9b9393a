package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gitproof/gitproof/pkg/config"
	"github.com/stretchr/testify/assert"
)

func sessionCookieValue(t *testing.T, session SessionData) string {
	t.Helper()
	data, err := json.Marshal(session)
	assert.NoError(t, err)
	encoded := base64.URLEncoding.EncodeToString(data)
	return createSignature(encoded) + "." + encoded
}

func newSessionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SessionMiddleware())
	router.GET("/test", func(c *gin.Context) {
		session := GetSession(c)
		if session == nil {
			c.JSON(http.StatusOK, gin.H{"user": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": session.UserID})
	})
	return router
}

func TestSessionRoundTrip(t *testing.T) {
	config.Load()
	router := newSessionRouter()

	cookie := sessionCookieValue(t, SessionData{
		UserID:    "user-1",
		Username:  "octocat",
		ExpiresAt: time.Now().Add(1 * time.Hour),
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: cookie})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")

	// A session past half its lifetime is renewed. The assertion reads
	// the response snapshot so it only passes if the cookie header was
	// set before the body was written, as a real client would see it.
	assert.Contains(t, w.Result().Header.Get("Set-Cookie"), sessionCookie+"=")
}

func TestSessionNotRenewedWhenFresh(t *testing.T) {
	config.Load()
	router := newSessionRouter()

	cookie := sessionCookieValue(t, SessionData{
		UserID:    "user-1",
		Username:  "octocat",
		ExpiresAt: time.Now().Add(23 * time.Hour),
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: cookie})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
	assert.Empty(t, w.Result().Header.Get("Set-Cookie"))
}

func TestSessionRejectedWhenExpired(t *testing.T) {
	config.Load()
	router := newSessionRouter()

	cookie := sessionCookieValue(t, SessionData{
		UserID:    "user-1",
		Username:  "octocat",
		ExpiresAt: time.Now().Add(-1 * time.Minute),
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: cookie})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "null")
}

func TestSessionRejectedWhenTampered(t *testing.T) {
	config.Load()
	router := newSessionRouter()

	cookie := sessionCookieValue(t, SessionData{
		UserID:    "user-1",
		Username:  "octocat",
		ExpiresAt: time.Now().Add(1 * time.Hour),
	})
	tampered := cookie[:len(cookie)-4] + "AAAA"

	req, _ := http.NewRequest("GET", "/test", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: tampered})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "null")
}

func TestAuthRequired(t *testing.T) {
	config.Load()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SessionMiddleware())
	protected := router.Group("/api")
	protected.Use(AuthRequired())
	protected.GET("/secret", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	// Without a session
	req, _ := http.NewRequest("GET", "/api/secret", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// With a session
	cookie := sessionCookieValue(t, SessionData{
		UserID:    "user-1",
		Username:  "octocat",
		ExpiresAt: time.Now().Add(1 * time.Hour),
	})
	req, _ = http.NewRequest("GET", "/api/secret", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: cookie})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
