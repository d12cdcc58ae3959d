package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisitorIdentityMintsCookie(t *testing.T) {
	var seenVisitorID string
	handler := visitorIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenVisitorID = ctxVisitorID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/blogs", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	_, err := uuid.Parse(seenVisitorID)
	require.NoError(t, err)

	var identityCookie *http.Cookie
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == visitorCookieName {
			identityCookie = cookie
		}
	}
	require.NotNil(t, identityCookie)
	assert.Equal(t, seenVisitorID, identityCookie.Value)
	assert.Equal(t, visitorCookieMaxAge, identityCookie.MaxAge)
}

func TestVisitorIdentityKeepsExistingCookie(t *testing.T) {
	existing := uuid.New().String()

	var seenVisitorID string
	handler := visitorIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenVisitorID = ctxVisitorID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/blogs", nil)
	req.AddCookie(&http.Cookie{Name: visitorCookieName, Value: existing})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, existing, seenVisitorID)
	assert.Empty(t, rr.Result().Cookies(), "no new cookie should be set")
}

func TestVisitorIdentityReplacesGarbageCookie(t *testing.T) {
	var seenVisitorID string
	handler := visitorIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenVisitorID = ctxVisitorID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/blogs", nil)
	req.AddCookie(&http.Cookie{Name: visitorCookieName, Value: "not-a-uuid"})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	_, err := uuid.Parse(seenVisitorID)
	assert.NoError(t, err)
	assert.Len(t, rr.Result().Cookies(), 1)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.7:52314"
	assert.Equal(t, "10.0.0.7", clientIP(req))

	req.Header.Set("X-Real-IP", "203.0.113.9")
	assert.Equal(t, "203.0.113.9", clientIP(req))

	req.Header.Set("X-Forwarded-For", "198.51.100.4, 203.0.113.9")
	assert.Equal(t, "198.51.100.4", clientIP(req))
}

func TestLogInternalServerErrorsRecoversPanic(t *testing.T) {
	handler := LogInternalServerErrors(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/blogs", nil)
	rr := httptest.NewRecorder()

	require.NotPanics(t, func() { handler.ServeHTTP(rr, req) })
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
