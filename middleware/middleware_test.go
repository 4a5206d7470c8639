package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nevta-digital/nevta-api/i18n"
	"github.com/nevta-digital/nevta-api/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeParser struct{}

func (fakeParser) ParseToken(token string) (*utils.Claims, error) {
	if token == "good" {
		return &utils.Claims{UserID: "u1", LoginID: "9876543210@nevta.digital"}, nil
	}
	return nil, utils.ErrInvalidToken
}

func TestAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/me", AuthMiddleware(fakeParser{}), func(c *gin.Context) {
		c.String(http.StatusOK, GetUserID(c)+"|"+GetLoginID(c))
	})

	cases := []struct {
		header string
		query  string
		status int
		body   string
	}{
		{"", "", http.StatusUnauthorized, ""},
		{"Bearer bad", "", http.StatusUnauthorized, ""},
		{"Token good", "", http.StatusUnauthorized, ""},
		{"", "?token=good", http.StatusUnauthorized, ""},
		{"Bearer good", "", http.StatusOK, "u1|9876543210@nevta.digital"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/me"+tc.query, nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tc.status {
			t.Errorf("%q %q: status %d, want %d", tc.header, tc.query, w.Code, tc.status)
		}
		if tc.body != "" && w.Body.String() != tc.body {
			t.Errorf("body = %q", w.Body.String())
		}
	}
}

func TestAuthMiddlewareAcceptsQueryTokenOnWebsocket(t *testing.T) {
	r := gin.New()
	r.GET("/ws", AuthMiddleware(fakeParser{}), func(c *gin.Context) {
		c.String(http.StatusOK, GetUserID(c))
	})
	req := httptest.NewRequest(http.MethodGet, "/ws?token=good", nil)
	req.Header.Set("Connection", "upgrade")
	req.Header.Set("Upgrade", "websocket")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != "u1" {
		t.Fatalf("status %d body %q", w.Code, w.Body.String())
	}
}

func TestGuestOnly(t *testing.T) {
	r := gin.New()
	r.POST("/auth/login", GuestOnly(fakeParser{}, "/api/v1/occasions"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/api/v1/occasions" {
		t.Fatalf("signed-in: status %d location %q", w.Code, w.Header().Get("Location"))
	}

	for _, header := range []string{"", "Bearer bad"} {
		req = httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusNoContent {
			t.Fatalf("guest %q: status %d", header, w.Code)
		}
	}
}

func TestLanguageResolution(t *testing.T) {
	lookup := func(_ context.Context, userID string) (string, error) {
		if userID == "u1" {
			return "en", nil
		}
		return "", errors.New("unknown")
	}

	r := gin.New()
	handler := func(c *gin.Context) { c.String(http.StatusOK, string(GetLanguage(c))) }
	r.GET("/public", Language(lookup), handler)
	r.GET("/private", AuthMiddleware(fakeParser{}), Language(lookup), handler)

	cases := []struct {
		path   string
		cookie string
		auth   bool
		want   i18n.Language
	}{
		{"/public", "", false, i18n.Hindi},
		{"/public?lang=en", "", false, i18n.English},
		{"/public?lang=fr", "", false, i18n.Hindi},
		{"/public", "en", false, i18n.English},
		{"/public?lang=hi", "en", false, i18n.Hindi},
		{"/private", "", true, i18n.English},
		{"/private", "hi", true, i18n.Hindi},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		if tc.cookie != "" {
			req.AddCookie(&http.Cookie{Name: i18n.CookieName, Value: tc.cookie})
		}
		if tc.auth {
			req.Header.Set("Authorization", "Bearer good")
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if got := i18n.Language(w.Body.String()); got != tc.want {
			t.Errorf("%s cookie=%q: got %q, want %q", tc.path, tc.cookie, got, tc.want)
		}
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	now := time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	hit := func() int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		return w.Code
	}

	if hit() != http.StatusOK || hit() != http.StatusOK {
		t.Fatalf("first two requests should pass")
	}
	if code := hit(); code != http.StatusTooManyRequests {
		t.Fatalf("third request: %d", code)
	}

	now = now.Add(2 * time.Minute)
	if code := hit(); code != http.StatusOK {
		t.Fatalf("after window: %d", code)
	}

	now = now.Add(2 * time.Minute)
	rl.cleanup()
	if len(rl.requests) != 0 {
		t.Fatalf("cleanup left %d entries", len(rl.requests))
	}
}
