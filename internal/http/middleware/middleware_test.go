package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"chem.app/api/common/metrics"
	"chem.app/api/internal/http/middleware"
	"chem.app/api/internal/identity"
)

type stubProvider struct {
	tokens  map[string]*identity.Identity
	cookies map[string]*identity.Identity
	err     error
}

func (p *stubProvider) VerifyIDToken(_ context.Context, token string) (*identity.Identity, error) {
	if p.err != nil {
		return nil, p.err
	}
	if ident, ok := p.tokens[token]; ok {
		return ident, nil
	}
	return nil, identity.ErrInvalidToken
}

func (p *stubProvider) VerifySessionCookie(_ context.Context, cookie string) (*identity.Identity, error) {
	if ident, ok := p.cookies[cookie]; ok {
		return ident, nil
	}
	return nil, identity.ErrInvalidToken
}

func (p *stubProvider) SessionCookie(context.Context, string, time.Duration) (string, error) {
	return "", nil
}

func (p *stubProvider) RevokeRefreshTokens(context.Context, string) error { return nil }

func decodeError(w *httptest.ResponseRecorder) string {
	var body map[string]string
	Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
	return body["error"]
}

var _ = Describe("Authenticate", func() {
	var (
		router   *gin.Engine
		provider *stubProvider
		reached  bool
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		reached = false
		provider = &stubProvider{
			tokens:  map[string]*identity.Identity{"good": {UID: "uid-1", Email: "a@example.org"}},
			cookies: map[string]*identity.Identity{"cookie-1": {UID: "uid-2"}},
		}
		router = gin.New()
		router.Use(middleware.Authenticate(provider, "session"))
		router.GET("/me", func(c *gin.Context) {
			reached = true
			fromCtx := identity.FromContext(c.Request.Context())
			c.JSON(http.StatusOK, gin.H{"uid": fromCtx.UID, "same": fromCtx == middleware.GetIdentity(c)})
		})
	})

	It("accepts a valid bearer token", func() {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer good")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"uid":"uid-1"`))
		Expect(w.Body.String()).To(ContainSubstring(`"same":true`))
	})

	It("falls back to the session cookie", func() {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "session", Value: "cookie-1"})
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"uid":"uid-2"`))
	})

	It("rejects a request without credentials before the handler runs", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(decodeError(w)).To(Equal("Unauthorized"))
		Expect(reached).To(BeFalse())
	})

	It("rejects an invalid token", func() {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer forged")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(decodeError(w)).To(Equal("Invalid or expired token"))
		Expect(reached).To(BeFalse())
	})

	It("does not fall back to the cookie when a bearer token fails", func() {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer forged")
		req.AddCookie(&http.Cookie{Name: "session", Value: "cookie-1"})
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("rejects everything when the provider is unavailable", func() {
		provider.err = identity.ErrUnavailable
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer good")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})
})

var _ = Describe("Recovery", func() {
	It("turns a panic into a 500 JSON error", func() {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.Use(middleware.Recovery())
		router.GET("/boom", func(*gin.Context) { panic(errors.New("boom")) })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(decodeError(w)).To(Equal("Internal server error"))
	})
})

var _ = Describe("Metrics", func() {
	It("labels requests by route template", func() {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.Use(middleware.Metrics(), middleware.Logger())
		router.GET("/contributors/:id", func(c *gin.Context) { c.Status(http.StatusTeapot) })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/contributors/42", nil))
		Expect(w.Code).To(Equal(http.StatusTeapot))

		scrape := httptest.NewRecorder()
		metrics.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		Expect(scrape.Body.String()).To(ContainSubstring(`route="/contributors/:id",status="418"`))
		Expect(strings.Contains(scrape.Body.String(), "/contributors/42")).To(BeFalse())
	})
})
