package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"chem.app/api/internal/http/dto"
	"chem.app/api/internal/http/middleware"
	"chem.app/api/internal/identity"
	"chem.app/api/internal/service"
)

// CookieConfig controls the session cookie set by CreateSession.
type CookieConfig struct {
	Name   string
	Secure bool
}

type AuthHandler struct {
	authService service.AuthService
	cookie      CookieConfig
}

func NewAuthHandler(authService service.AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if !bindJSON(c, &req) {
		return
	}

	user, org, err := h.authService.SignUp(c.Request.Context(), middleware.GetIdentity(c), req.Input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToSignUpResponse(user, org))
}

func (h *AuthHandler) Login(c *gin.Context) {
	user, err := h.authService.Login(c.Request.Context(), middleware.GetIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{User: dto.ToUserResponse(user)})
}

// CheckEmail answers 404 when the email is not registered so clients can
// branch on status alone.
func (h *AuthHandler) CheckEmail(c *gin.Context) {
	exists, err := h.authService.CheckEmail(c.Request.Context(), c.Query("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusOK
	if !exists {
		status = http.StatusNotFound
	}
	c.JSON(status, dto.CheckEmailResponse{Exists: exists})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.authService.Logout(ctx, middleware.GetIdentity(c)); err != nil {
		respondError(c, err)
		return
	}

	h.clearSessionCookie(c)
	slog.InfoContext(ctx, "user logged out")
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) CreateSession(c *gin.Context) {
	var req dto.SessionRequest
	if !bindJSON(c, &req) {
		return
	}

	cookie, err := h.authService.CreateSession(c.Request.Context(), req.IDToken)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, cookie)
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		h.cookie.Name,
		value,
		int(identity.SessionTTL.Seconds()),
		"/",
		"",
		h.cookie.Secure,
		true,
	)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		h.cookie.Name,
		"",
		-1,
		"/",
		"",
		h.cookie.Secure,
		true,
	)
}
