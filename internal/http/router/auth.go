package router

import (
	"github.com/gin-gonic/gin"

	"chem.app/api/internal/http/handler"
)

// AuthRouter sets up auth routes
// - check-email and session are public
// - signup, login and logout require a verified identity
func AuthRouter(rg *gin.RouterGroup, h *handler.AuthHandler, authenticate gin.HandlerFunc) {
	rg.GET("/check-email", h.CheckEmail)
	rg.POST("/session", h.CreateSession)

	protected := rg.Group("")
	protected.Use(authenticate)
	{
		protected.POST("/signup", h.SignUp)
		protected.GET("/login", h.Login)
		protected.POST("/logout", h.Logout)
	}
}
