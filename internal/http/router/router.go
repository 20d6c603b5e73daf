package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"chem.app/api/common/metrics"
	"chem.app/api/internal/http/handler"
	"chem.app/api/internal/http/middleware"
	"chem.app/api/internal/identity"
	"chem.app/api/internal/notify"
	"chem.app/api/internal/service"
)

type RouterConfig struct {
	// ProtectResources requires authentication on every resource route.
	ProtectResources  bool
	SessionCookieName string
	SecureCookies     bool
	AllowedOrigins    []string
	// KeepAlive is the notification ping interval; zero uses the default.
	KeepAlive time.Duration
}

func SetupRoutes(
	router *gin.Engine,
	services *service.Services,
	broker notify.Broker,
	provider identity.Provider,
	cfg RouterConfig,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	authenticate := middleware.Authenticate(provider, cfg.SessionCookieName)

	authHandler := handler.NewAuthHandler(services.Auth(), handler.CookieConfig{
		Name:   cfg.SessionCookieName,
		Secure: cfg.SecureCookies,
	})
	AuthRouter(router.Group("/auth"), authHandler, authenticate)

	resources := router.Group("")
	if cfg.ProtectResources {
		resources.Use(authenticate)
	}
	{
		OrganizationRouter(resources.Group("/organizations"), handler.NewOrganizationHandler(services.Organizations()))
		ContributorRouter(resources.Group("/contributors"), handler.NewContributorHandler(services.Contributors()))
		TransactionRouter(resources.Group("/transactions"), handler.NewTransactionHandler(services.Transactions()))
		UserRouter(resources.Group("/users"), handler.NewUserHandler(services.Users()))

		notificationHandler := handler.NewNotificationHandler(broker, cfg.AllowedOrigins, cfg.KeepAlive)
		NotificationRouter(resources.Group("/notifications"), notificationHandler)
	}
}
