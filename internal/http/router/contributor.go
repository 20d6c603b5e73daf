package router

import (
	"github.com/gin-gonic/gin"

	"chem.app/api/internal/http/handler"
)

func ContributorRouter(rg *gin.RouterGroup, h *handler.ContributorHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.GET("/:id/transactions", h.Transactions)
}
