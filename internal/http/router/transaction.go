package router

import (
	"github.com/gin-gonic/gin"

	"chem.app/api/internal/http/handler"
)

func TransactionRouter(rg *gin.RouterGroup, h *handler.TransactionHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}
