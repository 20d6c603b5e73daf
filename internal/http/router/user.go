package router

import (
	"github.com/gin-gonic/gin"

	"chem.app/api/internal/http/handler"
)

func UserRouter(rg *gin.RouterGroup, h *handler.UserHandler) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
}
