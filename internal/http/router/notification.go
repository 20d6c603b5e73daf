package router

import (
	"github.com/gin-gonic/gin"

	"chem.app/api/internal/http/handler"
)

func NotificationRouter(rg *gin.RouterGroup, h *handler.NotificationHandler) {
	rg.GET("/ws", h.WebSocket)
	rg.GET("/stream", h.Stream)
}
