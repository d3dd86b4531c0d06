package api

import (
	"github.com/gin-gonic/gin"

	"github.com/clinivent/clinivent/internal/handlers"
)

func registerInviteRoutes(api *gin.RouterGroup, handler *handlers.InviteHandler) {
	invites := api.Group("/invites")
	{
		invites.GET("", handler.List)
		invites.POST("", handler.Create)
		invites.POST("/accept", handler.Accept)
	}
}
