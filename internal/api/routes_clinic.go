package api

import (
	"github.com/gin-gonic/gin"

	"github.com/clinivent/clinivent/internal/handlers"
)

func registerClinicRoutes(api *gin.RouterGroup, handler *handlers.ClinicHandler) {
	api.GET("/setup/status", handler.SetupStatus)
	api.POST("/setup", handler.Setup)
	api.GET("/clinic", handler.Get)
	api.PATCH("/clinic", handler.Update)
	api.DELETE("/clinic", handler.Delete)
	api.GET("/members", handler.ListMembers)
}
