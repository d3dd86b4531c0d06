package api

import (
	"github.com/gin-gonic/gin"

	"github.com/clinivent/clinivent/internal/handlers"
)

func registerExportRoutes(api *gin.RouterGroup, handler *handlers.ExportHandler) {
	export := api.Group("/export")
	{
		export.GET("/current-stock", handler.CurrentStock)
		export.GET("/transactions", handler.Transactions)
	}
}
