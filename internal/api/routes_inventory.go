package api

import (
	"github.com/gin-gonic/gin"

	"github.com/clinivent/clinivent/internal/handlers"
)

func registerInventoryRoutes(
	api *gin.RouterGroup,
	dashboard *handlers.DashboardHandler,
	categories *handlers.CategoryHandler,
	items *handlers.ItemHandler,
	transactions *handlers.TransactionHandler,
) {
	api.GET("/dashboard", dashboard.Get)
	api.GET("/stock", dashboard.Stock)

	cat := api.Group("/categories")
	{
		cat.GET("", categories.List)
		cat.POST("", categories.Create)
		cat.POST("/:id/archive", categories.Archive)
	}

	itm := api.Group("/items")
	{
		itm.GET("", items.List)
		itm.POST("", items.Create)
		itm.PATCH("/:id/threshold", items.UpdateThreshold)
		itm.POST("/:id/archive", items.Archive)
	}

	txn := api.Group("/transactions")
	{
		txn.GET("", transactions.List)
		txn.POST("", transactions.Create)
		txn.DELETE("/:id", transactions.Delete)
	}
}
