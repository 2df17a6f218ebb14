package router

import (
	"github.com/gin-gonic/gin"

	"github.com/NenadVrtue/webshop-triangle/internal/interfaces/http/handler"
)

func RegisterRoutes(r *gin.Engine, orderHandler *handler.OrderHandler) {
	api := r.Group("/api")
	{
		api.POST("/orders", orderHandler.CreateOrder)
		api.POST("/orders/preview", orderHandler.PreviewOrder)
		api.GET("/orders/:id", orderHandler.GetOrder)
		api.PATCH("/orders/:id/status", orderHandler.UpdateOrderStatus)
	}
}
