package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/greenchain/internal/adapter/api/controller"
	"github.com/hugohenrick/greenchain/internal/domain/user"
	"github.com/hugohenrick/greenchain/pkg/auth"
)

// SetupOrderRoutes configura as rotas de pedidos
func SetupOrderRoutes(router *gin.RouterGroup, orderController *controller.OrderController, authMiddleware gin.HandlerFunc) {
	orderRouter := router.Group("/orders")
	orderRouter.Use(authMiddleware)
	{
		// Consulta pelo comprador ou pelo dono do item
		orderRouter.GET("/:id", orderController.GetByID)

		middlemanOnly := auth.RoleAuthMiddleware(string(user.RoleMiddleman))
		orderRouter.POST("", middlemanOnly, orderController.Create)
		orderRouter.GET("", middlemanOnly, orderController.List)
		orderRouter.PATCH("/:id/cancel", middlemanOnly, orderController.Cancel)
	}
}
