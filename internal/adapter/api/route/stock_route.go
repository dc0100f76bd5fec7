package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/greenchain/internal/adapter/api/controller"
	"github.com/hugohenrick/greenchain/internal/domain/user"
	"github.com/hugohenrick/greenchain/pkg/auth"
)

// SetupStockRoutes configura as rotas de itens de estoque
func SetupStockRoutes(router *gin.RouterGroup, stockController *controller.StockController, authMiddleware gin.HandlerFunc) {
	stockRouter := router.Group("/stock")
	stockRouter.Use(authMiddleware)
	{
		// Leitura para qualquer usuário autenticado
		stockRouter.GET("", stockController.List)
		stockRouter.GET("/:id", stockController.GetByID)

		// Operações do gestor de estoque
		managerOnly := auth.RoleAuthMiddleware(string(user.RoleManager))
		stockRouter.GET("/mine", managerOnly, stockController.Mine)
		stockRouter.POST("", managerOnly, stockController.Create)
		stockRouter.POST("/import", managerOnly, stockController.Import)
		stockRouter.PUT("/:id", managerOnly, stockController.Update)
		stockRouter.DELETE("/:id", managerOnly, stockController.Delete)
	}
}
