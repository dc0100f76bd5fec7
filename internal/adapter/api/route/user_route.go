package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/greenchain/internal/adapter/api/controller"
)

// SetupUserRoutes configura as rotas para o módulo de usuários
func SetupUserRoutes(router *gin.RouterGroup, userController *controller.UserController, authMiddleware gin.HandlerFunc) {
	userRouter := router.Group("/users")
	userRouter.Use(authMiddleware)
	{
		userRouter.GET("/me", userController.Me)
		userRouter.GET("/:id", userController.GetByID)
	}
}
