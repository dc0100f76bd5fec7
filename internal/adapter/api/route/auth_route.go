package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/greenchain/internal/adapter/api/controller"
)

// SetupAuthRoutes configura as rotas para autenticação
func SetupAuthRoutes(router *gin.RouterGroup, authController *controller.AuthController, authMiddleware gin.HandlerFunc) {
	authRouter := router.Group("/auth")
	{
		// Rotas públicas
		authRouter.POST("/register", authController.Register)
		authRouter.POST("/login", authController.Login)

		// Rotas que requerem o token atual
		authRouter.POST("/refresh", authMiddleware, authController.RefreshToken)
		authRouter.POST("/logout", authMiddleware, authController.Logout)
	}
}
