package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/greenchain/internal/adapter/api/controller"
)

// SetupVoiceRoutes configura as rotas do agente de voz
func SetupVoiceRoutes(router *gin.RouterGroup, voiceController *controller.VoiceController, authMiddleware gin.HandlerFunc) {
	voiceRouter := router.Group("/voice-agent")
	{
		// Decisão de exportação, sem autenticação
		voiceRouter.POST("/start", voiceController.Start)

		// Papel e usuário vêm do token
		voiceRouter.POST("/query", authMiddleware, voiceController.Query)
	}
}
