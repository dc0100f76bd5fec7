package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/greenchain/internal/adapter/api/dto"
)

// Pinger verifica se uma dependência está respondendo
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController responde às verificações de saúde
type HealthController struct {
	db Pinger
}

// NewHealthController cria uma nova instância de HealthController
func NewHealthController(db Pinger) *HealthController {
	return &HealthController{db: db}
}

// Check verifica a API e o banco de dados
// @Summary Verificação de saúde
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} dto.ErrorResponse
// @Router /health [get]
func (c *HealthController) Check(ctx *gin.Context) {
	if c.db != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if err := c.db.Ping(pingCtx); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(http.StatusServiceUnavailable, "Banco de dados indisponível", err.Error()))
			return
		}
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "backend running"})
}
