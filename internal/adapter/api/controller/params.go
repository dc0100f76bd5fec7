package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hugohenrick/greenchain/internal/adapter/api/dto"
)

// idParam lê o parâmetro :id e valida o formato UUID. Em caso de erro já
// escreve a resposta 400.
func idParam(ctx *gin.Context) (string, bool) {
	id := ctx.Param("id")
	if id == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "ID inválido", "ID não fornecido"))
		return "", false
	}

	// Validar formato do ID
	if _, err := uuid.Parse(id); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "ID inválido", "formato de ID inválido"))
		return "", false
	}
	return id, true
}
