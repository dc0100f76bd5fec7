package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hugohenrick/greenchain/internal/adapter/api/dto"
	"github.com/hugohenrick/greenchain/pkg/auth"
	"github.com/hugohenrick/greenchain/pkg/logger"
	"github.com/hugohenrick/greenchain/pkg/metrics"
	"github.com/hugohenrick/greenchain/pkg/voice/intent"
)

// Prazo máximo de entrega aceito para produtos perecíveis
const maxShelfLifeDeliveryDays = 3

// VoiceController expõe o agente de voz
type VoiceController struct {
	manager *intent.Manager
	logger  logger.Logger
}

// NewVoiceController cria uma nova instância de VoiceController
func NewVoiceController(manager *intent.Manager, log logger.Logger) *VoiceController {
	return &VoiceController{manager: manager, logger: log}
}

// Query processa um turno de conversa
// @Summary Processa um turno do agente de voz
// @Description Classifica o texto transcrito, avança o fluxo e devolve o próximo contexto
// @Tags voice-agent
// @Accept json
// @Produce json
// @Security Bearer
// @Param turn body dto.VoiceQueryRequest true "Turno de conversa"
// @Success 200 {object} dto.VoiceQueryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /voice-agent/query [post]
func (c *VoiceController) Query(ctx *gin.Context) {
	var request dto.VoiceQueryRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	userID, _, _, role := auth.GetCurrentUser(ctx)
	if (request.UserID != "" && request.UserID != userID) || (request.Role != "" && request.Role != role) {
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(http.StatusForbidden, "Acesso negado", "user_id e role devem coincidir com o token"))
		return
	}

	flowCtx, err := intent.DecodeContext(request.Context)
	if err == nil {
		err = checkContextItemIDs(flowCtx)
	}
	if err != nil {
		c.recordError(role, "invalid_context")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Contexto inválido", err.Error()))
		return
	}

	reply, err := c.manager.ProcessTurn(ctx.Request.Context(), intent.Turn{
		Role:    intent.Role(role),
		UserID:  userID,
		Text:    request.Text,
		Context: flowCtx,
	})
	if err != nil {
		switch {
		case errors.Is(err, intent.ErrInvalidContext):
			c.recordError(role, "invalid_context")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Contexto inválido", err.Error()))
		case errors.Is(err, intent.ErrInvalidRole):
			c.recordError(role, "invalid_role")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Papel inválido", err.Error()))
		default:
			c.recordError(role, "internal")
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao processar turno", err.Error()))
		}
		return
	}

	metrics.IncCounterVec(metrics.VoiceTurnsTotal, map[string]string{"role": role, "action": string(reply.Action)})
	if reply.Order != nil {
		metrics.IncCounterVec(metrics.OrdersCommittedTotal, map[string]string{"source": "voice"})
	}
	if reply.Action == intent.ActionStockAdded {
		metrics.IncCounterVec(metrics.StockItemsAddedTotal, map[string]string{"source": "voice"})
	}

	ctx.JSON(http.StatusOK, dto.ToVoiceQueryResponse(reply))
}

// Start avalia um pedido de exportação pelo prazo de entrega
// @Summary Avalia um pedido de exportação
// @Description Pedidos com entrega acima de 3 dias são recusados pela validade curta
// @Tags voice-agent
// @Accept json
// @Produce json
// @Param request body dto.VoiceStartRequest true "Pedido de exportação"
// @Success 200 {object} dto.VoiceStartResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /voice-agent/start [post]
func (c *VoiceController) Start(ctx *gin.Context) {
	var request dto.VoiceStartRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	decision := "Accepted: export confirmed"
	if request.DeliveryTimeDays > maxShelfLifeDeliveryDays {
		decision = "Rejected: delivery time exceeds shelf-life"
	}

	c.logger.Info("Export request evaluated",
		"buyer_id", request.BuyerID,
		"quantity", request.QuantityNeeded,
		"delivery_days", request.DeliveryTimeDays,
		"decision", decision)

	ctx.JSON(http.StatusOK, dto.VoiceStartResponse{
		Agent:        "GreenChain Voice Agent",
		Question:     fmt.Sprintf("Buyer %s, how many units do you need?", request.BuyerID),
		Decision:     decision,
		PaymentTerms: "Net 7 days",
	})
}

// checkContextItemIDs exige que os itens devolvidos pelo cliente tenham ID UUID
func checkContextItemIDs(fc intent.FlowContext) error {
	items := fc.Results
	if fc.SelectedItem != nil {
		items = append(items[:len(items):len(items)], *fc.SelectedItem)
	}
	for _, item := range items {
		if _, err := uuid.Parse(item.ID); err != nil {
			return fmt.Errorf("%w: item %q com ID inválido", intent.ErrInvalidContext, item.ID)
		}
	}
	return nil
}

func (c *VoiceController) recordError(role, reason string) {
	metrics.IncCounterVec(metrics.VoiceTurnErrorsTotal, map[string]string{"role": role, "reason": reason})
}
