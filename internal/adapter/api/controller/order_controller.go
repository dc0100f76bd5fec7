package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/greenchain/internal/adapter/api/dto"
	"github.com/hugohenrick/greenchain/internal/adapter/repository"
	"github.com/hugohenrick/greenchain/internal/domain/order"
	"github.com/hugohenrick/greenchain/internal/domain/stock"
	"github.com/hugohenrick/greenchain/pkg/auth"
	"github.com/hugohenrick/greenchain/pkg/logger"
	"github.com/hugohenrick/greenchain/pkg/metrics"
	"github.com/hugohenrick/greenchain/pkg/voice/intent"
)

// OrderController gerencia as requisições relacionadas a pedidos
type OrderController struct {
	orderRepository order.Repository
	stockRepository stock.Repository
	committer       *intent.Committer
	service         *order.Service
	logger          logger.Logger
}

// NewOrderController cria uma nova instância de OrderController. O committer
// é o mesmo caminho de efetivação usado pelo agente de voz.
func NewOrderController(orderRepository order.Repository, stockRepository stock.Repository, committer *intent.Committer, service *order.Service, log logger.Logger) *OrderController {
	return &OrderController{
		orderRepository: orderRepository,
		stockRepository: stockRepository,
		committer:       committer,
		service:         service,
		logger:          log,
	}
}

// Create efetiva um pedido com a quantidade exata informada
// @Summary Cria um pedido
// @Tags orders
// @Accept json
// @Produce json
// @Security Bearer
// @Param order body dto.OrderRequest true "Dados do pedido"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders [post]
func (c *OrderController) Create(ctx *gin.Context) {
	var request dto.OrderRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	buyerID, _, _, _ := auth.GetCurrentUser(ctx)

	ref, err := c.committer.ConfirmOrder(ctx.Request.Context(), intent.StockItem{ID: request.StockItemID}, request.Quantity, buyerID)
	if err != nil {
		switch {
		case errors.Is(err, intent.ErrItemNotFound):
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Item não encontrado", ""))
		case errors.Is(err, intent.ErrItemNotAvailable):
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "Item indisponível", err.Error()))
		case errors.Is(err, intent.ErrSnapshotStale):
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "Quantidade insuficiente", "O item não tem a quantidade pedida"))
		case errors.Is(err, intent.ErrInvalidQuantity):
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Quantidade inválida", ""))
		default:
			c.logger.Error("Failed to commit order", "error", err, "buyer_id", buyerID)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao criar pedido", err.Error()))
		}
		return
	}

	metrics.IncCounterVec(metrics.OrdersCommittedTotal, map[string]string{"source": "api"})

	o, err := c.orderRepository.FindByID(ctx, ref.OrderID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao buscar pedido criado", err.Error()))
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToOrderResponse(o))
}

// List lista os pedidos do comprador autenticado
// @Summary Lista os pedidos do comprador
// @Tags orders
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.ListResponse[dto.OrderResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders [get]
func (c *OrderController) List(ctx *gin.Context) {
	buyerID, _, _, _ := auth.GetCurrentUser(ctx)

	orders, err := c.orderRepository.ListByBuyer(ctx, buyerID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar pedidos", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(dto.ToOrderResponses(orders)))
}

// GetByID busca um pedido. Visível para o comprador e para o dono do item.
// @Summary Busca um pedido
// @Tags orders
// @Produce json
// @Security Bearer
// @Param id path string true "ID do pedido"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders/{id} [get]
func (c *OrderController) GetByID(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	o, err := c.orderRepository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Pedido não encontrado", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao buscar pedido", err.Error()))
		return
	}

	userID, _, _, _ := auth.GetCurrentUser(ctx)
	if o.BuyerID != userID {
		item, err := c.stockRepository.FindByID(ctx, o.StockItemID)
		if err != nil || item.OwnerID != userID {
			ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(http.StatusForbidden, "Acesso negado", ""))
			return
		}
	}

	ctx.JSON(http.StatusOK, dto.ToOrderResponse(o))
}

// Cancel cancela um pedido do comprador e devolve a quantidade ao estoque
// @Summary Cancela um pedido
// @Tags orders
// @Produce json
// @Security Bearer
// @Param id path string true "ID do pedido"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders/{id}/cancel [patch]
func (c *OrderController) Cancel(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}
	buyerID, _, _, _ := auth.GetCurrentUser(ctx)

	o, err := c.service.Cancel(ctx.Request.Context(), id, buyerID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrOrderNotFound):
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Pedido não encontrado", ""))
		case errors.Is(err, order.ErrNotOwner):
			ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(http.StatusForbidden, "Acesso negado", err.Error()))
		case errors.Is(err, order.ErrNotCancellable):
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "Pedido não pode ser cancelado", err.Error()))
		default:
			c.logger.Error("Failed to cancel order", "error", err, "buyer_id", buyerID)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao cancelar pedido", err.Error()))
		}
		return
	}

	metrics.IncCounter(metrics.OrdersCancelledTotal)
	ctx.JSON(http.StatusOK, dto.ToOrderResponse(o))
}
