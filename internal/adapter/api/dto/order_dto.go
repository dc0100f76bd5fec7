package dto

import (
	"time"

	"github.com/hugohenrick/greenchain/internal/domain/order"
)

// OrderRequest representa os dados para criação de um pedido
type OrderRequest struct {
	StockItemID string `json:"stock_item_id" binding:"required,uuid"`
	Quantity    int    `json:"quantity" binding:"required,gt=0"`
}

// OrderResponse representa a resposta com dados de um pedido
type OrderResponse struct {
	ID          string    `json:"id"`
	StockItemID string    `json:"stock_item_id"`
	BuyerID     string    `json:"buyer_id"`
	Quantity    int       `json:"quantity"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToOrderResponse converte um pedido do domínio para DTO de resposta
func ToOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:          o.ID,
		StockItemID: o.StockItemID,
		BuyerID:     o.BuyerID,
		Quantity:    o.Quantity,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

// ToOrderResponses converte uma lista de pedidos
func ToOrderResponses(orders []*order.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToOrderResponse(o))
	}
	return out
}
