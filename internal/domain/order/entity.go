package order

import (
	"time"
)

// Status representa o status de um pedido
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Order representa a compra de parte de um item de estoque por um intermediário
type Order struct {
	ID          string    `json:"id"`
	StockItemID string    `json:"stock_item_id"`
	BuyerID     string    `json:"buyer_id"`
	Quantity    int       `json:"quantity"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsCancellable indica se o pedido ainda pode ser cancelado
func (o *Order) IsCancellable() bool {
	return o.Status == StatusPending || o.Status == StatusConfirmed
}
