package dto

import (
	"time"

	"github.com/hugohenrick/greenchain/internal/domain/stock"
)

const dateLayout = "2006-01-02"

// StockItemRequest representa os dados para criação ou atualização de um item
type StockItemRequest struct {
	ProductName string   `json:"product_name" binding:"required"`
	Quantity    int      `json:"quantity" binding:"gte=0"`
	ExpiryDate  string   `json:"expiry_date" binding:"required" example:"2026-03-20"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
}

// ParseExpiry interpreta a data de validade no formato 2006-01-02
func (r StockItemRequest) ParseExpiry() (time.Time, error) {
	return time.Parse(dateLayout, r.ExpiryDate)
}

// StockItemResponse representa a resposta com dados de um item de estoque
type StockItemResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	ExpiryDate  string    `json:"expiry_date"`
	DaysLeft    int       `json:"days_left"`
	Price       *float64  `json:"price,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToStockItemResponse converte um item do domínio aplicando a expiração preguiçosa
func ToStockItemResponse(item *stock.Item, today time.Time) StockItemResponse {
	return StockItemResponse{
		ID:          item.ID,
		OwnerID:     item.OwnerID,
		ProductName: item.ProductName,
		Quantity:    item.Quantity,
		ExpiryDate:  item.ExpiryDate.Format(dateLayout),
		DaysLeft:    item.DaysLeft(today),
		Price:       item.Price,
		Status:      string(item.EffectiveStatus(today)),
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

// ToStockItemResponses converte uma lista de itens
func ToStockItemResponses(items []*stock.Item, today time.Time) []StockItemResponse {
	out := make([]StockItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, ToStockItemResponse(item, today))
	}
	return out
}

// ImportRowError descreve uma linha rejeitada na importação CSV
type ImportRowError struct {
	Line  int    `json:"line"`
	Error string `json:"error"`
}

// ImportResponse resume o resultado de uma importação CSV
type ImportResponse struct {
	Imported []StockItemResponse `json:"imported"`
	Rejected []ImportRowError    `json:"rejected"`
}
