package stock

import (
	"errors"
	"strings"
	"time"
)

// Status representa o status de um item de estoque
type Status string

const (
	StatusAvailable Status = "available"
	StatusExpired   Status = "expired"
	StatusOrdered   Status = "ordered"
	StatusReserved  Status = "reserved"
)

// Valid verifica se o status é conhecido
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusExpired, StatusOrdered, StatusReserved:
		return true
	}
	return false
}

// Erros de validação
var (
	ErrEmptyProductName = errors.New("nome do produto é obrigatório")
	ErrInvalidQuantity  = errors.New("quantidade não pode ser negativa")
	ErrMissingExpiry    = errors.New("data de validade é obrigatória")
	ErrInvalidPrice     = errors.New("preço não pode ser negativo")
	ErrInvalidStatus    = errors.New("status inválido")
)

// Item representa um lote de produto perecível anunciado por um gestor
type Item struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	ExpiryDate  time.Time `json:"expiry_date"` // Somente a data (meia-noite UTC)
	Price       *float64  `json:"price,omitempty"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewItem cria um item disponível já validado. O status passa a expirado
// se a validade for anterior a today.
func NewItem(ownerID, productName string, quantity int, expiry time.Time, price *float64, today time.Time) (*Item, error) {
	now := time.Now()
	item := &Item{
		OwnerID:     ownerID,
		ProductName: strings.TrimSpace(productName),
		Quantity:    quantity,
		ExpiryDate:  truncateDay(expiry),
		Price:       price,
		Status:      StatusAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if item.ExpiryDate.Before(truncateDay(today)) {
		item.Status = StatusExpired
	}
	return item, nil
}

// Validate verifica os campos obrigatórios
func (i *Item) Validate() error {
	if i.ProductName == "" {
		return ErrEmptyProductName
	}
	if i.Quantity < 0 {
		return ErrInvalidQuantity
	}
	if i.ExpiryDate.IsZero() {
		return ErrMissingExpiry
	}
	if i.Price != nil && *i.Price < 0 {
		return ErrInvalidPrice
	}
	if !i.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// EffectiveStatus aplica a expiração preguiçosa
func (i *Item) EffectiveStatus(today time.Time) Status {
	if i.Status == StatusAvailable && i.ExpiryDate.Before(truncateDay(today)) {
		return StatusExpired
	}
	return i.Status
}

// DaysLeft retorna os dias até a validade (negativo se já venceu)
func (i *Item) DaysLeft(today time.Time) int {
	return int(truncateDay(i.ExpiryDate).Sub(truncateDay(today)).Hours() / 24)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
