package order

import (
	"context"
)

// Repository define a interface para operações de repositório de pedidos
type Repository interface {
	// Create insere um novo pedido
	Create(ctx context.Context, o *Order) error

	// FindByID busca um pedido pelo ID
	FindByID(ctx context.Context, id string) (*Order, error)

	// FindByIDForUpdate busca um pedido bloqueando a linha até o fim da transação
	FindByIDForUpdate(ctx context.Context, id string) (*Order, error)

	// ListByBuyer lista os pedidos de um intermediário, mais recentes primeiro
	ListByBuyer(ctx context.Context, buyerID string) ([]*Order, error)

	// UpdateStatus atualiza o status de um pedido
	UpdateStatus(ctx context.Context, id string, status Status) error
}
