package stock

import (
	"context"
)

// Repository define a interface para operações de repositório de itens de estoque
type Repository interface {
	// Create insere um novo item
	Create(ctx context.Context, item *Item) error

	// FindByID busca um item pelo ID
	FindByID(ctx context.Context, id string) (*Item, error)

	// FindByIDForUpdate busca um item bloqueando a linha até o fim da transação
	FindByIDForUpdate(ctx context.Context, id string) (*Item, error)

	// ListAvailable lista os itens com status available, validade mais próxima primeiro
	ListAvailable(ctx context.Context) ([]*Item, error)

	// ListByOwner lista todos os itens de um gestor, validade mais próxima primeiro
	ListByOwner(ctx context.Context, ownerID string) ([]*Item, error)

	// Update atualiza os dados de um item
	Update(ctx context.Context, item *Item) error

	// UpdateQuantityAndStatus atualiza a quantidade e o status de um item
	UpdateQuantityAndStatus(ctx context.Context, id string, quantity int, status Status) error

	// Delete remove um item
	Delete(ctx context.Context, id string) error
}
