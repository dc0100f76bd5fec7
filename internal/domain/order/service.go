package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/greenchain/internal/domain/stock"
	"github.com/hugohenrick/greenchain/pkg/logger"
)

// Erros do serviço de pedidos
var (
	ErrNotOwner       = errors.New("pedido pertence a outro comprador")
	ErrNotCancellable = errors.New("pedido não pode mais ser cancelado")
)

// Transactor executa uma função dentro de uma transação
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service reúne as operações de pedido que envolvem o estoque
type Service struct {
	orders Repository
	stock  stock.Repository
	tx     Transactor
	logger logger.Logger
}

// NewService cria um novo serviço de pedidos
func NewService(orders Repository, stockRepo stock.Repository, tx Transactor, log logger.Logger) *Service {
	return &Service{orders: orders, stock: stockRepo, tx: tx, logger: log}
}

// Cancel cancela um pedido do comprador e devolve a quantidade ao item.
// Um item esgotado (ordered) volta a ficar disponível.
func (s *Service) Cancel(ctx context.Context, orderID, buyerID string) (*Order, error) {
	var cancelled *Order
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		o, err := s.orders.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o.BuyerID != buyerID {
			return ErrNotOwner
		}
		if !o.IsCancellable() {
			return ErrNotCancellable
		}

		item, err := s.stock.FindByIDForUpdate(ctx, o.StockItemID)
		if err != nil {
			return fmt.Errorf("erro ao buscar item do pedido: %w", err)
		}

		status := item.Status
		if status == stock.StatusOrdered {
			status = stock.StatusAvailable
		}
		if err := s.stock.UpdateQuantityAndStatus(ctx, item.ID, item.Quantity+o.Quantity, status); err != nil {
			return fmt.Errorf("erro ao devolver estoque: %w", err)
		}

		if err := s.orders.UpdateStatus(ctx, o.ID, StatusCancelled); err != nil {
			return fmt.Errorf("erro ao cancelar pedido: %w", err)
		}

		o.Status = StatusCancelled
		cancelled = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order cancelled",
		"order_id", cancelled.ID,
		"stock_id", cancelled.StockItemID,
		"buyer_id", buyerID,
		"quantity", cancelled.Quantity)
	return cancelled, nil
}
