package intent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/greenchain/pkg/logger"
)

// SnapshotPolicy define o que fazer com o snapshot selecionado na hora de
// efetivar um pedido
type SnapshotPolicy string

const (
	// TrustSnapshot usa o snapshot capturado na seleção sem revalidar.
	// A baixa de estoque é aplicada sobre a linha atual.
	TrustSnapshot SnapshotPolicy = "trust"

	// RevalidateSnapshot relê o item e recusa o pedido se ele não estiver
	// mais disponível ou se a quantidade atual for menor que a pedida
	RevalidateSnapshot SnapshotPolicy = "revalidate"
)

// ParseSnapshotPolicy converte a configuração textual; vazio é TrustSnapshot
func ParseSnapshotPolicy(s string) (SnapshotPolicy, error) {
	switch SnapshotPolicy(s) {
	case "", TrustSnapshot:
		return TrustSnapshot, nil
	case RevalidateSnapshot:
		return RevalidateSnapshot, nil
	}
	return "", fmt.Errorf("política de snapshot desconhecida: %q", s)
}

// Committer executa os efeitos colaterais das intenções confirmadas
type Committer struct {
	repo   Repository
	logger logger.Logger
	policy SnapshotPolicy
	now    func() time.Time
}

// NewCommitter cria um novo Committer
func NewCommitter(log logger.Logger, repo Repository, policy SnapshotPolicy, now func() time.Time) *Committer {
	if now == nil {
		now = time.Now
	}
	if policy == "" {
		policy = TrustSnapshot
	}
	return &Committer{repo: repo, logger: log, policy: policy, now: now}
}

// ConfirmOrder insere um pedido confirmado e dá baixa na quantidade do item.
// Quando a quantidade chega a zero o item passa a "ordered".
func (c *Committer) ConfirmOrder(ctx context.Context, item StockItem, quantity int, buyerID string) (*OrderRef, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	var ref *OrderRef
	err := c.withinTx(ctx, func(ctx context.Context) error {
		live, err := c.repo.GetItem(ctx, item.ID)
		if err != nil {
			return err
		}

		if c.policy == RevalidateSnapshot {
			today := DateOf(c.now())
			if live.EffectiveStatus(today) != StatusAvailable {
				return ErrItemNotAvailable
			}
			if live.Quantity < quantity {
				return ErrSnapshotStale
			}
		}

		orderID, err := c.repo.InsertOrder(ctx, item.ID, buyerID, quantity, OrderStatusConfirmed)
		if err != nil {
			return fmt.Errorf("erro ao inserir pedido: %w", err)
		}

		remaining := live.Quantity - quantity
		status := live.Status
		if remaining <= 0 {
			remaining = 0
			status = StatusOrdered
		}
		if err := c.repo.UpdateItemQuantityAndStatus(ctx, item.ID, remaining, status); err != nil {
			return fmt.Errorf("erro ao atualizar estoque: %w", err)
		}

		ref = &OrderRef{OrderID: orderID, StockID: item.ID, Quantity: quantity}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("Order committed",
		"order_id", ref.OrderID,
		"stock_id", ref.StockID,
		"buyer_id", buyerID,
		"quantity", quantity)
	return ref, nil
}

// AddStockItem insere um novo item de estoque. O status é calculado com a
// data do momento da efetivação.
func (c *Committer) AddStockItem(ctx context.Context, sellerID string, draft StockDraft) (*StockItem, error) {
	if draft.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if draft.ExpiryDate == nil || draft.ExpiryDate.IsZero() {
		return nil, errors.New("validade não informada")
	}

	today := DateOf(c.now())
	status := StatusAvailable
	if draft.ExpiryDate.Before(today) {
		status = StatusExpired
	}

	item := StockItem{
		OwnerID:     sellerID,
		ProductName: draft.ProductName,
		Quantity:    draft.Quantity,
		ExpiryDate:  *draft.ExpiryDate,
		Price:       draft.Price,
		Status:      status,
		DaysLeft:    today.DaysUntil(*draft.ExpiryDate),
	}

	id, err := c.repo.InsertStockItem(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("erro ao inserir item de estoque: %w", err)
	}
	item.ID = id

	c.logger.Info("Stock item committed",
		"stock_id", id,
		"owner_id", sellerID,
		"product", item.ProductName,
		"quantity", item.Quantity,
		"status", item.Status)
	return &item, nil
}

func (c *Committer) withinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx, ok := c.repo.(Transactor); ok {
		return tx.WithinTx(ctx, fn)
	}
	return fn(ctx)
}
