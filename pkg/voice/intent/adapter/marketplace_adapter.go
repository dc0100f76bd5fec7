package adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/greenchain/internal/adapter/repository"
	"github.com/hugohenrick/greenchain/internal/domain/order"
	"github.com/hugohenrick/greenchain/internal/domain/stock"
	"github.com/hugohenrick/greenchain/pkg/logger"
	"github.com/hugohenrick/greenchain/pkg/voice/intent"
)

// MarketplaceAdapter adapta os repositórios de estoque e pedidos à
// interface usada pelo agente de voz
type MarketplaceAdapter struct {
	stock  stock.Repository
	orders order.Repository
	tx     order.Transactor
	logger logger.Logger
}

// NewMarketplaceAdapter cria um novo adaptador. Com tx nil as operações de
// efetivação rodam sem transação.
func NewMarketplaceAdapter(stockRepo stock.Repository, orderRepo order.Repository, tx order.Transactor, log logger.Logger) *MarketplaceAdapter {
	return &MarketplaceAdapter{
		stock:  stockRepo,
		orders: orderRepo,
		tx:     tx,
		logger: log,
	}
}

// WithinTx implementa intent.Transactor
func (a *MarketplaceAdapter) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if a.tx == nil {
		return fn(ctx)
	}
	return a.tx.Transaction(ctx, fn)
}

// ListAvailableItems implementa intent.Repository.ListAvailableItems
func (a *MarketplaceAdapter) ListAvailableItems(ctx context.Context) ([]intent.StockItem, error) {
	items, err := a.stock.ListAvailable(ctx)
	if err != nil {
		a.logger.Error("Failed to list available stock", "error", err)
		return nil, err
	}
	return toIntentItems(items), nil
}

// ListItemsForOwner implementa intent.Repository.ListItemsForOwner
func (a *MarketplaceAdapter) ListItemsForOwner(ctx context.Context, ownerID string) ([]intent.StockItem, error) {
	items, err := a.stock.ListByOwner(ctx, ownerID)
	if err != nil {
		a.logger.Error("Failed to list owner stock", "error", err, "owner_id", ownerID)
		return nil, err
	}
	return toIntentItems(items), nil
}

// GetItem implementa intent.Repository.GetItem. A linha fica bloqueada
// quando chamada dentro de WithinTx.
func (a *MarketplaceAdapter) GetItem(ctx context.Context, itemID string) (intent.StockItem, error) {
	item, err := a.stock.FindByIDForUpdate(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrStockItemNotFound) {
			return intent.StockItem{}, intent.ErrItemNotFound
		}
		return intent.StockItem{}, err
	}
	return toIntentItem(item), nil
}

// InsertOrder implementa intent.Repository.InsertOrder
func (a *MarketplaceAdapter) InsertOrder(ctx context.Context, itemID, buyerID string, quantity int, status intent.OrderStatus) (string, error) {
	now := time.Now()
	o := &order.Order{
		ID:          uuid.New().String(),
		StockItemID: itemID,
		BuyerID:     buyerID,
		Quantity:    quantity,
		Status:      order.Status(status),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	a.logger.Debug("Inserting order", "order_id", o.ID, "stock_id", itemID, "buyer_id", buyerID)
	if err := a.orders.Create(ctx, o); err != nil {
		return "", err
	}
	return o.ID, nil
}

// UpdateItemQuantityAndStatus implementa intent.Repository.UpdateItemQuantityAndStatus
func (a *MarketplaceAdapter) UpdateItemQuantityAndStatus(ctx context.Context, itemID string, quantity int, status intent.Status) error {
	err := a.stock.UpdateQuantityAndStatus(ctx, itemID, quantity, stock.Status(status))
	if errors.Is(err, repository.ErrStockItemNotFound) {
		return intent.ErrItemNotFound
	}
	return err
}

// InsertStockItem implementa intent.Repository.InsertStockItem
func (a *MarketplaceAdapter) InsertStockItem(ctx context.Context, item intent.StockItem) (string, error) {
	now := time.Now()
	internal := &stock.Item{
		ID:          uuid.New().String(),
		OwnerID:     item.OwnerID,
		ProductName: item.ProductName,
		Quantity:    item.Quantity,
		ExpiryDate:  item.ExpiryDate.Time(),
		Price:       item.Price,
		Status:      stock.Status(item.Status),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := internal.Validate(); err != nil {
		return "", fmt.Errorf("item de estoque inválido: %w", err)
	}

	if err := a.stock.Create(ctx, internal); err != nil {
		a.logger.Error("Failed to insert stock item", "error", err, "owner_id", item.OwnerID)
		return "", err
	}
	return internal.ID, nil
}

func toIntentItem(item *stock.Item) intent.StockItem {
	return intent.StockItem{
		ID:          item.ID,
		OwnerID:     item.OwnerID,
		ProductName: item.ProductName,
		Quantity:    item.Quantity,
		ExpiryDate:  intent.DateOf(item.ExpiryDate),
		Price:       item.Price,
		Status:      intent.Status(item.Status),
	}
}

func toIntentItems(items []*stock.Item) []intent.StockItem {
	out := make([]intent.StockItem, 0, len(items))
	for _, item := range items {
		out = append(out, toIntentItem(item))
	}
	return out
}
