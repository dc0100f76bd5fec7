package intent

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/hugohenrick/greenchain/pkg/logger"
	"github.com/stretchr/testify/require"
)

// 10 de março de 2026, meio da tarde
var testNow = time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func today() Date { return DateOf(testNow) }

func day(offset int) Date { return today().AddDays(offset) }

func price(v float64) *float64 { return &v }

type memOrder struct {
	ID       string
	ItemID   string
	BuyerID  string
	Quantity int
	Status   OrderStatus
}

// memRepo é um Repository em memória com ordenação por validade
type memRepo struct {
	items   map[string]StockItem
	orders  []memOrder
	seq     int
	txCalls int
	listErr error
}

func newMemRepo(items ...StockItem) *memRepo {
	r := &memRepo{items: make(map[string]StockItem)}
	for _, item := range items {
		if item.Status == "" {
			item.Status = StatusAvailable
		}
		r.items[item.ID] = item
	}
	return r
}

func (r *memRepo) list(keep func(StockItem) bool) []StockItem {
	var out []StockItem
	for _, item := range r.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ExpiryDate.Equal(out[j].ExpiryDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].ExpiryDate.Before(out[j].ExpiryDate)
	})
	return out
}

func (r *memRepo) ListAvailableItems(ctx context.Context) ([]StockItem, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.list(func(i StockItem) bool { return i.Status == StatusAvailable }), nil
}

func (r *memRepo) ListItemsForOwner(ctx context.Context, ownerID string) ([]StockItem, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.list(func(i StockItem) bool { return i.OwnerID == ownerID }), nil
}

func (r *memRepo) GetItem(ctx context.Context, itemID string) (StockItem, error) {
	item, ok := r.items[itemID]
	if !ok {
		return StockItem{}, ErrItemNotFound
	}
	return item, nil
}

func (r *memRepo) InsertOrder(ctx context.Context, itemID, buyerID string, quantity int, status OrderStatus) (string, error) {
	r.seq++
	id := fmt.Sprintf("order-%d", r.seq)
	r.orders = append(r.orders, memOrder{ID: id, ItemID: itemID, BuyerID: buyerID, Quantity: quantity, Status: status})
	return id, nil
}

func (r *memRepo) UpdateItemQuantityAndStatus(ctx context.Context, itemID string, quantity int, status Status) error {
	item, ok := r.items[itemID]
	if !ok {
		return ErrItemNotFound
	}
	item.Quantity = quantity
	item.Status = status
	r.items[itemID] = item
	return nil
}

func (r *memRepo) InsertStockItem(ctx context.Context, item StockItem) (string, error) {
	r.seq++
	item.ID = fmt.Sprintf("stock-%d", r.seq)
	r.items[item.ID] = item
	return item.ID, nil
}

func (r *memRepo) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	r.txCalls++
	return fn(ctx)
}

func newTestManager(repo Repository, opts ...Option) *Manager {
	return NewManager(logger.NewNop(), repo, append([]Option{WithClock(fixedClock)}, opts...)...)
}

// say executa um turno e falha o teste se houver erro
func say(t *testing.T, m *Manager, role Role, userID, text string, fc FlowContext) *Reply {
	t.Helper()
	reply, err := m.ProcessTurn(context.Background(), Turn{Role: role, UserID: userID, Text: text, Context: fc})
	require.NoError(t, err)
	require.NotNil(t, reply)
	return reply
}

func buyerSays(t *testing.T, m *Manager, text string, fc FlowContext) *Reply {
	t.Helper()
	return say(t, m, RoleMiddleman, "m1", text, fc)
}

func sellerSays(t *testing.T, m *Manager, text string, fc FlowContext) *Reply {
	t.Helper()
	return say(t, m, RoleManager, "s1", text, fc)
}

func stock(id, name string, qty int, expiresIn int) StockItem {
	return StockItem{
		ID:          id,
		OwnerID:     "s1",
		ProductName: name,
		Quantity:    qty,
		ExpiryDate:  day(expiresIn),
		Status:      StatusAvailable,
	}
}
