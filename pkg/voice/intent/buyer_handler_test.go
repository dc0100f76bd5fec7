package intent

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTrip passa o contexto pelo mesmo caminho que o cliente HTTP usa
func roundTrip(t *testing.T, fc FlowContext) FlowContext {
	t.Helper()
	raw, err := json.Marshal(fc)
	require.NoError(t, err)
	decoded, err := DecodeContext(raw)
	require.NoError(t, err)
	return decoded
}

func TestBuyerSearchNoMatches(t *testing.T) {
	m := newTestManager(newMemRepo(stock("o1", "Onions", 40, 3)))

	reply := buyerSays(t, m, "do you have tomatoes", InitialContext())

	assert.Equal(t, ActionSearchFailed, reply.Action)
	assert.Equal(t, StageSearchFailed, reply.Context.Stage)
	assert.Equal(t, []StockItem{}, reply.Data)
	assert.Contains(t, reply.Response, "tomatoes")
}

func TestBuyerSearchFailedThenShowAll(t *testing.T) {
	m := newTestManager(newMemRepo(
		stock("o1", "Onions", 40, 3),
		stock("p1", "Potatoes", 60, 1),
	))

	reply := buyerSays(t, m, "tomatoes", InitialContext())
	require.Equal(t, StageSearchFailed, reply.Context.Stage)

	reply = buyerSays(t, m, "yes", roundTrip(t, reply.Context))
	assert.Equal(t, ActionShowResults, reply.Action)
	require.Equal(t, StageAwaitingSelection, reply.Context.Stage)
	require.Len(t, reply.Context.Results, 2)
	assert.Equal(t, "p1", reply.Context.Results[0].ID)
}

func TestBuyerSearchSingleMatchGoesToConfirm(t *testing.T) {
	m := newTestManager(newMemRepo(
		stock("t1", "Cherry Tomatoes", 50, 2),
		stock("o1", "Onions", 40, 3),
	))

	reply := buyerSays(t, m, "I need tomatoes", InitialContext())

	assert.Equal(t, ActionConfirmOrder, reply.Action)
	require.Equal(t, StageConfirmOrder, reply.Context.Stage)
	require.NotNil(t, reply.Context.SelectedItem)
	assert.Equal(t, "t1", reply.Context.SelectedItem.ID)
	assert.Equal(t, 2, reply.Context.SelectedItem.DaysLeft)
	assert.Empty(t, reply.Context.Results)
}

func TestBuyerSearchCapsResultsAtFive(t *testing.T) {
	var items []StockItem
	for i := 0; i < 8; i++ {
		items = append(items, stock(string(rune('a'+i)), "Tomatoes", 20, 8-i))
	}
	m := newTestManager(newMemRepo(items...))

	reply := buyerSays(t, m, "show me tomatoes", InitialContext())

	assert.Equal(t, ActionShowResults, reply.Action)
	require.Equal(t, StageAwaitingSelection, reply.Context.Stage)
	require.Len(t, reply.Context.Results, maxResults)
	assert.Len(t, reply.Data, maxResults)
	for i := 1; i < len(reply.Context.Results); i++ {
		assert.LessOrEqual(t, reply.Context.Results[i-1].DaysLeft, reply.Context.Results[i].DaysLeft)
	}
	assert.Equal(t, 1, reply.Context.Results[0].DaysLeft)
	assert.Contains(t, reply.Response, "I found 8 items")
	assert.Contains(t, reply.Response, "\n5. ")
	assert.NotContains(t, reply.Response, "\n6. ")
}

func TestBuyerSearchExpiryWindow(t *testing.T) {
	m := newTestManager(newMemRepo(
		stock("t0", "Tomatoes", 20, 0),
		stock("t1", "Tomatoes", 20, 1),
		stock("t5", "Tomatoes", 20, 5),
	))

	reply := buyerSays(t, m, "tomatoes going off today", InitialContext())

	require.Equal(t, StageAwaitingSelection, reply.Context.Stage)
	require.Len(t, reply.Context.Results, 2)
	assert.Equal(t, "t0", reply.Context.Results[0].ID)
	assert.Equal(t, "t1", reply.Context.Results[1].ID)
}

func TestBuyerNeverSeesExpiredItems(t *testing.T) {
	expired := stock("t1", "Tomatoes", 20, -1)
	m := newTestManager(newMemRepo(expired))

	reply := buyerSays(t, m, "tomatoes", InitialContext())
	assert.Equal(t, ActionSearchFailed, reply.Action)
}

func TestBuyerFullOrderFlow(t *testing.T) {
	repo := newMemRepo(
		stock("t1", "Tomatoes", 30, 4),
		stock("t2", "Roma Tomatoes", 50, 2),
		stock("t3", "Green Tomatoes", 10, 6),
	)
	m := newTestManager(repo)

	reply := buyerSays(t, m, "tomatoes please", InitialContext())
	require.Equal(t, StageAwaitingSelection, reply.Context.Stage)
	require.Len(t, reply.Context.Results, 3)
	assert.Equal(t, "t2", reply.Context.Results[0].ID)

	reply = buyerSays(t, m, "the first one", roundTrip(t, reply.Context))
	require.Equal(t, StageConfirmOrder, reply.Context.Stage)
	assert.Equal(t, "t2", reply.Context.SelectedItem.ID)
	assert.Equal(t, 2, reply.Context.SelectedItem.DaysLeft)

	reply = buyerSays(t, m, "yes, 23 units", roundTrip(t, reply.Context))
	assert.Equal(t, ActionOrderPlaced, reply.Action)
	assert.Equal(t, InitialContext(), reply.Context)
	require.NotNil(t, reply.Order)
	assert.Equal(t, 20, reply.Order.Quantity)
	assert.Equal(t, "t2", reply.Order.StockID)

	assert.Equal(t, 30, repo.items["t2"].Quantity)
	assert.Equal(t, StatusAvailable, repo.items["t2"].Status)
	require.Len(t, repo.orders, 1)
	assert.Equal(t, 20, repo.orders[0].Quantity)
}

func TestBuyerOrderExhaustsItem(t *testing.T) {
	repo := newMemRepo(stock("t1", "Tomatoes", 10, 2))
	m := newTestManager(repo)

	reply := buyerSays(t, m, "tomatoes", InitialContext())
	require.Equal(t, StageConfirmOrder, reply.Context.Stage)

	reply = buyerSays(t, m, "yes 10", reply.Context)
	require.Equal(t, ActionOrderPlaced, reply.Action)

	assert.Equal(t, 0, repo.items["t1"].Quantity)
	assert.Equal(t, StatusOrdered, repo.items["t1"].Status)
	require.Len(t, repo.orders, 1)
	assert.Equal(t, "m1", repo.orders[0].BuyerID)
	assert.Equal(t, OrderStatusConfirmed, repo.orders[0].Status)
}

func TestBuyerSelectionByName(t *testing.T) {
	results := []StockItem{
		stock("t1", "Tomatoes", 30, 1),
		stock("o1", "Red Onions", 40, 2),
	}
	m := newTestManager(newMemRepo(results...))

	reply := buyerSays(t, m, "the onions", selectionContext(results))
	require.Equal(t, StageConfirmOrder, reply.Context.Stage)
	assert.Equal(t, "o1", reply.Context.SelectedItem.ID)
}

func TestBuyerSelectionOrdinalBeatsName(t *testing.T) {
	results := []StockItem{
		stock("t1", "Tomatoes", 30, 1),
		stock("o1", "Onions", 40, 2),
	}
	m := newTestManager(newMemRepo(results...))

	reply := buyerSays(t, m, "onions, the first", selectionContext(results))
	require.Equal(t, StageConfirmOrder, reply.Context.Stage)
	assert.Equal(t, "t1", reply.Context.SelectedItem.ID)
}

func TestBuyerSelectionUnresolvedReprompts(t *testing.T) {
	results := []StockItem{
		stock("t1", "Tomatoes", 30, 1),
		stock("o1", "Onions", 40, 2),
	}
	m := newTestManager(newMemRepo(results...))

	for _, text := range []string{"the fifth", "something else", "4"} {
		reply := buyerSays(t, m, text, selectionContext(results))
		assert.Equal(t, ActionClarifySelection, reply.Action, text)
		assert.Equal(t, selectionContext(results), reply.Context, text)
		assert.Contains(t, reply.Response, "1. Tomatoes", text)
	}
}

func TestBuyerSelectionCancel(t *testing.T) {
	results := []StockItem{stock("t1", "Tomatoes", 30, 1), stock("o1", "Onions", 40, 2)}
	m := newTestManager(newMemRepo(results...))

	reply := buyerSays(t, m, "never mind", selectionContext(results))
	assert.Equal(t, ActionCancelled, reply.Action)
	assert.Equal(t, InitialContext(), reply.Context)
}

func TestBuyerConfirmationNegotiatesQuantity(t *testing.T) {
	item := stock("t1", "Tomatoes", 50, 2)
	item.DaysLeft = 2
	repo := newMemRepo(item)
	m := newTestManager(repo)

	reply := buyerSays(t, m, "I'd like 7", confirmContext(item, 0))
	assert.Equal(t, ActionAwaitConfirm, reply.Action)
	require.Equal(t, StageConfirmOrder, reply.Context.Stage)
	assert.Equal(t, 7, reply.Context.RequestedQuantity)
	assert.Contains(t, reply.Response, "10 units")
	assert.Empty(t, repo.orders)

	reply = buyerSays(t, m, "ok", roundTrip(t, reply.Context))
	require.Equal(t, ActionOrderPlaced, reply.Action)
	assert.Equal(t, 10, reply.Order.Quantity)
	assert.Equal(t, 40, repo.items["t1"].Quantity)
}

func TestBuyerConfirmationRoundsToAvailable(t *testing.T) {
	item := stock("t1", "Tomatoes", 40, 2)
	repo := newMemRepo(item)
	m := newTestManager(repo)

	reply := buyerSays(t, m, "yes 45", confirmContext(item, 0))
	require.Equal(t, ActionOrderPlaced, reply.Action)
	assert.Equal(t, 40, reply.Order.Quantity)
	assert.Equal(t, StatusOrdered, repo.items["t1"].Status)
}

func TestBuyerConfirmationCancel(t *testing.T) {
	item := stock("t1", "Tomatoes", 50, 2)
	repo := newMemRepo(item)
	m := newTestManager(repo)

	reply := buyerSays(t, m, "no thanks", confirmContext(item, 0))
	assert.Equal(t, ActionCancelled, reply.Action)
	assert.Equal(t, InitialContext(), reply.Context)
	assert.Empty(t, repo.orders)
}

func TestBuyerConfirmationUnclearReprompts(t *testing.T) {
	item := stock("t1", "Tomatoes", 50, 2)
	m := newTestManager(newMemRepo(item))

	reply := buyerSays(t, m, "hmm", confirmContext(item, 20))
	assert.Equal(t, ActionAwaitConfirm, reply.Action)
	assert.Equal(t, confirmContext(item, 20), reply.Context)
}

func TestBuyerConfirmationStaleSnapshot(t *testing.T) {
	snapshot := stock("t1", "Tomatoes", 50, 2)
	live := snapshot
	live.Quantity = 5
	repo := newMemRepo(live)
	m := newTestManager(repo, WithSnapshotPolicy(RevalidateSnapshot))

	reply := buyerSays(t, m, "yes 20", confirmContext(snapshot, 0))
	assert.Equal(t, ActionItemUnavailable, reply.Action)
	assert.Equal(t, InitialContext(), reply.Context)
	assert.Nil(t, reply.Order)
	assert.Empty(t, repo.orders)
}

func TestBuyerConfirmationItemDeleted(t *testing.T) {
	m := newTestManager(newMemRepo())

	reply := buyerSays(t, m, "yes", confirmContext(stock("gone", "Okra", 10, 1), 0))
	assert.Equal(t, ActionItemUnavailable, reply.Action)
}

func TestBuyerUrgentItems(t *testing.T) {
	m := newTestManager(newMemRepo(
		stock("a", "Spinach", 10, 3),
		stock("b", "Milk", 10, 0),
		stock("c", "Cheese", 10, 9),
	))

	reply := buyerSays(t, m, "anything about to expire?", InitialContext())
	require.Equal(t, StageAwaitingSelection, reply.Context.Stage)
	require.Len(t, reply.Context.Results, 2)
	assert.Equal(t, "b", reply.Context.Results[0].ID)
	assert.Equal(t, "a", reply.Context.Results[1].ID)
}

func TestBuyerNoUrgentItems(t *testing.T) {
	m := newTestManager(newMemRepo(stock("c", "Cheese", 10, 9)))

	reply := buyerSays(t, m, "what expires", InitialContext())
	assert.Equal(t, ActionNoUrgentItems, reply.Action)
	assert.Equal(t, StageSearchFailed, reply.Context.Stage)
}

func TestBuyerCheapestItem(t *testing.T) {
	cheap := stock("b", "Bananas", 10, 5)
	cheap.Price = price(2)
	pricey := stock("a", "Apples", 10, 1)
	pricey.Price = price(9)
	m := newTestManager(newMemRepo(cheap, pricey, stock("c", "Curd", 10, 2)))

	reply := buyerSays(t, m, "what's cheapest", InitialContext())
	assert.Equal(t, ActionConfirmOrder, reply.Action)
	require.NotNil(t, reply.Context.SelectedItem)
	assert.Equal(t, "b", reply.Context.SelectedItem.ID)
}

func TestBuyerNoPricedItems(t *testing.T) {
	m := newTestManager(newMemRepo(stock("c", "Curd", 10, 2)))

	reply := buyerSays(t, m, "lowest prices", InitialContext())
	assert.Equal(t, ActionNoPricedItems, reply.Action)
}

func TestBuyerFallbacks(t *testing.T) {
	m := newTestManager(newMemRepo())

	assert.Equal(t, ActionGreeting, buyerSays(t, m, "hello", InitialContext()).Action)
	assert.Equal(t, ActionOrderGuidance, buyerSays(t, m, "yes", InitialContext()).Action)
	assert.Equal(t, ActionHelp, buyerSays(t, m, "help", InitialContext()).Action)
	assert.Equal(t, ActionDefault, buyerSays(t, m, "sing me a song", InitialContext()).Action)

	reply := buyerSays(t, m, "cancel", InitialContext())
	assert.Equal(t, ActionCancelled, reply.Action)
	assert.Equal(t, InitialContext(), reply.Context)
}

func TestBuyerRepositoryFailureIsFatal(t *testing.T) {
	repo := newMemRepo()
	repo.listErr = errors.New("connection refused")
	m := newTestManager(repo)

	_, err := m.ProcessTurn(context.Background(), Turn{Role: RoleMiddleman, UserID: "m1", Text: "tomatoes", Context: InitialContext()})
	assert.ErrorContains(t, err, "connection refused")
}

func TestBuyerExpiringSoonListsUrgentItems(t *testing.T) {
	m := newTestManager(newMemRepo(
		stock("t1", "Tomatoes", 10, 1),
		stock("o1", "Onions", 10, 2),
		stock("p1", "Potatoes", 10, 9),
	))

	reply := buyerSays(t, m, "what is expiring soon", InitialContext())
	assert.Equal(t, ActionShowResults, reply.Action)
	require.Equal(t, StageAwaitingSelection, reply.Context.Stage)
	require.Len(t, reply.Context.Results, 2)
	assert.Equal(t, "t1", reply.Context.Results[0].ID)
}
