package intent

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hugohenrick/greenchain/pkg/logger"
)

// Janela usada pela consulta de urgência do comprador
const buyerUrgencyDays = 3

// BuyerHandler conduz o fluxo do intermediário: busca, seleção,
// negociação de quantidade e confirmação do pedido
type BuyerHandler struct {
	committer *Committer
	logger    logger.Logger
}

// NewBuyerHandler cria um novo handler de comprador
func NewBuyerHandler(log logger.Logger, committer *Committer) *BuyerHandler {
	return &BuyerHandler{committer: committer, logger: log}
}

// Role implementa FlowHandler
func (h *BuyerHandler) Role() Role {
	return RoleMiddleman
}

// Handle implementa FlowHandler
func (h *BuyerHandler) Handle(ctx context.Context, s *Session) (*Reply, error) {
	stage := s.Turn.Context.Stage
	var intent Intent
	switch stage {
	case StageAwaitingSelection:
		intent = IntentContinueSelection
	case StageConfirmOrder:
		intent = IntentContinueConfirmation
	default:
		intent = classify(s.u, RoleMiddleman)
	}

	h.logger.Debug("Buyer intent classified", "intent", intent, "stage", stage)

	switch intent {
	case IntentContinueSelection:
		return h.continueSelection(s), nil
	case IntentContinueConfirmation:
		return h.continueConfirmation(ctx, s)
	case IntentGreeting:
		return &Reply{
			Response: "Hello! I can help you find fresh produce before it expires. Tell me what you're looking for, like 'tomatoes expiring this week'.",
			Action:   ActionGreeting,
			Context:  InitialContext(),
		}, nil
	case IntentUrgency:
		return h.urgentItems(ctx, s)
	case IntentSearch:
		return h.search(ctx, s)
	case IntentOrderConfirmation:
		if stage == StageSearchFailed {
			return h.showAll(ctx, s)
		}
		return &Reply{
			Response: "To place an order, first tell me which product you need, for example 'I need onions'.",
			Action:   ActionOrderGuidance,
			Context:  InitialContext(),
		}, nil
	case IntentPrice:
		return h.cheapest(ctx, s)
	case IntentCancel:
		if stage == StageInitial {
			return cancelledReply("There's nothing to cancel. What are you looking for?"), nil
		}
		return cancelledReply("Okay, cancelled. Let me know if you need anything else."), nil
	case IntentHelp:
		return &Reply{
			Response: "You can ask me things like 'show me tomatoes', 'what's about to expire' or 'cheapest items'. Pick an item from the list, tell me how many units you need and say 'yes' to place the order.",
			Action:   ActionHelp,
			Context:  InitialContext(),
		}, nil
	}

	return &Reply{
		Response: "Sorry, I didn't understand that. Try asking for a product, like 'I need potatoes', or say 'help'.",
		Action:   ActionDefault,
		Context:  InitialContext(),
	}, nil
}

func (h *BuyerHandler) search(ctx context.Context, s *Session) (*Reply, error) {
	items, err := s.Candidates(ctx)
	if err != nil {
		return nil, err
	}

	ps := s.u.products()
	window, hasWindow := expiryWindow(s.u)

	var matches []StockItem
	for _, item := range items {
		if len(ps) > 0 && !matchesProduct(item.ProductName, ps) {
			continue
		}
		if hasWindow && item.DaysLeft > window {
			continue
		}
		matches = append(matches, item)
	}

	if len(matches) == 0 {
		what := "matching items"
		if word, ok := s.u.productWord(); ok {
			what = word
		}
		if hasWindow {
			what += fmt.Sprintf(" expiring within %s", plural(window, "day", "days"))
		}
		return &Reply{
			Response: fmt.Sprintf("Sorry, I couldn't find any %s right now. Would you like to see all available items?", what),
			Action:   ActionSearchFailed,
			Data:     []StockItem{},
			Context:  searchFailedContext(),
		}, nil
	}

	return presentItems(matches), nil
}

func (h *BuyerHandler) showAll(ctx context.Context, s *Session) (*Reply, error) {
	items, err := s.Candidates(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return &Reply{
			Response: "There are no items available at the moment. Please check back later.",
			Action:   ActionSearchFailed,
			Data:     []StockItem{},
			Context:  InitialContext(),
		}, nil
	}
	return presentItems(items), nil
}

func (h *BuyerHandler) urgentItems(ctx context.Context, s *Session) (*Reply, error) {
	items, err := s.Candidates(ctx)
	if err != nil {
		return nil, err
	}

	var urgent []StockItem
	for _, item := range items {
		if item.DaysLeft <= buyerUrgencyDays {
			urgent = append(urgent, item)
		}
	}

	if len(urgent) == 0 {
		return &Reply{
			Response: fmt.Sprintf("No items expire within %d days right now. Would you like to see all available items?", buyerUrgencyDays),
			Action:   ActionNoUrgentItems,
			Data:     []StockItem{},
			Context:  searchFailedContext(),
		}, nil
	}
	return presentItems(urgent), nil
}

func (h *BuyerHandler) cheapest(ctx context.Context, s *Session) (*Reply, error) {
	items, err := s.Candidates(ctx)
	if err != nil {
		return nil, err
	}

	var priced []StockItem
	for _, item := range items {
		if item.Price != nil {
			priced = append(priced, item)
		}
	}
	if len(priced) == 0 {
		return &Reply{
			Response: "None of the available items have a price listed yet. Would you like to see all available items?",
			Action:   ActionNoPricedItems,
			Data:     []StockItem{},
			Context:  searchFailedContext(),
		}, nil
	}

	// empate de preço fica com a validade mais próxima (ordem de chegada)
	sort.SliceStable(priced, func(i, j int) bool {
		return *priced[i].Price < *priced[j].Price
	})
	return presentItems(priced[:1]), nil
}

// presentItems leva um item direto à confirmação ou vários à seleção
func presentItems(items []StockItem) *Reply {
	if len(items) == 1 {
		item := items[0]
		return &Reply{
			Response: confirmPrompt(item),
			Action:   ActionConfirmOrder,
			Data:     item,
			Context:  confirmContext(item, 0),
		}
	}

	sorted := sortByDaysLeft(items)
	shown := capResults(sorted)

	var header string
	if len(sorted) > len(shown) {
		header = fmt.Sprintf("I found %d items. Here are the %d expiring soonest:", len(sorted), len(shown))
	} else {
		header = fmt.Sprintf("I found %d items:", len(shown))
	}

	return &Reply{
		Response: header + enumerate(shown) + "\nWhich one would you like? Say the number or the product name.",
		Action:   ActionShowResults,
		Data:     shown,
		Context:  selectionContext(shown),
	}
}

func confirmPrompt(item StockItem) string {
	return fmt.Sprintf("I found %s. How many units would you like? Say 'yes' to order all %d units or tell me a quantity.",
		describeItem(item), item.Quantity)
}

func (h *BuyerHandler) continueSelection(s *Session) *Reply {
	results := s.Turn.Context.Results

	idx, ok := selectByOrdinal(s.u)
	if !ok {
		idx, ok = selectByName(s.u, results)
	}
	if ok && idx < len(results) {
		item := results[idx]
		return &Reply{
			Response: confirmPrompt(item),
			Action:   ActionConfirmOrder,
			Data:     item,
			Context:  confirmContext(item, 0),
		}
	}

	if !ok && s.u.hasAny(cancelWords) {
		return cancelledReply("Okay, cancelled. Let me know if you need anything else.")
	}

	return &Reply{
		Response: "Sorry, I didn't catch which item you meant. Please choose one:" + enumerate(results),
		Action:   ActionClarifySelection,
		Data:     results,
		Context:  selectionContext(results),
	}
}

// selectByOrdinal usa a primeira palavra ordinal do texto
func selectByOrdinal(u utterance) (int, bool) {
	for _, tok := range u.tokens {
		if idx, ok := ordinalWords[tok]; ok {
			return idx, true
		}
	}
	return 0, false
}

// selectByName casa o texto com o nome de um dos candidatos; o primeiro vence
func selectByName(u utterance, results []StockItem) (int, bool) {
	ps := u.products()
	for i, item := range results {
		name := strings.ToLower(item.ProductName)
		if strings.Contains(u.lower, name) {
			return i, true
		}
		for _, word := range strings.Fields(name) {
			if len(word) >= 3 && u.has(word) {
				return i, true
			}
		}
		if len(ps) > 0 && matchesProduct(item.ProductName, ps) {
			return i, true
		}
	}
	return 0, false
}

func (h *BuyerHandler) continueConfirmation(ctx context.Context, s *Session) (*Reply, error) {
	fc := s.Turn.Context
	item := *fc.SelectedItem

	requested, hasQty := s.u.firstNumber()
	if hasQty && requested <= 0 {
		hasQty = false
	}
	if !hasQty && fc.RequestedQuantity > 0 {
		requested, hasQty = fc.RequestedQuantity, true
	}

	if s.u.hasAny(affirmationWords) {
		q := item.Quantity
		if hasQty {
			q = requested
		}
		qty := roundOrderQuantity(q, item.Quantity)
		if qty <= 0 {
			return unavailableReply(item), nil
		}

		ref, err := h.committer.ConfirmOrder(ctx, item, qty, s.Turn.UserID)
		switch {
		case errors.Is(err, ErrItemNotFound), errors.Is(err, ErrItemNotAvailable), errors.Is(err, ErrSnapshotStale):
			h.logger.Warn("Order rejected at commit", "stock_id", item.ID, "error", err)
			return unavailableReply(item), nil
		case err != nil:
			return nil, err
		}

		return &Reply{
			Response: fmt.Sprintf("Order confirmed! %d units of %s have been ordered. The seller will be notified.", qty, item.ProductName),
			Action:   ActionOrderPlaced,
			Data:     item,
			Order:    ref,
			Context:  InitialContext(),
		}, nil
	}

	if s.u.hasAny(cancelWords) {
		return cancelledReply("Okay, I've cancelled that order. Let me know if you need anything else."), nil
	}

	if hasQty {
		qty := roundOrderQuantity(requested, item.Quantity)
		msg := fmt.Sprintf("You asked for %d units of %s.", requested, item.ProductName)
		if qty != requested {
			msg += fmt.Sprintf(" Orders are placed in multiples of 10, so that will be %d units.", qty)
		}
		return &Reply{
			Response: msg + " Say 'yes' to confirm or 'cancel' to stop.",
			Action:   ActionAwaitConfirm,
			Data:     item,
			Context:  confirmContext(item, requested),
		}, nil
	}

	return &Reply{
		Response: fmt.Sprintf("Say 'yes' to order %s, tell me how many units you need, or say 'cancel'.", item.ProductName),
		Action:   ActionAwaitConfirm,
		Data:     item,
		Context:  confirmContext(item, fc.RequestedQuantity),
	}, nil
}

func unavailableReply(item StockItem) *Reply {
	return &Reply{
		Response: fmt.Sprintf("Sorry, %s is no longer available in that quantity. Try searching again.", item.ProductName),
		Action:   ActionItemUnavailable,
		Context:  InitialContext(),
	}
}
