package intent

import (
	"context"
	"fmt"
	"sort"

	"github.com/hugohenrick/greenchain/pkg/logger"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// Itens disponíveis com até 3 dias são marcados como urgentes no resumo
	summaryUrgentDays = 3
	// Janela da consulta de urgência do vendedor
	sellerUrgencyDays = 7
)

// InventorySummary é o payload do resumo de inventário do vendedor
type InventorySummary struct {
	Total       int         `json:"total"`
	Available   int         `json:"available"`
	Expired     int         `json:"expired"`
	Ordered     int         `json:"ordered"`
	Reserved    int         `json:"reserved"`
	Urgent      int         `json:"urgent"`
	UrgentItems []StockItem `json:"urgent_items"`
}

// SellerHandler conduz o fluxo do gestor de estoque: consultas sobre o
// próprio inventário e o assistente de cadastro de itens
type SellerHandler struct {
	committer *Committer
	logger    logger.Logger
}

// NewSellerHandler cria um novo handler de vendedor
func NewSellerHandler(log logger.Logger, committer *Committer) *SellerHandler {
	return &SellerHandler{committer: committer, logger: log}
}

// Role implementa FlowHandler
func (h *SellerHandler) Role() Role {
	return RoleManager
}

// Handle implementa FlowHandler
func (h *SellerHandler) Handle(ctx context.Context, s *Session) (*Reply, error) {
	if s.Turn.Context.Stage == StageAddingStock {
		return h.continueWizard(ctx, s)
	}

	intent := classify(s.u, RoleManager)
	h.logger.Debug("Seller intent classified", "intent", intent)

	switch intent {
	case IntentGreeting:
		return &Reply{
			Response: "Hello! I can help you manage your inventory. Ask for a summary, check what's expiring or say 'add stock' to list a new item.",
			Action:   ActionGreeting,
			Context:  InitialContext(),
		}, nil
	case IntentStartAddWizard:
		return &Reply{
			Response: "Let's add a new item. What's the product name?",
			Action:   ActionAddStockStep,
			Context:  wizardContext(StepProductName, StockDraft{}),
		}, nil
	case IntentQuickAdd:
		return h.quickAdd(s), nil
	case IntentSummary:
		return h.summary(ctx, s)
	case IntentUrgency:
		return h.urgentItems(ctx, s)
	case IntentSearch:
		return h.search(ctx, s)
	case IntentPrice:
		return h.priceList(ctx, s)
	case IntentCancel:
		return cancelledReply("There's nothing to cancel right now."), nil
	case IntentHelp:
		return &Reply{
			Response: "You can ask me for an 'inventory summary', 'what expires this week', search your items like 'my tomatoes', list prices, or add stock with 'add stock' or 'add 50 tomatoes'.",
			Action:   ActionHelp,
			Context:  InitialContext(),
		}, nil
	}

	return &Reply{
		Response: "Sorry, I didn't understand that. Try 'inventory summary', 'what expires this week' or 'add stock'.",
		Action:   ActionDefault,
		Context:  InitialContext(),
	}, nil
}

func (h *SellerHandler) quickAdd(s *Session) *Reply {
	word, _ := s.u.productWord()
	qty, ok := parseQuantity(s.u)
	draft := StockDraft{
		ProductName: cases.Title(language.English).String(word),
		Quantity:    qty,
	}

	if !ok {
		draft.Quantity = 0
		return &Reply{
			Response: fmt.Sprintf("Adding %s. How many units do you have?", draft.ProductName),
			Action:   ActionAddStockStep,
			Context:  wizardContext(StepQuantity, draft),
		}
	}

	return &Reply{
		Response: fmt.Sprintf("Adding %d units of %s. %s", draft.Quantity, draft.ProductName, expiryQuestion),
		Action:   ActionAddStockStep,
		Context:  wizardContext(StepExpiryDate, draft),
	}
}

func (h *SellerHandler) summary(ctx context.Context, s *Session) (*Reply, error) {
	items, err := s.Candidates(ctx)
	if err != nil {
		return nil, err
	}

	sum := InventorySummary{Total: len(items), UrgentItems: []StockItem{}}
	for _, item := range items {
		switch item.Status {
		case StatusAvailable:
			sum.Available++
			if item.DaysLeft <= summaryUrgentDays {
				sum.Urgent++
				sum.UrgentItems = append(sum.UrgentItems, item)
			}
		case StatusExpired:
			sum.Expired++
		case StatusOrdered:
			sum.Ordered++
		case StatusReserved:
			sum.Reserved++
		}
	}
	sum.UrgentItems = capResults(sortByDaysLeft(sum.UrgentItems))

	if sum.Total == 0 {
		return &Reply{
			Response: "Your inventory is empty. Say 'add stock' to list your first item.",
			Action:   ActionInventorySummary,
			Data:     sum,
			Context:  InitialContext(),
		}, nil
	}

	msg := fmt.Sprintf("You have %s in your inventory: %d available, %d expired, %d ordered",
		plural(sum.Total, "item", "items"), sum.Available, sum.Expired, sum.Ordered)
	if sum.Reserved > 0 {
		msg += fmt.Sprintf(", %d reserved", sum.Reserved)
	}
	msg += "."
	if sum.Urgent > 0 {
		msg += fmt.Sprintf(" %s expiring within %d days:", plural(sum.Urgent, "item is", "items are"), summaryUrgentDays)
		msg += enumerate(sum.UrgentItems)
	}

	return &Reply{
		Response: msg,
		Action:   ActionInventorySummary,
		Data:     sum,
		Context:  InitialContext(),
	}, nil
}

func (h *SellerHandler) urgentItems(ctx context.Context, s *Session) (*Reply, error) {
	items, err := s.Candidates(ctx)
	if err != nil {
		return nil, err
	}

	var urgent []StockItem
	for _, item := range items {
		if item.Status == StatusAvailable && item.DaysLeft <= sellerUrgencyDays {
			urgent = append(urgent, item)
		}
	}

	if len(urgent) == 0 {
		return &Reply{
			Response: fmt.Sprintf("Good news! None of your available items expire in the next %d days.", sellerUrgencyDays),
			Action:   ActionNoUrgentItems,
			Data:     []StockItem{},
			Context:  InitialContext(),
		}, nil
	}

	urgent = sortByDaysLeft(urgent)
	return &Reply{
		Response: fmt.Sprintf("You have %s expiring within %d days:", plural(len(urgent), "item", "items"), sellerUrgencyDays) +
			enumerate(capResults(urgent)),
		Action:  ActionUrgentItems,
		Data:    urgent,
		Context: InitialContext(),
	}, nil
}

func (h *SellerHandler) search(ctx context.Context, s *Session) (*Reply, error) {
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
		return &Reply{
			Response: fmt.Sprintf("I couldn't find any %s in your inventory.", what),
			Action:   ActionSearchFailed,
			Data:     []StockItem{},
			Context:  InitialContext(),
		}, nil
	}

	shown := capResults(sortByDaysLeft(matches))
	return &Reply{
		Response: fmt.Sprintf("You have %s:", plural(len(matches), "matching item", "matching items")) + enumerate(shown),
		Action:   ActionSearchResults,
		Data:     shown,
		Context:  InitialContext(),
	}, nil
}

func (h *SellerHandler) priceList(ctx context.Context, s *Session) (*Reply, error) {
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
			Response: "None of your items have a price yet.",
			Action:   ActionNoPricedItems,
			Data:     []StockItem{},
			Context:  InitialContext(),
		}, nil
	}

	sort.SliceStable(priced, func(i, j int) bool {
		return *priced[i].Price < *priced[j].Price
	})
	shown := capResults(priced)
	return &Reply{
		Response: "Your prices, lowest first:" + enumerate(shown),
		Action:   ActionPriceList,
		Data:     shown,
		Context:  InitialContext(),
	}, nil
}

const expiryQuestion = "When does it expire? You can say 'tomorrow', 'in 5 days' or a date like 'March 10'."

// continueWizard processa um passo do assistente de cadastro. Palavras de
// cancelamento abandonam o rascunho em qualquer passo; no passo de preço
// as frases de "pular" têm prioridade ("no" pula o preço).
func (h *SellerHandler) continueWizard(ctx context.Context, s *Session) (*Reply, error) {
	fc := s.Turn.Context
	draft := fc.Draft()

	skipping := fc.Step == StepPrice && skipsPrice(s.u)
	if !skipping && s.u.hasAny(cancelWords) {
		h.logger.Debug("Add stock wizard cancelled", "step", fc.Step)
		return cancelledReply("Okay, I've cancelled adding this item."), nil
	}

	switch fc.Step {
	case StepProductName:
		name, ok := parseProductName(s.u.raw)
		if !ok {
			return wizardRetry(fc, "Please tell me the product name, for example 'Tomatoes'."), nil
		}
		draft.ProductName = name
		return wizardStep(StepQuantity, draft, fmt.Sprintf("How many units of %s do you have?", name)), nil

	case StepQuantity:
		qty, ok := parseQuantity(s.u)
		if !ok {
			return wizardRetry(fc, "Please tell me the quantity as a number, for example '50'."), nil
		}
		draft.Quantity = qty
		return wizardStep(StepExpiryDate, draft, expiryQuestion), nil

	case StepExpiryDate:
		date, ok := parseExpiryDate(s.u, s.Today)
		if !ok {
			return wizardRetry(fc, "I couldn't understand that date. "+expiryQuestion), nil
		}
		draft.ExpiryDate = &date
		return wizardStep(StepPrice, draft, "What's the price per unit? Say 'skip' if you don't want to set one."), nil

	case StepPrice:
		draft.Price = parsePrice(s.u)
		return &Reply{
			Response: fmt.Sprintf("Please confirm: %s. Say 'yes' to add it or 'cancel' to stop.", describeDraft(draft, s.Today)),
			Action:   ActionAddStockConfirm,
			Data:     draft.preview(s.Today),
			Context:  wizardContext(StepConfirm, draft),
		}, nil

	case StepConfirm:
		if !s.u.hasAny(affirmationWords) {
			return wizardRetry(fc, fmt.Sprintf("Say 'yes' to add %s or 'cancel' to stop.", describeDraft(draft, s.Today))), nil
		}
		item, err := h.committer.AddStockItem(ctx, s.Turn.UserID, draft)
		if err != nil {
			return nil, err
		}
		msg := fmt.Sprintf("Done! %d units of %s have been added to your inventory.", item.Quantity, item.ProductName)
		if item.Status == StatusExpired {
			msg += " Note that this item is already past its expiry date and is marked as expired."
		}
		return &Reply{
			Response: msg,
			Action:   ActionStockAdded,
			Data:     item,
			Context:  InitialContext(),
		}, nil
	}

	// Validate garante um passo conhecido
	return nil, fmt.Errorf("%w: passo %q", ErrInvalidContext, fc.Step)
}

func wizardStep(step WizardStep, draft StockDraft, prompt string) *Reply {
	return &Reply{
		Response: prompt,
		Action:   ActionAddStockStep,
		Context:  wizardContext(step, draft),
	}
}

func wizardRetry(fc FlowContext, prompt string) *Reply {
	return &Reply{
		Response: prompt,
		Action:   ActionAddStockRetry,
		Context:  fc,
	}
}

func describeDraft(d StockDraft, today Date) string {
	msg := fmt.Sprintf("%d units of %s", d.Quantity, d.ProductName)
	if d.ExpiryDate != nil {
		msg += fmt.Sprintf(", expiring on %s (%s)", d.ExpiryDate.Human(), daysPhrase(today.DaysUntil(*d.ExpiryDate)))
	}
	return msg + ", " + pricePhrase(d.Price)
}

func (d StockDraft) preview(today Date) StockItem {
	item := StockItem{
		ProductName: d.ProductName,
		Quantity:    d.Quantity,
		Price:       d.Price,
		Status:      StatusAvailable,
	}
	if d.ExpiryDate != nil {
		item.ExpiryDate = *d.ExpiryDate
		item.DaysLeft = today.DaysUntil(*d.ExpiryDate)
		if d.ExpiryDate.Before(today) {
			item.Status = StatusExpired
		}
	}
	return item
}
