package intent

import (
	"context"
	"errors"
)

// Role identifica o papel de quem conversa com o agente
type Role string

const (
	RoleManager   Role = "manager"   // Gestor de estoque (vendedor)
	RoleMiddleman Role = "middleman" // Intermediário (comprador)
)

// Valid verifica se o papel é conhecido
func (r Role) Valid() bool {
	return r == RoleManager || r == RoleMiddleman
}

// Status representa o status de um item de estoque
type Status string

const (
	StatusAvailable Status = "available"
	StatusExpired   Status = "expired"
	StatusOrdered   Status = "ordered"
	StatusReserved  Status = "reserved"
)

// OrderStatus representa o status de um pedido
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Action é a etiqueta simbólica devolvida em cada resposta
type Action string

const (
	ActionGreeting         Action = "greeting"
	ActionHelp             Action = "help"
	ActionDefault          Action = "default"
	ActionCancelled        Action = "cancelled"
	ActionSearchFailed     Action = "search_failed"
	ActionShowResults      Action = "show_results"
	ActionClarifySelection Action = "clarify_selection"
	ActionConfirmOrder     Action = "confirm_order"
	ActionAwaitConfirm     Action = "awaiting_confirmation"
	ActionOrderPlaced      Action = "order_placed"
	ActionOrderGuidance    Action = "order_guidance"
	ActionItemUnavailable  Action = "item_unavailable"
	ActionNoUrgentItems    Action = "no_urgent_items"
	ActionNoPricedItems    Action = "no_priced_items"
	ActionInventorySummary Action = "inventory_summary"
	ActionUrgentItems      Action = "urgent_items"
	ActionSearchResults    Action = "search_results"
	ActionPriceList        Action = "price_list"
	ActionAddStockStep     Action = "add_stock_step"
	ActionAddStockRetry    Action = "add_stock_retry"
	ActionAddStockConfirm  Action = "add_stock_confirm"
	ActionStockAdded       Action = "stock_added"
)

// StockItem é a visão de um item de estoque usada pelo agente.
// Quando guardado no contexto da conversa, é um snapshot de valor.
type StockItem struct {
	ID          string   `json:"id"`
	OwnerID     string   `json:"owner_id"`
	ProductName string   `json:"product_name"`
	Quantity    int      `json:"quantity"`
	ExpiryDate  Date     `json:"expiry_date"`
	Price       *float64 `json:"price,omitempty"`
	Status      Status   `json:"status"`
	DaysLeft    int      `json:"days_left"`
}

// EffectiveStatus aplica a expiração preguiçosa: um item disponível cuja
// validade já passou é tratado como expirado.
func (i StockItem) EffectiveStatus(today Date) Status {
	if i.Status == StatusAvailable && i.ExpiryDate.Before(today) {
		return StatusExpired
	}
	return i.Status
}

// OrderRef descreve o pedido efetivado em um turno
type OrderRef struct {
	OrderID  string `json:"order_id,omitempty"`
	StockID  string `json:"stock_id"`
	Quantity int    `json:"quantity"`
}

// Turn é a entrada de um turno de conversa
type Turn struct {
	Role    Role
	UserID  string
	Text    string
	Context FlowContext
}

// Reply é a saída de um turno de conversa
type Reply struct {
	// Mensagem legível para o usuário
	Response string `json:"response"`

	// Etiqueta simbólica da ação executada
	Action Action `json:"action"`

	// Dados estruturados opcionais
	Data interface{} `json:"data,omitempty"`

	// Pedido efetivado, se houver
	Order *OrderRef `json:"order,omitempty"`

	// Contexto que o cliente deve devolver no próximo turno
	Context FlowContext `json:"context"`
}

// Repository é o colaborador de inventário e pedidos exigido pelo agente
type Repository interface {
	// ListAvailableItems lista os itens disponíveis, validade mais próxima primeiro
	ListAvailableItems(ctx context.Context) ([]StockItem, error)

	// ListItemsForOwner lista todos os itens do vendedor, validade mais próxima primeiro
	ListItemsForOwner(ctx context.Context, ownerID string) ([]StockItem, error)

	// GetItem busca um item pelo ID. Dentro de uma transação a linha fica bloqueada.
	GetItem(ctx context.Context, itemID string) (StockItem, error)

	// InsertOrder insere um pedido e retorna o seu ID
	InsertOrder(ctx context.Context, itemID, buyerID string, quantity int, status OrderStatus) (string, error)

	// UpdateItemQuantityAndStatus atualiza a quantidade e o status de um item
	UpdateItemQuantityAndStatus(ctx context.Context, itemID string, quantity int, status Status) error

	// InsertStockItem insere um novo item e retorna o seu ID
	InsertStockItem(ctx context.Context, item StockItem) (string, error)
}

// Transactor é implementado por repositórios capazes de agrupar as
// operações de efetivação em uma única transação
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Erros do agente
var (
	ErrInvalidContext   = errors.New("contexto de conversa inválido")
	ErrInvalidRole      = errors.New("papel inválido")
	ErrItemNotFound     = errors.New("item de estoque não encontrado")
	ErrSnapshotStale    = errors.New("item mudou desde a seleção")
	ErrInvalidQuantity  = errors.New("quantidade inválida")
	ErrItemNotAvailable = errors.New("item não está disponível")
)
