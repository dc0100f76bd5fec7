package intent

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ContextVersion é a versão atual do formato do contexto de conversa
const ContextVersion = 1

// Máximo de candidatos mantidos em uma lista de seleção
const maxResults = 5

// Stage é a posição atual dentro de um fluxo de conversa
type Stage string

const (
	StageInitial           Stage = "initial"
	StageSearchFailed      Stage = "search_failed"
	StageAwaitingSelection Stage = "awaiting_selection"
	StageConfirmOrder      Stage = "confirm_order"
	StageAddingStock       Stage = "adding_stock"
)

// MidFlow indica se o estágio prende a conversa ao seu próprio handler
func (s Stage) MidFlow() bool {
	return s == StageAwaitingSelection || s == StageConfirmOrder || s == StageAddingStock
}

// WizardStep é o passo atual do assistente de cadastro de estoque
type WizardStep string

const (
	StepProductName WizardStep = "product_name"
	StepQuantity    WizardStep = "quantity"
	StepExpiryDate  WizardStep = "expiry_date"
	StepPrice       WizardStep = "price"
	StepConfirm     WizardStep = "confirm"
)

// FlowContext é o objeto de transferência de estado devolvido ao cliente a
// cada turno. O servidor não guarda sessão: toda a continuidade vive aqui.
// Os campos preenchidos dependem do estágio (união etiquetada por Stage).
type FlowContext struct {
	Version int   `json:"version"`
	Stage   Stage `json:"stage"`

	// awaiting_selection
	Results []StockItem `json:"results,omitempty"`

	// confirm_order
	SelectedItem      *StockItem `json:"selected_item,omitempty"`
	RequestedQuantity int        `json:"requested_quantity,omitempty"`

	// adding_stock
	Step        WizardStep `json:"step,omitempty"`
	ProductName string     `json:"product_name,omitempty"`
	Quantity    int        `json:"quantity,omitempty"`
	ExpiryDate  *Date      `json:"expiry_date,omitempty"`
	Price       *float64   `json:"price,omitempty"`
}

// InitialContext retorna o contexto de início de conversa
func InitialContext() FlowContext {
	return FlowContext{Version: ContextVersion, Stage: StageInitial}
}

func searchFailedContext() FlowContext {
	return FlowContext{Version: ContextVersion, Stage: StageSearchFailed}
}

func selectionContext(results []StockItem) FlowContext {
	return FlowContext{Version: ContextVersion, Stage: StageAwaitingSelection, Results: results}
}

func confirmContext(item StockItem, requested int) FlowContext {
	return FlowContext{Version: ContextVersion, Stage: StageConfirmOrder, SelectedItem: &item, RequestedQuantity: requested}
}

// StockDraft reúne os campos coletados pelo assistente de cadastro
type StockDraft struct {
	ProductName string
	Quantity    int
	ExpiryDate  *Date
	Price       *float64
}

func wizardContext(step WizardStep, d StockDraft) FlowContext {
	return FlowContext{
		Version:     ContextVersion,
		Stage:       StageAddingStock,
		Step:        step,
		ProductName: d.ProductName,
		Quantity:    d.Quantity,
		ExpiryDate:  d.ExpiryDate,
		Price:       d.Price,
	}
}

// Draft extrai o rascunho do assistente de um contexto adding_stock
func (c FlowContext) Draft() StockDraft {
	return StockDraft{
		ProductName: c.ProductName,
		Quantity:    c.Quantity,
		ExpiryDate:  c.ExpiryDate,
		Price:       c.Price,
	}
}

// DecodeContext interpreta o contexto enviado pelo cliente. Ausente ou null
// equivale ao contexto inicial; qualquer contexto malformado ou forjado
// retorna ErrInvalidContext.
func DecodeContext(raw []byte) (FlowContext, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("{}")) {
		return InitialContext(), nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()

	var c FlowContext
	if err := dec.Decode(&c); err != nil {
		return FlowContext{}, fmt.Errorf("%w: %v", ErrInvalidContext, err)
	}
	if c.Version == 0 {
		c.Version = ContextVersion
	}
	if c.Stage == "" {
		c.Stage = StageInitial
	}
	if err := c.Validate(); err != nil {
		return FlowContext{}, err
	}
	return c, nil
}

// Validate verifica se os campos preenchidos são coerentes com o estágio
func (c FlowContext) Validate() error {
	if c.Version != ContextVersion {
		return fmt.Errorf("%w: versão %d não suportada", ErrInvalidContext, c.Version)
	}

	switch c.Stage {
	case StageInitial, StageSearchFailed:
		if len(c.Results) > 0 || c.SelectedItem != nil || c.Step != "" {
			return fmt.Errorf("%w: estágio %s não aceita dados de fluxo", ErrInvalidContext, c.Stage)
		}

	case StageAwaitingSelection:
		if len(c.Results) == 0 || len(c.Results) > maxResults {
			return fmt.Errorf("%w: seleção exige entre 1 e %d resultados", ErrInvalidContext, maxResults)
		}
		for _, r := range c.Results {
			if err := validateSnapshot(r); err != nil {
				return err
			}
		}

	case StageConfirmOrder:
		if c.SelectedItem == nil {
			return fmt.Errorf("%w: confirmação exige selected_item", ErrInvalidContext)
		}
		if err := validateSnapshot(*c.SelectedItem); err != nil {
			return err
		}
		if c.RequestedQuantity < 0 {
			return fmt.Errorf("%w: quantidade solicitada negativa", ErrInvalidContext)
		}

	case StageAddingStock:
		return c.validateWizard()

	default:
		return fmt.Errorf("%w: estágio desconhecido %q", ErrInvalidContext, c.Stage)
	}
	return nil
}

func (c FlowContext) validateWizard() error {
	order := map[WizardStep]int{
		StepProductName: 0,
		StepQuantity:    1,
		StepExpiryDate:  2,
		StepPrice:       3,
		StepConfirm:     4,
	}
	pos, ok := order[c.Step]
	if !ok {
		return fmt.Errorf("%w: passo desconhecido %q", ErrInvalidContext, c.Step)
	}
	if pos > 0 && len(c.ProductName) < 2 {
		return fmt.Errorf("%w: rascunho sem nome de produto", ErrInvalidContext)
	}
	if pos > 1 && (c.Quantity <= 0 || c.Quantity > maxQuantity) {
		return fmt.Errorf("%w: rascunho sem quantidade válida", ErrInvalidContext)
	}
	if pos > 2 && (c.ExpiryDate == nil || c.ExpiryDate.IsZero()) {
		return fmt.Errorf("%w: rascunho sem validade", ErrInvalidContext)
	}
	if c.Price != nil && *c.Price < 0 {
		return fmt.Errorf("%w: preço negativo", ErrInvalidContext)
	}
	return nil
}

func validateSnapshot(item StockItem) error {
	if item.ID == "" || item.ProductName == "" {
		return fmt.Errorf("%w: item sem identificação", ErrInvalidContext)
	}
	if item.Quantity < 0 {
		return fmt.Errorf("%w: item com quantidade negativa", ErrInvalidContext)
	}
	if item.Price != nil && *item.Price < 0 {
		return fmt.Errorf("%w: item com preço negativo", ErrInvalidContext)
	}
	return nil
}
