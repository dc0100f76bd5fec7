package intent

import (
	"context"
	"fmt"
	"time"

	"github.com/hugohenrick/greenchain/pkg/logger"
)

// FlowHandler conduz a conversa de um papel
type FlowHandler interface {
	// Role retorna o papel atendido por este handler
	Role() Role

	// Handle processa um turno e produz a resposta com o próximo contexto
	Handle(ctx context.Context, s *Session) (*Reply, error)
}

// Session reúne o que um handler precisa para processar um turno.
// Vive apenas durante o turno.
type Session struct {
	Turn  Turn
	Today Date

	u      utterance
	repo   Repository
	items  []StockItem
	loaded bool
}

// Candidates carrega, uma única vez por turno, o conjunto de itens visível
// para o papel: os próprios itens para o vendedor, os disponíveis para o comprador
func (s *Session) Candidates(ctx context.Context) ([]StockItem, error) {
	if s.loaded {
		return s.items, nil
	}

	var (
		raw []StockItem
		err error
	)
	if s.Turn.Role == RoleManager {
		raw, err = s.repo.ListItemsForOwner(ctx, s.Turn.UserID)
	} else {
		raw, err = s.repo.ListAvailableItems(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar itens de estoque: %w", err)
	}

	items := make([]StockItem, 0, len(raw))
	for _, item := range raw {
		item.Status = item.EffectiveStatus(s.Today)
		item.DaysLeft = s.Today.DaysUntil(item.ExpiryDate)
		if s.Turn.Role == RoleMiddleman && item.Status != StatusAvailable {
			continue
		}
		items = append(items, item)
	}

	s.items = items
	s.loaded = true
	return items, nil
}

// Manager é o ponto de entrada do agente de voz. Não guarda estado entre
// turnos: toda a continuidade vem no FlowContext enviado pelo cliente.
type Manager struct {
	handlers  map[Role]FlowHandler
	repo      Repository
	committer *Committer
	logger    logger.Logger
	now       func() time.Time
	policy    SnapshotPolicy
}

// Option configura o Manager
type Option func(*Manager)

// WithClock substitui o relógio usado para calcular "hoje"
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithSnapshotPolicy define a política de revalidação do snapshot selecionado
func WithSnapshotPolicy(p SnapshotPolicy) Option {
	return func(m *Manager) { m.policy = p }
}

// NewManager cria o agente com os handlers de comprador e vendedor registrados
func NewManager(log logger.Logger, repo Repository, opts ...Option) *Manager {
	m := &Manager{
		handlers: make(map[Role]FlowHandler),
		repo:     repo,
		logger:   log,
		now:      time.Now,
		policy:   TrustSnapshot,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.committer = NewCommitter(log, repo, m.policy, m.now)
	m.RegisterHandler(NewBuyerHandler(log, m.committer))
	m.RegisterHandler(NewSellerHandler(log, m.committer))
	return m
}

// RegisterHandler registra (ou substitui) o handler de um papel
func (m *Manager) RegisterHandler(h FlowHandler) {
	m.handlers[h.Role()] = h
	m.logger.Debug("Flow handler registered", "role", h.Role(), "handler", fmt.Sprintf("%T", h))
}

// Committer expõe as ações de efetivação para outros pontos de entrada
func (m *Manager) Committer() *Committer {
	return m.committer
}

// ProcessTurn processa um turno de conversa. Entradas não reconhecidas nunca
// falham: viram uma nova pergunta ou a resposta padrão. Só erros do
// repositório e contexto inválido são retornados como erro.
func (m *Manager) ProcessTurn(ctx context.Context, turn Turn) (*Reply, error) {
	if !turn.Role.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, turn.Role)
	}

	if turn.Context.Stage == "" && turn.Context.Version == 0 {
		turn.Context = InitialContext()
	}
	if err := turn.Context.Validate(); err != nil {
		return nil, err
	}
	if err := checkStageRole(turn.Context.Stage, turn.Role); err != nil {
		return nil, err
	}

	handler, ok := m.handlers[turn.Role]
	if !ok {
		return nil, fmt.Errorf("%w: nenhum handler para %q", ErrInvalidRole, turn.Role)
	}

	s := &Session{
		Turn:  turn,
		Today: DateOf(m.now()),
		u:     newUtterance(turn.Text),
		repo:  m.repo,
	}

	m.logger.Info("Processing voice turn",
		"user_id", turn.UserID,
		"role", turn.Role,
		"stage", turn.Context.Stage,
		"text", s.u.lower)

	reply, err := handler.Handle(ctx, s)
	if err != nil {
		m.logger.Error("Voice turn failed", "error", err, "user_id", turn.UserID, "role", turn.Role)
		return nil, err
	}

	m.logger.Info("Voice turn processed",
		"user_id", turn.UserID,
		"action", reply.Action,
		"next_stage", reply.Context.Stage)
	return reply, nil
}

// checkStageRole impede que um papel retome um fluxo do outro papel
func checkStageRole(stage Stage, role Role) error {
	switch stage {
	case StageAwaitingSelection, StageConfirmOrder, StageSearchFailed:
		if role != RoleMiddleman {
			return fmt.Errorf("%w: estágio %s é exclusivo do comprador", ErrInvalidContext, stage)
		}
	case StageAddingStock:
		if role != RoleManager {
			return fmt.Errorf("%w: estágio %s é exclusivo do vendedor", ErrInvalidContext, stage)
		}
	}
	return nil
}
