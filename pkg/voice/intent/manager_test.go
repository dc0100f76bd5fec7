package intent

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessTurnRejectsUnknownRole(t *testing.T) {
	m := newTestManager(newMemRepo())

	_, err := m.ProcessTurn(context.Background(), Turn{Role: "admin", UserID: "u1", Text: "hello"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestProcessTurnZeroContextIsInitial(t *testing.T) {
	m := newTestManager(newMemRepo())

	reply, err := m.ProcessTurn(context.Background(), Turn{Role: RoleMiddleman, UserID: "m1", Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, ActionGreeting, reply.Action)
	assert.Equal(t, InitialContext(), reply.Context)
}

func TestProcessTurnRejectsCrossRoleStages(t *testing.T) {
	m := newTestManager(newMemRepo())
	item := stock("t1", "Tomatoes", 10, 1)

	_, err := m.ProcessTurn(context.Background(), Turn{
		Role: RoleManager, UserID: "s1", Text: "yes", Context: confirmContext(item, 0),
	})
	assert.ErrorIs(t, err, ErrInvalidContext)

	_, err = m.ProcessTurn(context.Background(), Turn{
		Role: RoleMiddleman, UserID: "m1", Text: "okra", Context: wizardContext(StepProductName, StockDraft{}),
	})
	assert.ErrorIs(t, err, ErrInvalidContext)
}

func TestProcessTurnRejectsInvalidContext(t *testing.T) {
	m := newTestManager(newMemRepo())

	_, err := m.ProcessTurn(context.Background(), Turn{
		Role: RoleMiddleman, UserID: "m1", Text: "1",
		Context: FlowContext{Version: ContextVersion, Stage: StageAwaitingSelection},
	})
	assert.ErrorIs(t, err, ErrInvalidContext)
}

type echoHandler struct{}

func (echoHandler) Role() Role { return RoleMiddleman }

func (echoHandler) Handle(ctx context.Context, s *Session) (*Reply, error) {
	return &Reply{Response: s.Turn.Text, Action: ActionDefault, Context: InitialContext()}, nil
}

func TestRegisterHandlerReplaces(t *testing.T) {
	m := newTestManager(newMemRepo())
	m.RegisterHandler(echoHandler{})

	reply := buyerSays(t, m, "tomatoes", InitialContext())
	assert.Equal(t, "tomatoes", reply.Response)
}

func TestSessionLoadsCandidatesOnce(t *testing.T) {
	repo := &countingRepo{memRepo: newMemRepo(stock("t1", "Tomatoes", 10, 1))}
	s := &Session{
		Turn:  Turn{Role: RoleMiddleman, UserID: "m1"},
		Today: today(),
		repo:  repo,
	}

	for i := 0; i < 3; i++ {
		items, err := s.Candidates(context.Background())
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 1, items[0].DaysLeft)
	}
	assert.Equal(t, 1, repo.lists)
}

type countingRepo struct {
	*memRepo
	lists int
}

func (r *countingRepo) ListAvailableItems(ctx context.Context) ([]StockItem, error) {
	r.lists++
	return r.memRepo.ListAvailableItems(ctx)
}

func TestReplyJSONShape(t *testing.T) {
	m := newTestManager(newMemRepo(stock("t1", "Tomatoes", 10, 1)))

	reply := buyerSays(t, m, "tomatoes", InitialContext())
	raw, err := json.Marshal(reply)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "confirm_order", body["action"])
	assert.NotEmpty(t, body["response"])

	fc, ok := body["context"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "confirm_order", fc["stage"])
	assert.EqualValues(t, ContextVersion, fc["version"])

	selected, ok := fc["selected_item"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "t1", selected["id"])
	assert.Equal(t, "2026-03-11", selected["expiry_date"])
	assert.EqualValues(t, 1, selected["days_left"])
}
