package controller

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/greenchain/internal/adapter/api/dto"
	"github.com/hugohenrick/greenchain/internal/domain/order"
	"github.com/hugohenrick/greenchain/internal/domain/stock"
	"github.com/hugohenrick/greenchain/internal/domain/user"
	"github.com/hugohenrick/greenchain/pkg/logger"
	"github.com/hugohenrick/greenchain/pkg/voice/intent"
	"github.com/hugohenrick/greenchain/pkg/voice/intent/adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderRouter(st *memStock, orders *memOrders, userID string, role user.Role) *gin.Engine {
	log := logger.NewNop()
	marketplace := adapter.NewMarketplaceAdapter(st, orders, inlineTx{}, log)
	committer := intent.NewCommitter(log, marketplace, intent.RevalidateSnapshot, time.Now)
	service := order.NewService(orders, st, inlineTx{}, log)
	c := NewOrderController(orders, st, committer, service, log)

	r := newEngine()
	g := r.Group("", asUser(userID, role))
	g.POST("/orders", c.Create)
	g.GET("/orders", c.List)
	g.GET("/orders/:id", c.GetByID)
	g.PATCH("/orders/:id/cancel", c.Cancel)
	return r
}

func TestCreateOrderExactQuantity(t *testing.T) {
	st := newMemStock(item("a", "s1", "Tomatoes", 50, 2))
	orders := newMemOrders()
	r := newOrderRouter(st, orders, "m1", user.RoleMiddleman)

	w := doJSON(t, r, http.MethodPost, "/orders", dto.OrderRequest{StockItemID: tid("a"), Quantity: 23})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decode[dto.OrderResponse](t, w)
	assert.Equal(t, 23, created.Quantity)
	assert.Equal(t, "confirmed", created.Status)
	assert.Equal(t, "m1", created.BuyerID)
	assert.Equal(t, 27, st.items[tid("a")].Quantity)

	w = doJSON(t, r, http.MethodPost, "/orders", dto.OrderRequest{StockItemID: tid("a"), Quantity: 27})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, stock.StatusOrdered, st.items[tid("a")].Status)

	list := decode[dto.ListResponse[dto.OrderResponse]](t, doJSON(t, r, http.MethodGet, "/orders", nil))
	assert.Equal(t, 2, list.Total)
}

func TestCreateOrderRejections(t *testing.T) {
	expired := item("old", "s1", "Milk", 10, -1)
	st := newMemStock(item("a", "s1", "Tomatoes", 10, 2), expired)
	r := newOrderRouter(st, newMemOrders(), "m1", user.RoleMiddleman)

	assert.Equal(t, http.StatusConflict, doJSON(t, r, http.MethodPost, "/orders", dto.OrderRequest{StockItemID: tid("a"), Quantity: 11}).Code)
	assert.Equal(t, http.StatusConflict, doJSON(t, r, http.MethodPost, "/orders", dto.OrderRequest{StockItemID: tid("old"), Quantity: 1}).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodPost, "/orders", dto.OrderRequest{StockItemID: tid("zzz"), Quantity: 1}).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, http.MethodPost, "/orders", dto.OrderRequest{StockItemID: tid("a"), Quantity: 0}).Code)
	assert.Equal(t, 10, st.items[tid("a")].Quantity)
}

func TestCancelOrderRestoresStock(t *testing.T) {
	st := newMemStock(item("a", "s1", "Tomatoes", 20, 2))
	orders := newMemOrders()
	buyer := newOrderRouter(st, orders, "m1", user.RoleMiddleman)

	created := decode[dto.OrderResponse](t, doJSON(t, buyer, http.MethodPost, "/orders", dto.OrderRequest{StockItemID: tid("a"), Quantity: 20}))
	require.Equal(t, stock.StatusOrdered, st.items[tid("a")].Status)

	intruder := newOrderRouter(st, orders, "m2", user.RoleMiddleman)
	assert.Equal(t, http.StatusForbidden, doJSON(t, intruder, http.MethodPatch, "/orders/"+created.ID+"/cancel", nil).Code)
	assert.Equal(t, http.StatusForbidden, doJSON(t, intruder, http.MethodGet, "/orders/"+created.ID, nil).Code)

	seller := newOrderRouter(st, orders, "s1", user.RoleManager)
	assert.Equal(t, http.StatusOK, doJSON(t, seller, http.MethodGet, "/orders/"+created.ID, nil).Code)

	w := doJSON(t, buyer, http.MethodPatch, "/orders/"+created.ID+"/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "cancelled", decode[dto.OrderResponse](t, w).Status)
	assert.Equal(t, 20, st.items[tid("a")].Quantity)
	assert.Equal(t, stock.StatusAvailable, st.items[tid("a")].Status)

	assert.Equal(t, http.StatusConflict, doJSON(t, buyer, http.MethodPatch, "/orders/"+created.ID+"/cancel", nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, buyer, http.MethodPatch, "/orders/"+tid("zzz")+"/cancel", nil).Code)
}

func TestOrdersRejectMalformedIDs(t *testing.T) {
	st := newMemStock(item("a", "s1", "Tomatoes", 10, 2))
	r := newOrderRouter(st, newMemOrders(), "m1", user.RoleMiddleman)

	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, http.MethodPost, "/orders", dto.OrderRequest{StockItemID: "abc", Quantity: 1}).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, http.MethodGet, "/orders/abc", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, http.MethodPatch, "/orders/abc/cancel", nil).Code)
	assert.Equal(t, 10, st.items[tid("a")].Quantity)
}
