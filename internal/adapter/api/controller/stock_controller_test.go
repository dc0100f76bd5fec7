package controller

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/greenchain/internal/adapter/api/dto"
	"github.com/hugohenrick/greenchain/internal/domain/stock"
	"github.com/hugohenrick/greenchain/internal/domain/user"
	"github.com/hugohenrick/greenchain/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStockRouter(repo *memStock, userID string, role user.Role) *gin.Engine {
	c := NewStockController(repo, inlineTx{}, logger.NewNop())
	r := newEngine()
	g := r.Group("", asUser(userID, role))
	g.POST("/stock", c.Create)
	g.GET("/stock", c.List)
	g.GET("/stock/mine", c.Mine)
	g.GET("/stock/:id", c.GetByID)
	g.PUT("/stock/:id", c.Update)
	g.DELETE("/stock/:id", c.Delete)
	g.POST("/stock/import", c.Import)
	return r
}

func TestCreateStockItem(t *testing.T) {
	repo := newMemStock()
	r := newStockRouter(repo, "s1", user.RoleManager)

	price := 20.0
	w := doJSON(t, r, http.MethodPost, "/stock", dto.StockItemRequest{
		ProductName: "Tomatoes", Quantity: 50, ExpiryDate: daysFromNow(4).Format("2006-01-02"), Price: &price,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decode[dto.StockItemResponse](t, w)
	assert.Equal(t, "s1", created.OwnerID)
	assert.Equal(t, 4, created.DaysLeft)
	assert.Equal(t, "available", created.Status)
	require.Contains(t, repo.items, created.ID)

	w = doJSON(t, r, http.MethodPost, "/stock", dto.StockItemRequest{ProductName: "Okra", Quantity: 5, ExpiryDate: "amanhã"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/stock", dto.StockItemRequest{ProductName: "Okra", Quantity: 0, ExpiryDate: daysFromNow(1).Format("2006-01-02")})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListHidesLazilyExpiredItems(t *testing.T) {
	repo := newMemStock(
		item("fresh", "s1", "Tomatoes", 10, 2),
		item("old", "s1", "Milk", 10, -1),
		item("today", "s2", "Bread", 10, 0),
	)
	r := newStockRouter(repo, "m1", user.RoleMiddleman)

	w := doJSON(t, r, http.MethodGet, "/stock", nil)
	require.Equal(t, http.StatusOK, w.Code)

	list := decode[dto.ListResponse[dto.StockItemResponse]](t, w)
	require.Equal(t, 2, list.Total)
	assert.Equal(t, tid("today"), list.Data[0].ID)
	assert.Equal(t, tid("fresh"), list.Data[1].ID)
}

func TestMineShowsEffectiveStatus(t *testing.T) {
	repo := newMemStock(item("old", "s1", "Milk", 10, -1), item("other", "s2", "Eggs", 1, 3))
	r := newStockRouter(repo, "s1", user.RoleManager)

	list := decode[dto.ListResponse[dto.StockItemResponse]](t, doJSON(t, r, http.MethodGet, "/stock/mine", nil))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "expired", list.Data[0].Status)
	assert.Equal(t, -1, list.Data[0].DaysLeft)
}

func TestUpdateAndDeleteRequireOwner(t *testing.T) {
	repo := newMemStock(item("a", "s1", "Tomatoes", 10, 2))
	body := dto.StockItemRequest{ProductName: "Roma Tomatoes", Quantity: 0, ExpiryDate: daysFromNow(3).Format("2006-01-02")}

	other := newStockRouter(repo, "s2", user.RoleManager)
	assert.Equal(t, http.StatusForbidden, doJSON(t, other, http.MethodPut, "/stock/"+tid("a"), body).Code)
	assert.Equal(t, http.StatusForbidden, doJSON(t, other, http.MethodDelete, "/stock/"+tid("a"), nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, other, http.MethodGet, "/stock/"+tid("zzz"), nil).Code)

	owner := newStockRouter(repo, "s1", user.RoleManager)
	w := doJSON(t, owner, http.MethodPut, "/stock/"+tid("a"), body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Roma Tomatoes", repo.items[tid("a")].ProductName)
	assert.Equal(t, stock.StatusOrdered, repo.items[tid("a")].Status)

	assert.Equal(t, http.StatusOK, doJSON(t, owner, http.MethodDelete, "/stock/"+tid("a"), nil).Code)
	assert.NotContains(t, repo.items, tid("a"))
}

func TestImportCSV(t *testing.T) {
	repo := newMemStock()
	r := newStockRouter(repo, "s1", user.RoleManager)

	expiry := daysFromNow(5).Format("2006-01-02")
	csvBody := strings.Join([]string{
		"product_name,quantity,expiry_date,price",
		"Tomatoes,50," + expiry + ",18.5",
		"Okra,20," + expiry,
		"Carrots,muitos," + expiry,
		",10," + expiry,
		"Beans,0," + expiry,
	}, "\n")

	req := httptest.NewRequest(http.MethodPost, "/stock/import", strings.NewReader(csvBody))
	req.Header.Set("Content-Type", "text/csv")
	w := httptestRecorder(r, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	res := decode[dto.ImportResponse](t, w)
	assert.Len(t, res.Imported, 2)
	require.Len(t, res.Rejected, 3)
	assert.Equal(t, 4, res.Rejected[0].Line)
	assert.Len(t, repo.items, 2)
}

func TestImportCSVMultipart(t *testing.T) {
	repo := newMemStock()
	r := newStockRouter(repo, "s1", user.RoleManager)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "estoque.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte("Spinach,12," + daysFromNow(1).Format("2006-01-02") + "\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/stock/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptestRecorder(r, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Len(t, repo.items, 1)
}

func TestImportEmptyCSV(t *testing.T) {
	r := newStockRouter(newMemStock(), "s1", user.RoleManager)

	req := httptest.NewRequest(http.MethodPost, "/stock/import", strings.NewReader(""))
	req.Header.Set("Content-Type", "text/csv")
	assert.Equal(t, http.StatusBadRequest, httptestRecorder(r, req).Code)
}

func TestStockRejectsMalformedID(t *testing.T) {
	repo := newMemStock(item("a", "s1", "Tomatoes", 10, 2))
	r := newStockRouter(repo, "s1", user.RoleManager)
	body := dto.StockItemRequest{ProductName: "Okra", Quantity: 1, ExpiryDate: daysFromNow(3).Format("2006-01-02")}

	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, http.MethodGet, "/stock/abc", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, http.MethodPut, "/stock/abc", body).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, http.MethodDelete, "/stock/abc", nil).Code)
	assert.Len(t, repo.items, 1)
}
