package controller

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hugohenrick/greenchain/internal/adapter/api/dto"
	"github.com/hugohenrick/greenchain/internal/adapter/repository"
	"github.com/hugohenrick/greenchain/internal/domain/stock"
	"github.com/hugohenrick/greenchain/pkg/auth"
	"github.com/hugohenrick/greenchain/pkg/logger"
	"github.com/hugohenrick/greenchain/pkg/metrics"
)

// Transactor executa uma função dentro de uma transação
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Limite de linhas aceitas em uma importação CSV
const maxImportRows = 1000

// StockController gerencia as requisições relacionadas a itens de estoque
type StockController struct {
	stockRepository stock.Repository
	tx              Transactor
	logger          logger.Logger
	now             func() time.Time
}

// NewStockController cria uma nova instância de StockController
func NewStockController(stockRepository stock.Repository, tx Transactor, log logger.Logger) *StockController {
	return &StockController{
		stockRepository: stockRepository,
		tx:              tx,
		logger:          log,
		now:             time.Now,
	}
}

// Create cadastra um novo item de estoque
// @Summary Cadastra um item de estoque
// @Tags stock
// @Accept json
// @Produce json
// @Security Bearer
// @Param item body dto.StockItemRequest true "Dados do item"
// @Success 201 {object} dto.StockItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stock [post]
func (c *StockController) Create(ctx *gin.Context) {
	var request dto.StockItemRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	expiry, err := request.ParseExpiry()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Data de validade inválida", "Use o formato AAAA-MM-DD"))
		return
	}

	ownerID, _, _, _ := auth.GetCurrentUser(ctx)
	today := c.now()
	item, err := stock.NewItem(ownerID, request.ProductName, request.Quantity, expiry, request.Price, today)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Item inválido", err.Error()))
		return
	}
	if item.Quantity == 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Item inválido", "quantidade deve ser maior que zero"))
		return
	}
	item.ID = uuid.New().String()

	if err := c.stockRepository.Create(ctx, item); err != nil {
		c.logger.Error("Failed to create stock item", "error", err, "owner_id", ownerID)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao cadastrar item", err.Error()))
		return
	}

	metrics.IncCounterVec(metrics.StockItemsAddedTotal, map[string]string{"source": "api"})
	ctx.JSON(http.StatusCreated, dto.ToStockItemResponse(item, today))
}

// List lista os itens disponíveis para compra
// @Summary Lista os itens disponíveis
// @Description Itens disponíveis e dentro da validade, validade mais próxima primeiro
// @Tags stock
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.ListResponse[dto.StockItemResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Router /stock [get]
func (c *StockController) List(ctx *gin.Context) {
	items, err := c.stockRepository.ListAvailable(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar itens", err.Error()))
		return
	}

	today := c.now()
	visible := make([]*stock.Item, 0, len(items))
	for _, item := range items {
		if item.EffectiveStatus(today) == stock.StatusAvailable {
			visible = append(visible, item)
		}
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(dto.ToStockItemResponses(visible, today)))
}

// Mine lista todos os itens do gestor autenticado
// @Summary Lista os itens do gestor
// @Tags stock
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.ListResponse[dto.StockItemResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Router /stock/mine [get]
func (c *StockController) Mine(ctx *gin.Context) {
	ownerID, _, _, _ := auth.GetCurrentUser(ctx)

	items, err := c.stockRepository.ListByOwner(ctx, ownerID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar itens", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(dto.ToStockItemResponses(items, c.now())))
}

// GetByID busca um item pelo ID
// @Summary Busca um item de estoque
// @Tags stock
// @Produce json
// @Security Bearer
// @Param id path string true "ID do item"
// @Success 200 {object} dto.StockItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stock/{id} [get]
func (c *StockController) GetByID(ctx *gin.Context) {
	item, ok := c.findItem(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, dto.ToStockItemResponse(item, c.now()))
}

// Update atualiza um item do gestor
// @Summary Atualiza um item de estoque
// @Tags stock
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID do item"
// @Param item body dto.StockItemRequest true "Dados do item"
// @Success 200 {object} dto.StockItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stock/{id} [put]
func (c *StockController) Update(ctx *gin.Context) {
	var request dto.StockItemRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	expiry, err := request.ParseExpiry()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Data de validade inválida", "Use o formato AAAA-MM-DD"))
		return
	}

	item, ok := c.findOwnedItem(ctx)
	if !ok {
		return
	}

	today := c.now()
	updated, err := stock.NewItem(item.OwnerID, request.ProductName, request.Quantity, expiry, request.Price, today)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Item inválido", err.Error()))
		return
	}
	updated.ID = item.ID
	updated.CreatedAt = item.CreatedAt

	// Esgotado continua esgotado até receber quantidade; reservado é preservado
	switch {
	case item.Status == stock.StatusReserved:
		updated.Status = stock.StatusReserved
	case updated.Quantity == 0 && updated.Status == stock.StatusAvailable:
		updated.Status = stock.StatusOrdered
	}

	if err := c.stockRepository.Update(ctx, updated); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao atualizar item", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStockItemResponse(updated, today))
}

// Delete remove um item do gestor
// @Summary Remove um item de estoque
// @Tags stock
// @Produce json
// @Security Bearer
// @Param id path string true "ID do item"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stock/{id} [delete]
func (c *StockController) Delete(ctx *gin.Context) {
	item, ok := c.findOwnedItem(ctx)
	if !ok {
		return
	}

	if err := c.stockRepository.Delete(ctx, item.ID); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao remover item", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Item removido", nil))
}

// Import cadastra itens em lote a partir de um CSV
// @Summary Importa itens de estoque
// @Description CSV com colunas product_name,quantity,expiry_date[,price]. Cabeçalho opcional.
// @Tags stock
// @Accept mpfd
// @Accept text/csv
// @Produce json
// @Security Bearer
// @Param file formData file false "Arquivo CSV"
// @Success 201 {object} dto.ImportResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stock/import [post]
func (c *StockController) Import(ctx *gin.Context) {
	reader, closeFn, err := csvSource(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Arquivo CSV não fornecido", err.Error()))
		return
	}
	defer closeFn()

	ownerID, _, _, _ := auth.GetCurrentUser(ctx)
	today := c.now()

	items, rejected, err := parseStockCSV(reader, ownerID, today)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "CSV inválido", err.Error()))
		return
	}

	err = c.tx.Transaction(ctx.Request.Context(), func(txCtx context.Context) error {
		for _, item := range items {
			if err := c.stockRepository.Create(txCtx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.logger.Error("Failed to import stock items", "error", err, "owner_id", ownerID)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao importar itens", err.Error()))
		return
	}

	metrics.AddCounterVec(metrics.StockItemsAddedTotal, map[string]string{"source": "csv"}, float64(len(items)))
	c.logger.Info("Stock items imported", "owner_id", ownerID, "imported", len(items), "rejected", len(rejected))

	if rejected == nil {
		rejected = []dto.ImportRowError{}
	}
	ctx.JSON(http.StatusCreated, dto.ImportResponse{
		Imported: dto.ToStockItemResponses(items, today),
		Rejected: rejected,
	})
}

func csvSource(ctx *gin.Context) (io.Reader, func(), error) {
	if strings.HasPrefix(ctx.ContentType(), "multipart/") {
		header, err := ctx.FormFile("file")
		if err != nil {
			return nil, nil, err
		}
		f, err := header.Open()
		if err != nil {
			return nil, nil, err
		}
		return f, func() { f.Close() }, nil
	}
	if ctx.Request.Body == nil {
		return nil, nil, errors.New("corpo vazio")
	}
	return ctx.Request.Body, func() {}, nil
}

// parseStockCSV converte as linhas válidas em itens e acumula as inválidas.
// Só erros de leitura do CSV como um todo são retornados como erro.
func parseStockCSV(r io.Reader, ownerID string, today time.Time) ([]*stock.Item, []dto.ImportRowError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var items []*stock.Item
	var rejected []dto.ImportRowError
	line := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		line++

		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "product_name") {
			continue
		}
		if line > maxImportRows {
			return nil, nil, fmt.Errorf("máximo de %d linhas por importação", maxImportRows)
		}

		item, err := parseStockRecord(record, ownerID, today)
		if err != nil {
			rejected = append(rejected, dto.ImportRowError{Line: line, Error: err.Error()})
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 && len(rejected) == 0 {
		return nil, nil, errors.New("nenhuma linha encontrada")
	}
	return items, rejected, nil
}

func parseStockRecord(record []string, ownerID string, today time.Time) (*stock.Item, error) {
	if len(record) < 3 || len(record) > 4 {
		return nil, fmt.Errorf("esperadas 3 ou 4 colunas, encontradas %d", len(record))
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(record[1]))
	if err != nil {
		return nil, fmt.Errorf("quantidade inválida: %q", record[1])
	}

	expiry, err := time.Parse("2006-01-02", strings.TrimSpace(record[2]))
	if err != nil {
		return nil, fmt.Errorf("validade inválida: %q", record[2])
	}

	var price *float64
	if len(record) == 4 && strings.TrimSpace(record[3]) != "" {
		p, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
		if err != nil {
			return nil, fmt.Errorf("preço inválido: %q", record[3])
		}
		price = &p
	}

	item, err := stock.NewItem(ownerID, record[0], quantity, expiry, price, today)
	if err != nil {
		return nil, err
	}
	if item.Quantity == 0 {
		return nil, errors.New("quantidade deve ser maior que zero")
	}
	item.ID = uuid.New().String()
	return item, nil
}

func (c *StockController) findItem(ctx *gin.Context) (*stock.Item, bool) {
	id, ok := idParam(ctx)
	if !ok {
		return nil, false
	}

	item, err := c.stockRepository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrStockItemNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Item não encontrado", ""))
			return nil, false
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao buscar item", err.Error()))
		return nil, false
	}
	return item, true
}

func (c *StockController) findOwnedItem(ctx *gin.Context) (*stock.Item, bool) {
	item, ok := c.findItem(ctx)
	if !ok {
		return nil, false
	}

	userID, _, _, _ := auth.GetCurrentUser(ctx)
	if item.OwnerID != userID {
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(http.StatusForbidden, "Acesso negado", "O item pertence a outro gestor"))
		return nil, false
	}
	return item, true
}
