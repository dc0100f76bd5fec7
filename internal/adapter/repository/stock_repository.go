package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/greenchain/internal/domain/stock"
	"github.com/hugohenrick/greenchain/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// ErrStockItemNotFound indica que o item de estoque não existe
var ErrStockItemNotFound = errors.New("item de estoque não encontrado")

// StockRepository implementa a interface stock.Repository usando PostgreSQL
type StockRepository struct {
	db *database.PostgresDB
}

// NewStockRepository cria uma nova instância de StockRepository
func NewStockRepository(db *database.PostgresDB) stock.Repository {
	return &StockRepository{db: db}
}

const stockColumns = `id, owner_id, product_name, quantity, expiry_date, price, status, created_at, updated_at`

// Create implementa stock.Repository.Create
func (r *StockRepository) Create(ctx context.Context, item *stock.Item) error {
	query := `
		INSERT INTO stock_items (
			id, owner_id, product_name, quantity, expiry_date, price, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
	`

	_, err := r.db.Querier(ctx).Exec(ctx, query,
		item.ID,
		item.OwnerID,
		item.ProductName,
		item.Quantity,
		item.ExpiryDate,
		item.Price,
		string(item.Status),
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao inserir item de estoque: %w", err)
	}
	return nil
}

// FindByID implementa stock.Repository.FindByID
func (r *StockRepository) FindByID(ctx context.Context, id string) (*stock.Item, error) {
	if !validID(id) {
		return nil, ErrStockItemNotFound
	}
	query := `SELECT ` + stockColumns + ` FROM stock_items WHERE id = $1`
	return scanStockItem(r.db.Querier(ctx).QueryRow(ctx, query, id))
}

// FindByIDForUpdate implementa stock.Repository.FindByIDForUpdate. Fora de
// uma transação o bloqueio termina junto com a consulta.
func (r *StockRepository) FindByIDForUpdate(ctx context.Context, id string) (*stock.Item, error) {
	if !validID(id) {
		return nil, ErrStockItemNotFound
	}
	query := `SELECT ` + stockColumns + ` FROM stock_items WHERE id = $1 FOR UPDATE`
	return scanStockItem(r.db.Querier(ctx).QueryRow(ctx, query, id))
}

// ListAvailable implementa stock.Repository.ListAvailable
func (r *StockRepository) ListAvailable(ctx context.Context) ([]*stock.Item, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_items
		WHERE status = $1
		ORDER BY expiry_date ASC, created_at ASC
	`
	return r.list(ctx, query, string(stock.StatusAvailable))
}

// ListByOwner implementa stock.Repository.ListByOwner
func (r *StockRepository) ListByOwner(ctx context.Context, ownerID string) ([]*stock.Item, error) {
	if !validID(ownerID) {
		return []*stock.Item{}, nil
	}
	query := `
		SELECT ` + stockColumns + `
		FROM stock_items
		WHERE owner_id = $1
		ORDER BY expiry_date ASC, created_at ASC
	`
	return r.list(ctx, query, ownerID)
}

// Update implementa stock.Repository.Update
func (r *StockRepository) Update(ctx context.Context, item *stock.Item) error {
	if !validID(item.ID) {
		return ErrStockItemNotFound
	}
	item.UpdatedAt = time.Now()
	query := `
		UPDATE stock_items SET
			product_name = $1, quantity = $2, expiry_date = $3, price = $4, status = $5, updated_at = $6
		WHERE id = $7
	`
	tag, err := r.db.Querier(ctx).Exec(ctx, query,
		item.ProductName,
		item.Quantity,
		item.ExpiryDate,
		item.Price,
		string(item.Status),
		item.UpdatedAt,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("falha ao atualizar item de estoque: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrStockItemNotFound
	}
	return nil
}

// UpdateQuantityAndStatus implementa stock.Repository.UpdateQuantityAndStatus
func (r *StockRepository) UpdateQuantityAndStatus(ctx context.Context, id string, quantity int, status stock.Status) error {
	if !validID(id) {
		return ErrStockItemNotFound
	}
	tag, err := r.db.Querier(ctx).Exec(ctx,
		`UPDATE stock_items SET quantity = $1, status = $2, updated_at = $3 WHERE id = $4`,
		quantity, string(status), time.Now(), id)
	if err != nil {
		return fmt.Errorf("falha ao atualizar quantidade do item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrStockItemNotFound
	}
	return nil
}

// Delete implementa stock.Repository.Delete
func (r *StockRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrStockItemNotFound
	}
	tag, err := r.db.Querier(ctx).Exec(ctx, `DELETE FROM stock_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("falha ao remover item de estoque: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrStockItemNotFound
	}
	return nil
}

func (r *StockRepository) list(ctx context.Context, query string, args ...any) ([]*stock.Item, error) {
	rows, err := r.db.Querier(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar itens de estoque: %w", err)
	}
	defer rows.Close()

	items := make([]*stock.Item, 0)
	for rows.Next() {
		item, err := scanStockItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("falha ao ler itens de estoque: %w", err)
	}
	return items, nil
}

func scanStockItem(row pgx.Row) (*stock.Item, error) {
	item := &stock.Item{}
	var status string
	var price pgtype.Float8

	err := row.Scan(
		&item.ID,
		&item.OwnerID,
		&item.ProductName,
		&item.Quantity,
		&item.ExpiryDate,
		&price,
		&status,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStockItemNotFound
		}
		return nil, fmt.Errorf("falha ao ler item de estoque: %w", err)
	}

	item.Status = stock.Status(status)
	if price.Valid {
		p := price.Float64
		item.Price = &p
	}
	return item, nil
}
