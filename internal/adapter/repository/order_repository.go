package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/greenchain/internal/domain/order"
	"github.com/hugohenrick/greenchain/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
)

// ErrOrderNotFound indica que o pedido não existe
var ErrOrderNotFound = errors.New("pedido não encontrado")

// OrderRepository implementa a interface order.Repository usando PostgreSQL
type OrderRepository struct {
	db *database.PostgresDB
}

// NewOrderRepository cria uma nova instância de OrderRepository
func NewOrderRepository(db *database.PostgresDB) order.Repository {
	return &OrderRepository{db: db}
}

const orderColumns = `id, stock_item_id, buyer_id, quantity, status, created_at, updated_at`

// Create implementa order.Repository.Create
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	query := `
		INSERT INTO orders (
			id, stock_item_id, buyer_id, quantity, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
	`
	_, err := r.db.Querier(ctx).Exec(ctx, query,
		o.ID,
		o.StockItemID,
		o.BuyerID,
		o.Quantity,
		string(o.Status),
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao inserir pedido: %w", err)
	}
	return nil
}

// FindByID implementa order.Repository.FindByID
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	if !validID(id) {
		return nil, ErrOrderNotFound
	}
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return scanOrder(r.db.Querier(ctx).QueryRow(ctx, query, id))
}

// FindByIDForUpdate implementa order.Repository.FindByIDForUpdate
func (r *OrderRepository) FindByIDForUpdate(ctx context.Context, id string) (*order.Order, error) {
	if !validID(id) {
		return nil, ErrOrderNotFound
	}
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`
	return scanOrder(r.db.Querier(ctx).QueryRow(ctx, query, id))
}

// ListByBuyer implementa order.Repository.ListByBuyer
func (r *OrderRepository) ListByBuyer(ctx context.Context, buyerID string) ([]*order.Order, error) {
	if !validID(buyerID) {
		return []*order.Order{}, nil
	}
	query := `SELECT ` + orderColumns + ` FROM orders WHERE buyer_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Querier(ctx).Query(ctx, query, buyerID)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar pedidos: %w", err)
	}
	defer rows.Close()

	orders := make([]*order.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("falha ao ler pedidos: %w", err)
	}
	return orders, nil
}

// UpdateStatus implementa order.Repository.UpdateStatus
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status order.Status) error {
	if !validID(id) {
		return ErrOrderNotFound
	}
	tag, err := r.db.Querier(ctx).Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`,
		string(status), time.Now(), id)
	if err != nil {
		return fmt.Errorf("falha ao atualizar status do pedido: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func scanOrder(row pgx.Row) (*order.Order, error) {
	o := &order.Order{}
	var status string

	err := row.Scan(
		&o.ID,
		&o.StockItemID,
		&o.BuyerID,
		&o.Quantity,
		&status,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("falha ao ler pedido: %w", err)
	}

	o.Status = order.Status(status)
	return o, nil
}
