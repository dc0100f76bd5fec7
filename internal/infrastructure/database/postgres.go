package database

import (
	"context"
	"fmt"
	"time"

	"github.com/hugohenrick/greenchain/internal/config"
	"github.com/hugohenrick/greenchain/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier é o subconjunto comum entre o pool e uma transação
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txKey struct{}

// PostgresDB gerencia a conexão com o PostgreSQL
type PostgresDB struct {
	pool   *pgxpool.Pool
	logger logger.Logger
}

// NewPostgresDB cria o pool de conexões e verifica a conexão
func NewPostgresDB(ctx context.Context, cfg config.DatabaseConfig, log logger.Logger) (*PostgresDB, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("erro ao analisar configuração do pool: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConnections
	poolConfig.MinConns = cfg.MinConnections
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar pool de conexões: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("erro ao verificar conexão com o banco de dados: %w", err)
	}

	log.Info("Connected to PostgreSQL", "max_conns", poolConfig.MaxConns)
	return &PostgresDB{pool: pool, logger: log}, nil
}

// NewFromPool envolve um pool já existente
func NewFromPool(pool *pgxpool.Pool, log logger.Logger) *PostgresDB {
	return &PostgresDB{pool: pool, logger: log}
}

// Pool retorna o pool de conexões
func (db *PostgresDB) Pool() *pgxpool.Pool {
	return db.pool
}

// Ping verifica se o banco responde
func (db *PostgresDB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Close fecha o pool de conexões
func (db *PostgresDB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Querier retorna a transação do contexto, se houver, ou o pool
func (db *PostgresDB) Querier(ctx context.Context) Querier {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return db.pool
}

// TxFromContext extrai a transação corrente do contexto
func TxFromContext(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	return tx, ok
}

// Transaction executa fn dentro de uma transação. Os repositórios chamados
// com o contexto recebido por fn usam a mesma transação. Chamadas
// aninhadas reaproveitam a transação externa.
func (db *PostgresDB) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := TxFromContext(ctx); ok {
		return fn(ctx)
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("erro ao iniciar transação: %w", err)
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			db.logger.Error("Failed to rollback transaction", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("erro ao fazer commit: %w", err)
	}
	return nil
}
