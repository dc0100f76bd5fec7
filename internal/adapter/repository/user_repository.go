package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/greenchain/internal/domain/user"
	"github.com/hugohenrick/greenchain/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// Erros específicos do repositório
var (
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrUserDuplicateEmail = errors.New("usuário com mesmo email já existe")
)

const uniqueViolation = "23505"

// UserRepository implementa a interface user.Repository usando PostgreSQL
type UserRepository struct {
	db *database.PostgresDB
}

// NewUserRepository cria uma nova instância de UserRepository
func NewUserRepository(db *database.PostgresDB) user.Repository {
	return &UserRepository{
		db: db,
	}
}

const userColumns = `id, name, email, password, role, last_login_at, created_at, updated_at`

// Create implementa user.Repository.Create
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (
			id, name, email, password, role, last_login_at, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
	`

	_, err := r.db.Querier(ctx).Exec(ctx, query,
		u.ID,
		u.Name,
		u.Email,
		u.Password,
		string(u.Role),
		u.LastLoginAt,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrUserDuplicateEmail
		}
		return fmt.Errorf("falha ao inserir usuário: %w", err)
	}

	return nil
}

// FindByID implementa user.Repository.FindByID
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	if !validID(id) {
		return nil, ErrUserNotFound
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.findOne(ctx, query, id)
}

// FindByEmail implementa user.Repository.FindByEmail
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.findOne(ctx, query, email)
}

// UpdateLastLogin implementa user.Repository.UpdateLastLogin
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrUserNotFound
	}
	now := time.Now()
	tag, err := r.db.Querier(ctx).Exec(ctx,
		`UPDATE users SET last_login_at = $1, updated_at = $1 WHERE id = $2`,
		now, id)
	if err != nil {
		return fmt.Errorf("falha ao atualizar último login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg string) (*user.User, error) {
	u := &user.User{}
	var role string
	var lastLogin pgtype.Timestamp

	err := r.db.Querier(ctx).QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Password,
		&role,
		&lastLogin,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("falha ao buscar usuário: %w", err)
	}

	u.Role = user.Role(role)
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLoginAt = &t
	}
	return u, nil
}
