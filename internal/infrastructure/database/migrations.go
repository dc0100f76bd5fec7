package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/hugohenrick/greenchain/pkg/logger"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

func newMigrate(databaseURL string) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar migrações: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar migrate: %w", err)
	}
	return m, nil
}

// RunMigrations aplica todas as migrações pendentes
func RunMigrations(databaseURL string, log logger.Logger) error {
	m, err := newMigrate(databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("erro ao aplicar migrações: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("erro ao ler versão das migrações: %w", err)
	}
	log.Info("Migrations applied", "version", version, "dirty", dirty)
	return nil
}

// RollbackMigrations desfaz as últimas n migrações
func RollbackMigrations(databaseURL string, steps int, log logger.Logger) error {
	if steps <= 0 {
		return fmt.Errorf("número de passos inválido: %d", steps)
	}

	m, err := newMigrate(databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("erro ao desfazer migrações: %w", err)
	}
	log.Info("Migrations rolled back", "steps", steps)
	return nil
}
