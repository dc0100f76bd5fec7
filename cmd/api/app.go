package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/greenchain/internal/adapter/api/controller"
	"github.com/hugohenrick/greenchain/internal/adapter/api/route"
	"github.com/hugohenrick/greenchain/internal/adapter/repository"
	"github.com/hugohenrick/greenchain/internal/config"
	"github.com/hugohenrick/greenchain/internal/domain/order"
	"github.com/hugohenrick/greenchain/internal/infrastructure/database"
	"github.com/hugohenrick/greenchain/pkg/auth"
	"github.com/hugohenrick/greenchain/pkg/logger"
	"github.com/hugohenrick/greenchain/pkg/metrics"
	"github.com/hugohenrick/greenchain/pkg/voice/intent"
	"github.com/hugohenrick/greenchain/pkg/voice/intent/adapter"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 10 * time.Second

// App representa a aplicação e suas dependências
type App struct {
	cfg    *config.Config
	logger logger.Logger
	router *gin.Engine
	db     *database.PostgresDB
	redis  *redis.Client
}

// NewApp cria uma nova instância do aplicativo
func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	gin.SetMode(cfg.GinMode)
	metrics.InitMetrics()

	policy, err := intent.ParseSnapshotPolicy(cfg.SnapshotPolicy)
	if err != nil {
		return nil, err
	}

	// Configurar banco de dados
	if cfg.MigrationsAuto {
		if err := database.RunMigrations(cfg.Database.ConnectionString(), log); err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.NewPostgresDB(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}

	app := &App{cfg: cfg, logger: log, db: db}

	// Lista de tokens revogados, opcional
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Enabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			app.Close()
			return nil, fmt.Errorf("erro ao conectar ao redis: %w", err)
		}
		app.redis = client
		blacklist = auth.NewRedisBlacklist(client)
		log.Info("Token blacklist enabled", "addr", cfg.Redis.Addr)
	} else {
		log.Warn("REDIS_ADDR not set, logout will not revoke tokens")
	}

	jwtService, err := auth.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.Expiration)
	if err != nil {
		app.Close()
		return nil, err
	}

	// Criar repositórios
	userRepo := repository.NewUserRepository(db)
	stockRepo := repository.NewStockRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Agente de voz e efetivação de pedidos
	marketplace := adapter.NewMarketplaceAdapter(stockRepo, orderRepo, db, log)
	manager := intent.NewManager(log, marketplace, intent.WithSnapshotPolicy(policy))
	committer := intent.NewCommitter(log, marketplace, intent.RevalidateSnapshot, nil)
	orderService := order.NewService(orderRepo, stockRepo, db, log)

	// Criar controllers
	controllers := route.Controllers{
		Auth:   controller.NewAuthController(userRepo, jwtService, blacklist, log),
		User:   controller.NewUserController(userRepo),
		Stock:  controller.NewStockController(stockRepo, db, log),
		Order:  controller.NewOrderController(orderRepo, stockRepo, committer, orderService, log),
		Voice:  controller.NewVoiceController(manager, log),
		Health: controller.NewHealthController(db),
	}

	app.router = route.NewRouter(route.Options{
		BasePath:       cfg.APIBasePath,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AuthMiddleware: auth.JWTAuthMiddleware(jwtService, blacklist),
		EnableSwagger:  cfg.GinMode != gin.ReleaseMode,
	}, controllers)

	log.Info("Application initialized",
		"base_path", cfg.APIBasePath,
		"snapshot_policy", string(policy))

	return app, nil
}

// Run inicia o servidor HTTP e aguarda SIGINT/SIGTERM para encerrar
func (a *App) Run() error {
	srv := &http.Server{
		Addr:              ":" + a.cfg.HTTPPort,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Server listening", "port", a.cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// GetRouter retorna o router da aplicação
func (a *App) GetRouter() *gin.Engine {
	return a.router
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("Failed to close redis client", "error", err)
		}
	}
	if a.db != nil {
		a.db.Close()
	}
}
