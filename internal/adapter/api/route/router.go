package route

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/greenchain/internal/adapter/api/controller"
	"github.com/hugohenrick/greenchain/pkg/metrics"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Controllers agrupa os controllers registrados no router
type Controllers struct {
	Auth   *controller.AuthController
	User   *controller.UserController
	Stock  *controller.StockController
	Order  *controller.OrderController
	Voice  *controller.VoiceController
	Health *controller.HealthController
}

// Options configura o router
type Options struct {
	BasePath       string
	AllowedOrigins []string
	AuthMiddleware gin.HandlerFunc
	EnableSwagger  bool
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	cfg.MaxAge = 12 * time.Hour

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// NewRouter cria o engine com os middlewares globais e todas as rotas
func NewRouter(opts Options, c Controllers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(corsConfig(opts.AllowedOrigins)))
	router.Use(metrics.GinMiddleware())

	// Rotas de infraestrutura
	router.GET("/", c.Health.Check)
	router.GET("/metrics", metrics.Handler())
	if opts.EnableSwagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := router.Group(opts.BasePath)
	api.GET("/health", c.Health.Check)

	SetupAuthRoutes(api, c.Auth, opts.AuthMiddleware)
	SetupUserRoutes(api, c.User, opts.AuthMiddleware)
	SetupStockRoutes(api, c.Stock, opts.AuthMiddleware)
	SetupOrderRoutes(api, c.Order, opts.AuthMiddleware)
	SetupVoiceRoutes(api, c.Voice, opts.AuthMiddleware)

	return router
}
