package main

import (
	"log"

	_ "github.com/hugohenrick/greenchain/docs"
	"github.com/hugohenrick/greenchain/internal/config"
	"github.com/hugohenrick/greenchain/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Erro ao carregar configuração: %v", err)
	}

	appLogger := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})

	// Criar aplicação
	app, err := NewApp(cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to initialize application", "error", err)
		log.Fatal(err)
	}
	defer app.Close()

	// Iniciar o servidor
	if err := app.Run(); err != nil {
		appLogger.Error("Server stopped with error", "error", err)
	}
}
