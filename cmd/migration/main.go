package main

import (
	"flag"
	"log"

	"github.com/hugohenrick/greenchain/internal/config"
	"github.com/hugohenrick/greenchain/internal/infrastructure/database"
	"github.com/hugohenrick/greenchain/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	down := flag.Int("down", 0, "número de migrações a desfazer (0 aplica as pendentes)")
	flag.Parse()

	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	logCfg := config.LoadLog()
	appLogger := logger.New(logger.Options{Level: logCfg.Level, Format: logCfg.Format})
	databaseURL := config.LoadDatabase().ConnectionString()

	if *down > 0 {
		if err := database.RollbackMigrations(databaseURL, *down, appLogger); err != nil {
			log.Fatalf("Erro ao desfazer migrações: %v", err)
		}
		log.Println("Migrações desfeitas com sucesso!")
		return
	}

	// Executar as migrações
	if err := database.RunMigrations(databaseURL, appLogger); err != nil {
		log.Fatalf("Erro ao executar migrações: %v", err)
	}

	log.Println("Migrações executadas com sucesso!")
}
