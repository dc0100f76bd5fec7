// Package config centraliza a leitura das variáveis de ambiente da API
package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// DatabaseConfig contém as configurações para conexão com o PostgreSQL
type DatabaseConfig struct {
	URL             string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConnections  int32
	MinConnections  int32
	MaxConnLifetime time.Duration
}

// ConnectionString retorna a URL de conexão. DATABASE_URL tem prioridade
// sobre as variáveis DB_* individuais.
func (c DatabaseConfig) ConnectionString() string {
	if c.URL != "" {
		return c.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

// JWTConfig contém as configurações dos tokens de acesso
type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
}

// RedisConfig contém as configurações do Redis. Addr vazio desativa a blacklist.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled indica se o Redis foi configurado
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// LogConfig contém nível e formato dos logs
type LogConfig struct {
	Level  string
	Format string
}

// Config agrupa toda a configuração da aplicação
type Config struct {
	HTTPPort           string
	APIBasePath        string
	GinMode            string
	CORSAllowedOrigins []string
	SnapshotPolicy     string
	MigrationsAuto     bool

	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Log      LogConfig
}

// ErrMissingJWTSecret indica que JWT_SECRET_KEY não foi definido
var ErrMissingJWTSecret = errors.New("JWT_SECRET_KEY não configurado")

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiEnv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid int env %s=%s, using default %d", key, v, def)
		return def
	}
	return n
}

func boolEnv(key string, def bool) bool {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("invalid bool env %s=%s, using default %t", key, v, def)
		return def
	}
	return b
}

func listEnv(key string, def []string) []string {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// LoadDatabase lê apenas a configuração do banco. Usada pela ferramenta de migração.
func LoadDatabase() DatabaseConfig {
	return DatabaseConfig{
		URL:             os.Getenv("DATABASE_URL"),
		Host:            getenv("DB_HOST", "localhost"),
		Port:            atoiEnv("DB_PORT", 5432),
		User:            getenv("DB_USER", "postgres"),
		Password:        getenv("DB_PASSWORD", "postgres"),
		Name:            getenv("DB_NAME", "greenchain"),
		SSLMode:         getenv("DB_SSL_MODE", "disable"),
		MaxConnections:  int32(atoiEnv("DB_MAX_CONNECTIONS", 10)),
		MinConnections:  int32(atoiEnv("DB_MIN_CONNECTIONS", 1)),
		MaxConnLifetime: time.Duration(atoiEnv("DB_MAX_LIFETIME", 3600)) * time.Second,
	}
}

// LoadLog lê nível e formato dos logs
func LoadLog() LogConfig {
	return LogConfig{
		Level:  getenv("LOG_LEVEL", "info"),
		Format: getenv("LOG_FORMAT", "text"),
	}
}

// Load lê a configuração do ambiente
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:           getenv("HTTP_PORT", "8080"),
		APIBasePath:        getenv("API_BASE_PATH", "/api/v1"),
		GinMode:            getenv("GIN_MODE", "debug"),
		CORSAllowedOrigins: listEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
		SnapshotPolicy:     getenv("VOICE_SNAPSHOT_POLICY", "trust"),
		MigrationsAuto:     boolEnv("MIGRATIONS_AUTO", false),
		Database:           LoadDatabase(),
		JWT: JWTConfig{
			SecretKey:  os.Getenv("JWT_SECRET_KEY"),
			Expiration: time.Duration(atoiEnv("JWT_EXPIRATION_HOURS", 24)) * time.Hour,
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       atoiEnv("REDIS_DB", 0),
		},
		Log: LoadLog(),
	}

	if cfg.JWT.SecretKey == "" {
		return nil, ErrMissingJWTSecret
	}
	return cfg, nil
}
