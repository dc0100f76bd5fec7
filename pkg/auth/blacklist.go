package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist guarda tokens revogados até a sua expiração natural
type TokenBlacklist interface {
	Add(ctx context.Context, token string, ttl time.Duration) error
	Contains(ctx context.Context, token string) (bool, error)
}

// RedisBlacklist implementa TokenBlacklist usando Redis.
// Chave: blacklist:{token}
type RedisBlacklist struct {
	client *redis.Client
}

// NewRedisBlacklist cria a blacklist sobre um cliente Redis
func NewRedisBlacklist(client *redis.Client) *RedisBlacklist {
	return &RedisBlacklist{client: client}
}

func blacklistKey(token string) string {
	return fmt.Sprintf("blacklist:%s", token)
}

// Add revoga o token pelo tempo indicado
func (b *RedisBlacklist) Add(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, blacklistKey(token), "revoked", ttl).Err(); err != nil {
		return fmt.Errorf("falha ao adicionar token à blacklist: %w", err)
	}
	return nil
}

// Contains verifica se o token foi revogado
func (b *RedisBlacklist) Contains(ctx context.Context, token string) (bool, error) {
	exists, err := b.client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("falha ao consultar blacklist: %w", err)
	}
	return exists > 0, nil
}
