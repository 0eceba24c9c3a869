package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./denylist.go -destination=./mocks/denylist_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	goRedis "github.com/redis/go-redis/v9"
)

const denylistKeyPrefix = "jwt:revoked:"

// Denylist remembers revoked token ids until the token would have expired anyway.
type Denylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type redisDenylist struct {
	client *goRedis.Client
}

func NewDenylist(client *goRedis.Client) Denylist {
	return &redisDenylist{client: client}
}

func (d *redisDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	if err := d.client.Set(ctx, denylistKeyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

func (d *redisDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := d.client.Get(ctx, denylistKeyPrefix+tokenID).Err()
	if errors.Is(err, goRedis.Nil) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}

	return true, nil
}
