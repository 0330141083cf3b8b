package util

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ariebrainware/medical-staff/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func accountSessionKey(kind string, accountID uuid.UUID) string {
	return fmt.Sprintf("account_sessions:%s:%s", kind, accountID)
}

// AddAccountSession records a signed-in token in the per-account Redis set. The set
// expires with the newest token it holds. Without Redis this is a no-op.
func AddAccountSession(ctx context.Context, kind string, accountID uuid.UUID, token string, ttl time.Duration) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	key := accountSessionKey(kind, accountID)
	pipe := rdb.TxPipeline()
	pipe.SAdd(ctx, key, token)
	pipe.Expire(ctx, key, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// HasAccountSession reports whether token is still an active session of the account.
// Without Redis every signature-valid token is considered active.
func HasAccountSession(ctx context.Context, kind string, accountID uuid.UUID, token string) (bool, error) {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return true, nil
	}
	ok, err := rdb.SIsMember(ctx, accountSessionKey(kind, accountID), token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, err
	}
	return ok, nil
}

// InvalidateAccountSessions drops every session of the account, used when the account
// is replaced or deleted.
func InvalidateAccountSessions(ctx context.Context, kind string, accountID uuid.UUID) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	return rdb.Del(ctx, accountSessionKey(kind, accountID)).Err()
}
