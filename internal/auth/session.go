package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyFmt = "session:%s"

func SetSession(rdb *redis.Client, jti, token string, duration time.Duration) error {
	ctx := context.Background()
	key := fmt.Sprintf(sessionKeyFmt, jti)
	return rdb.Set(ctx, key, token, duration).Err()
}

func GetSession(rdb *redis.Client, jti string) (string, error) {
	ctx := context.Background()
	key := fmt.Sprintf(sessionKeyFmt, jti)
	return rdb.Get(ctx, key).Result()
}

func DeleteSession(rdb *redis.Client, jti string) error {
	ctx := context.Background()
	key := fmt.Sprintf(sessionKeyFmt, jti)
	return rdb.Del(ctx, key).Err()
}

// ActiveSessionCount returns the number of tokens with live sessions.
func ActiveSessionCount(rdb *redis.Client) (int, error) {
	ctx := context.Background()
	var cursor uint64
	tokens := make(map[string]struct{})
	for {
		keys, newCursor, err := rdb.Scan(ctx, cursor, "session:*", 100).Result()
		if err != nil {
			return 0, err
		}
		for _, key := range keys {
			parts := strings.Split(key, ":")
			if len(parts) == 2 && parts[0] == "session" && parts[1] != "" {
				tokens[parts[1]] = struct{}{}
			}
		}
		if newCursor == 0 {
			break
		}
		cursor = newCursor
	}
	return len(tokens), nil
}
