package database

import (
	"context"

	"blkout_community_go/pkg/log"

	"github.com/go-redis/redis/v8"
)

// RDB is the global Redis client, used for the rating-summary cache and the
// revoked-token blacklist.
var RDB *redis.Client

func InitRedis(addr, password string, db int) {
	RDB = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	if err := RDB.Ping(ctx).Err(); err != nil {
		log.Fatal("failed to connect to redis", err)
	}

	log.Info("Redis client connected successfully")
}
