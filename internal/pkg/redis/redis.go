package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"Tgspace/internal/config"
	"Tgspace/internal/pkg/logger"
)

// Client 封装 go-redis 客户端，仅暴露同步流程需要的操作
type Client struct {
	rdb *redis.Client
}

// NewClient 初始化 Redis 客户端连接
func NewClient(cfg *config.RedisConfig) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
	rdb.AddHook(logger.NewRedisLogger())

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}

	return &Client{rdb: rdb}, nil
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
