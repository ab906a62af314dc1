package redis

import (
	"context"
	"time"
)

const unlockScript = "if redis.call('get', KEYS[1]) == ARGV[1] then return redis.call('del', KEYS[1]) else return 0 end"

// TryLock 以 SetNX 抢占互斥锁。retryTimes 为 0 时仅尝试一次，-1 时无限重试。
func (c *Client) TryLock(ctx context.Context, key string, value string, expiration time.Duration, retryTimes int) (bool, error) {
	for i := 0; i <= retryTimes || retryTimes == -1; i++ {
		success, err := c.rdb.SetNX(ctx, key, value, expiration).Result()
		if err != nil {
			return false, err
		}
		if success {
			return true, nil
		}
		if i < retryTimes || retryTimes == -1 {
			time.Sleep(time.Millisecond * 200)
		}
	}
	return false, nil
}

// UnLock 释放锁，仅当持有者匹配时删除
func (c *Client) UnLock(ctx context.Context, key string, value string) {
	c.rdb.Eval(ctx, unlockScript, []string{key}, value)
}
