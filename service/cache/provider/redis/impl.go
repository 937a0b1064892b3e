package redis

import (
	"context"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/x-xyz/gameanalytics/base/ctx"
	"github.com/x-xyz/gameanalytics/service/cache/provider"
)

// Pool is the part of *redis.Pool the provider needs.
type Pool interface {
	GetContext(c context.Context) (redis.Conn, error)
}

type impl struct {
	pool Pool
}

func NewRedis(pool Pool) provider.Provider {
	return &impl{pool}
}

func (im *impl) do(c ctx.Ctx, cmd string, args ...interface{}) (interface{}, error) {
	conn, err := im.pool.GetContext(c)
	if err != nil {
		c.WithField("err", err).Error("pool.GetContext failed")
		return nil, err
	}
	defer conn.Close()
	return conn.Do(cmd, args...)
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	val, err := redis.Bytes(im.do(c, "GET", key))
	if err == redis.ErrNil {
		return nil, 0, provider.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis GET failed")
		return nil, 0, err
	}
	ttl, err := redis.Int64(im.do(c, "TTL", key))
	if err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis TTL failed")
		return nil, 0, err
	}
	if ttl < 0 {
		ttl = 0
	}
	return val, time.Duration(ttl) * time.Second, nil
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	args := []interface{}{key, value}
	if secs := int64(ttl.Seconds()); secs > 0 {
		args = append(args, "EX", secs)
	}
	if _, err := im.do(c, "SET", args...); err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis SET failed")
		return err
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	if _, err := im.do(c, "DEL", key); err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis DEL failed")
		return err
	}
	return nil
}
