package repository

import (
	"time"

	"github.com/x-xyz/gameanalytics/base/ctx"
	"github.com/x-xyz/gameanalytics/domain/event"
	hcdomain "github.com/x-xyz/gameanalytics/domain/healthcheck"
	"github.com/x-xyz/gameanalytics/domain/keys"
	"github.com/x-xyz/gameanalytics/service/cache/provider"
)

type impl struct {
	cache  provider.Provider
	events event.Repo
}

// New creates new healthCheckRepo object representation of HealthCheckRepo interface
func New(
	cache provider.Provider,
	events event.Repo,
) hcdomain.HealthCheckRepo {
	return &impl{
		cache:  cache,
		events: events,
	}
}

func (im *impl) PingCache(context ctx.Ctx) error {
	ctx, cancel := ctx.WithTimeout(context, 2*time.Second)
	defer cancel()
	if err := im.cache.Set(ctx, keys.RedisKey(keys.PfxHealthCheck, "testset"), []byte("1"), 30*time.Second); err != nil {
		context.WithField("err", err).Error("test cache set failed")
		return err
	}
	return nil
}

func (im *impl) PingEvents(context ctx.Ctx) error {
	if _, err := im.events.Snapshot(context); err != nil {
		context.WithField("err", err).Error("events.Snapshot failed")
		return err
	}
	return nil
}
