package usecase

import (
	"time"

	"golang.org/x/xerrors"

	"github.com/x-xyz/gameanalytics/base/ctx"
	"github.com/x-xyz/gameanalytics/base/log"
	"github.com/x-xyz/gameanalytics/base/metrics"
	"github.com/x-xyz/gameanalytics/base/validator"
	"github.com/x-xyz/gameanalytics/domain"
	"github.com/x-xyz/gameanalytics/domain/economy"
	"github.com/x-xyz/gameanalytics/domain/event"
	"github.com/x-xyz/gameanalytics/domain/keys"
	"github.com/x-xyz/gameanalytics/service/cache"
)

const defaultGranularity = time.Minute

type EconomyUseCaseCfg struct {
	Events     event.UseCase
	Aggregator *Aggregator
	Cache      cache.Service
	Metrics    metrics.Service
	// Clock defaults to time.Now
	Clock func() time.Time
	// Granularity is the resolution of the reference time, and therefore how long a
	// dashboard for an unchanged snapshot is reused
	Granularity time.Duration
}

type impl struct {
	events      event.UseCase
	agg         *Aggregator
	cache       cache.Service
	metrics     metrics.Service
	clock       func() time.Time
	granularity time.Duration
}

func New(cfg *EconomyUseCaseCfg) economy.UseCase {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Granularity <= 0 {
		cfg.Granularity = defaultGranularity
	}
	return &impl{
		events:      cfg.Events,
		agg:         cfg.Aggregator,
		cache:       cfg.Cache,
		metrics:     cfg.Metrics,
		clock:       cfg.Clock,
		granularity: cfg.Granularity,
	}
}

func (im *impl) reference() time.Time {
	return im.clock().Truncate(im.granularity)
}

func (im *impl) Dashboard(c ctx.Ctx) (*economy.Dashboard, error) {
	snap, err := im.events.Snapshot(c)
	if err != nil {
		c.WithField("err", err).Error("events.Snapshot failed")
		return nil, xerrors.Errorf("snapshot: %w", err)
	}

	ref := im.reference()
	c = ctx.WithLogField(c, "revision", snap.Revision)

	res := economy.Dashboard{}
	getter := func() (interface{}, error) {
		defer im.metrics.BumpTime("dashboard.build.time").End()

		transfers, lootboxes, skipped := Sanitize(c, snap.Transfers, snap.Lootboxes)
		if skipped > 0 {
			im.metrics.BumpSum("events.skipped", float64(skipped))
		}
		if degraded := countDegraded(transfers, lootboxes); degraded > 0 {
			c.WithField("count", degraded).Warn("events without block time, bucketed at reference time")
			im.metrics.BumpSum("events.degraded", float64(degraded))
		}

		d := im.agg.Build(transfers, lootboxes, ref)
		d.Revision = snap.Revision
		d.Skipped = skipped
		c.WithFields(log.Fields{
			"reference": ref,
			"transfers": len(transfers),
			"lootboxes": len(lootboxes),
			"skipped":   skipped,
		}).Info("dashboard built")
		return d, nil
	}

	if err := im.cache.GetByFunc(c, keys.DashboardKey(snap.Revision, ref), &res, getter); err != nil {
		c.WithField("err", err).Error("cache.GetByFunc failed")
		return nil, xerrors.Errorf("dashboard: %w", err)
	}
	return &res, nil
}

func (im *impl) Inventory(c ctx.Ctx, owner domain.Address) ([]economy.InventoryItem, error) {
	if !validator.IsValidAddress(string(owner)) {
		return nil, xerrors.Errorf("owner %s: %w", owner, domain.ErrBadParamInput)
	}

	snap, err := im.events.Snapshot(c)
	if err != nil {
		c.WithField("err", err).Error("events.Snapshot failed")
		return nil, xerrors.Errorf("snapshot: %w", err)
	}

	transfers, _, _ := Sanitize(c, snap.Transfers, nil)
	return im.agg.BuildInventory(transfers, owner), nil
}

func countDegraded(transfers []event.TransferEvent, lootboxes []event.LootboxEvent) int {
	n := 0
	for i := range transfers {
		if transfers[i].BlockTime.IsZero() {
			n++
		}
	}
	for i := range lootboxes {
		if lootboxes[i].BlockTime.IsZero() {
			n++
		}
	}
	return n
}
