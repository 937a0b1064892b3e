package usecase

import (
	"github.com/x-xyz/gameanalytics/base/ctx"
	"github.com/x-xyz/gameanalytics/base/log"
	"github.com/x-xyz/gameanalytics/domain/event"
)

type impl struct {
	repo event.Repo
}

func New(repo event.Repo) event.UseCase {
	return &impl{repo: repo}
}

func (im *impl) Snapshot(c ctx.Ctx) (*event.Snapshot, error) {
	snap, err := im.repo.Snapshot(c)
	if err != nil {
		c.WithField("err", err).Error("repo.Snapshot failed")
		return nil, err
	}
	return snap, nil
}

// IngestTransfers stores the batch with canonical casing. Malformed events are kept as is
// and only dropped when the views are derived.
func (im *impl) IngestTransfers(c ctx.Ctx, events []event.TransferEvent) error {
	if len(events) == 0 {
		return nil
	}
	batch := make([]event.TransferEvent, len(events))
	for i, e := range events {
		e.From = e.From.ToLower()
		e.To = e.To.ToLower()
		e.TxHash = e.TxHash.ToLower()
		batch[i] = e
	}
	revision, err := im.repo.AppendTransfers(c, batch)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "count": len(batch)}).Error("repo.AppendTransfers failed")
		return err
	}
	c.WithFields(log.Fields{"revision": revision, "count": len(batch)}).Info("transfers ingested")
	return nil
}

func (im *impl) IngestLootboxes(c ctx.Ctx, events []event.LootboxEvent) error {
	if len(events) == 0 {
		return nil
	}
	batch := make([]event.LootboxEvent, len(events))
	for i, e := range events {
		e.Player = e.Player.ToLower()
		e.TxHash = e.TxHash.ToLower()
		batch[i] = e
	}
	revision, err := im.repo.AppendLootboxes(c, batch)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "count": len(batch)}).Error("repo.AppendLootboxes failed")
		return err
	}
	c.WithFields(log.Fields{"revision": revision, "count": len(batch)}).Info("lootboxes ingested")
	return nil
}
