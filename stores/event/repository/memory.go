package repository

import (
	"sync"

	"github.com/google/uuid"

	"github.com/x-xyz/gameanalytics/base/ctx"
	"github.com/x-xyz/gameanalytics/base/log"
	"github.com/x-xyz/gameanalytics/domain/event"
)

type memoryRepo struct {
	mu        sync.RWMutex
	maxEvents int
	snap      *event.Snapshot
}

// NewMemoryRepo keeps at most maxEvents events per list; 0 means unbounded.
func NewMemoryRepo(maxEvents int) event.Repo {
	return &memoryRepo{
		maxEvents: maxEvents,
		snap: &event.Snapshot{
			Revision:  uuid.NewString(),
			Transfers: []event.TransferEvent{},
			Lootboxes: []event.LootboxEvent{},
		},
	}
}

func (r *memoryRepo) Snapshot(c ctx.Ctx) (*event.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap, nil
}

func (r *memoryRepo) bound(n int) int {
	if r.maxEvents > 0 && n > r.maxEvents {
		return r.maxEvents
	}
	return n
}

func (r *memoryRepo) AppendTransfers(c ctx.Ctx, events []event.TransferEvent) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(events) == 0 {
		return r.snap.Revision, nil
	}

	prev := r.snap.Transfers
	next := make([]event.TransferEvent, 0, r.bound(len(prev)+len(events)))
	for i := len(events) - 1; i >= 0 && len(next) < cap(next); i-- {
		next = append(next, events[i])
	}
	for i := 0; i < len(prev) && len(next) < cap(next); i++ {
		next = append(next, prev[i])
	}

	r.snap = &event.Snapshot{
		Revision:  uuid.NewString(),
		Transfers: next,
		Lootboxes: r.snap.Lootboxes,
	}
	c.WithFields(log.Fields{
		"revision": r.snap.Revision,
		"appended": len(events),
		"total":    len(next),
	}).Debug("transfers appended")
	return r.snap.Revision, nil
}

func (r *memoryRepo) AppendLootboxes(c ctx.Ctx, events []event.LootboxEvent) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(events) == 0 {
		return r.snap.Revision, nil
	}

	prev := r.snap.Lootboxes
	next := make([]event.LootboxEvent, 0, r.bound(len(prev)+len(events)))
	for i := len(events) - 1; i >= 0 && len(next) < cap(next); i-- {
		next = append(next, events[i])
	}
	for i := 0; i < len(prev) && len(next) < cap(next); i++ {
		next = append(next, prev[i])
	}

	r.snap = &event.Snapshot{
		Revision:  uuid.NewString(),
		Transfers: r.snap.Transfers,
		Lootboxes: next,
	}
	c.WithFields(log.Fields{
		"revision": r.snap.Revision,
		"appended": len(events),
		"total":    len(next),
	}).Debug("lootboxes appended")
	return r.snap.Revision, nil
}
