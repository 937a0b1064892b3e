package usecase

import (
	"github.com/go-playground/validator/v10"

	"github.com/x-xyz/gameanalytics/base/ctx"
	"github.com/x-xyz/gameanalytics/base/log"
	"github.com/x-xyz/gameanalytics/domain/event"
)

var validate = validator.New()

// Sanitize drops malformed events and canonicalizes addresses and hashes of the rest.
// The input slices are left untouched. Every dropped event is logged as a warning.
func Sanitize(c ctx.Ctx, transfers []event.TransferEvent, lootboxes []event.LootboxEvent) ([]event.TransferEvent, []event.LootboxEvent, int) {
	skipped := 0
	ts := make([]event.TransferEvent, 0, len(transfers))
	for i, e := range transfers {
		e.From = e.From.ToLower()
		e.To = e.To.ToLower()
		e.TxHash = e.TxHash.ToLower()
		if err := validate.Struct(&e); err != nil {
			c.WithFields(log.Fields{
				"err":    err,
				"index":  i,
				"txHash": e.TxHash,
			}).Warn("skip malformed transfer event")
			skipped++
			continue
		}
		ts = append(ts, e)
	}
	ls := make([]event.LootboxEvent, 0, len(lootboxes))
	for i, e := range lootboxes {
		e.Player = e.Player.ToLower()
		e.TxHash = e.TxHash.ToLower()
		if err := validate.Struct(&e); err != nil {
			c.WithFields(log.Fields{
				"err":    err,
				"index":  i,
				"txHash": e.TxHash,
			}).Warn("skip malformed lootbox event")
			skipped++
			continue
		}
		ls = append(ls, e)
	}
	return ts, ls, skipped
}
