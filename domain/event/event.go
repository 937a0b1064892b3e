package event

import (
	"time"

	"github.com/x-xyz/gameanalytics/base/ctx"
	"github.com/x-xyz/gameanalytics/domain"
)

type Type string

const (
	TypeMint     Type = "mint"
	TypeBurn     Type = "burn"
	TypeTransfer Type = "transfer"
	TypeLootbox  Type = "lootbox"
)

// TransferEvent is one ERC1155 TransferSingle log (or one id of a TransferBatch).
// BlockTime is zero when the source cannot provide chain timestamps.
type TransferEvent struct {
	From        domain.Address     `json:"from" validate:"required,eth_addr"`
	To          domain.Address     `json:"to" validate:"required,eth_addr"`
	TokenId     domain.TokenId     `json:"tokenId"`
	Amount      int64              `json:"amount" validate:"gte=0"`
	TxHash      domain.TxHash      `json:"transactionHash" validate:"required"`
	BlockNumber domain.BlockNumber `json:"blockNumber"`
	LogIndex    uint               `json:"logIndex"`
	BlockTime   time.Time          `json:"blockTime"`
}

// Classify tells mints, burns and plain transfers apart. An event from and to the zero
// address counts as a mint.
func (e *TransferEvent) Classify() Type {
	if e.From.IsZero() {
		return TypeMint
	}
	if e.To.IsZero() {
		return TypeBurn
	}
	return TypeTransfer
}

// LootboxEvent is one LootboxOpened log.
type LootboxEvent struct {
	Player       domain.Address     `json:"player" validate:"required,eth_addr"`
	PrizeTokenId domain.TokenId     `json:"prizeTokenId"`
	Amount       int64              `json:"amount" validate:"gte=0"`
	TxHash       domain.TxHash      `json:"transactionHash" validate:"required"`
	BlockNumber  domain.BlockNumber `json:"blockNumber"`
	LogIndex     uint               `json:"logIndex"`
	BlockTime    time.Time          `json:"blockTime"`
}

// Snapshot is an immutable view of every known event. Both lists are newest first.
type Snapshot struct {
	Revision  string
	Transfers []TransferEvent
	Lootboxes []LootboxEvent
}

type Repo interface {
	Snapshot(c ctx.Ctx) (*Snapshot, error)
	// AppendTransfers takes a batch in chain order (oldest first).
	AppendTransfers(c ctx.Ctx, events []TransferEvent) (string, error)
	// AppendLootboxes takes a batch in chain order (oldest first).
	AppendLootboxes(c ctx.Ctx, events []LootboxEvent) (string, error)
}

type UseCase interface {
	Snapshot(c ctx.Ctx) (*Snapshot, error)
	IngestTransfers(c ctx.Ctx, events []TransferEvent) error
	IngestLootboxes(c ctx.Ctx, events []LootboxEvent) error
}
