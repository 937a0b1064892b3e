package tracker

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"

	"github.com/x-xyz/gameanalytics/base/abi"
	bCtx "github.com/x-xyz/gameanalytics/base/ctx"
	"github.com/x-xyz/gameanalytics/base/log"
	"github.com/x-xyz/gameanalytics/domain"
	"github.com/x-xyz/gameanalytics/domain/event"
)

// event TransferSingle(address indexed _operator, address indexed _from, address indexed _to, uint256 _id, uint256 _value);
// event TransferBatch(address indexed _operator, address indexed _from, address indexed _to, uint256[] _ids, uint256[] _values);
// event LootboxOpened(address indexed player, uint256 prizeTokenId, uint256 amount);
var (
	transferSingle = abi.ERC1155TokenABI.Events["TransferSingle"].ID
	transferBatch  = abi.ERC1155TokenABI.Events["TransferBatch"].ID
	lootboxOpened  = abi.LootboxABI.Events["LootboxOpened"].ID
)

type GameEventHandlerCfg struct {
	EventUseCase event.UseCase
}

// GameEventHandler turns game item transfers and lootbox openings into events for the
// event store. Logs are expected in chain order.
type GameEventHandler struct {
	GameEventHandlerCfg
	Topics [][]common.Hash
}

func NewGameEventHandler(cfg *GameEventHandlerCfg) EventHandler {
	return &GameEventHandler{
		GameEventHandlerCfg: *cfg,
		Topics: [][]common.Hash{
			{transferSingle, transferBatch, lootboxOpened},
		},
	}
}

func (h *GameEventHandler) GetFilterTopics() [][]common.Hash {
	return h.Topics
}

func (h *GameEventHandler) ProcessEvents(ctx bCtx.Ctx, logs []logWithBlockTime) error {
	transfers := []event.TransferEvent{}
	lootboxes := []event.LootboxEvent{}
	for i := range logs {
		l := &logs[i]
		if len(l.Topics) == 0 {
			continue
		}
		c := bCtx.WithLogField(ctx, "txHash", l.TxHash.Hex())
		switch l.Topics[0] {
		case transferSingle:
			e, err := toTransferSingle(l)
			if skip(c, err, "toTransferSingle failed") {
				continue
			}
			transfers = append(transfers, *e)
		case transferBatch:
			es, err := toTransferBatch(l)
			if skip(c, err, "toTransferBatch failed") {
				continue
			}
			transfers = append(transfers, es...)
		case lootboxOpened:
			e, err := toLootboxOpened(l)
			if skip(c, err, "toLootboxOpened failed") {
				continue
			}
			lootboxes = append(lootboxes, *e)
		default:
			c.WithField("topic", l.Topics[0]).Warn("unknown topic, skipping")
		}
	}

	if err := h.EventUseCase.IngestTransfers(ctx, transfers); err != nil {
		ctx.WithField("err", err).Error("eventUC.IngestTransfers failed")
		return err
	}
	if err := h.EventUseCase.IngestLootboxes(ctx, lootboxes); err != nil {
		ctx.WithField("err", err).Error("eventUC.IngestLootboxes failed")
		return err
	}
	ctx.WithFields(log.Fields{
		"logs":      len(logs),
		"transfers": len(transfers),
		"lootboxes": len(lootboxes),
	}).Info("events processed")
	return nil
}

// skip reports whether a log has to be dropped. Only undecodable or out of range logs are
// dropped, everything else is returned to the tracker.
func skip(ctx bCtx.Ctx, err error, msg string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, domain.ErrValueOutOfRange) {
		ctx.WithField("err", err).Warn("value does not fit, skipping")
	} else {
		ctx.WithField("err", err).Warn(msg)
	}
	return true
}

func toTransferSingle(l *logWithBlockTime) (*event.TransferEvent, error) {
	transferSingle, err := abi.ToErc1155TransferSingleLog(&l.Log)
	if err != nil {
		return nil, err
	}
	id, err := toTokenId(transferSingle.Id)
	if err != nil {
		return nil, err
	}
	amount, err := toAmount(transferSingle.Value)
	if err != nil {
		return nil, err
	}
	return &event.TransferEvent{
		From:        toDomainAddress(transferSingle.From),
		To:          toDomainAddress(transferSingle.To),
		TokenId:     id,
		Amount:      amount,
		TxHash:      toTxHash(l.TxHash),
		BlockNumber: domain.BlockNumber(l.BlockNumber),
		LogIndex:    l.Index,
		BlockTime:   l.blockTime,
	}, nil
}

// toTransferBatch expands a batch into one event per id. A single id out of range drops
// the whole batch.
func toTransferBatch(l *logWithBlockTime) ([]event.TransferEvent, error) {
	transferBatch, err := abi.ToErc1155TransferBatchLog(&l.Log)
	if err != nil {
		return nil, err
	}
	transfers := make([]event.TransferEvent, 0, len(transferBatch.Ids))
	for i := range transferBatch.Ids {
		id, err := toTokenId(transferBatch.Ids[i])
		if err != nil {
			return nil, err
		}
		amount, err := toAmount(transferBatch.Values[i])
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, event.TransferEvent{
			From:        toDomainAddress(transferBatch.From),
			To:          toDomainAddress(transferBatch.To),
			TokenId:     id,
			Amount:      amount,
			TxHash:      toTxHash(l.TxHash),
			BlockNumber: domain.BlockNumber(l.BlockNumber),
			LogIndex:    l.Index,
			BlockTime:   l.blockTime,
		})
	}
	return transfers, nil
}

func toLootboxOpened(l *logWithBlockTime) (*event.LootboxEvent, error) {
	opened, err := abi.ToLootboxOpenedLog(&l.Log)
	if err != nil {
		return nil, err
	}
	id, err := toTokenId(opened.PrizeTokenId)
	if err != nil {
		return nil, err
	}
	amount, err := toAmount(opened.Amount)
	if err != nil {
		return nil, err
	}
	return &event.LootboxEvent{
		Player:       toDomainAddress(opened.Player),
		PrizeTokenId: id,
		Amount:       amount,
		TxHash:       toTxHash(l.TxHash),
		BlockNumber:  domain.BlockNumber(l.BlockNumber),
		LogIndex:     l.Index,
		BlockTime:    l.blockTime,
	}, nil
}
