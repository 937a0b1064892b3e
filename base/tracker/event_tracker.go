package tracker

import (
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/gameanalytics/base/ctx"
	"github.com/x-xyz/gameanalytics/base/goroutine"
	"github.com/x-xyz/gameanalytics/base/log"
	"github.com/x-xyz/gameanalytics/base/metrics"
	"github.com/x-xyz/gameanalytics/domain"
)

var metOnce sync.Once
var met metrics.Service

type EventHandler interface {
	GetFilterTopics() [][]common.Hash
	ProcessEvents(bCtx.Ctx, []logWithBlockTime) error
}

const (
	TooManyLogsTimeout  = 30 * time.Second
	DefaultPollInterval = 10 * time.Second
)

type EventTrackerCfg struct {
	Client domain.EthClientRepo

	// empty means get events from all addresses
	ContractAddresses []common.Address

	EventHandl EventHandler
	ErrorCh    chan<- error
	// StartBlock 0 means start from the current head
	StartBlock     uint64
	FollowDistance uint64
	PollInterval   time.Duration
	TrackerTag     string
}

// EventTracker polls the chain head and feeds confirmed logs to its handler. Progress is
// kept in memory only, a restart replays from StartBlock.
type EventTracker struct {
	client         domain.EthClientRepo
	eventHandler   EventHandler
	errorCh        chan<- error
	filter         ethereum.FilterQuery
	startBlock     uint64
	followDistance uint64
	pollInterval   time.Duration
	trackerTag     string
	// next block to process
	next      uint64
	stoppedCh chan interface{}
}

func NewEventTracker(cfg *EventTrackerCfg) *EventTracker {
	metOnce.Do(func() {
		met = metrics.New("tracker")
	})
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	return &EventTracker{
		client:       cfg.Client,
		eventHandler: cfg.EventHandl,
		errorCh:      cfg.ErrorCh,
		filter: ethereum.FilterQuery{
			Addresses: cfg.ContractAddresses,
			Topics:    cfg.EventHandl.GetFilterTopics(),
		},
		startBlock:     cfg.StartBlock,
		followDistance: cfg.FollowDistance,
		pollInterval:   cfg.PollInterval,
		trackerTag:     cfg.TrackerTag,
		stoppedCh:      make(chan interface{}),
	}
}

// Start runs the tracker in the background. A failure or a panic ends the run and is
// reported on the error channel.
func (f *EventTracker) Start(ctx bCtx.Ctx) {
	goroutine.RecoverableGo(
		func() {
			if err := f.loop(ctx); err != nil {
				f.errorCh <- err
			}
		},
		goroutine.WithName("tracker:"+f.trackerTag),
		goroutine.WithAfterRecovered(func(p interface{}, _ []byte) {
			f.errorCh <- xerrors.Errorf("tracker panic: %v", p)
		}),
		goroutine.WithAfterEnded(func() {
			close(f.stoppedCh)
		}),
	)
}

func (f *EventTracker) Wait() {
	<-f.stoppedCh
}

func (f *EventTracker) loop(ctx bCtx.Ctx) error {
	ctx = bCtx.WithLogField(ctx, "tracker", f.trackerTag)
	if err := f.setup(ctx); err != nil {
		ctx.WithField("err", err).Error("setup failed")
		return err
	}

	ticker := time.NewTicker(f.pollInterval)
	defer ticker.Stop()
	for {
		if err := f.poll(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			ctx.WithField("err", err).Error("f.poll failed")
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (f *EventTracker) setup(ctx bCtx.Ctx) error {
	if f.startBlock > 0 {
		f.next = f.startBlock
		return nil
	}
	current, err := f.client.BlockNumber(ctx)
	if err != nil {
		return err
	}
	f.next = f.target(current) + 1
	ctx.WithField("next", f.next).Info("start from head")
	return nil
}

func (f *EventTracker) target(head uint64) uint64 {
	if head < f.followDistance {
		return 0
	}
	return head - f.followDistance
}

// poll processes every block between the last processed one and the confirmed head.
func (f *EventTracker) poll(ctx bCtx.Ctx) error {
	current, err := f.client.BlockNumber(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("client.BlockNumber failed")
		return err
	}
	met.BumpAvg("blockchain.lastBlock", float64(current), "tag", f.trackerTag)

	start := f.next
	end := f.target(current)
	if end < start {
		return nil
	}
	if err := f.processBlkRange(ctx, newBlockRange(start, end)); err != nil {
		ctx.WithField("err", err).Error("f.processBlkRange failed")
		return err
	}
	ctx.Info(fmt.Sprintf("process block range start=%d end=%d next=%d", start, end, f.next))
	met.BumpAvg("lastBlock", float64(f.next-1), "tag", f.trackerTag)
	return nil
}

// processBlkRange halves a range whenever the node refuses it. Splitting stops at a single
// block, whose failure is returned as is.
func (f *EventTracker) processBlkRange(ctx bCtx.Ctx, blkRange *blockRange) error {
	ranges := []*blockRange{blkRange}
	for len(ranges) > 0 {
		idx := len(ranges) - 1
		r := ranges[idx]
		ranges = ranges[:idx]

		filter := f.filter
		filter.FromBlock = r.fromBlock()
		filter.ToBlock = r.toBlock()
		tCtx, cancel := bCtx.WithTimeout(ctx, TooManyLogsTimeout)
		logs, err := f.client.FilterLogs(tCtx, filter)
		cancel()
		if err != nil {
			if r.single() {
				ctx.WithFields(log.Fields{
					"err":   err,
					"begin": r.begin,
					"end":   r.end,
				}).Error("failed to get logs within one block")
				return err
			}
			r1, r2 := r.split()
			ranges = append(ranges, r2, r1)
			ctx.WithFields(log.Fields{
				"originalRange": r.String(),
				"range1":        r1.String(),
				"range2":        r2.String(),
			}).Info("splitting blockRange")
			continue
		}
		ctx.WithFields(log.Fields{
			"beginBlock": r.begin,
			"endBlock":   r.end,
			"#logs":      len(logs),
		}).Info(fmt.Sprintf("recieved #%d logs", len(logs)))

		logsWithBlockTime, err := f.toLogsWithBlockTime(ctx, logs)
		if err != nil {
			ctx.WithField("err", err).Error("f.toLogsWithBlockTime failed")
			return xerrors.Errorf("failed to inject block time: %w", err)
		}
		if len(logsWithBlockTime) > 0 {
			if err := f.eventHandler.ProcessEvents(ctx, logsWithBlockTime); err != nil {
				return xerrors.Errorf("failed to process events: %w", err)
			}
		}
		f.next = r.end + 1
	}
	return nil
}

// toLogsWithBlockTime looks up each block header once. Logs dropped by a reorg are left out.
func (f *EventTracker) toLogsWithBlockTime(ctx bCtx.Ctx, logs []types.Log) ([]logWithBlockTime, error) {
	var (
		lastBlk  uint64
		lastTime time.Time
	)
	logsWithTime := make([]logWithBlockTime, 0, len(logs))
	for _, l := range logs {
		if l.Removed {
			continue
		}
		if lastTime.IsZero() || lastBlk != l.BlockNumber {
			h, err := f.client.HeaderByNumber(ctx, new(big.Int).SetUint64(l.BlockNumber))
			if err != nil {
				ctx.WithFields(log.Fields{
					"err":    err,
					"number": l.BlockNumber,
				}).Error("client.HeaderByNumber failed")
				return nil, err
			}
			lastBlk = l.BlockNumber
			lastTime = time.Unix(int64(h.Time), 0)
		}
		logsWithTime = append(logsWithTime, logWithBlockTime{Log: l, blockTime: lastTime})
	}
	return logsWithTime, nil
}
