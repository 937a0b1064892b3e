package tracker

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	bCtx "github.com/x-xyz/gameanalytics/base/ctx"
	"github.com/x-xyz/gameanalytics/domain/mocks"
)

type recordingHandler struct {
	logs []logWithBlockTime
	err  error
}

func (h *recordingHandler) GetFilterTopics() [][]common.Hash {
	return [][]common.Hash{{transferSingle}}
}

func (h *recordingHandler) ProcessEvents(_ bCtx.Ctx, logs []logWithBlockTime) error {
	h.logs = append(h.logs, logs...)
	return h.err
}

func blocks(from, to uint64) interface{} {
	return mock.MatchedBy(func(q ethereum.FilterQuery) bool {
		return q.FromBlock.Uint64() == from && q.ToBlock.Uint64() == to
	})
}

func header(ts uint64) *types.Header {
	return &types.Header{Time: ts}
}

func newTestTracker(client *mocks.EthClientRepo, handler EventHandler) *EventTracker {
	return NewEventTracker(&EventTrackerCfg{
		Client:         client,
		EventHandl:     handler,
		ErrorCh:        make(chan error, 1),
		StartBlock:     1,
		FollowDistance: 2,
		PollInterval:   10 * time.Millisecond,
		TrackerTag:     "test",
	})
}

func TestEventTracker_processBlkRange(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	client := new(mocks.EthClientRepo)
	handler := &recordingHandler{}
	f := newTestTracker(client, handler)

	client.On("FilterLogs", mock.Anything, blocks(1, 4)).Return(nil, errors.New("too many logs")).Once()
	client.On("FilterLogs", mock.Anything, blocks(1, 2)).Return([]types.Log{
		{BlockNumber: 1, Index: 0},
		{BlockNumber: 1, Index: 1},
		{BlockNumber: 2, Index: 0, Removed: true},
	}, nil).Once()
	client.On("FilterLogs", mock.Anything, blocks(3, 4)).Return([]types.Log{
		{BlockNumber: 4, Index: 3},
	}, nil).Once()
	client.On("HeaderByNumber", mock.Anything, big.NewInt(1)).Return(header(1000), nil).Once()
	client.On("HeaderByNumber", mock.Anything, big.NewInt(4)).Return(header(2000), nil).Once()

	req.NoError(f.processBlkRange(ctx, newBlockRange(1, 4)))
	req.Equal(uint64(5), f.next)
	req.Len(handler.logs, 3)
	req.Equal(time.Unix(1000, 0), handler.logs[0].blockTime)
	req.Equal(time.Unix(1000, 0), handler.logs[1].blockTime)
	req.Equal(time.Unix(2000, 0), handler.logs[2].blockTime)
	client.AssertExpectations(t)
}

func TestEventTracker_processBlkRangeSingleBlockFails(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	client := new(mocks.EthClientRepo)
	f := newTestTracker(client, &recordingHandler{})
	f.next = 7

	errBoom := errors.New("boom")
	client.On("FilterLogs", mock.Anything, blocks(7, 8)).Return(nil, errBoom).Once()
	client.On("FilterLogs", mock.Anything, blocks(7, 7)).Return([]types.Log{}, nil).Once()
	client.On("FilterLogs", mock.Anything, blocks(8, 8)).Return(nil, errBoom).Once()

	err := f.processBlkRange(ctx, newBlockRange(7, 8))
	req.Equal(errBoom, err)
	// block 7 went through before 8 failed
	req.Equal(uint64(8), f.next)
}

func TestEventTracker_poll(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	client := new(mocks.EthClientRepo)
	f := newTestTracker(client, &recordingHandler{})
	f.next = 5

	client.On("BlockNumber", mock.Anything).Return(uint64(10), nil).Once()
	client.On("FilterLogs", mock.Anything, blocks(5, 8)).Return([]types.Log{}, nil).Once()
	req.NoError(f.poll(ctx))
	req.Equal(uint64(9), f.next)

	// nothing confirmed since
	client.On("BlockNumber", mock.Anything).Return(uint64(10), nil).Once()
	req.NoError(f.poll(ctx))
	req.Equal(uint64(9), f.next)
	client.AssertExpectations(t)
}

func TestEventTracker_setupFromHead(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	client := new(mocks.EthClientRepo)
	f := newTestTracker(client, &recordingHandler{})
	f.startBlock = 0

	client.On("BlockNumber", mock.Anything).Return(uint64(100), nil).Once()
	req.NoError(f.setup(ctx))
	req.Equal(uint64(99), f.next)
}

func TestEventTracker_StartStop(t *testing.T) {
	req := require.New(t)
	client := new(mocks.EthClientRepo)
	errCh := make(chan error, 1)
	f := NewEventTracker(&EventTrackerCfg{
		Client:         client,
		EventHandl:     &recordingHandler{},
		ErrorCh:        errCh,
		StartBlock:     1,
		FollowDistance: 5,
		PollInterval:   5 * time.Millisecond,
	})
	client.On("BlockNumber", mock.Anything).Return(uint64(3), nil)

	ctx, cancel := bCtx.WithCancel(bCtx.Background())
	f.Start(ctx)
	time.Sleep(30 * time.Millisecond)
	cancel()
	f.Wait()
	req.Empty(errCh)
}

func TestEventTracker_StartReportsError(t *testing.T) {
	req := require.New(t)
	client := new(mocks.EthClientRepo)
	errCh := make(chan error, 1)
	f := NewEventTracker(&EventTrackerCfg{
		Client:     client,
		EventHandl: &recordingHandler{},
		ErrorCh:    errCh,
	})
	errBoom := errors.New("boom")
	client.On("BlockNumber", mock.Anything).Return(uint64(0), errBoom)

	f.Start(bCtx.Background())
	f.Wait()
	req.Equal(errBoom, <-errCh)
}
