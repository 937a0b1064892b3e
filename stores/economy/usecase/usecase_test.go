package usecase

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/gameanalytics/base/ctx"
	"github.com/x-xyz/gameanalytics/base/metrics"
	"github.com/x-xyz/gameanalytics/domain"
	"github.com/x-xyz/gameanalytics/domain/economy"
	"github.com/x-xyz/gameanalytics/domain/event"
	"github.com/x-xyz/gameanalytics/domain/keys"
	"github.com/x-xyz/gameanalytics/domain/mocks"
	"github.com/x-xyz/gameanalytics/service/cache"
	"github.com/x-xyz/gameanalytics/service/cache/provider/primitive"
)

var (
	mockCtx = ctx.Background()
)

type countingClient struct {
	metrics.LogClient
	mu     sync.Mutex
	timers map[string]int
	counts map[string]int64
}

func newCountingClient() *countingClient {
	return &countingClient{timers: map[string]int{}, counts: map[string]int64{}}
}

func (cc *countingClient) Count(name string, value int64, tags []string, rate float64) error {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.counts[name] += value
	return nil
}

func (cc *countingClient) TimeInMilliseconds(name string, value float64, tags []string, rate float64) error {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.timers[name]++
	return nil
}

type testsuite struct {
	suite.Suite
	mockEvents *mocks.EventUseCase
	stats      *countingClient
	now        time.Time
	subject    *impl
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (t *testsuite) SetupTest() {
	t.mockEvents = &mocks.EventUseCase{}
	t.stats = newCountingClient()
	t.now = refTime
	t.subject = New(&EconomyUseCaseCfg{
		Events:     t.mockEvents,
		Aggregator: NewAggregator(economy.DefaultConfig()),
		Cache: cache.New(cache.ServiceConfig{
			Ttl:   time.Minute,
			Pfx:   keys.PfxDashboard,
			Cache: primitive.NewPrimitive("test", 32),
		}),
		Metrics: metrics.NewWithClient("economy", t.stats),
		Clock:   func() time.Time { return t.now },
	}).(*impl)
}

func (t *testsuite) TearDownTest() {
	t.mockEvents.AssertExpectations(t.T())
}

func (t *testsuite) builds() int {
	return t.stats.timers["economy.dashboard.build.time"]
}

func (t *testsuite) TestDashboard() {
	snap := &event.Snapshot{
		Revision: "r1",
		Transfers: []event.TransferEvent{
			mint("0x00000000000000000000000000000000000000A1", economy.TokenIdGoldCoin, 100, refTime),
			{From: "not-an-address", To: addrB, Amount: 1, TxHash: "0x1"},
		},
		Lootboxes: []event.LootboxEvent{
			opened(addrA, 0, time.Time{}),
			{Player: addrA, Amount: -1, TxHash: "0x2"},
		},
	}
	t.mockEvents.On("Snapshot", mockCtx).Return(snap, nil)

	d, err := t.subject.Dashboard(mockCtx)
	t.NoError(err)
	t.Equal("r1", d.Revision)
	t.Equal(2, d.Skipped)
	t.True(d.ReferenceTime.Equal(refTime.Truncate(time.Minute)))
	t.Require().Len(d.Leaderboard, 1)
	t.Equal(addrA, d.Leaderboard[0].Address)
	t.Equal(1, d.Stats.TotalLootboxesOpened)
	t.Equal(1, t.builds())
	t.Equal(int64(2), t.stats.counts["economy.events.skipped"])
	t.Equal(int64(1), t.stats.counts["economy.events.degraded"])
}

func (t *testsuite) TestDashboardMemoized() {
	snap := &event.Snapshot{
		Revision:  "r1",
		Transfers: []event.TransferEvent{mint(addrA, 0, 5, refTime)},
	}
	t.mockEvents.On("Snapshot", mockCtx).Return(snap, nil).Times(2)

	first, err := t.subject.Dashboard(mockCtx)
	t.NoError(err)
	t.now = t.now.Add(10 * time.Second)
	second, err := t.subject.Dashboard(mockCtx)
	t.NoError(err)

	t.Equal(1, t.builds())
	t.Equal(first.Revision, second.Revision)
	t.Equal(first.Stats, second.Stats)
	t.True(first.ReferenceTime.Equal(second.ReferenceTime))
}

func (t *testsuite) TestDashboardRebuilt() {
	t.mockEvents.On("Snapshot", mockCtx).Return(&event.Snapshot{Revision: "r1"}, nil).Times(2)
	t.mockEvents.On("Snapshot", mockCtx).Return(&event.Snapshot{
		Revision:  "r2",
		Transfers: []event.TransferEvent{mint(addrA, 0, 5, refTime)},
	}, nil).Once()

	_, err := t.subject.Dashboard(mockCtx)
	t.NoError(err)

	// reference time moved to the next minute
	t.now = t.now.Add(time.Minute)
	_, err = t.subject.Dashboard(mockCtx)
	t.NoError(err)
	t.Equal(2, t.builds())

	d, err := t.subject.Dashboard(mockCtx)
	t.NoError(err)
	t.Equal(3, t.builds())
	t.Equal("r2", d.Revision)
	t.Equal(int64(5), d.Stats.TotalMinted)
}

func (t *testsuite) TestDashboardSnapshotError() {
	errBoom := errors.New("boom")
	t.mockEvents.On("Snapshot", mockCtx).Return(nil, errBoom).Once()

	d, err := t.subject.Dashboard(mockCtx)
	t.Nil(d)
	t.True(errors.Is(err, errBoom))
}

func (t *testsuite) TestInventory() {
	t.mockEvents.On("Snapshot", mockCtx).Return(&event.Snapshot{
		Revision: "r1",
		Transfers: []event.TransferEvent{
			mint("0x00000000000000000000000000000000000000A1", economy.TokenIdLegendarySword, 2, refTime),
		},
	}, nil).Once()

	items, err := t.subject.Inventory(mockCtx, "0x00000000000000000000000000000000000000A1")
	t.NoError(err)
	t.Require().Len(items, 3)
	t.Equal(int64(2), items[1].Balance)
}

func (t *testsuite) TestInventoryBadAddress() {
	_, err := t.subject.Inventory(mockCtx, "0x1234")
	t.True(errors.Is(err, domain.ErrBadParamInput))
}
