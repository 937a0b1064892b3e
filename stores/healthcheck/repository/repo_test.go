package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/x-xyz/gameanalytics/base/ctx"
	"github.com/x-xyz/gameanalytics/domain/event"
	"github.com/x-xyz/gameanalytics/domain/keys"
	"github.com/x-xyz/gameanalytics/domain/mocks"
	"github.com/x-xyz/gameanalytics/service/cache/provider/primitive"
)

func TestPing(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	cache := primitive.NewPrimitive("healthcheck", 1)
	events := &mocks.EventRepo{}
	events.On("Snapshot", c).Return(&event.Snapshot{Revision: "r"}, nil).Once()
	events.On("Snapshot", c).Return(nil, errors.New("down")).Once()

	repo := New(cache, events)
	req.NoError(repo.PingCache(c))
	val, _, err := cache.Get(c, keys.RedisKey(keys.PfxHealthCheck, "testset"))
	req.NoError(err)
	req.Equal([]byte("1"), val)

	req.NoError(repo.PingEvents(c))
	req.Error(repo.PingEvents(c))
}
