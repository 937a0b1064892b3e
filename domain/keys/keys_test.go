package keys

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRedisKey(t *testing.T) {
	req := require.New(t)
	req.Equal("a:b:c", RedisKey("a", "b", "c"))
	req.Equal("a", RedisKey("a"))
}

func TestDashboardKey(t *testing.T) {
	req := require.New(t)
	ref := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	req.Equal("rev:1714564800", DashboardKey("rev", ref))
	req.NotEqual(DashboardKey("rev", ref), DashboardKey("rev", ref.Add(time.Minute)))
}
