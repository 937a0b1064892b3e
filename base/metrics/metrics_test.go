package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type record struct {
	kind string
	name string
	val  float64
	tags []string
}

type recordingClient struct {
	records []record
}

func (r *recordingClient) Gauge(name string, value float64, tags []string, rate float64) error {
	r.records = append(r.records, record{"gauge", name, value, tags})
	return nil
}

func (r *recordingClient) Count(name string, value int64, tags []string, rate float64) error {
	r.records = append(r.records, record{"count", name, float64(value), tags})
	return nil
}

func (r *recordingClient) Histogram(name string, value float64, tags []string, rate float64) error {
	r.records = append(r.records, record{"histogram", name, value, tags})
	return nil
}

func (r *recordingClient) TimeInMilliseconds(name string, value float64, tags []string, rate float64) error {
	r.records = append(r.records, record{"time", name, value, tags})
	return nil
}

func TestMetrics(t *testing.T) {
	req := require.New(t)
	cli := &recordingClient{}
	mt := NewWithClient("economy", cli)

	mt.BumpSum("skipped", 3, "kind", "transfer")
	mt.BumpAvg("events", 10)
	mt.BumpTime("build.time").End()

	req.Len(cli.records, 3)
	req.Equal("count", cli.records[0].kind)
	req.Equal("economy.skipped", cli.records[0].name)
	req.Equal(float64(3), cli.records[0].val)
	req.Contains(cli.records[0].tags, "kind:transfer")
	req.Equal("economy.events", cli.records[1].name)
	req.Equal("time", cli.records[2].kind)
	req.Equal("economy.build.time", cli.records[2].name)
}

func TestParseTag(t *testing.T) {
	req := require.New(t)
	req.Equal([]string{"a:b", "c:d"}, parseTag([]string{"a", "b", "c", "d"}))
	req.Equal([]string{"a:b"}, parseTag([]string{"a", "b", "c"}))
	req.Empty(parseTag(nil))
}
