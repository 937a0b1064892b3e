/*Package metrics wraps datadog-go to faciliate metric recording
Following are naming convention of metric:
- Internal process time: *.time
- Error: *.err
- Warning: *.warn
*/
package metrics

import (
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/x-xyz/gameanalytics/base/env"
	"github.com/x-xyz/gameanalytics/base/log"
)

// Ender provides interface for BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)

	BumpTime(key string, tags ...string) Ender
}

type statsCli interface {
	Gauge(name string, value float64, tags []string, rate float64) error
	Count(name string, value int64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

// New creates a metric client with package name as prefix. Metrics go to the datadog agent
// at `datadog.host`, or to the debug log when no agent is configured.
func New(pkgName string) Service {
	return NewWithClient(pkgName, defaultClient())
}

func NewWithClient(pkgName string, cli statsCli) Service {
	return &Metrics{
		pkgName: pkgName,
		cli:     cli,
		tags: []string{
			"pod:" + env.PodName(),
			"env:" + viper.GetString("env_name"),
			"app:" + viper.GetString("app_name"),
		},
	}
}

type Metrics struct {
	pkgName string
	cli     statsCli
	tags    []string
}

func (mt *Metrics) key(key string) string {
	return mt.pkgName + "." + key
}

func (mt *Metrics) fullTags(tags []string) []string {
	res := make([]string, 0, len(mt.tags)+len(tags)/2)
	res = append(res, mt.tags...)
	return append(res, parseTag(tags)...)
}

func (mt *Metrics) report(fn, key string, val interface{}, err error) {
	if err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key, "val": val, "func": fn}).Error("Bump fail")
	}
}

// BumpAvg bumps the average for the given key.
func (mt *Metrics) BumpAvg(key string, val float64, tags ...string) {
	k := mt.key(key)
	mt.report("BumpAvg", k, val, mt.cli.Gauge(k, val, mt.fullTags(tags), 1))
}

// BumpSum bumps the sum for the given key.
func (mt *Metrics) BumpSum(key string, val float64, tags ...string) {
	k := mt.key(key)
	mt.report("BumpSum", k, val, mt.cli.Count(k, int64(val), mt.fullTags(tags), 1))
}

// BumpHistogram bumps the histogram for the given key.
func (mt *Metrics) BumpHistogram(key string, val float64, tags ...string) {
	k := mt.key(key)
	mt.report("BumpHistogram", k, val, mt.cli.Histogram(k, val, mt.fullTags(tags), 1))
}

// BumpTime starts a timer, End reports it:
//
//     defer s.BumpTime("my.function").End()
func (mt *Metrics) BumpTime(key string, tags ...string) Ender {
	return &timeTracker{
		mt:    mt,
		key:   mt.key(key),
		tags:  mt.fullTags(tags),
		start: time.Now(),
	}
}

type timeTracker struct {
	mt    *Metrics
	key   string
	tags  []string
	start time.Time
}

func (t *timeTracker) End() {
	dur := float64(time.Since(t.start)) / float64(time.Millisecond)
	t.mt.report("BumpTime", t.key, dur, t.mt.cli.TimeInMilliseconds(t.key, dur, t.tags, 1))
}

func parseTag(tags []string) []string {
	if len(tags)%2 != 0 {
		log.Log().WithField("tags", strings.Join(tags, ",")).Warn("tag length needs to be multiple of 2, dropping the last one")
		tags = tags[:len(tags)-1]
	}
	arr := make([]string, len(tags)/2)
	for i := 0; i < len(tags); i += 2 {
		arr[i/2] = tags[i] + ":" + tags[i+1]
	}
	return arr
}
