package keys

import (
	"strconv"
	"strings"
	"time"
)

const (
	// PfxDashboard prefixes memoized dashboards
	PfxDashboard = "dashboard"
	// PfxHealthCheck is used for prefixing health check keys
	PfxHealthCheck = "healthcheck"
)

// CustomKey is used to join the customized key by componets with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// RedisKey is used to join the redis key by componets
func RedisKey(components ...string) string {
	return CustomKey(":", components...)
}

// DashboardKey identifies one dashboard computation: the event snapshot it was built from
// and the reference time it was anchored to.
func DashboardKey(revision string, reference time.Time) string {
	return RedisKey(revision, strconv.FormatInt(reference.Unix(), 10))
}
