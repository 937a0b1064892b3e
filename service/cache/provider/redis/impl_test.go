package redis

import (
	"context"
	"testing"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/gameanalytics/base/ctx"
	"github.com/x-xyz/gameanalytics/service/cache/provider"
)

var (
	mockCtx = ctx.Background()
)

// fakeConn answers the handful of commands the provider sends.
type fakeConn struct {
	data map[string][]byte
	ttl  map[string]int64
}

func (f *fakeConn) Close() error { return nil }
func (f *fakeConn) Err() error   { return nil }
func (f *fakeConn) Send(string, ...interface{}) error {
	return nil
}
func (f *fakeConn) Flush() error                  { return nil }
func (f *fakeConn) Receive() (interface{}, error) { return nil, nil }

func (f *fakeConn) Do(cmd string, args ...interface{}) (interface{}, error) {
	key := args[0].(string)
	switch cmd {
	case "GET":
		v, ok := f.data[key]
		if !ok {
			return nil, nil
		}
		return v, nil
	case "TTL":
		if _, ok := f.data[key]; !ok {
			return int64(-2), nil
		}
		if t, ok := f.ttl[key]; ok {
			return t, nil
		}
		return int64(-1), nil
	case "SET":
		f.data[key] = args[1].([]byte)
		if len(args) == 4 {
			f.ttl[key] = args[3].(int64)
		}
		return "OK", nil
	case "DEL":
		delete(f.data, key)
		delete(f.ttl, key)
		return int64(1), nil
	}
	return nil, redis.Error("unknown command")
}

type fakePool struct {
	conn *fakeConn
}

func (p *fakePool) GetContext(context.Context) (redis.Conn, error) {
	return p.conn, nil
}

type testsuite struct {
	suite.Suite
	conn *fakeConn
	im   provider.Provider
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) SetupTest() {
	ts.conn = &fakeConn{data: map[string][]byte{}, ttl: map[string]int64{}}
	ts.im = NewRedis(&fakePool{ts.conn})
}

func (ts *testsuite) TestGetMissing() {
	_, _, err := ts.im.Get(mockCtx, "missing")
	ts.Equal(provider.ErrNotFound, err)
}

func (ts *testsuite) TestSetGet() {
	ts.NoError(ts.im.Set(mockCtx, "key", []byte("value"), time.Minute))
	ts.Equal(int64(60), ts.conn.ttl["key"])

	val, ttl, err := ts.im.Get(mockCtx, "key")
	ts.NoError(err)
	ts.Equal([]byte("value"), val)
	ts.Equal(time.Minute, ttl)
}

func (ts *testsuite) TestSetWithoutTtl() {
	ts.NoError(ts.im.Set(mockCtx, "key", []byte("value"), 0))
	_, ok := ts.conn.ttl["key"]
	ts.False(ok)

	_, ttl, err := ts.im.Get(mockCtx, "key")
	ts.NoError(err)
	ts.Equal(time.Duration(0), ttl)
}

func (ts *testsuite) TestDel() {
	ts.NoError(ts.im.Set(mockCtx, "key", []byte("value"), time.Minute))
	ts.NoError(ts.im.Del(mockCtx, "key"))
	_, _, err := ts.im.Get(mockCtx, "key")
	ts.Equal(provider.ErrNotFound, err)
}
