package metrics

import (
	"fmt"
	"sync"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/spf13/viper"

	"github.com/x-xyz/gameanalytics/base/log"
)

var (
	initOnce sync.Once
	cli      statsCli
)

func defaultClient() statsCli {
	initOnce.Do(func() {
		host := viper.GetString("datadog.host")
		if host == "" {
			cli = &LogClient{}
			return
		}
		port := viper.GetInt("datadog.port")
		if port == 0 {
			port = 8125
		}
		addr := fmt.Sprintf("%s:%d", host, port)
		c, err := statsd.New(addr)
		if err != nil {
			log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Error("can't talk to datadog agent, metrics go to log")
			cli = &LogClient{}
			return
		}
		log.Log().WithField("addr", addr).Info("connected to datadog agent")
		cli = c
	})
	return cli
}
