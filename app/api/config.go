package main

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"

	"github.com/x-xyz/gameanalytics/base/ctx"
	"github.com/x-xyz/gameanalytics/base/database/redisclient"
	"github.com/x-xyz/gameanalytics/domain"
	"github.com/x-xyz/gameanalytics/domain/economy"
	"github.com/x-xyz/gameanalytics/domain/keys"
	"github.com/x-xyz/gameanalytics/service/cache"
	"github.com/x-xyz/gameanalytics/service/cache/layered"
	"github.com/x-xyz/gameanalytics/service/cache/provider"
	"github.com/x-xyz/gameanalytics/service/cache/provider/primitive"
	redisCache "github.com/x-xyz/gameanalytics/service/cache/provider/redis"
)

func setDefaults() {
	viper.SetDefault("app_name", "gameanalytics")
	viper.SetDefault("server.address", ":9090")
	viper.SetDefault("events.maxEvents", 0)

	viper.SetDefault("cache.provider", "primitive")
	viper.SetDefault("cache.sizeMB", 128)
	viper.SetDefault("cache.ttl", 10*time.Minute)
	viper.SetDefault("cache.granularity", time.Minute)
	viper.SetDefault("cache.localSizeMB", 0)
	viper.SetDefault("cache.localTtl", time.Minute)

	viper.SetDefault("economy.lootboxPrice", "0.1")
	viper.SetDefault("economy.days", 30)
	viper.SetDefault("economy.leaderboardSize", 10)
	viper.SetDefault("economy.whaleListSize", 20)
	viper.SetDefault("economy.recentLimit", 20)
	viper.SetDefault("economy.recentPerSource", 10)
	viper.SetDefault("economy.whaleThreshold", 10)
	viper.SetDefault("economy.dolphinThreshold", 1)
	viper.SetDefault("economy.location", "UTC")

	viper.SetDefault("tracker.enabled", false)
	viper.SetDefault("tracker.followDistance", 2)
	viper.SetDefault("tracker.pollInterval", 10*time.Second)
	viper.SetDefault("tracker.maxConcurrentRpc", 4)
}

// loadConfig reads the file named by --config on top of the defaults.
func loadConfig(args []string) error {
	flags := pflag.NewFlagSet("api", pflag.ContinueOnError)
	configFile := flags.String("config", "infra/configs/config.yaml", "path to the yaml config")
	if err := flags.Parse(args); err != nil {
		return err
	}

	setDefaults()
	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	return viper.ReadInConfig()
}

type tokenConfig struct {
	Id        uint64 `mapstructure:"id"`
	Name      string `mapstructure:"name"`
	Rarity    string `mapstructure:"rarity"`
	UnitValue string `mapstructure:"unitValue"`
}

// economyConfig builds the aggregation config. The token registry is only replaced when
// economy.tokens is set.
func economyConfig() (economy.Config, error) {
	cfg := economy.DefaultConfig()

	price, err := decimal.NewFromString(viper.GetString("economy.lootboxPrice"))
	if err != nil {
		return cfg, xerrors.Errorf("economy.lootboxPrice: %w", err)
	}
	cfg.LootboxPrice = price
	cfg.Days = viper.GetInt("economy.days")
	cfg.LeaderboardSize = viper.GetInt("economy.leaderboardSize")
	cfg.WhaleListSize = viper.GetInt("economy.whaleListSize")
	cfg.RecentLimit = viper.GetInt("economy.recentLimit")
	cfg.RecentPerSource = viper.GetInt("economy.recentPerSource")
	cfg.WhaleThreshold = viper.GetFloat64("economy.whaleThreshold")
	cfg.DolphinThreshold = viper.GetFloat64("economy.dolphinThreshold")
	if cfg.Days <= 0 || cfg.LeaderboardSize < 0 || cfg.WhaleListSize < 0 || cfg.RecentPerSource < 0 {
		return cfg, xerrors.Errorf("economy sizes must not be negative: %w", domain.ErrBadParamInput)
	}

	loc, err := time.LoadLocation(viper.GetString("economy.location"))
	if err != nil {
		return cfg, xerrors.Errorf("economy.location: %w", err)
	}
	cfg.Location = loc

	if !viper.IsSet("economy.tokens") {
		return cfg, nil
	}
	tokens := []tokenConfig{}
	if err := viper.UnmarshalKey("economy.tokens", &tokens); err != nil {
		return cfg, xerrors.Errorf("economy.tokens: %w", err)
	}
	cfg.Tokens = make([]economy.Token, 0, len(tokens))
	for _, t := range tokens {
		value, err := decimal.NewFromString(t.UnitValue)
		if err != nil {
			return cfg, xerrors.Errorf("unit value of token %d: %w", t.Id, err)
		}
		cfg.Tokens = append(cfg.Tokens, economy.Token{
			Id:        domain.TokenId(t.Id),
			Name:      t.Name,
			Rarity:    t.Rarity,
			UnitValue: value,
		})
	}
	return cfg, nil
}

func newCacheProvider(c ctx.Ctx) (provider.Provider, error) {
	switch name := viper.GetString("cache.provider"); name {
	case "primitive":
		sizeMB := viper.GetInt("cache.sizeMB")
		if sizeMB <= 0 {
			return nil, xerrors.Errorf("cache.sizeMB %d: %w", sizeMB, domain.ErrInvalidCacheConfig)
		}
		c.WithField("sizeMB", sizeMB).Info("init in-process cache")
		return primitive.NewPrimitive("dashboard", sizeMB), nil
	case "redis":
		c.Info("init redis cache")
		pool := redisclient.MustConnectRedis(
			viper.GetString("redis_cache.uri"),
			viper.GetString("redis_cache.password"),
			redisclient.RedisParam{PoolMultiplier: viper.GetFloat64("redis_cache.poolMultiplier")},
		)
		return redisCache.NewRedis(pool), nil
	default:
		return nil, xerrors.Errorf("cache.provider %q: %w", name, domain.ErrInvalidCacheConfig)
	}
}

// newDashboardCache puts an in-process layer in front of the shared provider when
// cache.localSizeMB is set. Replicas then only reach redis on a local miss.
func newDashboardCache(c ctx.Ctx, shared provider.Provider) cache.Service {
	remote := cache.New(cache.ServiceConfig{
		Ttl:   viper.GetDuration("cache.ttl"),
		Pfx:   keys.PfxDashboard,
		Cache: shared,
	})
	sizeMB := viper.GetInt("cache.localSizeMB")
	if sizeMB <= 0 || viper.GetString("cache.provider") == "primitive" {
		return remote
	}

	c.WithField("sizeMB", sizeMB).Info("init local cache layer")
	local := cache.New(cache.ServiceConfig{
		Ttl:   viper.GetDuration("cache.localTtl"),
		Pfx:   keys.PfxDashboard,
		Cache: primitive.NewPrimitive("dashboard-local", sizeMB),
	})
	return layered.New(local, remote)
}
