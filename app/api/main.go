package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/x-xyz/gameanalytics/base/ctx"
	"github.com/x-xyz/gameanalytics/base/ethereum"
	"github.com/x-xyz/gameanalytics/base/goroutine"
	"github.com/x-xyz/gameanalytics/base/log"
	"github.com/x-xyz/gameanalytics/base/metrics"
	"github.com/x-xyz/gameanalytics/base/tracker"
	bValidator "github.com/x-xyz/gameanalytics/base/validator"
	"github.com/x-xyz/gameanalytics/domain/event"
	mmiddleware "github.com/x-xyz/gameanalytics/middleware"
	economy_delivery "github.com/x-xyz/gameanalytics/stores/economy/delivery/http"
	economy_usecase "github.com/x-xyz/gameanalytics/stores/economy/usecase"
	event_delivery "github.com/x-xyz/gameanalytics/stores/event/delivery/http"
	event_repository "github.com/x-xyz/gameanalytics/stores/event/repository"
	event_usecase "github.com/x-xyz/gameanalytics/stores/event/usecase"
	hc_delivery "github.com/x-xyz/gameanalytics/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/gameanalytics/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/gameanalytics/stores/healthcheck/usecase"
)

func main() {
	if err := loadConfig(os.Args[1:]); err != nil {
		panic(err)
	}
	if err := log.Init(viper.GetBool("debug")); err != nil {
		panic(err)
	}
	defer log.Sync()

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}

	context, cancel := ctx.WithCancel(ctx.Background())
	defer cancel()

	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware(metrics.New("http"))
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	// init cache
	cacheProvider, err := newCacheProvider(context)
	if err != nil {
		context.WithField("err", err).Panic("newCacheProvider failed")
	}
	dashboardCache := newDashboardCache(context, cacheProvider)

	// event store
	eventRepo := event_repository.NewMemoryRepo(viper.GetInt("events.maxEvents"))
	eventUseCase := event_usecase.New(eventRepo)

	// economy
	economyCfg, err := economyConfig()
	if err != nil {
		context.WithField("err", err).Panic("economyConfig failed")
	}
	economyUseCase := economy_usecase.New(&economy_usecase.EconomyUseCaseCfg{
		Events:      eventUseCase,
		Aggregator:  economy_usecase.NewAggregator(economyCfg),
		Cache:       dashboardCache,
		Metrics:     metrics.New("economy"),
		Granularity: viper.GetDuration("cache.granularity"),
	})

	hcRepo := hc_repo.New(cacheProvider, eventRepo)
	hcUsecase := hc_usecase.New(hcRepo)

	hc_delivery.New(e, hcUsecase)
	economy_delivery.New(e, economyUseCase)
	event_delivery.New(e, eventUseCase)

	errCh := make(chan error, 1)
	if viper.GetBool("tracker.enabled") {
		startTracker(context, eventUseCase, errCh)
	}

	goroutine.RecoverableGo(func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
			errCh <- err
		}
	}, goroutine.WithName("echo"))

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	select {
	case sig := <-quit:
		log.Log().WithField("signal", sig).Info("received signal")
	case err := <-errCh:
		log.Log().WithField("err", err).Error("background worker failed")
	}
	cancel()

	ctx, cancelShutdown := ctx.WithTimeout(ctx.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}

func startTracker(c ctx.Ctx, eventUseCase event.UseCase, errCh chan<- error) {
	rpcUrl := viper.GetString("tracker.rpcUrl")
	client, err := ethclient.DialContext(c, rpcUrl)
	if err != nil {
		c.WithField("err", err).Panic("ethclient.Dial failed")
	}

	contracts := []common.Address{}
	for _, addr := range []string{viper.GetString("tracker.gameItems"), viper.GetString("tracker.lootbox")} {
		if !bValidator.IsValidAddress(addr) {
			c.WithField("address", addr).Panic("invalid contract address")
		}
		contracts = append(contracts, common.HexToAddress(addr))
	}

	t := tracker.NewEventTracker(&tracker.EventTrackerCfg{
		Client:            ethereum.NewThrottledClient(client, viper.GetInt("tracker.maxConcurrentRpc")),
		ContractAddresses: contracts,
		EventHandl: tracker.NewGameEventHandler(&tracker.GameEventHandlerCfg{
			EventUseCase: eventUseCase,
		}),
		ErrorCh:        errCh,
		StartBlock:     viper.GetUint64("tracker.startBlock"),
		FollowDistance: viper.GetUint64("tracker.followDistance"),
		PollInterval:   viper.GetDuration("tracker.pollInterval"),
		TrackerTag:     "game",
	})
	t.Start(c)
	c.WithField("contracts", contracts).Info("tracker started")
}
