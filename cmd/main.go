package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/encomendas/tracking-service/internal/app"
	"github.com/encomendas/tracking-service/internal/config"
	"github.com/encomendas/tracking-service/internal/events"
	"github.com/encomendas/tracking-service/internal/handler"
	"github.com/encomendas/tracking-service/internal/postgres"
	"github.com/encomendas/tracking-service/internal/repo"
	"github.com/encomendas/tracking-service/internal/service"
	"github.com/encomendas/tracking-service/pkg/cache"
	"github.com/encomendas/tracking-service/pkg/trm"

	"github.com/joho/godotenv"
)

func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	db, err := postgres.New(conf.Postgres)
	panicIfErr("failed to connect to db", err)
	defer db.Close()
	logger.Info("postgres connected")

	store := repo.NewPostgresRepo(db)
	txManager := trm.NewManager(db)
	orderCache := cache.NewLRUCache(conf.Cache.Capacity, conf.Cache.TTL)

	bus := events.NewBus(func(err error) {
		logger.Error("event handler failed", slog.Any("error", err))
	})

	userService := service.NewUserService(logger, txManager, store, conf.Policy)
	productService := service.NewProductService(logger, txManager, store, conf.Policy)
	orderService := service.NewOrderService(logger, txManager, store, store, store, orderCache, bus, conf.Policy)
	locationService := service.NewLocationService(logger, txManager, store, store)

	bus.SubscribeOrderCreated(locationService.HandleOrderCreated)

	httpHandler := handler.NewHTTPHandler(logger, userService, productService, orderService, locationService)
	kafkaHandler := handler.NewKafkaHandler(logger, conf.Kafka, locationService)

	app := app.New(logger, conf)

	app.SetHTTPHandlers(httpHandler)
	app.SetConsumers(kafkaHandler)
	app.SetStarters(orderCache, cacheWarmUpAdapter{svc: orderService, count: conf.Cache.Capacity})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	panicIfErr("failed to start app", app.Start(ctx))
	<-ctx.Done()
	panicIfErr("failed to stop app", app.Stop())
}

func init() {
	godotenv.Load()
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}

type warmUpper interface {
	WarmUpCache(ctx context.Context, count int) error
}

type cacheWarmUpAdapter struct {
	svc   warmUpper
	count int
}

func (a cacheWarmUpAdapter) Start(ctx context.Context) error {
	return a.svc.WarmUpCache(ctx, a.count)
}
