package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/niksmo/swimstore/config"
	"github.com/niksmo/swimstore/internal/adapter/httphandler"
	"github.com/niksmo/swimstore/internal/adapter/kafka"
	"github.com/niksmo/swimstore/internal/adapter/storage"
	"github.com/niksmo/swimstore/internal/adapter/subscache"
	"github.com/niksmo/swimstore/internal/core/discount"
	"github.com/niksmo/swimstore/internal/core/service"
	"github.com/niksmo/swimstore/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type serdes struct {
	cartEvent         schema.Serde
	subscriptionEvent schema.Serde
}

type producers struct {
	cartEvents   kafka.CartEventsProducer
	subscription kafka.SubscriptionProducer
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	serdes     serdes
	sqldb      storage.SQLDB
	producers  producers
	subProc    *kafka.SubscriptionProcessor
	subView    kafka.SubscriptionView
	subCache   subscache.Checker
	service    service.Service
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initSerdes()
	app.initStorage()
	app.initOutboundAdapters()
	app.initSubscriptionPipeline()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"
	urls := app.cfg.Broker.SchemaRegistryURLs
	ctx := app.ctx

	srClient, err := sr.NewClient(sr.URLs(urls...))
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	cartEventSS := app.cfg.Broker.Topics.CartEvents + "-value"
	cartEventSerde, err := schema.NewSerdeCartEventV1(
		ctx,
		schema.SubjectOpt(cartEventSS),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	subscriptionSS := app.cfg.Broker.Topics.SubscriptionEvents + "-value"
	subscriptionSerde, err := schema.NewSerdeSubscriptionEventV1(
		ctx,
		schema.SubjectOpt(subscriptionSS),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.serdes.cartEvent = cartEventSerde
	app.serdes.subscriptionEvent = subscriptionSerde
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	sqldb, err := storage.NewSQLDB(app.ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}
	app.sqldb = sqldb
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	ctx := app.ctx
	seedBrokers := app.cfg.Broker.SeedBrokers
	cartEventsTopic := app.cfg.Broker.Topics.CartEvents
	subscriptionTopic := app.cfg.Broker.Topics.SubscriptionEvents

	cartEventsProducer, err := kafka.NewCartEventsProducer(
		kafka.ProducerClientOpt(ctx, seedBrokers, cartEventsTopic),
		kafka.ProducerEncoderOpt(app.serdes.cartEvent),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	subscriptionProducer, err := kafka.NewSubscriptionProducer(
		kafka.ProducerClientOpt(ctx, seedBrokers, subscriptionTopic),
		kafka.ProducerEncoderOpt(app.serdes.subscriptionEvent),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.producers.cartEvents = cartEventsProducer
	app.producers.subscription = subscriptionProducer
}

func (app *App) initSubscriptionPipeline() {
	const op = "App.initSubscriptionPipeline"

	seedBrokers := app.cfg.Broker.SeedBrokers
	stream := app.cfg.Broker.Topics.SubscriptionEvents
	group := app.cfg.Broker.Consumers.SubscriptionStatusGroup

	subProc, err := kafka.NewSubscriptionProc(
		seedBrokers, stream, group, app.serdes.subscriptionEvent,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	subView, err := kafka.NewSubscriptionView(seedBrokers, group)
	if err != nil {
		app.fallDown(op, err)
	}

	subCache, err := subscache.New(
		app.ctx,
		app.cfg.Cache.RedisAddr,
		app.cfg.Cache.SubscriptionTTL,
		subView,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.subProc = subProc
	app.subView = subView
	app.subCache = subCache
}

func (app *App) initCoreService() {
	const op = "App.initCoreService"

	engine, err := discount.New(app.engineOpts()...)
	if err != nil {
		app.fallDown(op, err)
	}

	app.service = service.New(
		engine,
		nil,
		storage.NewProductsRepository(app.sqldb),
		storage.NewCartRepository(app.sqldb),
		storage.NewFavoritesRepository(app.sqldb),
		app.subCache,
		app.producers.cartEvents,
		app.subCache.Producer(app.producers.subscription),
		app.subProc,
	)
}

func (app *App) engineOpts() []discount.Opt {
	var opts []discount.Opt
	cfg := app.cfg.Discount

	if cfg.Strategy != "" {
		opts = append(opts, discount.StrategyOpt(discount.Strategy(cfg.Strategy)))
	}
	if len(cfg.Tiers) != 0 {
		opts = append(opts, discount.TiersOpt(cfg.Tiers))
	}
	if len(cfg.SelectionWeights) != 0 {
		opts = append(opts, discount.WeightsOpt(cfg.SelectionWeights))
	}
	return opts
}

func (app *App) initInboundAdapters() {
	addr := app.cfg.HTTPServerAddr
	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, app.service, app.service)
	httphandler.RegisterCart(mux, app.service, app.service)
	httphandler.RegisterFavorites(mux, app.service, app.service)
	httphandler.RegisterSubscriptions(mux, app.service)

	handler := httphandler.AllowJSON(mux)
	httpServer := httphandler.NewHTTPServer(addr, handler)
	app.httpServer = httpServer
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)
	go app.subView.Run(app.ctx)
	app.service.Run(app.ctx, stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.service.Close()
	app.producers.cartEvents.Close()
	app.producers.subscription.Close()
	app.subCache.Close()
	app.sqldb.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
