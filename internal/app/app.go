package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/techcart/storefront/config"
	"github.com/techcart/storefront/internal/adapter/cli"
	"github.com/techcart/storefront/internal/adapter/kafka"
	"github.com/techcart/storefront/internal/adapter/sessionfile"
	"github.com/techcart/storefront/internal/adapter/shopapi"
	"github.com/techcart/storefront/internal/core/port"
	"github.com/techcart/storefront/internal/core/service"
	"github.com/techcart/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type coreServices struct {
	catalog *service.Catalog
	cart    service.Cart
	auth    *service.Auth
}

type App struct {
	ctx context.Context
	cfg config.Config

	api      *shopapi.Client
	session  sessionfile.Store
	tracker  port.EventsTracker
	producer *kafka.BrowseEventsProducer

	service coreServices
	prompt  *cli.Prompt
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initOutboundAdapters()
	app.initCoreServices()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initOutboundAdapters() {
	app.api = shopapi.New(app.cfg.APIBaseURL, app.cfg.RequestTimeout)
	app.session = sessionfile.New(app.cfg.SessionFile)
	app.initEventsTracker()
}

// initEventsTracker wires the browse-events producer only when a
// broker is configured; telemetry is optional and never required for
// browsing or cart operations.
func (app *App) initEventsTracker() {
	const op = "App.initEventsTracker"

	if !app.cfg.TelemetryEnabled() {
		slog.Info("telemetry is disabled: no seed brokers configured")
		return
	}

	ctx := app.ctx
	tcfg := app.cfg.Telemetry

	srClient, err := sr.NewClient(sr.URLs(tcfg.SchemaRegistryURLs...))
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	eventSerde, err := schema.NewSerdeBrowseEventV1(
		ctx,
		schema.SubjectOpt(tcfg.Topic+"-value"),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	producer, err := kafka.NewBrowseEventsProducer(
		kafka.ProducerClientOpt(ctx, tcfg.SeedBrokers, tcfg.Topic),
		kafka.ProducerEncoderOpt(eventSerde),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.producer = &producer
	app.tracker = producer
}

func (app *App) initCoreServices() {
	clientID := app.cfg.ClientID
	if clientID == "" {
		clientID = uuid.NewString()
	}

	app.service.auth = service.NewAuth(app.api, app.session)
	app.service.cart = service.NewCart(app.api, app.session, app.tracker, clientID)
	app.service.catalog = service.NewCatalog(app.api, app.tracker, nil, clientID)
}

func (app *App) initInboundAdapters() {
	prompt := cli.NewPrompt(
		app.service.catalog,
		app.service.cart,
		app.service.auth,
		os.Stdin,
		os.Stdout,
	)
	app.service.catalog.SetView(prompt)
	app.prompt = prompt
}

func (app *App) Run(stopFn context.CancelFunc) {
	const op = "App.Run"

	if err := app.service.catalog.Initialize(app.ctx); err != nil {
		slog.Error("failed to initialize catalog", "op", op, "err", err)
	}

	go app.prompt.Run(app.ctx, stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.service.catalog.Close()
	if app.producer != nil {
		app.producer.Close()
	}

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
