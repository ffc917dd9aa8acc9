package app

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter"
	"github.com/niksmo/storefront/internal/adapter/events"
	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/adapter/restapi"
	"github.com/niksmo/storefront/internal/adapter/sessionstore"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/spf13/afero"
	"github.com/twmb/franz-go/pkg/sr"
)

type App struct {
	ctx context.Context
	cfg config.Config

	upstream   restapi.Client
	emitter    port.EventsEmitter
	sessions   *service.Sessions
	statsBoard *service.StatsBoard
	httpServer httphandler.HTTPServer

	pollWG sync.WaitGroup
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initUpstream()
	app.initEmitter()
	app.initCoreServices()
	app.initHTTPServer()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initUpstream() {
	app.upstream = restapi.NewClient(app.cfg.UpstreamBaseURL)
}

// initEmitter wires the diagnostic channel. Disabled broker means no
// emitter, sessions degrade to silent.
func (app *App) initEmitter() {
	const op = "App.initEmitter"

	if !app.cfg.Broker.Enabled {
		return
	}

	bCfg := app.cfg.Broker

	srClient, err := sr.NewClient(sr.URLs(bCfg.SchemaRegistryURLs...))
	if err != nil {
		app.fallDown(op, err)
	}

	serde, err := schema.NewSerdeClientEventV1(
		app.ctx,
		schema.SubjectOpt(bCfg.ClientEventsTopic+"-value"),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	opts := []events.ProducerOpt{
		events.ProducerEncoderOpt(serde),
	}
	if tlsCfg := app.brokerTLS(); tlsCfg != nil {
		opts = append(opts, events.ProducerTLSOpt(tlsCfg))
	}
	opts = append(opts,
		events.ProducerClientOpt(app.ctx, bCfg.SeedBrokers, bCfg.ClientEventsTopic),
	)

	emitter, err := events.NewClientEventsProducer(opts...)
	if err != nil {
		app.fallDown(op, err)
	}
	app.emitter = emitter
}

func (app *App) brokerTLS() *tls.Config {
	b := app.cfg.Broker
	if b.TLSCA == "" {
		return nil
	}
	return adapter.MakeTLSConfig(b.TLSCA, b.TLSCert, b.TLSKey)
}

func (app *App) initCoreServices() {
	app.sessions = service.NewSessions(service.SessionDeps{
		Catalog: app.upstream,
		Placer:  app.upstream,
		History: app.upstream,
		Events:  app.emitter,
		Pricing: service.Pricing{
			DeliveryFee: app.cfg.Checkout.DeliveryFee,
			TaxRate:     app.cfg.Checkout.TaxRate,
		},
	})
	app.statsBoard = service.NewStatsBoard(app.upstream, app.cfg.StatsInterval)
}

func (app *App) initHTTPServer() {
	sessionStore := sessionstore.NewFileStore(afero.NewOsFs(), app.cfg.SessionFile)

	authFlow := service.NewAuthFlow(app.upstream, sessionStore)
	returnsFlow := service.NewReturnsFlow(app.upstream)
	retailerFlow := service.NewRetailerFlow(app.upstream)

	mux := http.NewServeMux()
	httphandler.RegisterShop(mux, app.sessions, app.upstream)
	httphandler.RegisterAdmin(mux, app.statsBoard, app.upstream)
	httphandler.RegisterIntake(mux, authFlow, returnsFlow, retailerFlow)

	handler := httphandler.AllowContentTypes(mux)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	app.pollWG.Add(1)
	go app.statsBoard.Run(app.ctx, &app.pollWG)
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.pollWG.Wait()
	if app.emitter != nil {
		app.emitter.Close()
	}

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
