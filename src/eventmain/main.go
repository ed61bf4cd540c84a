package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/uptrace/opentelemetry-go-extra/otellogrus"

	"github.com/hilljasont-svg/Tradejournal/src/config"
	"github.com/hilljasont-svg/Tradejournal/src/eventpubsub"
	"github.com/hilljasont-svg/Tradejournal/src/journal"
	"github.com/hilljasont-svg/Tradejournal/src/router"
	"github.com/hilljasont-svg/Tradejournal/src/utils"
)

const serviceName = "trade-journal"

func main() {
	if err := run(); err != nil {
		log.Fatalf("Main: %v", err)
	}
}

func subscribe(bus *eventpubsub.Bus) error {
	if err := bus.Subscribe(eventpubsub.ExecutionsImported, func(ev *eventpubsub.ExecutionsImportedEvent) {
		log.Infof("ExecutionsImported: batch %s from %q: %d imported, %d duplicates, %d rejected", ev.BatchID, ev.Source, ev.Imported, ev.Duplicates, ev.Rejected)
	}); err != nil {
		return err
	}

	if err := bus.Subscribe(eventpubsub.LedgerRebuilt, func(ev *eventpubsub.LedgerRebuiltEvent) {
		if len(ev.FailedSymbols) > 0 {
			log.Warnf("LedgerRebuilt: symbols not matched: %v", ev.FailedSymbols)
		}

		log.Infof("LedgerRebuilt: %d executions -> %d trades, %d open positions", ev.Executions, ev.Trades, ev.OpenPositions)
	}); err != nil {
		return err
	}

	return bus.Subscribe(eventpubsub.JournalReset, func(ev *eventpubsub.JournalResetEvent) {
		log.Infof("JournalReset: cleared at %s", ev.At.Format(time.RFC3339))
	})
}

func registerPprof(router *mux.Router) {
	pprofRouter := router.PathPrefix("/debug/pprof").Subrouter()
	pprofRouter.HandleFunc("/", http.HandlerFunc(pprof.Index))
	pprofRouter.HandleFunc("/cmdline", http.HandlerFunc(pprof.Cmdline))
	pprofRouter.HandleFunc("/profile", http.HandlerFunc(pprof.Profile))
	pprofRouter.HandleFunc("/symbol", http.HandlerFunc(pprof.Symbol))
	pprofRouter.HandleFunc("/trace", http.HandlerFunc(pprof.Trace))
	pprofRouter.Handle("/goroutine", pprof.Handler("goroutine"))
	pprofRouter.Handle("/heap", pprof.Handler("heap"))
}

func run() (err error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	goEnv := os.Getenv("GO_ENV")
	if err := utils.InitEnvironmentVariables(utils.GetEnvOrDefault("ENV_DIR", "."), goEnv); err != nil {
		return fmt.Errorf("failed to init environment variables: %w", err)
	}

	cfg, err := config.NewJournalConfigFromEnv()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg.ConfigureLogger()

	// Set up OpenTelemetry.
	if cfg.OTelEnabled {
		log.AddHook(otellogrus.NewHook(otellogrus.WithLevels(
			log.PanicLevel,
			log.FatalLevel,
			log.ErrorLevel,
			log.WarnLevel,
		)))

		var otelShutdown func(context.Context) error
		if otelShutdown, err = utils.SetupOTelSDK(ctx, serviceName); err != nil {
			return fmt.Errorf("failed to setup otel sdk: %w", err)
		}

		// Handle shutdown properly so nothing leaks.
		defer func() {
			err = errors.Join(err, otelShutdown(context.Background()))
		}()
	}

	bus := eventpubsub.New()
	if err := subscribe(bus); err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	svc, err := journal.Setup(ctx, cfg, bus)
	if err != nil {
		return fmt.Errorf("failed to set up journal: %w", err)
	}

	// Setup router
	r := mux.NewRouter()
	router.SetupHandler(r.PathPrefix("/api").Subrouter(), svc)

	if cfg.GoEnv != "production" {
		registerPprof(r)
	}

	srv := &http.Server{
		Handler: router.WithCORS(cfg.CORSOrigins, r),
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	// Start web server
	go func() {
		log.Infof("listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Create channel for shutdown signals.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	log.Info("Main: init complete")

	// Block here until program is shut down
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Main: server shutdown: %v", err)
	}

	cancel()
	bus.Wait()

	log.Info("Main: gracefully stopped!")

	return nil
}
