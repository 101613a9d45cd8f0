// Package launcher assembles and runs the Nerix game service: configuration
// merging, logging setup, engine construction and the HTTP surface.
package launcher

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/evalphobia/logrus_sentry"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/nerix-game/go-nerix/api"
	"github.com/nerix-game/go-nerix/flags"
	"github.com/nerix-game/go-nerix/gamecore"
	"github.com/nerix-game/go-nerix/integration"
)

// Run is the CLI action: it builds the service from the merged configuration
// and blocks until SIGINT/SIGTERM.
func Run(ctx *cli.Context) error {
	cfg := MakeConfig(ctx)

	preset, err := integration.GetPresetByName(cfg.Preset)
	if err != nil {
		return err
	}

	log, err := setupLogging(cfg, preset)
	if err != nil {
		return err
	}

	gen, err := MakeGenesis(cfg)
	if err != nil {
		return err
	}

	opts := []gamecore.Option{
		gamecore.WithLogger(log),
		gamecore.WithHistoryRetention(preset.HistoryRetention),
	}
	registry := prometheus.NewRegistry()
	if cfg.Metrics || preset.EnableMetrics {
		opts = append(opts, gamecore.WithMetrics(gamecore.NewMetrics(registry)))
	}

	game, err := gamecore.NewGame(gen, opts...)
	if err != nil {
		return err
	}
	defer game.Stop()

	rpcSrv := rpc.NewServer()
	defer rpcSrv.Stop()
	if err := api.Register(rpcSrv, game); err != nil {
		return err
	}

	router := mux.NewRouter()
	router.Handle("/", rpcSrv).Methods(http.MethodPost)
	router.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":%q,"iteration":%d}`, game.State().String(), game.IterationState().Ordinal)
	}).Methods(http.MethodGet)
	if cfg.Metrics || preset.EnableMetrics {
		router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}
	if preset.EnableTracing {
		router.Use(tracingMiddleware(log))
	}

	addr := fmt.Sprintf("%s:%d", cfg.HTTPAddr, cfg.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"addr":    addr,
			"network": gen.Rules.Name,
			"preset":  preset.Name,
		}).Info("service listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.WithField("signal", sig.String()).Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// setupLogging configures the process-wide logrus logger per config and
// preset, attaching a Sentry hook when a DSN is provided.
func setupLogging(cfg Config, preset integration.PresetConfig) (*logrus.Logger, error) {
	log := logrus.StandardLogger()

	if cfg.LogFormat == "json" && !preset.PrettyLogs {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if cfg.LogVerbosity >= 0 && cfg.LogVerbosity <= 5 {
		log.SetLevel(logrus.AllLevels[cfg.LogVerbosity])
	}

	if cfg.SentryDSN != "" {
		hook, err := logrus_sentry.NewSentryHook(cfg.SentryDSN, []logrus.Level{
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
		})
		if err != nil {
			return nil, fmt.Errorf("sentry hook: %w", err)
		}
		hook.Timeout = 3 * time.Second
		log.AddHook(hook)
	}

	return log, nil
}

// tracingMiddleware logs every inbound request at debug level.
func tracingMiddleware(log *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.WithFields(logrus.Fields{
				"method": r.Method,
				"path":   r.URL.Path,
				"took":   time.Since(start).String(),
			}).Debug("request served")
		})
	}
}

// App builds the CLI application wired to Run.
func App() *cli.App {
	app := flags.NewApp()
	app.Action = Run
	return app
}
