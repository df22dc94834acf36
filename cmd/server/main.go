// Package main is the entry point for the service. It wires all dependencies
// using samber/do v2, starts the HTTP server, and handles graceful shutdown
// on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/samber/do/v2"

	adapthttp "github.com/jsamuelsen11/todo-service/internal/adapters/http"
	"github.com/jsamuelsen11/todo-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/todo-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/todo-service/internal/adapters/memory"
	"github.com/jsamuelsen11/todo-service/internal/adapters/sqlstore"

	"github.com/jsamuelsen11/todo-service/internal/platform/config"
	"github.com/jsamuelsen11/todo-service/internal/platform/database"
	"github.com/jsamuelsen11/todo-service/internal/platform/health"
	"github.com/jsamuelsen11/todo-service/internal/platform/logging"
	"github.com/jsamuelsen11/todo-service/internal/platform/telemetry"
	"github.com/jsamuelsen11/todo-service/internal/ports"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
	storageOpenTimeout    = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env file is optional; real environment variables take precedence.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, dev, qa, prod)")
	}

	// Bootstrap: config, logger, telemetry.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx := context.Background()
	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)

	registerStorage(injector, cfg, logger)
	registerDependencies(injector, cfg, logger)

	// Resolve the server (eagerly wires the full graph).
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	// The database, when configured, doubles as a readiness check.
	var db *database.DB
	if cfg.Storage.Driver != config.DriverMemory {
		db = do.MustInvoke[*database.DB](injector)
		registry := do.MustInvoke[ports.HealthRegistry](injector)
		registry.Register(db)
	}

	logger.Info("storage ready", slog.String("driver", cfg.Storage.Driver))

	// Bind before serving so a taken port fails startup.
	if err := server.Listen(); err != nil {
		closeDB(db, logger)
		return err
	}

	// Start server in background.
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Wait for shutdown signal or server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		closeDB(db, logger)
		return fmt.Errorf("server failed: %w", err)
	}

	// Graceful shutdown: drain HTTP requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	// Wait for Start() goroutine to return.
	<-serverErr

	closeDB(db, logger)

	// Flush telemetry.
	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
	return nil
}

func closeDB(db *database.DB, logger *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Error("database close error", slog.Any("error", err))
	}
}

// otelProviders bundles OpenTelemetry provider lifecycle. All fields are nil
// when telemetry is disabled.
type otelProviders struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

// Shutdown flushes both providers. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		return &otelProviders{}, nil
	}

	tp, err := telemetry.InitTracer(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp, cfg.Telemetry.ServiceName)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:  tp,
		meter:   mp,
		metrics: metrics,
	}, nil
}

// registerStorage provides the repository ports for the configured driver.
func registerStorage(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	if cfg.Storage.Driver == config.DriverMemory {
		store := memory.NewStore()
		do.ProvideValue[ports.TodoRepository](injector, store.Todos)
		do.ProvideValue[ports.LabelRepository](injector, store.Labels)
		return
	}

	do.Provide(injector, func(i do.Injector) (*database.DB, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		ctx, cancel := context.WithTimeout(context.Background(), storageOpenTimeout)
		defer cancel()

		db, err := database.Open(ctx, &cfg.Storage, metrics, logger)
		if err != nil {
			return nil, fmt.Errorf("opening %s database: %w", cfg.Storage.Driver, err)
		}

		if cfg.Storage.AutoMigrate {
			if err := sqlstore.Migrate(ctx, db); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("migrating schema: %w", err)
			}
			logger.Info("schema migrated")
		}
		return db, nil
	})

	do.Provide(injector, func(i do.Injector) (*sqlstore.Store, error) {
		db, err := do.Invoke[*database.DB](i)
		if err != nil {
			return nil, err
		}
		return sqlstore.NewStore(db), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.TodoRepository, error) {
		store := do.MustInvoke[*sqlstore.Store](i)
		return store.Todos, nil
	})

	do.Provide(injector, func(i do.Injector) (ports.LabelRepository, error) {
		store := do.MustInvoke[*sqlstore.Store](i)
		return store.Labels, nil
	})
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.TodoHandler, error) {
		todos, err := do.Invoke[ports.TodoRepository](i)
		if err != nil {
			return nil, err
		}
		return handlers.NewTodoHandler(todos), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.LabelHandler, error) {
		labels, err := do.Invoke[ports.LabelRepository](i)
		if err != nil {
			return nil, err
		}
		return handlers.NewLabelHandler(labels), nil
	})

	do.Provide(injector, func(_ do.Injector) (*handlers.RootHandler, error) {
		return handlers.NewRootHandler(), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		todoH, err := do.Invoke[*handlers.TodoHandler](i)
		if err != nil {
			return nil, err
		}
		labelH, err := do.Invoke[*handlers.LabelHandler](i)
		if err != nil {
			return nil, err
		}
		rootH := do.MustInvoke[*handlers.RootHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		return adapthttp.NewRouter(todoH, labelH, rootH, healthH, middleware.Stack(middleware.StackConfig{
			Logger:  logger,
			Metrics: metrics,
			CORS:    cfg.CORS,
			Timeout: cfg.Server.WriteTimeout,
		})...), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler, err := do.Invoke[nethttp.Handler](i)
		if err != nil {
			return nil, err
		}
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}
