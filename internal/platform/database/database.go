// Package database provides an instrumented database/sql handle with circuit
// breaker, rate limiting, OpenTelemetry tracing, and metrics around every
// repository operation.
//
// Each operation passes through:
//
//	Circuit Breaker → Rate Limiter → OTEL Span → fn(ctx, *sql.DB)
//
// Construction:
//
//	db, err := database.Open(ctx, &cfg.Storage, metrics, logger)
//	defer db.Close()
//
// Running an operation:
//
//	err := db.Do(ctx, "todo.find", func(ctx context.Context, conn *sql.DB) error {
//	    return conn.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Text)
//	})
//
// Domain outcomes such as not-found or duplicate are not failures: they never
// trip the breaker and never mark the span as errored.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // registers "mysql"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
	_ "modernc.org/sqlite" // registers "sqlite"

	"github.com/jsamuelsen11/todo-service/internal/domain"
	"github.com/jsamuelsen11/todo-service/internal/platform/config"
	"github.com/jsamuelsen11/todo-service/internal/platform/telemetry"
)

const checkerName = "database"

// DB wraps *sql.DB with resilience and observability for repository calls.
type DB struct {
	conn    *sql.DB
	dialect Dialect
	breaker *gobreaker.CircuitBreaker[struct{}]
	limiter *rate.Limiter // nil when rate limiting is disabled
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// Open connects to the database selected by cfg.Driver and verifies the
// connection with a ping. SQLite gets foreign key enforcement through its DSN
// so every connection the pool opens has it, and is pinned to a single
// connection so an in-memory database lives as long as the pool.
func Open(ctx context.Context, cfg *config.StorageConfig, metrics *telemetry.Metrics, logger *slog.Logger) (*DB, error) {
	dialect, err := ParseDialect(cfg.Driver)
	if err != nil {
		return nil, err
	}

	dsn := cfg.DSN
	if dialect == SQLite {
		dsn = sqliteDSN(dsn)
	}

	conn, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", dialect, err)
	}

	if dialect == SQLite {
		conn.SetMaxOpenConns(1)
		conn.SetMaxIdleConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		closeQuietly(conn, logger)
		return nil, fmt.Errorf("pinging %s database: %w", dialect, err)
	}

	return New(conn, dialect, cfg, metrics, logger), nil
}

// sqliteDSN adds the foreign_keys pragma to dsn unless it already sets one.
// The driver applies _pragma parameters on every new connection.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

// New wraps an already-open *sql.DB. If metrics is nil, metric recording is
// skipped.
func New(conn *sql.DB, dialect Dialect, cfg *config.StorageConfig, metrics *telemetry.Metrics, logger *slog.Logger) *DB {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        checkerName,
		MaxRequests: toUint32(cfg.CircuitBreaker.HalfOpenLimit),
		Timeout:     cfg.CircuitBreaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= cfg.CircuitBreaker.MaxFailures
		},
		IsSuccessful: isSuccessful,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	var limiter *rate.Limiter
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.BurstSize)
	}

	return &DB{
		conn:    conn,
		dialect: dialect,
		breaker: cb,
		limiter: limiter,
		metrics: metrics,
		logger:  logger,
	}
}

// Do runs fn through the breaker, limiter, and a client span. The operation
// name labels the span and metrics (e.g. "todo.update").
//
// When the breaker rejects the call, the returned error wraps
// domain.ErrUnavailable.
func (d *DB) Do(ctx context.Context, operation string, fn func(ctx context.Context, conn *sql.DB) error) error {
	start := time.Now()

	_, err := d.breaker.Execute(func() (struct{}, error) {
		if err := d.waitForRateLimit(ctx); err != nil {
			return struct{}{}, err
		}

		spanCtx, span := d.startSpan(ctx, operation)
		defer span.End()

		opErr := fn(spanCtx, d.conn)
		d.finishSpan(span, opErr)

		return struct{}{}, opErr
	})

	d.recordMetrics(ctx, operation, start, err)

	if isBreakerRejection(err) {
		return fmt.Errorf("%w: %s: %w", domain.ErrUnavailable, checkerName, err)
	}
	return err
}

// Dialect returns the SQL flavor of the underlying connection.
func (d *DB) Dialect() Dialect {
	return d.dialect
}

// Close closes the underlying connection pool.
func (d *DB) Close() error {
	return d.conn.Close()
}

// Name identifies this component in health reports. Together with
// HealthCheck, it satisfies ports.HealthChecker.
func (d *DB) Name() string {
	return checkerName
}

// HealthCheck pings the database and reports the circuit breaker state.
//
// State mapping:
//   - ping fails  — returns the ping error.
//   - "closed"    — returns nil.
//   - "half-open" — returns an error describing the degraded state.
//   - "open"      — returns an error; repository calls are being rejected.
func (d *DB) HealthCheck(ctx context.Context) error {
	if err := d.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("%s: ping failed: %w", checkerName, err)
	}

	state := d.breaker.State()
	switch state {
	case gobreaker.StateClosed:
		return nil
	case gobreaker.StateHalfOpen:
		return fmt.Errorf("%s: degraded (circuit breaker half-open)", checkerName)
	case gobreaker.StateOpen:
		return fmt.Errorf("%s: failing (circuit breaker open)", checkerName)
	default:
		return fmt.Errorf("%s: unknown circuit breaker state %v", checkerName, state)
	}
}

// waitForRateLimit blocks until the rate limiter allows the operation or the
// context is canceled. Returns nil immediately when rate limiting is disabled.
func (d *DB) waitForRateLimit(ctx context.Context) error {
	if d.limiter == nil {
		return nil
	}
	return d.limiter.Wait(ctx)
}

func (d *DB) startSpan(ctx context.Context, operation string) (context.Context, trace.Span) {
	tracer := otel.GetTracerProvider().Tracer("database")

	return tracer.Start(ctx, "DB "+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", string(d.dialect)),
			attribute.String("db.operation", operation),
		),
	)
}

// finishSpan marks the span as failed only for errors that count against
// the breaker.
func (d *DB) finishSpan(span trace.Span, err error) {
	if err == nil {
		return
	}
	if isSuccessful(err) {
		span.SetAttributes(attribute.String("db.outcome", err.Error()))
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// recordMetrics records operation duration and count. Metrics are recorded
// outside the breaker so that rejections are captured. Safe with nil metrics.
func (d *DB) recordMetrics(ctx context.Context, operation string, start time.Time, err error) {
	if d.metrics == nil {
		return
	}

	duration := time.Since(start).Seconds()

	result := "success"
	switch {
	case isBreakerRejection(err):
		result = "circuit_open"
	case !isSuccessful(err):
		result = "error"
	}

	attrs := metric.WithAttributes(
		telemetry.AttrDBSystem.String(string(d.dialect)),
		telemetry.AttrDBOperation.String(operation),
		telemetry.AttrResult.String(result),
	)

	d.metrics.DBOperationDuration.Record(ctx, duration, attrs)
	d.metrics.DBOperationTotal.Add(ctx, 1, attrs)
}

// isSuccessful reports whether err is a normal outcome that should not count
// as a database failure.
func isSuccessful(err error) bool {
	return err == nil ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrConflict) ||
		errors.Is(err, domain.ErrInvalidReference) ||
		errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, context.Canceled)
}

func isBreakerRejection(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func closeQuietly(conn *sql.DB, logger *slog.Logger) {
	if err := conn.Close(); err != nil && logger != nil {
		logger.Error("error closing database", slog.Any("error", err))
	}
}

// toUint32 safely converts a non-negative int to uint32, clamping at the
// uint32 maximum. Negative values are treated as zero.
func toUint32(v int) uint32 {
	if v <= 0 {
		return 0
	}
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
