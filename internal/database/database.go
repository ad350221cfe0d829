package database

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"storefront-analytics/internal/config"

	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// ProbeTimeout bounds the startup connectivity check.
const ProbeTimeout = 10 * time.Second

// NewPool creates the process-wide PostgreSQL connection pool.
//
// The pool connects lazily. A startup probe acquires and releases one
// connection and logs the outcome; a failed probe is not returned as an
// error so the first real query can retry. Only an unparsable configuration
// fails.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	if cfg.TLSSkipVerify {
		skipCertificateVerification(&poolConfig.ConnConfig.Config)
		dropPlaintextFallbacks(&poolConfig.ConnConfig.Config)
	}

	if level, ok := traceLevel(cfg.TraceLevel); ok {
		poolConfig.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(logger.With().Str("component", "pgx").Logger()),
			LogLevel: level,
		}
	}

	logger.Info().
		Str("host", poolConfig.ConnConfig.Host).
		Uint16("port", poolConfig.ConnConfig.Port).
		Str("database", poolConfig.ConnConfig.Database).
		Bool("tls_skip_verify", cfg.TLSSkipVerify).
		Msg("creating database connection pool")

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := Probe(ctx, pool); err != nil {
		logger.Error().Err(err).Msg("error connecting to PostgreSQL")
	} else {
		logger.Info().Msg("connected to PostgreSQL")
	}

	return pool, nil
}

// Probe acquires one connection from the pool and releases it straight away.
func Probe(ctx context.Context, pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	conn.Release()

	return nil
}

// skipCertificateVerification disables server certificate checks on every
// TLS attempt of the connection, fallbacks included. Plain-text attempts
// stay plain text.
func skipCertificateVerification(cc *pgconn.Config) {
	relax := func(t *tls.Config) {
		if t != nil {
			t.InsecureSkipVerify = true
			t.VerifyPeerCertificate = nil
			t.VerifyConnection = nil
		}
	}

	relax(cc.TLSConfig)
	for _, fb := range cc.Fallbacks {
		relax(fb.TLSConfig)
	}
}

// dropPlaintextFallbacks keeps only the TLS attempts of a connection that
// has any, so sslmode=prefer and allow never fall back to plain text. A
// configuration without TLS attempts (sslmode=disable) is left alone.
func dropPlaintextFallbacks(cc *pgconn.Config) {
	var secure []*pgconn.FallbackConfig
	for _, fb := range cc.Fallbacks {
		if fb.TLSConfig != nil {
			secure = append(secure, fb)
		}
	}

	if cc.TLSConfig == nil {
		if len(secure) == 0 {
			return
		}
		cc.Host = secure[0].Host
		cc.Port = secure[0].Port
		cc.TLSConfig = secure[0].TLSConfig
		secure = secure[1:]
	}

	cc.Fallbacks = secure
}

// traceLevel maps a configured trace level to pgx's tracelog level.
// "none" and unknown values disable tracing.
func traceLevel(name string) (tracelog.LogLevel, bool) {
	if name == "none" || name == "" {
		return tracelog.LogLevelNone, false
	}

	level, err := tracelog.LogLevelFromString(name)
	if err != nil {
		return tracelog.LogLevelNone, false
	}

	return level, true
}
