package postgres

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"

	"github.com/powerkey/power-app/pkg/config"
	"github.com/powerkey/power-app/pkg/logger"
)

// NewPool crea el pool de conexiones PostgreSQL.
// Con DB_FORCE_IPV4 el dial resuelve solo registros A (contenedores sin IPv6).
// Con DB_TRACE_SQL cada consulta se registra en nivel debug.
func NewPool(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	if cfg.ForceIPv4 {
		poolConfig.ConnConfig.DialFunc = dialIPv4
	}
	if cfg.TraceSQL && log != nil {
		poolConfig.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   sqlLogger(log),
			LogLevel: tracelog.LogLevelDebug,
		}
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = int32(cfg.MinConns)
	}
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	// NUMERIC <-> shopspring/decimal en todas las conexiones del pool.
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

func dialIPv4(ctx context.Context, network, addr string) (net.Conn, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	dialer := &net.Dialer{}
	ipv4, err := resolveIPv4(ctx, host)
	if err != nil {
		// Sin registro A: dial normal
		return dialer.DialContext(ctx, network, addr)
	}
	return dialer.DialContext(ctx, "tcp4", net.JoinHostPort(ipv4, port))
}

// resolveIPv4 devuelve la primera IPv4 del host (o el host si ya es una IPv4).
func resolveIPv4(ctx context.Context, host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() != nil {
			return host, nil
		}
		return "", fmt.Errorf("%s es IPv6", host)
	}
	ips, err := net.DefaultResolver.LookupIP(ctx, "ip4", host)
	if err != nil {
		return "", err
	}
	if len(ips) == 0 {
		return "", fmt.Errorf("%s sin IPv4", host)
	}
	return ips[0].String(), nil
}

// sqlLogger adapta el tracer de pgx al logger de la app.
func sqlLogger(log *logger.Logger) tracelog.LoggerFunc {
	return func(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
		ev := log.Debug()
		switch level {
		case tracelog.LogLevelError:
			ev = log.Error()
		case tracelog.LogLevelWarn:
			ev = log.Warn()
		}
		ev.Fields(data).Msg("pgx: " + msg)
	}
}
