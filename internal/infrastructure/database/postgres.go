package database

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"catalog-backend/pkg/logger"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBConfig holds everything needed to open and tune the pgx pool.
type DBConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	DBName   string
	SSLMode  string

	MaxConns          int32         // upper bound of pooled connections
	MinConns          int32         // connections kept warm
	MaxConnLifetime   time.Duration // recycle connections older than this
	MaxConnIdleTime   time.Duration // close idle connections after this
	HealthCheckPeriod time.Duration

	MaxRetries     int           // connection attempts before giving up
	RetryDelay     time.Duration // base delay, doubled after every failed attempt
	ConnectTimeout time.Duration // per attempt
}

// URL renders the config as a postgres:// connection string. Both pgx and
// lib/pq (used by golang-migrate) understand this form.
func (c *DBConfig) URL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Username, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   "/" + c.DBName,
	}
	if c.SSLMode != "" {
		q := url.Values{}
		q.Set("sslmode", c.SSLMode)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

type PostgresDB struct {
	Pool   *pgxpool.Pool
	Config *DBConfig
}

func NewPostgresDB(config *DBConfig) *PostgresDB {
	return &PostgresDB{
		Config: config,
		Pool:   nil, // set by Connect
	}
}

func (db *PostgresDB) configurePool() (*pgxpool.Config, error) {
	config, err := pgxpool.ParseConfig(db.Config.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	config.MaxConns = db.Config.MaxConns
	config.MinConns = db.Config.MinConns
	config.MaxConnLifetime = db.Config.MaxConnLifetime
	config.MaxConnIdleTime = db.Config.MaxConnIdleTime
	config.HealthCheckPeriod = db.Config.HealthCheckPeriod
	config.ConnConfig.ConnectTimeout = db.Config.ConnectTimeout

	// NUMERIC columns scan straight into decimal.Decimal.
	config.AfterConnect = RegisterTypes

	return config, nil
}

// RegisterTypes installs the shopspring decimal codec on a fresh connection.
func RegisterTypes(_ context.Context, conn *pgx.Conn) error {
	pgxdecimal.Register(conn.TypeMap())
	return nil
}

// ========== STEP 1: CONNECT WITH EXPONENTIAL BACKOFF ==========
func (db *PostgresDB) connectWithRetry(ctx context.Context, config *pgxpool.Config) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	var lastErr error

	attempts := db.Config.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		logger.Info("[DATABASE] connection attempt", map[string]interface{}{
			"attempt": attempt,
			"max":     attempts,
		})

		connectCtx, cancel := context.WithTimeout(ctx, db.Config.ConnectTimeout)
		pool, lastErr = pgxpool.NewWithConfig(connectCtx, config)
		cancel()

		if lastErr == nil {
			if err := pool.Ping(ctx); err != nil {
				pool.Close()
				lastErr = err
			} else {
				logger.Info("[DATABASE] connected", map[string]interface{}{"attempt": attempt})
				return pool, nil
			}
		}

		logger.Warn("[DATABASE] attempt failed", map[string]interface{}{
			"attempt": attempt,
			"error":   lastErr.Error(),
		})

		if attempt < attempts {
			delay := db.Config.RetryDelay * time.Duration(1<<uint(attempt-1))

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, fmt.Errorf("connection cancelled: %w", ctx.Err())
			}
		}
	}

	return nil, fmt.Errorf("failed to connect after %d attempts: %w", attempts, lastErr)
}

// ========== STEP 2: PUBLIC ENTRY POINT ==========
func (db *PostgresDB) Connect(ctx context.Context) error {
	logger.Info("[DATABASE] initializing PostgreSQL connection", map[string]interface{}{
		"host": db.Config.Host,
		"db":   db.Config.DBName,
	})

	config, err := db.configurePool()
	if err != nil {
		return fmt.Errorf("pool configuration failed: %w", err)
	}

	pool, err := db.connectWithRetry(ctx, config)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}

	db.Pool = pool
	return nil
}

// HealthCheck pings the database and reports an error when the pool holds
// no live connections.
func (db *PostgresDB) HealthCheck(ctx context.Context) error {
	if err := db.Ping(ctx); err != nil {
		return err
	}

	if db.Pool.Stat().TotalConns() == 0 {
		return fmt.Errorf("no active database connections")
	}

	return nil
}
