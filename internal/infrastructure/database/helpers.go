package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"catalog-backend/pkg/logger"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes the repositories react to.
const (
	UniqueViolation     = "23505"
	ForeignKeyViolation = "23503"
	CheckViolation      = "23514"
)

func (db *PostgresDB) Ping(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.Pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

func (db *PostgresDB) Close() error {
	if db.Pool == nil {
		return nil
	}

	db.Pool.Close()
	db.Pool = nil

	logger.Info("[DATABASE] connection pool closed", nil)
	return nil
}

type PoolStats struct {
	TotalConns      int32         `json:"totalConns"`
	MaxConns        int32         `json:"maxConns"`
	AcquiredConns   int32         `json:"acquiredConns"`
	IdleConns       int32         `json:"idleConns"`
	AcquireCount    int64         `json:"acquireCount"`
	EmptyAcquires   int64         `json:"emptyAcquireCount"`
	AvgAcquireDelay time.Duration `json:"avgAcquireDurationNs"`
}

func (db *PostgresDB) Stats() (*PoolStats, error) {
	if db.Pool == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}

	raw := db.Pool.Stat()

	return &PoolStats{
		TotalConns:      raw.TotalConns(),
		MaxConns:        raw.MaxConns(),
		AcquiredConns:   raw.AcquiredConns(),
		IdleConns:       raw.IdleConns(),
		AcquireCount:    raw.AcquireCount(),
		EmptyAcquires:   raw.EmptyAcquireCount(),
		AvgAcquireDelay: calculateAvgDuration(raw.AcquireDuration(), raw.AcquireCount()),
	}, nil
}

func calculateAvgDuration(totalDuration time.Duration, count int64) time.Duration {
	if count == 0 {
		return 0
	}
	return totalDuration / time.Duration(count)
}

// ============================================================
// CONSTRAINT HELPERS
// ============================================================

// PgError extracts the PostgreSQL error from err's chain.
func PgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsUniqueViolation reports a unique constraint failure. When constraint
// names are given the violated constraint must be one of them.
func IsUniqueViolation(err error, constraints ...string) bool {
	return hasCode(err, UniqueViolation, constraints)
}

// IsForeignKeyViolation reports a foreign key failure, optionally limited to
// the given constraint names.
func IsForeignKeyViolation(err error, constraints ...string) bool {
	return hasCode(err, ForeignKeyViolation, constraints)
}

func IsCheckViolation(err error) bool {
	return hasCode(err, CheckViolation, nil)
}

func hasCode(err error, code string, constraints []string) bool {
	pgErr, ok := PgError(err)
	if !ok || pgErr.Code != code {
		return false
	}
	if len(constraints) == 0 {
		return true
	}
	for _, c := range constraints {
		if pgErr.ConstraintName == c {
			return true
		}
	}
	return false
}

// EscapeLike escapes the LIKE meta-characters so user input matches literally.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
