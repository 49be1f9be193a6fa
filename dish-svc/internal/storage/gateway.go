package storage

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"modernc.org/sqlite"
)

type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// unicodeLowerFunc lowercases with Unicode rules; SQLite's LOWER only folds ASCII.
const unicodeLowerFunc = "unicode_lower"

func init() {
	sqlx.BindDriver(string(DialectSQLite), sqlx.QUESTION)
	if err := sqlite.RegisterDeterministicScalarFunction(unicodeLowerFunc, 1, unicodeLower); err != nil {
		panic(fmt.Sprintf("storage: register %s: %v", unicodeLowerFunc, err))
	}
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

func ParseDialect(driver string) (Dialect, error) {
	switch Dialect(driver) {
	case DialectPostgres, DialectSQLite:
		return Dialect(driver), nil
	}
	return "", fmt.Errorf("unsupported database driver %q", driver)
}

type Options struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Gateway hands out one transaction-backed Session per service call.
type Gateway struct {
	db      *sqlx.DB
	dialect Dialect
}

func NewGateway(db *sqlx.DB, dialect Dialect) *Gateway {
	return &Gateway{db: db, dialect: dialect}
}

func Open(ctx context.Context, opts Options) (*Gateway, error) {
	dialect, err := ParseDialect(opts.Driver)
	if err != nil {
		return nil, err
	}

	dsn := opts.DSN
	if dialect == DialectSQLite {
		dsn = SQLiteDSN(dsn)
	}

	db, err := sqlx.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect, err)
	}

	switch dialect {
	case DialectSQLite:
		// An in-memory database lives exactly as long as its connection.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	default:
		db.SetMaxOpenConns(opts.MaxOpenConns)
		db.SetMaxIdleConns(opts.MaxIdleConns)
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", dialect, err)
	}

	log.Info().Str("driver", string(dialect)).Msg("storage: database connection established")
	return NewGateway(db, dialect), nil
}

// SQLiteDSN adds the foreign_keys pragma to path so that every connection
// the pool opens enforces foreign keys.
func SQLiteDSN(path string) string {
	const pragma = "_pragma=foreign_keys(1)"
	if strings.Contains(path, pragma) {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&" + pragma
	}
	return path + "?" + pragma
}

func (g *Gateway) Dialect() Dialect {
	return g.dialect
}

func (g *Gateway) DB() *sqlx.DB {
	return g.db
}

func (g *Gateway) Begin(ctx context.Context) (Session, error) {
	tx, err := g.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &sqlSession{gateway: g, tx: tx}, nil
}

func (g *Gateway) Close() error {
	return g.db.Close()
}

var _ Opener = (*Gateway)(nil)
