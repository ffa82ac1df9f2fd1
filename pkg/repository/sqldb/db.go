package sqldb

import (
	"context"
	"database/sql"
	"embed"
	"io/fs"
	"strconv"
	"strings"

	"github.com/m-mizutani/deploydoctor/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pressly/goose/v3"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrations embed.FS

// Client is an AnalysisRepository backed by SQLite or PostgreSQL.
type Client struct {
	db     *sql.DB
	driver Driver
}

// New opens the database, applies pending migrations and returns a repository client.
func New(ctx context.Context, driver Driver, dsn string) (*Client, error) {
	var dialect goose.Dialect
	switch driver {
	case DriverSQLite:
		dialect = goose.DialectSQLite3
	case DriverPostgres:
		dialect = goose.DialectPostgres
	default:
		return nil, goerr.New("unsupported database driver", goerr.V("driver", driver))
	}

	db, err := sql.Open(string(driver), dsn)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open database", goerr.V("driver", driver))
	}

	// SQLite allows only one writer and ":memory:" is per connection
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to connect database", goerr.V("driver", driver))
	}

	if err := migrate(ctx, db, dialect, string(driver)); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Client{db: db, driver: driver}, nil
}

func migrate(ctx context.Context, db *sql.DB, dialect goose.Dialect, dir string) error {
	fsys, err := fs.Sub(migrations, "migrations/"+dir)
	if err != nil {
		return goerr.Wrap(err, "failed to open migrations", goerr.V("dir", dir))
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return goerr.Wrap(err, "failed to create migration provider", goerr.V("dialect", dialect))
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to run migrations", goerr.V("dialect", dialect))
	}

	for _, r := range results {
		logging.From(ctx).Info("applied migration",
			"version", r.Source.Version,
			"path", r.Source.Path,
			"duration", r.Duration,
		)
	}

	return nil
}

// Close closes the underlying database handle.
func (x *Client) Close() error {
	if err := x.db.Close(); err != nil {
		return goerr.Wrap(err, "failed to close database")
	}
	return nil
}

// rebind converts "?" placeholders into "$n" for PostgreSQL.
func (x *Client) rebind(query string) string {
	if x.driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}
