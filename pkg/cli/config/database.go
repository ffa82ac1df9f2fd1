package config

import (
	"context"
	"io"
	"log/slog"

	"github.com/m-mizutani/deploydoctor/pkg/domain/interfaces"
	"github.com/m-mizutani/deploydoctor/pkg/domain/types"
	"github.com/m-mizutani/deploydoctor/pkg/repository/firestore"
	"github.com/m-mizutani/deploydoctor/pkg/repository/memory"
	"github.com/m-mizutani/deploydoctor/pkg/repository/sqldb"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const (
	DatabaseMemory    = "memory"
	DatabaseSQLite    = "sqlite"
	DatabasePostgres  = "postgres"
	DatabaseFirestore = "firestore"
)

type Database struct {
	driver              string
	dsn                 string `masq:"secret"`
	firestoreProjectID  string
	firestoreDatabaseID string
}

func (x *Database) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "database-driver",
			Usage:       "Analysis store [memory|sqlite|postgres|firestore]",
			Category:    "Database",
			Destination: &x.driver,
			Sources:     cli.EnvVars("DEPLOYDOCTOR_DATABASE_DRIVER"),
			Value:       DatabaseSQLite,
		},
		&cli.StringFlag{
			Name:        "database-url",
			Usage:       "Data source name for sqlite (file path) or postgres (connection URL)",
			Category:    "Database",
			Destination: &x.dsn,
			Sources:     cli.EnvVars("DEPLOYDOCTOR_DATABASE_URL", "DATABASE_URL"),
			Value:       "deploydoctor.db",
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore project ID",
			Category:    "Database",
			Destination: &x.firestoreProjectID,
			Sources:     cli.EnvVars("DEPLOYDOCTOR_FIRESTORE_PROJECT_ID"),
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore database ID",
			Category:    "Database",
			Destination: &x.firestoreDatabaseID,
			Sources:     cli.EnvVars("DEPLOYDOCTOR_FIRESTORE_DATABASE_ID"),
			Value:       "(default)",
		},
	}
}

// NewRepository opens the analysis store. The returned closer is nil for the
// memory store.
func (x *Database) NewRepository(ctx context.Context) (interfaces.AnalysisRepository, io.Closer, error) {
	switch x.driver {
	case DatabaseMemory:
		return memory.New(), nil, nil

	case DatabaseSQLite, DatabasePostgres:
		if x.dsn == "" {
			return nil, nil, goerr.Wrap(types.ErrInvalidOption, "database-url is required", goerr.V("driver", x.driver))
		}
		client, err := sqldb.New(ctx, sqldb.Driver(x.driver), x.dsn)
		if err != nil {
			return nil, nil, err
		}
		return client, client, nil

	case DatabaseFirestore:
		if x.firestoreProjectID == "" {
			return nil, nil, goerr.Wrap(types.ErrInvalidOption, "firestore-project-id is required")
		}
		client, err := firestore.New(ctx, x.firestoreProjectID, x.firestoreDatabaseID)
		if err != nil {
			return nil, nil, err
		}
		return client, client, nil

	default:
		return nil, nil, goerr.Wrap(types.ErrInvalidOption, "unsupported database driver", goerr.V("driver", x.driver))
	}
}

func (x *Database) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("driver", x.driver),
		slog.Int("dsn.len", len(x.dsn)),
		slog.String("firestoreProjectID", x.firestoreProjectID),
		slog.String("firestoreDatabaseID", x.firestoreDatabaseID),
	)
}
