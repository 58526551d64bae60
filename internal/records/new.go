package records

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/gocql/gocql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var reIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func validTable(table string) error {
	if !reIdentifier.MatchString(table) {
		return fmt.Errorf("invalid table name %q", table)
	}
	return nil
}

type implPostgres struct {
	pool  *pgxpool.Pool
	table string
}

// NewPostgres connects to PostgreSQL and returns a Store over table.
func NewPostgres(ctx context.Context, dsn, table string) (Store, error) {
	if err := validTable(table); err != nil {
		return nil, err
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return &implPostgres{
		pool:  pool,
		table: pgx.Identifier{table}.Sanitize(),
	}, nil
}

// CassandraConfig configures the Cassandra-backed Store.
type CassandraConfig struct {
	Hosts    []string
	Keyspace string
	Table    string
	Timeout  time.Duration
}

type implCassandra struct {
	session *gocql.Session
	table   string
}

// NewCassandra connects to Cassandra and returns a Store over cfg.Table.
func NewCassandra(cfg CassandraConfig) (Store, error) {
	if err := validTable(cfg.Table); err != nil {
		return nil, err
	}

	cluster := gocql.NewCluster(cfg.Hosts...)
	cluster.Keyspace = cfg.Keyspace
	cluster.Consistency = gocql.Quorum
	cluster.Timeout = cfg.Timeout
	cluster.ConnectTimeout = cfg.Timeout

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Cassandra: %w", err)
	}

	return &implCassandra{session: session, table: cfg.Table}, nil
}
