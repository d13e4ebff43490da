package sqlconn

import (
	"context"
	"database/sql"
	"fmt"

	// Registers the "sqlserver" driver.
	_ "github.com/microsoft/go-mssqldb"

	"github.com/giantswarm/localdbenv/internal/sentinel"
)

// DefaultDriver is the database/sql driver name used when Connector.Driver
// is empty.
const DefaultDriver = "sqlserver"

// ErrEmptyConnectionString is returned by Open for an empty connection string.
const ErrEmptyConnectionString = sentinel.Error("connection string must not be empty")

// Conn is one open connection. Callers must Close it.
type Conn interface {
	// QueryColumn runs query and returns the first column of every row as text.
	QueryColumn(ctx context.Context, query string, args ...any) ([]string, error)
	// Exec runs a statement that returns no rows.
	Exec(ctx context.Context, query string, args ...any) error
	Close() error
}

// Connector opens connections through database/sql. The zero value uses
// DefaultDriver.
//
// A (localdb)\name server is resolved to the instance's named pipe by running
// "{Executable} info {name}" through Runner; without both set such servers
// are unreachable.
type Connector struct {
	Driver     string
	Executable string
	Runner     InfoRunner
}

// Open opens and pings a connection. The returned Conn holds a pool capped
// at one connection so statements run on the same session.
func (c Connector) Open(ctx context.Context, connectionString string) (Conn, error) {
	if connectionString == "" {
		return nil, ErrEmptyConnectionString
	}
	driver := c.Driver
	if driver == "" {
		driver = DefaultDriver
	}

	connectionString, err := c.resolveLocalDB(ctx, connectionString)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, connectionString)
	if err != nil {
		return nil, fmt.Errorf("open %s connection: %w", driver, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s server: %w", driver, err)
	}
	return &conn{db: db}, nil
}

type conn struct {
	db *sql.DB
}

func (c *conn) QueryColumn(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v sql.NullString
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		values = append(values, v.String)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return values, nil
}

func (c *conn) Exec(ctx context.Context, query string, args ...any) error {
	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	return nil
}

func (c *conn) Close() error {
	return c.db.Close()
}
