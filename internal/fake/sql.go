package fake

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"sync"

	"github.com/giantswarm/localdbenv/internal/sqlconn"
)

// ErrUnreachable is the default Open failure for unreachable servers.
var ErrUnreachable = errors.New("fake: server unreachable")

// Statement is one recorded Exec or QueryColumn call.
type Statement struct {
	ConnectionString string
	Query            string
	// Args holds named parameter values keyed by name; positional
	// arguments are keyed by their index ("0", "1", ...).
	Args map[string]any
}

// Connector opens fake connections. A connection string is reachable when
// Reachable reports true for it (all are reachable when Reachable is nil).
// Query results are scripted per query text in Results.
type Connector struct {
	mu sync.Mutex

	Reachable func(connectionString string) bool
	OpenErr   error
	Results   map[string][]string
	ExecErrs  map[string]error
	QueryErrs map[string]error

	opens      []string
	statements []Statement
	open       int
}

// Opens returns every connection string passed to Open, in order, including
// failed attempts.
func (c *Connector) Opens() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.opens...)
}

// Statements returns every Exec and QueryColumn call, in order.
func (c *Connector) Statements() []Statement {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Statement(nil), c.statements...)
}

// OpenConns returns how many connections are open and not yet closed.
func (c *Connector) OpenConns() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

func (c *Connector) Open(ctx context.Context, connectionString string) (sqlconn.Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.opens = append(c.opens, connectionString)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.Reachable != nil && !c.Reachable(connectionString) {
		if c.OpenErr != nil {
			return nil, c.OpenErr
		}
		return nil, ErrUnreachable
	}
	c.open++
	return &conn{parent: c, cs: connectionString}, nil
}

type conn struct {
	parent *Connector
	cs     string
	closed bool
}

func (c *conn) record(query string, args []any) {
	named := make(map[string]any, len(args))
	for i, a := range args {
		if n, ok := a.(sql.NamedArg); ok {
			named[n.Name] = n.Value
			continue
		}
		named[strconv.Itoa(i)] = a
	}
	c.parent.statements = append(c.parent.statements, Statement{
		ConnectionString: c.cs,
		Query:            query,
		Args:             named,
	})
}

func (c *conn) QueryColumn(_ context.Context, query string, args ...any) ([]string, error) {
	c.parent.mu.Lock()
	defer c.parent.mu.Unlock()

	if c.closed {
		return nil, errors.New("fake: connection closed")
	}
	c.record(query, args)
	if err := c.parent.QueryErrs[query]; err != nil {
		return nil, err
	}
	return append([]string(nil), c.parent.Results[query]...), nil
}

func (c *conn) Exec(_ context.Context, query string, args ...any) error {
	c.parent.mu.Lock()
	defer c.parent.mu.Unlock()

	if c.closed {
		return errors.New("fake: connection closed")
	}
	c.record(query, args)
	return c.parent.ExecErrs[query]
}

func (c *conn) Close() error {
	c.parent.mu.Lock()
	defer c.parent.mu.Unlock()

	if !c.closed {
		c.closed = true
		c.parent.open--
	}
	return nil
}
