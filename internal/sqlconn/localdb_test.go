package sqlconn_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/giantswarm/localdbenv/internal/fake"
	"github.com/giantswarm/localdbenv/internal/sqlconn"
)

const recordingDriver = "localdbenv-recording"

// dsns records every DSN the recording driver was asked to open.
var dsns struct {
	mu   sync.Mutex
	seen []string
}

func init() {
	sql.Register(recordingDriver, recordDriver{})
}

type recordDriver struct{}

func (recordDriver) Open(name string) (driver.Conn, error) {
	dsns.mu.Lock()
	defer dsns.mu.Unlock()
	dsns.seen = append(dsns.seen, name)
	return recordConn{}, nil
}

type recordConn struct{}

func (recordConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (recordConn) Close() error                        { return nil }
func (recordConn) Begin() (driver.Tx, error)           { return nil, errors.New("not supported") }

func opened(dsn string) bool {
	dsns.mu.Lock()
	defer dsns.mu.Unlock()
	return slices.Contains(dsns.seen, dsn)
}

const sqlLocalDB = `C:\Program Files\Microsoft SQL Server\150\Tools\Binn\SqlLocalDB.exe`

func TestConnector_ResolvesLocalDBPipe(t *testing.T) {
	t.Parallel()

	runner := &fake.Runner{Stdout: map[string]string{
		"info": "Name:               resolve\r\nState:              Running\r\n" +
			"Instance pipe name: np:\\\\.\\pipe\\LOCALDB#0A1B2C3D\\tsql\\query\r\n",
	}}
	c := sqlconn.Connector{Driver: recordingDriver, Executable: sqlLocalDB, Runner: runner}

	conn, err := c.Open(context.Background(), `Server=(localdb)\resolve;Integrated Security=true;Connection Timeout=1;`)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	want := `Server=np:\\.\pipe\LOCALDB#0A1B2C3D\tsql\query;Integrated Security=true;Connection Timeout=1;`
	if !opened(want) {
		t.Errorf("driver never opened %q", want)
	}

	calls := runner.Calls()
	if len(calls) != 1 {
		t.Fatalf("runner calls = %v, want one info call", calls)
	}
	if got, want := calls[0].String(), sqlLocalDB+" info resolve"; got != want {
		t.Errorf("runner call = %q, want %q", got, want)
	}
}

func TestConnector_LocalDBUnreachable(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		runner     *fake.Runner
		executable string
	}{
		"info fails": {
			runner:     &fake.Runner{ExitCodes: map[string]int{"info": 1}},
			executable: sqlLocalDB,
		},
		"info errors": {
			runner:     &fake.Runner{Errs: map[string]error{"info": errors.New("spawn failed")}},
			executable: sqlLocalDB,
		},
		"instance stopped": {
			runner:     &fake.Runner{Stdout: map[string]string{"info": "Name: x\nState: Stopped\nInstance pipe name:\n"}},
			executable: sqlLocalDB,
		},
		"no executable": {
			runner: &fake.Runner{},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c := sqlconn.Connector{Driver: recordingDriver, Executable: tc.executable, Runner: tc.runner}
			_, err := c.Open(context.Background(), `Server=(localdb)\x;Integrated Security=true;`)
			if !errors.Is(err, sqlconn.ErrInstanceUnreachable) {
				t.Fatalf("Open() error = %v, want %v", err, sqlconn.ErrInstanceUnreachable)
			}
		})
	}
}

func TestConnector_NonLocalDBServerSkipsLookup(t *testing.T) {
	t.Parallel()

	runner := &fake.Runner{}
	c := sqlconn.Connector{Driver: recordingDriver, Executable: sqlLocalDB, Runner: runner}

	cs := "Server=db.internal;Database=orders;"
	conn, err := c.Open(context.Background(), cs)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	if !opened(cs) {
		t.Errorf("driver never opened %q", cs)
	}
	if calls := runner.Calls(); len(calls) != 0 {
		t.Errorf("runner calls = %v, want none", calls)
	}
}
