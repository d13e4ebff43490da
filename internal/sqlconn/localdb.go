package sqlconn

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/giantswarm/localdbenv/internal/sentinel"
)

// ErrInstanceUnreachable is returned by Open when a (localdb)\name server
// cannot be resolved to a running instance's named pipe.
const ErrInstanceUnreachable = sentinel.Error("localdb instance unreachable")

// localDBServerPrefix is the server value prefix naming a LocalDB instance.
const localDBServerPrefix = `(localdb)\`

// pipeNameLabel labels the pipe line of "SqlLocalDB info {name}".
const pipeNameLabel = "instance pipe name"

// InfoRunner runs a command and returns its stdout and exit code.
// process.Runner satisfies this interface.
type InfoRunner interface {
	Output(ctx context.Context, path string, args ...string) ([]byte, int, error)
}

// localDBInstance returns the instance named by the (localdb)\name server
// fragment, and that fragment's index.
func localDBInstance(fragments []string) (name string, idx int, ok bool) {
	for i, f := range fragments {
		key, value, found := strings.Cut(f, "=")
		if !found {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "server", "data source", "address", "addr", "network address":
		default:
			continue
		}
		value = strings.TrimSpace(value)
		if len(value) > len(localDBServerPrefix) && strings.EqualFold(value[:len(localDBServerPrefix)], localDBServerPrefix) {
			return value[len(localDBServerPrefix):], i, true
		}
	}
	return "", -1, false
}

// parsePipeName extracts the pipe from "SqlLocalDB info" output. A stopped
// instance reports an empty pipe.
func parsePipeName(info []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(info))
	for sc.Scan() {
		label, value, found := strings.Cut(sc.Text(), ":")
		if !found || !strings.EqualFold(strings.TrimSpace(label), pipeNameLabel) {
			continue
		}
		pipe := strings.TrimSpace(value)
		if pipe != "" && !strings.HasPrefix(strings.ToLower(pipe), "np:") {
			pipe = "np:" + pipe
		}
		return pipe
	}
	return ""
}

// resolveLocalDB rewrites a (localdb)\name server to the instance's named
// pipe. Connection strings naming any other server are returned unchanged.
func (c Connector) resolveLocalDB(ctx context.Context, connectionString string) (string, error) {
	fragments := strings.Split(connectionString, ";")
	name, idx, ok := localDBInstance(fragments)
	if !ok {
		return connectionString, nil
	}
	if c.Executable == "" || c.Runner == nil {
		return "", fmt.Errorf("%w: %q: no instance manager configured", ErrInstanceUnreachable, name)
	}

	out, code, err := c.Runner.Output(ctx, c.Executable, "info", name)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrInstanceUnreachable, name, err)
	}
	if code != 0 {
		return "", fmt.Errorf("%w: %q: info exited with code %d", ErrInstanceUnreachable, name, code)
	}
	pipe := parsePipeName(out)
	if pipe == "" {
		return "", fmt.Errorf("%w: %q: no pipe name (instance stopped?)", ErrInstanceUnreachable, name)
	}

	fragments[idx] = "Server=" + pipe
	return strings.Join(fragments, ";"), nil
}
