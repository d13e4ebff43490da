package localdbenv_test

import (
	"log/slog"
	"testing"

	"github.com/giantswarm/localdbenv"
	"github.com/giantswarm/localdbenv/internal/fake"
	"github.com/giantswarm/localdbenv/internal/sqlconn"
)

// Not parallel: SetLogger replaces package state.
func TestSetLoggerReachesProductionCollaborators(t *testing.T) {
	t.Cleanup(func() { localdbenv.SetLogger(nil) })

	before := localdbenv.ProductionLoggersForTesting("SqlLocalDB.exe", "instances")

	swapped := slog.New(slog.DiscardHandler)
	localdbenv.SetLogger(swapped)

	after := localdbenv.ProductionLoggersForTesting("SqlLocalDB.exe", "instances")
	for name, l := range after {
		if l != swapped {
			t.Errorf("%s logger = %p after SetLogger, want %p", name, l, swapped)
		}
		if before[name] == swapped {
			t.Errorf("%s logger already swapped before SetLogger", name)
		}
	}
}

func TestProductionConnectorResolvesThroughRunner(t *testing.T) {
	t.Parallel()

	t.Run("default runner", func(t *testing.T) {
		t.Parallel()

		c := localdbenv.ProductionConnectorForTesting("SqlLocalDB.exe", "instances")
		if c.Executable != "SqlLocalDB.exe" {
			t.Errorf("Executable = %q, want %q", c.Executable, "SqlLocalDB.exe")
		}
		if c.Runner == nil {
			t.Error("Runner = nil, want the production runner")
		}
	})

	t.Run("configured runner", func(t *testing.T) {
		t.Parallel()

		runner := &fake.Runner{}
		c := localdbenv.ProductionConnectorForTesting("SqlLocalDB.exe", "instances",
			localdbenv.WithProcessRunner(runner))
		if c.Runner != sqlconn.InfoRunner(runner) {
			t.Errorf("Runner = %T, want the configured runner", c.Runner)
		}
	})
}
