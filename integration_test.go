//go:build integration

package localdbenv_test

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/giantswarm/localdbenv"
)

// Integration tests drive a real SqlLocalDB installation. They run with
// -tags integration and read their paths from the environment:
//
//	LOCALDBENV_TEST_EXECUTABLE     path to SqlLocalDB.exe
//	LOCALDBENV_TEST_INSTANCE_ROOT  LocalDB instance directory root
//	LOCALDBENV_LOG_LEVEL           slog level (default INFO)
var (
	integrationExecutable   string
	integrationInstanceRoot string
)

func TestMain(m *testing.M) {
	setupTestLogging()

	integrationExecutable = os.Getenv("LOCALDBENV_TEST_EXECUTABLE")
	integrationInstanceRoot = os.Getenv("LOCALDBENV_TEST_INSTANCE_ROOT")
	if integrationExecutable == "" || integrationInstanceRoot == "" {
		fmt.Fprintln(os.Stderr, "LOCALDBENV_TEST_EXECUTABLE and LOCALDBENV_TEST_INSTANCE_ROOT must be set")
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func setupTestLogging() {
	levelStr := os.Getenv("LOCALDBENV_LOG_LEVEL")
	if levelStr == "" {
		levelStr = "INFO"
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))

	localdbenv.SetLogger(slog.Default().With("component", "localdbenv"))
}

//nolint:ireturn // Manager is the public API under test.
func integrationManager(t *testing.T) localdbenv.Manager {
	t.Helper()
	return localdbenv.NewManager(integrationExecutable, integrationInstanceRoot,
		localdbenv.WithBaseDir(t.TempDir()),
		localdbenv.WithToolLogDir(filepath.Join(t.TempDir(), "tools")),
		localdbenv.WithStartupWait(time.Minute, time.Second),
	)
}

func TestIntegrationMakeIsRepeatable(t *testing.T) {
	name := fmt.Sprintf("ldbenv%d", time.Now().UnixNano()%1_000_000)
	m := integrationManager(t)

	for i := range 2 {
		if err := m.Make(t.Context(), name); err != nil {
			t.Fatalf("Make() #%d error: %v", i+1, err)
		}
		if !m.Made() {
			t.Fatalf("Made() = false after Make #%d", i+1)
		}
	}

	exists, err := m.DatabaseExists(t.Context(), "master")
	if err != nil {
		t.Fatalf("DatabaseExists(master) error: %v", err)
	}
	if !exists {
		t.Error("DatabaseExists(master) = false, want true")
	}

	exists, err = m.DatabaseExists(t.Context(), "localdbenv_absent")
	if err != nil {
		t.Fatalf("DatabaseExists(absent) error: %v", err)
	}
	if exists {
		t.Error("DatabaseExists(absent) = true, want false")
	}
}
