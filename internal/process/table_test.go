package process

import (
	"context"
	"os"
	"os/exec"
	"testing"
	"time"
)

func TestNameMatches(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		name string
		want string
		ok   bool
	}{
		"exact":              {name: "sqlservr", want: "sqlservr", ok: true},
		"exe suffix on name": {name: "sqlservr.exe", want: "sqlservr", ok: true},
		"exe suffix on want": {name: "sqlservr", want: "sqlservr.exe", ok: true},
		"case insensitive":   {name: "SQLSERVR.EXE", want: "sqlservr", ok: true},
		"prefix only":        {name: "sqlservr-helper", want: "sqlservr", ok: false},
		"different":          {name: "postgres", want: "sqlservr", ok: false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if got := NameMatches(tc.name, tc.want); got != tc.ok {
				t.Errorf("NameMatches(%q, %q) = %v, want %v", tc.name, tc.want, got, tc.ok)
			}
		})
	}
}

func TestTable_ListIncludesSelf(t *testing.T) {
	t.Parallel()

	infos, err := Table{}.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}

	self := int32(os.Getpid())
	for _, info := range infos {
		if info.PID == self {
			if info.Executable == "" {
				t.Error("own process has empty executable path")
			}
			return
		}
	}
	t.Fatalf("List() did not include own pid %d among %d processes", self, len(infos))
}

func TestTable_KillChild(t *testing.T) {
	t.Parallel()

	sleepPath, err := exec.LookPath("sleep")
	if err != nil {
		t.Skip("sleep not found in PATH")
	}

	cmd := exec.Command(sleepPath, "30")
	if err := cmd.Start(); err != nil {
		t.Fatalf("start sleep: %v", err)
	}
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	tbl := Table{Concurrency: 2}
	infos, err := tbl.List(context.Background(), "sleep")
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	found := false
	for _, info := range infos {
		if int(info.PID) == cmd.Process.Pid {
			found = true
		}
	}
	if !found {
		t.Errorf("List(%q) did not include child pid %d", "sleep", cmd.Process.Pid)
	}

	if err := tbl.Kill(context.Background(), int32(cmd.Process.Pid)); err != nil {
		t.Fatalf("Kill() error: %v", err)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("child process still running after Kill")
	}
}
