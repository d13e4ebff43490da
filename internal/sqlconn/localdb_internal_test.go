package sqlconn

import (
	"strings"
	"testing"
)

const runningInfo = `Name:               app
Version:            15.0.4153.1
Shared name:
Owner:              CORP\dev
Auto-create:        No
State:              Running
Last start time:    10/16/2026 9:14:02 AM
Instance pipe name: np:\\.\pipe\LOCALDB#D0B5E7D3\tsql\query
`

func TestParsePipeName(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		info string
		want string
	}{
		"running":       {info: runningInfo, want: `np:\\.\pipe\LOCALDB#D0B5E7D3\tsql\query`},
		"crlf":          {info: strings.ReplaceAll(runningInfo, "\n", "\r\n"), want: `np:\\.\pipe\LOCALDB#D0B5E7D3\tsql\query`},
		"stopped":       {info: "Name: app\nState: Stopped\nInstance pipe name: \n", want: ""},
		"missing line":  {info: "Name: app\n", want: ""},
		"no np: prefix": {info: `Instance pipe name: \\.\pipe\LOCALDB#1\tsql\query`, want: `np:\\.\pipe\LOCALDB#1\tsql\query`},
		"empty output":  {info: "", want: ""},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if got := parsePipeName([]byte(tc.info)); got != tc.want {
				t.Errorf("parsePipeName() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLocalDBInstance(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		cs      string
		want    string
		wantIdx int
		wantOK  bool
	}{
		"builder output": {cs: `Server=(localdb)\app;Integrated Security=true;`, want: "app", wantIdx: 0, wantOK: true},
		"server later":   {cs: `Database=d;server = (LocalDB)\App;`, want: "App", wantIdx: 1, wantOK: true},
		"data source":    {cs: `Data Source=(localdb)\x;`, want: "x", wantIdx: 0, wantOK: true},
		"tcp server":     {cs: `Server=db.internal;Database=d;`, wantIdx: -1},
		"prefix only":    {cs: `Server=(localdb)\;`, wantIdx: -1},
		"no server":      {cs: `Database=d;`, wantIdx: -1},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, idx, ok := localDBInstance(strings.Split(tc.cs, ";"))
			if got != tc.want || idx != tc.wantIdx || ok != tc.wantOK {
				t.Errorf("localDBInstance(%q) = (%q, %d, %v), want (%q, %d, %v)",
					tc.cs, got, idx, ok, tc.want, tc.wantIdx, tc.wantOK)
			}
		})
	}
}
