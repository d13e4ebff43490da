// Package connstr builds SQL Server connection strings from ordered
// key=value fragments.
package connstr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/giantswarm/localdbenv/internal/sentinel"
)

// ErrInvalidArgument is the kind shared by every argument validation failure
// in localdbenv. It is declared here, at the bottom of the dependency graph,
// and re-exported by core and the public package.
const ErrInvalidArgument = sentinel.Error("invalid argument")

// ErrBlankFragment is returned by Append for an empty or whitespace-only fragment.
const ErrBlankFragment = sentinel.Error("connection string fragment must not be blank")

// LocalDBPrefix is the server prefix that routes a connection to a named
// LocalDB instance.
const LocalDBPrefix = "(localdb)"

// ConnectionString accumulates semicolon-terminated fragments in call order.
// Fragments are never deduplicated; when a key repeats, the driver decides
// which value wins.
//
// The zero value is an unset connection string ready for use. A
// ConnectionString is not safe for concurrent use and is meant to be built,
// read once, and discarded.
type ConnectionString struct {
	value string
	set   bool
}

// New returns an unset connection string.
func New() *ConnectionString {
	return &ConnectionString{}
}

// NewFrom returns a connection string whose value starts as initial.
func NewFrom(initial string) *ConnectionString {
	return &ConnectionString{value: initial, set: true}
}

// Append adds fragment verbatim. A blank fragment is rejected and the
// accumulated value is left untouched.
func (c *ConnectionString) Append(fragment string) error {
	if strings.TrimSpace(fragment) == "" {
		return sentinel.Of(ErrInvalidArgument, ErrBlankFragment)
	}
	c.append(fragment)
	return nil
}

func (c *ConnectionString) append(fragment string) {
	c.value += fragment
	c.set = true
}

// Server appends the LocalDB server fragment for instanceName.
func (c *ConnectionString) Server(instanceName string) *ConnectionString {
	c.append(`Server=` + LocalDBPrefix + `\` + instanceName + `;`)
	return c
}

// IntegratedSecurity appends the Windows trusted-connection fragment.
func (c *ConnectionString) IntegratedSecurity() *ConnectionString {
	c.append("Integrated Security=true;")
	return c
}

// Timeout appends the connection timeout fragment, in seconds.
func (c *ConnectionString) Timeout(seconds int) *ConnectionString {
	c.append("Connection Timeout=" + strconv.Itoa(seconds) + ";")
	return c
}

// Database appends the initial catalog fragment.
func (c *ConnectionString) Database(name string) *ConnectionString {
	c.append(fmt.Sprintf("Database=%s;", name))
	return c
}

// Value returns the accumulated value and whether anything has been set.
func (c *ConnectionString) Value() (string, bool) {
	return c.value, c.set
}

// String returns the accumulated value, or "" while unset.
func (c *ConnectionString) String() string {
	return c.value
}
