package core

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

const (
	stmtAddLinkedServer = "EXEC master.dbo.sp_addlinkedserver @server = @Server, @srvproduct = N'', @provider = @Provider;"
	queryDatabaseExists = "IF (DB_ID(@Database) IS NOT NULL) SELECT 1 ELSE SELECT 0;"
)

// AddFakeLinkedServer registers a linked server called serverName that points
// nowhere, so procedures referencing it compile. The registration goes to
// BootstrapConnectionString, not to the made instance.
func (m *Manager) AddFakeLinkedServer(ctx context.Context, serverName string) error {
	if err := m.requireMade(); err != nil {
		return err
	}
	if strings.TrimSpace(serverName) == "" {
		return blankArgument("server name")
	}

	conn, err := m.open(ctx, m.cfg.BootstrapConnectionString)
	if err != nil {
		return fmt.Errorf("add linked server %s: %w", serverName, err)
	}
	defer conn.Close()

	if err := conn.Exec(ctx, stmtAddLinkedServer,
		sql.Named("Server", serverName),
		sql.Named("Provider", m.cfg.LinkedServerProvider)); err != nil {
		return fmt.Errorf("%w: add linked server %s: %w", ErrConnectivity, serverName, err)
	}
	Logger().Info("linked server added", "server", serverName, "provider", m.cfg.LinkedServerProvider)
	return nil
}

// DatabaseExists reports whether databaseName exists on the made instance.
func (m *Manager) DatabaseExists(ctx context.Context, databaseName string) (bool, error) {
	if err := m.requireMade(); err != nil {
		return false, err
	}
	if strings.TrimSpace(databaseName) == "" {
		return false, blankArgument("database name")
	}

	conn, err := m.open(ctx, instanceConnectionString(m.name))
	if err != nil {
		return false, fmt.Errorf("check database %s: %w", databaseName, err)
	}
	defer conn.Close()

	rows, err := conn.QueryColumn(ctx, queryDatabaseExists, sql.Named("Database", databaseName))
	if err != nil {
		return false, fmt.Errorf("%w: check database %s: %w", ErrConnectivity, databaseName, err)
	}
	return len(rows) > 0 && rows[0] == "1", nil
}
