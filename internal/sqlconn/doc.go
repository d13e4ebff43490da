// Package sqlconn opens single-use SQL connections for localdbenv.
//
// The production driver is go-mssqldb registered as "sqlserver". Each
// Connector.Open pings the server before returning so an unreachable
// instance surfaces as an Open error rather than on first use.
package sqlconn
