// Package fake provides in-memory implementations of the localdbenv
// collaborator interfaces. Each fake records its calls and lets tests script
// results; all are safe for concurrent use.
package fake
