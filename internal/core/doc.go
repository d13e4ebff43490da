// Package core implements the LocalDB instance lifecycle behind the public
// localdbenv API.
//
// Manager.Make tears down any previous instance of the same name (detaching
// user databases, stopping and deleting the registration, reaping orphaned
// engine processes, deleting the instance directory with bounded retry) and
// creates a fresh one. Later operations register linked servers, generate
// publish profiles and build/publish database projects against the made
// instance.
//
// Every side effect goes through a narrow collaborator interface (FileSystem,
// ProcessRunner, ProcessTable, Connector, ProjectBuilder) supplied in
// Accessors, so the lifecycle can be driven entirely by fakes in tests.
package core
