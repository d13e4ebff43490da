// Package localdbenv provisions disposable SQL Server LocalDB instances for
// integration tests and publishes database projects into them.
//
// A Manager owns one instance lifecycle. Make tears down any previous
// instance of the same name (detaching its databases, stopping and deleting
// it, killing orphaned engine processes, deleting its directory) and creates
// a fresh, started one. The remaining operations require a successful Make.
//
// # Basic Usage
//
//	import "github.com/giantswarm/localdbenv"
//
//	ctx := context.Background()
//
//	mgr := localdbenv.NewManager(
//	    `C:\Program Files\Microsoft SQL Server\160\Tools\Binn\SqlLocalDB.exe`,
//	    filepath.Join(os.Getenv("LOCALAPPDATA"), `Microsoft\Microsoft SQL Server Local DB\Instances`),
//	)
//	if err := mgr.Make(ctx, "integration"); err != nil {
//	    log.Fatal(err)
//	}
//	if err := mgr.BuildAndPublishProject(ctx, `db\Orders.sqlproj`, "Orders"); err != nil {
//	    log.Fatal(err)
//	}
//
//	cs := localdbenv.NewConnectionString().
//	    Server(mgr.InstanceName()).
//	    IntegratedSecurity().
//	    Database("Orders")
//	db, err := sql.Open("sqlserver", cs.String())
//
// # Publish Profiles
//
// BuildAndPublishProject generates {database}.publish.xml in the base
// directory from a publish.xml template containing the placeholders
// {databaseName}, {scriptName} and {connectionString}. The base directory
// defaults to the directory of the running executable; see WithBaseDir.
//
// # Errors
//
// Every error matches one kind (ErrPreconditionNotMet, ErrInvalidArgument,
// ErrConnectivity, ErrToolFailed, ErrTimeout, ErrTemplateNotFound) and,
// where one applies, a specific sentinel such as ErrCreateInstance.
package localdbenv
