package sqlconn

// Resolved LocalDB servers are "np:" pipe paths.
import _ "github.com/microsoft/go-mssqldb/namedpipe"
