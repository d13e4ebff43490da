// Command localdbenv makes LocalDB instances and publishes database projects
// to them for integration testing.
package main

import (
	"context"
	"os"
	"os/signal"
)

// Version info (set by ldflags)
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, newApp(), os.Args[1:])
	stop()
	os.Exit(code)
}
