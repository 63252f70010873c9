package main

import (
	"context"
	"fmt"
	"os"

	"kml2gpx/cmd/kml2gpx/commands"
	"kml2gpx/internal/logging"
	"kml2gpx/pkg/graceful"
)

func main() {
	ctx, cancel := graceful.Context(context.Background(), nil)
	defer cancel()

	err := commands.NewRootCmd().ExecuteContext(ctx)
	_ = logging.Logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}
}
