// Package main is the entrypoint for the worldclock service: the
// process-wide game-clock driver plus its read-only HTTP display surface.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/r4nd0lph-c/Playground2D/internal/config"
	"github.com/r4nd0lph-c/Playground2D/internal/server"
)

func main() {
	ctx := context.Background()
	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	return server.Run(ctx, server.Params{
		Name:           "worldclock",
		PortFromConfig: func(cfg *config.Config) int { return cfg.Server.HTTPPort },
	}, nil)
}
