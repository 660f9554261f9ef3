// Command oceanbot runs the OceanBot server and its management commands.
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/ocean48/oceanbot/internal/adapters/driving/cli"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	if err := cli.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
