package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/ragvault/internal/client/cli"
	"github.com/dmitrijs2005/ragvault/internal/client/config"
)

func main() {
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	if err := app.Execute(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
