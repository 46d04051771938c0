package main

import (
	"context"
	"os"

	"github.com/sheikh-saqib/bulk-payouts/internal/cli"
)

func main() {
	os.Exit(cli.Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
