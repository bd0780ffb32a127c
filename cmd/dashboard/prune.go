package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"StockDashboard/internal/cache"
)

type pruneCmd struct {
	config *string
}

func (*pruneCmd) Name() string     { return "prune" }
func (*pruneCmd) Synopsis() string { return "delete expired responses from the sqlite HTTP cache" }
func (*pruneCmd) Usage() string {
	return `dashboard [-config <file>] prune
`
}

func (c *pruneCmd) SetFlags(*flag.FlagSet) {}

func (c *pruneCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp(ctx, *c.config)
	if err != nil {
		fail(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	defer a.Close()

	s, ok := a.store.(*cache.SQLiteStore)
	if !ok {
		fmt.Fprintf(os.Stderr, "cache backend %q has nothing to prune\n", a.cfg.Cache.Backend)
		return subcommands.ExitSuccess
	}
	n, err := s.Prune(ctx)
	if err != nil {
		fail(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("pruned %d expired responses\n", n)
	return subcommands.ExitSuccess
}
