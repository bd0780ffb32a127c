package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type generateCmd struct {
	config *string
}

func (*generateCmd) Name() string     { return "generate" }
func (*generateCmd) Synopsis() string { return "build the Excel dashboard of one or more tickers" }
func (*generateCmd) Usage() string {
	return `dashboard [-config <file>] generate TICKER...

  Fetches annual filings and monthly prices, derives the metrics and
  writes <output.dir>/<TICKER>.xlsx for every ticker.
`
}

func (c *generateCmd) SetFlags(*flag.FlagSet) {}

func (c *generateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	a, err := newApp(ctx, *c.config)
	if err != nil {
		fail(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	defer a.Close()
	defer a.flushMetrics()

	status := subcommands.ExitSuccess
	for _, ticker := range f.Args() {
		report, err := a.generator.Generate(ctx, ticker)
		if err != nil {
			fail(os.Stderr, err)
			status = subcommands.ExitFailure
			continue
		}
		fmt.Println(report.Summary())
	}
	return status
}
