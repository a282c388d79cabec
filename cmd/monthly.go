package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/averch/dcaplan"
	"github.com/averch/dcaplan/renderer"
)

// monthlyCmd holds the flags for the 'monthly' subcommand.
type monthlyCmd struct {
	year int
}

func (*monthlyCmd) Name() string     { return "monthly" }
func (*monthlyCmd) Synopsis() string { return "show the month by month breakdown of a year" }
func (*monthlyCmd) Usage() string {
	return `dcp monthly [-y <year>]

  Shows, for each month of the year, the invested amount, the number of buys
  and the positions opened.
`
}

func (c *monthlyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "y", dcaplan.ThisMonth().Year(), "Year to break down.")
}

func (c *monthlyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, _, closer, err := loadLedger(ctx)
	defer closer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading the plan: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.MonthlyMarkdown(ledger, c.year))
	return subcommands.ExitSuccess
}
