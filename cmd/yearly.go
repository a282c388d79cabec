package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/averch/dcaplan/renderer"
)

type yearlyCmd struct{}

func (*yearlyCmd) Name() string     { return "yearly" }
func (*yearlyCmd) Synopsis() string { return "show the totals of every year of the plan" }
func (*yearlyCmd) Usage() string {
	return `dcp yearly

  Shows, for every year of the plan horizon, the invested total, the active
  months and the positions opened.
`
}

func (c *yearlyCmd) SetFlags(f *flag.FlagSet) {}

func (c *yearlyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, _, closer, err := loadLedger(ctx)
	defer closer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading the plan: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.YearlyMarkdown(ledger))
	return subcommands.ExitSuccess
}
