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

// nextCmd holds the flags for the 'next' subcommand.
type nextCmd struct {
	month string
}

func (*nextCmd) Name() string     { return "next" }
func (*nextCmd) Synopsis() string { return "show the next installment owed by each position" }
func (*nextCmd) Usage() string {
	return `dcp next [-m <month>]

  For each position, shows the next eligible month without a buy. Lapsed
  months come first so a plan that fell behind catches up in order.
`
}

func (c *nextCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", dcaplan.ThisMonth().String(), "Month to evaluate the schedule at.")
}

func (c *nextCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	current, err := dcaplan.ParseMonth(c.month)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing month: %v\n", err)
		return subcommands.ExitUsageError
	}
	ledger, _, closer, err := loadLedger(ctx)
	defer closer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading the plan: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.ScheduleMarkdown(ledger, current))
	return subcommands.ExitSuccess
}
