package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/averch/dcaplan"
)

// addCmd holds the flags for the 'add' subcommand.
type addCmd struct {
	ticker  string
	name    string
	quarter string
	date    string
	shares  float64
	price   float64
	current float64
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "open a new position with its first buy" }
func (*addCmd) Usage() string {
	return `dcp add -t <ticker> -q <quarter> -s <shares> -p <price> [-n <name>] [-d <date>]

  Opens a position in a free quarter of the plan and records its opening buy
  in the quarter's first month.

Usage Examples:
$ dcp add -t AAPL -q "Q1 2026" -s 10 -p 150.25
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Ticker of the new position.")
	f.StringVar(&c.name, "n", "", "Display name. Defaults to the ticker.")
	f.StringVar(&c.quarter, "q", "", "Opening quarter, like \"Q1 2026\".")
	f.StringVar(&c.date, "d", "", "Execution date of the opening buy. Defaults to today.")
	f.Float64Var(&c.shares, "s", 0, "Number of shares bought.")
	f.Float64Var(&c.price, "p", 0, "Price paid per share.")
	f.Float64Var(&c.current, "c", 0, "Current price. Defaults to the buy price.")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	quarter, err := dcaplan.ParseQuarter(c.quarter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing quarter: %v\n", err)
		return subcommands.ExitUsageError
	}
	var on dcaplan.Date
	if c.date != "" {
		if on, err = dcaplan.ParseDate(c.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	ledger, store, closer, err := loadLedger(ctx)
	defer closer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading the plan: %v\n", err)
		return subcommands.ExitFailure
	}

	currency := ledger.Plan().Currency
	id, err := ledger.AddPosition(c.ticker, c.name, quarter, on,
		dcaplan.Q(c.shares), dcaplan.M(c.price, currency), dcaplan.M(c.current, currency))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding position: %v\n", err)
		return subcommands.ExitFailure
	}
	if status := saveLedger(ctx, store, ledger); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Printf("Opened position %s in %s\n", id, quarter)
	return subcommands.ExitSuccess
}
