package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/averch/dcaplan"
)

// buyCmd holds the flags for the 'buy' subcommand.
type buyCmd struct {
	ref    string
	month  string
	date   string
	shares float64
	price  float64
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a monthly installment on a position" }
func (*buyCmd) Usage() string {
	return `dcp buy -i <position> -m <month> -s <shares> -p <price> [-d <date>]

  Records a buy against a position. The month must be in the position's
  eligible range and the cumulative amount must stay within the budget cap.

Usage Examples:
$ dcp buy -i aapl-2026q1 -m 2026-02 -s 5 -p 155.10
$ dcp buy -i AAPL -m 2026-03 -s 5 -p 149
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ref, "i", "", "Position id, or its ticker when unambiguous.")
	f.StringVar(&c.month, "m", dcaplan.ThisMonth().String(), "Plan month the buy fills.")
	f.StringVar(&c.date, "d", "", "Execution date. Defaults to today.")
	f.Float64Var(&c.shares, "s", 0, "Number of shares bought.")
	f.Float64Var(&c.price, "p", 0, "Price paid per share.")
}

func (c *buyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	month, err := dcaplan.ParseMonth(c.month)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing month: %v\n", err)
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
	p, err := ledger.Resolve(c.ref)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	currency := ledger.Plan().Currency
	if err := ledger.RecordBuy(p.ID, month, on, dcaplan.Q(c.shares), dcaplan.M(c.price, currency)); err != nil {
		fmt.Fprintf(os.Stderr, "Error recording buy: %v\n", err)
		return subcommands.ExitFailure
	}
	if status := saveLedger(ctx, store, ledger); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Printf("Recorded buy on %s for %s\n", p.ID, month)
	return subcommands.ExitSuccess
}
