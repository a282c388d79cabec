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

// planCmd holds the flags for the 'plan' subcommand.
type planCmd struct {
	target   float64
	start    string
	end      string
	currency string
}

func (*planCmd) Name() string     { return "plan" }
func (*planCmd) Synopsis() string { return "show or change the plan configuration" }
func (*planCmd) Usage() string {
	return `dcp plan [-target <amount>] [-start <month>] [-end <month>] [-currency <code>]

  With no flags, shows the current plan. With flags, updates the given
  settings and keeps the rest. Recorded positions and buys are never
  rewritten by a plan change.

Usage Examples:
$ dcp plan
$ dcp plan -target 4000
$ dcp plan -start 2026-06 -end 2029-05
`
}

func (c *planCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.target, "target", 0, "Monthly investment target.")
	f.StringVar(&c.start, "start", "", "First month of the horizon, like 2026-01.")
	f.StringVar(&c.end, "end", "", "Last month of the horizon, like 2028-12.")
	f.StringVar(&c.currency, "currency", "", "Plan currency code, like USD.")
}

func (c *planCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, store, closer, err := loadLedger(ctx)
	defer closer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading the plan: %v\n", err)
		return subcommands.ExitFailure
	}

	changed := false
	p := ledger.Plan()
	if c.target != 0 {
		p.MonthlyTarget = dcaplan.M(c.target, p.Currency)
		changed = true
	}
	if c.currency != "" {
		p.Currency = c.currency
		p.MonthlyTarget = dcaplan.M(p.MonthlyTarget.AsFloat(), c.currency)
		changed = true
	}
	if c.start != "" {
		if p.Start, err = dcaplan.ParseMonth(c.start); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing start month: %v\n", err)
			return subcommands.ExitUsageError
		}
		changed = true
	}
	if c.end != "" {
		if p.End, err = dcaplan.ParseMonth(c.end); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing end month: %v\n", err)
			return subcommands.ExitUsageError
		}
		changed = true
	}

	if changed {
		if err := ledger.SetPlan(p); err != nil {
			fmt.Fprintf(os.Stderr, "Error updating the plan: %v\n", err)
			return subcommands.ExitFailure
		}
		if status := saveLedger(ctx, store, ledger); status != subcommands.ExitSuccess {
			return status
		}
	}
	printMarkdown(renderer.PlanMarkdown(ledger.Plan()))
	return subcommands.ExitSuccess
}
