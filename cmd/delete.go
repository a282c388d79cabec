package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/averch/dcaplan"
)

// deleteCmd holds the flags for the 'delete' subcommand.
type deleteCmd struct {
	ref string
	yes bool
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a position and its whole buy history" }
func (*deleteCmd) Usage() string {
	return `dcp delete -i <position> -yes

  Removes a position entirely, freeing its quarter. This bypasses the
  append-only rule, so it requires both the -yes flag and the ` + adminEnv + `
  environment variable to be set.

Usage Examples:
$ ` + adminEnv + `=1 dcp delete -i aapl-2026q1 -yes
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ref, "i", "", "Position id, or its ticker when unambiguous.")
	f.BoolVar(&c.yes, "yes", false, "Confirm the deletion.")
}

func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	access := dcaplan.AccessControl(dcaplan.EnvAccess(adminEnv))
	if !access.CanDelete() {
		fmt.Fprintf(os.Stderr, "Error: deletion requires the %s environment variable\n", adminEnv)
		return subcommands.ExitFailure
	}
	if !c.yes {
		fmt.Fprintln(os.Stderr, "Error: deletion is irreversible, confirm with -yes")
		return subcommands.ExitUsageError
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
	if err := ledger.DeletePosition(p.ID); err != nil {
		fmt.Fprintf(os.Stderr, "Error deleting position: %v\n", err)
		return subcommands.ExitFailure
	}
	if status := saveLedger(ctx, store, ledger); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Printf("Deleted position %s, quarter %s is free again\n", p.ID, p.AddedQuarter)
	return subcommands.ExitSuccess
}
