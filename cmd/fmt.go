package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and rewrites the stored snapshot in canonical form"
}
func (*fmtCmd) Usage() string {
	return `dcp fmt

  Loads the snapshot, applies the available quick-fixes (derived ids, opening
  months, buy amounts) and writes it back with stable key order, so hand
  edits and version control diffs stay clean.
`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {}

func (c *fmtCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, store, closer, err := loadLedger(ctx)
	defer closer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading the plan: %v\n", err)
		return subcommands.ExitFailure
	}
	if status := saveLedger(ctx, store, ledger); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Println("Snapshot rewritten in canonical form")
	return subcommands.ExitSuccess
}
