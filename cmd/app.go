// Package cmd implements the CLI application to manage a dollar cost
// averaging plan.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/averch/dcaplan"
	"github.com/averch/dcaplan/redisstore"
	"github.com/averch/dcaplan/sqlitestore"
)

// Commands lists every subcommand, for the main package to register and for
// the shell completion to enumerate.
var Commands = []subcommands.Command{
	&addCmd{},
	&buyCmd{},
	&priceCmd{},
	&deleteCmd{},
	&positionsCmd{},
	&nextCmd{},
	&monthlyCmd{},
	&yearlyCmd{},
	&summaryCmd{},
	&planCmd{},
	&fmtCmd{},
	&topicCmd{},
}

// adminEnv is the environment variable gating destructive commands.
const adminEnv = "DCAPLAN_ADMIN"

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

var storeKind = flag.String("store", "", "Snapshot store: file, redis or sqlite. Defaults to file.")
var ledgerFile = flag.String("ledger-file", "", "Path to the snapshot file for the file store.")
var redisAddr = flag.String("redis-addr", "", "Redis address for the redis store.")
var sqliteFile = flag.String("sqlite-file", "", "Database path for the sqlite store.")

// openStore resolves the flags against the optional config file and opens
// the selected store. The returned closer is never nil.
func openStore(ctx context.Context) (dcaplan.Store, func(), error) {
	cfg := LoadConfig()

	kind := firstOf(*storeKind, cfg.Store, "file")
	switch kind {
	case "file":
		path := firstOf(*ledgerFile, cfg.LedgerFile, "dcaplan.json")
		return dcaplan.NewFileStore(path), func() {}, nil
	case "redis":
		addr := firstOf(*redisAddr, cfg.Redis.Addr, "localhost:6379")
		store, err := redisstore.Open(ctx, addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, func() {}, err
		}
		return store, func() { store.Close() }, nil
	case "sqlite":
		path := firstOf(*sqliteFile, cfg.SQLiteFile, "dcaplan.db")
		store, err := sqlitestore.Open(path)
		if err != nil {
			return nil, func() {}, err
		}
		return store, func() { store.Close() }, nil
	default:
		return nil, func() {}, fmt.Errorf("unknown store kind %q", kind)
	}
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// loadLedger opens the store and decodes the current ledger from it.
func loadLedger(ctx context.Context) (*dcaplan.Ledger, dcaplan.Store, func(), error) {
	store, closer, err := openStore(ctx)
	if err != nil {
		return nil, nil, closer, err
	}
	snap, err := store.Load(ctx)
	if err != nil {
		return nil, nil, closer, err
	}
	l, err := dcaplan.FromSnapshot(snap)
	if err != nil {
		return nil, nil, closer, err
	}
	return l, store, closer, nil
}

// saveLedger writes the ledger back to the store it was loaded from.
func saveLedger(ctx context.Context, store dcaplan.Store, l *dcaplan.Ledger) subcommands.ExitStatus {
	if err := store.Save(ctx, l.Snapshot()); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving the plan: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
