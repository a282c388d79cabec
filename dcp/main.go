package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/averch/dcaplan/cmd"
)

func main() {
	// a .env file is handy for DCAPLAN_ADMIN and store settings; a missing
	// file is fine.
	_ = godotenv.Load()

	installCompletion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// installCompletion wires shell completion for the subcommands and the store
// flags. It exits the process when invoked by the shell completion hook.
func installCompletion() {
	storeFlags := map[string]complete.Predictor{
		"store":       predict.Set{"file", "redis", "sqlite"},
		"ledger-file": predict.Files("*.json"),
		"sqlite-file": predict.Files("*.db"),
		"redis-addr":  predict.Nothing,
	}
	sub := make(map[string]*complete.Command, len(cmd.Commands))
	for _, c := range cmd.Commands {
		sub[c.Name()] = &complete.Command{Flags: storeFlags}
	}
	complete.Complete("dcp", &complete.Command{
		Sub:   sub,
		Flags: storeFlags,
	})
}
