package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/averch/dcaplan"
)

// priceCmd holds the flags for the 'price' subcommand.
type priceCmd struct {
	ref   string
	price float64
	feed  string
}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "update the current price of positions" }
func (*priceCmd) Usage() string {
	return `dcp price -i <position> -p <price>
dcp price -feed <prices.json>

  Updates the mark price of one position, or of every position found in a
  JSON feed file mapping tickers to prices. Recorded buys are never touched.

Usage Examples:
$ dcp price -i AAPL -p 187.30
$ dcp price -feed prices.json    # {"AAPL": 187.30, "MSFT": 410.5}
`
}

func (c *priceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ref, "i", "", "Position id, or its ticker when unambiguous.")
	f.Float64Var(&c.price, "p", 0, "New current price.")
	f.StringVar(&c.feed, "feed", "", "JSON file mapping tickers to prices.")
}

func (c *priceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, store, closer, err := loadLedger(ctx)
	defer closer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading the plan: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.feed != "" {
		feed, err := readFeed(c.feed, ledger.Plan().Currency)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading feed: %v\n", err)
			return subcommands.ExitFailure
		}
		updated := ledger.ApplyPrices(feed)
		if status := saveLedger(ctx, store, ledger); status != subcommands.ExitSuccess {
			return status
		}
		fmt.Printf("Updated %d position(s)\n", updated)
		return subcommands.ExitSuccess
	}

	p, err := ledger.Resolve(c.ref)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := ledger.UpdateCurrentPrice(p.ID, dcaplan.M(c.price, ledger.Plan().Currency)); err != nil {
		fmt.Fprintf(os.Stderr, "Error updating price: %v\n", err)
		return subcommands.ExitFailure
	}
	if status := saveLedger(ctx, store, ledger); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Printf("Updated %s to %s\n", p.ID, p.CurrentPrice)
	return subcommands.ExitSuccess
}

// readFeed loads a ticker-to-price JSON object as a static feed.
func readFeed(path, currency string) (dcaplan.StaticFeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	feed := make(dcaplan.StaticFeed, len(raw))
	for ticker, price := range raw {
		feed[strings.ToUpper(ticker)] = dcaplan.M(price, currency)
	}
	return feed, nil
}
