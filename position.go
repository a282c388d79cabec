package dcaplan

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// BudgetCapUnits bounds the cumulative amount invested in a single position
// over its lifetime, in units of the plan currency. It is a plan rule, not a
// per-position setting.
const BudgetCapUnits = 10_000

// PlanConfig defines the investable horizon and the monthly installment target.
type PlanConfig struct {
	Currency      string
	MonthlyTarget Money
	Start         Month // first month of the horizon, inclusive
	End           Month // last month of the horizon, inclusive
}

// DefaultPlan returns the plan used when no snapshot exists yet.
func DefaultPlan() PlanConfig {
	return PlanConfig{
		Currency:      "USD",
		MonthlyTarget: M(5000, "USD"),
		Start:         NewMonth(2026, time.January),
		End:           NewMonth(2028, time.December),
	}
}

// Validate checks the plan's fields.
func (p PlanConfig) Validate() error {
	if err := ValidateCurrency(p.Currency); err != nil {
		return fmt.Errorf("%w: plan currency: %v", ErrValidation, err)
	}
	if p.Start.IsZero() || p.End.IsZero() {
		return fmt.Errorf("%w: plan horizon is missing", ErrValidation)
	}
	if p.Start.After(p.End) {
		return fmt.Errorf("%w: plan start %s is after end %s", ErrInvalidRange, p.Start, p.End)
	}
	if p.MonthlyTarget.IsNegative() {
		return fmt.Errorf("%w: monthly target must not be negative, got %s", ErrValidation, p.MonthlyTarget)
	}
	return nil
}

// Months enumerates the plan horizon, ascending. The plan must be valid.
func (p PlanConfig) Months() []Month {
	months, err := MonthsBetween(p.Start, p.End)
	if err != nil {
		return nil
	}
	return months
}

// Quarters enumerates the distinct quarters of the plan horizon.
func (p PlanConfig) Quarters() []Quarter {
	quarters, err := QuartersBetween(p.Start, p.End)
	if err != nil {
		return nil
	}
	return quarters
}

// BudgetCap returns the per-position budget cap in the plan currency.
func (p PlanConfig) BudgetCap() Money { return M(BudgetCapUnits, p.Currency) }

// Buy is one recorded installment. Buys are immutable once recorded: the
// ledger only ever appends them, there is no edit path.
type Buy struct {
	Month         Month    // the plan month this installment fills
	Date          Date     // calendar date of execution
	Shares        Quantity // number of shares bought, positive
	PricePerShare Money    // price paid per share, positive
	Amount        Money    // Shares * PricePerShare, fixed at record time
}

// Position is a single ticker's plan entry and its full buy history.
// At most one position may open in any calendar quarter.
type Position struct {
	ID           string
	Ticker       string
	DisplayName  string
	AddedQuarter Quarter
	AddedMonth   Month // first month of AddedQuarter, derived at creation
	CurrentPrice Money // externally refreshed mark price

	buys []Buy // always sorted ascending by month, ties in insertion order
}

// position ids are deterministic: the quarter is unique by invariant, so
// ticker+quarter never collides within a ledger.
func positionID(ticker string, q Quarter) string {
	return strings.ToLower(ticker) + "-" + q.Key()
}

// Buys returns a copy of the position's buy history, sorted ascending by
// month. The history itself cannot be mutated through the returned slice.
func (p *Position) Buys() []Buy { return slices.Clone(p.buys) }

// OpeningBuy returns the chronologically first buy, the one created with the
// position. The boolean is false only for a position decoded from a corrupt
// snapshot with no buys at all.
func (p *Position) OpeningBuy() (Buy, bool) {
	if len(p.buys) == 0 {
		return Buy{}, false
	}
	return p.buys[0], true
}

// HasBuyIn reports whether any buy fills the given plan month.
func (p *Position) HasBuyIn(m Month) bool {
	for _, b := range p.buys {
		if b.Month == m {
			return true
		}
	}
	return false
}

// TotalShares sums the shares over all buys.
func (p *Position) TotalShares() Quantity {
	var total Quantity
	for _, b := range p.buys {
		total = total.Add(b.Shares)
	}
	return total
}

// TotalInvested sums the invested amount over all buys.
func (p *Position) TotalInvested() Money {
	total := M(0, p.CurrentPrice.Currency())
	for _, b := range p.buys {
		total = total.Add(b.Amount)
	}
	return total
}

// appendBuy inserts a buy keeping the list sorted ascending by month; buys in
// the same month keep their insertion order.
func (p *Position) appendBuy(b Buy) {
	at := len(p.buys)
	for i, existing := range p.buys {
		if existing.Month.After(b.Month) {
			at = i
			break
		}
	}
	p.buys = slices.Insert(p.buys, at, b)
}

// clone returns a deep copy of the position.
func (p *Position) clone() *Position {
	c := *p
	c.buys = slices.Clone(p.buys)
	return &c
}
