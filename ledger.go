package dcaplan

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Ledger owns the plan configuration and every position. It is the single
// source of truth: schedule, metrics and report queries all derive from it.
//
// The caller owns the Ledger. There is no ambient state: persistence happens
// only through the explicit Snapshot/FromSnapshot round-trip and a Store.
// Every mutation validates fully before applying any change, so a failed
// call leaves the ledger exactly as it was.
type Ledger struct {
	plan      PlanConfig
	positions []*Position
}

// NewLedger creates an empty ledger with the default plan.
func NewLedger() *Ledger {
	return &Ledger{plan: DefaultPlan()}
}

// Plan returns the current plan configuration.
func (l *Ledger) Plan() PlanConfig { return l.plan }

// SetPlan replaces the plan configuration after validating it. The currency
// cannot change while positions exist: recorded buys keep their currency, so
// a relabelled plan would mix currencies in every metric.
func (l *Ledger) SetPlan(p PlanConfig) error {
	if p.Currency == "" {
		// quick fix: keep the previous currency.
		p.Currency = l.plan.Currency
	}
	if p.Currency != l.plan.Currency && len(l.positions) > 0 {
		return fmt.Errorf("%w: cannot change the plan currency from %s to %s while positions exist", ErrValidation, l.plan.Currency, p.Currency)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	l.plan = p
	return nil
}

// Len returns the number of positions in the ledger.
func (l *Ledger) Len() int { return len(l.positions) }

// Position returns the position with this id, or nil if unknown.
func (l *Ledger) Position(id string) *Position {
	for _, p := range l.positions {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Resolve finds a position by id, falling back to a unique ticker match.
// This is a convenience for interactive callers; programs should use ids.
func (l *Ledger) Resolve(ref string) (*Position, error) {
	if p := l.Position(ref); p != nil {
		return p, nil
	}
	var found *Position
	for _, p := range l.positions {
		if strings.EqualFold(p.Ticker, ref) {
			if found != nil {
				return nil, fmt.Errorf("%w: %q matches several positions, use an id", ErrNotFound, ref)
			}
			found = p
		}
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, ref)
	}
	return found, nil
}

// Positions iterates over the ledger's positions in chronological order of
// their opening quarter.
func (l *Ledger) Positions() iter.Seq[*Position] {
	ordered := slices.Clone(l.positions)
	slices.SortStableFunc(ordered, func(a, b *Position) int {
		return a.AddedMonth.Compare(b.AddedMonth)
	})
	return func(yield func(*Position) bool) {
		for _, p := range ordered {
			if !yield(p) {
				return
			}
		}
	}
}

// QuarterTaken reports whether a position already opened in this quarter.
func (l *Ledger) QuarterTaken(q Quarter) bool {
	for _, p := range l.positions {
		if p.AddedQuarter == q {
			return true
		}
	}
	return false
}

// AddPosition opens a new position in the given quarter and records its
// opening buy in the quarter's first month. A zero currentPrice defaults to
// pricePerShare, a zero date defaults to today. It returns the new position's
// id.
func (l *Ledger) AddPosition(ticker, displayName string, quarter Quarter, on Date, shares Quantity, pricePerShare, currentPrice Money) (string, error) {
	if ticker == "" {
		return "", fmt.Errorf("%w: ticker is missing", ErrValidation)
	}
	if quarter.IsZero() {
		return "", fmt.Errorf("%w: quarter is missing", ErrValidation)
	}
	if !slices.Contains(l.plan.Quarters(), quarter) {
		return "", fmt.Errorf("%w: quarter %s is outside the plan horizon %s..%s", ErrValidation, quarter, l.plan.Start, l.plan.End)
	}
	if l.QuarterTaken(quarter) {
		return "", fmt.Errorf("%w: %s", ErrDuplicateQuarter, quarter)
	}
	shares, pricePerShare, err := l.validateTrade(shares, pricePerShare)
	if err != nil {
		return "", err
	}
	amount := pricePerShare.Mul(shares)
	if amount.GreaterThan(l.plan.BudgetCap()) {
		return "", fmt.Errorf("%w: opening buy of %s exceeds the %s cap", ErrBudgetExceeded, amount, l.plan.BudgetCap())
	}
	if currentPrice.IsZero() {
		currentPrice = pricePerShare
	} else if !currentPrice.IsPositive() {
		return "", fmt.Errorf("%w: current price must be positive, got %s", ErrValidation, currentPrice)
	}
	if on.IsZero() {
		on = Today()
	}

	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = strings.ToUpper(ticker)
	}
	added := quarter.FirstMonth()
	p := &Position{
		ID:           positionID(ticker, quarter),
		Ticker:       strings.ToUpper(ticker),
		DisplayName:  displayName,
		AddedQuarter: quarter,
		AddedMonth:   added,
		CurrentPrice: M(currentPrice.value, l.plan.Currency),
	}
	p.appendBuy(Buy{
		Month:         added,
		Date:          on,
		Shares:        shares,
		PricePerShare: pricePerShare,
		Amount:        amount,
	})
	l.positions = append(l.positions, p)
	return p.ID, nil
}

// RecordBuy appends an installment to an existing position. The cumulative
// invested amount after the buy must not exceed the budget cap. A zero date
// defaults to today. Two buys may share a month; the schedule engine only
// asks whether a month has any buy at all.
func (l *Ledger) RecordBuy(id string, month Month, on Date, shares Quantity, pricePerShare Money) error {
	p := l.Position(id)
	if p == nil {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if month.IsZero() {
		return fmt.Errorf("%w: month is missing", ErrValidation)
	}
	first := p.AddedMonth
	if first.Before(l.plan.Start) {
		first = l.plan.Start
	}
	if month.Before(first) || month.After(l.plan.End) {
		return fmt.Errorf("%w: month %s is outside %s's eligible months %s..%s", ErrValidation, month, p.Ticker, first, l.plan.End)
	}
	shares, pricePerShare, err := l.validateTrade(shares, pricePerShare)
	if err != nil {
		return err
	}
	amount := pricePerShare.Mul(shares)
	if p.TotalInvested().Add(amount).GreaterThan(l.plan.BudgetCap()) {
		return fmt.Errorf("%w: %s invested plus %s exceeds the %s cap", ErrBudgetExceeded, p.TotalInvested(), amount, l.plan.BudgetCap())
	}
	if on.IsZero() {
		on = Today()
	}
	p.appendBuy(Buy{
		Month:         month,
		Date:          on,
		Shares:        shares,
		PricePerShare: pricePerShare,
		Amount:        amount,
	})
	return nil
}

// validateTrade checks the share count and price common to every buy, and
// quick-fixes a missing price currency to the plan currency.
func (l *Ledger) validateTrade(shares Quantity, pricePerShare Money) (Quantity, Money, error) {
	if !shares.IsPositive() {
		return shares, pricePerShare, fmt.Errorf("%w: shares must be positive, got %s", ErrValidation, shares)
	}
	if !pricePerShare.IsPositive() {
		return shares, pricePerShare, fmt.Errorf("%w: price per share must be positive, got %s", ErrValidation, pricePerShare)
	}
	if pricePerShare.Currency() == "" {
		pricePerShare = M(pricePerShare.value, l.plan.Currency)
	} else if pricePerShare.Currency() != l.plan.Currency {
		return shares, pricePerShare, fmt.Errorf("%w: price currency %s does not match plan currency %s", ErrValidation, pricePerShare.Currency(), l.plan.Currency)
	}
	return shares, pricePerShare, nil
}

// UpdateCurrentPrice sets a position's mark price. Historical buys are never
// touched.
func (l *Ledger) UpdateCurrentPrice(id string, price Money) error {
	p := l.Position(id)
	if p == nil {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if !price.IsPositive() {
		return fmt.Errorf("%w: price must be positive, got %s", ErrValidation, price)
	}
	if price.Currency() != "" && price.Currency() != l.plan.Currency {
		return fmt.Errorf("%w: price currency %s does not match plan currency %s", ErrValidation, price.Currency(), l.plan.Currency)
	}
	p.CurrentPrice = M(price.value, l.plan.Currency)
	return nil
}

// ApplyPrices updates the mark price of every position the feed knows about
// and returns how many positions were updated.
func (l *Ledger) ApplyPrices(feed PriceFeed) int {
	var updated int
	for _, p := range l.positions {
		price, ok := feed.Price(p.Ticker)
		if !ok || !price.IsPositive() {
			continue
		}
		p.CurrentPrice = M(price.value, l.plan.Currency)
		updated++
	}
	return updated
}

// DeletePosition removes a position and its whole buy history. This is an
// administrative escape hatch that bypasses the quarter and budget
// invariants; callers must gate it behind AccessControl.
func (l *Ledger) DeletePosition(id string) error {
	for i, p := range l.positions {
		if p.ID == id {
			l.positions = slices.Delete(l.positions, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrNotFound, id)
}
