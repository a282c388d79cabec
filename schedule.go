package dcaplan

import "fmt"

// The schedule engine answers one question per position: which months owe an
// installment, and which of them comes next. Everything is derived from the
// ledger on demand, nothing is stored.

// EligibleMonths returns the months of the plan horizon at or after the
// position's opening month, in chronological order. A horizon moved past the
// opening month (or past the position entirely) shrinks the result; months
// outside the horizon are never owed.
func (l *Ledger) EligibleMonths(p *Position) []Month {
	if p == nil {
		return nil
	}
	start := p.AddedMonth
	if start.Before(l.plan.Start) {
		start = l.plan.Start
	}
	if start.After(l.plan.End) {
		return nil
	}
	months, err := MonthsBetween(start, l.plan.End)
	if err != nil {
		// start <= End was checked above.
		panic(err)
	}
	return months
}

// NextUnfilledMonth returns the next eligible month of this position without
// a buy, relative to the current month. Months at or before current come
// first, oldest first, so a lapsed plan catches up before scheduling ahead.
// The boolean is false when every eligible month is filled.
func (l *Ledger) NextUnfilledMonth(id string, current Month) (Month, bool, error) {
	p := l.Position(id)
	if p == nil {
		return Month{}, false, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	var future Month
	var hasFuture bool
	for _, m := range l.EligibleMonths(p) {
		if p.HasBuyIn(m) {
			continue
		}
		if !m.After(current) {
			return m, true, nil
		}
		if !hasFuture {
			future, hasFuture = m, true
		}
	}
	return future, hasFuture, nil
}

// RemainingMonths counts the eligible months of this position that have no
// buy yet. Extra same-month buys never drive the count below zero.
func (l *Ledger) RemainingMonths(id string) (int, error) {
	p := l.Position(id)
	if p == nil {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	var n int
	for _, m := range l.EligibleMonths(p) {
		if !p.HasBuyIn(m) {
			n++
		}
	}
	return n, nil
}
