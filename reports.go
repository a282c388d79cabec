package dcaplan

import "time"

// MonthBucket aggregates the activity of a single calendar month.
type MonthBucket struct {
	Month       Month
	Invested    Money
	BuyCount    int
	NewPosition bool     // a position opened this month
	Openings    []string // tickers of the positions opened this month
}

// YearTotals aggregate a calendar year of the plan.
type YearTotals struct {
	Year              int
	TotalInvested     Money
	ActiveMonths      int // months of the year with at least one buy
	PositionsOpened   int
	AvgPerActiveMonth Money // TotalInvested / ActiveMonths, zero when idle
}

// MonthlyBreakdown returns the twelve buckets of a calendar year, January
// first. Months with no activity are present with zero values so renderers
// can show every row.
func (l *Ledger) MonthlyBreakdown(year int) []MonthBucket {
	buckets := make([]MonthBucket, 12)
	for i := range buckets {
		buckets[i].Month = NewMonth(year, time.Month(i+1))
		buckets[i].Invested = M(0, l.plan.Currency)
	}
	for _, p := range l.positions {
		for i, b := range p.Buys() {
			if b.Month.Year() != year {
				continue
			}
			bucket := &buckets[int(b.Month.Month())-1]
			bucket.Invested = bucket.Invested.Add(b.Amount)
			bucket.BuyCount++
			// the first buy in the sorted history is the opening one.
			if i == 0 {
				bucket.NewPosition = true
				bucket.Openings = append(bucket.Openings, p.Ticker)
			}
		}
	}
	return buckets
}

// YearlyTotals aggregates every year of the plan horizon, ascending. Years
// with no activity still appear so the horizon reads complete.
func (l *Ledger) YearlyTotals() []YearTotals {
	var totals []YearTotals
	for year := l.plan.Start.Year(); year <= l.plan.End.Year(); year++ {
		t := YearTotals{
			Year:              year,
			TotalInvested:     M(0, l.plan.Currency),
			AvgPerActiveMonth: M(0, l.plan.Currency),
		}
		for _, bucket := range l.MonthlyBreakdown(year) {
			if bucket.BuyCount == 0 {
				continue
			}
			t.TotalInvested = t.TotalInvested.Add(bucket.Invested)
			t.ActiveMonths++
			t.PositionsOpened += len(bucket.Openings)
		}
		if t.ActiveMonths > 0 {
			t.AvgPerActiveMonth = t.TotalInvested.Div(Q(t.ActiveMonths))
		}
		totals = append(totals, t)
	}
	return totals
}
