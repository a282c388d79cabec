package dcaplan

// PositionMetrics are the derived figures for a single position. They are
// computed on demand from the buy history and the mark price, never stored.
type PositionMetrics struct {
	TotalShares     Quantity
	TotalInvested   Money
	AvgPrice        Money // TotalInvested / TotalShares, zero when no shares
	CurrentValue    Money // TotalShares * CurrentPrice
	Profit          Money // CurrentValue - TotalInvested
	ReturnPct       Percent
	RemainingBudget Money // budget cap minus TotalInvested, never negative
	BudgetUsedPct   Percent
}

// PortfolioMetrics aggregate every position's figures.
type PortfolioMetrics struct {
	TotalInvested Money
	CurrentValue  Money
	Profit        Money
	ReturnPct     Percent
}

// Metrics computes the derived figures for one position.
func (l *Ledger) Metrics(p *Position) PositionMetrics {
	var m PositionMetrics
	m.TotalShares = p.TotalShares()
	m.TotalInvested = p.TotalInvested()
	m.AvgPrice = M(0, l.plan.Currency)
	if m.TotalShares.IsPositive() {
		m.AvgPrice = m.TotalInvested.Div(m.TotalShares)
	}
	m.CurrentValue = p.CurrentPrice.Mul(m.TotalShares)
	m.Profit = m.CurrentValue.Sub(m.TotalInvested)
	m.ReturnPct = ratio(m.Profit, m.TotalInvested)

	budget := l.plan.BudgetCap()
	m.RemainingBudget = budget.Sub(m.TotalInvested)
	if m.RemainingBudget.IsNegative() {
		// only possible on snapshots written by an older cap rule.
		m.RemainingBudget = M(0, l.plan.Currency)
	}
	m.BudgetUsedPct = ratio(m.TotalInvested, budget)
	return m
}

// Portfolio computes the aggregate figures over every position.
func (l *Ledger) Portfolio() PortfolioMetrics {
	invested := M(0, l.plan.Currency)
	value := M(0, l.plan.Currency)
	for _, p := range l.positions {
		m := l.Metrics(p)
		invested = invested.Add(m.TotalInvested)
		value = value.Add(m.CurrentValue)
	}
	profit := value.Sub(invested)
	return PortfolioMetrics{
		TotalInvested: invested,
		CurrentValue:  value,
		Profit:        profit,
		ReturnPct:     ratio(profit, invested),
	}
}

// ratio returns part/whole as a percentage, zero when whole is zero.
func ratio(part, whole Money) Percent {
	if whole.IsZero() {
		return 0
	}
	return Percent(part.AsFloat() / whole.AsFloat() * 100)
}
