package dcaplan

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 0.01 }

func TestPositionMetrics(t *testing.T) {
	l := NewLedger()
	id, err := l.AddPosition("VOO", "", MustQuarter("Q1 2026"), Date{}, Q(50), M(100, "USD"), Money{})
	if err != nil {
		t.Fatal(err)
	}
	if err := l.RecordBuy(id, MustMonth("2026-02"), Date{}, Q(48), M(104.166666, "USD")); err != nil {
		t.Fatal(err)
	}
	if err := l.UpdateCurrentPrice(id, M(120, "USD")); err != nil {
		t.Fatal(err)
	}
	m := l.Metrics(l.Position(id))
	if !m.TotalShares.Equal(Q(98)) {
		t.Errorf("TotalShares = %s, want 98", m.TotalShares)
	}
	if !almostEqual(m.TotalInvested.AsFloat(), 10000) {
		t.Errorf("TotalInvested = %v, want 10000", m.TotalInvested.AsFloat())
	}
	if !almostEqual(m.AvgPrice.AsFloat(), 102.04) {
		t.Errorf("AvgPrice = %v, want 102.04", m.AvgPrice.AsFloat())
	}
	if !almostEqual(m.CurrentValue.AsFloat(), 11760) {
		t.Errorf("CurrentValue = %v, want 11760", m.CurrentValue.AsFloat())
	}
	if !almostEqual(m.Profit.AsFloat(), 1760) {
		t.Errorf("Profit = %v, want 1760", m.Profit.AsFloat())
	}
	if !almostEqual(float64(m.ReturnPct), 17.60) {
		t.Errorf("ReturnPct = %v, want 17.60", m.ReturnPct)
	}
	if !almostEqual(float64(m.BudgetUsedPct), 100) {
		t.Errorf("BudgetUsedPct = %v, want 100", m.BudgetUsedPct)
	}
	if !almostEqual(m.RemainingBudget.AsFloat(), 0) {
		t.Errorf("RemainingBudget = %v, want about 0", m.RemainingBudget.AsFloat())
	}
}

func TestMetricsZeroCases(t *testing.T) {
	l := NewLedger()
	// a position decoded from a snapshot may carry no buys.
	p := &Position{
		ID:           "x-2026q1",
		Ticker:       "X",
		AddedQuarter: MustQuarter("Q1 2026"),
		AddedMonth:   MustMonth("2026-01"),
		CurrentPrice: M(50, "USD"),
	}
	m := l.Metrics(p)
	if !m.AvgPrice.IsZero() {
		t.Errorf("AvgPrice with no shares = %s, want 0", m.AvgPrice)
	}
	if m.ReturnPct != 0 {
		t.Errorf("ReturnPct with nothing invested = %v, want 0", m.ReturnPct)
	}
	if !m.RemainingBudget.Equal(M(BudgetCapUnits, "USD")) {
		t.Errorf("RemainingBudget = %s, want the full cap", m.RemainingBudget)
	}
}

func TestPortfolioMetrics(t *testing.T) {
	l := NewLedger()
	a, err := l.AddPosition("AAA", "", MustQuarter("Q1 2026"), Date{}, Q(10), M(100, "USD"), Money{})
	if err != nil {
		t.Fatal(err)
	}
	b, err := l.AddPosition("BBB", "", MustQuarter("Q2 2026"), Date{}, Q(20), M(50, "USD"), Money{})
	if err != nil {
		t.Fatal(err)
	}
	if err := l.UpdateCurrentPrice(a, M(110, "USD")); err != nil {
		t.Fatal(err)
	}
	if err := l.UpdateCurrentPrice(b, M(40, "USD")); err != nil {
		t.Fatal(err)
	}
	pm := l.Portfolio()
	if !pm.TotalInvested.Equal(M(2000, "USD")) {
		t.Errorf("TotalInvested = %s, want USD 2000", pm.TotalInvested)
	}
	// 10*110 + 20*40 = 1900.
	if !pm.CurrentValue.Equal(M(1900, "USD")) {
		t.Errorf("CurrentValue = %s, want USD 1900", pm.CurrentValue)
	}
	if !pm.Profit.Equal(M(-100, "USD")) {
		t.Errorf("Profit = %s, want USD -100", pm.Profit)
	}
	if !almostEqual(float64(pm.ReturnPct), -5) {
		t.Errorf("ReturnPct = %v, want -5", pm.ReturnPct)
	}
}

func TestPortfolioMetricsEmpty(t *testing.T) {
	l := NewLedger()
	pm := l.Portfolio()
	if !pm.TotalInvested.IsZero() || !pm.CurrentValue.IsZero() || pm.ReturnPct != 0 {
		t.Errorf("empty portfolio metrics = %+v, want zeros", pm)
	}
}
