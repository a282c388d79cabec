package dcaplan

import (
	"testing"
)

func setupReportLedger(t *testing.T) *Ledger {
	t.Helper()
	l := NewLedger()
	a, err := l.AddPosition("AAPL", "", MustQuarter("Q1 2026"), Date{}, Q(10), M(100, "USD"), Money{})
	if err != nil {
		t.Fatal(err)
	}
	if err := l.RecordBuy(a, MustMonth("2026-02"), Date{}, Q(5), M(110, "USD")); err != nil {
		t.Fatal(err)
	}
	if err := l.RecordBuy(a, MustMonth("2027-01"), Date{}, Q(4), M(120, "USD")); err != nil {
		t.Fatal(err)
	}
	if _, err := l.AddPosition("MSFT", "", MustQuarter("Q2 2026"), Date{}, Q(3), M(200, "USD"), Money{}); err != nil {
		t.Fatal(err)
	}
	return l
}

func TestMonthlyBreakdown(t *testing.T) {
	l := setupReportLedger(t)
	buckets := l.MonthlyBreakdown(2026)
	if len(buckets) != 12 {
		t.Fatalf("MonthlyBreakdown() returned %d buckets, want 12", len(buckets))
	}

	jan := buckets[0]
	if !jan.Invested.Equal(M(1000, "USD")) || jan.BuyCount != 1 || !jan.NewPosition {
		t.Errorf("january = %+v, want 1000 invested, 1 buy, new position", jan)
	}
	if len(jan.Openings) != 1 || jan.Openings[0] != "AAPL" {
		t.Errorf("january openings = %v, want [AAPL]", jan.Openings)
	}

	feb := buckets[1]
	if !feb.Invested.Equal(M(550, "USD")) || feb.BuyCount != 1 || feb.NewPosition {
		t.Errorf("february = %+v, want 550 invested, 1 buy, no opening", feb)
	}

	apr := buckets[3]
	if !apr.Invested.Equal(M(600, "USD")) || !apr.NewPosition {
		t.Errorf("april = %+v, want the MSFT opening", apr)
	}

	mar := buckets[2]
	if !mar.Invested.IsZero() || mar.BuyCount != 0 || mar.NewPosition {
		t.Errorf("march = %+v, want an empty bucket", mar)
	}
}

func TestMonthlyBreakdownOtherYear(t *testing.T) {
	l := setupReportLedger(t)
	buckets := l.MonthlyBreakdown(2027)
	jan := buckets[0]
	if !jan.Invested.Equal(M(480, "USD")) || jan.BuyCount != 1 {
		t.Errorf("january 2027 = %+v, want the 480 follow-up buy", jan)
	}
	// a follow-up buy never counts as an opening.
	if jan.NewPosition {
		t.Error("january 2027 flagged as opening a position")
	}
}

func TestYearlyTotals(t *testing.T) {
	l := setupReportLedger(t)
	totals := l.YearlyTotals()
	if len(totals) != 3 {
		t.Fatalf("YearlyTotals() returned %d years, want 3", len(totals))
	}

	y2026 := totals[0]
	if y2026.Year != 2026 {
		t.Fatalf("first year = %d, want 2026", y2026.Year)
	}
	if !y2026.TotalInvested.Equal(M(2150, "USD")) {
		t.Errorf("2026 invested = %s, want USD 2150", y2026.TotalInvested)
	}
	if y2026.ActiveMonths != 3 || y2026.PositionsOpened != 2 {
		t.Errorf("2026 active months = %d, opened = %d, want 3 and 2", y2026.ActiveMonths, y2026.PositionsOpened)
	}
	if !y2026.AvgPerActiveMonth.Equal(M(2150, "USD").Div(Q(3))) {
		t.Errorf("2026 average = %s", y2026.AvgPerActiveMonth)
	}

	y2027 := totals[1]
	if !y2027.TotalInvested.Equal(M(480, "USD")) || y2027.ActiveMonths != 1 || y2027.PositionsOpened != 0 {
		t.Errorf("2027 = %+v, want 480 over one active month", y2027)
	}

	// an idle year still shows, zeroed.
	y2028 := totals[2]
	if y2028.ActiveMonths != 0 || !y2028.TotalInvested.IsZero() || !y2028.AvgPerActiveMonth.IsZero() {
		t.Errorf("2028 = %+v, want an idle year", y2028)
	}
}
