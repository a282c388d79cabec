package dcaplan

import (
	"errors"
	"testing"
)

func TestEligibleMonths(t *testing.T) {
	l := NewLedger()
	id, err := l.AddPosition("VTI", "", MustQuarter("Q3 2027"), Date{}, Q(1), M(100, "USD"), Money{})
	if err != nil {
		t.Fatal(err)
	}
	months := l.EligibleMonths(l.Position(id))
	// 2027-07 through 2028-12.
	if len(months) != 18 {
		t.Fatalf("EligibleMonths() returned %d months, want 18", len(months))
	}
	if months[0] != MustMonth("2027-07") || months[len(months)-1] != MustMonth("2028-12") {
		t.Errorf("EligibleMonths() bounds = %s..%s, want 2027-07..2028-12", months[0], months[len(months)-1])
	}
}

func TestEligibleMonthsTrackHorizonStart(t *testing.T) {
	l, id := newTestLedger(t) // opened 2026-01
	p := l.Plan()
	p.Start = MustMonth("2026-06")
	if err := l.SetPlan(p); err != nil {
		t.Fatal(err)
	}
	months := l.EligibleMonths(l.Position(id))
	if len(months) != 31 {
		t.Fatalf("EligibleMonths() returned %d months, want 31", len(months))
	}
	if months[0] != MustMonth("2026-06") {
		t.Errorf("EligibleMonths() starts at %s, want the moved start 2026-06", months[0])
	}
	// a buy before the moved start is no longer owed nor accepted.
	if err := l.RecordBuy(id, MustMonth("2026-03"), Date{}, Q(1), M(100, "USD")); !errors.Is(err, ErrValidation) {
		t.Errorf("RecordBuy() before the horizon error = %v, want ErrValidation", err)
	}
	if err := l.RecordBuy(id, MustMonth("2026-06"), Date{}, Q(1), M(100, "USD")); err != nil {
		t.Fatalf("RecordBuy() at the moved start failed: %v", err)
	}
	if got, ok, err := l.NextUnfilledMonth(id, MustMonth("2026-01")); err != nil || !ok || got != MustMonth("2026-07") {
		t.Errorf("NextUnfilledMonth() = %s, %v, %v, want 2026-07", got, ok, err)
	}
	if n, err := l.RemainingMonths(id); err != nil || n != 30 {
		t.Errorf("RemainingMonths() = %d, %v, want 30", n, err)
	}
}

func TestEligibleMonthsHorizonPastPosition(t *testing.T) {
	l := NewLedger()
	p := l.Plan()
	p.Start, p.End = MustMonth("2026-01"), MustMonth("2026-09")
	if err := l.SetPlan(p); err != nil {
		t.Fatal(err)
	}
	id, err := l.AddPosition("SPY", "", MustQuarter("Q4 2026"), Date{}, Q(1), M(100, "USD"), Money{})
	if err == nil {
		t.Fatalf("AddPosition() past the horizon succeeded, id %s", id)
	}
	// open inside the horizon, then shrink it past the opening month.
	id, err = l.AddPosition("SPY", "", MustQuarter("Q3 2026"), Date{}, Q(1), M(100, "USD"), Money{})
	if err != nil {
		t.Fatal(err)
	}
	p.End = MustMonth("2026-06")
	if err := l.SetPlan(p); err != nil {
		t.Fatal(err)
	}
	if months := l.EligibleMonths(l.Position(id)); months != nil {
		t.Errorf("EligibleMonths() = %v, want none outside the horizon", months)
	}
	if n, err := l.RemainingMonths(id); err != nil || n != 0 {
		t.Errorf("RemainingMonths() = %d, %v, want 0", n, err)
	}
	if _, ok, err := l.NextUnfilledMonth(id, MustMonth("2026-07")); err != nil || ok {
		t.Errorf("NextUnfilledMonth() = %v, %v, want none", ok, err)
	}
}

func TestNextUnfilledMonth(t *testing.T) {
	l, id := newTestLedger(t)
	if err := l.RecordBuy(id, MustMonth("2026-02"), Date{}, Q(1), M(100, "USD")); err != nil {
		t.Fatal(err)
	}
	// opening month and february are filled.
	testCases := []struct {
		name    string
		current Month
		want    Month
		wantOK  bool
	}{
		{name: "current before any gap", current: MustMonth("2026-01"), want: MustMonth("2026-03"), wantOK: true},
		{name: "gap in the past wins", current: MustMonth("2026-06"), want: MustMonth("2026-03"), wantOK: true},
		{name: "current past the horizon still catches up", current: MustMonth("2029-06"), want: MustMonth("2026-03"), wantOK: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok, err := l.NextUnfilledMonth(id, tc.current)
			if err != nil {
				t.Fatalf("NextUnfilledMonth() failed: %v", err)
			}
			if ok != tc.wantOK || got != tc.want {
				t.Errorf("NextUnfilledMonth(%s) = %s, %v, want %s, %v", tc.current, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestNextUnfilledMonthPrefersCatchUp(t *testing.T) {
	l, id := newTestLedger(t)
	// fill february, leave march empty, stand in april.
	if err := l.RecordBuy(id, MustMonth("2026-02"), Date{}, Q(1), M(100, "USD")); err != nil {
		t.Fatal(err)
	}
	if err := l.RecordBuy(id, MustMonth("2026-04"), Date{}, Q(1), M(100, "USD")); err != nil {
		t.Fatal(err)
	}
	got, ok, err := l.NextUnfilledMonth(id, MustMonth("2026-04"))
	if err != nil || !ok {
		t.Fatalf("NextUnfilledMonth() = %v, %v", ok, err)
	}
	if got != MustMonth("2026-03") {
		t.Errorf("NextUnfilledMonth() = %s, want the lapsed 2026-03", got)
	}
}

func TestNextUnfilledMonthAllFilled(t *testing.T) {
	l := NewLedger()
	p := l.Plan()
	p.Start, p.End = MustMonth("2026-01"), MustMonth("2026-03")
	if err := l.SetPlan(p); err != nil {
		t.Fatal(err)
	}
	id, err := l.AddPosition("SPY", "", MustQuarter("Q1 2026"), Date{}, Q(1), M(100, "USD"), Money{})
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range []string{"2026-02", "2026-03"} {
		if err := l.RecordBuy(id, MustMonth(m), Date{}, Q(1), M(100, "USD")); err != nil {
			t.Fatal(err)
		}
	}
	if _, ok, err := l.NextUnfilledMonth(id, MustMonth("2026-03")); err != nil || ok {
		t.Errorf("NextUnfilledMonth() on a complete position = %v, %v, want none", ok, err)
	}
	if n, err := l.RemainingMonths(id); err != nil || n != 0 {
		t.Errorf("RemainingMonths() = %d, %v, want 0", n, err)
	}
}

func TestRemainingMonths(t *testing.T) {
	l, id := newTestLedger(t)
	n, err := l.RemainingMonths(id)
	if err != nil {
		t.Fatal(err)
	}
	// 36 eligible months, the opening one filled.
	if n != 35 {
		t.Errorf("RemainingMonths() = %d, want 35", n)
	}
	// an extra buy in an already filled month changes nothing.
	if err := l.RecordBuy(id, MustMonth("2026-01"), Date{}, Q(1), M(100, "USD")); err != nil {
		t.Fatal(err)
	}
	if n, _ = l.RemainingMonths(id); n != 35 {
		t.Errorf("RemainingMonths() after a same-month buy = %d, want 35", n)
	}
}

func TestScheduleUnknownPosition(t *testing.T) {
	l := NewLedger()
	if _, _, err := l.NextUnfilledMonth("nope", MustMonth("2026-01")); !errors.Is(err, ErrNotFound) {
		t.Errorf("NextUnfilledMonth() error = %v, want ErrNotFound", err)
	}
	if _, err := l.RemainingMonths("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("RemainingMonths() error = %v, want ErrNotFound", err)
	}
}
