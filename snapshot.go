package dcaplan

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// numbers are written bare in snapshots, like every other json writer.
	decimal.MarshalJSONWithoutQuotes = true
}

// Snapshot is the wire form of a whole ledger. It is what stores persist and
// what the ledger is rebuilt from. Key order is stable so two snapshots of
// the same ledger are byte-identical and diff cleanly.
type Snapshot struct {
	Plan      PlanConfig
	Positions []*Position
}

// DefaultSnapshot is what a store returns when nothing was ever saved.
func DefaultSnapshot() *Snapshot { return &Snapshot{Plan: DefaultPlan()} }

// Snapshot returns a deep copy of the ledger's state, positions in
// chronological order of their opening month.
func (l *Ledger) Snapshot() *Snapshot {
	s := &Snapshot{Plan: l.plan}
	for p := range l.Positions() {
		s.Positions = append(s.Positions, p.clone())
	}
	return s
}

// FromSnapshot rebuilds a ledger. A nil snapshot yields the default empty
// ledger, so stores can hand back "nothing saved yet" without a special case.
func FromSnapshot(s *Snapshot) (*Ledger, error) {
	if s == nil {
		return NewLedger(), nil
	}
	plan := s.Plan
	if plan.Currency == "" {
		plan.Currency = DefaultPlan().Currency
	}
	if plan.Start.IsZero() && plan.End.IsZero() {
		def := DefaultPlan()
		plan.Start, plan.End = def.Start, def.End
	}
	if plan.MonthlyTarget.IsZero() {
		plan.MonthlyTarget = M(DefaultPlan().MonthlyTarget.value, plan.Currency)
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	l := &Ledger{plan: plan}
	for _, p := range s.Positions {
		l.positions = append(l.positions, p.clone())
	}
	return l, nil
}

// MarshalJSON writes the snapshot in canonical key order.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	positions := make([]*jsonObjectWriter, 0, len(s.Positions))
	for _, p := range s.Positions {
		positions = append(positions, positionToJSON(p))
	}
	obj := &jsonObjectWriter{}
	obj.Append("planConfig", planToJSON(s.Plan))
	obj.Append("positions", positions)
	return json.MarshalIndent(obj, "", "  ")
}

func planToJSON(p PlanConfig) *jsonObjectWriter {
	obj := &jsonObjectWriter{}
	obj.Append("monthlyTarget", p.MonthlyTarget.value)
	obj.Append("startMonth", p.Start)
	obj.Append("endMonth", p.End)
	obj.Append("currency", p.Currency)
	return obj
}

func positionToJSON(p *Position) *jsonObjectWriter {
	obj := &jsonObjectWriter{}
	obj.Append("id", p.ID)
	obj.Append("ticker", p.Ticker)
	obj.Append("name", p.DisplayName)
	obj.Append("addedQuarter", p.AddedQuarter)
	obj.Append("addedMonth", p.AddedMonth)
	obj.Append("currentPrice", p.CurrentPrice.value)
	buys := make([]*jsonObjectWriter, 0, len(p.buys))
	for _, b := range p.buys {
		buy := &jsonObjectWriter{}
		buy.Append("month", b.Month)
		buy.Optional("date", b.Date)
		buy.Append("shares", b.Shares)
		buy.Append("pricePerShare", b.PricePerShare.value)
		buy.Append("amount", b.Amount.value)
		buy.Append("locked", true)
		buys = append(buys, buy)
	}
	obj.Append("buys", buys)
	return obj
}

// intermediate decoding forms, loose on purpose so old or hand-edited
// snapshots still load.
type snapshotJSON struct {
	Plan      planJSON       `json:"planConfig"`
	Positions []positionJSON `json:"positions"`
}

type planJSON struct {
	MonthlyTarget decimal.Decimal `json:"monthlyTarget"`
	StartMonth    string          `json:"startMonth"`
	EndMonth      string          `json:"endMonth"`
	Currency      string          `json:"currency"`
}

type positionJSON struct {
	ID           string          `json:"id"`
	Ticker       string          `json:"ticker"`
	Name         string          `json:"name"`
	AddedQuarter string          `json:"addedQuarter"`
	AddedMonth   string          `json:"addedMonth"`
	CurrentPrice decimal.Decimal `json:"currentPrice"`
	Buys         []buyJSON       `json:"buys"`
}

type buyJSON struct {
	Month         string          `json:"month"`
	Date          string          `json:"date"`
	Shares        decimal.Decimal `json:"shares"`
	PricePerShare decimal.Decimal `json:"pricePerShare"`
	Amount        decimal.Decimal `json:"amount"`
}

// UnmarshalJSON reads a snapshot, quick-fixing fields an older writer may
// have omitted: the plan currency defaults to USD, a position's opening
// month derives from its quarter, a buy amount from shares times price, an
// id from the ticker and quarter.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var raw snapshotJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrParse, err)
	}
	currency := raw.Plan.Currency
	if currency == "" {
		currency = DefaultPlan().Currency
	}
	plan := PlanConfig{
		Currency:      currency,
		MonthlyTarget: M(raw.Plan.MonthlyTarget, currency),
	}
	var err error
	if raw.Plan.StartMonth != "" {
		if plan.Start, err = ParseMonth(raw.Plan.StartMonth); err != nil {
			return err
		}
	}
	if raw.Plan.EndMonth != "" {
		if plan.End, err = ParseMonth(raw.Plan.EndMonth); err != nil {
			return err
		}
	}
	s.Plan = plan

	s.Positions = nil
	for _, rp := range raw.Positions {
		p, err := positionFromJSON(rp, currency)
		if err != nil {
			return err
		}
		s.Positions = append(s.Positions, p)
	}
	return nil
}

func positionFromJSON(rp positionJSON, currency string) (*Position, error) {
	quarter, err := ParseQuarter(rp.AddedQuarter)
	if err != nil {
		return nil, fmt.Errorf("position %s: %w", rp.Ticker, err)
	}
	p := &Position{
		ID:           rp.ID,
		Ticker:       strings.ToUpper(rp.Ticker),
		DisplayName:  rp.Name,
		AddedQuarter: quarter,
		AddedMonth:   quarter.FirstMonth(),
		CurrentPrice: M(rp.CurrentPrice, currency),
	}
	if rp.AddedMonth != "" {
		if p.AddedMonth, err = ParseMonth(rp.AddedMonth); err != nil {
			return nil, fmt.Errorf("position %s: %w", rp.Ticker, err)
		}
	}
	if p.ID == "" {
		p.ID = positionID(p.Ticker, quarter)
	}
	if p.DisplayName == "" {
		p.DisplayName = p.Ticker
	}
	for _, rb := range rp.Buys {
		b := Buy{
			Shares:        Q(rb.Shares),
			PricePerShare: M(rb.PricePerShare, currency),
			Amount:        M(rb.Amount, currency),
		}
		if b.Month, err = ParseMonth(rb.Month); err != nil {
			return nil, fmt.Errorf("position %s: %w", rp.Ticker, err)
		}
		if rb.Date != "" {
			if b.Date, err = ParseDate(rb.Date); err != nil {
				return nil, fmt.Errorf("position %s: %w", rp.Ticker, err)
			}
		}
		if b.Amount.IsZero() {
			b.Amount = b.PricePerShare.Mul(b.Shares)
		}
		p.appendBuy(b)
	}
	return p, nil
}
