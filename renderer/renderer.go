// Package renderer turns ledger queries into markdown reports for the
// command line tool.
package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/averch/dcaplan"
)

// PositionsMarkdown renders every position with its derived metrics.
func PositionsMarkdown(l *dcaplan.Ledger) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Positions")
	if l.Len() == 0 {
		doc.PlainText("No positions yet. Open one with `dcp add`.")
		return doc.String()
	}

	var rows [][]string
	for p := range l.Positions() {
		m := l.Metrics(p)
		rows = append(rows, []string{
			p.ID,
			p.Ticker,
			p.AddedQuarter.String(),
			m.TotalShares.String(),
			m.AvgPrice.String(),
			m.TotalInvested.String(),
			m.CurrentValue.String(),
			m.Profit.SignedString(),
			m.ReturnPct.SignedString(),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"ID", "Ticker", "Opened", "Shares", "Avg Price", "Invested", "Value", "Profit", "Return"},
		Rows:   rows,
	})
	return doc.String()
}

// ScheduleMarkdown renders the installment state of every position as of the
// given month.
func ScheduleMarkdown(l *dcaplan.Ledger, current dcaplan.Month) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Schedule as of %s", current))
	if l.Len() == 0 {
		doc.PlainText("No positions yet.")
		return doc.String()
	}

	var rows [][]string
	for p := range l.Positions() {
		next, ok, err := l.NextUnfilledMonth(p.ID, current)
		if err != nil {
			continue
		}
		nextLabel := "complete"
		if ok {
			nextLabel = next.String()
			if next.Before(current) {
				nextLabel += " (late)"
			}
		}
		remaining, _ := l.RemainingMonths(p.ID)
		m := l.Metrics(p)
		rows = append(rows, []string{
			p.Ticker,
			nextLabel,
			fmt.Sprintf("%d", remaining),
			m.RemainingBudget.String(),
			m.BudgetUsedPct.Clamped(100).String(),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Ticker", "Next Month", "Months Left", "Budget Left", "Budget Used"},
		Rows:   rows,
	})
	return doc.String()
}

// MonthlyMarkdown renders the twelve month buckets of a year.
func MonthlyMarkdown(l *dcaplan.Ledger, year int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Monthly Breakdown %d", year))
	var rows [][]string
	for _, b := range l.MonthlyBreakdown(year) {
		opened := ""
		for i, ticker := range b.Openings {
			if i > 0 {
				opened += ", "
			}
			opened += ticker
		}
		rows = append(rows, []string{
			b.Month.String(),
			b.Invested.SignedString(),
			fmt.Sprintf("%d", b.BuyCount),
			opened,
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Month", "Invested", "Buys", "Opened"},
		Rows:   rows,
	})
	return doc.String()
}

// YearlyMarkdown renders the totals of every year of the plan horizon.
func YearlyMarkdown(l *dcaplan.Ledger) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Yearly Totals")
	var rows [][]string
	for _, y := range l.YearlyTotals() {
		rows = append(rows, []string{
			fmt.Sprintf("%d", y.Year),
			y.TotalInvested.SignedString(),
			fmt.Sprintf("%d", y.ActiveMonths),
			fmt.Sprintf("%d", y.PositionsOpened),
			y.AvgPerActiveMonth.SignedString(),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Year", "Invested", "Active Months", "Opened", "Avg / Active Month"},
		Rows:   rows,
	})
	return doc.String()
}

// SummaryMarkdown renders the whole-portfolio aggregate.
func SummaryMarkdown(l *dcaplan.Ledger) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	pm := l.Portfolio()
	doc.H1("Plan Summary")
	doc.PlainText(fmt.Sprintf("Positions: %d", l.Len()))
	doc.Table(md.TableSet{
		Header: []string{"Invested", "Value", "Profit", "Return"},
		Rows: [][]string{{
			pm.TotalInvested.String(),
			pm.CurrentValue.String(),
			pm.Profit.SignedString(),
			pm.ReturnPct.SignedString(),
		}},
	})
	return doc.String()
}

// PlanMarkdown renders the plan configuration itself.
func PlanMarkdown(p dcaplan.PlanConfig) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Plan Configuration")
	doc.Table(md.TableSet{
		Header: []string{"Setting", "Value"},
		Rows: [][]string{
			{"Currency", p.Currency},
			{"Monthly target", p.MonthlyTarget.String()},
			{"Horizon", fmt.Sprintf("%s to %s", p.Start, p.End)},
			{"Budget cap per position", p.BudgetCap().String()},
		},
	})
	return doc.String()
}
