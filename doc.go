// Package dcaplan implements the ledger and scheduling engine behind a
// dollar-cost-averaging investment plan. The plan is deliberately rigid:
// one new position may be opened per calendar quarter, every position is
// funded by monthly installments over a fixed horizon, and no position may
// ever accumulate more than the global budget cap.
//
// The core functionalities include:
//   - Position Ledger: positions and their append-only buy history. Buys
//     are immutable once recorded; every mutation validates fully before
//     touching any state.
//   - Calendar Arithmetic: month and quarter value types ("2026-01",
//     "Q1 2026") and the horizon enumeration everything else derives from.
//   - Schedule Engine: which calendar month is next actionable for each
//     position, including catch-up for missed installments.
//   - Metrics Engine: per-position and aggregate financials (invested,
//     average price, current value, profit, budget usage), recomputed from
//     the ledger on every query and never cached.
//   - Report Aggregator: monthly and yearly breakdowns of the buy history.
//   - Data Persistence: a full-snapshot document written after each
//     successful mutation, with file, Redis and SQLite backed stores.
//
// This package serves as the foundational logic for the `dcp` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package dcaplan
