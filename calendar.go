package dcaplan

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MonthFormat is the token format used to represent months as strings.
const MonthFormat = "2006-01"

// Month represents a calendar month ("YYYY-MM"), the plan's scheduling unit.
type Month struct {
	y int
	m time.Month
}

// NewMonth returns a normalized Month for the given year and month.
func NewMonth(year int, month time.Month) Month {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Month{y: t.Year(), m: t.Month()}
}

// ThisMonth returns the current calendar month.
func ThisMonth() Month {
	now := time.Now()
	return NewMonth(now.Year(), now.Month())
}

// Year returns the month's year.
func (m Month) Year() int { return m.y }

// Month returns the month within the year.
func (m Month) Month() time.Month { return m.m }

// IsZero returns true if the month is the zero value.
func (m Month) IsZero() bool { return m.y == 0 && m.m == 0 }

// String formats the month as its "YYYY-MM" token.
func (m Month) String() string { return fmt.Sprintf("%04d-%02d", m.y, int(m.m)) }

// index counts months since year zero so ordering and distance are plain ints.
func (m Month) index() int { return m.y*12 + int(m.m) - 1 }

// Before reports whether m is strictly before x.
func (m Month) Before(x Month) bool { return m.index() < x.index() }

// After reports whether m is strictly after x.
func (m Month) After(x Month) bool { return m.index() > x.index() }

// Compare orders two months chronologically, for sorting.
func (m Month) Compare(x Month) int { return m.index() - x.index() }

// AddMonths returns the month i months after m (before, for negative i).
func (m Month) AddMonths(i int) Month { return NewMonth(m.y, m.m+time.Month(i)) }

// Next returns the following calendar month.
func (m Month) Next() Month { return m.AddMonths(1) }

// Quarter returns the calendar quarter containing m.
func (m Month) Quarter() Quarter { return Quarter{y: m.y, q: (int(m.m)-1)/3 + 1} }

// ParseMonth parses a "YYYY-MM" token.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(MonthFormat, strings.TrimSpace(s))
	if err != nil {
		return Month{}, fmt.Errorf("%w: month %q, want format %q", ErrParse, s, MonthFormat)
	}
	return NewMonth(t.Year(), t.Month()), nil
}

// MustMonth is like ParseMonth but panics on error.
func MustMonth(s string) Month {
	m, err := ParseMonth(s)
	if err != nil {
		panic(err.Error())
	}
	return m
}

// MarshalJSON implements the json.Marshaler interface for Month.
func (m Month) MarshalJSON() ([]byte, error) { return json.Marshal(m.String()) }

// UnmarshalJSON implements the json.Unmarshaler interface for Month.
func (m *Month) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	parsed, err := ParseMonth(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MonthsBetween returns every month from start to end, ascending and
// inclusive of both ends.
func MonthsBetween(start, end Month) ([]Month, error) {
	if start.After(end) {
		return nil, fmt.Errorf("%w: start %s is after end %s", ErrInvalidRange, start, end)
	}
	months := make([]Month, 0, end.index()-start.index()+1)
	for m := start; !m.After(end); m = m.Next() {
		months = append(months, m)
	}
	return months, nil
}

// Quarter represents a calendar quarter, labelled "Q<1-4> <year>".
// Q1 covers January through March.
type Quarter struct {
	y int
	q int
}

// NewQuarter returns the quarter for a year and an ordinal in [1..4].
func NewQuarter(year, ordinal int) Quarter { return Quarter{y: year, q: ordinal} }

// Year returns the quarter's year.
func (q Quarter) Year() int { return q.y }

// Ordinal returns the quarter number within the year, in [1..4].
func (q Quarter) Ordinal() int { return q.q }

// IsZero returns true if the quarter is the zero value.
func (q Quarter) IsZero() bool { return q.y == 0 && q.q == 0 }

// String formats the quarter as its display label, e.g. "Q1 2026".
func (q Quarter) String() string { return fmt.Sprintf("Q%d %d", q.q, q.y) }

// Key is a compact chronological form safe for identifiers, e.g. "2026q1".
func (q Quarter) Key() string { return fmt.Sprintf("%04dq%d", q.y, q.q) }

// FirstMonth returns the first calendar month of the quarter.
func (q Quarter) FirstMonth() Month { return NewMonth(q.y, time.Month(q.q*3-2)) }

// Before reports whether q is strictly before x.
func (q Quarter) Before(x Quarter) bool { return q.y*4+q.q < x.y*4+x.q }

var quarterRE = regexp.MustCompile(`^Q([1-4])\s+(\d{4})$`)

// ParseQuarter parses a "Q<1-4> <year>" label.
func ParseQuarter(label string) (Quarter, error) {
	match := quarterRE.FindStringSubmatch(strings.TrimSpace(label))
	if match == nil {
		return Quarter{}, fmt.Errorf("%w: quarter %q, want format %q", ErrParse, label, "Q<1-4> <year>")
	}
	ordinal, _ := strconv.Atoi(match[1])
	year, _ := strconv.Atoi(match[2])
	return Quarter{y: year, q: ordinal}, nil
}

// MustQuarter is like ParseQuarter but panics on error.
func MustQuarter(label string) Quarter {
	q, err := ParseQuarter(label)
	if err != nil {
		panic(err.Error())
	}
	return q
}

// MarshalJSON implements the json.Marshaler interface for Quarter.
func (q Quarter) MarshalJSON() ([]byte, error) { return json.Marshal(q.String()) }

// UnmarshalJSON implements the json.Unmarshaler interface for Quarter.
func (q *Quarter) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	parsed, err := ParseQuarter(str)
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}

// QuartersBetween returns the distinct quarters spanned by the months from
// start to end, in chronological order.
func QuartersBetween(start, end Month) ([]Quarter, error) {
	months, err := MonthsBetween(start, end)
	if err != nil {
		return nil, err
	}
	var quarters []Quarter
	for _, m := range months {
		q := m.Quarter()
		if len(quarters) == 0 || quarters[len(quarters)-1] != q {
			quarters = append(quarters, q)
		}
	}
	return quarters, nil
}
