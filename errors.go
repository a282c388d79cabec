package dcaplan

import "errors"

// Sentinel errors forming the engine's failure taxonomy. Mutations wrap one
// of these with fmt.Errorf("...: %w", err); callers test with errors.Is.
var (
	// ErrValidation reports a missing or non-positive input.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateQuarter reports an attempt to open a second position in a
	// quarter that already has one.
	ErrDuplicateQuarter = errors.New("quarter already has a position")
	// ErrBudgetExceeded reports a buy that would push a position's cumulative
	// invested amount past the budget cap.
	ErrBudgetExceeded = errors.New("budget cap exceeded")
	// ErrNotFound reports an unknown position id.
	ErrNotFound = errors.New("position not found")
	// ErrParse reports a malformed month or quarter token.
	ErrParse = errors.New("malformed token")
	// ErrInvalidRange reports a calendar range whose start is after its end.
	ErrInvalidRange = errors.New("invalid range")
)
