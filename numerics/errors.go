package numerics

import "fmt"

// ErrNumericalBreakdown is returned by Thomas when a forward-elimination
// pivot rounds to zero. Callers treat this as fatal for the current step.
type ErrNumericalBreakdown struct {
	Index int
	Pivot float64
}

func (e *ErrNumericalBreakdown) Error() string {
	return fmt.Sprintf("numerical breakdown: zero pivot at row %d (pivot=%g)", e.Index, e.Pivot)
}

func breakdown(i int, pivot float64) error {
	return &ErrNumericalBreakdown{Index: i, Pivot: pivot}
}
