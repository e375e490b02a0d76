package history

import (
	"fmt"
	"time"

	"github.com/nerrad567/calc-core/internal/calc"
)

// RecentLimit is the number of records returned by Recent.
const RecentLimit = 10

// idPrefix marks record IDs, e.g. "op-3f2a...".
const idPrefix = "op-"

// Record is one completed operation.
type Record struct {
	ID        string         `json:"id"`
	Operation calc.Operation `json:"operation"`
	Operands  []float64      `json:"operands"`
	Result    calc.Number    `json:"result"` // null when NaN or infinite
	Timestamp time.Time      `json:"timestamp"`
}

// Validate checks the record's operands fit its operation.
func (r *Record) Validate() error {
	if err := calc.CheckOperands(r.Operation, r.Operands); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	return nil
}
