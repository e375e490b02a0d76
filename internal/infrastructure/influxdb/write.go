package influxdb

import (
	"context"
	"fmt"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/nerrad567/calc-core/internal/history"
)

// measurementOperations is the measurement every operation point is written to.
const measurementOperations = "operations"

// operationPoint converts a record to a point: tag "operation", fields
// "operand_count" and, when finite, "result". Line protocol cannot carry
// NaN or infinities.
func operationPoint(rec history.Record) *write.Point {
	fields := map[string]interface{}{
		"operand_count": len(rec.Operands),
	}
	if rec.Result.Finite() {
		fields["result"] = float64(rec.Result)
	}

	return write.NewPoint(
		measurementOperations,
		map[string]string{"operation": string(rec.Operation)},
		fields,
		rec.Timestamp,
	)
}

// PublishOperation queues a point for rec. It implements history.Publisher.
//
// The write is non-blocking; delivery failures surface through SetOnError.
func (c *Client) PublishOperation(ctx context.Context, rec history.Record) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}

	c.writeAPI.WritePoint(operationPoint(rec))
	return nil
}
