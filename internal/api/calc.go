package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/nerrad567/calc-core/internal/calc"
	"github.com/nerrad567/calc-core/internal/history"
)

// resultResponse is the body of every successful operation.
type resultResponse struct {
	Result calc.Number `json:"result"`
}

// handleOperation returns the handler for one operation: validate, compute,
// record, respond. Nothing is recorded unless the computation succeeds.
func (s *Server) handleOperation(spec calc.Spec) http.HandlerFunc {
	op := string(spec.Op)

	return func(w http.ResponseWriter, r *http.Request) {
		operands, err := spec.Parse(r.URL.Query())
		if err != nil {
			s.writeCalcError(w, r, op, err)
			return
		}

		result, err := calc.Compute(spec.Op, operands)
		if err != nil {
			s.writeCalcError(w, r, op, err)
			return
		}

		s.metrics.observeOperation(op, outcomeOK)
		s.recordOperation(r, spec.Op, operands, result)

		writeJSON(w, http.StatusOK, resultResponse{Result: calc.Number(result)})
	}
}

// recordOperation writes the history entry. Failures only produce a warning
// and a counter; the client gets its result either way.
//
// The insert and the publisher fan-out run detached from the request context
// so a client hanging up does not abort them. Together they are bounded by
// history.record_timeout.
func (s *Server) recordOperation(r *http.Request, op calc.Operation, operands []float64, result float64) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), s.timeouts.Record)
	defer cancel()

	_, err := s.recorder.Record(ctx, op, operands, result)
	switch {
	case err == nil, errors.Is(err, history.ErrNoStore):
	default:
		s.metrics.historyWriteFailures.Inc()
		s.logger.Warn("recording operation failed",
			"operation", string(op),
			"request_id", requestIDFrom(r.Context()),
			"error", err,
		)
	}
}

// writeCalcError maps calc errors to 400 responses. Anything else is a bug
// and answers 500.
func (s *Server) writeCalcError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var calcErr *calc.Error
	if errors.As(err, &calcErr) {
		s.metrics.observeOperation(op, outcomeRejected)
		writeBadRequest(w, string(calcErr.Kind), calcErr.Message)
		return
	}

	s.metrics.observeOperation(op, outcomeError)
	s.logger.Error("operation failed",
		"operation", op,
		"request_id", requestIDFrom(r.Context()),
		"error", err,
	)
	writeInternalError(w, "Internal server error.")
}
