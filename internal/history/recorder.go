package history

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/nerrad567/calc-core/internal/calc"
)

// Logger is the logging interface used by the Recorder.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Publisher receives each record after it has been stored.
// The MQTT and InfluxDB clients implement it.
type Publisher interface {
	PublishOperation(ctx context.Context, rec Record) error
}

type namedPublisher struct {
	name string
	pub  Publisher
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithPublisher adds a publisher. name appears in failure logs.
func WithPublisher(name string, p Publisher) Option {
	return func(r *Recorder) {
		if p != nil {
			r.publishers = append(r.publishers, namedPublisher{name: name, pub: p})
		}
	}
}

// WithLogger sets the logger used for publisher failures.
func WithLogger(l Logger) Option {
	return func(r *Recorder) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithClock overrides the timestamp source. Tests use it.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) {
		if now != nil {
			r.now = now
		}
	}
}

// Recorder writes completed operations to the history store and fans them
// out to publishers.
//
// Thread Safety: all methods are safe for concurrent use once constructed.
type Recorder struct {
	repo       Repository
	publishers []namedPublisher
	logger     Logger
	now        func() time.Time
}

// NewRecorder creates a Recorder. repo may be nil, in which case Record is a
// no-op returning ErrNoStore and Recent fails with ErrStorageUnavailable.
func NewRecorder(repo Repository, opts ...Option) *Recorder {
	r := &Recorder{
		repo:   repo,
		logger: noopLogger{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record stores a completed operation and returns the stored record.
//
// The ID and timestamp are assigned here. Publisher errors are logged and
// do not fail the call.
func (r *Recorder) Record(ctx context.Context, op calc.Operation, operands []float64, result float64) (Record, error) {
	if r == nil || r.repo == nil {
		return Record{}, ErrNoStore
	}

	rec := Record{
		ID:        idPrefix + uuid.NewString(),
		Operation: op,
		Operands:  slices.Clone(operands),
		Result:    calc.Number(result),
		Timestamp: r.now().UTC(),
	}

	if err := r.repo.Insert(ctx, &rec); err != nil {
		return Record{}, fmt.Errorf("recording %s: %w", op, err)
	}

	for _, p := range r.publishers {
		if err := p.pub.PublishOperation(ctx, rec); err != nil {
			r.logger.Warn("publishing operation record failed",
				"publisher", p.name,
				"id", rec.ID,
				"operation", string(op),
				"error", err,
			)
		}
	}

	r.logger.Debug("operation recorded", "id", rec.ID, "operation", string(op))
	return rec, nil
}

// Recent returns the RecentLimit most recent records, newest first.
// Every failure is reported as ErrStorageUnavailable.
func (r *Recorder) Recent(ctx context.Context) ([]Record, error) {
	if r == nil || r.repo == nil {
		return nil, ErrStorageUnavailable
	}

	records, err := r.repo.Recent(ctx, RecentLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return records, nil
}
