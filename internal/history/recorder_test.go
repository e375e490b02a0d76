package history

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nerrad567/calc-core/internal/calc"
)

// mockRepository is an in-memory Repository for Recorder tests.
type mockRepository struct {
	mu         sync.Mutex
	records    []Record
	insertErr  error
	recentErr  error
	lastLimit  int
	insertHits int
}

func (m *mockRepository) Insert(_ context.Context, rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertHits++
	if m.insertErr != nil {
		return m.insertErr
	}
	m.records = append(m.records, *rec)
	return nil
}

func (m *mockRepository) Recent(_ context.Context, limit int) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastLimit = limit
	if m.recentErr != nil {
		return nil, m.recentErr
	}
	out := make([]Record, 0, limit)
	for i := len(m.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.records[i])
	}
	return out, nil
}

type mockPublisher struct {
	mu        sync.Mutex
	published []Record
	err       error
}

func (m *mockPublisher) PublishOperation(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, rec)
	return m.err
}

// recordingLogger captures Warn calls.
type recordingLogger struct {
	noopLogger
	mu    sync.Mutex
	warns []string
}

func (l *recordingLogger) Warn(msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

func TestRecorder_Record(t *testing.T) {
	repo := &mockRepository{}
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	rec := NewRecorder(repo, WithClock(func() time.Time { return fixed }))

	operands := []float64{5, 3}
	got, err := rec.Record(context.Background(), calc.OpAdd, operands, 8)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	if !strings.HasPrefix(got.ID, "op-") {
		t.Errorf("ID = %q, want op- prefix", got.ID)
	}
	if got.Timestamp.Location() != time.UTC || !got.Timestamp.Equal(fixed) {
		t.Errorf("Timestamp = %v, want %v in UTC", got.Timestamp, fixed)
	}
	if got.Result != 8 || got.Operation != calc.OpAdd {
		t.Errorf("record = %+v", got)
	}

	// Caller's slice must not alias the stored record.
	operands[0] = 99
	if repo.records[0].Operands[0] != 5 {
		t.Error("stored operands alias the caller's slice")
	}
}

func TestRecorder_RecordAssignsUniqueIDs(t *testing.T) {
	rec := NewRecorder(&mockRepository{})
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		r, err := rec.Record(context.Background(), calc.OpSqrt, []float64{4}, 2)
		if err != nil {
			t.Fatalf("Record() error = %v", err)
		}
		if seen[r.ID] {
			t.Fatalf("duplicate ID %s", r.ID)
		}
		seen[r.ID] = true
	}
}

func TestRecorder_NoStore(t *testing.T) {
	pub := &mockPublisher{}
	rec := NewRecorder(nil, WithPublisher("mock", pub))

	if _, err := rec.Record(context.Background(), calc.OpAdd, []float64{1, 2}, 3); !errors.Is(err, ErrNoStore) {
		t.Errorf("Record() error = %v, want ErrNoStore", err)
	}
	if len(pub.published) != 0 {
		t.Error("publisher called without a store")
	}
	if _, err := rec.Recent(context.Background()); !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("Recent() error = %v, want ErrStorageUnavailable", err)
	}

	var nilRecorder *Recorder
	if _, err := nilRecorder.Record(context.Background(), calc.OpAdd, []float64{1, 2}, 3); !errors.Is(err, ErrNoStore) {
		t.Errorf("nil Recorder Record() error = %v, want ErrNoStore", err)
	}
}

func TestRecorder_InsertFailureSkipsPublishers(t *testing.T) {
	insertErr := errors.New("disk full")
	pub := &mockPublisher{}
	rec := NewRecorder(&mockRepository{insertErr: insertErr}, WithPublisher("mock", pub))

	_, err := rec.Record(context.Background(), calc.OpDivide, []float64{1, 2}, 0.5)
	if !errors.Is(err, insertErr) {
		t.Errorf("Record() error = %v, want wrapped %v", err, insertErr)
	}
	if len(pub.published) != 0 {
		t.Error("publisher called after failed insert")
	}
}

func TestRecorder_PublisherFailureIsLogged(t *testing.T) {
	logger := &recordingLogger{}
	failing := &mockPublisher{err: errors.New("broker down")}
	healthy := &mockPublisher{}
	repo := &mockRepository{}
	rec := NewRecorder(repo,
		WithLogger(logger),
		WithPublisher("failing", failing),
		WithPublisher("healthy", healthy),
	)

	if _, err := rec.Record(context.Background(), calc.OpModulo, []float64{10, 3}, 1); err != nil {
		t.Fatalf("Record() error = %v, want nil despite publisher failure", err)
	}
	if len(repo.records) != 1 {
		t.Errorf("stored %d records, want 1", len(repo.records))
	}
	if len(healthy.published) != 1 {
		t.Error("healthy publisher not called after a failing one")
	}
	if len(logger.warns) != 1 {
		t.Errorf("warn count = %d, want 1", len(logger.warns))
	}
}

func TestRecorder_NilPublisherIgnored(t *testing.T) {
	rec := NewRecorder(&mockRepository{}, WithPublisher("none", nil))
	if len(rec.publishers) != 0 {
		t.Errorf("publishers = %d, want 0", len(rec.publishers))
	}
}

func TestRecorder_Recent(t *testing.T) {
	repo := &mockRepository{}
	rec := NewRecorder(repo)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		if _, err := rec.Record(ctx, calc.OpAdd, []float64{float64(i), 0}, float64(i)); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := rec.Recent(ctx)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if repo.lastLimit != RecentLimit {
		t.Errorf("limit passed = %d, want %d", repo.lastLimit, RecentLimit)
	}
	if len(got) != RecentLimit {
		t.Fatalf("len = %d, want %d", len(got), RecentLimit)
	}
	if got[0].Result != 11 {
		t.Errorf("newest Result = %v, want 11", got[0].Result)
	}
}

func TestRecorder_RecentFailure(t *testing.T) {
	queryErr := errors.New("database is locked")
	rec := NewRecorder(&mockRepository{recentErr: queryErr})

	_, err := rec.Recent(context.Background())
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("Recent() error = %v, want ErrStorageUnavailable", err)
	}
	if !errors.Is(err, queryErr) {
		t.Errorf("Recent() error = %v, want wrapped cause", err)
	}
}

func TestRecorder_WithSQLite(t *testing.T) {
	rec := NewRecorder(NewSQLiteRepository(setupTestDB(t).DB))
	ctx := context.Background()

	if _, err := rec.Record(ctx, calc.OpSubtract, []float64{5, 3}, 2); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if _, err := rec.Record(ctx, calc.OpSqrt, []float64{16}, 4); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	got, err := rec.Recent(ctx)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 2 || got[0].Operation != calc.OpSqrt || got[1].Operation != calc.OpSubtract {
		t.Errorf("Recent() = %+v, want sqrt then subtract", got)
	}
}
