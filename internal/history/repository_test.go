package history

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/nerrad567/calc-core/internal/calc"
	"github.com/nerrad567/calc-core/internal/infrastructure/database"
	_ "github.com/nerrad567/calc-core/migrations" // registers operation_history schema
)

// setupTestDB opens an in-memory database with production migrations applied.
func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	ctx := context.Background()
	db, err := database.Open(ctx, database.Config{Path: ":memory:", BusyTimeout: 5})
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // Test cleanup

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("migrating test db: %v", err)
	}
	return db
}

func testRecord(id string, op calc.Operation, ts time.Time, result float64, operands ...float64) *Record {
	return &Record{
		ID:        id,
		Operation: op,
		Operands:  operands,
		Result:    calc.Number(result),
		Timestamp: ts,
	}
}

func TestSQLiteRepository_InsertAndRecent(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t).DB)
	ctx := context.Background()

	ts := time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.UTC)
	if err := repo.Insert(ctx, testRecord("op-1", calc.OpAdd, ts, 8, 5, 3)); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	got, err := repo.Recent(ctx, RecentLimit)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}

	rec := got[0]
	if rec.ID != "op-1" || rec.Operation != calc.OpAdd {
		t.Errorf("record = %+v", rec)
	}
	if len(rec.Operands) != 2 || rec.Operands[0] != 5 || rec.Operands[1] != 3 {
		t.Errorf("Operands = %v, want [5 3]", rec.Operands)
	}
	if rec.Result != 8 {
		t.Errorf("Result = %v, want 8", rec.Result)
	}
	if !rec.Timestamp.Equal(ts) {
		t.Errorf("Timestamp = %v, want %v", rec.Timestamp, ts)
	}
}

func TestSQLiteRepository_RecentOrderAndLimit(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t).DB)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	// Insert out of chronological order; Recent sorts by timestamp.
	for i := 14; i >= 0; i-- {
		ts := base.Add(time.Duration(i) * time.Millisecond)
		rec := testRecord("op-"+string(rune('a'+i)), calc.OpMultiply, ts, float64(i), float64(i), 1)
		if err := repo.Insert(ctx, rec); err != nil {
			t.Fatalf("Insert(%d) error = %v", i, err)
		}
	}

	got, err := repo.Recent(ctx, RecentLimit)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != RecentLimit {
		t.Fatalf("len = %d, want %d", len(got), RecentLimit)
	}
	for i, rec := range got {
		want := float64(14 - i)
		if float64(rec.Result) != want {
			t.Errorf("got[%d].Result = %v, want %v", i, rec.Result, want)
		}
		if i > 0 && rec.Timestamp.After(got[i-1].Timestamp) {
			t.Errorf("got[%d] is newer than got[%d]", i, i-1)
		}
	}
}

func TestSQLiteRepository_TieBreakByInsertionOrder(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t).DB)
	ctx := context.Background()

	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for _, id := range []string{"op-first", "op-second", "op-third"} {
		if err := repo.Insert(ctx, testRecord(id, calc.OpSqrt, ts, 2, 4)); err != nil {
			t.Fatalf("Insert(%s) error = %v", id, err)
		}
	}

	got, err := repo.Recent(ctx, RecentLimit)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	want := []string{"op-third", "op-second", "op-first"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("got[%d].ID = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestSQLiteRepository_NonFiniteResults(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t).DB)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	results := []float64{math.NaN(), math.Inf(1), math.Inf(-1)}
	for i, r := range results {
		rec := testRecord("op-nf-"+string(rune('0'+i)), calc.OpPower, base.Add(time.Duration(i)*time.Second), r, -8, 0.5)
		if err := repo.Insert(ctx, rec); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	got, err := repo.Recent(ctx, RecentLimit)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if !math.IsInf(float64(got[0].Result), -1) {
		t.Errorf("got[0].Result = %v, want -Inf", got[0].Result)
	}
	if !math.IsInf(float64(got[1].Result), 1) {
		t.Errorf("got[1].Result = %v, want +Inf", got[1].Result)
	}
	if !math.IsNaN(float64(got[2].Result)) {
		t.Errorf("got[2].Result = %v, want NaN", got[2].Result)
	}
}

func TestSQLiteRepository_EmptyAndZeroLimit(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t).DB)
	ctx := context.Background()

	got, err := repo.Recent(ctx, RecentLimit)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Recent() on empty store = %v, want empty non-nil slice", got)
	}

	got, err = repo.Recent(ctx, 0)
	if err != nil || len(got) != 0 {
		t.Errorf("Recent(0) = %v, %v", got, err)
	}
}

func TestSQLiteRepository_InsertRejectsInvalid(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t).DB)
	ctx := context.Background()
	ts := time.Now().UTC()

	tests := []struct {
		name string
		rec  *Record
	}{
		{"unknown operation", testRecord("op-x", "cube", ts, 8, 2)},
		{"wrong arity", testRecord("op-y", calc.OpSqrt, ts, 2, 4, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := repo.Insert(ctx, tt.rec); !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("Insert() error = %v, want ErrInvalidRecord", err)
			}
		})
	}
}

func TestSQLiteRepository_DuplicateID(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t).DB)
	ctx := context.Background()
	ts := time.Now().UTC()

	if err := repo.Insert(ctx, testRecord("op-dup", calc.OpAdd, ts, 2, 1, 1)); err != nil {
		t.Fatalf("first Insert() error = %v", err)
	}
	if err := repo.Insert(ctx, testRecord("op-dup", calc.OpAdd, ts, 2, 1, 1)); err == nil {
		t.Error("second Insert() with same ID should fail")
	}
}

func TestSQLiteRepository_ClosedDB(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db.DB)
	db.Close() //nolint:errcheck // Closing early to force failures

	if _, err := repo.Recent(context.Background(), RecentLimit); err == nil {
		t.Error("Recent() on closed db should fail")
	}
}
