package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/nerrad567/calc-core/internal/calc"
)

// timestampLayout is fixed-width so that lexical order in SQLite matches
// chronological order.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

// Repository persists operation records.
type Repository interface {
	// Insert appends a record. The record's ID and Timestamp must be set.
	Insert(ctx context.Context, rec *Record) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]Record, error)
}

// SQLiteRepository implements Repository on the operation_history table.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed history repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Insert appends rec to operation_history.
func (r *SQLiteRepository) Insert(ctx context.Context, rec *Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	operandsJSON, err := json.Marshal(rec.Operands)
	if err != nil {
		return fmt.Errorf("marshalling operands: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO operation_history (id, operation, operands, result, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		rec.ID,
		string(rec.Operation),
		string(operandsJSON),
		rec.Result.String(),
		rec.Timestamp.UTC().Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting operation record: %w", err)
	}
	return nil
}

// Recent returns up to limit records ordered by timestamp descending.
// Records sharing a timestamp come back in reverse insertion order.
func (r *SQLiteRepository) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		return []Record{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, operation, operands, result, created_at
		FROM operation_history
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying operation history: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0, limit)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating operation history: %w", err)
	}
	return records, nil
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var (
		rec                         Record
		operation, operands, result string
		createdAt                   string
	)
	if err := rows.Scan(&rec.ID, &operation, &operands, &result, &createdAt); err != nil {
		return Record{}, fmt.Errorf("scanning operation record: %w", err)
	}

	rec.Operation = calc.Operation(operation)

	if err := json.Unmarshal([]byte(operands), &rec.Operands); err != nil {
		return Record{}, fmt.Errorf("decoding operands of %s: %w", rec.ID, err)
	}

	f, err := strconv.ParseFloat(result, 64)
	if err != nil {
		return Record{}, fmt.Errorf("decoding result of %s: %w", rec.ID, err)
	}
	rec.Result = calc.Number(f)

	rec.Timestamp, err = time.Parse(timestampLayout, createdAt)
	if err != nil {
		return Record{}, fmt.Errorf("decoding timestamp of %s: %w", rec.ID, err)
	}
	return rec, nil
}
