package history

import "errors"

var (
	// ErrNoStore is returned by Record when no repository is configured.
	// Callers treat it as a silent no-op.
	ErrNoStore = errors.New("history: no store configured")

	// ErrStorageUnavailable is returned by Recent when the history cannot be read.
	ErrStorageUnavailable = errors.New("history: storage unavailable")

	// ErrInvalidRecord is returned when a record fails validation before insert.
	ErrInvalidRecord = errors.New("history: invalid record")
)
