package calc

import "errors"

// Kind classifies a client-facing calculation error. The value doubles as the
// machine-readable "code" in API error bodies.
type Kind string

// Error kinds.
const (
	KindMissingParameter   Kind = "missing_parameter"
	KindInvalidNumber      Kind = "invalid_number"
	KindDivisionByZero     Kind = "division_by_zero"
	KindNegativeSquareRoot Kind = "negative_square_root"
)

// Sentinel errors for errors.Is checks against *Error values.
var (
	// ErrMissingParameter is matched when a required query parameter is absent or empty.
	ErrMissingParameter = errors.New("calc: missing parameter")

	// ErrInvalidNumber is matched when a parameter is not a finite decimal number.
	ErrInvalidNumber = errors.New("calc: invalid number")

	// ErrDivisionByZero is matched for a zero divisor in divide or modulo.
	ErrDivisionByZero = errors.New("calc: division by zero")

	// ErrNegativeSquareRoot is matched for sqrt of a negative number.
	ErrNegativeSquareRoot = errors.New("calc: negative square root")
)

// Programming errors. These never reach a client as a 400.
var (
	// ErrUnknownOperation is returned by Compute for an operation not in the table.
	ErrUnknownOperation = errors.New("calc: unknown operation")

	// ErrOperandCount is returned by Compute when the operand count does not
	// match the operation's arity.
	ErrOperandCount = errors.New("calc: wrong number of operands")
)

var sentinels = map[Kind]error{
	KindMissingParameter:   ErrMissingParameter,
	KindInvalidNumber:      ErrInvalidNumber,
	KindDivisionByZero:     ErrDivisionByZero,
	KindNegativeSquareRoot: ErrNegativeSquareRoot,
}

// Error is a client-facing calculation failure. Message is the exact text
// returned in the API error body.
type Error struct {
	Kind    Kind
	Message string
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Error returns the client-facing message.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the sentinel for the error's kind.
func (e *Error) Unwrap() error {
	return sentinels[e.Kind]
}
