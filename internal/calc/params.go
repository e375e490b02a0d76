package calc

import (
	"errors"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// numberPattern accepts plain decimal notation with an optional exponent.
// strconv.ParseFloat alone would also take "Inf", "NaN", hex floats and
// underscores.
var numberPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ParseOperands reads the named query parameters as float64 operands, in the
// order given.
//
// Presence is checked for every field before any value is parsed, so a
// request missing one field and carrying a malformed other reports the
// missing field. A value that is empty after trimming whitespace counts as
// missing.
func ParseOperands(query url.Values, fields ...string) ([]float64, error) {
	raw := make([]string, len(fields))
	for i, field := range fields {
		v := strings.TrimSpace(query.Get(field))
		if v == "" {
			return nil, newError(KindMissingParameter, missingMessage(fields))
		}
		raw[i] = v
	}

	operands := make([]float64, len(fields))
	for i, v := range raw {
		n, err := parseNumber(v)
		if err != nil {
			return nil, newError(KindInvalidNumber, invalidMessage(len(fields)))
		}
		operands[i] = n
	}

	return operands, nil
}

// parseNumber parses one trimmed value. It returns ErrInvalidNumber for
// anything but a finite decimal.
func parseNumber(s string) (float64, error) {
	if !numberPattern.MatchString(s) {
		return 0, ErrInvalidNumber
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Overflow reports ErrRange with ±Inf.
		if errors.Is(err, strconv.ErrRange) && !math.IsInf(n, 0) {
			return n, nil
		}
		return 0, ErrInvalidNumber
	}
	if math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, ErrInvalidNumber
	}
	return n, nil
}

func missingMessage(fields []string) string {
	switch len(fields) {
	case 1:
		return "Missing parameter. Please provide '" + fields[0] + "'."
	case 2:
		return "Missing parameters. Please provide both '" + fields[0] + "' and '" + fields[1] + "'."
	default:
		return "Missing parameters. Please provide '" + strings.Join(fields, "', '") + "'."
	}
}

func invalidMessage(n int) string {
	switch n {
	case 1:
		return "Invalid input. Please provide a valid number."
	case 2:
		return "Invalid input. Please provide two valid numbers."
	default:
		return "Invalid input. Please provide valid numbers."
	}
}

// Parse reads the operation's operands from query.
func (s Spec) Parse(query url.Values) ([]float64, error) {
	return ParseOperands(query, s.Fields...)
}
