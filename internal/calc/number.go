package calc

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Number is a float64 that encodes NaN and ±Inf as JSON null, which
// encoding/json would otherwise refuse to marshal.
type Number float64

// Finite reports whether n is neither NaN nor infinite.
func (n Number) Finite() bool {
	f := float64(n)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// MarshalJSON implements json.Marshaler. Negative zero encodes as 0.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Finite() {
		return []byte("null"), nil
	}
	if n == 0 {
		// Covers -0, which would otherwise encode as "-0".
		return []byte("0"), nil
	}
	return json.Marshal(float64(n))
}

// UnmarshalJSON implements json.Unmarshaler. null decodes to NaN.
func (n *Number) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*n = Number(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// String formats n in the shortest representation that parses back to the
// same value. Non-finite values render as NaN, +Inf and -Inf.
func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}
