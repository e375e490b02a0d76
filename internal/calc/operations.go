package calc

import (
	"fmt"
	"math"
)

// Operation names an arithmetic operation. The value is also its route path
// and the operation name stored in history.
type Operation string

// Supported operations.
const (
	OpAdd      Operation = "add"
	OpSubtract Operation = "subtract"
	OpMultiply Operation = "multiply"
	OpDivide   Operation = "divide"
	OpPower    Operation = "power"
	OpSqrt     Operation = "sqrt"
	OpModulo   Operation = "modulo"
)

// Spec describes an operation and the query parameters it reads, in operand order.
type Spec struct {
	Op     Operation
	Fields []string
}

// Arity returns the number of operands the operation takes.
func (s Spec) Arity() int {
	return len(s.Fields)
}

var specs = []Spec{
	{Op: OpAdd, Fields: []string{"num1", "num2"}},
	{Op: OpSubtract, Fields: []string{"num1", "num2"}},
	{Op: OpMultiply, Fields: []string{"num1", "num2"}},
	{Op: OpDivide, Fields: []string{"num1", "num2"}},
	{Op: OpPower, Fields: []string{"base", "exponent"}},
	{Op: OpSqrt, Fields: []string{"num"}},
	{Op: OpModulo, Fields: []string{"num1", "num2"}},
}

var specIndex map[Operation]Spec

func init() {
	specIndex = make(map[Operation]Spec, len(specs))
	for _, s := range specs {
		specIndex[s.Op] = s
	}
}

// Specs returns every supported operation in route registration order.
func Specs() []Spec {
	out := make([]Spec, len(specs))
	copy(out, specs)
	return out
}

// Lookup returns the Spec for op.
func Lookup(op Operation) (Spec, bool) {
	s, ok := specIndex[op]
	return s, ok
}

// IsValid reports whether op is a supported operation.
func (op Operation) IsValid() bool {
	_, ok := specIndex[op]
	return ok
}

// Compute applies op to operands.
//
// Divide and modulo reject a zero divisor, and sqrt rejects a negative
// argument, with *Error values. Power follows math.Pow, so results may be
// NaN or infinite (for example a negative base with a fractional exponent).
// Modulo follows math.Mod: the result takes the sign of the dividend.
func Compute(op Operation, operands []float64) (float64, error) {
	if err := CheckOperands(op, operands); err != nil {
		return 0, err
	}

	switch op {
	case OpAdd:
		return operands[0] + operands[1], nil
	case OpSubtract:
		return operands[0] - operands[1], nil
	case OpMultiply:
		return operands[0] * operands[1], nil
	case OpDivide:
		if operands[1] == 0 {
			return 0, newError(KindDivisionByZero, "Cannot divide by zero.")
		}
		return operands[0] / operands[1], nil
	case OpModulo:
		if operands[1] == 0 {
			return 0, newError(KindDivisionByZero, "Cannot perform modulo with divisor zero.")
		}
		return math.Mod(operands[0], operands[1]), nil
	case OpPower:
		return math.Pow(operands[0], operands[1]), nil
	case OpSqrt:
		if operands[0] < 0 {
			return 0, newError(KindNegativeSquareRoot, "Cannot compute square root of a negative number.")
		}
		return math.Sqrt(operands[0]), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperation, op)
	}
}

// CheckOperands reports ErrUnknownOperation or ErrOperandCount when operands
// cannot be applied to op.
func CheckOperands(op Operation, operands []float64) error {
	spec, ok := specIndex[op]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOperation, op)
	}
	if len(operands) != spec.Arity() {
		return fmt.Errorf("%w: %s takes %d, got %d", ErrOperandCount, op, spec.Arity(), len(operands))
	}
	return nil
}
