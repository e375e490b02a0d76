// Package calc implements calc-core's arithmetic: the seven operations, the
// query-parameter names each one accepts, and the shared operand validator.
//
// Every operation is described by a Spec in one table. The HTTP layer walks
// that table to register routes, parses operands with ParseOperands, and
// calls Compute. Nothing here touches storage or the network.
//
// Errors returned to clients are *Error values. They match the package
// sentinels with errors.Is:
//
//	if errors.Is(err, calc.ErrDivisionByZero) {
//	    // 400 with err.Error() as the message
//	}
package calc
