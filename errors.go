package ezpz

import (
	"fmt"

	"ezpz/ids"
	"ezpz/solver"
)

// ParseError is returned by the problemfile parser for malformed textual
// input, carrying the 1-based line number so a CLI can point at it.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ezpz: parse error at line %d: %s", e.Line, e.Message)
}

// UnknownIdError means an initial guess named a VarID the allocator never
// issued for this solve's column count.
type UnknownIdError struct {
	ID ids.VarID
}

func (e *UnknownIdError) Error() string {
	return fmt.Sprintf("ezpz: unknown id %d in initial guess", e.ID)
}

// The rest of the error taxonomy is the solver package's; re-exported here
// so callers matching with errors.As never need to import ezpz/solver.
type (
	DimensionMismatchError      = solver.DimensionMismatchError
	SingularJacobianError       = solver.SingularJacobianError
	DivergedError               = solver.DivergedError
	IterLimitError              = solver.IterLimitError
	StalledError                = solver.StalledError
	CancelledError              = solver.CancelledError
	UnsatisfiableError          = solver.UnsatisfiableError
	UnderconstrainedColumnError = solver.UnderconstrainedColumnError
)
