// Completion: 100% - error types complete
package main

import "fmt"

// NoVacantRegError is panicked when the register pool runs dry. The routine
// templates are sized so this cannot happen for supported word counts;
// hitting it is a generator bug.
type NoVacantRegError struct{}

func (e *NoVacantRegError) Error() string {
	return "no vacant register in the pool"
}

// internalErrorf builds the panic value for generator-bug conditions: bad
// template parameters, unknown selectors, broken take/untake discipline.
func internalErrorf(format string, args ...any) error {
	return fmt.Errorf("internal error: "+format, args...)
}
