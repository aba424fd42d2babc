package table

import "errors"

// Table contract errors. They are programmer errors: the offending call fails
// and the table is left untouched.
var (
	ErrSchemaMismatch       = errors.New("values do not match the table schema")
	ErrUnknownColumn        = errors.New("invalid column")
	ErrNotIndexed           = errors.New("column is not indexed")
	ErrConflictingArguments = errors.New("should either provide a row or a query statement, not both")
)
