package apperrors

import "errors"

var (
	ErrParse         = errors.New("malformed document")
	ErrMissingRename = errors.New("missing database or schema name")
	ErrNotDirectory  = errors.New("not a directory")
	ErrSameRoot      = errors.New("input and output roots must differ")
	ErrNestedRoot    = errors.New("output root must not be inside the input root")
)
