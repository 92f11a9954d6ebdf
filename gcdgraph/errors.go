package gcdgraph

import "errors"

// Errors
var (
	ErrInvalidLength   = errors.New("invalid length")
	ErrBadRange        = errors.New("bad values range")
	ErrBadValuesExpr   = errors.New("bad values expression")
	ErrBadCatalogParam = errors.New("bad catalog param")
	ErrCatalogReadOnly = errors.New("catalog is in read-only mode")
	ErrCatalogVersion  = errors.New("catalog version is incompatible")
	ErrBadJobKey       = errors.New("bad job key encoding")
)
