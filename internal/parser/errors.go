package parser

import "errors"

// ErrNoAmountFound is returned by the extractor when a line carries no
// numeric token at all. Callers treat it as a row-level diagnostic,
// not a fatal error.
var ErrNoAmountFound = errors.New("no amount found")

// ErrEmptyInput is returned when the source document has no lines.
// Unlike row-level problems this is a structural failure and aborts
// the run.
var ErrEmptyInput = errors.New("empty input document")
