package walk

import "errors"

// ErrInconsistentInput is returned by New when (n, doors, labels) cannot
// possibly describe a valid walk over a 6-door map: a digit outside '0'..'5',
// a label outside {0,1,2,3}, a labels/doors length mismatch, or n < 1.
var ErrInconsistentInput = errors.New("walk: inconsistent input")
