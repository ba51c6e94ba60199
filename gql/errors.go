package gql

import "errors"

// Transformation failures fall into a small number of kinds so callers can
// test with errors.Is. Actual errors carry position/name context on top.
var (
	// ErrMalformedDocument - brace imbalance, nothing sensible can be done
	// with such document.
	ErrMalformedDocument = errors.New("malformed document")
	// ErrUndefinedFragment - a spread names a fragment the document never
	// defines.
	ErrUndefinedFragment = errors.New("undefined fragment reference")
	// ErrCyclicFragment - fragments spread each other in a cycle and
	// substitution cannot converge.
	ErrCyclicFragment = errors.New("cyclic fragment reference")
)
