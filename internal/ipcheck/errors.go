package ipcheck

import "errors"

// Error kinds returned by the package. Use errors.Is to classify a failure;
// the underlying cause stays reachable through errors.Unwrap.
var (
	ErrIO               = errors.New("i/o error")
	ErrParse            = errors.New("parse error")
	ErrMalformedAddress = errors.New("malformed address")
	ErrMalformedURL     = errors.New("malformed url")
)
