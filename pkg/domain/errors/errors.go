package errors

import "errors"

// ErrMissing means a requested record does not exist in the store.
var ErrMissing = errors.New("missing")
