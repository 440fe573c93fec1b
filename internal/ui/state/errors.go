package state

import "errors"

// ErrInvalidState reports a navigator built over an empty list or with a
// non-positive page size. Correctly configured deployments never see it.
var ErrInvalidState = errors.New("invalid navigator state")
