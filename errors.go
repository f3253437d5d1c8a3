package cellframe

import "errors"

// ErrNotImplemented is returned for enumerated inputs this package does not
// recognize, such as an unknown cursor style.
var ErrNotImplemented = errors.New("cellframe: not implemented")
