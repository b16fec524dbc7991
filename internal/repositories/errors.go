package repositories

import "errors"

// ErrNotFound is wrapped by all repositories when a row is absent, so callers
// can test with errors.Is instead of matching message strings.
var ErrNotFound = errors.New("record not found")
