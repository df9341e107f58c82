package spline

import "errors"

// Error kinds shared by loaders and builders. Concrete errors wrap one of these so callers can
// branch with errors.Is.
var (
	ErrFileNotFound      = errors.New("file not found")
	ErrReadFailure       = errors.New("read failure")
	ErrParseFailure      = errors.New("parse failure")
	ErrValidationFailure = errors.New("validation failure")
)

// MinPoints is the smallest control point count a built spline may have.
const MinPoints = 2
