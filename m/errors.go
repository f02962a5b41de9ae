package m

import "github.com/pkg/errors"

// ErrShapeMismatch is returned, wrapped with the offending dimensions, when
// paired vectors and matrices do not line up. Inputs are never truncated or
// broadcast to make them fit.
var ErrShapeMismatch = errors.New("shape mismatch")

// ErrInvalidEpsilon is returned when a clamping epsilon is outside (0, 0.5).
var ErrInvalidEpsilon = errors.New("epsilon must be in (0, 0.5)")

func shapeMismatch(format string, args ...interface{}) error {
	return errors.Wrapf(ErrShapeMismatch, format, args...)
}
