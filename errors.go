package billow

import (
	"errors"
	"fmt"
)

// ErrDegenerateCamera is returned when the camera eye coincides with its
// look-at target, or looks straight along the up axis, leaving the view
// direction undefined.
var ErrDegenerateCamera = errors.New("billow: degenerate camera")

// ErrProjectionSingularity is returned by ProjectPoint when the transformed
// point lies on the camera plane (homogeneous w is zero).
var ErrProjectionSingularity = errors.New("billow: projection singularity")

// MissingResourceError reports a sprite id that is not registered in Assets.
type MissingResourceError struct {
	ID string
}

func (e *MissingResourceError) Error() string {
	return fmt.Sprintf("billow: sprite %q not found", e.ID)
}
