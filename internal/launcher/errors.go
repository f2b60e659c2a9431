package launcher

import "errors"

// Validation errors raised at entry, before any simulation work.
var (
	// ErrInvalidConfiguration indicates a malformed LauncherConfig
	// (non-positive mass/dimensions, unknown fuel with no user energy density).
	ErrInvalidConfiguration = errors.New("launcher: invalid configuration")

	// ErrOutOfRangeEnvironment indicates altitude or latitude outside the
	// supported operating range.
	ErrOutOfRangeEnvironment = errors.New("launcher: environment out of supported range")
)
