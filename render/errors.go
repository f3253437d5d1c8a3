package render

import "errors"

// Sentinel errors for the render package. They are wrapped with context via
// fmt.Errorf and %w; match with errors.Is.
var (
	// ErrInvalidState reports a sequencing violation: enabling an enabled
	// engine, opening a second paint session, or drawing outside one.
	ErrInvalidState = errors.New("render: invalid state")

	// ErrInvalidHandle reports that no target surface is configured.
	ErrInvalidHandle = errors.New("render: no target configured")

	// ErrInvalidArgument reports ending a paint session that was never
	// started.
	ErrInvalidArgument = errors.New("render: invalid argument")

	// ErrResourceCreation reports a failed surface allocation. Recoverable:
	// the next StartPaint rebuilds from scratch.
	ErrResourceCreation = errors.New("render: resource creation failed")

	// ErrPresentation reports a failed display flip. The engine releases
	// its surface resources; the frame is dropped.
	ErrPresentation = errors.New("render: presentation failed")
)
