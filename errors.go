package gaze

import "errors"

var (
	// ErrDuplicateID is returned when a non-empty id is already registered.
	ErrDuplicateID = errors.New("gaze: duplicate element id")
	// ErrUnknownID is returned when no element is registered under an id.
	ErrUnknownID = errors.New("gaze: unknown element id")
	// ErrUnknownFrame is returned for a floating frame index that does not
	// name a live frame.
	ErrUnknownFrame = errors.New("gaze: unknown floating frame")
	// ErrInvalidElement is returned for nil, attached or disposed elements.
	ErrInvalidElement = errors.New("gaze: invalid element")
	// ErrInvalidConfig is returned when a config option is out of range.
	ErrInvalidConfig = errors.New("gaze: invalid config")
	// ErrInvalidScript is returned when a gaze script cannot be parsed.
	ErrInvalidScript = errors.New("gaze: invalid gaze script")
)
