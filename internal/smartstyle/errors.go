package smartstyle

import "errors"

var (
	// ErrUnknownStyle is returned when a style name has no rule.
	ErrUnknownStyle = errors.New("unknown style")

	// ErrNoEditor is returned when TransformText runs before SetEditor.
	ErrNoEditor = errors.New("no editor bound")

	// ErrInvalidConfig is returned by Validate and New for unusable configs.
	ErrInvalidConfig = errors.New("invalid style config")
)
