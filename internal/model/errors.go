package model

import "errors"

var (
	// ErrInvalidDimension is returned when a box or rectangle has an
	// extent that is not allowed (non-positive for boxes, negative for rects).
	ErrInvalidDimension = errors.New("invalid dimension")

	// ErrRejectedBox is returned when a box is wider than the container.
	ErrRejectedBox = errors.New("box wider than container")

	// ErrNoBoxes is returned when a packing run is given nothing to pack.
	ErrNoBoxes = errors.New("no boxes to pack")
)
