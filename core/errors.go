package viola

import "errors"

var (
	// ErrInvalidDimensions is returned when a sample or grid has zero,
	// negative or inconsistent dimensions.
	ErrInvalidDimensions = errors.New("viola: invalid dimensions")

	// ErrOutOfBounds is returned when a feature or window rectangle
	// exceeds the extent of its image.
	ErrOutOfBounds = errors.New("viola: rectangle out of bounds")

	// ErrEmptyTrainingSet is returned when the trainer is invoked with
	// zero positive or zero negative samples.
	ErrEmptyTrainingSet = errors.New("viola: empty training set")

	// ErrEmptyCascade is returned when a cascade is constructed with
	// zero stages.
	ErrEmptyCascade = errors.New("viola: cascade has no stages")
)
