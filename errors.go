package posemath

import "github.com/pkg/errors"

var (
	// ErrNoPoses is returned when an aggregate operation is given zero poses.
	ErrNoPoses = errors.New("no poses provided")

	// ErrZeroTotalWeight is returned when weighted poses sum to zero weight
	// and no average is defined.
	ErrZeroTotalWeight = errors.New("total weight of poses is zero")
)

func newNegativeWeightError(index int, weight float64) error {
	return errors.Errorf("pose at index %d has negative weight %f", index, weight)
}

func newBadTransformDimensionsError(r, c int) error {
	return errors.Errorf("transformation matrix must be 4x4 but got %dx%d", r, c)
}
