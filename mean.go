package posemath

import (
	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/montanaflynn/stats"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/num/quat"
)

// WeightedPose attaches an averaging weight to a pose.
type WeightedPose struct {
	Weight float64
	Pose   Pose
}

type meanPoseOptions struct {
	observer func(weight float64, pose Pose)
}

// MeanPoseOption configures how MeanPose processes its inputs.
type MeanPoseOption func(*meanPoseOptions)

// WithMeanObserver registers a callback invoked once per input, in input
// order, as MeanPose accumulates it.
func WithMeanObserver(observer func(weight float64, pose Pose)) MeanPoseOption {
	return func(o *meanPoseOptions) {
		o.observer = observer
	}
}

// WithMeanLogger debug-logs every input MeanPose accumulates.
func WithMeanLogger(logger golog.Logger) MeanPoseOption {
	return WithMeanObserver(func(weight float64, pose Pose) {
		logger.Debugw("accumulating pose", "weight", weight, "pose", pose.String())
	})
}

// MeanPose returns the weighted average of the given poses: the arithmetic
// mean of the translations and the component-wise mean of the rotation
// quaternions, renormalized. The component-wise rotation mean is a first order
// approximation that holds when the rotations are clustered; use
// MeanPoseDispersion to judge whether it does. Inputs representing the same
// orientation on opposite hemispheres (q and Flip(q)) cancel rather than
// reinforce; callers mixing sources should align hemispheres first. The result
// carries a zero time offset.
func MeanPose(poses []WeightedPose, opts ...MeanPoseOption) (Pose, error) {
	var options meanPoseOptions
	for _, opt := range opts {
		opt(&options)
	}

	if len(poses) == 0 {
		return Pose{}, ErrNoPoses
	}

	var err error
	var totalWeight float64
	for i, wp := range poses {
		if wp.Weight < 0 {
			err = multierr.Append(err, newNegativeWeightError(i, wp.Weight))
			continue
		}
		totalWeight += wp.Weight
	}
	if err != nil {
		return Pose{}, err
	}
	if totalWeight == 0 {
		return Pose{}, ErrZeroTotalWeight
	}

	var tSum r3.Vector
	var qSum quat.Number
	for _, wp := range poses {
		if options.observer != nil {
			options.observer(wp.Weight, wp.Pose)
		}
		tSum = tSum.Add(wp.Pose.translation.Mul(wp.Weight))
		qSum = quat.Add(qSum, quat.Scale(wp.Weight, wp.Pose.rotation))
	}

	return NewPose(quat.Scale(1/totalWeight, qSum), tSum.Mul(1/totalWeight)), nil
}

// MeanPoseDispersion reports how spread out a set of rotations is around a
// mean pose: the mean and the standard deviation, in radians, of the geodesic
// angles between each input rotation and the mean rotation. The component-wise
// average behind MeanPose degrades as this spread grows.
func MeanPoseDispersion(mean Pose, poses []WeightedPose) (float64, float64, error) {
	if len(poses) == 0 {
		return 0, 0, ErrNoPoses
	}
	angles := make([]float64, 0, len(poses))
	for _, wp := range poses {
		angles = append(angles, AngleBetween(mean.rotation, wp.Pose.rotation))
	}
	meanAngle, err := stats.Mean(angles)
	if err != nil {
		return 0, 0, err
	}
	deviation, err := stats.StandardDeviation(angles)
	if err != nil {
		return 0, 0, err
	}
	return meanAngle, deviation, nil
}
