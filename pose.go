// Package posemath implements the rigid body poses used by state estimators:
// a rotation quaternion paired with a translation vector, plus the sensor time
// offset the pose was estimated with.
package posemath

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"

	"github.com/fieldkinetics/posemath/ros"
)

const defaultPoseEpsilon = 1e-8

// Pose represents a rigid transformation in 3D space. Every constructor keeps
// the rotation unit-norm. The zero value of Pose carries an all-zero quaternion
// which is not a valid rotation; use NewZeroPose instead of Pose{}.
type Pose struct {
	rotation    quat.Number
	translation r3.Vector
	timeOffset  float64
}

// NewZeroPose returns the identity pose, no rotation and no translation, with
// a zero time offset.
func NewZeroPose() Pose {
	return Pose{rotation: quat.Number{Real: 1}}
}

// NewPose returns a pose with the given rotation and translation. The rotation
// is normalized; inputs that are not unit quaternions are scaled, never
// rejected.
func NewPose(rotation quat.Number, translation r3.Vector) Pose {
	return Pose{rotation: Normalize(rotation), translation: translation}
}

// NewPoseFromRotationMatrix returns a pose with the rotation given as a 3x3
// rotation matrix.
func NewPoseFromRotationMatrix(rotation mgl64.Mat3, translation r3.Vector) Pose {
	return NewPose(gonumQuat(mgl64.Mat4ToQuat(rotation.Mat4())), translation)
}

// NewPoseFromTransform returns a pose from a 4x4 homogeneous transformation
// matrix.
func NewPoseFromTransform(tf mgl64.Mat4) Pose {
	translation := r3.Vector{X: tf.At(0, 3), Y: tf.At(1, 3), Z: tf.At(2, 3)}
	return NewPose(gonumQuat(mgl64.Mat4ToQuat(tf)), translation)
}

// NewPoseFromDense returns a pose from a gonum 4x4 homogeneous transformation
// matrix.
func NewPoseFromDense(m *mat.Dense) (Pose, error) {
	if r, c := m.Dims(); r != 4 || c != 4 {
		return Pose{}, newBadTransformDimensionsError(r, c)
	}
	tf := mgl64.Ident4()
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			tf.Set(r, c, m.At(r, c))
		}
	}
	return NewPoseFromTransform(tf), nil
}

// NewPoseFromOdometry returns a pose read from the pose block of a ROS
// odometry message. The resulting time offset is zero.
func NewPoseFromOdometry(msg *ros.OdometryMessage) Pose {
	position := msg.Data.Pose.Pose.Position
	orientation := msg.Data.Pose.Pose.Orientation
	return NewPose(
		quat.Number{Real: orientation.W, Imag: orientation.X, Jmag: orientation.Y, Kmag: orientation.Z},
		r3.Vector{X: position.X, Y: position.Y, Z: position.Z},
	)
}

// Rotation returns the pose's rotation as a unit quaternion.
func (p Pose) Rotation() quat.Number {
	return p.rotation
}

// Translation returns the pose's translation vector.
func (p Pose) Translation() r3.Vector {
	return p.translation
}

// TimeOffset returns the sensor time offset attached to this pose.
func (p Pose) TimeOffset() float64 {
	return p.timeOffset
}

// WithTimeOffset returns a copy of this pose carrying the given time offset.
func (p Pose) WithTimeOffset(td float64) Pose {
	p.timeOffset = td
	return p
}

// Transform returns the pose as a 4x4 homogeneous transformation matrix.
func (p Pose) Transform() mgl64.Mat4 {
	tf := mglQuat(p.rotation).Mat4()
	tf.Set(0, 3, p.translation.X)
	tf.Set(1, 3, p.translation.Y)
	tf.Set(2, 3, p.translation.Z)
	return tf
}

// Compose returns the pose of b within the frame of a, the matrix product of
// the two transforms. Time offsets are metadata, not part of the geometry, so
// the result carries a zero time offset.
func Compose(a, b Pose) Pose {
	return NewPose(
		quat.Mul(a.rotation, b.rotation),
		rotateVector(a.rotation, b.translation).Add(a.translation),
	)
}

// Compose returns the composition of this pose with another, this pose first.
func (p Pose) Compose(other Pose) Pose {
	return Compose(p, other)
}

// Inverse returns the pose that undoes this one. The result carries a zero
// time offset.
func (p Pose) Inverse() Pose {
	invRotation := quat.Conj(p.rotation)
	return NewPose(invRotation, rotateVector(invRotation, p.translation).Mul(-1))
}

// PoseBetween returns the pose of b relative to a, the transform that composed
// on the left with a yields b.
func PoseBetween(a, b Pose) Pose {
	return Compose(a.Inverse(), b)
}

// Interpolate returns the pose between p1 and p2 at the fraction by, with 0
// yielding p1 and 1 yielding p2. Translation interpolates linearly; rotation
// interpolates spherically between the quaternions as given, so flip one input
// with Flip to force the short way around. The result carries a zero time
// offset.
func Interpolate(p1, p2 Pose, by float64) Pose {
	t := p1.translation.Mul(1 - by).Add(p2.translation.Mul(by))
	return NewPose(slerp(p1.rotation, p2.rotation, by), t)
}

// PoseAlmostEqual reports whether two poses describe approximately the same
// transformation. Time offsets are not compared.
func PoseAlmostEqual(a, b Pose) bool {
	return PoseAlmostEqualEps(a, b, defaultPoseEpsilon)
}

// PoseAlmostEqualEps is PoseAlmostEqual with a caller supplied tolerance.
func PoseAlmostEqualEps(a, b Pose, epsilon float64) bool {
	return QuaternionAlmostEqual(a.rotation, b.rotation, epsilon) &&
		a.translation.Sub(b.translation).Norm() <= epsilon
}

// String formats the pose with the translation first, the rotation components
// in x y z w order, and the time offset last.
func (p Pose) String() string {
	return fmt.Sprintf("t: [%v %v %v], q: [%v %v %v %v], td: %v",
		p.translation.X, p.translation.Y, p.translation.Z,
		p.rotation.Imag, p.rotation.Jmag, p.rotation.Kmag, p.rotation.Real,
		p.timeOffset)
}
