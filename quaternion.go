package posemath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"github.com/fieldkinetics/posemath/utils"
)

// Normalize returns the versor (unit quaternion) of q. The zero quaternion
// normalizes to the identity rotation rather than dividing by zero.
func Normalize(q quat.Number) quat.Number {
	length := quat.Abs(q)
	if math.Abs(length-1.0) < 1e-10 {
		return q
	}
	if length == 0 {
		return quat.Number{Real: 1}
	}
	if math.IsInf(length, 1) {
		length = math.MaxFloat64
	}
	return quat.Scale(1/length, q)
}

// Flip multiplies a quaternion by -1, returning a quaternion representing the
// same orientation in the opposing hemisphere.
func Flip(q quat.Number) quat.Number {
	return quat.Number{Real: -q.Real, Imag: -q.Imag, Jmag: -q.Jmag, Kmag: -q.Kmag}
}

// QuaternionAlmostEqual reports whether two quaternions represent approximately
// the same orientation. Unit quaternions double cover rotations: q and Flip(q)
// describe the same one, so both signs are accepted.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	return quatComponentsAlmostEqual(a, b, tol) || quatComponentsAlmostEqual(a, Flip(b), tol)
}

func quatComponentsAlmostEqual(a, b quat.Number, tol float64) bool {
	return utils.Float64AlmostEqual(a.Real, b.Real, tol) &&
		utils.Float64AlmostEqual(a.Imag, b.Imag, tol) &&
		utils.Float64AlmostEqual(a.Jmag, b.Jmag, tol) &&
		utils.Float64AlmostEqual(a.Kmag, b.Kmag, tol)
}

// AngleBetween returns the geodesic distance in radians between two rotations,
// computed the same way the C++ Eigen library derives an axis angle.
// https://eigen.tuxfamily.org/dox/AngleAxis_8h_source.html
func AngleBetween(q1, q2 quat.Number) float64 {
	diff := quat.Mul(q2, quat.Conj(q1))
	denom := math.Sqrt(diff.Imag*diff.Imag + diff.Jmag*diff.Jmag + diff.Kmag*diff.Kmag)
	return 2 * math.Atan2(denom, math.Abs(diff.Real))
}

// slerp spherically interpolates between two rotations by the given amount.
func slerp(q1, q2 quat.Number, by float64) quat.Number {
	return gonumQuat(mgl64.QuatSlerp(mglQuat(q1), mglQuat(q2), by))
}

// rotateVector applies a unit rotation quaternion to a vector via the sandwich
// product q v q*.
func rotateVector(q quat.Number, v r3.Vector) r3.Vector {
	rotated := quat.Mul(quat.Mul(q, quat.Number{Real: 0, Imag: v.X, Jmag: v.Y, Kmag: v.Z}), quat.Conj(q))
	return r3.Vector{X: rotated.Imag, Y: rotated.Jmag, Z: rotated.Kmag}
}

func mglQuat(q quat.Number) mgl64.Quat {
	return mgl64.Quat{W: q.Real, V: mgl64.Vec3{q.Imag, q.Jmag, q.Kmag}}
}

func gonumQuat(q mgl64.Quat) quat.Number {
	return quat.Number{Real: q.W, Imag: q.X(), Jmag: q.Y(), Kmag: q.Z()}
}
