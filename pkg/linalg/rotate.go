// ABOUTME: Rotation matrix constructors
// ABOUTME: Axis rotations, axis-angle and look-at helpers

package linalg

import "github.com/chewxy/math32"

// RotationX returns a rotation of angle radians around the X axis.
func RotationX(angle float32) Mtx3 {
	s, c := math32.Sincos(angle)
	return Mtx3{M: [9]float32{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	}}
}

// RotationY returns a rotation of angle radians around the Y axis.
func RotationY(angle float32) Mtx3 {
	s, c := math32.Sincos(angle)
	return Mtx3{M: [9]float32{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	}}
}

// RotationZ returns a rotation of angle radians around the Z axis.
func RotationZ(angle float32) Mtx3 {
	s, c := math32.Sincos(angle)
	return Mtx3{M: [9]float32{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}}
}

// AxisAngle returns a rotation of angle radians around an arbitrary axis.
// The axis need not be normalized; a zero axis yields the identity.
func AxisAngle(axis Vec3, angle float32) Mtx3 {
	n := axis.Normalize()
	if n == Vec3Zero {
		return Mtx3Identity
	}
	s, c := math32.Sincos(angle)
	t := 1 - c
	x, y, z := n.X, n.Y, n.Z
	return Mtx3{M: [9]float32{
		t*x*x + c, t*x*y - s*z, t*x*z + s*y,
		t*x*y + s*z, t*y*y + c, t*y*z - s*x,
		t*x*z - s*y, t*y*z + s*x, t*z*z + c,
	}}
}

// LookAt returns a rotation whose +Z column points from eye toward target,
// with +Y kept as close to up as possible. Columns are right, up, forward.
func LookAt(eye, target, up Vec3) Mtx3 {
	forward := target.Sub(eye).Normalize()
	if forward == Vec3Zero {
		return Mtx3Identity
	}
	right := up.Cross(forward).Normalize()
	if right == Vec3Zero {
		// up and forward are colinear, pick any perpendicular
		right = Vec3{1, 0, 0}.Cross(forward).Normalize()
		if right == Vec3Zero {
			right = Vec3{0, 0, 1}.Cross(forward).Normalize()
		}
	}
	newUp := forward.Cross(right)
	return Mtx3{M: [9]float32{
		right.X, newUp.X, forward.X,
		right.Y, newUp.Y, forward.Y,
		right.Z, newUp.Z, forward.Z,
	}}
}
