// ABOUTME: 3x3 rotation matrix and 4x4 affine transform types
// ABOUTME: Row-major storage with column accessors and point/vector transforms

package linalg

// Axis indices for column access.
const (
	AxisX = 0
	AxisY = 1
	AxisZ = 2
	AxisW = 3
)

// Mtx3 is a row-major 3x3 matrix, typically an orthonormal rotation.
type Mtx3 struct {
	M [9]float32
}

// Mtx3Identity is the 3x3 identity matrix.
var Mtx3Identity = Mtx3{M: [9]float32{
	1, 0, 0,
	0, 1, 0,
	0, 0, 1,
}}

// At returns the element at row r, column c.
func (m Mtx3) At(r, c int) float32 {
	return m.M[r*3+c]
}

// Set assigns the element at row r, column c.
func (m *Mtx3) Set(r, c int, v float32) {
	m.M[r*3+c] = v
}

// Column returns column col as a vector. Out-of-range columns return the
// zero vector and ok=false.
func (m Mtx3) Column(col int) (Vec3, bool) {
	if col < 0 || col > 2 {
		return Vec3Zero, false
	}
	return Vec3{m.At(0, col), m.At(1, col), m.At(2, col)}, true
}

// Mul returns m * n.
func (m Mtx3) Mul(n Mtx3) Mtx3 {
	var r Mtx3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var s float32
			for k := 0; k < 3; k++ {
				s += m.At(i, k) * n.At(k, j)
			}
			r.Set(i, j, s)
		}
	}
	return r
}

// MulVec returns m * v.
func (m Mtx3) MulVec(v Vec3) Vec3 {
	return Vec3{
		m.At(0, 0)*v.X + m.At(0, 1)*v.Y + m.At(0, 2)*v.Z,
		m.At(1, 0)*v.X + m.At(1, 1)*v.Y + m.At(1, 2)*v.Z,
		m.At(2, 0)*v.X + m.At(2, 1)*v.Y + m.At(2, 2)*v.Z,
	}
}

// Transposed returns the transpose of m. For an orthonormal rotation this is
// the inverse.
func (m Mtx3) Transposed() Mtx3 {
	var r Mtx3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r.Set(i, j, m.At(j, i))
		}
	}
	return r
}

// Mtx4 is a row-major 4x4 affine transform.
type Mtx4 struct {
	M [16]float32
}

// Mtx4Identity is the 4x4 identity matrix.
var Mtx4Identity = Mtx4{M: [16]float32{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}}

// At returns the element at row r, column c.
func (m Mtx4) At(r, c int) float32 {
	return m.M[r*4+c]
}

// Set assigns the element at row r, column c.
func (m *Mtx4) Set(r, c int, v float32) {
	m.M[r*4+c] = v
}

// Column returns the upper three elements of column col. Out-of-range
// columns return the zero vector and ok=false.
func (m Mtx4) Column(col int) (Vec3, bool) {
	if col < 0 || col > 3 {
		return Vec3Zero, false
	}
	return Vec3{m.At(0, col), m.At(1, col), m.At(2, col)}, true
}

// SetColumn assigns the upper three elements of column col.
func (m *Mtx4) SetColumn(col int, v Vec3) bool {
	if col < 0 || col > 3 {
		return false
	}
	m.Set(0, col, v.X)
	m.Set(1, col, v.Y)
	m.Set(2, col, v.Z)
	return true
}

// Rotation returns the upper-left 3x3 block.
func (m Mtx4) Rotation() Mtx3 {
	var r Mtx3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r.Set(i, j, m.At(i, j))
		}
	}
	return r
}

// Translation returns the translation column.
func (m Mtx4) Translation() Vec3 {
	v, _ := m.Column(AxisW)
	return v
}

// Mul returns m * n.
func (m Mtx4) Mul(n Mtx4) Mtx4 {
	var r Mtx4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var s float32
			for k := 0; k < 4; k++ {
				s += m.At(i, k) * n.At(k, j)
			}
			r.Set(i, j, s)
		}
	}
	return r
}

// TransformPoint applies the full affine transform to a point.
func (m Mtx4) TransformPoint(p Vec3) Vec3 {
	return Vec3{
		m.At(0, 0)*p.X + m.At(0, 1)*p.Y + m.At(0, 2)*p.Z + m.At(0, 3),
		m.At(1, 0)*p.X + m.At(1, 1)*p.Y + m.At(1, 2)*p.Z + m.At(1, 3),
		m.At(2, 0)*p.X + m.At(2, 1)*p.Y + m.At(2, 2)*p.Z + m.At(2, 3),
	}
}

// TransformVector applies only the rotational part to a direction vector.
func (m Mtx4) TransformVector(v Vec3) Vec3 {
	return Vec3{
		m.At(0, 0)*v.X + m.At(0, 1)*v.Y + m.At(0, 2)*v.Z,
		m.At(1, 0)*v.X + m.At(1, 1)*v.Y + m.At(1, 2)*v.Z,
		m.At(2, 0)*v.X + m.At(2, 1)*v.Y + m.At(2, 2)*v.Z,
	}
}

// FromRotationTranslation builds an affine transform from a rotation and a
// translation.
func FromRotationTranslation(rot Mtx3, pos Vec3) Mtx4 {
	m := Mtx4Identity
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.Set(i, j, rot.At(i, j))
		}
	}
	m.SetColumn(AxisW, pos)
	return m
}
