package geom

import "github.com/chewxy/math32"

// column-major matrix
type Matrix4 [16]Element

func NewMatrix4() *Matrix4 {
	return &Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func NewMatrix4FromSlice(a []Element) *Matrix4 {
	mat := &Matrix4{}
	copy(mat[:], a)
	return mat
}

func NewScaleMatrix4(x, y, z Element) *Matrix4 {
	return &Matrix4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

func NewTranslateMatrix4(x, y, z Element) *Matrix4 {
	return &Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// NewRotationMatrix4FromQuaternion expects a normalized x,y,z,w quaternion.
func NewRotationMatrix4FromQuaternion(x, y, z, w Element) *Matrix4 {
	m := NewMatrix4()
	m[0] = 1 - 2*(y*y+z*z)
	m[4] = 2 * (x*y - z*w)
	m[8] = 2 * (x*z + y*w)

	m[1] = 2 * (x*y + z*w)
	m[5] = 1 - 2*(x*x+z*z)
	m[9] = 2 * (y*z - x*w)

	m[2] = 2 * (x*z - y*w)
	m[6] = 2 * (y*z + x*w)
	m[10] = 1 - 2*(x*x+y*y)
	return m
}

func NewEulerRotationMatrix4(x, y, z Element) *Matrix4 {
	m := NewMatrix4()
	cx, sx := math32.Cos(x), math32.Sin(x)
	cy, sy := math32.Cos(y), math32.Sin(y)
	cz, sz := math32.Cos(z), math32.Sin(z)

	m[0] = cy * cz
	m[4] = -cy * sz
	m[8] = sy

	m[1] = cx*sz + sx*cz*sy
	m[5] = cx*cz - sx*sz*sy
	m[9] = -sx * cy

	m[2] = sx*sz - cx*cz*sy
	m[6] = sx*cz + cx*sz*sy
	m[10] = cx * cy
	return m
}

func (b *Matrix4) Mul(a *Matrix4) *Matrix4 {
	r := &Matrix4{}
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var s Element
			for k := 0; k < 4; k++ {
				s += a[col*4+k] * b[k*4+row]
			}
			r[col*4+row] = s
		}
	}
	return r
}

func (mat *Matrix4) ApplyTo(v *Vector3) *Vector3 {
	return &Vector3{
		mat[0]*v.X + mat[4]*v.Y + mat[8]*v.Z + mat[12],
		mat[1]*v.X + mat[5]*v.Y + mat[9]*v.Z + mat[13],
		mat[2]*v.X + mat[6]*v.Y + mat[10]*v.Z + mat[14],
	}
}

func (mat *Matrix4) IsIdentity() bool {
	return *mat == *NewMatrix4()
}

func (mat *Matrix4) Clone() *Matrix4 {
	r := *mat
	return &r
}

func (mat *Matrix4) ToArray(a []Element) {
	copy(a, mat[:])
}
