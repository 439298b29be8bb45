package vmath

// Ray is a half-line in world space; Dir is expected to be normalized but is not required to be
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// NewRay builds a ray with a normalized direction
func NewRay(origin, dir Vec3) Ray {
	return Ray{Origin: origin, Dir: SafeNormalize(dir)}
}

// LineDistanceSq returns squared perpendicular distance from p to the ray's line
// Computed as |l|^2 - proj^2 with l = origin - p, clamped at zero against rounding
func (r Ray) LineDistanceSq(p Vec3) float64 {
	l := r.Origin.Sub(p)
	dirSq := r.Dir.LenSqr()
	if dirSq == 0 {
		return l.LenSqr()
	}
	proj := r.Dir.Dot(l)
	d := l.LenSqr() - proj*proj/dirSq
	if d < 0 {
		return 0
	}
	return d
}
