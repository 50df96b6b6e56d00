package interp

// Mode selects a fractional interpolation kernel.
type Mode int

const (
	// Linear interpolates between two neighboring samples. Reading halfway
	// between samples a and b yields (a+b)/2 exactly.
	Linear Mode = iota

	// Hermite interpolates with a cubic 4-point kernel. Smoother under
	// modulated read offsets at the cost of two extra neighbor reads.
	Hermite
)

// String returns the mode name for diagnostics.
func (m Mode) String() string {
	switch m {
	case Linear:
		return "linear"
	case Hermite:
		return "hermite"
	default:
		return "unknown"
	}
}

// Lerp interpolates linearly from x0 to x1 at position t in [0, 1].
func Lerp(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}

// Hermite4 computes cubic 4-point interpolation from x0 to x1 at position
// t in [0, 1], using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)

	return ((c3*t+c2)*t+c1)*t + c0
}
