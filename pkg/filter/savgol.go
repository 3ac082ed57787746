package filter

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/matzehuels/linetrace/pkg/geometry"
)

// maxPolyOrder caps the local fit degree. Higher orders oscillate on pixel
// noise instead of smoothing it.
const maxPolyOrder = 3

// SavitzkyGolay smooths each coordinate axis with a local least-squares
// polynomial fit: for every point, a polynomial of degree at most Order is
// fitted to the window around it and evaluated at the point's own position.
// Unlike a moving average this preserves curvature and line endings.
//
// Window is forced odd and clips at the path ends; the fit degree shrinks
// with the window so the system stays overdetermined. If a fit fails
// numerically, that coordinate keeps its original value. Paths shorter than
// the window pass through unchanged.
type SavitzkyGolay struct {
	Window int
	Order  int
}

func (f SavitzkyGolay) Name() string { return "savgol" }

func (f SavitzkyGolay) String() string { return fmt.Sprintf("savgol=%d:%d", f.Window, f.Order) }

func (f SavitzkyGolay) Apply(p geometry.Path) geometry.Path {
	w := f.Window
	if w%2 == 0 {
		w++
	}
	if w < 3 || len(p) < w {
		return p
	}
	order := min(f.Order, maxPolyOrder)
	if order < 1 {
		order = 1
	}

	half := w / 2
	offsets := make([]float64, 0, w)
	xs := make([]float64, 0, w)
	ys := make([]float64, 0, w)

	out := make(geometry.Path, len(p))
	for i := range p {
		lo := max(0, i-half)
		hi := min(len(p), i+half+1)

		offsets, xs, ys = offsets[:0], xs[:0], ys[:0]
		for j := lo; j < hi; j++ {
			offsets = append(offsets, float64(j-i))
			xs = append(xs, p[j].X)
			ys = append(ys, p[j].Y)
		}

		k := min(order, hi-lo-1)
		out[i] = p[i]
		if v, ok := polyValueAtZero(offsets, xs, k); ok {
			out[i].X = v
		}
		if v, ok := polyValueAtZero(offsets, ys, k); ok {
			out[i].Y = v
		}
	}
	return out
}

// polyValueAtZero fits a degree-k polynomial to (ts, vs) by QR least squares
// and returns its value at t = 0, which is the constant coefficient. ok is
// false when the factorization cannot be solved.
func polyValueAtZero(ts, vs []float64, k int) (float64, bool) {
	n := len(vs)
	if k < 0 || k >= n {
		return 0, false
	}

	a := mat.NewDense(n, k+1, nil)
	for r, t := range ts {
		v := 1.0
		for c := 0; c <= k; c++ {
			a.Set(r, c, v)
			v *= t
		}
	}

	var qr mat.QR
	qr.Factorize(a)

	var coef mat.VecDense
	if err := qr.SolveVecTo(&coef, false, mat.NewVecDense(n, vs)); err != nil {
		return 0, false
	}
	return coef.AtVec(0), true
}
