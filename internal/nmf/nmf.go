// Package nmf implements non-negative matrix factorization by multiplicative
// updates, with L1/L2 regularization mixed the way scikit-style solvers do.
package nmf

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"
)

const (
	defaultMaxIter = 200
	defaultTol     = 1e-4

	// eps keeps the multiplicative update denominators away from zero.
	eps = 1e-12
)

// Params configures one factorization.
type Params struct {
	// Components is the number of latent topics k.
	Components int
	// Alpha scales the regularization applied to both factors.
	Alpha float64
	// L1Ratio mixes L1 (1.0) against L2 (0.0) regularization.
	L1Ratio float64
	// MaxIter and Tol bound the update loop; zero values take defaults.
	MaxIter int
	Tol     float64
	// Seed makes the random initialization (and therefore the whole
	// factorization) reproducible. Nil seeds from the clock.
	Seed *int64
}

// Factorize decomposes a non-negative matrix x (n x m) into w (n x k) and
// h (k x m) such that w*h approximates x, with all factors non-negative.
func Factorize(x mat.Matrix, p Params) (*mat.Dense, *mat.Dense, error) {
	rows, cols := x.Dims()
	if p.Components <= 0 {
		return nil, nil, fmt.Errorf("nmf: component count %d must be positive", p.Components)
	}
	if p.Components > rows || p.Components > cols {
		return nil, nil, fmt.Errorf("nmf: component count %d exceeds matrix bounds %dx%d", p.Components, rows, cols)
	}

	var sum float64
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			val := x.At(r, c)
			if val < 0 {
				return nil, nil, fmt.Errorf("nmf: negative entry %f at (%d,%d)", val, r, c)
			}
			sum += val
		}
	}

	maxIter := p.MaxIter
	if maxIter <= 0 {
		maxIter = defaultMaxIter
	}
	tol := p.Tol
	if tol <= 0 {
		tol = defaultTol
	}

	var seed int64
	if p.Seed != nil {
		seed = *p.Seed
	} else {
		seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seed))

	k := p.Components
	scale := math.Sqrt(sum/float64(rows*cols*k) + eps)
	w := randomDense(rows, k, scale, rnd)
	h := randomDense(k, cols, scale, rnd)

	l1 := p.Alpha * p.L1Ratio
	l2 := p.Alpha * (1 - p.L1Ratio)

	prev := residual(x, w, h)
	for i := 0; i < maxIter; i++ {
		updateH(x, w, h, l1, l2)
		updateW(x, w, h, l1, l2)

		if (i+1)%10 == 0 {
			cur := residual(x, w, h)
			if prev > 0 && (prev-cur)/prev < tol {
				break
			}
			prev = cur
		}
	}

	return w, h, nil
}

func randomDense(rows, cols int, scale float64, rnd *rand.Rand) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = rnd.Float64() * scale
	}
	return mat.NewDense(rows, cols, data)
}

// updateH applies h <- h * (w'x) / (w'wh + l1 + l2*h), elementwise.
func updateH(x mat.Matrix, w, h *mat.Dense, l1, l2 float64) {
	var num, wtw, den mat.Dense
	num.Mul(w.T(), x)
	wtw.Mul(w.T(), w)
	den.Mul(&wtw, h)

	rows, cols := h.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			d := den.At(r, c) + l1 + l2*h.At(r, c) + eps
			h.Set(r, c, h.At(r, c)*num.At(r, c)/d)
		}
	}
}

// updateW applies w <- w * (xh') / (whh' + l1 + l2*w), elementwise.
func updateW(x mat.Matrix, w, h *mat.Dense, l1, l2 float64) {
	var num, hht, den mat.Dense
	num.Mul(x, h.T())
	hht.Mul(h, h.T())
	den.Mul(w, &hht)

	rows, cols := w.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			d := den.At(r, c) + l1 + l2*w.At(r, c) + eps
			w.Set(r, c, w.At(r, c)*num.At(r, c)/d)
		}
	}
}

// residual is the Frobenius norm of x - w*h.
func residual(x mat.Matrix, w, h *mat.Dense) float64 {
	var wh, diff mat.Dense
	wh.Mul(w, h)
	diff.Sub(x, &wh)
	return mat.Norm(&diff, 2)
}
