package nmf

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func seedOf(v int64) *int64 { return &v }

func testMatrix() *mat.Dense {
	// Rank-2-ish non-negative matrix: two blocks of co-occurring terms.
	return mat.NewDense(4, 5, []float64{
		1.0, 0.9, 0.0, 0.0, 0.1,
		0.8, 1.0, 0.1, 0.0, 0.0,
		0.0, 0.1, 1.0, 0.9, 0.8,
		0.1, 0.0, 0.9, 1.0, 0.7,
	})
}

func TestFactorizeShapesAndNonNegativity(t *testing.T) {
	t.Parallel()

	x := testMatrix()
	w, h, err := Factorize(x, Params{Components: 2, Seed: seedOf(7)})
	if err != nil {
		t.Fatalf("Factorize returned error: %v", err)
	}

	wr, wc := w.Dims()
	hr, hc := h.Dims()
	if wr != 4 || wc != 2 || hr != 2 || hc != 5 {
		t.Fatalf("unexpected factor shapes: w=%dx%d h=%dx%d", wr, wc, hr, hc)
	}

	for r := 0; r < wr; r++ {
		for c := 0; c < wc; c++ {
			if w.At(r, c) < 0 {
				t.Fatalf("w(%d,%d) = %f is negative", r, c, w.At(r, c))
			}
		}
	}
	for r := 0; r < hr; r++ {
		for c := 0; c < hc; c++ {
			if h.At(r, c) < 0 {
				t.Fatalf("h(%d,%d) = %f is negative", r, c, h.At(r, c))
			}
		}
	}
}

func TestFactorizeApproximatesInput(t *testing.T) {
	t.Parallel()

	x := testMatrix()
	w, h, err := Factorize(x, Params{Components: 2, Seed: seedOf(3), MaxIter: 500})
	if err != nil {
		t.Fatalf("Factorize returned error: %v", err)
	}

	var wh mat.Dense
	wh.Mul(w, h)
	var diff mat.Dense
	diff.Sub(x, &wh)

	if res := mat.Norm(&diff, 2); res > 0.5*mat.Norm(x, 2) {
		t.Fatalf("reconstruction residual %f too large", res)
	}
}

func TestFactorizeDeterministicWithSeed(t *testing.T) {
	t.Parallel()

	x := testMatrix()
	p := Params{Components: 2, Alpha: 0.1, L1Ratio: 0.25, MaxIter: 100, Seed: seedOf(42)}

	w1, h1, err := Factorize(x, p)
	if err != nil {
		t.Fatalf("first Factorize returned error: %v", err)
	}
	w2, h2, err := Factorize(x, p)
	if err != nil {
		t.Fatalf("second Factorize returned error: %v", err)
	}

	if !mat.Equal(w1, w2) || !mat.Equal(h1, h2) {
		t.Fatal("same seed and parameters produced different factors")
	}
}

func TestFactorizeRejectsBadComponentCounts(t *testing.T) {
	t.Parallel()

	x := testMatrix()

	if _, _, err := Factorize(x, Params{Components: 0}); err == nil {
		t.Fatal("expected error for zero components")
	}
	if _, _, err := Factorize(x, Params{Components: -3}); err == nil {
		t.Fatal("expected error for negative components")
	}
	if _, _, err := Factorize(x, Params{Components: 6}); err == nil {
		t.Fatal("expected error for components exceeding matrix bounds")
	}
}

func TestFactorizeRejectsNegativeInput(t *testing.T) {
	t.Parallel()

	x := mat.NewDense(2, 2, []float64{1, -0.5, 0.2, 0.3})
	if _, _, err := Factorize(x, Params{Components: 1}); err == nil {
		t.Fatal("expected error for negative input entries")
	}
}
