package ecmath

import "math/big"

// Term is one (point, scalar) pair of a multi-scalar multiplication.
type Term[P Point[P]] struct {
	Point  P
	Scalar *big.Int
}

// maxMaskTerms is the number of terms whose bits fit in one uint64 mask.
const maxMaskTerms = 64

// CombinedScalarMult returns Σ tᵢ.Scalar·tᵢ.Point using Shamir's trick.
//
// All scalars are walked together, most significant bit first, so the
// doublings are shared. At every bit position the bits of all scalars form
// a mask selecting which points to add; the sum for each distinct mask is
// computed once and memoized. With 256 positions at most 256 masks are ever
// built, whatever the number of terms. Terms beyond 64 are processed in
// chunks whose results are summed.
func CombinedScalarMult[P Point[P]](terms []Term[P]) P {
	var sum P
	for start := 0; start < len(terms); start += maxMaskTerms {
		end := start + maxMaskTerms
		if end > len(terms) {
			end = len(terms)
		}
		sum = sum.Add(combinedScalarMult(normalizeTerms(terms[start:end])))
	}
	return sum
}

// normalizeTerms folds negative scalars into the point.
func normalizeTerms[P Point[P]](terms []Term[P]) []Term[P] {
	out := make([]Term[P], len(terms))
	for i, t := range terms {
		if t.Scalar.Sign() < 0 {
			t = Term[P]{Point: t.Point.Negate(), Scalar: new(big.Int).Neg(t.Scalar)}
		}
		out[i] = t
	}
	return out
}

func termsWidth[P Point[P]](terms []Term[P]) int {
	width := scalarBits
	for _, t := range terms {
		if w := scalarWidth(t.Scalar); w > width {
			width = w
		}
	}
	return width
}

func combinedScalarMult[P Point[P]](terms []Term[P]) P {
	n := len(terms)
	memo := make(map[uint64]P, scalarBits)
	var sum P
	for i := termsWidth(terms) - 1; i >= 0; i-- {
		sum = sum.Double()

		// The first term owns the most significant mask bit.
		var mask uint64
		for _, t := range terms {
			mask = mask<<1 | uint64(t.Scalar.Bit(i))
		}
		if mask == 0 {
			continue
		}

		partial, ok := memo[mask]
		if !ok {
			for e, t := range terms {
				if mask>>(n-e-1)&1 == 1 {
					partial = partial.Add(t.Point)
				}
			}
			memo[mask] = partial
		}
		sum = sum.Add(partial)
	}
	return sum
}

// combinedScalarMultNoCache is CombinedScalarMult without the memo table.
// It rebuilds the partial sum at every bit position.
func combinedScalarMultNoCache[P Point[P]](terms []Term[P]) P {
	terms = normalizeTerms(terms)
	var sum P
	for i := termsWidth(terms) - 1; i >= 0; i-- {
		sum = sum.Double()
		var partial P
		for _, t := range terms {
			if t.Scalar.Bit(i) == 1 {
				partial = partial.Add(t.Point)
			}
		}
		sum = sum.Add(partial)
	}
	return sum
}
