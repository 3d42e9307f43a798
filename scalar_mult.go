package ecmath

import "math/big"

// Point is the group arithmetic shared by AffinePoint and JacobianPoint, so
// that every scalar multiplication algorithm is written once.
//
// Implementations are immutable values whose zero value is the point at
// infinity. Operations never modify their operands.
type Point[P any] interface {
	IsInfinity() bool
	Add(q P) P
	Double() P
	Negate() P
	// Equal compares affine projections.
	Equal(q P) bool
	// XY returns the affine coordinates, or nil, nil for infinity.
	XY() (x, y *big.Int)
}

// scalarBits is the width scalars are processed at. Wider scalars extend
// the loop to their own bit length.
const scalarBits = 256

func scalarWidth(k *big.Int) int {
	if w := k.BitLen(); w > scalarBits {
		return w
	}
	return scalarBits
}

// ScalarMult returns k·p by MSB-first double-and-add: for every bit from
// the most significant down the accumulator is doubled, and p is added when
// the bit is set. This is the canonical algorithm; CombinedScalarMult walks
// the bits in the same order.
//
// The conditional addition branches on the bits of k. Use it for public
// scalars only.
func ScalarMult[P Point[P]](p P, k *big.Int) P {
	if k.Sign() < 0 {
		return ScalarMult(p.Negate(), new(big.Int).Neg(k))
	}
	var sum P
	for i := scalarWidth(k) - 1; i >= 0; i-- {
		sum = sum.Double()
		if k.Bit(i) == 1 {
			sum = sum.Add(p)
		}
	}
	return sum
}

// ScalarMultLSB returns k·p by LSB-first double-and-add. The running base is
// doubled on every bit, including zero bits.
func ScalarMultLSB[P Point[P]](p P, k *big.Int) P {
	if k.Sign() < 0 {
		return ScalarMultLSB(p.Negate(), new(big.Int).Neg(k))
	}
	var sum P
	base := p
	for i, n := 0, scalarWidth(k); i < n; i++ {
		if k.Bit(i) == 1 {
			sum = sum.Add(base)
		}
		base = base.Double()
	}
	return sum
}

// ScalarMultNaive returns k·p by k repeated additions. It is only usable for
// small k.
func ScalarMultNaive[P Point[P]](p P, k *big.Int) P {
	if k.Sign() < 0 {
		return ScalarMultNaive(p.Negate(), new(big.Int).Neg(k))
	}
	var sum P
	for i := new(big.Int); i.Cmp(k) < 0; i.Add(i, one) {
		sum = sum.Add(p)
	}
	return sum
}

// scalarMultUniform is ScalarMult without the data-dependent branch: the
// addition is computed for every bit and the bit selects which result is
// kept. The sequence of group operations no longer depends on k, although
// big.Int arithmetic itself is not constant time.
func scalarMultUniform[P Point[P]](p P, k *big.Int) P {
	if k.Sign() < 0 {
		return scalarMultUniform(p.Negate(), new(big.Int).Neg(k))
	}
	var sum P
	for i := scalarWidth(k) - 1; i >= 0; i-- {
		sum = sum.Double()
		candidates := [2]P{sum, sum.Add(p)}
		sum = candidates[k.Bit(i)]
	}
	return sum
}
