package ecmath

import (
	"io"
	"math/big"

	"github.com/pkg/errors"
)

var (
	one      = big.NewInt(1)
	two      = big.NewInt(2)
	three    = big.NewInt(3)
	four     = big.NewInt(4)
	eight    = big.NewInt(8)
	minusOne = big.NewInt(-1)
)

// Field implements arithmetic over the integers modulo a prime p.
//
// Elements are plain *big.Int values. A nil element is the absent value: it
// is what Invert returns for zero, and every operation that receives it
// returns nil again, so a failed inversion poisons the whole computation
// instead of producing a wrong residue. Results are always reduced into
// [0, p) and never alias an operand.
type Field struct {
	p       *big.Int
	sqrtExp *big.Int // (p+1)/4, set only when p ≡ 3 (mod 4)
}

// NewField returns the field of integers modulo p. p is copied.
func NewField(p *big.Int) *Field {
	f := &Field{p: new(big.Int).Set(p)}
	if p.Bit(0) == 1 && p.Bit(1) == 1 {
		f.sqrtExp = new(big.Int).Add(p, one)
		f.sqrtExp.Rsh(f.sqrtExp, 2)
	}
	return f
}

// Modulus returns a copy of p.
func (f *Field) Modulus() *big.Int {
	return new(big.Int).Set(f.p)
}

// Reduce returns a mod p.
func (f *Field) Reduce(a *big.Int) *big.Int {
	if a == nil {
		return nil
	}
	return new(big.Int).Mod(a, f.p)
}

func (f *Field) Add(a, b *big.Int) *big.Int {
	if a == nil || b == nil {
		return nil
	}
	r := new(big.Int).Add(a, b)
	return r.Mod(r, f.p)
}

// Sub returns a + (-1)·b. The multiplication by -1 is reduced before the
// addition, so the result is never negative.
func (f *Field) Sub(a, b *big.Int) *big.Int {
	if a == nil || b == nil {
		return nil
	}
	return f.Add(a, f.Neg(b))
}

func (f *Field) Neg(a *big.Int) *big.Int {
	return f.Mul(a, minusOne)
}

func (f *Field) Mul(a, b *big.Int) *big.Int {
	if a == nil || b == nil {
		return nil
	}
	r := new(big.Int).Mul(a, b)
	return r.Mod(r, f.p)
}

// Div returns a·b⁻¹, or nil if b has no inverse.
func (f *Field) Div(a, b *big.Int) *big.Int {
	if a == nil || b == nil {
		return nil
	}
	return f.Mul(a, f.Invert(b))
}

// Pow returns a^e mod p. A negative exponent inverts first and yields nil
// when a has no inverse.
func (f *Field) Pow(a, e *big.Int) *big.Int {
	if a == nil || e == nil {
		return nil
	}
	base := new(big.Int).Mod(a, f.p)
	return new(big.Int).Exp(base, e, f.p)
}

// Invert returns a⁻¹ mod p, or nil when a ≡ 0.
func (f *Field) Invert(a *big.Int) *big.Int {
	return InvertMod(a, f.p)
}

// Sqrt returns a square root of a, or nil if a is not a quadratic residue.
// Which of the two roots is returned is unspecified.
func (f *Field) Sqrt(a *big.Int) *big.Int {
	if a == nil {
		return nil
	}
	var r *big.Int
	if f.sqrtExp != nil {
		r = f.Pow(a, f.sqrtExp)
	} else {
		r = new(big.Int).ModSqrt(f.Reduce(a), f.p)
	}
	if r == nil || !f.Equal(f.Mul(r, r), a) {
		return nil
	}
	return r
}

// Equal reports whether a ≡ b (mod p). Absent values are never equal.
func (f *Field) Equal(a, b *big.Int) bool {
	if a == nil || b == nil {
		return false
	}
	return f.Reduce(a).Cmp(f.Reduce(b)) == 0
}

// Random returns a uniformly distributed nonzero element read from rand.
func (f *Field) Random(rand io.Reader) (*big.Int, error) {
	return RandomScalar(rand, f.p)
}

// InvertMod computes the multiplicative inverse of a modulo m with the
// extended Euclidean algorithm. It returns nil when gcd(a, m) != 1, which
// for a prime modulus happens only for a ≡ 0.
func InvertMod(a, m *big.Int) *big.Int {
	if a == nil || m == nil || m.Sign() <= 0 {
		return nil
	}
	t, newT := new(big.Int), big.NewInt(1)
	r, newR := new(big.Int).Set(m), new(big.Int).Mod(a, m)
	q, tmp := new(big.Int), new(big.Int)

	for newR.Sign() != 0 {
		q.Quo(r, newR)

		tmp.Mul(q, newT)
		tmp.Sub(t, tmp)
		t, newT, tmp = newT, tmp, t

		tmp.Mul(q, newR)
		tmp.Sub(r, tmp)
		r, newR, tmp = newR, tmp, r
	}

	if r.Cmp(one) != 0 {
		return nil
	}
	if t.Sign() < 0 {
		t.Add(t, m)
	}
	return t
}

// RandomScalar returns an integer in (0, m) read from rand. It reads 64
// bits more than m is wide, and never less than 256 bits, so that the
// reduction mod m is close to uniform; zero is rejected and redrawn.
func RandomScalar(rand io.Reader, m *big.Int) (*big.Int, error) {
	if m.Cmp(two) < 0 {
		return nil, errors.Errorf("modulus %v leaves no nonzero residues", m)
	}
	size := (m.BitLen() + 64 + 7) / 8
	if size < 32 {
		size = 32
	}
	buf := make([]byte, size)
	for {
		if _, err := io.ReadFull(rand, buf); err != nil {
			return nil, errors.Wrap(err, "failed to read random bytes")
		}
		k := new(big.Int).SetBytes(buf)
		k.Mod(k, m)
		if k.Sign() != 0 {
			return k, nil
		}
	}
}
