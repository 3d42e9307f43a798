package ecmath

import (
	"math/big"

	"github.com/pkg/errors"
)

// Curve is the short Weierstrass curve y² = x³ + ax + b over a prime field.
// A Curve is immutable and may be shared freely.
type Curve struct {
	a, b  *big.Int
	field *Field
}

// NewCurve returns the curve with coefficients a and b over field.
func NewCurve(a, b *big.Int, field *Field) *Curve {
	return &Curve{
		a:     field.Reduce(a),
		b:     field.Reduce(b),
		field: field,
	}
}

func (c *Curve) Field() *Field {
	return c.field
}

// A returns a copy of the linear coefficient.
func (c *Curve) A() *big.Int {
	return new(big.Int).Set(c.a)
}

// B returns a copy of the constant coefficient.
func (c *Curve) B() *big.Int {
	return new(big.Int).Set(c.b)
}

// Contains reports whether y² ≡ x³ + ax + b (mod p).
func (c *Curve) Contains(x, y *big.Int) bool {
	if x == nil || y == nil {
		return false
	}
	f := c.field
	ls := f.Pow(y, two)
	rs := f.Add(f.Add(f.Pow(x, three), f.Mul(c.a, x)), c.b)
	return ls.Cmp(rs) == 0
}

// checkCoordinates validates caller-supplied affine coordinates.
func (c *Curve) checkCoordinates(x, y *big.Int) error {
	if x == nil || y == nil {
		return errors.Wrap(ErrPointNotOnCurve, "missing coordinate")
	}
	p := c.field.p
	if x.Sign() < 0 || x.Cmp(p) >= 0 || y.Sign() < 0 || y.Cmp(p) >= 0 {
		return errors.Wrapf(ErrCoordinateOutOfRange, "(%x, %x)", x, y)
	}
	if !c.Contains(x, y) {
		return errors.Wrapf(ErrPointNotOnCurve, "(%x, %x)", x, y)
	}
	return nil
}

// NewAffinePoint returns the point (x, y). It fails with ErrPointNotOnCurve
// when the coordinates do not satisfy the curve equation.
func (c *Curve) NewAffinePoint(x, y *big.Int) (AffinePoint, error) {
	if err := c.checkCoordinates(x, y); err != nil {
		return AffinePoint{}, err
	}
	return c.affine(new(big.Int).Set(x), new(big.Int).Set(y)), nil
}

// NewJacobianPoint returns the point (x, y) in Jacobian coordinates with
// Z = 1. It fails the same way NewAffinePoint does.
func (c *Curve) NewJacobianPoint(x, y *big.Int) (JacobianPoint, error) {
	p, err := c.NewAffinePoint(x, y)
	if err != nil {
		return JacobianPoint{}, err
	}
	return p.ToJacobian(), nil
}

// CombinedScalarMult returns the sum of every term's point multiplied by its
// scalar, computed in Jacobian coordinates with Shamir's trick.
func (c *Curve) CombinedScalarMult(terms []Term[JacobianPoint]) JacobianPoint {
	return CombinedScalarMult(terms)
}

// Params holds the domain parameters of a curve used for ECDSA: the curve,
// its generator and the generator's prime order.
type Params struct {
	name  string
	curve *Curve
	g     AffinePoint
	n     *big.Int
}

// Name is the curve name used in encodings, e.g. the JWK "crv" member.
func (p *Params) Name() string {
	return p.name
}

func (p *Params) Curve() *Curve {
	return p.curve
}

func (p *Params) Field() *Field {
	return p.curve.field
}

func (p *Params) Generator() AffinePoint {
	return p.g
}

// Order returns a copy of the generator's order n.
func (p *Params) Order() *big.Int {
	return new(big.Int).Set(p.n)
}

// BitSize is the bit length of the order, which is also the length digests
// are truncated to.
func (p *Params) BitSize() int {
	return p.n.BitLen()
}

var s256Params = func() *Params {
	field := NewField(mustParseHex(
		"FFFFFFFF FFFFFFFF FFFFFFFF FFFFFFFF FFFFFFFF FFFFFFFF FFFFFFFE FFFFFC2F"))
	curve := NewCurve(big.NewInt(0), big.NewInt(7), field)
	g, err := curve.NewAffinePoint(
		mustParseHex("79BE667E F9DCBBAC 55A06295 CE870B07 029BFCDB 2DCE28D9 59F2815B 16F81798"),
		mustParseHex("483ADA77 26A3C465 5DA4FBFC 0E1108A8 FD17B448 A6855419 9C47D08F FB10D4B8"),
	)
	if err != nil {
		panic(err)
	}
	return &Params{
		name:  "secp256k1",
		curve: curve,
		g:     g,
		n:     mustParseHex("FFFFFFFF FFFFFFFF FFFFFFFF FFFFFFFE BAAEDCE6 AF48A03B BFD25E8C D0364141"),
	}
}()

// S256 returns the secp256k1 domain parameters.
func S256() *Params {
	return s256Params
}
