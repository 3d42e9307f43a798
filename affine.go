package ecmath

import (
	"fmt"
	"math/big"
)

// AffinePoint is a curve point stored as (x, y). The zero value is the point
// at infinity.
//
// Every addition or doubling costs one field inversion; see JacobianPoint
// for the representation that avoids it.
type AffinePoint struct {
	curve  *Curve
	x, y   *big.Int
	finite bool
}

// affine builds a point from coordinates produced by the curve arithmetic.
// Absent coordinates collapse to infinity.
func (c *Curve) affine(x, y *big.Int) AffinePoint {
	if x == nil || y == nil {
		return AffinePoint{}
	}
	return AffinePoint{curve: c, x: x, y: y, finite: true}
}

func (p AffinePoint) IsInfinity() bool {
	return !p.finite
}

// Curve returns the curve of the point, nil for infinity.
func (p AffinePoint) Curve() *Curve {
	return p.curve
}

// X returns a copy of the x coordinate, nil for infinity.
func (p AffinePoint) X() *big.Int {
	if p.IsInfinity() {
		return nil
	}
	return new(big.Int).Set(p.x)
}

// Y returns a copy of the y coordinate, nil for infinity.
func (p AffinePoint) Y() *big.Int {
	if p.IsInfinity() {
		return nil
	}
	return new(big.Int).Set(p.y)
}

func (p AffinePoint) XY() (x, y *big.Int) {
	return p.X(), p.Y()
}

// Negate returns -p = (x, -y).
func (p AffinePoint) Negate() AffinePoint {
	if p.IsInfinity() {
		return p
	}
	return p.curve.affine(p.x, p.curve.field.Neg(p.y))
}

func (p AffinePoint) Equal(q AffinePoint) bool {
	if p.IsInfinity() || q.IsInfinity() {
		return p.IsInfinity() == q.IsInfinity()
	}
	return p.x.Cmp(q.x) == 0 && p.y.Cmp(q.y) == 0
}

// Add returns p + q using the chord rule, or the tangent rule when p = q.
func (p AffinePoint) Add(q AffinePoint) AffinePoint {
	switch {
	case p.IsInfinity():
		return q
	case q.IsInfinity():
		return p
	case p.Negate().Equal(q):
		return AffinePoint{}
	}

	c := p.curve
	f := c.field
	var lambda *big.Int
	if p.Equal(q) {
		// (3x² + a) / 2y
		lambda = f.Div(
			f.Add(f.Mul(three, f.Pow(p.x, two)), c.a),
			f.Mul(two, p.y),
		)
	} else {
		// (y₂ - y₁) / (x₂ - x₁)
		lambda = f.Div(f.Sub(q.y, p.y), f.Sub(q.x, p.x))
	}

	x3 := f.Sub(f.Sub(f.Pow(lambda, two), p.x), q.x)
	y3 := f.Sub(f.Mul(lambda, f.Sub(p.x, x3)), p.y)
	return c.affine(x3, y3)
}

func (p AffinePoint) Double() AffinePoint {
	return p.Add(p)
}

// ToJacobian returns p as (x, y, 1).
func (p AffinePoint) ToJacobian() JacobianPoint {
	if p.IsInfinity() {
		return JacobianPoint{}
	}
	return p.curve.jacobian(p.x, p.y, one)
}

func (p AffinePoint) String() string {
	if p.IsInfinity() {
		return "infinity"
	}
	return fmt.Sprintf("(%064x, %064x)", p.x, p.y)
}
