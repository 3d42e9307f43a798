package ecmath

import (
	"fmt"
	"math/big"
	"sync/atomic"
)

// JacobianPoint is a curve point stored as (X, Y, Z) with x = X/Z² and
// y = Y/Z³. The zero value is the point at infinity; a finite point never
// has Z = 0.
//
// Addition and doubling need no inversion. The affine coordinates are
// materialized on demand through Z⁻¹, which is computed once and cached.
type JacobianPoint struct {
	curve   *Curve
	x, y, z *big.Int
	finite  bool
	inv     *zInverse
}

// zInverse caches Z⁻¹ together with the Z it was computed for. The cache is
// shared by copies of a point and filled idempotently, so concurrent readers
// at worst compute the same inverse twice.
type zInverse struct {
	entry atomic.Pointer[zInverseEntry]
}

type zInverseEntry struct {
	z, zInv *big.Int
}

func (c *Curve) jacobian(x, y, z *big.Int) JacobianPoint {
	if x == nil || y == nil || z == nil || z.Sign() == 0 {
		return JacobianPoint{}
	}
	return JacobianPoint{curve: c, x: x, y: y, z: z, finite: true, inv: new(zInverse)}
}

func (p JacobianPoint) IsInfinity() bool {
	return !p.finite
}

func (p JacobianPoint) Curve() *Curve {
	return p.curve
}

// Projective returns copies of the raw (X, Y, Z). The triple is not unique
// for a given affine point.
func (p JacobianPoint) Projective() (x, y, z *big.Int) {
	if p.IsInfinity() {
		return nil, nil, nil
	}
	return new(big.Int).Set(p.x), new(big.Int).Set(p.y), new(big.Int).Set(p.z)
}

func (p JacobianPoint) zInv() *big.Int {
	if e := p.inv.entry.Load(); e != nil && e.z.Cmp(p.z) == 0 {
		return e.zInv
	}
	zInv := p.curve.field.Invert(p.z)
	p.inv.entry.Store(&zInverseEntry{z: p.z, zInv: zInv})
	return zInv
}

func (p JacobianPoint) XY() (x, y *big.Int) {
	if p.IsInfinity() {
		return nil, nil
	}
	f := p.curve.field
	zInv := p.zInv()
	zInv2 := f.Pow(zInv, two)
	return f.Mul(p.x, zInv2), f.Mul(p.y, f.Mul(zInv2, zInv))
}

func (p JacobianPoint) X() *big.Int {
	x, _ := p.XY()
	return x
}

func (p JacobianPoint) Y() *big.Int {
	_, y := p.XY()
	return y
}

// ToAffine converts p to affine coordinates with a single inversion.
func (p JacobianPoint) ToAffine() AffinePoint {
	if p.IsInfinity() {
		return AffinePoint{}
	}
	return p.curve.affine(p.XY())
}

// Negate returns (X, -Y, Z). The result shares the Z⁻¹ cache of p.
func (p JacobianPoint) Negate() JacobianPoint {
	if p.IsInfinity() {
		return p
	}
	n := p
	n.y = p.curve.field.Neg(p.y)
	return n
}

// Equal compares the affine projections of p and q by cross-multiplying
// with the Z coordinates, which avoids the inversions.
func (p JacobianPoint) Equal(q JacobianPoint) bool {
	if p.IsInfinity() || q.IsInfinity() {
		return p.IsInfinity() == q.IsInfinity()
	}
	f := p.curve.field
	pz2, qz2 := f.Pow(p.z, two), f.Pow(q.z, two)
	if f.Mul(p.x, qz2).Cmp(f.Mul(q.x, pz2)) != 0 {
		return false
	}
	return f.Mul(p.y, f.Mul(qz2, q.z)).Cmp(f.Mul(q.y, f.Mul(pz2, p.z))) == 0
}

// Double returns 2p:
//
//	S  = 4·X·Y²
//	M  = 3·X² + a·Z⁴
//	X' = M² - 2·S
//	Y' = M·(S - X') - 8·Y⁴
//	Z' = 2·Y·Z
func (p JacobianPoint) Double() JacobianPoint {
	if p.IsInfinity() || p.y.Sign() == 0 {
		return JacobianPoint{}
	}
	c := p.curve
	f := c.field

	y2 := f.Pow(p.y, two)
	s := f.Mul(f.Mul(four, p.x), y2)
	z4 := f.Pow(p.z, four)
	m := f.Add(f.Mul(three, f.Pow(p.x, two)), f.Mul(c.a, z4))

	x := f.Sub(f.Pow(m, two), f.Mul(two, s))
	y := f.Sub(f.Mul(m, f.Sub(s, x)), f.Mul(eight, f.Pow(y2, two)))
	z := f.Mul(two, f.Mul(p.y, p.z))
	return c.jacobian(x, y, z)
}

// Add returns p + q:
//
//	A = X₁·Z₂²        B = X₂·Z₁² - A
//	C = Y₁·Z₂³        D = Y₂·Z₁³ - C
//	X₃ = D² - B²·(B + 2A)
//	Y₃ = D·(A·B² - X₃) - C·B³
//	Z₃ = Z₁·Z₂·B
//
// B = 0 means the points share x: they are equal when D = 0 as well, and
// opposite otherwise.
func (p JacobianPoint) Add(q JacobianPoint) JacobianPoint {
	switch {
	case p.IsInfinity():
		return q
	case q.IsInfinity():
		return p
	}
	c := p.curve
	f := c.field

	z1s, z2s := f.Pow(p.z, two), f.Pow(q.z, two)
	a := f.Mul(p.x, z2s)
	b := f.Sub(f.Mul(q.x, z1s), a)
	cc := f.Mul(p.y, f.Mul(z2s, q.z))
	d := f.Sub(f.Mul(q.y, f.Mul(z1s, p.z)), cc)

	if b.Sign() == 0 {
		if d.Sign() == 0 {
			return p.Double()
		}
		return JacobianPoint{}
	}

	b2 := f.Pow(b, two)
	b3 := f.Mul(b2, b)
	x := f.Sub(f.Pow(d, two), f.Mul(b2, f.Add(b, f.Mul(two, a))))
	y := f.Sub(f.Mul(d, f.Sub(f.Mul(a, b2), x)), f.Mul(cc, b3))
	z := f.Mul(f.Mul(p.z, q.z), b)
	return c.jacobian(x, y, z)
}

func (p JacobianPoint) String() string {
	return p.ToAffine().String()
}

// GoString prints the raw projective triple.
func (p JacobianPoint) GoString() string {
	if p.IsInfinity() {
		return "JacobianPoint{infinity}"
	}
	return fmt.Sprintf("JacobianPoint{X: %x, Y: %x, Z: %x}", p.x, p.y, p.z)
}
