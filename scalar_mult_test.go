package ecmath

import (
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/btcec"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var multiplesOfG = []struct {
	k    int64
	x, y string
}{
	{1, "79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
		"483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"},
	{2, "c6047f9441ed7d6d3045406e95c07cd85c778e4b8cef3ca7abac09b95c709ee5",
		"1ae168fea63dc339a3c58419466ceaeef7f632653266d0e1236431a950cfe52a"},
	{3, "f9308a019258c31049344f85f89d5229b531c845836f99b08601f113bce036f9",
		"388f7b0f632de8140fe337e62a37f3566500a99934c2231b6cb9fd7584b8e672"},
	{7, "5cbdf0646e5db4eaa398f365f2ea7a0e3d419b7e0330e39ce92bddedcac4f9bc",
		"6aebca40ba255960a3178d6d861a54dba813d0b813fde7b5a5082628087264da"},
}

func mustPoint(t *testing.T, x, y string) AffinePoint {
	p, err := S256().Curve().NewAffinePoint(mustParseHex(x), mustParseHex(y))
	require.NoError(t, err)
	return p
}

func randomScalar(t testing.TB) *big.Int {
	k, err := defaultECDSA.RandomScalar()
	require.NoError(t, err)
	return k
}

func Test_ScalarMult_KnownMultiples(t *testing.T) {
	assert := assert.New(t)

	g := S256().Generator()
	for _, test := range multiplesOfG {
		want := mustPoint(t, test.x, test.y)
		k := big.NewInt(test.k)
		assert.True(want.Equal(ScalarMult(g, k)), "k=%d", test.k)
		assert.True(want.Equal(ScalarMultLSB(g, k)), "k=%d", test.k)
		assert.True(want.Equal(ScalarMultNaive(g, k)), "k=%d", test.k)
		assert.True(want.Equal(ScalarMult(g.ToJacobian(), k).ToAffine()), "k=%d", test.k)
		assert.True(want.Equal(scalarMultUniform(g.ToJacobian(), k).ToAffine()), "k=%d", test.k)
	}
}

func Test_ScalarMult_AffineMatchesJacobian(t *testing.T) {
	assert := assert.New(t)

	g := S256().Generator()
	j := g.ToJacobian()
	for i := 0; i < 100; i++ {
		k := randomScalar(t)
		a := ScalarMult(g, k)
		b := ScalarMult(j, k)
		ax, ay := a.XY()
		bx, by := b.XY()
		if !assert.Equal(0, ax.Cmp(bx), "k=%x", k) || !assert.Equal(0, ay.Cmp(by), "k=%x", k) {
			t.Log(spew.Sdump(a, b))
		}
		assert.True(S256().Curve().Contains(bx, by))
	}
}

func Test_ScalarMult_Variants(t *testing.T) {
	assert := assert.New(t)

	p := ScalarMult(S256().Generator(), randomScalar(t)).ToJacobian()
	for i := 0; i < 10; i++ {
		k := randomScalar(t)
		want := ScalarMult(p, k)
		assert.True(want.Equal(ScalarMultLSB(p, k)))
		assert.True(want.Equal(scalarMultUniform(p, k)))
	}

	for k := int64(0); k < 12; k++ {
		scalar := big.NewInt(k)
		assert.True(ScalarMultNaive(p, scalar).Equal(ScalarMult(p, scalar)), "k=%d", k)
	}
}

func Test_ScalarMult_Order(t *testing.T) {
	assert := assert.New(t)

	g := S256().Generator()
	n := S256().Order()
	assert.True(ScalarMult(g, n).IsInfinity())
	assert.True(ScalarMult(g.ToJacobian(), n).IsInfinity())
	assert.True(ScalarMultLSB(g.ToJacobian(), n).IsInfinity())
	assert.True(scalarMultUniform(g.ToJacobian(), n).IsInfinity())

	// (n+1)·G wraps around to G.
	assert.True(ScalarMult(g.ToJacobian(), new(big.Int).Add(n, one)).ToAffine().Equal(g))
}

func Test_ScalarMult_ZeroAndInfinity(t *testing.T) {
	assert := assert.New(t)

	g := S256().Generator()
	assert.True(ScalarMult(g, big.NewInt(0)).IsInfinity())
	assert.True(ScalarMult(g.ToJacobian(), big.NewInt(0)).IsInfinity())
	assert.True(ScalarMult(AffinePoint{}, big.NewInt(12345)).IsInfinity())
	assert.True(ScalarMult(JacobianPoint{}, big.NewInt(12345)).IsInfinity())
}

func Test_ScalarMult_Negative(t *testing.T) {
	assert := assert.New(t)

	g := S256().Generator().ToJacobian()
	k := randomScalar(t)
	neg := new(big.Int).Neg(k)
	want := ScalarMult(g, k).Negate()
	assert.True(want.Equal(ScalarMult(g, neg)))
	assert.True(want.Equal(ScalarMultLSB(g, neg)))
	assert.True(want.Equal(scalarMultUniform(g, neg)))

	// -k·G = (n-k)·G
	nk := new(big.Int).Sub(S256().Order(), k)
	assert.True(want.Equal(ScalarMult(g, nk)))
}

func Test_ScalarMult_MatchesBtcec(t *testing.T) {
	assert := assert.New(t)

	g := S256().Generator().ToJacobian()
	for i := 0; i < 20; i++ {
		k := randomScalar(t)
		x, y := ScalarMult(g, k).XY()
		refX, refY := btcec.S256().ScalarBaseMult(k.Bytes())
		assert.Equal(0, x.Cmp(refX))
		assert.Equal(0, y.Cmp(refY))
	}
}

func Benchmark_ScalarMult_Affine(b *testing.B) {
	g := S256().Generator()
	k := randomScalar(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ScalarMult(g, k)
	}
}

func Benchmark_ScalarMult_Jacobian(b *testing.B) {
	g := S256().Generator().ToJacobian()
	k := randomScalar(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ScalarMult(g, k).ToAffine()
	}
}

func Benchmark_ScalarMult_Uniform(b *testing.B) {
	g := S256().Generator().ToJacobian()
	k := randomScalar(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scalarMultUniform(g, k).ToAffine()
	}
}
