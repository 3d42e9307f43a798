package ecmath

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func randomTerms(t testing.TB, n int) []Term[JacobianPoint] {
	g := S256().Generator().ToJacobian()
	terms := make([]Term[JacobianPoint], n)
	for i := range terms {
		terms[i] = Term[JacobianPoint]{
			Point:  ScalarMult(g, randomScalar(t)),
			Scalar: randomScalar(t),
		}
	}
	return terms
}

func sequentialSum[P Point[P]](terms []Term[P]) P {
	var sum P
	for _, term := range terms {
		sum = ScalarMult(term.Point, term.Scalar).Add(sum)
	}
	return sum
}

func Test_CombinedScalarMult_MatchesSequential(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5, 8, 16, 32} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			assert := assert.New(t)

			terms := randomTerms(t, n)
			want := sequentialSum(terms)
			got := CombinedScalarMult(terms)
			assert.False(got.IsInfinity())
			assert.True(want.Equal(got))
			assert.True(want.Equal(combinedScalarMultNoCache(terms)))
			assert.True(want.Equal(S256().Curve().CombinedScalarMult(terms)))
		})
	}
}

func Test_CombinedScalarMult_Affine(t *testing.T) {
	assert := assert.New(t)

	jterms := randomTerms(t, 4)
	aterms := make([]Term[AffinePoint], len(jterms))
	for i, term := range jterms {
		aterms[i] = Term[AffinePoint]{Point: term.Point.ToAffine(), Scalar: term.Scalar}
	}
	assert.True(CombinedScalarMult(aterms).Equal(CombinedScalarMult(jterms).ToAffine()))
}

func Test_CombinedScalarMult_MoreThanMaskWidth(t *testing.T) {
	assert := assert.New(t)

	g := S256().Generator().ToJacobian()
	terms := make([]Term[JacobianPoint], maxMaskTerms+6)
	want := new(big.Int)
	for i := range terms {
		k := big.NewInt(int64(i*i + 1))
		p := big.NewInt(int64(i + 1))
		terms[i] = Term[JacobianPoint]{Point: ScalarMult(g, p), Scalar: k}
		want.Add(want, new(big.Int).Mul(k, p))
	}
	assert.True(ScalarMult(g, want).Equal(CombinedScalarMult(terms)))
}

func Test_CombinedScalarMult_Infinity(t *testing.T) {
	assert := assert.New(t)

	assert.True(CombinedScalarMult[JacobianPoint](nil).IsInfinity())

	g := S256().Generator().ToJacobian()
	k := randomScalar(t)
	cancel := []Term[JacobianPoint]{
		{Point: g, Scalar: k},
		{Point: g, Scalar: new(big.Int).Sub(S256().Order(), k)},
	}
	assert.True(CombinedScalarMult(cancel).IsInfinity())

	zeros := []Term[JacobianPoint]{
		{Point: g, Scalar: big.NewInt(0)},
		{Point: JacobianPoint{}, Scalar: k},
	}
	assert.True(CombinedScalarMult(zeros).IsInfinity())
}

func Test_CombinedScalarMult_NegativeScalar(t *testing.T) {
	assert := assert.New(t)

	g := S256().Generator().ToJacobian()
	k := randomScalar(t)
	terms := []Term[JacobianPoint]{
		{Point: g, Scalar: new(big.Int).Neg(k)},
		{Point: g, Scalar: big.NewInt(1)},
	}
	want := ScalarMult(g, new(big.Int).Sub(one, k))
	assert.True(want.Equal(CombinedScalarMult(terms)))
	// The caller's scalar is left untouched.
	assert.Equal(-1, terms[0].Scalar.Sign())
}

func Benchmark_Sequential_32(b *testing.B) {
	terms := randomTerms(b, 32)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sequentialSum(terms).ToAffine()
	}
}

func Benchmark_CombinedScalarMult_32(b *testing.B) {
	terms := randomTerms(b, 32)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		CombinedScalarMult(terms).ToAffine()
	}
}

func Benchmark_CombinedScalarMultNoCache_32(b *testing.B) {
	terms := randomTerms(b, 32)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		combinedScalarMultNoCache(terms).ToAffine()
	}
}
