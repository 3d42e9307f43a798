package ecmath

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Arithmetic selects the point representation scalar multiplication runs in.
type Arithmetic int

const (
	// Jacobian performs a single inversion per scalar multiplication.
	Jacobian Arithmetic = iota
	// Affine performs one inversion per group operation.
	Affine
)

func (a Arithmetic) String() string {
	switch a {
	case Jacobian:
		return "jacobian"
	case Affine:
		return "affine"
	}
	return "invalid"
}

// Option configures an ECDSA engine.
type Option func(*ECDSA)

// WithLogger sets the logger used for debug diagnostics. Secrets are never
// logged.
func WithLogger(logger *zap.Logger) Option {
	return func(e *ECDSA) {
		e.logger = logger
	}
}

// WithRandom replaces crypto/rand.Reader as the source of keys and nonces.
// The reader must be cryptographically secure, and safe for concurrent
// reads if the engine is shared between goroutines.
func WithRandom(r io.Reader) Option {
	return func(e *ECDSA) {
		e.rand = r
	}
}

// WithArithmetic selects the point representation, Jacobian by default.
func WithArithmetic(a Arithmetic) Option {
	return func(e *ECDSA) {
		e.arithmetic = a
	}
}

// ECDSA signs and verifies over a fixed set of domain parameters. It holds
// no mutable state of its own; it is safe for concurrent use as long as its
// random source is (crypto/rand.Reader, the default, is).
type ECDSA struct {
	params     *Params
	rand       io.Reader
	logger     *zap.Logger
	arithmetic Arithmetic
}

// New returns an ECDSA engine for params.
func New(params *Params, opts ...Option) *ECDSA {
	e := &ECDSA{
		params:     params,
		rand:       rand.Reader,
		logger:     zap.NewNop(),
		arithmetic: Jacobian,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultECDSA = New(S256())

func (e *ECDSA) Params() *Params {
	return e.params
}

// validScalar reports whether 0 < k < n.
func (e *ECDSA) validScalar(k *big.Int) bool {
	return k != nil && k.Sign() > 0 && k.Cmp(e.params.n) < 0
}

// mul returns k·p. Secret scalars go through the uniform ladder.
func (e *ECDSA) mul(p AffinePoint, k *big.Int, secret bool) AffinePoint {
	if e.arithmetic == Affine {
		if secret {
			return scalarMultUniform(p, k)
		}
		return ScalarMult(p, k)
	}
	if secret {
		return scalarMultUniform(p.ToJacobian(), k).ToAffine()
	}
	return ScalarMult(p.ToJacobian(), k).ToAffine()
}

// mulAdd returns u1·p + u2·q.
func (e *ECDSA) mulAdd(p AffinePoint, u1 *big.Int, q AffinePoint, u2 *big.Int) AffinePoint {
	if e.arithmetic == Affine {
		return CombinedScalarMult([]Term[AffinePoint]{
			{Point: p, Scalar: u1},
			{Point: q, Scalar: u2},
		})
	}
	return CombinedScalarMult([]Term[JacobianPoint]{
		{Point: p.ToJacobian(), Scalar: u1},
		{Point: q.ToJacobian(), Scalar: u2},
	}).ToAffine()
}

// RandomScalar returns a random integer in (0, n).
func (e *ECDSA) RandomScalar() (*big.Int, error) {
	return RandomScalar(e.rand, e.params.n)
}

// PublicKey returns priv·G.
func (e *ECDSA) PublicKey(priv *big.Int) (AffinePoint, error) {
	if !e.validScalar(priv) {
		return AffinePoint{}, ErrInvalidPrivateKey
	}
	return e.mul(e.params.g, priv, true), nil
}

// GenerateKey returns a random private key and its public key.
func (e *ECDSA) GenerateKey() (*big.Int, AffinePoint, error) {
	priv, err := e.RandomScalar()
	if err != nil {
		return nil, AffinePoint{}, errors.WithMessage(err, "failed to generate private key")
	}
	pub, err := e.PublicKey(priv)
	if err != nil {
		return nil, AffinePoint{}, err
	}
	return priv, pub, nil
}

// IsValidPublicKey reports whether p is a finite point on the curve whose
// order divides n, i.e. n·p is the point at infinity.
func (e *ECDSA) IsValidPublicKey(p AffinePoint) bool {
	if p.IsInfinity() || !e.params.curve.Contains(p.x, p.y) {
		return false
	}
	p = e.params.curve.affine(p.x, p.y)
	return e.mul(p, e.params.n, false).IsInfinity()
}

// hashToInt converts a digest to an integer, keeping only its leftmost
// bits when it is wider than the order.
func hashToInt(digest []byte, n *big.Int) *big.Int {
	z := new(big.Int).SetBytes(digest)
	if excess := z.BitLen() - n.BitLen(); excess > 0 {
		z.Rsh(z, uint(excess))
	}
	return z
}

// Sign returns a signature of digest under priv. Nonces yielding r = 0 or
// s = 0 are discarded and redrawn, so the signature always has both
// components in (0, n). An error is returned only for an invalid key or a
// failing entropy source.
func (e *ECDSA) Sign(priv *big.Int, digest []byte) (*Signature, error) {
	if !e.validScalar(priv) {
		return nil, ErrInvalidPrivateKey
	}
	z := hashToInt(digest, e.params.n)
	for attempt := 1; ; attempt++ {
		k, err := e.RandomScalar()
		if err != nil {
			return nil, errors.WithMessage(err, "failed to generate nonce")
		}
		sig, err := e.signWithNonce(priv, z, k)
		switch {
		case err == nil:
			return sig, nil
		case errors.Is(err, errZeroR), errors.Is(err, errZeroS):
			e.logger.Debug("discarding nonce", zap.Int("attempt", attempt), zap.Error(err))
		default:
			return nil, err
		}
	}
}

// signWithNonce computes r = (k·G).x mod n and s = k⁻¹·(z + r·priv) mod n.
func (e *ECDSA) signWithNonce(priv, z, k *big.Int) (*Signature, error) {
	n := e.params.n
	point := e.mul(e.params.g, k, true)
	if point.IsInfinity() {
		return nil, errZeroR
	}
	r := new(big.Int).Mod(point.x, n)
	if r.Sign() == 0 {
		return nil, errZeroR
	}

	kInv := InvertMod(k, n)
	if kInv == nil {
		return nil, ErrNoInverse
	}
	s := new(big.Int).Mul(r, priv)
	s.Add(s, z)
	s.Mul(s, kInv)
	s.Mod(s, n)
	if s.Sign() == 0 {
		return nil, errZeroS
	}
	return &Signature{R: r, S: s}, nil
}

// rejection names why a signature failed to verify.
type rejection int

const (
	accepted rejection = iota
	rejectedPublicKey
	rejectedR
	rejectedS
	rejectedInfinity
	rejectedMismatch
)

func (r rejection) String() string {
	switch r {
	case accepted:
		return "accepted"
	case rejectedPublicKey:
		return "invalid public key"
	case rejectedR:
		return "r out of range"
	case rejectedS:
		return "s out of range"
	case rejectedInfinity:
		return "u1·G + u2·Q is infinity"
	case rejectedMismatch:
		return "r does not match"
	}
	return "unknown"
}

// Verify reports whether sig is a valid signature of digest under pub.
func (e *ECDSA) Verify(pub AffinePoint, digest []byte, sig *Signature) bool {
	reason := e.verify(pub, digest, sig)
	if reason != accepted {
		e.logger.Debug("signature rejected", zap.Stringer("reason", reason))
	}
	return reason == accepted
}

func (e *ECDSA) verify(pub AffinePoint, digest []byte, sig *Signature) rejection {
	if !e.IsValidPublicKey(pub) {
		return rejectedPublicKey
	}
	if sig == nil || !e.validScalar(sig.R) {
		return rejectedR
	}
	if !e.validScalar(sig.S) {
		return rejectedS
	}

	n := e.params.n
	z := hashToInt(digest, n)
	sInv := InvertMod(sig.S, n)
	u1 := new(big.Int).Mul(z, sInv)
	u1.Mod(u1, n)
	u2 := new(big.Int).Mul(sig.R, sInv)
	u2.Mod(u2, n)

	q := e.params.curve.affine(pub.x, pub.y)
	point := e.mulAdd(e.params.g, u1, q, u2)
	if point.IsInfinity() {
		return rejectedInfinity
	}
	if new(big.Int).Mod(point.x, n).Cmp(sig.R) != 0 {
		return rejectedMismatch
	}
	return accepted
}
