package ecmath

import (
	"math/big"

	"github.com/pkg/errors"
)

// signatureComponentLen is the fixed width of r and s in Bytes.
const signatureComponentLen = 32

// Signature represents a cryptographic signature (ECDSA).
// See https://en.wikipedia.org/wiki/Elliptic_Curve_Digital_Signature_Algorithm
type Signature struct {
	R *big.Int
	S *big.Int
}

// NewSignatureFromBytes parses the 64-byte r‖s encoding produced by Bytes.
// Range checks on r and s are left to verification.
func NewSignatureFromBytes(b []byte) (*Signature, error) {
	if len(b) != 2*signatureComponentLen {
		return nil, errors.Wrapf(ErrInvalidSignature, "expected %d bytes, got %d",
			2*signatureComponentLen, len(b))
	}
	return &Signature{
		R: new(big.Int).SetBytes(b[:signatureComponentLen]),
		S: new(big.Int).SetBytes(b[signatureComponentLen:]),
	}, nil
}

// Bytes returns r and s as two 32-byte big-endian integers. A missing
// component is encoded as zero.
func (sig *Signature) Bytes() []byte {
	b := make([]byte, 0, 2*signatureComponentLen)
	b = append(b, componentBytes(sig.R)...)
	return append(b, componentBytes(sig.S)...)
}

func componentBytes(v *big.Int) []byte {
	if v == nil {
		return make([]byte, signatureComponentLen)
	}
	return padWithZeros(v.Bytes(), signatureComponentLen)
}

// Verify verifies the signature using the public key and the hash of the data.
func (sig *Signature) Verify(key *PublicKey, hash []byte) bool {
	if key == nil {
		return false
	}
	return defaultECDSA.Verify(key.point, hash, sig)
}

// Equal returns true if both components match. Missing components only
// match each other.
func (sig *Signature) Equal(other *Signature) bool {
	if other == nil {
		return false
	}
	return componentEqual(sig.R, other.R) && componentEqual(sig.S, other.S)
}

func componentEqual(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
}
