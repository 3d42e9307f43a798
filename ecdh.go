package ecmath

import "math/big"

// SharedSecret returns the x coordinate of priv·pub as 32 big-endian bytes.
// Both parties of a key agreement obtain the same value.
func (e *ECDSA) SharedSecret(priv *big.Int, pub AffinePoint) ([]byte, error) {
	if !e.validScalar(priv) {
		return nil, ErrInvalidPrivateKey
	}
	if !e.IsValidPublicKey(pub) {
		return nil, ErrInvalidPublicKey
	}
	point := e.mul(e.params.curve.affine(pub.x, pub.y), priv, true)
	return padWithZeros(point.x.Bytes(), 32), nil
}
