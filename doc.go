/*
Package ecmath implements elliptic curve cryptography from first principles
over secp256k1 (used by Bitcoin), on top of math/big.

The package is layered:

-- Field: modular arithmetic; a nil element marks a failed inversion and
poisons every operation that consumes it

-- Curve: y² = x³ + ax + b over a Field, point validation and construction

-- AffinePoint and JacobianPoint: two interchangeable point representations
implementing Point; the zero value of either is the point at infinity

-- ScalarMult, ScalarMultLSB, ScalarMultNaive and CombinedScalarMult (Shamir's
trick), written once over Point

-- ECDSA: key derivation, signing and verification

-- PrivateKey, PublicKey and Signature: key encodings (SEC 1, JWK, BIP-39),
addresses, ECDH and encryption

See the examples for more information.
*/
package ecmath
