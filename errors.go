package ecmath

import "github.com/pkg/errors"

var (
	// ErrPointNotOnCurve is returned when coordinates supplied by the caller
	// do not satisfy the curve equation.
	ErrPointNotOnCurve = errors.New("point is not on the curve")

	// ErrCoordinateOutOfRange is returned when a coordinate is negative or
	// not less than the field modulus.
	ErrCoordinateOutOfRange = errors.New("coordinate is out of field range")

	// ErrInvalidPrivateKey is returned when a secret is not in (0, n).
	ErrInvalidPrivateKey = errors.New("private key is not in (0, n)")

	// ErrInvalidPublicKey is returned when a point is off the curve, the
	// point at infinity, or outside the prime-order subgroup.
	ErrInvalidPublicKey = errors.New("invalid public key")

	ErrInvalidSignature   = errors.New("invalid signature encoding")
	ErrInvalidEncoding    = errors.New("invalid encoding")
	ErrNoInverse          = errors.New("value has no modular inverse")
	ErrUnsupportedCurve   = errors.New("the operation is not supported on this curve")
	ErrUnsupportedKeyType = errors.New("unsupported key type")
)

// Degenerate nonces. Sign retries on these and never returns them.
var (
	errZeroR = errors.New("r is zero")
	errZeroS = errors.New("s is zero")
)
