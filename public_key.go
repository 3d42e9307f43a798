package ecmath

import (
	"bytes"
	"crypto/ecdsa"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
	"github.com/btcsuite/btcutil/base58"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

const (
	coordinateLen = 32

	prefixUncompressed = 0x04
	prefixEven         = 0x02
	prefixOdd          = 0x03
)

// PublicKey represents a secp256k1 public key: a point of the prime-order
// subgroup other than infinity.
type PublicKey struct {
	point AffinePoint
}

// NewPublicKey returns the public key (x, y). The point must be on the curve
// and in the subgroup generated by G.
func NewPublicKey(x, y *big.Int) (*PublicKey, error) {
	point, err := S256().Curve().NewAffinePoint(x, y)
	if err != nil {
		return nil, err
	}
	return NewPublicKeyFromPoint(point)
}

// NewPublicKeyFromPoint wraps point after validating it.
func NewPublicKeyFromPoint(point AffinePoint) (*PublicKey, error) {
	if !defaultECDSA.IsValidPublicKey(point) {
		return nil, ErrInvalidPublicKey
	}
	return &PublicKey{point: S256().Curve().affine(point.x, point.y)}, nil
}

// NewPublicKeyFromBytes parses the 65-byte SEC 1 uncompressed encoding.
func NewPublicKeyFromBytes(b []byte) (*PublicKey, error) {
	if len(b) != 1+2*coordinateLen || b[0] != prefixUncompressed {
		return nil, errors.Wrap(ErrInvalidEncoding, "invalid serialized uncompressed public key")
	}
	x := new(big.Int).SetBytes(b[1 : 1+coordinateLen])
	y := new(big.Int).SetBytes(b[1+coordinateLen:])
	return NewPublicKey(x, y)
}

// NewPublicKeyFromCompressedBytes parses the 33-byte SEC 1 compressed
// encoding, recovering y as the square root of x³ + ax + b with the parity
// given by the prefix.
func NewPublicKeyFromCompressedBytes(b []byte) (*PublicKey, error) {
	if len(b) != 1+coordinateLen || (b[0] != prefixEven && b[0] != prefixOdd) {
		return nil, errors.Wrap(ErrInvalidEncoding, "invalid serialized compressed public key")
	}
	curve := S256().Curve()
	f := curve.Field()
	x := new(big.Int).SetBytes(b[1:])
	if x.Cmp(f.p) >= 0 {
		return nil, errors.Wrapf(ErrCoordinateOutOfRange, "x = %x", x)
	}
	alpha := f.Add(f.Add(f.Pow(x, three), f.Mul(curve.a, x)), curve.b)
	beta := f.Sqrt(alpha)
	if beta == nil {
		return nil, errors.Wrapf(ErrPointNotOnCurve, "no y for x = %x", x)
	}
	wantOdd := b[0] == prefixOdd
	if (beta.Bit(0) == 1) != wantOdd {
		beta = f.Neg(beta)
	}
	return NewPublicKey(x, beta)
}

// Bytes returns the 65-byte SEC 1 uncompressed encoding.
func (pbk *PublicKey) Bytes() []byte {
	b := make([]byte, 0, 1+2*coordinateLen)
	b = append(b, prefixUncompressed)
	b = append(b, padWithZeros(pbk.point.x.Bytes(), coordinateLen)...)
	return append(b, padWithZeros(pbk.point.y.Bytes(), coordinateLen)...)
}

// CompressedBytes returns the 33-byte SEC 1 compressed encoding.
func (pbk *PublicKey) CompressedBytes() []byte {
	prefix := byte(prefixEven)
	if pbk.point.y.Bit(0) == 1 {
		prefix = prefixOdd
	}
	return append([]byte{prefix}, padWithZeros(pbk.point.x.Bytes(), coordinateLen)...)
}

// X returns X component of the public key.
func (pbk *PublicKey) X() *big.Int {
	return pbk.point.X()
}

// Y returns Y component of the public key.
func (pbk *PublicKey) Y() *big.Int {
	return pbk.point.Y()
}

// Point returns the public key as a curve point.
func (pbk *PublicKey) Point() AffinePoint {
	return pbk.point
}

// Verify verifies sig over hash.
func (pbk *PublicKey) Verify(hash []byte, sig *Signature) bool {
	return defaultECDSA.Verify(pbk.point, hash, sig)
}

// BitcoinAddress returns the P2PKH Bitcoin address of the compressed key.
func (pbk *PublicKey) BitcoinAddress() string {
	prefix := []byte{0x00}
	hash := Hash160(pbk.CompressedBytes())
	s1 := bytes.Join([][]byte{prefix, hash}, nil)
	checkSum := Hash256(s1)[0:4]
	addr := bytes.Join([][]byte{s1, checkSum}, nil)
	return base58.Encode(addr)
}

// EthereumAddress returns the EIP-55 checksummed Ethereum address: the last
// 20 bytes of the Keccak-256 hash of X‖Y.
func (pbk *PublicKey) EthereumAddress() string {
	hash := crypto.Keccak256(pbk.Bytes()[1:])
	return common.BytesToAddress(hash[12:]).Hex()
}

// Equal returns true if this key is equal to the other key.
func (pbk *PublicKey) Equal(other *PublicKey) bool {
	if other == nil {
		return false
	}
	return pbk.point.Equal(other.point)
}

// EqualSerializedCompressed returns true if this key is equal to the other,
// given as serialized compressed representation.
func (pbk *PublicKey) EqualSerializedCompressed(other []byte) bool {
	return bytes.Equal(pbk.CompressedBytes(), other)
}

// ToECDSA returns this key as crypto/ecdsa public key over btcec's secp256k1
// curve.
func (pbk *PublicKey) ToECDSA() *ecdsa.PublicKey {
	return &ecdsa.PublicKey{
		Curve: btcec.S256(),
		X:     pbk.X(),
		Y:     pbk.Y(),
	}
}
