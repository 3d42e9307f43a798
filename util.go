package ecmath

import (
	"encoding/base64"
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// padWithZeros left-pads b to length bytes. Longer input is returned as is.
func padWithZeros(b []byte, length int) []byte {
	if len(b) >= length {
		return b
	}
	padded := make([]byte, length)
	copy(padded[length-len(b):], b)
	return padded
}

// JWK uses Base64url encoding, which is Base64 encoding without padding.
func base64urlEncode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

func base64urlDecode(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}

// ParseHex parses a big-endian hex string, with or without a 0x prefix.
// Spaces are ignored so that constants may be grouped the way they are
// usually printed.
func ParseHex(s string) (*big.Int, error) {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return nil, errors.Wrap(ErrInvalidEncoding, "empty hex string")
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidEncoding, "hex: %v", err)
	}
	return new(big.Int).SetBytes(b), nil
}

func mustParseHex(s string) *big.Int {
	v, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return v
}
