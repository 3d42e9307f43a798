package ecmath

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/json"
	"math/big"

	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/pbkdf2"
)

const (
	PBKDF2_ITER = 16384
	PBKDF2_SIZE = 32
)

// PrivateKey represents a secp256k1 private key.
type PrivateKey struct {
	secret    *big.Int
	publicKey *PublicKey
}

// privateKeyJSON struct is used when serializing keys to JWK format.
type privateKeyJSON struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	Y   string `json:"y"`
	D   string `json:"d"`
}

// NewPrivateKey creates a new random private key.
func NewPrivateKey() (*PrivateKey, error) {
	secret, err := defaultECDSA.RandomScalar()
	if err != nil {
		return nil, errors.WithMessage(err, "failed to generate private key")
	}
	return NewPrivateKeyFromSecret(secret)
}

// NewPrivateKeyFromSecret creates a private key from secret, which must be
// in (0, n).
func NewPrivateKeyFromSecret(secret *big.Int) (*PrivateKey, error) {
	point, err := defaultECDSA.PublicKey(secret)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{
		secret:    new(big.Int).Set(secret),
		publicKey: &PublicKey{point: point},
	}, nil
}

// NewPrivateKeyFromHex creates a private key from a big-endian hex secret.
func NewPrivateKeyFromHex(s string) (*PrivateKey, error) {
	secret, err := ParseHex(s)
	if err != nil {
		return nil, err
	}
	return NewPrivateKeyFromSecret(secret)
}

// NewPrivateKeyFromPassword creates a private key from password using
// PBKDF2 algorithm. The derived bytes are reduced modulo n.
// See https://en.wikipedia.org/wiki/PBKDF2.
func NewPrivateKeyFromPassword(password, salt []byte) (*PrivateKey, error) {
	secret := pbkdf2.Key(password, salt, PBKDF2_ITER, PBKDF2_SIZE, sha256.New)
	d := new(big.Int).SetBytes(secret)
	return NewPrivateKeyFromSecret(d.Mod(d, S256().n))
}

// NewPrivateKeyFromMnemonic creates private key from a BIP-39 mnemonic
// phrase whose entropy is the secret.
func NewPrivateKeyFromMnemonic(mnemonic string) (*PrivateKey, error) {
	b, err := bip39.EntropyFromMnemonic(mnemonic)
	if err != nil {
		return nil, errors.Wrap(err, "invalid mnemonic")
	}
	return NewPrivateKeyFromSecret(new(big.Int).SetBytes(b))
}

// NewPrivateKeyFromJSON creates private key from JWK-encoded representation.
// When x and y are present they must match the secret.
// See https://www.rfc-editor.org/rfc/rfc7517.
func NewPrivateKeyFromJSON(data string) (*PrivateKey, error) {
	var pkJSON privateKeyJSON
	if err := json.Unmarshal([]byte(data), &pkJSON); err != nil {
		return nil, errors.Wrap(ErrInvalidEncoding, err.Error())
	}
	if pkJSON.Kty != "EC" {
		return nil, ErrUnsupportedKeyType
	}
	if pkJSON.Crv != S256().Name() {
		return nil, ErrUnsupportedCurve
	}
	dBytes, err := base64urlDecode(pkJSON.D)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidEncoding, "d: %v", err)
	}
	pk, err := NewPrivateKeyFromSecret(new(big.Int).SetBytes(dBytes))
	if err != nil {
		return nil, err
	}
	if pkJSON.X != "" || pkJSON.Y != "" {
		x, errX := base64urlDecode(pkJSON.X)
		y, errY := base64urlDecode(pkJSON.Y)
		if errX != nil || errY != nil ||
			new(big.Int).SetBytes(x).Cmp(pk.publicKey.point.x) != 0 ||
			new(big.Int).SetBytes(y).Cmp(pk.publicKey.point.y) != 0 {
			return nil, errors.Wrap(ErrInvalidEncoding, "public key does not match d")
		}
	}
	return pk, nil
}

// NewPrivateKeyFromEncryptedWithPassphrase decrypts a key produced by
// EncryptKeyWithPassphrase.
func NewPrivateKeyFromEncryptedWithPassphrase(data string, passphrase string) (*PrivateKey, error) {
	jwk, err := decryptWithPassphraseJWE(passphrase, data)
	if err != nil {
		return nil, err
	}
	return NewPrivateKeyFromJSON(string(jwk))
}

// Secret returns a copy of the private key's secret.
func (pk *PrivateKey) Secret() *big.Int {
	return new(big.Int).Set(pk.secret)
}

// PublicKey returns the public key derived from this private key.
func (pk *PrivateKey) PublicKey() *PublicKey {
	return pk.publicKey
}

// Sign signs (ECDSA) the hash using the private key and returns signature.
func (pk *PrivateKey) Sign(hash []byte) (*Signature, error) {
	return defaultECDSA.Sign(pk.secret, hash)
}

// Mnemonic returns a mnemonic phrase which can be used to recover this private key.
func (pk *PrivateKey) Mnemonic() (string, error) {
	return bip39.NewMnemonic(padWithZeros(pk.secret.Bytes(), 32))
}

// Equal returns true if this key is equal to the other key.
func (pk *PrivateKey) Equal(other *PrivateKey) bool {
	if other == nil {
		return false
	}
	return pk.secret.Cmp(other.secret) == 0
}

// ToECDSA returns this key as crypto/ecdsa private key over btcec's
// secp256k1 curve.
func (pk *PrivateKey) ToECDSA() *ecdsa.PrivateKey {
	return &ecdsa.PrivateKey{
		PublicKey: *pk.publicKey.ToECDSA(),
		D:         pk.Secret(),
	}
}

// GetECDHEncryptionKey returns a shared key that can be used to encrypt data
// exchanged by two parties, using Elliptic Curve Diffie-Hellman algorithm (ECDH).
// For Alice and Bob, the key is guaranteed to be the
// same when it's derived from Alice's private key and Bob's public key or
// Alice's public key and Bob's private key.
//
// See https://en.wikipedia.org/wiki/Elliptic-curve_Diffie%E2%80%93Hellman.
func (pk *PrivateKey) GetECDHEncryptionKey(publicKey *PublicKey) ([]byte, error) {
	if publicKey == nil {
		return nil, ErrInvalidPublicKey
	}
	return defaultECDSA.SharedSecret(pk.secret, publicKey.point)
}

// MarshalToJSON returns the key JWK representation,
// see https://www.rfc-editor.org/rfc/rfc7517.
func (pk *PrivateKey) MarshalToJSON() (string, error) {
	b, err := json.Marshal(privateKeyJSON{
		Kty: "EC",
		Crv: S256().Name(),
		X:   base64urlEncode(padWithZeros(pk.publicKey.point.x.Bytes(), coordinateLen)),
		Y:   base64urlEncode(padWithZeros(pk.publicKey.point.y.Bytes(), coordinateLen)),
		D:   base64urlEncode(padWithZeros(pk.secret.Bytes(), 32)),
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// EncryptKeyWithPassphrase returns the JWK of this key encrypted with a key
// derived from passphrase by scrypt, as a JSON-serialized JWE.
func (pk *PrivateKey) EncryptKeyWithPassphrase(passphrase string) (string, error) {
	jwk, err := pk.MarshalToJSON()
	if err != nil {
		return "", err
	}
	return encryptWithPassphraseJWE(passphrase, []byte(jwk))
}
