package ecmath

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"io"

	"github.com/go-jose/go-jose/v3"
	"github.com/pkg/errors"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/scrypt"
)

const (
	encryptionKeyLen = 32
	encryptionInfo   = "ecmath ECDH A256GCM"

	// scrypt parameters for passphrase-derived keys.
	scryptN    = 16384
	scryptR    = 8
	scryptP    = 1
	saltLen    = 32
	saltHeader = "x-salt"
)

// deriveSharedKey expands an ECDH shared secret into an AES-256 key with
// HKDF-SHA256.
func deriveSharedKey(secret []byte) ([]byte, error) {
	key := make([]byte, encryptionKeyLen)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(encryptionInfo)), key); err != nil {
		return nil, errors.Wrap(err, "failed to derive key")
	}
	return key, nil
}

// derivePassphraseKey stretches a passphrase with scrypt,
// see https://www.tarsnap.com/scrypt/scrypt.pdf.
func derivePassphraseKey(passphrase string, salt []byte) ([]byte, error) {
	key, err := scrypt.Key([]byte(passphrase), salt, scryptN, scryptR, scryptP, encryptionKeyLen)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive key")
	}
	return key, nil
}

// symmetricKey is the AES-256 key bound to a private key's secret.
func symmetricKey(secret []byte) []byte {
	key := sha256.Sum256(padWithZeros(secret, 32))
	return key[:]
}

func sealJWE(key []byte, content []byte) (*jose.JSONWebEncryption, error) {
	encrypter, err := jose.NewEncrypter(jose.A256GCM,
		jose.Recipient{Algorithm: jose.DIRECT, Key: key}, nil)
	if err != nil {
		return nil, err
	}
	return encrypter.Encrypt(content)
}

func encryptJWE(key []byte, content []byte) (string, error) {
	object, err := sealJWE(key, content)
	if err != nil {
		return "", err
	}
	return object.CompactSerialize()
}

// decryptJWE accepts both the compact and the JSON serialization.
func decryptJWE(key []byte, content string) ([]byte, error) {
	object, err := jose.ParseEncrypted(content)
	if err != nil {
		return nil, err
	}
	return object.Decrypt(key)
}

// encryptWithPassphraseJWE returns the JSON-serialized JWE of content under
// a scrypt key. The random salt travels in the extra "x-salt" member.
func encryptWithPassphraseJWE(passphrase string, content []byte) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(err, "failed to generate salt")
	}
	key, err := derivePassphraseKey(passphrase, salt)
	if err != nil {
		return "", err
	}
	object, err := sealJWE(key, content)
	if err != nil {
		return "", errors.Wrap(err, "failed to encrypt")
	}
	var members map[string]interface{}
	if err := json.Unmarshal([]byte(object.FullSerialize()), &members); err != nil {
		return "", err
	}
	members[saltHeader] = base64urlEncode(salt)
	b, err := json.Marshal(members)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decryptWithPassphraseJWE(passphrase string, content string) ([]byte, error) {
	var envelope struct {
		Salt string `json:"x-salt"`
	}
	if err := json.Unmarshal([]byte(content), &envelope); err != nil {
		return nil, errors.Wrap(ErrInvalidEncoding, err.Error())
	}
	salt, err := base64urlDecode(envelope.Salt)
	if err != nil || len(salt) == 0 {
		return nil, errors.Wrap(ErrInvalidEncoding, "missing or malformed salt")
	}
	key, err := derivePassphraseKey(passphrase, salt)
	if err != nil {
		return nil, err
	}
	plaintext, err := decryptJWE(key, content)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decrypt")
	}
	return plaintext, nil
}

// Encrypt encrypts content for the owner of publicKey. The result is a
// compact JWE (direct key agreement, A256GCM) keyed by the ECDH shared
// secret of this key and publicKey.
func (pk *PrivateKey) Encrypt(content []byte, publicKey *PublicKey) ([]byte, error) {
	secret, err := pk.GetECDHEncryptionKey(publicKey)
	if err != nil {
		return nil, err
	}
	key, err := deriveSharedKey(secret)
	if err != nil {
		return nil, err
	}
	s, err := encryptJWE(key, content)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encrypt")
	}
	return []byte(s), nil
}

// Decrypt decrypts content produced by Encrypt, where publicKey belongs to
// the sender.
func (pk *PrivateKey) Decrypt(content []byte, publicKey *PublicKey) ([]byte, error) {
	secret, err := pk.GetECDHEncryptionKey(publicKey)
	if err != nil {
		return nil, err
	}
	key, err := deriveSharedKey(secret)
	if err != nil {
		return nil, err
	}
	plaintext, err := decryptJWE(key, string(content))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decrypt")
	}
	return plaintext, nil
}

// EncryptSymmetric encrypts content with a key derived from this private
// key (SHA-256 of the secret). Only the same private key can decrypt it.
// The result is a compact JWE (dir, A256GCM).
func (pk *PrivateKey) EncryptSymmetric(content []byte) ([]byte, error) {
	s, err := encryptJWE(symmetricKey(pk.secret.Bytes()), content)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encrypt")
	}
	return []byte(s), nil
}

// DecryptSymmetric decrypts content produced by EncryptSymmetric.
func (pk *PrivateKey) DecryptSymmetric(content []byte) ([]byte, error) {
	plaintext, err := decryptJWE(symmetricKey(pk.secret.Bytes()), string(content))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decrypt")
	}
	return plaintext, nil
}
