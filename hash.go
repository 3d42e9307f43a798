package ecmath

import (
	"crypto/sha256"
	"hash"

	"golang.org/x/crypto/ripemd160"
)

// chain feeds data through each hash in turn, the output of one becoming
// the input of the next.
func chain(data []byte, hashes ...func() hash.Hash) []byte {
	for _, newHash := range hashes {
		h := newHash()
		h.Write(data)
		data = h.Sum(nil)
	}
	return data
}

// Hash256 is SHA-256 applied twice, the digest Bitcoin uses for checksums.
func Hash256(data []byte) []byte {
	return chain(data, sha256.New, sha256.New)
}

// Hash160 is RIPEMD-160 of SHA-256, the digest behind P2PKH addresses.
func Hash160(data []byte) []byte {
	return chain(data, sha256.New, ripemd160.New)
}
