package ecmath

import (
	"crypto/sha256"
	"fmt"
	"log"
	"math/big"
)

func ExamplePrivateKey_Sign() {
	privateKey, err := NewPrivateKeyFromSecret(big.NewInt(12345))
	if err != nil {
		log.Fatal(err)
	}
	data := "super secret message"
	hash := Hash256([]byte(data))
	signature, err := privateKey.Sign(hash)
	if err != nil {
		log.Fatal(err)
	}
	publicKey := privateKey.PublicKey()
	success := signature.Verify(publicKey, hash)
	fmt.Printf("Signature verified: %v\n", success)
	// Output: Signature verified: true
}

func ExamplePrivateKey_Encrypt() {
	aliceKey, err := NewPrivateKey()
	if err != nil {
		log.Fatal(err)
	}
	bobKey, err := NewPrivateKey()
	if err != nil {
		log.Fatal(err)
	}
	data := "super secret message"
	encrypted, err := aliceKey.Encrypt([]byte(data), bobKey.PublicKey())
	if err != nil {
		log.Fatal(err)
	}
	decrypted, err := bobKey.Decrypt(encrypted, aliceKey.PublicKey())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s\n", string(decrypted))
	// Output: super secret message
}

func ExamplePrivateKey_EncryptKeyWithPassphrase() {
	privateKey, err := NewPrivateKeyFromSecret(big.NewInt(12345))
	if err != nil {
		log.Fatal(err)
	}
	encryptedKey, err := privateKey.EncryptKeyWithPassphrase("my passphrase")
	if err != nil {
		log.Fatal(err)
	}
	decryptedKey, err := NewPrivateKeyFromEncryptedWithPassphrase(encryptedKey, "my passphrase")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%d\n", decryptedKey.Secret())
	// Output: 12345
}

func ExampleECDSA_PublicKey() {
	e := New(S256())
	priv, err := ParseHex("B06E946D D62D6105 1D9CA80C EF7077A0 C6F707C1 D3DD7890 49BC7491 21E69C53")
	if err != nil {
		log.Fatal(err)
	}
	pub, err := e.PublicKey(priv)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(pub)

	hash := sha256.Sum256([]byte("Hello world"))
	sig, err := e.Sign(priv, hash[:])
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(e.Verify(pub, hash[:], sig))

	tampered := sha256.Sum256([]byte("Hello worldx"))
	fmt.Println(e.Verify(pub, tampered[:], sig))
	// Output:
	// (4aea59197a90236f421e019d73f256a4725e34c4299eecc074e0b58c8abf8a25, e32d1405bae0b28f56d21661020b46f2e1d3f11379a977f3fab41d2b6aad4377)
	// true
	// false
}

func ExampleCombinedScalarMult() {
	g := S256().Generator().ToJacobian()
	terms := []Term[JacobianPoint]{
		{Point: g, Scalar: big.NewInt(3)},
		{Point: g.Double(), Scalar: big.NewInt(2)},
	}
	fmt.Println(CombinedScalarMult(terms).Equal(ScalarMult(g, big.NewInt(7))))
	// Output: true
}
