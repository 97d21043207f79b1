package bitcoin

import (
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160"
)

// Ripemd160 returns the RIPEMD-160 digest of the input.
func Ripemd160(b []byte) []byte {
	hasher := ripemd160.New()
	hasher.Write(b)
	return hasher.Sum(nil)
}

// Sha256 returns the SHA-256 digest of the input.
func Sha256(b []byte) []byte {
	result := sha256.Sum256(b)
	return result[:]
}

// Hash160 returns Ripemd160(Sha256(b)), the hash used for public key and script hashes.
func Hash160(b []byte) []byte {
	return Ripemd160(Sha256(b))
}

// DoubleSha256 performs a double SHA-256 hash, used for transaction ids.
func DoubleSha256(b []byte) []byte {
	return Sha256(Sha256(b))
}
