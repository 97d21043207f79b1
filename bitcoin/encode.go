package bitcoin

import (
	"encoding/base64"

	"github.com/btcsuite/btcutil/base58"
)

// Base58 returns the Base58 encoding of the input, as used by legacy bitcoin addresses.
func Base58(b []byte) string {
	return base58.Encode(b)
}

// Base58Decode decodes a Base58 string back to bytes.
func Base58Decode(s string) []byte {
	return base58.Decode(s)
}

// Base64URL returns the unpadded base64url encoding of the input, used by the lock identifier
// wire form.
func Base64URL(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// Base64URLDecode decodes an unpadded base64url string back to bytes.
func Base64URLDecode(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}
