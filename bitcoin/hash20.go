package bitcoin

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
)

const Hash20Size = 20

// Hash20 is a 20 byte hash, used for public key hashes and script hashes.
type Hash20 [Hash20Size]byte

// NewHash20 creates a Hash20 from raw bytes, most significant byte first.
func NewHash20(b []byte) (*Hash20, error) {
	if len(b) != Hash20Size {
		return nil, errors.New("wrong byte length")
	}
	result := Hash20{}
	copy(result[:], b)
	return &result, nil
}

// NewHash20FromStr parses a hex encoded Hash20.
func NewHash20FromStr(s string) (*Hash20, error) {
	if len(s) != 2*Hash20Size {
		return nil, fmt.Errorf("wrong size hex for Hash20 : %d", len(s))
	}

	b := make([]byte, Hash20Size)
	if _, err := hex.Decode(b, []byte(s)); err != nil {
		return nil, err
	}

	result := Hash20{}
	copy(result[:], b)
	return &result, nil
}

// NewHash20FromData hashes the data with Hash160 to produce a Hash20.
func NewHash20FromData(b []byte) *Hash20 {
	result := Hash20{}
	copy(result[:], Hash160(b))
	return &result
}

// Bytes returns the raw bytes of the hash.
func (h Hash20) Bytes() []byte {
	return h[:]
}

// SetBytes sets the value of the hash.
func (h *Hash20) SetBytes(b []byte) error {
	if len(b) != Hash20Size {
		return errors.New("wrong byte length")
	}
	copy(h[:], b)
	return nil
}

// String returns the hex encoding of the hash.
func (h Hash20) String() string {
	return hex.EncodeToString(h[:])
}

// Equal returns true if the two hashes hold the same value.
func (h *Hash20) Equal(o *Hash20) bool {
	if h == nil || o == nil {
		return h == o
	}
	return bytes.Equal(h[:], o[:])
}
