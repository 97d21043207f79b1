package bitcoin

import (
	"bytes"

	"github.com/pkg/errors"
)

// Address types this module needs to decode/encode: pay-to-pubkey-hash (the wallet address that
// receives locked funds on release) and pay-to-script-hash (the locked output itself). RPH and
// multi-PKH templates are out of scope; this subsystem never produces or consumes them.
const (
	AddressTypeMainPKH = 0x00
	AddressTypeMainSH  = 0x05

	AddressTypeTestPKH = 0x6f
	AddressTypeTestSH  = 0xc4
)

var (
	ErrBadCheckSum    = errors.New("address has bad checksum")
	ErrBadAddressType = errors.New("address type unknown")
)

// Address is a base58check encoded bitcoin address: a type byte plus a 20 byte hash.
type Address struct {
	addressType byte
	hash        Hash20
}

// NewAddressFromHash20 builds a PKH address for the given network from a public key hash.
func NewAddressFromHash20(hash Hash20, net Network) Address {
	result := Address{hash: hash}
	if net == MainNet {
		result.addressType = AddressTypeMainPKH
	} else {
		result.addressType = AddressTypeTestPKH
	}
	return result
}

// DecodeAddress decodes a base58check bitcoin address string.
func DecodeAddress(address string) (Address, error) {
	var result Address
	err := result.Decode(address)
	return result, err
}

func (a *Address) Decode(address string) error {
	b, err := decodeAddress(address)
	if err != nil {
		return err
	}
	if len(b) != 1+Hash20Size {
		return errors.New("wrong address data length")
	}

	switch b[0] {
	case AddressTypeMainPKH, AddressTypeMainSH, AddressTypeTestPKH, AddressTypeTestSH:
		a.addressType = b[0]
	default:
		return ErrBadAddressType
	}

	return a.hash.SetBytes(b[1:])
}

// Type returns the address version byte.
func (a Address) Type() byte {
	return a.addressType
}

// Hash returns the 20 byte hash encoded in the address.
func (a Address) Hash() Hash20 {
	return a.hash
}

// Network returns the network the address was encoded for.
func (a Address) Network() Network {
	switch a.addressType {
	case AddressTypeMainPKH, AddressTypeMainSH:
		return MainNet
	}
	return TestNet
}

// String returns the base58check text encoding of the address.
func (a Address) String() string {
	return encodeAddress(append([]byte{a.addressType}, a.hash[:]...))
}

func encodeAddress(b []byte) string {
	checksum := DoubleSha256(b)
	full := append(b, checksum[:4]...)
	return Base58(full)
}

func decodeAddress(address string) ([]byte, error) {
	b := Base58Decode(address)
	if len(b) < 5 {
		return nil, ErrBadCheckSum
	}

	checksum := DoubleSha256(b[:len(b)-4])
	if !bytes.Equal(checksum[:4], b[len(b)-4:]) {
		return nil, ErrBadCheckSum
	}

	return b[:len(b)-4], nil
}
