package bitcoin

import (
	"github.com/pkg/errors"
)

// ErrNotP2SH is returned when a locking script does not match the P2SH template.
var ErrNotP2SH = errors.New("not a P2SH script")

// P2SHLockingScript builds the standard pay-to-script-hash output script that pays to the hash of
// redeemScript: OP_HASH160 <20 byte hash> OP_EQUAL.
func P2SHLockingScript(redeemScript Script) Script {
	hash := NewHash20FromData(redeemScript)
	result := make(Script, 0, 23)
	result = append(result, OP_HASH160)
	result = append(result, OP_PUSH_DATA_20)
	result = append(result, hash[:]...)
	result = append(result, OP_EQUAL)
	return result
}

// ScriptHashFromP2SH extracts the 20 byte script hash from a P2SH locking script.
func ScriptHashFromP2SH(lockingScript Script) (Hash20, error) {
	var result Hash20
	if len(lockingScript) != 23 {
		return result, ErrNotP2SH
	}
	if lockingScript[0] != OP_HASH160 || lockingScript[1] != OP_PUSH_DATA_20 ||
		lockingScript[22] != OP_EQUAL {
		return result, ErrNotP2SH
	}

	copy(result[:], lockingScript[2:22])
	return result, nil
}

// PKHLockingScript builds the standard pay-to-pubkey-hash output script for hash.
func PKHLockingScript(hash Hash20) Script {
	result := make(Script, 0, 25)
	result = append(result, OP_DUP)
	result = append(result, OP_HASH160)
	result = append(result, OP_PUSH_DATA_20)
	result = append(result, hash[:]...)
	result = append(result, OP_EQUALVERIFY)
	result = append(result, OP_CHECKSIG)
	return result
}
