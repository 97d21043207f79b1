// Package lockid implements the Lock Identifier wire codec.
package lockid

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/tokenized/vtl/bitcoin"
	"github.com/tokenized/vtl/vtl"
)

// ErrIncorrectFormat is wrapped and returned as a vtl.Error with code
// lock_identifier_incorrect_format whenever the wire string fails to decode. Serialize returns it
// wrapped directly (not as a vtl.Error) when a field contains the delimiter.
var ErrIncorrectFormat = errors.New("lock identifier incorrect format")

// Serialize encodes a LockIdentifier and the wallet address paying the lock's redeem script into
// the wire form base64url(transaction_id "." redeem_script_hex "." wallet_address_string). The
// wallet address travels alongside the identifier on the wire but is not part of the
// vtl.LockIdentifier value itself, which carries only the transaction id and redeem script.
func Serialize(id vtl.LockIdentifier, walletAddress string) (string, error) {
	if strings.Contains(id.TransactionID, ".") ||
		strings.Contains(id.RedeemScriptHex, ".") ||
		strings.Contains(walletAddress, ".") {
		return "", errors.Wrap(ErrIncorrectFormat, "field contains delimiter")
	}

	payload := id.TransactionID + "." + id.RedeemScriptHex + "." + walletAddress
	return bitcoin.Base64URL([]byte(payload)), nil
}

// Deserialize decodes a wire-form string back into a LockIdentifier and the wallet address it
// was paired with at serialization time.
func Deserialize(s string) (vtl.LockIdentifier, string, error) {
	raw, err := bitcoin.Base64URLDecode(s)
	if err != nil {
		return vtl.LockIdentifier{}, "",
			vtl.NewLockIdentifierIncorrectFormatError(errors.Wrap(ErrIncorrectFormat, err.Error()).Error())
	}

	parts := strings.Split(string(raw), ".")
	if len(parts) != 3 {
		return vtl.LockIdentifier{}, "",
			vtl.NewLockIdentifierIncorrectFormatError(errors.Wrap(ErrIncorrectFormat, "expected three parts").Error())
	}

	for _, part := range parts {
		if part == "" {
			return vtl.LockIdentifier{}, "",
				vtl.NewLockIdentifierIncorrectFormatError(errors.Wrap(ErrIncorrectFormat, "empty part").Error())
		}
	}

	id := vtl.LockIdentifier{
		TransactionID:   parts[0],
		RedeemScriptHex: parts[1],
	}
	return id, parts[2], nil
}
