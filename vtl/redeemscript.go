package vtl

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/tokenized/vtl/bitcoin"
)

// ErrRedeemScriptIsNotLock is returned when a redeem script does not match the value-time-lock
// template.
var ErrRedeemScriptIsNotLock = errors.New("redeem script is not a value-time-lock")

// RedeemScript is the parsed form of a value-time-lock redeem script:
//
//	<duration_le_bytes> OP_CSV OP_DROP OP_DUP OP_HASH160 <pubkey_hash_20_bytes> OP_EQUALVERIFY OP_CHECKSIG
//
// The template is a single CSV-gated pay-to-pubkey-hash shape, matched against the parsed binary
// opcode stream directly rather than against a reparsed textual ASM disassembly.
type RedeemScript struct {
	DurationInBlocks uint64
	OwnerPubKeyHash  bitcoin.Hash20
}

// ParseRedeemScript decodes raw redeem script bytes and validates they match the value-time-lock
// template exactly. Any deviation fails with ErrRedeemScriptIsNotLock.
func ParseRedeemScript(script bitcoin.Script) (*RedeemScript, error) {
	buf := bytes.NewReader(script)
	items, err := bitcoin.ParseScriptItems(buf)
	if err != nil {
		return nil, errors.Wrap(ErrRedeemScriptIsNotLock, err.Error())
	}

	if len(items) != 8 {
		return nil, errors.Wrapf(ErrRedeemScriptIsNotLock, "wrong item count : %d", len(items))
	}

	durationItem := items[0]
	// OP_0 is how BuildRedeemScript encodes a zero duration; its Data is empty and decodes to 0.
	zeroDuration := durationItem.Type == bitcoin.ScriptItemTypeOpCode && durationItem.OpCode == bitcoin.OP_0
	if !zeroDuration && (durationItem.Type != bitcoin.ScriptItemTypePushData ||
		len(durationItem.Data) == 0 || len(durationItem.Data) > 4) {
		return nil, errors.Wrap(ErrRedeemScriptIsNotLock, "item 0 : expected duration push")
	}

	if err := expectOpCode(items[1], bitcoin.OP_CSV); err != nil {
		return nil, err
	}
	if err := expectOpCode(items[2], bitcoin.OP_DROP); err != nil {
		return nil, err
	}
	if err := expectOpCode(items[3], bitcoin.OP_DUP); err != nil {
		return nil, err
	}
	if err := expectOpCode(items[4], bitcoin.OP_HASH160); err != nil {
		return nil, err
	}

	pkhItem := items[5]
	if pkhItem.Type != bitcoin.ScriptItemTypePushData || len(pkhItem.Data) != bitcoin.Hash20Size {
		return nil, errors.Wrap(ErrRedeemScriptIsNotLock, "item 5 : expected 20 byte pubkey hash push")
	}

	if err := expectOpCode(items[6], bitcoin.OP_EQUALVERIFY); err != nil {
		return nil, err
	}
	if err := expectOpCode(items[7], bitcoin.OP_CHECKSIG); err != nil {
		return nil, err
	}

	duration, err := bitcoin.DecodeScriptLittleEndianUnsigned(durationItem.Data)
	if err != nil {
		return nil, errors.Wrap(ErrRedeemScriptIsNotLock, "decode duration")
	}

	result := &RedeemScript{DurationInBlocks: duration}
	copy(result.OwnerPubKeyHash[:], pkhItem.Data)
	return result, nil
}

func expectOpCode(item *bitcoin.ScriptItem, opCode byte) error {
	if item.Type != bitcoin.ScriptItemTypeOpCode || item.OpCode != opCode {
		return errors.Wrapf(ErrRedeemScriptIsNotLock, "expected %s, got %s",
			bitcoin.OpCodeToString(opCode), item.String())
	}
	return nil
}

// BuildRedeemScript encodes the value-time-lock redeem script template for durationInBlocks and
// ownerPubKeyHash.
func BuildRedeemScript(durationInBlocks uint64, ownerPubKeyHash bitcoin.Hash20) bitcoin.Script {
	duration := bitcoin.PushNumberScriptUnsigned(durationInBlocks)

	result := make(bitcoin.Script, 0, len(duration)+7+bitcoin.Hash20Size)
	result = append(result, duration...)
	result = append(result, bitcoin.OP_CSV)
	result = append(result, bitcoin.OP_DROP)
	result = append(result, bitcoin.OP_DUP)
	result = append(result, bitcoin.OP_HASH160)
	result = append(result, bitcoin.OP_PUSH_DATA_20)
	result = append(result, ownerPubKeyHash[:]...)
	result = append(result, bitcoin.OP_EQUALVERIFY)
	result = append(result, bitcoin.OP_CHECKSIG)
	return result
}
