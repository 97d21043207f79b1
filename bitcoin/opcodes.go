package bitcoin

// Opcode values relevant to standard P2PKH/P2SH scripts and to the CSV-gated redeem script this
// module parses and builds, trimmed to what this module's script engine actually dispatches on.
const (
	OP_0  = byte(0x00)
	OP_1  = byte(0x51)
	OP_2  = byte(0x52)
	OP_3  = byte(0x53)
	OP_16 = byte(0x60)

	OP_PUSH_DATA_1 = byte(0x4c)
	OP_PUSH_DATA_2 = byte(0x4d)
	OP_PUSH_DATA_4 = byte(0x4e)

	OP_PUSH_DATA_20 = byte(0x14)
	OP_PUSH_DATA_33 = byte(0x21)

	OP_MAX_SINGLE_BYTE_PUSH_DATA = byte(0x4b)

	OP_DROP  = byte(0x75) // Remove the top stack item
	OP_DUP   = byte(0x76) // Duplicate the top stack item
	OP_EQUAL = byte(0x87)

	OP_EQUALVERIFY = byte(0x88)

	OP_HASH160  = byte(0xa9)
	OP_CHECKSIG = byte(0xac)

	OP_NOP2 = byte(0xb1) // Pre-BIP112 CHECKLOCKTIMEVERIFY placeholder, superseded by OP_CSV.
	OP_NOP3 = byte(0xb2) // OP_CSV, CheckSequenceVerify (BIP112): the canonical relative-time-lock op.
	OP_CSV  = OP_NOP3
)

var byteToName = map[byte]string{
	OP_0:           "OP_0",
	OP_1:           "OP_1",
	OP_2:           "OP_2",
	OP_3:           "OP_3",
	OP_16:          "OP_16",
	OP_DROP:        "OP_DROP",
	OP_DUP:         "OP_DUP",
	OP_EQUAL:       "OP_EQUAL",
	OP_EQUALVERIFY: "OP_EQUALVERIFY",
	OP_HASH160:     "OP_HASH160",
	OP_CHECKSIG:    "OP_CHECKSIG",
	OP_NOP2:        "OP_NOP2",
	OP_NOP3:        "OP_CSV",
}

// OpCodeToString returns the mnemonic name of an opcode, or "OP_UNKNOWN" if unknown.
func OpCodeToString(opCode byte) string {
	if name, exists := byteToName[opCode]; exists {
		return name
	}
	return "OP_UNKNOWN"
}
