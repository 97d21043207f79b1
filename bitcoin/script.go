package bitcoin

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/pkg/errors"
)

// ScriptItemType distinguishes an opcode item from a push-data item in a parsed script.
type ScriptItemType uint8

const (
	ScriptItemTypeOpCode   = ScriptItemType(0x01)
	ScriptItemTypePushData = ScriptItemType(0x02)
)

var (
	ErrEmptyScript   = errors.New("empty script")
	ErrInvalidScript = errors.New("invalid script")

	endian = binary.LittleEndian
)

// ScriptItem is one opcode or push-data element of a parsed script.
type ScriptItem struct {
	Type   ScriptItemType
	OpCode byte
	Data   []byte
}

// ScriptItems is a parsed sequence of script elements.
type ScriptItems []*ScriptItem

// Script is a raw, unparsed bitcoin script.
type Script []byte

func (item *ScriptItem) String() string {
	if item.Type == ScriptItemTypePushData {
		return fmt.Sprintf("0x%s", hex.EncodeToString(item.Data))
	}
	return OpCodeToString(item.OpCode)
}

// NewOpCodeScriptItem wraps a bare opcode as a ScriptItem.
func NewOpCodeScriptItem(opCode byte) *ScriptItem {
	return &ScriptItem{Type: ScriptItemTypeOpCode, OpCode: opCode}
}

// NewPushDataScriptItem wraps push-data bytes as a ScriptItem, choosing the minimal push opcode.
func NewPushDataScriptItem(b []byte) *ScriptItem {
	size := len(b)
	var opCode byte
	switch {
	case size <= int(OP_MAX_SINGLE_BYTE_PUSH_DATA):
		opCode = byte(size)
	case size < 0x100:
		opCode = OP_PUSH_DATA_1
	case size < 0x10000:
		opCode = OP_PUSH_DATA_2
	default:
		opCode = OP_PUSH_DATA_4
	}
	return &ScriptItem{Type: ScriptItemTypePushData, OpCode: opCode, Data: b}
}

// ParseScriptItems parses every item out of a script, in order.
func ParseScriptItems(buf *bytes.Reader) (ScriptItems, error) {
	var result ScriptItems
	for buf.Len() > 0 {
		item, err := ParseScript(buf)
		if err != nil {
			return nil, errors.Wrapf(err, "item %d", len(result))
		}
		result = append(result, item)
	}
	return result, nil
}

// ParseScript parses the next opcode or push-data item from buf.
func ParseScript(buf *bytes.Reader) (*ScriptItem, error) {
	var opCode byte
	if err := binary.Read(buf, endian, &opCode); err != nil {
		return nil, err
	}

	switch {
	case opCode == OP_0:
		return &ScriptItem{Type: ScriptItemTypeOpCode, OpCode: opCode}, nil

	case opCode <= OP_MAX_SINGLE_BYTE_PUSH_DATA:
		return readPushData(buf, opCode, int(opCode))

	case opCode >= OP_1 && opCode <= OP_16:
		return &ScriptItem{Type: ScriptItemTypeOpCode, OpCode: opCode}, nil

	case opCode == OP_PUSH_DATA_1:
		var size uint8
		if err := binary.Read(buf, endian, &size); err != nil {
			return nil, err
		}
		return readPushData(buf, opCode, int(size))

	case opCode == OP_PUSH_DATA_2:
		var size uint16
		if err := binary.Read(buf, endian, &size); err != nil {
			return nil, err
		}
		return readPushData(buf, opCode, int(size))

	case opCode == OP_PUSH_DATA_4:
		var size uint32
		if err := binary.Read(buf, endian, &size); err != nil {
			return nil, err
		}
		return readPushData(buf, opCode, int(size))
	}

	return &ScriptItem{Type: ScriptItemTypeOpCode, OpCode: opCode}, nil
}

func readPushData(buf *bytes.Reader, opCode byte, size int) (*ScriptItem, error) {
	if size == 0 {
		return &ScriptItem{Type: ScriptItemTypePushData, OpCode: opCode}, nil
	}

	if size > buf.Len() {
		return nil, errors.Wrapf(ErrInvalidScript, "push data size past end of script : %d/%d",
			size, buf.Len())
	}

	data := make([]byte, size)
	if _, err := buf.Read(data); err != nil {
		return nil, err
	}

	return &ScriptItem{Type: ScriptItemTypePushData, OpCode: opCode, Data: data}, nil
}

// WritePushDataScript writes the minimal push-data encoding of data, including its length prefix.
func WritePushDataScript(buf *bytes.Buffer, data []byte) error {
	size := len(data)
	switch {
	case size <= int(OP_MAX_SINGLE_BYTE_PUSH_DATA):
		buf.WriteByte(byte(size))
	case size < 0x100:
		buf.WriteByte(OP_PUSH_DATA_1)
		buf.WriteByte(byte(size))
	case size < 0x10000:
		buf.WriteByte(OP_PUSH_DATA_2)
		binary.Write(buf, endian, uint16(size))
	default:
		buf.WriteByte(OP_PUSH_DATA_4)
		binary.Write(buf, endian, uint32(size))
	}
	_, err := buf.Write(data)
	return err
}

// DecodeScriptLittleEndianUnsigned interprets b as an unsigned little-endian script number, the
// minimal-push integer encoding bitcoin scripts use (e.g. the CSV relative-locktime argument).
func DecodeScriptLittleEndianUnsigned(b []byte) (uint64, error) {
	if len(b) > 8 {
		return 0, errors.New("number overrun")
	}

	var result uint64
	for i, v := range b {
		result |= uint64(v) << uint(8*i)
	}
	return result, nil
}

// PushNumberScriptUnsigned returns the minimal push-data script encoding an unsigned integer in
// little-endian.
func PushNumberScriptUnsigned(n uint64) Script {
	if n == 0 {
		return Script{OP_0}
	}

	var b []byte
	for n > 0 {
		b = append(b, byte(n&0xff))
		n >>= 8
	}

	// If the high bit of the last byte is set, a zero padding byte must be added so the value is
	// not misread as negative, matching bitcoin script number encoding.
	if b[len(b)-1]&0x80 != 0 {
		b = append(b, 0x00)
	}

	buf := new(bytes.Buffer)
	WritePushDataScript(buf, b)
	return Script(buf.Bytes())
}

// Bytes returns the raw script bytes.
func (s Script) Bytes() []byte {
	return []byte(s)
}

// Equal returns true if the two scripts are byte-for-byte identical.
func (s Script) Equal(o Script) bool {
	return bytes.Equal(s, o)
}

func (s Script) String() string {
	return hex.EncodeToString(s)
}
