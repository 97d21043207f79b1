package bitcoin

import (
	"bytes"
	"testing"
)

func TestParseScriptItemsOpCodesAndPushData(t *testing.T) {
	buf := new(bytes.Buffer)
	WritePushDataScript(buf, []byte{0xde, 0xad, 0xbe, 0xef})
	buf.WriteByte(OP_DUP)
	buf.WriteByte(OP_HASH160)

	items, err := ParseScriptItems(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("parse failed : %s", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}

	if items[0].Type != ScriptItemTypePushData || !bytes.Equal(items[0].Data, []byte{0xde, 0xad, 0xbe, 0xef}) {
		t.Fatalf("item 0 mismatch : %+v", items[0])
	}
	if items[1].Type != ScriptItemTypeOpCode || items[1].OpCode != OP_DUP {
		t.Fatalf("item 1 mismatch : %+v", items[1])
	}
	if items[2].Type != ScriptItemTypeOpCode || items[2].OpCode != OP_HASH160 {
		t.Fatalf("item 2 mismatch : %+v", items[2])
	}
}

func TestParseScriptRejectsTruncatedPushData(t *testing.T) {
	// Claims a 10 byte push but only provides 2.
	buf := bytes.NewReader([]byte{0x0a, 0x01, 0x02})
	if _, err := ParseScript(buf); err == nil {
		t.Fatal("expected error for push data past end of script")
	}
}

func TestPushNumberScriptRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 127, 128, 255, 2016, 65535, 1 << 32}

	for _, n := range cases {
		script := PushNumberScriptUnsigned(n)

		items, err := ParseScriptItems(bytes.NewReader(script))
		if err != nil {
			t.Fatalf("n=%d parse failed : %s", n, err)
		}
		if len(items) != 1 {
			t.Fatalf("n=%d got %d items, want 1", n, len(items))
		}

		var data []byte
		if items[0].Type == ScriptItemTypeOpCode {
			if n != 0 || items[0].OpCode != OP_0 {
				t.Fatalf("n=%d unexpected opcode item : %+v", n, items[0])
			}
		} else {
			data = items[0].Data
			got, err := DecodeScriptLittleEndianUnsigned(data)
			if err != nil {
				t.Fatalf("n=%d decode failed : %s", n, err)
			}
			if got != n {
				t.Fatalf("n=%d round trip got %d", n, got)
			}
		}
	}
}

func TestPushNumberScriptHighBitPadding(t *testing.T) {
	// 0x80 alone has its high bit set, so encoding it must append a zero pad byte to avoid being
	// read as a negative script number.
	script := PushNumberScriptUnsigned(0x80)

	items, err := ParseScriptItems(bytes.NewReader(script))
	if err != nil {
		t.Fatalf("parse failed : %s", err)
	}
	if len(items[0].Data) != 2 || items[0].Data[1] != 0x00 {
		t.Fatalf("expected zero-padded two byte push, got %x", items[0].Data)
	}
}

func TestScriptEqual(t *testing.T) {
	a := Script{OP_DUP, OP_HASH160}
	b := Script{OP_DUP, OP_HASH160}
	c := Script{OP_DUP, OP_EQUAL}

	if !a.Equal(b) {
		t.Fatal("expected equal scripts to compare equal")
	}
	if a.Equal(c) {
		t.Fatal("expected differing scripts to compare unequal")
	}
}
