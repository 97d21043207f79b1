package logger

import (
	"encoding/hex"
	"fmt"
	"strconv"
)

// Field is a structured key/value pair attached to a log entry, trimmed to the field types this
// module actually logs with.
type Field interface {
	Name() string
	ValueJSON() string
}

type StringField struct {
	name  string
	value string
}

func (f StringField) Name() string      { return f.name }
func (f StringField) ValueJSON() string { return strconv.Quote(f.value) }

func String(name, value string) *StringField {
	return &StringField{name: name, value: value}
}

type IntField struct {
	name  string
	value int64
}

func (f IntField) Name() string      { return f.name }
func (f IntField) ValueJSON() string { return strconv.FormatInt(f.value, 10) }

func Int(name string, value int) *IntField {
	return &IntField{name: name, value: int64(value)}
}

func Int64(name string, value int64) *IntField {
	return &IntField{name: name, value: value}
}

func Uint64(name string, value uint64) *IntField {
	return &IntField{name: name, value: int64(value)}
}

type BoolField struct {
	name  string
	value bool
}

func (f BoolField) Name() string      { return f.name }
func (f BoolField) ValueJSON() string { return strconv.FormatBool(f.value) }

func Bool(name string, value bool) *BoolField {
	return &BoolField{name: name, value: value}
}

type StringerField struct {
	name  string
	value fmt.Stringer
}

func (f StringerField) Name() string      { return f.name }
func (f StringerField) ValueJSON() string { return strconv.Quote(f.value.String()) }

func Stringer(name string, value fmt.Stringer) *StringerField {
	return &StringerField{name: name, value: value}
}

type HexField struct {
	name  string
	value []byte
}

func (f HexField) Name() string      { return f.name }
func (f HexField) ValueJSON() string { return strconv.Quote(hex.EncodeToString(f.value)) }

func Hex(name string, value []byte) *HexField {
	return &HexField{name: name, value: value}
}
