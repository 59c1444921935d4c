// Package wire implements the length-prefixed big-endian frame codec shared
// by every outgoing and incoming packet.
package wire

import (
	"bytes"
	"encoding/binary"
)

// OutFrame builds a single outgoing frame: a packet identifier followed by a
// sequence of typed fields. The zero value is not usable; use NewOutFrame.
type OutFrame struct {
	body bytes.Buffer
}

// NewOutFrame starts a frame for the given packet id. The id is written
// immediately as the first u16_be field of the body.
func NewOutFrame(id uint16) *OutFrame {
	f := &OutFrame{}
	binary.Write(&f.body, binary.BigEndian, id)
	return f
}

// WriteString appends a {u16_be length}{utf8 bytes} field.
func (f *OutFrame) WriteString(s string) *OutFrame {
	binary.Write(&f.body, binary.BigEndian, uint16(len(s)))
	f.body.WriteString(s)
	return f
}

// WriteI32 appends a big-endian signed 32-bit field.
func (f *OutFrame) WriteI32(v int32) *OutFrame {
	binary.Write(&f.body, binary.BigEndian, v)
	return f
}

// WriteU16 appends a big-endian unsigned 16-bit field.
func (f *OutFrame) WriteU16(v uint16) *OutFrame {
	binary.Write(&f.body, binary.BigEndian, v)
	return f
}

// WriteBool appends a single byte, 0x01 for true and 0x00 for false.
func (f *OutFrame) WriteBool(v bool) *OutFrame {
	if v {
		f.body.WriteByte(1)
	} else {
		f.body.WriteByte(0)
	}
	return f
}

// WriteByte appends a single unsigned byte.
func (f *OutFrame) WriteByte(v byte) *OutFrame {
	f.body.WriteByte(v)
	return f
}

// Bytes finalizes the frame: {u32_be length}{body}, where length counts the
// body (id plus fields) but not the length prefix itself.
func (f *OutFrame) Bytes() []byte {
	out := make([]byte, 4+f.body.Len())
	binary.BigEndian.PutUint32(out, uint32(f.body.Len()))
	copy(out[4:], f.body.Bytes())
	return out
}
