package wire

import (
	"encoding/binary"

	"golang.org/x/text/encoding/unicode"
)

// InFrame reads typed fields out of a decoded packet body. All reads are
// lenient: a read that would run past the end of the buffer returns the
// primitive's zero value instead of failing, since the dispatcher must
// tolerate payloads that drift from the expected schema as the server's
// wire format evolves.
type InFrame struct {
	buf    []byte
	cursor int
}

// NewInFrame wraps buf (the body following the packet id) for sequential
// reads starting at offset 0.
func NewInFrame(buf []byte) *InFrame {
	return &InFrame{buf: buf}
}

// Remaining reports how many bytes are left unread.
func (f *InFrame) Remaining() int {
	if f.cursor >= len(f.buf) {
		return 0
	}
	return len(f.buf) - f.cursor
}

// RemainingBytes returns (and consumes) every byte left in the buffer.
func (f *InFrame) RemainingBytes() []byte {
	if f.cursor >= len(f.buf) {
		return nil
	}
	out := f.buf[f.cursor:]
	f.cursor = len(f.buf)
	return out
}

// ReadI32 reads a big-endian signed 32-bit value, or 0 on underflow.
func (f *InFrame) ReadI32() int32 {
	if f.Remaining() < 4 {
		f.cursor = len(f.buf)
		return 0
	}
	v := int32(binary.BigEndian.Uint32(f.buf[f.cursor : f.cursor+4]))
	f.cursor += 4
	return v
}

// ReadU16 reads a big-endian unsigned 16-bit value, or 0 on underflow.
func (f *InFrame) ReadU16() uint16 {
	if f.Remaining() < 2 {
		f.cursor = len(f.buf)
		return 0
	}
	v := binary.BigEndian.Uint16(f.buf[f.cursor : f.cursor+2])
	f.cursor += 2
	return v
}

// ReadByte reads a single unsigned byte, or 0 on underflow.
func (f *InFrame) ReadByte() byte {
	if f.Remaining() < 1 {
		return 0
	}
	v := f.buf[f.cursor]
	f.cursor++
	return v
}

// ReadBool reads a single byte as a boolean: non-zero is true.
func (f *InFrame) ReadBool() bool {
	return f.ReadByte() != 0
}

// utf8Decoder is created once and reused across reads; Bytes resets its
// state at the start of every call.
var utf8Decoder = unicode.UTF8.NewDecoder()

// ReadString reads a {u16_be length}{utf8 bytes} field. The length is
// clamped to whatever remains in the buffer rather than treated as fatal,
// and invalid UTF-8 sequences are replaced rather than rejected.
func (f *InFrame) ReadString() string {
	n := int(f.ReadU16())
	if n > f.Remaining() {
		n = f.Remaining()
	}
	raw := f.buf[f.cursor : f.cursor+n]
	f.cursor += n
	decoded, err := utf8Decoder.Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}
