package wire

import "testing"

func TestOutFrameRoundTrip(t *testing.T) {
	f := NewOutFrame(2158)
	f.WriteI32(80257391)
	f.WriteI32(0)
	f.WriteI32(1)
	got := f.Bytes()

	if len(got) != 4+14 {
		t.Fatalf("frame length = %d, want %d", len(got), 4+14)
	}
	if length := int(got[0])<<24 | int(got[1])<<16 | int(got[2])<<8 | int(got[3]); length != 14 {
		t.Fatalf("length prefix = %d, want 14", length)
	}
	if id := int(got[4])<<8 | int(got[5]); id != 2158 {
		t.Fatalf("id = %d, want 2158", id)
	}

	in := NewInFrame(got[6:])
	if v := in.ReadI32(); v != 80257391 {
		t.Fatalf("field 1 = %d, want 80257391", v)
	}
	if v := in.ReadI32(); v != 0 {
		t.Fatalf("field 2 = %d, want 0", v)
	}
	if v := in.ReadI32(); v != 1 {
		t.Fatalf("field 3 = %d, want 1", v)
	}
	if in.Remaining() != 0 {
		t.Fatalf("expected buffer fully consumed, %d bytes left", in.Remaining())
	}
}

func TestOutFrameMixedFields(t *testing.T) {
	f := NewOutFrame(1)
	f.WriteString("hi").WriteU16(7).WriteBool(true).WriteByte(9)
	got := f.Bytes()

	in := NewInFrame(got[6:])
	if s := in.ReadString(); s != "hi" {
		t.Fatalf("string = %q, want %q", s, "hi")
	}
	if v := in.ReadU16(); v != 7 {
		t.Fatalf("u16 = %d, want 7", v)
	}
	if b := in.ReadBool(); !b {
		t.Fatalf("bool = false, want true")
	}
	if v := in.ReadByte(); v != 9 {
		t.Fatalf("byte = %d, want 9", v)
	}
}

func TestInFrameUnderflowIsLenient(t *testing.T) {
	in := NewInFrame([]byte{0x00})
	if v := in.ReadI32(); v != 0 {
		t.Fatalf("ReadI32 on short buffer = %d, want 0", v)
	}
	in2 := NewInFrame([]byte{0x00, 0x05, 'h', 'i'})
	if s := in2.ReadString(); s != "hi" {
		t.Fatalf("ReadString clamp = %q, want %q", s, "hi")
	}
}

func TestInFrameInvalidUTF8Replaced(t *testing.T) {
	raw := []byte{0xff, 0xfe, 'o', 'k'}
	buf := append([]byte{0x00, byte(len(raw))}, raw...)
	in := NewInFrame(buf)
	s := in.ReadString()
	if len(s) == 0 {
		t.Fatalf("expected non-empty lenient decode")
	}
}
