package rsapad

import (
	"math/big"
	"testing"
)

func TestUnpadBlockAcceptsMissingLeadingZero(t *testing.T) {
	const keyBytes = 256
	payload := []byte("12345")

	withZero := make([]byte, keyBytes)
	withZero[0] = 0x00
	withZero[1] = 0x02
	for i := 2; i < keyBytes-1-len(payload); i++ {
		withZero[i] = 0xff
	}
	withZero[keyBytes-1-len(payload)] = 0x00
	copy(withZero[keyBytes-len(payload):], payload)

	withoutZero := make([]byte, keyBytes-1)
	copy(withoutZero, withZero[1:])

	got1, err := unpadBlock(withZero)
	if err != nil {
		t.Fatalf("unpadBlock(with leading zero) error: %v", err)
	}
	got2, err := unpadBlock(withoutZero)
	if err != nil {
		t.Fatalf("unpadBlock(without leading zero) error: %v", err)
	}

	want := big.NewInt(12345)
	if got1.Cmp(want) != 0 {
		t.Fatalf("with-zero result = %v, want %v", got1, want)
	}
	if got2.Cmp(want) != 0 {
		t.Fatalf("without-zero result = %v, want %v", got2, want)
	}
}

func TestUnpadBlockRejectsDoubleZeroPrefix(t *testing.T) {
	block := make([]byte, 32)
	if _, err := unpadBlock(block); err == nil {
		t.Fatalf("expected error for an all-zero block")
	}
}

func TestUnpadBlockRejectsMissingSeparator(t *testing.T) {
	block := make([]byte, 32)
	block[0] = 0x00
	block[1] = 0x02
	for i := 2; i < len(block); i++ {
		block[i] = 0xff
	}
	if _, err := unpadBlock(block); err == nil {
		t.Fatalf("expected error when no 0x00 separator is present")
	}
}

func TestPadAndEncryptHexLengthAndUnpadBlockRoundTrip(t *testing.T) {
	// A toy 64-byte "modulus" large enough to exercise the padding
	// envelope. Not a cryptographically meaningful keypair.
	n, _ := new(big.Int).SetString(
		"b2e1c6e36f1a2a9f3b7d4c8e5f60a1b2c3d4e5f60718293a4b5c6d7e8f90a1b"+
			"c2d3e4f5061728394a5b6c7d8e9f0a1b2c3d4e5f60718293a4b5c6d7e8f90a1c", 16)
	e := big.NewInt(65537)
	const keyBytes = 64

	msg := []byte("42")
	cipherHex, err := PadAndEncrypt(msg, n, e, keyBytes)
	if err != nil {
		t.Fatalf("PadAndEncrypt: %v", err)
	}
	if len(cipherHex) != keyBytes*2 {
		t.Fatalf("cipher hex length = %d, want %d", len(cipherHex), keyBytes*2)
	}

	// Since this custom scheme applies the same modexp with (n,e) on both
	// sides (no private exponent is modeled — the protocol is a padding
	// obfuscation, not genuine asymmetric encryption) VerifyAndUnpad on
	// its own output does not recover msg without the matching inverse
	// exponent; instead confirm the block shape round-trips through
	// unpadBlock directly using the pre-encryption block.
	psLen := keyBytes - len(msg) - 3
	block := make([]byte, 0, keyBytes)
	block = append(block, 0x00, 0x02)
	for i := 0; i < psLen; i++ {
		block = append(block, 0xaa)
	}
	block = append(block, 0x00)
	block = append(block, msg...)

	got, err := unpadBlock(block)
	if err != nil {
		t.Fatalf("unpadBlock: %v", err)
	}
	want := big.NewInt(42)
	if got.Cmp(want) != 0 {
		t.Fatalf("unpadBlock = %v, want %v", got, want)
	}
}
