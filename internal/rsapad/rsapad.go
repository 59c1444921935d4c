// Package rsapad implements the handshake's raw RSA modular exponentiation
// together with a lenient PKCS#1-v1.5-style padding scheme. The standard
// library's crypto/rsa is not used: it does not expose the padded integer
// in the form this protocol needs, and the unpad side must tolerate a
// leading zero byte being silently dropped by the peer's arbitrary
// precision arithmetic, which crypto/rsa's padding routines do not permit.
package rsapad

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
)

// ErrBadPadding is returned by VerifyAndUnpad when the decrypted block does
// not begin with a recognized padding prefix or contains no separator byte.
var ErrBadPadding = errors.New("rsapad: malformed padding block")

// PadAndEncrypt builds a PKCS#1-v1.5-style block 0x00 0x02 PS 0x00 msg,
// where PS is random non-zero padding filling the block to keyBytes, then
// raises the block (interpreted big-endian) to e mod n. The result is
// returned as a lowercase hex string of exactly keyBytes*2 characters.
//
// msg must be no longer than keyBytes-11 bytes.
func PadAndEncrypt(msg []byte, n, e *big.Int, keyBytes int) (string, error) {
	psLen := keyBytes - len(msg) - 3
	if psLen < 8 {
		return "", fmt.Errorf("rsapad: message too long for %d-byte modulus", keyBytes)
	}
	ps := make([]byte, psLen)
	for i := range ps {
		b := make([]byte, 1)
		if _, err := rand.Read(b); err != nil {
			return "", fmt.Errorf("rsapad: random padding: %w", err)
		}
		if b[0] == 0 {
			b[0] = 1
		}
		ps[i] = b[0]
	}

	block := make([]byte, 0, keyBytes)
	block = append(block, 0x00, 0x02)
	block = append(block, ps...)
	block = append(block, 0x00)
	block = append(block, msg...)

	m := new(big.Int).SetBytes(block)
	c := new(big.Int).Exp(m, e, n)

	out := c.Text(16)
	if pad := keyBytes*2 - len(out); pad > 0 {
		out = zeros(pad) + out
	}
	return out, nil
}

// VerifyAndUnpad raises the hex-encoded ciphertext to e mod n, fixes the
// result to a keyBytes-length big-endian block, and extracts the decimal
// payload. It accepts both a full 0x00 0x02 prefix and a prefix missing the
// leading zero byte (0x02 or 0x01 first), since the peer's bignum library
// may have dropped it.
func VerifyAndUnpad(cipherHex string, n, e *big.Int, keyBytes int) (*big.Int, error) {
	raw, err := hex.DecodeString(cipherHex)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPadding, err)
	}
	c := new(big.Int).SetBytes(raw)
	m := new(big.Int).Exp(c, e, n)

	block := m.FillBytes(make([]byte, keyBytes))
	return unpadBlock(block)
}

// unpadBlock implements the leniency rule described in PadAndEncrypt's
// counterpart: scan forward from the first non-padding-indicator byte for
// the 0x00 separator, then decode the remainder as an ASCII decimal
// integer.
func unpadBlock(block []byte) (*big.Int, error) {
	var start int
	switch {
	case len(block) >= 2 && block[0] == 0x00 && (block[1] == 0x01 || block[1] == 0x02):
		start = 2
	case len(block) >= 1 && (block[0] == 0x01 || block[0] == 0x02):
		start = 1
	default:
		return nil, fmt.Errorf("%w: unrecognized prefix", ErrBadPadding)
	}

	sep := -1
	for i := start; i < len(block); i++ {
		if block[i] == 0x00 {
			sep = i
			break
		}
	}
	if sep < 0 || sep+1 >= len(block) {
		return nil, fmt.Errorf("%w: no separator found", ErrBadPadding)
	}

	payload := block[sep+1:]
	v, ok := new(big.Int).SetString(string(payload), 10)
	if !ok {
		return nil, fmt.Errorf("%w: payload is not a decimal integer", ErrBadPadding)
	}
	return v, nil
}

func zeros(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '0'
	}
	return string(b)
}
