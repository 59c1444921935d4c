// Package cipher implements the session's directionally asymmetric stream
// cipher. It schedules a standard RC4-style S-box but deliberately diverges
// the encrypt and decrypt keystream derivations, so a cipher keyed and run
// in one direction does not invert its own output — the peer is expected to
// run the mirror-image construction.
package cipher

// ArcFour holds one direction's cipher state: the permuted S-box and its
// two advancing cursors. A session owns two independent instances, one per
// direction, never shared.
type ArcFour struct {
	s    [256]byte
	i, j byte
}

// New schedules a fresh cipher from key. The key may be any non-empty byte
// sequence; its bytes are consumed cyclically during the schedule.
func New(key []byte) *ArcFour {
	c := &ArcFour{}
	for i := 0; i < 256; i++ {
		c.s[i] = byte(i)
	}
	var j byte
	for i := 0; i < 256; i++ {
		j = j + c.s[i] + key[i%len(key)]
		c.s[i], c.s[j] = c.s[j], c.s[i]
	}
	return c
}

// advance performs the shared per-byte state transition and returns t, the
// sum used by both keystream derivations.
func (c *ArcFour) advance() byte {
	c.i++
	c.j += c.s[c.i]
	c.s[c.i], c.s[c.j] = c.s[c.j], c.s[c.i]
	return c.s[c.i] + c.s[c.j]
}

// Encrypt XORs src with the standard single-lookup keystream and writes the
// result to dst, which may alias src. Returns dst[:len(src)].
func (c *ArcFour) Encrypt(dst, src []byte) []byte {
	for k, b := range src {
		t := c.advance()
		dst[k] = b ^ c.s[t]
	}
	return dst[:len(src)]
}

// Decrypt XORs src with the double-indirected keystream S[S[S[t]]] and
// writes the result to dst, which may alias src. Returns dst[:len(src)].
func (c *ArcFour) Decrypt(dst, src []byte) []byte {
	for k, b := range src {
		t := c.advance()
		dst[k] = b ^ c.s[c.s[c.s[t]]]
	}
	return dst[:len(src)]
}
