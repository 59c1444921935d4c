package hotelcore

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/binary"
	"io"
	"math/big"
	"net"
	"testing"
	"time"

	"hotelcore/internal/rsapad"
	"hotelcore/internal/wire"
)

// readPlainFrame reads one length-prefixed frame with no cipher applied,
// returning its id and body.
func readPlainFrame(t *testing.T, conn net.Conn) (uint16, []byte) {
	t.Helper()
	header := make([]byte, 4)
	if _, err := io.ReadFull(conn, header); err != nil {
		t.Fatalf("read header: %v", err)
	}
	length := binary.BigEndian.Uint32(header)
	payload := make([]byte, length)
	if _, err := io.ReadFull(conn, payload); err != nil {
		t.Fatalf("read payload: %v", err)
	}
	id := binary.BigEndian.Uint16(payload[:2])
	return id, payload[2:]
}

func testConfig(addr string, n, e *big.Int) Config {
	cfg := Default()
	cfg.Host, _, _ = net.SplitHostPort(addr)
	_, portStr, _ := net.SplitHostPort(addr)
	var port int
	for _, c := range portStr {
		port = port*10 + int(c-'0')
	}
	cfg.Port = port
	cfg.RSAModulusHex = n.Text(16)
	cfg.RSAExponentHex = e.Text(16)
	cfg.Identity = Identity{
		ReleaseVersion:       "TEST-1",
		ClientType:           "test-client",
		PlatformID:           1,
		ClientVersion:        1,
		ExternalVariablesURL: "https://example.invalid/vars",
		PlatformString:       "test",
		DeviceFingerprint:    "fingerprint",
	}
	cfg.Outgoing = OutgoingIDs{
		ClientHello: 1, DHInit: 2, DHComplete: 3, VersionCheck: 4,
		UniqueID: 5, SSOTicket: 6, InfoRetrieve: 7, Pong: 8, LatencyPingRequest: 9,
	}
	cfg.Incoming = IncomingIDs{
		ServerDHInit: 101, ServerDHComplete: 102, AuthenticationOK: 103,
		Ping: 104, FloodControl: 105, DisconnectReason: 4000, ExplicitBan: 1510,
	}
	return cfg
}

// runFakeServer drives the plaintext side of the handshake far enough to
// authenticate a client: ClientHello, DH-init, DH-server-init, DH-complete,
// DH-server-complete (non-bidirectional), then authentication-ok. It does
// not attempt to read the client's subsequent ciphered traffic, since a
// non-bidirectional session never asks the server to prove it can decrypt
// anything — only that the client's outgoing cipher gets installed.
func runFakeServer(t *testing.T, ln net.Listener, n, d, e *big.Int, keyBytes int) {
	t.Helper()
	conn, err := ln.Accept()
	if err != nil {
		t.Errorf("accept: %v", err)
		return
	}
	defer conn.Close()

	readPlainFrame(t, conn) // ClientHello
	readPlainFrame(t, conn) // DH-init

	p := big.NewInt(2147483647)
	g := big.NewInt(5)

	pHex, err := rsapad.PadAndEncrypt([]byte(p.String()), n, d, keyBytes)
	if err != nil {
		t.Errorf("pad p: %v", err)
		return
	}
	gHex, err := rsapad.PadAndEncrypt([]byte(g.String()), n, d, keyBytes)
	if err != nil {
		t.Errorf("pad g: %v", err)
		return
	}
	dhInit := wire.NewOutFrame(101).WriteString(pHex).WriteString(gHex)
	if _, err := conn.Write(dhInit.Bytes()); err != nil {
		t.Errorf("write dh-server-init: %v", err)
		return
	}

	_, body := readPlainFrame(t, conn) // DH-complete
	in := wire.NewInFrame(body)
	aHex := in.ReadString()

	aVal, err := rsapad.VerifyAndUnpad(aHex, n, d, keyBytes)
	if err != nil {
		t.Errorf("unpad A: %v", err)
		return
	}
	b := big.NewInt(777)
	B := new(big.Int).Exp(g, b, p)
	_ = new(big.Int).Exp(aVal, b, p) // shared secret, unused beyond sanity

	bHex, err := rsapad.PadAndEncrypt([]byte(B.String()), n, d, keyBytes)
	if err != nil {
		t.Errorf("pad B: %v", err)
		return
	}
	complete := wire.NewOutFrame(102).WriteString(bHex).WriteBool(false)
	if _, err := conn.Write(complete.Bytes()); err != nil {
		t.Errorf("write dh-server-complete: %v", err)
		return
	}

	authOK := wire.NewOutFrame(103)
	if _, err := conn.Write(authOK.Bytes()); err != nil {
		t.Errorf("write authentication-ok: %v", err)
		return
	}
}

func TestConnectReachesAuthenticated(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	n := key.N
	e := big.NewInt(int64(key.E))
	d := key.D
	keyBytes := (n.BitLen() + 7) / 8

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		runFakeServer(t, ln, n, d, e, keyBytes)
	}()

	cfg := testConfig(ln.Addr().String(), n, e)
	sess := NewSession(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sess.Connect(ctx, "test-token"); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer sess.Disconnect()

	if got := sess.State(); got != Authenticated {
		t.Fatalf("state = %v, want %v", got, Authenticated)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("fake server did not finish")
	}
}
