package hotelcore

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"hotelcore/internal/cipher"
	"hotelcore/internal/rsapad"
	"hotelcore/internal/wire"
)

// handshake drives the fixed nine-step plaintext-to-ciphertext sequence,
// then sends the encrypted login triad and waits for authentication.
func (s *Session) handshake(token string) error {
	n, ok := new(big.Int).SetString(s.cfg.RSAModulusHex, 16)
	if !ok {
		return fmt.Errorf("%w: invalid RSA modulus", ErrHandshake)
	}
	e, ok := new(big.Int).SetString(s.cfg.RSAExponentHex, 16)
	if !ok {
		return fmt.Errorf("%w: invalid RSA exponent", ErrHandshake)
	}
	keyBytes := (n.BitLen() + 7) / 8

	connectedAt := time.Now()

	// Step 1: plaintext ClientHello.
	hello := wire.NewOutFrame(s.cfg.Outgoing.ClientHello).
		WriteString(s.cfg.Identity.ReleaseVersion).
		WriteString(s.cfg.Identity.ClientType).
		WriteI32(s.cfg.Identity.PlatformID).
		WriteI32(s.cfg.Identity.ClientVersion)
	if err := s.sendPlaintext(hello); err != nil {
		return err
	}

	// Step 2: plaintext DH-init, empty body.
	if err := s.sendPlaintext(wire.NewOutFrame(s.cfg.Outgoing.DHInit)); err != nil {
		return err
	}

	// Step 3-4: read until DH-server-init; ignore pings, abort on ban.
	id, body, err := s.readUntil(s.cfg.Incoming.ServerDHInit)
	if err != nil {
		return err
	}
	if id == s.cfg.Incoming.ExplicitBan {
		return ErrBanDetected
	}
	in := wire.NewInFrame(body)
	pHex := in.ReadString()
	gHex := in.ReadString()

	p, err := rsapad.VerifyAndUnpad(pHex, n, e, keyBytes)
	if err != nil {
		return fmt.Errorf("%w: unpad p: %v", ErrHandshake, err)
	}
	g, err := rsapad.VerifyAndUnpad(gHex, n, e, keyBytes)
	if err != nil {
		return fmt.Errorf("%w: unpad g: %v", ErrHandshake, err)
	}

	// Step 5: private exponent with ~120 bits of entropy.
	aBytes := make([]byte, 15)
	if _, err := rand.Read(aBytes); err != nil {
		return fmt.Errorf("%w: random exponent: %v", ErrHandshake, err)
	}
	a, ok := new(big.Int).SetString(hex.EncodeToString(aBytes), 16)
	if !ok {
		return fmt.Errorf("%w: failed to build private exponent", ErrHandshake)
	}

	// Step 6: A = g^a mod p; pad, encrypt, send DH-complete.
	A := new(big.Int).Exp(g, a, p)
	aHex, err := rsapad.PadAndEncrypt([]byte(A.String()), n, e, keyBytes)
	if err != nil {
		return fmt.Errorf("%w: pad A: %v", ErrHandshake, err)
	}
	complete := wire.NewOutFrame(s.cfg.Outgoing.DHComplete).WriteString(aHex)
	if err := s.sendPlaintext(complete); err != nil {
		return err
	}

	// Step 7-8: read until DH-server-complete; pong is permitted.
	id, body, err = s.readUntil(s.cfg.Incoming.ServerDHComplete)
	if err != nil {
		return err
	}
	if id == s.cfg.Incoming.ExplicitBan {
		return ErrBanDetected
	}
	in = wire.NewInFrame(body)
	bHex := in.ReadString()
	bidirectional := in.ReadBool()

	B, err := rsapad.VerifyAndUnpad(bHex, n, e, keyBytes)
	if err != nil {
		return fmt.Errorf("%w: unpad B: %v", ErrHandshake, err)
	}
	secret := new(big.Int).Exp(B, a, p)
	secretHex := secret.Text(16)
	if len(secretHex)%2 != 0 {
		secretHex = "0" + secretHex
	}
	secretBytes, err := hex.DecodeString(secretHex)
	if err != nil {
		return fmt.Errorf("%w: shared secret encoding: %v", ErrHandshake, err)
	}

	// Step 9: install cipher(s).
	s.sendMu.Lock()
	s.outCipher = cipher.New(secretBytes)
	s.sendMu.Unlock()
	if bidirectional {
		s.mu.Lock()
		s.incCipher = cipher.New(secretBytes)
		s.mu.Unlock()
	}
	s.setState(CipheredHandshake, "")

	// Login triad (now encrypted).
	elapsed := int32(time.Since(connectedAt).Milliseconds())
	versionCheck := wire.NewOutFrame(s.cfg.Outgoing.VersionCheck).
		WriteI32(0).
		WriteString("app:/").
		WriteString(s.cfg.Identity.ExternalVariablesURL)
	if err := s.send(versionCheck); err != nil {
		return err
	}
	uniqueID := wire.NewOutFrame(s.cfg.Outgoing.UniqueID).
		WriteString(s.cfg.Identity.DeviceFingerprint).
		WriteString(s.cfg.Identity.PlatformString)
	if err := s.send(uniqueID); err != nil {
		return err
	}
	ssoTicket := wire.NewOutFrame(s.cfg.Outgoing.SSOTicket).
		WriteString(token).
		WriteI32(elapsed)
	if err := s.send(ssoTicket); err != nil {
		return err
	}

	return s.waitForAuthentication()
}

// readUntil loops readFrame until a frame with id want arrives, ignoring
// keepalive pings (without responding) and aborting on an explicit ban.
func (s *Session) readUntil(want uint16) (uint16, []byte, error) {
	for {
		id, body, err := s.readFrame()
		if err != nil {
			return 0, nil, fmt.Errorf("%w: %v", ErrHandshake, err)
		}
		if id == want || id == s.cfg.Incoming.ExplicitBan {
			return id, body, nil
		}
		// Ping and anything else is ignored during this window, per the
		// handshake's fixed sequence.
	}
}

// waitForAuthentication reads frames up to authWaitDeadline, handling
// pings, flood-control, disconnect-reason, and ban frames, until
// authentication-ok arrives or the deadline passes.
func (s *Session) waitForAuthentication() error {
	deadline := time.Now().Add(authWaitDeadline)
	type result struct {
		id   uint16
		body []byte
		err  error
	}
	frames := make(chan result, 1)

	for time.Now().Before(deadline) {
		go func() {
			id, body, err := s.readFrame()
			frames <- result{id, body, err}
		}()

		select {
		case r := <-frames:
			if r.err != nil {
				return fmt.Errorf("%w: %v", ErrHandshake, r.err)
			}
			switch r.id {
			case s.cfg.Incoming.Ping:
				s.send(wire.NewOutFrame(s.cfg.Outgoing.Pong))
			case s.cfg.Incoming.FloodControl:
				in := wire.NewInFrame(r.body)
				secs := in.ReadI32()
				s.fireMute(secs, formatMuteDuration(secs))
			case s.cfg.Incoming.DisconnectReason:
				in := wire.NewInFrame(r.body)
				code := in.ReadI32()
				if isBanCode(code) {
					s.setState(Banned, disconnectReasonText(code))
					return ErrBanDetected
				}
				return fmt.Errorf("%w: %s", ErrHandshake, disconnectReasonText(code))
			case s.cfg.Incoming.ExplicitBan:
				s.setState(Banned, "explicit ban")
				return ErrBanDetected
			case s.cfg.Incoming.AuthenticationOK:
				if err := s.send(wire.NewOutFrame(s.cfg.Outgoing.InfoRetrieve)); err != nil {
					return err
				}
				s.setState(Authenticated, "")
				return nil
			}
		case <-time.After(time.Until(deadline)):
			return ErrAuthTimeout
		}
	}
	return ErrAuthTimeout
}

func isBanCode(code int32) bool {
	return code == 1 || code == 10
}

// disconnectReasonText maps a disconnect-reason code to its human-readable
// meaning per the protocol's fixed table.
func disconnectReasonText(code int32) string {
	switch code {
	case -2:
		return "maintenance break"
	case 0:
		return "logged out"
	case 1:
		return "banned"
	case 10:
		return "banned (still)"
	case 2, 13, 11, 18:
		return "concurrent login"
	case 12, 19:
		return "hotel closed"
	case 20:
		return "incorrect password"
	case 112:
		return "idle timeout"
	case 122:
		return "incompatible client"
	default:
		return "unknown (" + strconv.Itoa(int(code)) + ")"
	}
}

// formatMuteDuration renders a flood-control remaining-seconds value as
// "Muted (Hh Mm)" / "Muted (Mm Ss)" / "Muted (Ss)", matching the client's
// historical display.
func formatMuteDuration(totalSeconds int32) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	h := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	sec := totalSeconds % 60

	if h > 0 {
		return fmt.Sprintf("Muted (%dh %dm)", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("Muted (%dm %ds)", m, sec)
	}
	return fmt.Sprintf("Muted (%ds)", sec)
}
