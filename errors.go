package hotelcore

import "errors"

// Sentinel errors matching the taxonomy the session surfaces to callers.
// Wrap these with fmt.Errorf("%w: ...") for additional context; callers
// should compare with errors.Is.
var (
	// ErrProxy indicates the SOCKS5 proxy handshake failed.
	ErrProxy = errors.New("hotelcore: proxy handshake failed")

	// ErrConnect indicates the TCP dial to the game server failed or
	// timed out.
	ErrConnect = errors.New("hotelcore: connect failed")

	// ErrHandshake indicates a malformed DH frame, an RSA unpad failure,
	// or an unexpected frame id during the plaintext handshake phase.
	ErrHandshake = errors.New("hotelcore: handshake failed")

	// ErrSocketIO indicates a read or write failure after the handshake
	// has completed; the session is considered ended.
	ErrSocketIO = errors.New("hotelcore: socket i/o failed")

	// ErrBanDetected indicates an explicit ban identifier or a
	// ban-coded disconnect reason was received.
	ErrBanDetected = errors.New("hotelcore: account banned")

	// ErrAuthTimeout indicates no authentication-ok frame arrived within
	// the authentication deadline.
	ErrAuthTimeout = errors.New("hotelcore: authentication timed out")

	// ErrProtocol indicates a payload was too short for its required
	// fields during the handshake. Post-authentication, malformed
	// individual frames are dropped rather than surfaced as errors.
	ErrProtocol = errors.New("hotelcore: protocol error")
)
