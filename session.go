// Package hotelcore implements a client-side networking core for a
// proprietary game-server protocol: an encrypted, authenticated session
// with a framed packet bus, a room-geometry model, and a small high-level
// action surface on top.
package hotelcore

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"sync"
	"time"

	"hotelcore/internal/cipher"
	"hotelcore/internal/room"
	"hotelcore/internal/wire"
)

const (
	connectTimeout    = 30 * time.Second
	postHandshakeRead = 60 * time.Second
	authWaitDeadline  = 15 * time.Second
	keepaliveInterval = 20 * time.Second
)

// Session owns one connection to the game server from plaintext handshake
// through authenticated, in-room operation. The zero value is not usable;
// construct with NewSession.
type Session struct {
	Observers

	cfg Config

	mu               sync.Mutex
	state            State
	conn             net.Conn
	incCipher        *cipher.ArcFour
	disconnectReason string

	sendMu    sync.Mutex
	outCipher *cipher.ArcFour

	usersMu  sync.RWMutex
	users    map[int32]*User
	selfName string

	roomMu          sync.Mutex
	roomModel       *room.Model
	bufferedHeights []byte

	inRoomOnce sync.Once
	inRoomCh   chan struct{}

	chatMu   sync.Mutex
	lastChat *chatEvent

	personalizeOnce sync.Once

	walker *room.Walker

	cancel     context.CancelFunc
	listenDone chan struct{}

	logger *log.Logger
}

// NewSession constructs a session from cfg. The session does not connect
// until Connect is called.
func NewSession(cfg Config) *Session {
	return &Session{
		cfg:       cfg,
		state:     Disconnected,
		users:     make(map[int32]*User),
		roomModel: room.NewModel(),
		inRoomCh:  make(chan struct{}),
		logger:    log.New(io.Discard, "", 0),
	}
}

// SetLogger wires a destination for the session's internal diagnostic
// logging. Passing nil restores the discard-by-default logger.
func (s *Session) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	s.logger = l
}

func (s *Session) logf(format string, args ...any) {
	s.logger.Printf("[hotelcore] "+format, args...)
}

// State returns the session's current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) setState(st State, reason string) {
	s.mu.Lock()
	s.state = st
	if reason != "" {
		s.disconnectReason = reason
	}
	s.mu.Unlock()
	s.fireStatus(st, reason)
}

// InRoomWait blocks until the session enters a room or the deadline
// passes, returning whether the in-room state was reached.
func (s *Session) InRoomWait(timeout time.Duration) bool {
	select {
	case <-s.inRoomCh:
		return true
	case <-time.After(timeout):
		return false
	}
}

// SelfName returns the display name the session observed for itself in its
// own user-object frame, or "" before that frame has arrived.
func (s *Session) SelfName() string {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()
	return s.selfName
}

// LastChat returns the most recently recorded chat tuple and whether one
// has ever been recorded.
func (s *Session) LastChat() (userIndex int32, message string, atUnixMs int64, ok bool) {
	s.chatMu.Lock()
	defer s.chatMu.Unlock()
	if s.lastChat == nil {
		return 0, "", 0, false
	}
	return s.lastChat.userIndex, s.lastChat.message, s.lastChat.atUnixMs, true
}

// Connect dials the game server, drives the handshake, authenticates with
// token, and — on success — starts the listener and keepalive tasks.
func (s *Session) Connect(ctx context.Context, token string) error {
	s.setState(Connecting, "")

	addr, err := normalizeServerAddr(fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnect, err)
	}

	dialCtx, dialCancel := context.WithTimeout(ctx, connectTimeout)
	defer dialCancel()
	conn, err := dialGameServer(dialCtx, s.cfg, addr)
	if err != nil {
		s.setState(Disconnected, err.Error())
		return err
	}

	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()

	s.setState(PlaintextHandshake, "")

	if err := s.handshake(token); err != nil {
		s.teardown(err.Error())
		return err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.listenDone = make(chan struct{})

	go s.listen(runCtx)
	go s.keepaliveLoop(runCtx)

	return nil
}

// Disconnect idempotently tears the session down: closes the socket and
// stops the listener and keepalive tasks. Safe to call multiple times and
// from any goroutine.
func (s *Session) Disconnect() {
	s.teardown("")
}

func (s *Session) teardown(reason string) {
	s.mu.Lock()
	conn := s.conn
	s.conn = nil
	already := s.state == Disconnected || s.state == Banned
	s.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
	if s.cancel != nil {
		s.cancel()
	}
	if s.walker != nil {
		s.walker.Stop()
	}
	if !already {
		s.setState(Disconnected, reason)
	}
}

// send serializes bytes onto the socket, XORing through the outgoing
// cipher first if one is installed. A write failure tears the session
// down; the listener will observe end-of-stream and exit on its own.
func (s *Session) send(frame *wire.OutFrame) error {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return fmt.Errorf("%w: not connected", ErrSocketIO)
	}

	raw := frame.Bytes()
	if s.outCipher != nil {
		s.outCipher.Encrypt(raw, raw)
	}

	if _, err := conn.Write(raw); err != nil {
		go s.teardown(err.Error())
		return fmt.Errorf("%w: %v", ErrSocketIO, err)
	}
	return nil
}

// sendPlaintext writes frame without touching the outgoing cipher,
// used only during the pre-encryption handshake steps.
func (s *Session) sendPlaintext(frame *wire.OutFrame) error {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return fmt.Errorf("%w: not connected", ErrSocketIO)
	}
	if _, err := conn.Write(frame.Bytes()); err != nil {
		return fmt.Errorf("%w: %v", ErrSocketIO, err)
	}
	return nil
}

// readFrame reads one length-prefixed frame from the socket, decrypting
// through the incoming cipher if one is installed, and returns its id and
// body (the bytes following the two-byte id field).
func (s *Session) readFrame() (id uint16, body []byte, err error) {
	s.mu.Lock()
	conn := s.conn
	inc := s.incCipher
	s.mu.Unlock()
	if conn == nil {
		return 0, nil, fmt.Errorf("%w: not connected", ErrSocketIO)
	}

	header := make([]byte, 4)
	if _, err := io.ReadFull(conn, header); err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrSocketIO, err)
	}
	if inc != nil {
		inc.Decrypt(header, header)
	}
	length := int(header[0])<<24 | int(header[1])<<16 | int(header[2])<<8 | int(header[3])
	if length < 2 {
		return 0, nil, fmt.Errorf("%w: frame length %d too short", ErrProtocol, length)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(conn, payload); err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrSocketIO, err)
	}
	if inc != nil {
		inc.Decrypt(payload, payload)
	}

	id = uint16(payload[0])<<8 | uint16(payload[1])
	return id, payload[2:], nil
}
