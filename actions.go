package hotelcore

import (
	"math/rand"
	"strings"
	"time"

	"hotelcore/internal/room"
	"hotelcore/internal/wire"
)

// JoinRoom sends a join-room request for flatID.
func (s *Session) JoinRoom(flatID int32) error {
	return s.send(wire.NewOutFrame(s.cfg.Outgoing.JoinRoom).WriteI32(flatID))
}

// QuitRoom leaves the current room.
func (s *Session) QuitRoom() error {
	return s.send(wire.NewOutFrame(s.cfg.Outgoing.QuitRoom))
}

// Walk sends a move-avatar request to (x,y).
func (s *Session) Walk(x, y int32) error {
	return s.send(wire.NewOutFrame(s.cfg.Outgoing.MoveAvatar).WriteI32(x).WriteI32(y))
}

// Shout sends a public chat message. style selects the bubble style; pass
// -1 to pick a uniformly random style in [0,30]. Messages that do not
// already start with ':' or '/' are wrapped with a random 4-uppercase-
// letter prefix/suffix pair, a spam-dodging transformation the server
// expects.
func (s *Session) Shout(message string, style int32) error {
	if style < 0 {
		style = int32(rand.Intn(31))
	}
	wrapped := wrapAntiSpam(message)
	return s.send(wire.NewOutFrame(s.cfg.Outgoing.Shout).WriteString(wrapped).WriteI32(style))
}

// Whisper sends a private chat message to roomIndex.
func (s *Session) Whisper(roomIndex int32, message string) error {
	return s.send(wire.NewOutFrame(s.cfg.Outgoing.Whisper).WriteI32(roomIndex).WriteString(message))
}

func wrapAntiSpam(message string) string {
	if strings.HasPrefix(message, ":") || strings.HasPrefix(message, "/") {
		return message
	}
	return randomTag() + " " + message + " " + randomTag()
}

func randomTag() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	b := make([]byte, 4)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

// SearchNavigator issues a navigator search; results arrive asynchronously
// via the navigator-results observer.
func (s *Session) SearchNavigator(searchCode string) error {
	return s.send(wire.NewOutFrame(s.cfg.Outgoing.SearchNavigator).WriteString(searchCode))
}

// CopyUserLooks copies the figure, gender, and motto of the room user at
// roomIndex onto the session's own avatar. It is a pure read of the
// cached room user map followed by two composed sends.
func (s *Session) CopyUserLooks(roomIndex int32) error {
	s.usersMu.RLock()
	u, ok := s.users[roomIndex]
	s.usersMu.RUnlock()
	if !ok {
		return nil
	}
	if err := s.send(wire.NewOutFrame(s.cfg.Outgoing.UpdateFigure).
		WriteString(u.Gender).WriteString(u.Figure)); err != nil {
		return err
	}
	return s.send(wire.NewOutFrame(s.cfg.Outgoing.ChangeMotto).WriteString(u.Motto))
}

// ClaimRewards opens the rewards window, then — after the one-second
// ordering delay the server requires between the two — sends the claim.
// Because only the send mutex, not a queue, serializes socket writes,
// callers that need two sends strictly ordered with a gap must sequence
// them explicitly, exactly as this method does.
func (s *Session) ClaimRewards() error {
	if err := s.send(wire.NewOutFrame(s.cfg.Outgoing.OpenRewards)); err != nil {
		return err
	}
	time.Sleep(1 * time.Second)
	return s.send(wire.NewOutFrame(s.cfg.Outgoing.ClaimRewards))
}

// PurchaseItem sends a catalog purchase request for a page/item/extra
// triple.
func (s *Session) PurchaseItem(pageID, itemID, extraParam int32) error {
	return s.send(wire.NewOutFrame(s.cfg.Outgoing.PurchaseItem).
		WriteI32(pageID).WriteI32(itemID).WriteI32(extraParam))
}

// EnableEffect activates effectID, then, after a half-second delay for the
// server to register the activation, selects it as the active effect.
func (s *Session) EnableEffect(effectID int32) error {
	if err := s.send(wire.NewOutFrame(s.cfg.Outgoing.ActivateEffect).WriteI32(effectID)); err != nil {
		return err
	}
	time.Sleep(500 * time.Millisecond)
	return s.send(wire.NewOutFrame(s.cfg.Outgoing.SelectEffect).WriteI32(effectID))
}

// RequestFriend sends a friend request to userID.
func (s *Session) RequestFriend(userID int32) error {
	return s.send(wire.NewOutFrame(s.cfg.Outgoing.RequestFriend).WriteI32(userID))
}

// Users returns a snapshot of the current room's user cache, keyed by
// room-local index.
func (s *Session) Users() map[int32]User {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()
	out := make(map[int32]User, len(s.users))
	for k, v := range s.users {
		out[k] = *v
	}
	return out
}

// RoomModel returns the session's current room geometry. Callers should
// treat the returned pointer as read-only; the dispatcher continues to
// mutate it under its own lock.
func (s *Session) RoomModel() *room.Model {
	s.roomMu.Lock()
	defer s.roomMu.Unlock()
	return s.roomModel
}

// StartRandomWalk begins a background random walk at the given interval,
// using room-aware or blind mode per cfg.RandomWalkRoomAware. Calling it
// while a walk is already running is a no-op.
func (s *Session) StartRandomWalk(interval time.Duration) {
	if s.walker != nil && s.walker.Running() {
		return
	}
	s.walker = room.NewWalker(s.roomModel, func(x, y int) {
		s.Walk(int32(x), int32(y))
	}, interval, s.cfg.RandomWalkRoomAware)
	s.walker.Start(func() bool { return s.State() == Disconnected || s.State() == Banned })
}

// StopRandomWalk cancels any running random walk; safe to call even if
// none is running.
func (s *Session) StopRandomWalk() {
	if s.walker != nil {
		s.walker.Stop()
	}
}
