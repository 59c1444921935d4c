package hotelcore

import (
	"context"
	"strings"
	"time"

	"hotelcore/internal/wire"
)

// listen is the sole reader of the socket. It loops reading frames and
// dispatching them by id until the connection ends.
func (s *Session) listen(ctx context.Context) {
	defer close(s.listenDone)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		s.mu.Lock()
		conn := s.conn
		s.mu.Unlock()
		if conn == nil {
			return
		}
		if tc, ok := conn.(interface{ SetReadDeadline(time.Time) error }); ok {
			tc.SetReadDeadline(time.Now().Add(postHandshakeRead))
		}

		id, body, err := s.readFrame()
		if err != nil {
			s.teardown(err.Error())
			return
		}
		s.dispatch(id, body)
	}
}

func (s *Session) dispatch(id uint16, body []byte) {
	in := s.cfg.Incoming
	switch id {
	case in.Ping:
		s.send(wire.NewOutFrame(s.cfg.Outgoing.Pong))

	case in.LatencyPingResponse:
		// No local metric is specified by the protocol beyond liveness;
		// receipt alone confirms the link is up.

	case in.FloodControl:
		f := wire.NewInFrame(body)
		secs := f.ReadI32()
		s.fireMute(secs, formatMuteDuration(secs))

	case in.DisconnectReason:
		f := wire.NewInFrame(body)
		code := f.ReadI32()
		if isBanCode(code) {
			s.setState(Banned, disconnectReasonText(code))
		} else {
			s.teardown(disconnectReasonText(code))
		}

	case in.ExplicitBan:
		s.setState(Banned, "explicit ban")

	case in.Users:
		s.handleUsers(body)

	case in.UserRemove:
		f := wire.NewInFrame(body)
		idxStr := f.ReadString()
		s.usersMu.Lock()
		for k, u := range s.users {
			if u.RoomIndex == parseRoomIndex(idxStr) {
				delete(s.users, k)
			}
		}
		s.usersMu.Unlock()

	case in.UserObject:
		s.handleUserObject(body)

	case in.FlatCreated:
		// Ignored: no reply is sent, and the created room is not set as
		// the home room.

	case in.NavigatorResults:
		s.fireNavigator(parseNavigatorResults(body))

	case in.FloorHeightMap:
		s.handleFloorHeightMap(body)

	case in.HeightMap:
		s.handleHeightMap(body)

	case in.PositionUpdates:
		s.handlePositionUpdates(body)

	case in.Chat:
		s.handleChat(body)

	default:
		// Unrecognized ids are ignored; the server's schema grows over
		// time and strict parsing here would cause false disconnects.
	}
}

func parseRoomIndex(s string) int32 {
	var n int32
	neg := false
	for i, c := range s {
		if i == 0 && c == '-' {
			neg = true
			continue
		}
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int32(c-'0')
	}
	if neg {
		n = -n
	}
	return n
}

func (s *Session) handleUsers(body []byte) {
	f := wire.NewInFrame(body)
	count := int(f.ReadI32())

	var newAdmins []string
	s.usersMu.Lock()
	for i := 0; i < count; i++ {
		id := f.ReadI32()
		name := f.ReadString()
		motto := f.ReadString()
		figure := f.ReadString()
		roomIndex := f.ReadI32()
		x := f.ReadI32()
		y := f.ReadI32()
		z := f.ReadString()
		_ = f.ReadI32() // body direction, unused
		userType := f.ReadI32()

		u := &User{ID: id, Name: name, Motto: motto, Figure: figure, RoomIndex: roomIndex, X: x, Y: y, Z: z}
		if userType == 1 {
			u.Gender = f.ReadString()
			_ = f.ReadI32()       // group id, unused
			_ = f.ReadI32()       // group status, unused
			u.Group = f.ReadString() // group name
			_ = f.ReadString()    // figure-string update marker, unused
			u.Achievement = f.ReadI32()
			_ = f.ReadBool() // is moderator, unused
		}
		s.users[roomIndex] = u

		if s.cfg.AdminAutoLeave && isAdmin(s.cfg.Admins, name) {
			newAdmins = append(newAdmins, name)
		}
	}
	s.usersMu.Unlock()

	if len(newAdmins) > 0 {
		go s.QuitRoom()
	}
}

func isAdmin(admins []string, name string) bool {
	for _, a := range admins {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	return false
}

func (s *Session) handleUserObject(body []byte) {
	f := wire.NewInFrame(body)
	_ = f.ReadI32() // id
	name := f.ReadString()
	// Remaining fields (motto, figure, achievement flags, etc.) are not
	// needed by the core and are left unread; the buffer's leniency means
	// a short read here is harmless.

	s.usersMu.Lock()
	s.selfName = name
	s.usersMu.Unlock()

	if strings.HasPrefix(strings.ToLower(name), "habb") {
		s.personalizeOnce.Do(func() {
			go s.runPersonalizationFlow()
		})
	}
}

func (s *Session) handleFloorHeightMap(body []byte) {
	f := wire.NewInFrame(body)
	_ = f.ReadBool() // legacy parser flag, unused
	_ = f.ReadI32()  // wall height, unused by walkability
	mapText := f.ReadString()

	s.roomMu.Lock()
	s.roomModel.ApplyFloorHeightMap(mapText)
	buffered := s.bufferedHeights
	s.bufferedHeights = nil
	if buffered != nil {
		s.roomModel.ApplyHeightMap(buffered)
	}
	s.roomMu.Unlock()

	s.inRoomOnce.Do(func() {
		close(s.inRoomCh)
	})
	s.setState(InRoom, "")
}

func (s *Session) handleHeightMap(body []byte) {
	s.roomMu.Lock()
	defer s.roomMu.Unlock()
	if s.roomModel.IsValid() {
		s.roomModel.ApplyHeightMap(body)
		return
	}
	s.bufferedHeights = append([]byte(nil), body...)
}

func (s *Session) handlePositionUpdates(body []byte) {
	f := wire.NewInFrame(body)
	count := int(f.ReadI32())

	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	for i := 0; i < count; i++ {
		idx := f.ReadI32()
		x := f.ReadI32()
		y := f.ReadI32()
		z := f.ReadString()
		head := f.ReadI32()
		_ = f.ReadI32() // body rotation, not modeled separately from Action
		action := f.ReadString()

		if u, ok := s.users[idx]; ok {
			u.X, u.Y, u.Z = x, y, z
			u.Head = head
			u.Action = action
		}
	}
}

func (s *Session) handleChat(body []byte) {
	f := wire.NewInFrame(body)
	idx := f.ReadI32()
	msg := f.ReadString()

	s.chatMu.Lock()
	s.lastChat = &chatEvent{userIndex: idx, message: msg, atUnixMs: time.Now().UnixMilli()}
	s.chatMu.Unlock()
}
