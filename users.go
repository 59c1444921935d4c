package hotelcore

// User is a single room participant as tracked in the per-room user cache.
// It is created by a users-list frame, mutated by position-update frames,
// and removed on a user-remove frame. The cache is not cleared when the
// session changes rooms.
type User struct {
	ID          int32
	Name        string
	Motto       string
	Figure      string
	RoomIndex   int32
	X, Y        int32
	Z           string
	Head        int32
	Action      string
	Gender      string
	Group       string
	Achievement int32
}

// chatEvent is the last-chat tuple external pollers read via LastChat.
type chatEvent struct {
	userIndex int32
	message   string
	atUnixMs  int64
}
