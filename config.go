package hotelcore

// OutgoingIDs is the table of packet identifiers this session writes onto
// the wire. The caller populates it; the core never discovers identifiers
// on its own.
type OutgoingIDs struct {
	ClientHello        uint16
	DHInit             uint16
	DHComplete         uint16
	VersionCheck       uint16
	UniqueID           uint16
	SSOTicket          uint16
	InfoRetrieve       uint16
	Pong               uint16
	LatencyPingRequest uint16

	JoinRoom        uint16
	MoveAvatar      uint16
	Shout           uint16
	Whisper         uint16
	QuitRoom        uint16
	SearchNavigator uint16
	UpdateFigure    uint16
	ChangeName      uint16
	ChangeMotto     uint16
	SelectInitRoom  uint16
	OpenRewards     uint16
	ClaimRewards    uint16
	PurchaseItem    uint16
	ActivateEffect  uint16
	SelectEffect    uint16
	RequestFriend   uint16
}

// IncomingIDs is the table of packet identifiers the dispatcher recognizes.
// ExplicitBan and DisconnectReason default to the fixed values the protocol
// has used historically (1510 and 4000); every other field must be
// supplied by the caller.
type IncomingIDs struct {
	ServerDHInit        uint16
	ServerDHComplete    uint16
	AuthenticationOK    uint16
	RequestMachineID    uint16
	Ping                uint16
	LatencyPingResponse uint16
	FloodControl        uint16
	Users               uint16
	UserRemove          uint16
	FloorHeightMap      uint16
	HeightMap           uint16
	RoomEntryTile       uint16
	NavigatorResults    uint16
	FlatCreated         uint16
	UserObject          uint16
	NoobnessLevel       uint16
	ExplicitBan         uint16
	DisconnectReason    uint16
	PositionUpdates     uint16
	Chat                uint16
}

// Identity carries the version-check strings and numbers the server
// expects during the handshake's login triad.
type Identity struct {
	ReleaseVersion       string
	ClientType           string
	PlatformID           int32
	ClientVersion        int32
	ExternalVariablesURL string
	PlatformString       string
	DeviceFingerprint    string
}

// Appearance is a single figure string paired with the gender it applies
// to, used by the first-login personalization flow.
type Appearance struct {
	Gender string
	Figure string
}

// Config is the immutable record a caller constructs once and passes to
// NewSession. The core never loads or persists configuration itself.
type Config struct {
	Host string
	Port int

	Identity Identity

	RSAModulusHex  string
	RSAExponentHex string

	Outgoing OutgoingIDs
	Incoming IncomingIDs

	// Admins is matched case-insensitively against room user names; used
	// by the users-list handler's auto-leave behavior.
	Admins []string

	// Appearances supplies the personalization flow's per-gender figure
	// choices. The flow picks one of the listed genders uniformly, then a
	// figure of that gender uniformly. With no entries it skips the
	// appearance update and still sends the name change and starter room.
	Appearances []Appearance

	// ProxyAddr, if non-empty, is a SOCKS5 proxy string of the form
	// host:port or host:port:user:pass. DNS is resolved through the
	// proxy when set.
	ProxyAddr string

	// AdminAutoLeave, when true, schedules a one-shot quit-room whenever
	// a users-list frame introduces an entry matching Admins.
	AdminAutoLeave bool

	// RandomWalkRoomAware selects between the room-aware and blind
	// random-walk modes when StartRandomWalk is called.
	RandomWalkRoomAware bool
}

// Default returns a structurally valid, empty configuration. It is not
// connectable as-is — Host, RSA parameters, and the packet id tables must
// still be filled in — but it is a safe starting point for tests.
func Default() Config {
	return Config{
		Port: 30000,
		Incoming: IncomingIDs{
			ExplicitBan:      1510,
			DisconnectReason: 4000,
		},
	}
}
