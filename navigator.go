package hotelcore

import "hotelcore/internal/wire"

// NavigatorRoom describes a single room entry inside a navigator search
// result block.
type NavigatorRoom struct {
	FlatID      int32
	Name        string
	OwnerID     int32
	OwnerName   string
	DoorMode    int32
	Users       int32
	MaxUsers    int32
	Description string
	TradeMode   int32
	Score       int32
	Ranking     int32
	Category    int32
	Tags        []string

	// The following are populated only when the corresponding bitmask
	// bit is set; zero values otherwise.
	OfficialName string
	GroupID      int32
	GroupName    string
	GroupBadge   string
	PromoName    string
	PromoDesc    string
	PromoMinutes int32
}

// NavigatorBlock is one named/collapsible grouping of rooms within a
// search result (e.g. "Popular rooms", "Your favorites").
type NavigatorBlock struct {
	Code      string
	Text      string
	Action    int32
	Collapsed bool
	ViewMode  int32
	Rooms     []NavigatorRoom
}

// NavigatorResults is the parsed payload of a navigator-results frame.
type NavigatorResults struct {
	SearchCode string
	SearchText string
	Blocks     []NavigatorBlock
}

// parseNavigatorResults decodes a navigator-results body per the
// multi-level schema: a search header, then a count-prefixed sequence of
// blocks, each holding a count-prefixed sequence of rooms with a
// bitmask-conditional tail.
func parseNavigatorResults(body []byte) NavigatorResults {
	in := wire.NewInFrame(body)

	res := NavigatorResults{
		SearchCode: in.ReadString(),
		SearchText: in.ReadString(),
	}

	blockCount := int(in.ReadI32())
	for b := 0; b < blockCount; b++ {
		block := NavigatorBlock{
			Code:      in.ReadString(),
			Text:      in.ReadString(),
			Action:    in.ReadI32(),
			Collapsed: in.ReadBool(),
			ViewMode:  in.ReadI32(),
		}

		roomCount := int(in.ReadI32())
		block.Rooms = make([]NavigatorRoom, 0, roomCount)
		for r := 0; r < roomCount; r++ {
			room := NavigatorRoom{
				FlatID:      in.ReadI32(),
				Name:        in.ReadString(),
				OwnerID:     in.ReadI32(),
				OwnerName:   in.ReadString(),
				DoorMode:    in.ReadI32(),
				Users:       in.ReadI32(),
				MaxUsers:    in.ReadI32(),
				Description: in.ReadString(),
				TradeMode:   in.ReadI32(),
				Score:       in.ReadI32(),
				Ranking:     in.ReadI32(),
				Category:    in.ReadI32(),
			}

			tagCount := int(in.ReadI32())
			room.Tags = make([]string, tagCount)
			for t := 0; t < tagCount; t++ {
				room.Tags[t] = in.ReadString()
			}

			bitmask := in.ReadI32()
			if bitmask&1 != 0 {
				room.OfficialName = in.ReadString()
			}
			if bitmask&2 != 0 {
				room.GroupID = in.ReadI32()
				room.GroupName = in.ReadString()
				room.GroupBadge = in.ReadString()
			}
			if bitmask&4 != 0 {
				room.PromoName = in.ReadString()
				room.PromoDesc = in.ReadString()
				room.PromoMinutes = in.ReadI32()
			}

			block.Rooms = append(block.Rooms, room)
		}

		res.Blocks = append(res.Blocks, block)
	}

	return res
}
