package hotelcore

import (
	"testing"

	"hotelcore/internal/wire"
)

func buildNavigatorBody() []byte {
	f := wire.NewOutFrame(0)
	f.WriteString("official").WriteString("pool")
	f.WriteI32(1) // block count

	f.WriteString("popular").WriteString("Popular rooms").WriteI32(0).WriteBool(false).WriteI32(1)
	f.WriteI32(1) // room count

	f.WriteI32(42).WriteString("Chill Lounge").WriteI32(7).WriteString("owner7")
	f.WriteI32(0).WriteI32(3).WriteI32(25).WriteString("a quiet spot")
	f.WriteI32(0).WriteI32(100).WriteI32(5).WriteI32(1)
	f.WriteI32(2) // tag count
	f.WriteString("chill").WriteString("music")
	f.WriteI32(1 | 2 | 4) // bitmask: official + group + promo

	f.WriteString("Official Chill Lounge")
	f.WriteI32(9).WriteString("Chill Fans").WriteString("badge.png")
	f.WriteString("Happy Hour").WriteString("double points").WriteI32(30)

	raw := f.Bytes()
	return raw[6:] // strip length prefix and the synthetic id field
}

func TestParseNavigatorResults(t *testing.T) {
	got := parseNavigatorResults(buildNavigatorBody())

	if got.SearchCode != "official" || got.SearchText != "pool" {
		t.Fatalf("header = %+v", got)
	}
	if len(got.Blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(got.Blocks))
	}
	block := got.Blocks[0]
	if block.Code != "popular" || len(block.Rooms) != 1 {
		t.Fatalf("block = %+v", block)
	}
	room := block.Rooms[0]
	if room.FlatID != 42 || room.Name != "Chill Lounge" {
		t.Fatalf("room = %+v", room)
	}
	if len(room.Tags) != 2 || room.Tags[0] != "chill" {
		t.Fatalf("tags = %v", room.Tags)
	}
	if room.OfficialName != "Official Chill Lounge" {
		t.Fatalf("official name = %q", room.OfficialName)
	}
	if room.GroupID != 9 || room.GroupName != "Chill Fans" {
		t.Fatalf("group fields = %+v", room)
	}
	if room.PromoName != "Happy Hour" || room.PromoMinutes != 30 {
		t.Fatalf("promo fields = %+v", room)
	}
}
