// Package room models the walkability grid assembled from a room's two
// description frames and the background walker that moves across it.
package room

import "strings"

// Model holds the geometry derived from a floor-height-map frame and a
// height-map frame. The two frames can arrive in either order; a height-map
// payload received before the floor-height-map is buffered by the caller
// and replayed once dimensions are known (see ApplyHeightMap).
type Model struct {
	Width, Height int

	FloorMap        [][]byte
	TileHeights     [][]float64
	StackingBlocked [][]bool
	IsRoomTile      [][]bool

	DoorX, DoorY int
}

// NewModel returns an empty, zero-dimension model with the door unresolved.
func NewModel() *Model {
	return &Model{DoorX: -1, DoorY: -1}
}

// IsValid reports whether the floor map has been parsed yet.
func (m *Model) IsValid() bool {
	return m.Width > 0 && m.Height > 0
}

// ApplyFloorHeightMap parses mapText (the floor-height-map frame's text
// field, rows separated by carriage returns) into FloorMap, resets the
// numeric/flag grids to their zero values at the new dimensions, and runs
// the door-finding heuristic.
func (m *Model) ApplyFloorHeightMap(mapText string) {
	rows := strings.Split(mapText, "\r")
	m.Height = len(rows)
	if m.Height == 0 {
		m.Width = 0
		return
	}
	m.Width = len(rows[0])

	m.FloorMap = make([][]byte, m.Height)
	m.TileHeights = make([][]float64, m.Height)
	m.StackingBlocked = make([][]bool, m.Height)
	m.IsRoomTile = make([][]bool, m.Height)
	for y, row := range rows {
		m.FloorMap[y] = []byte(row)
		m.TileHeights[y] = make([]float64, m.Width)
		m.StackingBlocked[y] = make([]bool, m.Width)
		m.IsRoomTile[y] = make([]bool, m.Width)
	}

	m.findDoor()
}

// at returns the floor character at (x,y), or 'x' if out of bounds.
func (m *Model) at(x, y int) byte {
	if y < 0 || y >= m.Height || x < 0 || x >= m.Width {
		return 'x'
	}
	return m.FloorMap[y][x]
}

// findDoor scans row-major for the first non-wall tile with a wall to its
// north and west, plus either a wall to its south (door facing east) or a
// wall to its east (door facing south). A neighbor that falls outside the
// grid never counts as a wall here — there is no tile to confirm it — so
// cells in the top row or left column cannot match, and an out-of-grid
// south or east neighbor does not qualify a candidate; nothing wraps to
// the opposite edge.
func (m *Model) findDoor() {
	m.DoorX, m.DoorY = -1, -1
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if toLowerByte(m.at(x, y)) == 'x' {
				continue
			}
			north, northOK := m.wallAt(x, y-1)
			west, westOK := m.wallAt(x-1, y)
			if !northOK || !westOK || !north || !west {
				continue
			}
			if south, ok := m.wallAt(x, y+1); ok && south {
				m.DoorX, m.DoorY = x, y
				return
			}
			if east, ok := m.wallAt(x+1, y); ok && east {
				m.DoorX, m.DoorY = x, y
				return
			}
		}
	}
}

// wallAt reports whether the in-bounds tile at (x,y) is a wall. ok is false
// when (x,y) falls outside the grid, in which case the tile cannot be
// confirmed either way.
func (m *Model) wallAt(x, y int) (isWall, ok bool) {
	if y < 0 || y >= m.Height || x < 0 || x >= m.Width {
		return false, false
	}
	return toLowerByte(m.FloorMap[y][x]) == 'x', true
}

func toLowerByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}

// ApplyHeightMap parses a height-map payload: width*height pairs of
// big-endian signed 16-bit values. If payload is short of the expected
// size it is clamped rather than rejected; any tiles past the available
// data keep their zero values.
func (m *Model) ApplyHeightMap(payload []byte) {
	need := m.Width * m.Height * 2
	if len(payload) > need {
		payload = payload[:need]
	}
	i := 0
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if i+2 > len(payload) {
				return
			}
			v := int16(uint16(payload[i])<<8 | uint16(payload[i+1]))
			i += 2
			m.StackingBlocked[y][x] = v&0x4000 != 0
			m.IsRoomTile[y][x] = v&0x0200 == 0
			m.TileHeights[y][x] = float64(v&0x3FFF) / 256.0
		}
	}
}

// IsWalkable reports whether (x,y) is in bounds, not a wall tile, and not
// blocked by stacked furniture. IsRoomTile is deliberately not consulted.
func (m *Model) IsWalkable(x, y int) bool {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return false
	}
	if toLowerByte(m.FloorMap[y][x]) == 'x' {
		return false
	}
	if m.StackingBlocked[y][x] {
		return false
	}
	return true
}

// WalkableTiles returns every currently walkable (x,y) coordinate. Used by
// the room-aware random walker to pick a legal destination.
func (m *Model) WalkableTiles() [][2]int {
	var tiles [][2]int
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.IsWalkable(x, y) {
				tiles = append(tiles, [2]int{x, y})
			}
		}
	}
	return tiles
}

// TileHeight returns the absolute height at (x,y), or 0 out of bounds.
func (m *Model) TileHeight(x, y int) float64 {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return 0
	}
	return m.TileHeights[y][x]
}
