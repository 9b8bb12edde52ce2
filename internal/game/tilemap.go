package game

import "math"

// DefaultTileSize is the edge length of one map tile in world pixels.
const DefaultTileSize = 80

// GroundType identifies the surface of a tile.
type GroundType uint8

const (
	GroundGrass GroundType = iota // default open ground
	GroundDirt                    // worn paths, walkable
	GroundRock                    // cliffs and boulders, impassable
	GroundWater                   // lakes, impassable
	groundTypeCount               // sentinel
)

func (g GroundType) String() string {
	switch g {
	case GroundGrass:
		return "grass"
	case GroundDirt:
		return "dirt"
	case GroundRock:
		return "rock"
	case GroundWater:
		return "water"
	default:
		return "unknown"
	}
}

// Passable reports whether units can walk over the ground type.
func (g GroundType) Passable() bool {
	return g == GroundGrass || g == GroundDirt
}

// Map is the tile-grid contract the simulation consults for coordinate
// snapping and reachability. It is never owned by a player.
type Map interface {
	CoordsToTile(x, y float64) (int, int)
	TileToCoords(tx, ty int, centered bool) (float64, float64)
	TileSize() float64
	Bounds() Rect
	Walkable(tx, ty int) bool
	// FindPath returns waypoints from `from` to `to`, ending exactly at `to`.
	// A nil result means the destination cannot be reached.
	FindPath(from, to Point) []Point
}

// TileMap is a fixed grid of ground tiles with A* pathfinding.
type TileMap struct {
	cols     int
	rows     int
	tileSize float64
	ground   []GroundType
}

// NewTileMap creates a cols×rows map of open grass.
func NewTileMap(cols, rows int, tileSize float64) *TileMap {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	return &TileMap{
		cols:     cols,
		rows:     rows,
		tileSize: tileSize,
		ground:   make([]GroundType, cols*rows),
	}
}

func (tm *TileMap) Cols() int { return tm.cols }
func (tm *TileMap) Rows() int { return tm.rows }

// SetGround changes the ground of one tile. Out-of-range tiles are ignored.
func (tm *TileMap) SetGround(tx, ty int, g GroundType) {
	if !tm.inBounds(tx, ty) || g >= groundTypeCount {
		return
	}
	tm.ground[ty*tm.cols+tx] = g
}

// Ground returns the ground type at a tile; out-of-range tiles read as rock.
func (tm *TileMap) Ground(tx, ty int) GroundType {
	if !tm.inBounds(tx, ty) {
		return GroundRock
	}
	return tm.ground[ty*tm.cols+tx]
}

func (tm *TileMap) inBounds(tx, ty int) bool {
	return tx >= 0 && ty >= 0 && tx < tm.cols && ty < tm.rows
}

// Walkable reports whether a unit may stand on the tile.
func (tm *TileMap) Walkable(tx, ty int) bool {
	return tm.Ground(tx, ty).Passable()
}

// CoordsToTile converts world coordinates to the tile containing them.
func (tm *TileMap) CoordsToTile(x, y float64) (int, int) {
	return int(math.Floor(x / tm.tileSize)), int(math.Floor(y / tm.tileSize))
}

// TileToCoords converts a tile to world coordinates: its top-left corner, or
// its centre when centered is true.
func (tm *TileMap) TileToCoords(tx, ty int, centered bool) (float64, float64) {
	x := float64(tx) * tm.tileSize
	y := float64(ty) * tm.tileSize
	if centered {
		x += tm.tileSize / 2
		y += tm.tileSize / 2
	}
	return x, y
}

func (tm *TileMap) TileSize() float64 { return tm.tileSize }

// Bounds returns the playable area in world coordinates.
func (tm *TileMap) Bounds() Rect {
	return Rect{W: float64(tm.cols) * tm.tileSize, H: float64(tm.rows) * tm.tileSize}
}

// AreaWalkable reports whether every tile under r is walkable.
func AreaWalkable(m Map, r Rect) bool {
	r = r.Normalize()
	if !rectInside(m.Bounds(), r) {
		return false
	}
	tx0, ty0 := m.CoordsToTile(r.X, r.Y)
	// Pull the far edge in slightly so a footprint ending on a tile line does
	// not spill into the next tile.
	tx1, ty1 := m.CoordsToTile(r.X+r.W-0.001, r.Y+r.H-0.001)
	for ty := ty0; ty <= ty1; ty++ {
		for tx := tx0; tx <= tx1; tx++ {
			if !m.Walkable(tx, ty) {
				return false
			}
		}
	}
	return true
}

func rectInside(outer, inner Rect) bool {
	return inner.X >= outer.X && inner.Y >= outer.Y &&
		inner.X+inner.W <= outer.X+outer.W && inner.Y+inner.H <= outer.Y+outer.H
}
