package game

import (
	"container/heap"
	"math"
)

// --- A* pathfinding over the tile grid ---

type pathNode struct {
	tx, ty int
	g, h   float64
	parent *pathNode
	index  int // heap index
}

type openList []*pathNode

func (ol openList) Len() int           { return len(ol) }
func (ol openList) Less(i, j int) bool { return (ol[i].g + ol[i].h) < (ol[j].g + ol[j].h) }
func (ol openList) Swap(i, j int)      { ol[i], ol[j] = ol[j], ol[i]; ol[i].index = i; ol[j].index = j }
func (ol *openList) Push(x any)        { n := x.(*pathNode); n.index = len(*ol); *ol = append(*ol, n) }
func (ol *openList) Pop() any {
	old := *ol
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*ol = old[:len(old)-1]
	return n
}

var dirs = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// FindPath returns world-coordinate waypoints from `from` to `to`. Intermediate
// waypoints are tile centres; the last one is `to` itself. Returns nil when
// either end is on an impassable or out-of-bounds tile, or no route exists.
func (tm *TileMap) FindPath(from, to Point) []Point {
	stx, sty := tm.CoordsToTile(from.X, from.Y)
	gtx, gty := tm.CoordsToTile(to.X, to.Y)

	if !tm.Walkable(stx, sty) || !tm.Walkable(gtx, gty) {
		return nil
	}
	if stx == gtx && sty == gty {
		return []Point{to}
	}

	key := func(tx, ty int) int { return ty*tm.cols + tx }
	heuristic := func(ax, ay, bx, by int) float64 {
		dx := math.Abs(float64(ax - bx))
		dy := math.Abs(float64(ay - by))
		return dx + dy + (math.Sqrt2-2)*math.Min(dx, dy)
	}

	start := &pathNode{tx: stx, ty: sty, h: heuristic(stx, sty, gtx, gty)}
	ol := &openList{start}
	heap.Init(ol)

	closed := make(map[int]bool)
	best := map[int]*pathNode{key(stx, sty): start}

	for ol.Len() > 0 {
		cur := heap.Pop(ol).(*pathNode)
		if cur.tx == gtx && cur.ty == gty {
			return tm.buildPath(cur, to)
		}
		k := key(cur.tx, cur.ty)
		if closed[k] {
			continue
		}
		closed[k] = true

		for _, d := range dirs {
			nx, ny := cur.tx+d[0], cur.ty+d[1]
			if !tm.Walkable(nx, ny) {
				continue
			}
			// No diagonal corner-cutting past impassable tiles.
			if d[0] != 0 && d[1] != 0 {
				if !tm.Walkable(cur.tx+d[0], cur.ty) || !tm.Walkable(cur.tx, cur.ty+d[1]) {
					continue
				}
			}
			nk := key(nx, ny)
			if closed[nk] {
				continue
			}
			cost := 1.0
			if d[0] != 0 && d[1] != 0 {
				cost = math.Sqrt2
			}
			g := cur.g + cost
			if prev, ok := best[nk]; ok && g >= prev.g {
				continue
			}
			node := &pathNode{tx: nx, ty: ny, g: g, h: heuristic(nx, ny, gtx, gty), parent: cur}
			best[nk] = node
			heap.Push(ol, node)
		}
	}
	return nil
}

// buildPath walks parents back to the start. The start tile is dropped (the
// unit is already on it) and the goal tile centre is replaced by the exact goal.
func (tm *TileMap) buildPath(end *pathNode, goal Point) []Point {
	var tiles [][2]int
	for n := end; n.parent != nil; n = n.parent {
		tiles = append(tiles, [2]int{n.tx, n.ty})
	}
	path := make([]Point, len(tiles))
	for i, t := range tiles {
		x, y := tm.TileToCoords(t[0], t[1], true)
		path[len(tiles)-1-i] = Point{X: x, Y: y}
	}
	path[len(path)-1] = goal
	return path
}
