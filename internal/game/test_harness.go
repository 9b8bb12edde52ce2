package game

import (
	"fmt"
	"image/color"
)

// TestSim is a headless world builder used by tests. Options are applied in
// ordered passes so entities can rely on the map and players already
// existing.
type TestSim struct {
	World   *World
	Players []*Player

	cfg   []Option
	rocks [][2]int
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // config and terrain
	simOptPlayer                      // players and mines
	simOptEntity                      // units and buildings
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithConfig forwards World options.
func WithConfig(opts ...Option) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg = append(ts.cfg, opts...)
	}}
}

// WithRock blocks a tile.
func WithRock(tx, ty int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.rocks = append(ts.rocks, [2]int{tx, ty})
	}}
}

// WithMine adds a mine covering r.
func WithMine(r Rect, stock int) SimOption {
	return SimOption{simOptPlayer, func(ts *TestSim) {
		ts.World.Mines.Add(r, stock)
	}}
}

// WithPlayer registers a player. A nil controller leaves the player
// command-free, which is what most tests want.
func WithPlayer(name string, ctrl Controller) SimOption {
	return SimOption{simOptPlayer, func(ts *TestSim) {
		c := color.RGBA{R: uint8(40 * len(ts.Players)), G: 0x80, B: 0x80, A: 0xFF}
		ts.Players = append(ts.Players, ts.World.AddPlayer(name, c, ctrl))
	}}
}

// WithUnit gives player (1-based) a unit.
func WithUnit(player int, kind UnitKind, x, y float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.mustPlayer(player).AddUnit(kind, x, y)
	}}
}

// WithBuilding gives player (1-based) a building.
func WithBuilding(player int, kind BuildingKind, x, y float64, built bool) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.mustPlayer(player).AddBuilding(kind, x, y, built)
	}}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Config and terrain
//  2. Build the World, then players and mines
//  3. Units and buildings
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	ts.World = NewWorld(ts.cfg...)
	if tm, ok := ts.World.Map.(*TileMap); ok {
		for _, r := range ts.rocks {
			tm.SetGround(r[0], r[1], GroundRock)
		}
	}
	for _, kind := range []simOptionKind{simOptPlayer, simOptEntity} {
		for _, o := range opts {
			if o.kind == kind {
				o.fn(ts)
			}
		}
	}
	return ts
}

func (ts *TestSim) mustPlayer(id int) *Player {
	p := ts.World.Player(id)
	if p == nil {
		panic(fmt.Sprintf("test sim: no player %d", id))
	}
	return p
}

// Player returns the 1-based player.
func (ts *TestSim) Player(id int) *Player { return ts.mustPlayer(id) }

// RunTicks advances the world n ticks with no input.
func (ts *TestSim) RunTicks(n int) { ts.World.RunTicks(n) }

// Step advances one tick with the given input.
func (ts *TestSim) Step(in Input) { ts.World.Tick(in) }

// RunUntil advances up to maxTicks, stopping early once predicate holds.
// Returns the tick at which it held, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	return ts.World.RunUntil(func(*World) bool { return predicate(ts) }, maxTicks)
}

// UnitsOf returns player id's units.
func (ts *TestSim) UnitsOf(id int) []*Unit { return ts.mustPlayer(id).Units() }
