package game

import (
	"fmt"
	"image/color"
	"math/rand"
	"slices"
)

// World is the whole simulation: map, mines, players and the event log.
// Everything runs on the caller's goroutine, one Tick at a time.
type World struct {
	Map   Map
	Mines *MineField
	Log   *SimLog
	Sound Sound

	cfg     Config
	players []*Player
	tick    int
	rng     *rand.Rand
}

// NewWorld builds an empty world from the default config plus opts.
func NewWorld(opts ...Option) *World {
	cfg := DefaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	w := &World{
		Map:   cfg.Map,
		Mines: NewMineField(),
		Log:   NewSimLog(cfg.Verbose),
		Sound: cfg.Sound,
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(cfg.Seed)), // #nosec G404 -- game simulation
	}
	if w.Map == nil {
		w.Map = NewTileMap(cfg.Cols, cfg.Rows, cfg.TileSize)
	}
	if w.Sound == nil {
		w.Sound = NopSound{}
	}
	return w
}

func (w *World) Config() Config     { return w.cfg }
func (w *World) CurrentTick() int   { return w.tick }
func (w *World) Rand() *rand.Rand   { return w.rng }
func (w *World) Players() []*Player { return slices.Clone(w.players) }

// AddPlayer registers a new player with the configured starting resources.
func (w *World) AddPlayer(name string, c color.RGBA, ctrl Controller) *Player {
	p := NewPlayer(len(w.players)+1, name, c, w.cfg.StartingResources, ctrl)
	p.log = w.Log
	p.clock = &w.tick
	p.sound = w.Sound
	w.players = append(w.players, p)
	return p
}

// Player looks up a player by ID.
func (w *World) Player(id int) *Player {
	for _, p := range w.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Entity resolves a weak reference. It fails once the entity is gone.
func (w *World) Entity(ref EntityRef) (Entity, bool) {
	if !ref.Valid() {
		return nil, false
	}
	p := w.Player(ref.Player)
	if p == nil {
		return nil, false
	}
	return p.Entity(ref.ID)
}

// Tick advances the simulation one frame. Players tick in registration
// order; then every player is reaped so nothing dead survives into the next
// tick, and selections drop references that no longer resolve.
func (w *World) Tick(in Input) {
	w.tick++
	for _, p := range w.players {
		p.Tick(w, in)
	}
	for _, p := range w.players {
		p.Reap()
	}
	for _, p := range w.players {
		p.pruneSelection(func(r EntityRef) bool {
			_, ok := w.Entity(r)
			return !ok
		})
	}
	if w.Log.verbose {
		for _, p := range w.players {
			for _, u := range p.units {
				w.Log.AddVerbose(w.tick, u.Label(), p.Name, "move", "position",
					fmt.Sprintf("(%.1f,%.1f)", u.x, u.y), 0)
			}
		}
	}
}

// RunTicks advances n frames with no input.
func (w *World) RunTicks(n int) {
	for range n {
		w.Tick(Input{})
	}
}

// RunUntil advances up to maxTicks, stopping early once predicate holds.
// Returns the tick at which it held, or -1.
func (w *World) RunUntil(predicate func(*World) bool, maxTicks int) int {
	for range maxTicks {
		w.Tick(Input{})
		if predicate(w) {
			return w.tick
		}
	}
	return -1
}
