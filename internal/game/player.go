package game

import (
	"fmt"
	"image/color"
	"math"
	"slices"
)

// moveFeedbackTicks is how long the move marker stays on screen.
const moveFeedbackTicks = 30

// MoveFeedback marks where the last batched move order was sent.
type MoveFeedback struct {
	At   Point
	Time int
}

// placement is the pending "place building" mode of a player.
type placement struct {
	builder EntityID
	kind    BuildingKind
}

// Player owns units and buildings, a resource ledger and a selection.
type Player struct {
	ID        int
	Name      string
	Color     color.RGBA
	Resources int

	units      []*Unit
	buildings  []*Building
	selected   []EntityRef
	controller Controller

	placement    *placement
	moveFeedback *MoveFeedback

	log   *SimLog
	clock *int
	sound Sound
}

// NewPlayer creates a player detached from any world. World.AddPlayer is the
// usual constructor.
func NewPlayer(id int, name string, c color.RGBA, resources int, ctrl Controller) *Player {
	return &Player{ID: id, Name: name, Color: c, Resources: resources, controller: ctrl, sound: NopSound{}}
}

func (p *Player) Controller() Controller      { return p.controller }
func (p *Player) SetController(c Controller)  { p.controller = c }
func (p *Player) MoveFeedback() *MoveFeedback { return p.moveFeedback }
func (p *Player) Units() []*Unit              { return slices.Clone(p.units) }
func (p *Player) Buildings() []*Building      { return slices.Clone(p.buildings) }
func (p *Player) Selected() []EntityRef       { return slices.Clone(p.selected) }
func (p *Player) ClearSelection()             { p.selected = nil }
func (p *Player) CanAfford(cost int) bool     { return cost >= 0 && p.Resources >= cost }
func (p *Player) InPlacement() bool           { return p.placement != nil }

func (p *Player) record(label, category, key, value string, num float64) {
	if p.log == nil {
		return
	}
	tick := 0
	if p.clock != nil {
		tick = *p.clock
	}
	p.log.Add(tick, label, p.Name, category, key, value, num)
}

func (p *Player) play(name string) {
	if p.sound != nil {
		p.sound.Play(name)
	}
}

// AddUnit creates a unit of the given kind at (x, y).
func (p *Player) AddUnit(kind UnitKind, x, y float64) *Unit {
	u := newUnit(p.ID, kind, x, y)
	p.units = append(p.units, u)
	return u
}

// AddBuilding creates a building at (x, y). Pre-placed buildings are built;
// construction sites go through PlaceBuildingForConstruction.
func (p *Player) AddBuilding(kind BuildingKind, x, y float64, built bool) *Building {
	b := newBuilding(p.ID, kind, x, y, built, NoEntity)
	p.buildings = append(p.buildings, b)
	return b
}

// Unit looks up an owned unit; nil if it no longer exists.
func (p *Player) Unit(id EntityID) *Unit {
	if id == NoEntity {
		return nil
	}
	for _, u := range p.units {
		if u.id == id {
			return u
		}
	}
	return nil
}

// Building looks up an owned building; nil if it no longer exists.
func (p *Player) Building(id EntityID) *Building {
	if id == NoEntity {
		return nil
	}
	for _, b := range p.buildings {
		if b.id == id {
			return b
		}
	}
	return nil
}

// Entity looks up any owned entity.
func (p *Player) Entity(id EntityID) (Entity, bool) {
	if u := p.Unit(id); u != nil {
		return u, true
	}
	if b := p.Building(id); b != nil {
		return b, true
	}
	return nil, false
}

// Entities returns units first, then buildings.
func (p *Player) Entities() []Entity {
	out := make([]Entity, 0, len(p.units)+len(p.buildings))
	for _, u := range p.units {
		out = append(out, u)
	}
	for _, b := range p.buildings {
		out = append(out, b)
	}
	return out
}

// PrimaryBase returns the first base the player owns, built or not.
func (p *Player) PrimaryBase() *Building {
	for _, b := range p.buildings {
		if b.kind == BuildingBase {
			return b
		}
	}
	return nil
}

func (p *Player) nearestBase(from Point) *Building {
	var best *Building
	bestDist := math.Inf(1)
	for _, b := range p.buildings {
		if b.kind != BuildingBase || !b.built || !b.Alive() {
			continue
		}
		if d := distToRect(from, b.Hitbox()); d < bestDist {
			best, bestDist = b, d
		}
	}
	return best
}

// --- Resource ledger ---

// Spend deducts cost, or refuses without touching the ledger.
func (p *Player) Spend(reason string, cost int) error {
	if cost < 0 {
		return fmt.Errorf("negative cost %d: %w", cost, ErrNotActionable)
	}
	if !p.CanAfford(cost) {
		p.record(reason, "economy", "unaffordable", fmt.Sprintf("need %d have %d", cost, p.Resources), float64(cost))
		return fmt.Errorf("need %d, have %d: %w", cost, p.Resources, ErrInsufficientResources)
	}
	p.Resources -= cost
	p.record(reason, "economy", "spend", fmt.Sprintf("%d → %d", cost, p.Resources), float64(cost))
	return nil
}

// Deposit adds mined resources to the ledger.
func (p *Player) Deposit(reason string, amount int) {
	if amount <= 0 {
		return
	}
	p.Resources += amount
	p.record(reason, "economy", "deposit", fmt.Sprintf("%d → %d", amount, p.Resources), float64(amount))
}

// --- Selection ---

// Select replaces the selection. References to other players' entities are
// allowed for inspection; orders only ever go to the player's own units.
func (p *Player) Select(refs ...EntityRef) {
	p.selected = slices.Clone(refs)
}

// IsSelected reports whether the entity is in the selection.
func (p *Player) IsSelected(id EntityID) bool {
	for _, r := range p.selected {
		if r.ID == id {
			return true
		}
	}
	return false
}

// selectedUnits returns the player's own selected units, in selection order.
func (p *Player) selectedUnits() []*Unit {
	var out []*Unit
	for _, r := range p.selected {
		if r.Player != p.ID {
			continue
		}
		if u := p.Unit(r.ID); u != nil {
			out = append(out, u)
		}
	}
	return out
}

// --- Construction ---

// BeginPlacement enters placement mode for kind with builder as the worker.
func (p *Player) BeginPlacement(builder EntityID, kind BuildingKind) error {
	u := p.Unit(builder)
	if u == nil {
		return ErrNotFound
	}
	if !u.tmpl.CanBuild {
		return ErrNotActionable
	}
	if !u.orderable() {
		return ErrBusy
	}
	if !p.CanAfford(kind.Template().Cost) {
		return ErrInsufficientResources
	}
	p.placement = &placement{builder: builder, kind: kind}
	return nil
}

// CancelPlacement leaves placement mode.
func (p *Player) CancelPlacement() { p.placement = nil }

// PlacementPreview returns the snapped footprint the pending placement would
// occupy with the cursor at `at`.
func (p *Player) PlacementPreview(m Map, at Point) (Rect, bool) {
	if p.placement == nil {
		return Rect{}, false
	}
	return snappedFootprint(m, p.placement.kind, at.X, at.Y), true
}

func snappedFootprint(m Map, kind BuildingKind, x, y float64) Rect {
	tx, ty := m.CoordsToTile(x, y)
	sx, sy := m.TileToCoords(tx, ty, false)
	t := kind.Template()
	return Rect{X: sx, Y: sy, W: t.SizeX, H: t.SizeY}
}

// PlaceBuildingForConstruction spends the building cost and lays down an
// unbuilt building at the tile under (x, y), occupying builder until it is
// finished or cancelled.
func (p *Player) PlaceBuildingForConstruction(w *World, builder EntityID, kind BuildingKind, x, y float64) (*Building, error) {
	u := p.Unit(builder)
	if u == nil {
		return nil, ErrNotFound
	}
	if !u.tmpl.CanBuild {
		return nil, ErrNotActionable
	}
	if !u.orderable() {
		return nil, ErrBusy
	}
	fp := snappedFootprint(w.Map, kind, x, y)
	if !AreaWalkable(w.Map, fp) {
		return nil, fmt.Errorf("%s at (%.0f,%.0f): %w", kind, fp.X, fp.Y, ErrInvalidPlacement)
	}
	// Shrink a hair so buildings may share an edge.
	if w.BuildingOverlapping(fp.Inset(-0.5)) != nil {
		return nil, fmt.Errorf("%s at (%.0f,%.0f) overlaps: %w", kind, fp.X, fp.Y, ErrInvalidPlacement)
	}
	if err := p.Spend(u.Label(), kind.Template().Cost); err != nil {
		return nil, err
	}
	b := newBuilding(p.ID, kind, fp.X, fp.Y, false, builder)
	p.buildings = append(p.buildings, b)
	u.beginBuilding(b.id)
	p.record(b.Label(), "build", "placed", fmt.Sprintf("by %s at (%.0f,%.0f)", u.Label(), fp.X, fp.Y), 0)
	return b, nil
}

// CancelBuilding removes an unbuilt building, refunds its full cost and
// frees the builder. Finished buildings cannot be cancelled.
func (p *Player) CancelBuilding(id EntityID) error {
	b := p.Building(id)
	if b == nil {
		return ErrNotFound
	}
	if b.built {
		return fmt.Errorf("%s is built: %w", b.Label(), ErrNotActionable)
	}
	p.removeBuilding(b)
	p.Resources += b.tmpl.Cost
	p.record(b.Label(), "economy", "refund", fmt.Sprintf("%d → %d", b.tmpl.Cost, p.Resources), float64(b.tmpl.Cost))
	p.record(b.Label(), "build", "cancel", b.tmpl.Name, 0)
	return nil
}

func (p *Player) removeBuilding(b *Building) {
	p.buildings = slices.DeleteFunc(p.buildings, func(x *Building) bool { return x == b })
	b.tasks.Clear()
	if u := p.Unit(b.builder); u != nil && u.building == b.id {
		u.finishBuilding()
	}
	p.pruneSelection(func(r EntityRef) bool { return r.ID == b.id })
}

func (p *Player) pruneSelection(drop func(EntityRef) bool) {
	p.selected = slices.DeleteFunc(p.selected, drop)
}

// --- Tick ---

// Tick runs one frame for the player: commands from the controller first,
// then every unit and building advances, then the dead are removed.
func (p *Player) Tick(w *World, in Input) {
	prev := make(map[EntityID]UnitState, len(p.units))
	for _, u := range p.units {
		prev[u.id] = u.state
	}

	if p.controller != nil {
		p.controller.Resolve(w, p, in)
	}
	for _, u := range p.units {
		u.Tick(w, p)
	}
	for _, b := range slices.Clone(p.buildings) {
		b.Tick(p)
	}

	for _, u := range p.units {
		if was, ok := prev[u.id]; ok && was != u.state {
			p.record(u.Label(), "state", "change", fmt.Sprintf("%s → %s", was, u.state), 0)
		}
	}
	p.Reap()

	if mf := p.moveFeedback; mf != nil {
		mf.Time--
		if mf.Time <= 0 {
			p.moveFeedback = nil
		}
	}
}

// Reap removes every unit and building whose health has reached zero.
func (p *Player) Reap() {
	var deadIDs []EntityID
	p.units = slices.DeleteFunc(p.units, func(u *Unit) bool {
		if u.Alive() {
			return false
		}
		u.clearOrders()
		u.state = UnitDead
		deadIDs = append(deadIDs, u.id)
		p.record(u.Label(), "unit", "removed", "killed", 0)
		return true
	})
	for _, b := range slices.Clone(p.buildings) {
		if b.Alive() {
			continue
		}
		p.removeBuilding(b)
		deadIDs = append(deadIDs, b.id)
		p.record(b.Label(), "building", "removed", "destroyed", 0)
	}
	if len(deadIDs) > 0 {
		p.pruneSelection(func(r EntityRef) bool { return slices.Contains(deadIDs, r.ID) })
	}
	if p.placement != nil && p.Unit(p.placement.builder) == nil {
		p.placement = nil
	}
}
