package game

import (
	"fmt"
	"math"
)

const (
	mineTicks   = 60 // ticks spent extracting one load
	repathTicks = 15 // ticks between re-paths while chasing a target
)

// UnitState represents the behavioural state of a unit.
type UnitState int

const (
	UnitIdle          UnitState = iota // no orders
	UnitMoving                         // following a path
	UnitMining                         // walking to or extracting from a mine
	UnitReturning                      // carrying a load back to a base
	UnitAttacking                      // chasing or hitting a target
	UnitBuildBuilding                  // occupied constructing a building
	UnitDead                           // terminal; removed at the end of the tick
)

func (s UnitState) String() string {
	switch s {
	case UnitIdle:
		return "idle"
	case UnitMoving:
		return "moving"
	case UnitMining:
		return "mining"
	case UnitReturning:
		return "returning"
	case UnitAttacking:
		return "attacking"
	case UnitBuildBuilding:
		return "building"
	case UnitDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Unit is a mobile worker or combatant owned by exactly one player.
type Unit struct {
	id    EntityID
	owner int
	kind  UnitKind
	tmpl  UnitTemplate

	x, y   float64
	health int
	state  UnitState

	// Navigation
	path      []Point
	pathIndex int

	// Orders. All references are weak and re-resolved every tick.
	target     EntityRef
	mine       int
	returnBase EntityID
	building   EntityID

	mineTimer   int
	carrying    int
	cooldown    int
	repathIn    int
	attackFlash int
}

func newUnit(owner int, kind UnitKind, x, y float64) *Unit {
	t := kind.Template()
	return &Unit{
		id:     newEntityID(),
		owner:  owner,
		kind:   kind,
		tmpl:   t,
		x:      x,
		y:      y,
		health: t.Health,
		state:  UnitIdle,
	}
}

func (u *Unit) ID() EntityID             { return u.id }
func (u *Unit) Owner() int               { return u.owner }
func (u *Unit) Ref() EntityRef           { return EntityRef{Player: u.owner, ID: u.id} }
func (u *Unit) Kind() EntityKind         { return KindUnit }
func (u *Unit) UnitKind() UnitKind       { return u.kind }
func (u *Unit) Name() string             { return u.tmpl.Name }
func (u *Unit) Template() UnitTemplate   { return u.tmpl }
func (u *Unit) Health() int              { return u.health }
func (u *Unit) Alive() bool              { return u.health > 0 }
func (u *Unit) State() UnitState         { return u.state }
func (u *Unit) Position() Point          { return Point{X: u.x, Y: u.y} }
func (u *Unit) CanMine() bool            { return u.tmpl.CanMine }
func (u *Unit) CanBuild() bool           { return u.tmpl.CanBuild }
func (u *Unit) Carrying() int            { return u.carrying }
func (u *Unit) CarryingResource() bool   { return u.carrying > 0 }
func (u *Unit) Target() EntityRef        { return u.target }
func (u *Unit) MineID() int              { return u.mine }
func (u *Unit) BuildingID() EntityID     { return u.building }
func (u *Unit) Flashing() bool           { return u.attackFlash > 0 }
func (u *Unit) Label() string            { return fmt.Sprintf("%s-%s", u.tmpl.Name, u.id.String()[:4]) }
func (u *Unit) Path() []Point            { return append([]Point(nil), u.path[u.pathIndex:]...) }
func (u *Unit) SetPosition(x, y float64) { u.x, u.y = x, y }

// Hitbox is a small square around the unit's position.
func (u *Unit) Hitbox() Rect {
	r := u.tmpl.Radius
	return Rect{X: u.x - r, Y: u.y - r, W: 2 * r, H: 2 * r}
}

// TakeDamage lowers health, clamped at zero.
func (u *Unit) TakeDamage(amount int) {
	if amount <= 0 {
		return
	}
	u.health = max(u.health-amount, 0)
}

// Attacked starts the hit flash.
func (u *Unit) Attacked() { u.attackFlash = attackFlashTicks }

// orderable reports whether the unit accepts move/mine/attack orders.
func (u *Unit) orderable() bool {
	return u.state != UnitBuildBuilding && u.state != UnitDead && u.Alive()
}

func (u *Unit) clearOrders() {
	u.path = nil
	u.pathIndex = 0
	u.target = EntityRef{}
	u.mine = 0
	u.mineTimer = 0
	u.returnBase = NoEntity
}

func (u *Unit) idle() {
	u.clearOrders()
	u.state = UnitIdle
}

func (u *Unit) setPath(path []Point) {
	u.path = path
	u.pathIndex = 0
}

func (u *Unit) inReach(r Rect) bool {
	return distToRect(u.Position(), r) <= u.tmpl.Radius
}

// SetPath orders the unit to walk to dest. On failure nothing changes.
func (u *Unit) SetPath(dest Point, m Map) error {
	if !u.orderable() {
		return ErrBusy
	}
	path := m.FindPath(u.Position(), dest)
	if path == nil {
		return fmt.Errorf("move to (%.0f,%.0f): %w", dest.X, dest.Y, ErrUnreachable)
	}
	u.clearOrders()
	u.setPath(path)
	u.state = UnitMoving
	return nil
}

// SetMining sends the unit to extract from mine. Units that cannot mine, or
// already carry a load, are left untouched.
func (u *Unit) SetMining(mine *Mine, m Map) error {
	if !u.tmpl.CanMine {
		return ErrCannotMine
	}
	if u.carrying > 0 {
		return fmt.Errorf("already carrying %d: %w", u.carrying, ErrCannotMine)
	}
	if !u.orderable() {
		return ErrBusy
	}
	if mine == nil || mine.Depleted() {
		return ErrInvalidTarget
	}
	var path []Point
	if !u.inReach(mine.Rect) {
		path = m.FindPath(u.Position(), mine.Rect.Center())
		if path == nil {
			return fmt.Errorf("mine %d: %w", mine.ID, ErrUnreachable)
		}
	}
	u.clearOrders()
	u.setPath(path)
	u.mine = mine.ID
	u.mineTimer = mineTicks
	u.state = UnitMining
	return nil
}

// ReturnResource sends a loaded unit to base; the load is deposited into p
// on arrival, or at once if the base is already in reach.
func (u *Unit) ReturnResource(p *Player, m Map, base *Building) error {
	if u.carrying <= 0 {
		return ErrNotCarrying
	}
	if !u.orderable() {
		return ErrBusy
	}
	if p == nil || u.owner != p.ID {
		return ErrInvalidTarget
	}
	if base == nil || base.Owner() != p.ID || !base.Alive() || !base.Built() || base.BuildingKind() != BuildingBase {
		return ErrInvalidTarget
	}
	if u.inReach(base.Hitbox()) {
		u.deposit(p)
		return nil
	}
	path := m.FindPath(u.Position(), base.Hitbox().Center())
	if path == nil {
		return fmt.Errorf("base %s: %w", base.Label(), ErrUnreachable)
	}
	u.clearOrders()
	u.setPath(path)
	u.returnBase = base.ID()
	u.state = UnitReturning
	return nil
}

func (u *Unit) deposit(p *Player) {
	p.Deposit(u.Label(), u.carrying)
	u.carrying = 0
	u.idle()
}

// SetTarget orders an attack on an entity of another player.
func (u *Unit) SetTarget(target Entity, m Map) error {
	if !u.orderable() {
		return ErrBusy
	}
	if target == nil || !target.Alive() || target.Owner() == u.owner {
		return ErrInvalidTarget
	}
	var path []Point
	hb := target.Hitbox()
	if distToRect(u.Position(), hb) > u.tmpl.Range {
		path = m.FindPath(u.Position(), hb.Center())
		if path == nil {
			return fmt.Errorf("target %s: %w", target.Name(), ErrUnreachable)
		}
	}
	u.clearOrders()
	u.setPath(path)
	u.target = target.Ref()
	u.repathIn = repathTicks
	u.state = UnitAttacking
	return nil
}

// Stop drops every order. Builders cannot be stopped.
func (u *Unit) Stop() error {
	if !u.orderable() {
		return ErrBusy
	}
	u.idle()
	return nil
}

func (u *Unit) beginBuilding(id EntityID) {
	u.clearOrders()
	u.building = id
	u.state = UnitBuildBuilding
}

func (u *Unit) finishBuilding() {
	u.building = NoEntity
	if u.state == UnitBuildBuilding {
		u.idle()
	}
}

// Tick advances the unit one step.
func (u *Unit) Tick(w *World, owner *Player) {
	if u.attackFlash > 0 {
		u.attackFlash--
	}
	if !u.Alive() {
		u.clearOrders()
		u.state = UnitDead
		return
	}
	if u.cooldown > 0 {
		u.cooldown--
	}

	switch u.state {
	case UnitMoving:
		if u.advance() {
			u.idle()
		}
	case UnitMining:
		u.tickMining(w, owner)
	case UnitReturning:
		u.tickReturning(owner)
	case UnitAttacking:
		u.tickAttacking(w, owner)
	case UnitBuildBuilding:
		if b := owner.Building(u.building); b == nil || b.Built() {
			u.finishBuilding()
		}
	}
}

// advance moves along the path by the unit's speed. Returns true once the
// last waypoint has been reached.
func (u *Unit) advance() bool {
	remaining := u.tmpl.Speed
	for remaining > 0 && u.pathIndex < len(u.path) {
		wp := u.path[u.pathIndex]
		dx := wp.X - u.x
		dy := wp.Y - u.y
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist <= remaining {
			u.x = wp.X
			u.y = wp.Y
			remaining -= dist
			u.pathIndex++
		} else {
			u.x += (dx / dist) * remaining
			u.y += (dy / dist) * remaining
			remaining = 0
		}
	}
	if u.pathIndex >= len(u.path) {
		u.path = nil
		u.pathIndex = 0
		return true
	}
	return false
}

func (u *Unit) tickMining(w *World, owner *Player) {
	mine := w.Mines.Get(u.mine)
	if mine == nil || mine.Depleted() {
		u.idle()
		return
	}
	if !u.inReach(mine.Rect) {
		if u.advance() && !u.inReach(mine.Rect) {
			u.idle()
		}
		return
	}
	u.path = nil
	u.pathIndex = 0
	u.mineTimer--
	if u.mineTimer > 0 {
		return
	}
	u.carrying = mine.Extract(u.tmpl.Carry)
	owner.record(u.Label(), "economy", "mined", fmt.Sprintf("%d from mine %d", u.carrying, mine.ID), float64(u.carrying))
	if u.carrying == 0 {
		u.idle()
		return
	}
	u.clearOrders()
	u.state = UnitReturning
	base := owner.nearestBase(u.Position())
	if base == nil {
		u.state = UnitIdle
		return
	}
	if err := u.ReturnResource(owner, w.Map, base); err != nil {
		u.idle()
	}
}

func (u *Unit) tickReturning(owner *Player) {
	base := owner.Building(u.returnBase)
	if base == nil || !base.Alive() {
		u.idle()
		return
	}
	arrived := u.advance()
	if u.inReach(base.Hitbox()) {
		u.deposit(owner)
		return
	}
	if arrived {
		u.idle()
	}
}

func (u *Unit) tickAttacking(w *World, owner *Player) {
	target, ok := w.Entity(u.target)
	if !ok || !target.Alive() {
		u.idle()
		return
	}
	hb := target.Hitbox()
	if distToRect(u.Position(), hb) <= u.tmpl.Range {
		u.path = nil
		u.pathIndex = 0
		if u.cooldown > 0 {
			return
		}
		target.TakeDamage(u.tmpl.Damage)
		target.Attacked()
		u.cooldown = u.tmpl.Cooldown
		owner.record(u.Label(), "combat", "damage",
			fmt.Sprintf("%s hit for %d (hp %d)", target.Name(), u.tmpl.Damage, target.Health()), float64(u.tmpl.Damage))
		if !target.Alive() {
			owner.record(u.Label(), "combat", "kill", target.Name(), 0)
		}
		return
	}
	u.repathIn--
	if u.pathIndex >= len(u.path) || u.repathIn <= 0 {
		path := w.Map.FindPath(u.Position(), hb.Center())
		if path == nil {
			u.idle()
			return
		}
		u.setPath(path)
		u.repathIn = repathTicks
	}
	u.advance()
}
