package game

import "fmt"

// Building is a stationary structure with a construction phase and, once
// built, a production queue.
type Building struct {
	id    EntityID
	owner int
	kind  BuildingKind
	tmpl  BuildingTemplate

	x, y   float64 // top-left corner
	health int

	built    bool
	progress int // construction ticks left; 0 once built
	builder  EntityID

	tasks       TaskQueue
	attackFlash int
	lifespan    int
}

func newBuilding(owner int, kind BuildingKind, x, y float64, built bool, builder EntityID) *Building {
	t := kind.Template()
	b := &Building{
		id:      newEntityID(),
		owner:   owner,
		kind:    kind,
		tmpl:    t,
		x:       x,
		y:       y,
		health:  t.Health,
		built:   built,
		builder: builder,
	}
	if !built {
		b.progress = t.BuildTime
	}
	return b
}

func (b *Building) ID() EntityID               { return b.id }
func (b *Building) Owner() int                 { return b.owner }
func (b *Building) Ref() EntityRef             { return EntityRef{Player: b.owner, ID: b.id} }
func (b *Building) Kind() EntityKind           { return KindBuilding }
func (b *Building) BuildingKind() BuildingKind { return b.kind }
func (b *Building) Template() BuildingTemplate { return b.tmpl }
func (b *Building) Name() string               { return b.tmpl.Name }
func (b *Building) Health() int                { return b.health }
func (b *Building) Alive() bool                { return b.health > 0 }
func (b *Building) Built() bool                { return b.built }
func (b *Building) BuildingProgress() int      { return b.progress }
func (b *Building) Builder() EntityID          { return b.builder }
func (b *Building) Position() Point            { return Point{X: b.x, Y: b.y} }
func (b *Building) Flashing() bool             { return b.attackFlash > 0 }
func (b *Building) Lifespan() int              { return b.lifespan }
func (b *Building) Tasks() []Task              { return b.tasks.Tasks() }
func (b *Building) CurrentTask() *Task         { return b.tasks.Head() }
func (b *Building) Label() string              { return fmt.Sprintf("%s-%s", b.tmpl.Name, b.id.String()[:4]) }
func (b *Building) Hitbox() Rect               { return Rect{X: b.x, Y: b.y, W: b.tmpl.SizeX, H: b.tmpl.SizeY} }
func (b *Building) rallyPoint() Point          { return Point{X: b.x + b.tmpl.SizeX/2, Y: b.y + b.tmpl.SizeY + 24} }

// TakeDamage lowers health, clamped at zero.
func (b *Building) TakeDamage(amount int) {
	if amount <= 0 {
		return
	}
	b.health = max(b.health-amount, 0)
}

// Attacked starts the hit flash.
func (b *Building) Attacked() { b.attackFlash = attackFlashTicks }

// Tick advances construction, or the head of the task queue once built.
// A destroyed building does nothing while it waits to be reaped.
func (b *Building) Tick(p *Player) {
	if !b.Alive() {
		return
	}
	b.lifespan++
	if !b.built {
		b.progress--
		if b.progress <= 0 {
			b.CompleteConstruction(p)
		}
	} else if t := b.tasks.Advance(p); t != nil {
		p.record(b.Label(), "task", "complete", t.Name, 0)
	}
	if b.attackFlash > 0 {
		b.attackFlash--
	}
}

// CompleteConstruction finishes the building and releases its builder.
func (b *Building) CompleteConstruction(p *Player) {
	if b.built {
		return
	}
	b.built = true
	b.progress = 0
	if u := p.Unit(b.builder); u != nil && u.building == b.id {
		u.finishBuilding()
	}
	b.builder = NoEntity
	p.record(b.Label(), "build", "complete", b.tmpl.Name, 0)
}

// QueueTask appends a task to the production queue.
func (b *Building) QueueTask(t Task, p *Player) {
	b.tasks.Enqueue(t)
	p.record(b.Label(), "task", "queued", t.Name, float64(t.Time))
}

// Actions returns the building's action menu. An unbuilt building only
// offers cancel; a built one offers whatever its kind can do.
func (b *Building) Actions(p *Player) [ActionSlots]Action {
	if !b.built {
		var out [ActionSlots]Action
		out[CancelSlot] = cancelBuildingAction(b)
		return out
	}
	switch b.kind {
	case BuildingBase:
		return baseActions(b, p)
	case BuildingBarracks:
		return barracksActions(b, p)
	}
	return [ActionSlots]Action{}
}
