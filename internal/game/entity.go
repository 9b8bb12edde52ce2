package game

import "github.com/google/uuid"

// EntityID identifies a unit or building for its whole lifetime.
type EntityID = uuid.UUID

// NoEntity is the zero EntityID, used for "no reference".
var NoEntity EntityID

func newEntityID() EntityID { return uuid.New() }

// EntityRef is a weak reference: the owning player plus the entity ID. It is
// re-resolved through the World on every use and never keeps anything alive.
type EntityRef struct {
	Player int
	ID     EntityID
}

// Valid reports whether the reference points at anything.
func (r EntityRef) Valid() bool { return r.ID != NoEntity }

// EntityKind separates units from buildings for selection precedence.
type EntityKind int

const (
	KindUnit EntityKind = iota
	KindBuilding
)

func (k EntityKind) String() string {
	if k == KindBuilding {
		return "building"
	}
	return "unit"
}

// Entity is the surface shared by units and buildings for selection,
// targeting and combat.
type Entity interface {
	ID() EntityID
	Owner() int
	Ref() EntityRef
	Kind() EntityKind
	Name() string
	Hitbox() Rect
	Health() int
	Alive() bool
	TakeDamage(amount int)
	Attacked()
	Flashing() bool
	Actions(p *Player) [ActionSlots]Action
}

// attackFlashTicks is how long an entity flashes after being hit.
const attackFlashTicks = 30
