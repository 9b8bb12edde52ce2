package game

import "fmt"

// entitiesInBox returns the entities whose hitbox overlaps box. When any unit
// is in the box, buildings are dropped from the result.
func entitiesInBox(entities []Entity, box Rect) []Entity {
	var hits []Entity
	anyUnit := false
	for _, e := range entities {
		if RectsOverlap(e.Hitbox(), box) {
			hits = append(hits, e)
			anyUnit = anyUnit || e.Kind() == KindUnit
		}
	}
	if !anyUnit {
		return hits
	}
	units := hits[:0]
	for _, e := range hits {
		if e.Kind() == KindUnit {
			units = append(units, e)
		}
	}
	return units
}

// entityAt returns the first entity whose hitbox contains pt.
func entityAt(entities []Entity, pt Point) Entity {
	for _, e := range entities {
		if PointInRect(e.Hitbox(), pt) {
			return e
		}
	}
	return nil
}

// DragSelect selects the player's own entities under box, preferring units.
// An empty box leaves the selection alone. Returns the number selected.
func (p *Player) DragSelect(box Rect) int {
	hits := entitiesInBox(p.Entities(), box)
	if len(hits) == 0 {
		return 0
	}
	refs := make([]EntityRef, len(hits))
	for i, e := range hits {
		refs[i] = e.Ref()
	}
	p.Select(refs...)
	p.play("click")
	p.record("--", "select", "drag", fmt.Sprintf("%d entities", len(refs)), float64(len(refs)))
	return len(refs)
}

// ClickSelect selects at most one entity under pt: the player's own first,
// then any other player's for inspection. A miss keeps the selection.
func (p *Player) ClickSelect(w *World, pt Point) bool {
	e := entityAt(p.Entities(), pt)
	if e == nil && w != nil {
		for _, other := range w.players {
			if other.ID == p.ID {
				continue
			}
			if e = entityAt(other.Entities(), pt); e != nil {
				break
			}
		}
	}
	if e == nil {
		return false
	}
	p.Select(e.Ref())
	p.play("click")
	p.record("--", "select", "click", e.Name(), 0)
	return true
}

// baseAt returns the player's built base under pt.
func (p *Player) baseAt(pt Point) *Building {
	for _, b := range p.buildings {
		if b.kind == BuildingBase && b.built && PointInRect(b.Hitbox(), pt) {
			return b
		}
	}
	return nil
}

// EnemyAt returns a live entity not owned by playerID under pt.
func (w *World) EnemyAt(playerID int, pt Point) Entity {
	for _, other := range w.players {
		if other.ID == playerID {
			continue
		}
		if e := entityAt(other.Entities(), pt); e != nil && e.Alive() {
			return e
		}
	}
	return nil
}

// BuildingOverlapping returns any building, of any player, overlapping r.
func (w *World) BuildingOverlapping(r Rect) *Building {
	for _, p := range w.players {
		for _, b := range p.buildings {
			if RectsOverlap(b.Hitbox(), r) {
				return b
			}
		}
	}
	return nil
}
