package game

// Mine is a resource node. It is consulted by units, never owned.
type Mine struct {
	ID    int
	Rect  Rect
	Stock int
}

// Depleted reports whether the mine has nothing left.
func (m *Mine) Depleted() bool { return m.Stock <= 0 }

// Extract removes up to n resources and returns how many were taken.
func (m *Mine) Extract(n int) int {
	n = max(min(n, m.Stock), 0)
	m.Stock -= n
	return n
}

// MineField holds every mine on the map.
type MineField struct {
	mines  []*Mine
	nextID int
}

func NewMineField() *MineField { return &MineField{nextID: 1} }

// Add places a mine and returns it. IDs start at 1; 0 means "no mine".
func (f *MineField) Add(r Rect, stock int) *Mine {
	m := &Mine{ID: f.nextID, Rect: r.Normalize(), Stock: stock}
	f.nextID++
	f.mines = append(f.mines, m)
	return m
}

// Get looks up a mine by ID.
func (f *MineField) Get(id int) *Mine {
	for _, m := range f.mines {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// At returns the non-depleted mine under p, or nil.
func (f *MineField) At(p Point) *Mine {
	for _, m := range f.mines {
		if !m.Depleted() && PointInRect(m.Rect, p) {
			return m
		}
	}
	return nil
}

// All returns every mine, depleted or not.
func (f *MineField) All() []*Mine { return f.mines }
