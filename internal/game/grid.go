package game

// Grid is the spatial index. Entities are linked into coarse cells keyed by
// their origin so proximity queries don't scan the whole entity array. The
// grid owns the link state fields on Entity.
type Grid struct {
	cells map[int32][]*Entity
}

const gridCellSize = 128

func NewGrid() *Grid {
	return &Grid{cells: map[int32][]*Entity{}}
}

func cellKey(origin [3]float32) int32 {
	cx := int32(origin[0]) / gridCellSize
	cy := int32(origin[1]) / gridCellSize
	return cx<<16 ^ cy&0xffff
}

// Link places an entity in the cell matching its current origin, moving it
// out of its previous cell first.
func (g *Grid) Link(e *Entity) {
	if e.Linked {
		g.remove(e)
	}

	key := cellKey(e.Origin)
	g.cells[key] = append(g.cells[key], e)
	e.GridCell = key
	e.Linked = true
	e.LinkCount++
}

// Unlink removes an entity from the grid.
func (g *Grid) Unlink(e *Entity) {
	if !e.Linked {
		return
	}
	g.remove(e)
	e.Linked = false
	e.GridCell = 0
}

// Clear drops every cell. Callers must relink any entity that should remain
// indexed.
func (g *Grid) Clear() {
	g.cells = map[int32][]*Entity{}
}

// InCell returns the entities currently linked at the cell containing origin.
func (g *Grid) InCell(origin [3]float32) []*Entity {
	return g.cells[cellKey(origin)]
}

func (g *Grid) remove(e *Entity) {
	cell := g.cells[e.GridCell]
	for i, other := range cell {
		if other == e {
			g.cells[e.GridCell] = append(cell[:i], cell[i+1:]...)
			return
		}
	}
}
