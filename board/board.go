// Package board implements the fixed 15x15 renju grid.
package board

import "renju-local/types"

// Size is the board width and height.
const Size = 15

// Center is tengen, Black's mandatory opening point.
var Center = types.Pos{Row: Size / 2, Col: Size / 2}

// Board holds cell occupancy plus a stone counter.
// Board is a value type: assigning it copies the grid.
type Board struct {
	grid   [Size][Size]types.Side
	stones int
}

// New returns an empty board.
func New() Board {
	return Board{}
}

// Reset empties every cell.
func (b *Board) Reset() {
	*b = Board{}
}

// IsValid is a bounds check only.
func (b *Board) IsValid(p types.Pos) bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

// IsEmpty reports whether p is on the board and unoccupied.
func (b *Board) IsEmpty(p types.Pos) bool {
	return b.IsValid(p) && b.grid[p.Row][p.Col] == types.None
}

// IsFull reports whether every cell holds a stone.
func (b *Board) IsFull() bool {
	return b.stones >= Size*Size
}

// Stones returns the number of occupied cells.
func (b *Board) Stones() int {
	return b.stones
}

// Get returns the occupant of p, or None when p is off the board.
func (b *Board) Get(p types.Pos) types.Side {
	if !b.IsValid(p) {
		return types.None
	}
	return b.grid[p.Row][p.Col]
}

// Set writes s at p and keeps the stone counter in step.
// Writing the value already present leaves the counter alone.
func (b *Board) Set(p types.Pos, s types.Side) {
	if !b.IsValid(p) {
		return
	}
	prev := b.grid[p.Row][p.Col]
	switch {
	case prev == types.None && s != types.None:
		b.stones++
	case prev != types.None && s == types.None:
		b.stones--
	}
	b.grid[p.Row][p.Col] = s
}

// Clear empties p.
func (b *Board) Clear(p types.Pos) {
	b.Set(p, types.None)
}

// CountConsecutive counts stones of side walking away from p in direction
// (dr, dc). p itself is not counted; the walk stops at the first mismatch
// or the board edge.
func (b *Board) CountConsecutive(p types.Pos, dr, dc int, side types.Side) int {
	count := 0
	r, c := p.Row+dr, p.Col+dc
	for r >= 0 && r < Size && c >= 0 && c < Size && b.grid[r][c] == side {
		count++
		r += dr
		c += dc
	}
	return count
}

// Clone returns an independent copy.
func (b *Board) Clone() Board {
	return *b
}

