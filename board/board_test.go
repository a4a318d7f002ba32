package board

import (
	"testing"

	"renju-local/types"
)

func TestSetMaintainsStoneCount(t *testing.T) {
	b := New()
	p := types.Pos{Row: 3, Col: 4}

	b.Set(p, types.Black)
	if b.Stones() != 1 {
		t.Fatalf("stones = %d, want 1", b.Stones())
	}
	b.Set(p, types.Black)
	if b.Stones() != 1 {
		t.Fatalf("re-setting same value changed counter: %d", b.Stones())
	}
	b.Set(p, types.White)
	if b.Stones() != 1 {
		t.Fatalf("overwriting a stone changed counter: %d", b.Stones())
	}
	b.Clear(p)
	if b.Stones() != 0 {
		t.Fatalf("stones after clear = %d, want 0", b.Stones())
	}
	b.Clear(p)
	if b.Stones() != 0 {
		t.Fatalf("double clear changed counter: %d", b.Stones())
	}
}

func TestSetOutOfBoundsIsIgnored(t *testing.T) {
	b := New()
	b.Set(types.Pos{Row: -1, Col: 0}, types.Black)
	b.Set(types.Pos{Row: 0, Col: Size}, types.Black)
	if b.Stones() != 0 {
		t.Fatalf("out-of-bounds writes counted: %d", b.Stones())
	}
	if got := b.Get(types.Pos{Row: 20, Col: 20}); got != types.None {
		t.Fatalf("Get off board = %v, want None", got)
	}
}

func TestIsValidAndIsEmpty(t *testing.T) {
	b := New()
	tests := []struct {
		p     types.Pos
		valid bool
	}{
		{types.Pos{Row: 0, Col: 0}, true},
		{types.Pos{Row: 14, Col: 14}, true},
		{types.Pos{Row: 15, Col: 0}, false},
		{types.Pos{Row: 0, Col: -1}, false},
		{types.InvalidPos, false},
	}
	for _, tt := range tests {
		if got := b.IsValid(tt.p); got != tt.valid {
			t.Errorf("IsValid(%v) = %v, want %v", tt.p, got, tt.valid)
		}
		if got := b.IsEmpty(tt.p); got != tt.valid {
			t.Errorf("IsEmpty(%v) on empty board = %v, want %v", tt.p, got, tt.valid)
		}
	}
	b.Set(Center, types.White)
	if b.IsEmpty(Center) {
		t.Error("occupied center reported empty")
	}
}

func TestCountConsecutiveExcludesOrigin(t *testing.T) {
	b := New()
	for c := 3; c <= 6; c++ {
		b.Set(types.Pos{Row: 7, Col: c}, types.Black)
	}
	origin := types.Pos{Row: 7, Col: 3}
	if got := b.CountConsecutive(origin, 0, 1, types.Black); got != 3 {
		t.Errorf("east from (7,3) = %d, want 3", got)
	}
	if got := b.CountConsecutive(origin, 0, -1, types.Black); got != 0 {
		t.Errorf("west from (7,3) = %d, want 0", got)
	}
	// An empty origin still scans its neighbours.
	gap := types.Pos{Row: 7, Col: 7}
	if got := b.CountConsecutive(gap, 0, -1, types.Black); got != 4 {
		t.Errorf("west from empty (7,7) = %d, want 4", got)
	}
	b.Set(types.Pos{Row: 7, Col: 7}, types.White)
	if got := b.CountConsecutive(types.Pos{Row: 7, Col: 2}, 0, 1, types.Black); got != 4 {
		t.Errorf("run stopped at opponent = %d, want 4", got)
	}
}

func TestCountConsecutiveStopsAtEdge(t *testing.T) {
	b := New()
	for c := 0; c < Size; c++ {
		b.Set(types.Pos{Row: 0, Col: c}, types.White)
	}
	p := types.Pos{Row: 0, Col: 7}
	total := 1 + b.CountConsecutive(p, 0, 1, types.White) + b.CountConsecutive(p, 0, -1, types.White)
	if total != Size {
		t.Fatalf("full row length = %d, want %d", total, Size)
	}
}

func TestCountConsecutiveMonotonic(t *testing.T) {
	b := New()
	origin := types.Pos{Row: 7, Col: 7}
	prev := 0
	for i := 1; i <= 7; i++ {
		b.Set(types.Pos{Row: 7 + i, Col: 7 + i}, types.Black)
		got := 1 + b.CountConsecutive(origin, 1, 1, types.Black) + b.CountConsecutive(origin, -1, -1, types.Black)
		if got < prev {
			t.Fatalf("line length decreased from %d to %d", prev, got)
		}
		if got > Size {
			t.Fatalf("line length %d exceeds board diameter", got)
		}
		prev = got
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := New()
	b.Set(Center, types.Black)
	clone := b.Clone()
	clone.Set(types.Pos{Row: 0, Col: 0}, types.White)
	clone.Clear(Center)

	if b.Get(Center) != types.Black || b.Stones() != 1 {
		t.Fatal("mutating clone changed original")
	}
	if clone.Stones() != 1 {
		t.Fatalf("clone stones = %d, want 1", clone.Stones())
	}
}

func TestIsFullAndReset(t *testing.T) {
	b := New()
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			side := types.Black
			if (r+c)%2 == 1 {
				side = types.White
			}
			b.Set(types.Pos{Row: r, Col: c}, side)
		}
	}
	if !b.IsFull() {
		t.Fatal("board with 225 stones not full")
	}
	if b.Get(types.Pos{Row: 0, Col: 1}) != types.White {
		t.Fatal("cell lost")
	}
	b.Reset()
	if b.Stones() != 0 || b.IsFull() {
		t.Fatal("reset did not empty board")
	}
}
