package rules

import (
	"testing"

	"renju-local/board"
	"renju-local/types"
)

func TestWindowClassifiesCells(t *testing.T) {
	b := board.New()
	b.Set(types.Pos{Row: 0, Col: 1}, types.Black)
	b.Set(types.Pos{Row: 0, Col: 2}, types.White)

	got := Window(&b, types.Pos{Row: 0, Col: 0}, Axis{DR: 0, DC: 1}, types.Black)
	want := Line{Blocked, Blocked, Blocked, Blocked, Own, Own, Blocked, Empty, Empty}
	if got != want {
		t.Errorf("Window at corner = %v, want %v", got, want)
	}

	// The query point reads Own even when empty.
	got = Window(&b, types.Pos{Row: 5, Col: 5}, Axis{DR: 1, DC: 1}, types.White)
	if got[windowRadius] != Own {
		t.Errorf("centre = %d, want Own", got[windowRadius])
	}
}

func TestIsOpenThree(t *testing.T) {
	tests := []struct {
		name string
		line Line
		want bool
	}{
		{"solid", Line{0, 0, 0, 1, 1, 1, 0, 0, 0}, true},
		{"solid at left", Line{0, 0, 1, 1, 1, 0, 0, 0, 0}, true},
		{"split one-two", Line{0, 0, 1, 0, 1, 1, 0, 0, 0}, true},
		{"split two-one", Line{0, 0, 0, 1, 1, 0, 1, 0, 0}, true},
		{"split with centre last", Line{0, 1, 1, 0, 1, 0, 0, 0, 0}, true},
		{"blocked left", Line{0, 0, 2, 1, 1, 1, 0, 0, 0}, false},
		{"blocked right", Line{0, 0, 0, 1, 1, 1, 2, 0, 0}, false},
		{"split blocked", Line{2, 1, 1, 0, 1, 0, 0, 0, 0}, false},
		{"two", Line{0, 0, 0, 0, 1, 1, 0, 0, 0}, false},
		{"four is not three", Line{0, 0, 0, 1, 1, 1, 1, 0, 0}, false},
		{"wide gap", Line{0, 1, 0, 0, 1, 1, 0, 0, 0}, false},
	}
	for _, tt := range tests {
		if got := IsOpenThree(tt.line); got != tt.want {
			t.Errorf("IsOpenThree(%s %v) = %v, want %v", tt.name, tt.line, got, tt.want)
		}
	}
}

func TestIsFour(t *testing.T) {
	tests := []struct {
		name string
		line Line
		want bool
	}{
		{"open", Line{0, 0, 0, 1, 1, 1, 1, 0, 0}, true},
		{"split", Line{0, 0, 1, 0, 1, 1, 1, 0, 0}, true},
		{"closed one side", Line{0, 0, 2, 1, 1, 1, 1, 0, 0}, true},
		{"three", Line{0, 0, 0, 0, 1, 1, 1, 0, 0}, false},
		{"dead", Line{2, 1, 1, 1, 1, 2, 0, 0, 0}, false},
	}
	for _, tt := range tests {
		if got := IsFour(tt.line); got != tt.want {
			t.Errorf("IsFour(%s %v) = %v, want %v", tt.name, tt.line, got, tt.want)
		}
	}
}

func TestFiveAndLongChain(t *testing.T) {
	b := board.New()
	for c := 1; c <= 4; c++ {
		b.Set(types.Pos{Row: 2, Col: c}, types.Black)
	}
	p := types.Pos{Row: 2, Col: 5}
	if !MakesFive(&b, p, types.Black) || MakesLongChain(&b, p, types.Black) {
		t.Fatal("four plus one should be exactly five")
	}
	if !Wins(&b, p, types.Black) {
		t.Error("exact five should win for black")
	}

	b.Set(types.Pos{Row: 2, Col: 6}, types.Black)
	if MakesFive(&b, p, types.Black) {
		t.Error("six in a row reported as five")
	}
	if !MakesLongChain(&b, p, types.Black) {
		t.Error("six in a row not reported as long chain")
	}
	if Wins(&b, p, types.Black) {
		t.Error("black long chain should not win")
	}

	w := board.New()
	for c := 1; c <= 5; c++ {
		w.Set(types.Pos{Row: 9, Col: c}, types.White)
	}
	if !Wins(&w, types.Pos{Row: 9, Col: 6}, types.White) {
		t.Error("white long chain should win")
	}
}
