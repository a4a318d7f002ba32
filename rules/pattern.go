package rules

import (
	"renju-local/board"
	"renju-local/types"
)

// Cell classes inside a pattern window. Off-board cells read as Blocked,
// the same as an opponent stone.
const (
	Empty   = 0
	Own     = 1
	Blocked = 2
)

const windowRadius = 4

// WindowSize is the width of a pattern window.
const WindowSize = 2*windowRadius + 1

// Line is a window of cells along one axis; index 4 is the query point.
type Line [WindowSize]int

// Axis is a scan direction. Its opposite is implied.
type Axis struct {
	DR, DC int
}

// Axes lists the four line directions: horizontal, vertical, diagonal, anti-diagonal.
var Axes = [4]Axis{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// Window classifies the cells at offsets -4..+4 from p along axis from
// side's point of view. The centre always reads Own, so p may hold the
// stone already or be the hypothetical placement.
func Window(b *board.Board, p types.Pos, axis Axis, side types.Side) Line {
	var line Line
	for i := -windowRadius; i <= windowRadius; i++ {
		q := p.Offset(axis.DR, axis.DC, i)
		cell := Blocked
		switch {
		case i == 0:
			cell = Own
		case !b.IsValid(q):
			cell = Blocked
		case b.Get(q) == side:
			cell = Own
		case b.Get(q) == types.None:
			cell = Empty
		}
		line[i+windowRadius] = cell
	}
	return line
}

// Live three shapes. Each needs an empty cell on both ends to count.
var threeShapes = [][]int{
	{Own, Own, Own},
	{Own, Empty, Own, Own},
	{Own, Own, Empty, Own},
}

// IsOpenThree reports whether the centre stone is part of an open three:
// .XXX. or one of the broken forms .X.XX. and .XX.X.
func IsOpenThree(line Line) bool {
	for _, shape := range threeShapes {
		for start := 1; start+len(shape) < WindowSize; start++ {
			offset := windowRadius - start
			if offset < 0 || offset >= len(shape) || shape[offset] != Own {
				continue
			}
			if line[start-1] != Empty || line[start+len(shape)] != Empty {
				continue
			}
			if matches(line, start, shape) {
				return true
			}
		}
	}
	return false
}

// IsFour reports whether some 5-cell window through the centre holds four
// own stones and one empty cell, i.e. one move from five.
func IsFour(line Line) bool {
	for start := 0; start <= windowRadius; start++ {
		own, empty := 0, 0
		for k := start; k < start+5; k++ {
			switch line[k] {
			case Own:
				own++
			case Empty:
				empty++
			}
		}
		if own == 4 && empty == 1 {
			return true
		}
	}
	return false
}

func matches(line Line, start int, shape []int) bool {
	for i, want := range shape {
		if line[start+i] != want {
			return false
		}
	}
	return true
}

// LineLength is the run through p along axis for side, counting p itself.
func LineLength(b *board.Board, p types.Pos, axis Axis, side types.Side) int {
	return 1 + b.CountConsecutive(p, axis.DR, axis.DC, side) + b.CountConsecutive(p, -axis.DR, -axis.DC, side)
}

// MakesFive reports whether a side stone at p completes exactly five on some axis.
func MakesFive(b *board.Board, p types.Pos, side types.Side) bool {
	for _, axis := range Axes {
		if LineLength(b, p, axis, side) == 5 {
			return true
		}
	}
	return false
}

// MakesLongChain reports whether a side stone at p forms six or more in a row.
func MakesLongChain(b *board.Board, p types.Pos, side types.Side) bool {
	for _, axis := range Axes {
		if LineLength(b, p, axis, side) > 5 {
			return true
		}
	}
	return false
}

// Wins reports whether a side stone at p ends the game in side's favour.
// White wins with five or more; Black only with exactly five.
func Wins(b *board.Board, p types.Pos, side types.Side) bool {
	if side == types.White {
		return MakesFive(b, p, side) || MakesLongChain(b, p, side)
	}
	return MakesFive(b, p, side)
}
