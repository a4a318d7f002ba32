// Package ai implements the alpha-beta search opponent.
package ai

import (
	"renju-local/board"
	"renju-local/types"
)

// candidateRadius is the Chebyshev distance from an existing stone within
// which empty cells are searched.
const candidateRadius = 2

// Candidates lists the empty cells worth searching, in row-major order.
// On an empty board every cell is returned with the centre first.
func Candidates(b *board.Board) []types.Pos {
	if b.Stones() == 0 {
		all := make([]types.Pos, 0, board.Size*board.Size)
		all = append(all, board.Center)
		for r := 0; r < board.Size; r++ {
			for c := 0; c < board.Size; c++ {
				if p := (types.Pos{Row: r, Col: c}); p != board.Center {
					all = append(all, p)
				}
			}
		}
		return all
	}

	var near [board.Size][board.Size]bool
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			if b.Get(types.Pos{Row: r, Col: c}) == types.None {
				continue
			}
			for dr := -candidateRadius; dr <= candidateRadius; dr++ {
				for dc := -candidateRadius; dc <= candidateRadius; dc++ {
					nr, nc := r+dr, c+dc
					if nr >= 0 && nr < board.Size && nc >= 0 && nc < board.Size {
						near[nr][nc] = true
					}
				}
			}
		}
	}

	var out []types.Pos
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			p := types.Pos{Row: r, Col: c}
			if near[r][c] && b.IsEmpty(p) {
				out = append(out, p)
			}
		}
	}
	return out
}
