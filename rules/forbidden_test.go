package rules

import (
	"testing"

	"renju-local/board"
	"renju-local/types"
)

func stones(side types.Side, ps ...types.Pos) func(*board.Board) {
	return func(b *board.Board) {
		for _, p := range ps {
			b.Set(p, side)
		}
	}
}

func pos(r, c int) types.Pos {
	return types.Pos{Row: r, Col: c}
}

func TestIsForbidden(t *testing.T) {
	tests := []struct {
		name  string
		setup []func(*board.Board)
		at    types.Pos
		want  types.ForbiddenKind
	}{
		{
			name:  "double three",
			setup: []func(*board.Board){stones(types.Black, pos(10, 5), pos(10, 6), pos(8, 7), pos(9, 7))},
			at:    pos(10, 7),
			want:  types.ThreeThree,
		},
		{
			name:  "double four",
			setup: []func(*board.Board){stones(types.Black, pos(7, 3), pos(7, 4), pos(7, 5), pos(3, 7), pos(4, 7), pos(5, 7))},
			at:    pos(7, 7),
			want:  types.FourFour,
		},
		{
			name:  "overline",
			setup: []func(*board.Board){stones(types.Black, pos(4, 1), pos(4, 2), pos(4, 3), pos(4, 4), pos(4, 6))},
			at:    pos(4, 5),
			want:  types.Overline,
		},
		{
			name: "overline reported before double three",
			setup: []func(*board.Board){
				stones(types.Black, pos(4, 1), pos(4, 2), pos(4, 3), pos(4, 4), pos(4, 6)),
				stones(types.Black, pos(2, 5), pos(3, 5), pos(2, 3), pos(3, 4)),
			},
			at:   pos(4, 5),
			want: types.Overline,
		},
		{
			name:  "four-three is legal",
			setup: []func(*board.Board){stones(types.Black, pos(7, 3), pos(7, 4), pos(7, 5), pos(5, 7), pos(6, 7))},
			at:    pos(7, 7),
			want:  types.NotForbidden,
		},
		{
			name: "blocked three does not count",
			setup: []func(*board.Board){
				stones(types.Black, pos(10, 5), pos(10, 6), pos(8, 7), pos(9, 7)),
				stones(types.White, pos(10, 4)),
			},
			at:   pos(10, 7),
			want: types.NotForbidden,
		},
		{
			name:  "empty neighbourhood",
			setup: nil,
			at:    pos(7, 7),
			want:  types.NotForbidden,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := board.New()
			for _, f := range tt.setup {
				f(&b)
			}
			kind, ok := IsForbidden(&b, tt.at)
			if kind != tt.want || ok != (tt.want != types.NotForbidden) {
				t.Errorf("IsForbidden(%v) = %v, %v; want %v", tt.at, kind, ok, tt.want)
			}

			// Hypothetical and placed stones read the same.
			b.Set(tt.at, types.Black)
			if placed, _ := IsForbidden(&b, tt.at); placed != kind {
				t.Errorf("placed stone gives %v, hypothetical gave %v", placed, kind)
			}
		})
	}
}

func TestFiveTakesPriorityOverFoul(t *testing.T) {
	b := board.New()
	stones(types.Black,
		pos(10, 3), pos(10, 4), pos(10, 5), pos(10, 6),
		pos(8, 7), pos(9, 7),
		pos(8, 5), pos(9, 6),
	)(&b)
	at := pos(10, 7)
	b.Set(at, types.Black)

	rs := NewRenju()
	ctx := types.NewGameContext(0)
	got := rs.EvaluateAfterAction(&ctx, &b, types.Black, types.Place(at))
	if got.Status != types.StatusWin || got.Winner != types.Black || got.Reason != types.ReasonFive {
		t.Fatalf("outcome = %+v, want black five", got)
	}
}
