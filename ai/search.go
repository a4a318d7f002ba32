package ai

import (
	"math"
	"sort"
	"time"

	"renju-local/board"
	"renju-local/rules"
	"renju-local/types"
)

// WinScore is the value of a won position. Wins found deeper in the tree
// score slightly less so the shortest win is preferred.
const WinScore = 100 * ScoreFive

// Stats describes one search.
type Stats struct {
	Candidates int
	Examined   int
	Nodes      int
	Depth      int
	Score      int
	Aborted    bool
	Elapsed    time.Duration
}

// Searcher runs a depth-limited minimax search with alpha-beta pruning.
// Now is the clock; nil means time.Now.
type Searcher struct {
	Rules rules.RuleSet
	Depth int
	Now   func() time.Time
}

type searchState struct {
	me       types.Side
	deadline time.Time
	now      func() time.Time
	done     <-chan struct{}
	nodes    int
	aborted  bool
}

func (s *searchState) expired() bool {
	if s.aborted {
		return true
	}
	if !s.deadline.IsZero() && !s.now().Before(s.deadline) {
		s.aborted = true
	}
	select {
	case <-s.done:
		s.aborted = true
	default:
	}
	return s.aborted
}

// Choose picks a placement for gc.ToMove. b is the search's private copy
// and is restored before returning. The search stops at deadline; if no
// root move was fully examined by then, the first legal candidate not yet
// examined is returned. InvalidPos means the board has no legal cell.
func (s *Searcher) Choose(gc *types.GameContext, b board.Board, deadline time.Time) (types.Pos, Stats) {
	return s.choose(nil, gc, b, deadline)
}

// choose is Choose with an extra stop signal; a closed done channel is
// treated like a passed deadline.
func (s *Searcher) choose(done <-chan struct{}, gc *types.GameContext, b board.Board, deadline time.Time) (types.Pos, Stats) {
	now := s.Now
	if now == nil {
		now = time.Now
	}
	start := now()
	st := &searchState{me: gc.ToMove, deadline: deadline, now: now, done: done}
	depth := s.Depth
	if depth < 1 {
		depth = 1
	}

	cands := Candidates(&b)
	stats := Stats{Candidates: len(cands), Depth: depth}

	best := types.InvalidPos
	bestScore := math.MinInt
	alpha, beta := math.MinInt, math.MaxInt
	next := 0

	for ; next < len(cands); next++ {
		if st.expired() {
			break
		}
		p := cands[next]
		if !s.rootAllowed(gc, &b, st.me, p) {
			continue
		}

		b.Set(p, st.me)
		var score int
		if rules.Wins(&b, p, st.me) {
			score = WinScore
		} else {
			score = s.minimax(st, &b, depth-1, st.me.Opponent(), alpha, beta, 1)
		}
		b.Clear(p)

		if st.aborted {
			break
		}
		stats.Examined++
		if best == types.InvalidPos || score > bestScore {
			best, bestScore = p, score
		}
		if score > alpha {
			alpha = score
		}
	}

	if best == types.InvalidPos {
		for ; next < len(cands); next++ {
			if s.rootAllowed(gc, &b, st.me, cands[next]) {
				best = cands[next]
				break
			}
		}
	}

	stats.Nodes = st.nodes
	stats.Score = bestScore
	stats.Aborted = st.aborted
	stats.Elapsed = now().Sub(start)
	return best, stats
}

// rootAllowed applies the rule engine's placement checks plus the foul
// exclusion for Black.
func (s *Searcher) rootAllowed(gc *types.GameContext, b *board.Board, side types.Side, p types.Pos) bool {
	if err := s.Rules.ValidateAction(gc, b, side, types.Place(p)); err != nil {
		return false
	}
	return allowed(s.Rules, b, p, side)
}

// allowed excludes Black fouls unless the stone also completes an exact five.
func allowed(rs rules.RuleSet, b *board.Board, p types.Pos, side types.Side) bool {
	if side != types.Black {
		return true
	}
	if rules.MakesFive(b, p, side) {
		return true
	}
	_, forbidden := rs.IsForbidden(b, p)
	return !forbidden
}

func (s *Searcher) minimax(st *searchState, b *board.Board, depth int, toMove types.Side, alpha, beta, ply int) int {
	st.nodes++
	if st.expired() {
		return 0
	}
	if depth <= 0 {
		return EvaluateBoard(b, st.me)
	}

	moves := orderedMoves(b, toMove)
	maximizing := toMove == st.me
	best := math.MaxInt
	if maximizing {
		best = math.MinInt
	}
	expanded := false

	for _, p := range moves {
		if !allowed(s.Rules, b, p, toMove) {
			continue
		}
		expanded = true

		b.Set(p, toMove)
		var v int
		if rules.Wins(b, p, toMove) {
			v = WinScore - ply
			if !maximizing {
				v = -v
			}
		} else {
			v = s.minimax(st, b, depth-1, toMove.Opponent(), alpha, beta, ply+1)
		}
		b.Clear(p)

		if st.aborted {
			return 0
		}
		if maximizing {
			if v > best {
				best = v
			}
			if best > alpha {
				alpha = best
			}
		} else {
			if v < best {
				best = v
			}
			if best < beta {
				beta = best
			}
		}
		if beta <= alpha {
			break
		}
	}

	if !expanded {
		return EvaluateBoard(b, st.me)
	}
	return best
}

// orderedMoves sorts inner-node candidates by a local heuristic so cutoffs
// come early. Ties keep row-major order.
func orderedMoves(b *board.Board, toMove types.Side) []types.Pos {
	moves := Candidates(b)
	scores := make(map[types.Pos]int, len(moves))
	for _, p := range moves {
		scores[p] = moveHeuristic(b, p, toMove)
	}
	sort.SliceStable(moves, func(i, j int) bool {
		return scores[moves[i]] > scores[moves[j]]
	})
	return moves
}
