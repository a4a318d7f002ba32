package ai

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"renju-local/board"
	"renju-local/engine"
	"renju-local/rules"
	"renju-local/types"
)

// BudgetFor returns the built-in time budget and depth cap for d.
func BudgetFor(d engine.Difficulty) (time.Duration, int) {
	switch d {
	case engine.Easy:
		return time.Second, 1
	case engine.Hard:
		return 15 * time.Second, 4
	}
	return 5 * time.Second, 2
}

// Player is the computer opponent. It satisfies engine.Player and
// engine.DrawResponder.
type Player struct {
	searcher Searcher
	budget   time.Duration
	label    string
	log      *zap.SugaredLogger
}

// NewPlayer creates a search player with the given budget and depth.
func NewPlayer(rs rules.RuleSet, budget time.Duration, depth int, log *zap.SugaredLogger) *Player {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Player{
		searcher: Searcher{Rules: rs, Depth: depth},
		budget:   budget,
		label:    fmt.Sprintf("AI (depth %d)", depth),
		log:      log,
	}
}

// NewPlayerFor creates a search player with the defaults for d.
func NewPlayerFor(rs rules.RuleSet, d engine.Difficulty, log *zap.SugaredLogger) *Player {
	budget, depth := BudgetFor(d)
	p := NewPlayer(rs, budget, depth, log)
	p.label = fmt.Sprintf("AI (%s)", d)
	return p
}

// SetClock replaces the wall clock, for tests.
func (p *Player) SetClock(now func() time.Time) {
	p.searcher.Now = now
}

func (p *Player) Name() string {
	return p.label
}

func (p *Player) IsHuman() bool {
	return false
}

func (p *Player) now() time.Time {
	if p.searcher.Now != nil {
		return p.searcher.Now()
	}
	return time.Now()
}

// NextAction claims a pending foul when playing White, answers a standing
// draw offer, and otherwise searches for a placement.
func (p *Player) NextAction(ctx context.Context, gc types.GameContext, b board.Board) (types.Action, error) {
	me := gc.ToMove
	if gc.Phase == types.PhasePendingClaim && me == types.White {
		return types.NewAction(types.ActionClaimForbidden), nil
	}
	if gc.DrawOfferBy == me.Opponent() {
		return p.RespondToDraw(me, gc, b), nil
	}

	start := p.now()
	deadline := start.Add(p.budget)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	pos, stats := p.searcher.choose(ctx.Done(), &gc, b, deadline)
	if err := ctx.Err(); err != nil {
		return types.Action{}, err
	}
	p.log.Debugw("search done",
		"side", me,
		"move", pos,
		"candidates", stats.Candidates,
		"examined", stats.Examined,
		"nodes", stats.Nodes,
		"depth", stats.Depth,
		"score", stats.Score,
		"aborted", stats.Aborted,
		"elapsed", stats.Elapsed,
	)
	if pos == types.InvalidPos {
		return types.NewAction(types.ActionResign), nil
	}

	a := types.Place(pos)
	a.Spent = p.now().Sub(start)
	return a, nil
}

// RespondToDraw accepts when the position does not favour side.
func (p *Player) RespondToDraw(side types.Side, gc types.GameContext, b board.Board) types.Action {
	if EvaluateBoard(&b, side) <= 0 {
		return types.NewAction(types.ActionAcceptDraw)
	}
	return types.NewAction(types.ActionRejectDraw)
}
