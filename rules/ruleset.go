// Package rules implements renju move legality, foul detection and the turn/phase state machine.
package rules

import (
	"errors"
	"fmt"
	"time"

	"renju-local/board"
	"renju-local/types"
)

// MaxTimeoutWarnings is the number of timeouts tolerated before the game is lost.
const MaxTimeoutWarnings = 3

// Validation failures. The message is the reason shown to the player.
var (
	ErrNoPosition       = errors.New("no position specified")
	ErrOutOfBounds      = errors.New("position out of bounds")
	ErrOccupied         = errors.New("position already occupied")
	ErrOpeningHalfBoard = errors.New("white must play on its own side of the board (row >= 8) on the first move")
	ErrClaimNotPending  = errors.New("cannot claim forbidden move now")
	ErrClaimByBlack     = errors.New("black cannot claim its own forbidden move")
	ErrNothingToUndo    = errors.New("nothing to undo")
	ErrGameFinished     = errors.New("game is over")
	ErrUnknownAction    = errors.New("unknown action type")
	ErrOutOfTurn        = errors.New("move played out of turn")
)

// RuleSet is the contract between the game loop and a rule implementation.
// Renju is the only implementation.
type RuleSet interface {
	Name() string
	BoardSize() int

	// InitGame resets the board and context and plays Black's opening stone.
	InitGame(ctx *types.GameContext, b *board.Board)

	// ValidateAction never mutates state.
	ValidateAction(ctx *types.GameContext, b *board.Board, side types.Side, a types.Action) error

	// ApplyAction mutates board and context. The action must have been validated.
	ApplyAction(ctx *types.GameContext, b *board.Board, side types.Side, a types.Action)

	// EvaluateAfterAction derives the outcome of an applied action.
	EvaluateAfterAction(ctx *types.GameContext, b *board.Board, side types.Side, a types.Action) types.Outcome

	// OnTimeout records a timeout for side.
	OnTimeout(ctx *types.GameContext, side types.Side) types.Outcome

	// IsForbidden checks a Black stone at p against the foul patterns.
	IsForbidden(b *board.Board, p types.Pos) (types.ForbiddenKind, bool)
}

// Renju is the 15x15 five-in-a-row rule set with Black-only fouls.
type Renju struct{}

// NewRenju returns the renju rule set.
func NewRenju() *Renju {
	return &Renju{}
}

func (r *Renju) Name() string {
	return "Gomoku (Renju-like)"
}

func (r *Renju) BoardSize() int {
	return board.Size
}

func (r *Renju) InitGame(ctx *types.GameContext, b *board.Board) {
	*ctx = types.NewGameContext(ctx.TotalGameDuration)
	b.Reset()

	opening := types.Place(board.Center)
	b.Set(board.Center, types.Black)
	ctx.LastAction = &opening
	ctx.History = append(ctx.History, types.HistoryEntry{Side: types.Black, Action: opening})
	ctx.TurnIndex = 1
	ctx.ToMove = types.White
}

func (r *Renju) ValidateAction(ctx *types.GameContext, b *board.Board, side types.Side, a types.Action) error {
	if ctx.Phase == types.PhaseFinished {
		return ErrGameFinished
	}

	switch a.Kind {
	case types.ActionResign, types.ActionOfferDraw, types.ActionAcceptDraw, types.ActionRejectDraw:
		return nil

	case types.ActionClaimForbidden:
		if ctx.Phase != types.PhasePendingClaim {
			return ErrClaimNotPending
		}
		if side == types.Black {
			return ErrClaimByBlack
		}
		return nil

	case types.ActionPlace:
		p, ok := a.Position()
		if !ok {
			return ErrNoPosition
		}
		if !b.IsValid(p) {
			return ErrOutOfBounds
		}
		if !b.IsEmpty(p) {
			return ErrOccupied
		}
		if side == types.White && ctx.TurnIndex == 1 && p.Row < board.Center.Row {
			return ErrOpeningHalfBoard
		}
		return nil

	case types.ActionUndo:
		if !canUndo(ctx) {
			return ErrNothingToUndo
		}
		return nil
	}

	return ErrUnknownAction
}

func (r *Renju) ApplyAction(ctx *types.GameContext, b *board.Board, side types.Side, a types.Action) {
	if a.Kind == types.ActionUndo {
		undo(ctx, b)
		return
	}

	ctx.ElapsedGame += a.Spent
	ctx.History = append(ctx.History, types.HistoryEntry{Side: side, Action: a})

	switch a.Kind {
	case types.ActionPlace:
		// Moving on waives a pending claim.
		if ctx.Phase == types.PhasePendingClaim {
			ctx.Phase = types.PhaseNormal
			ctx.PendingForbidden = false
		}
		if ctx.DrawOfferBy != types.None && ctx.DrawOfferBy != side {
			ctx.DrawOfferBy = types.None
		}

		b.Set(a.Pos, side)
		last := a
		ctx.LastAction = &last
		ctx.TurnIndex++
		ctx.ToMove = side.Opponent()

		if ctx.Phase == types.PhaseOpening && ctx.TurnIndex > 2 {
			ctx.Phase = types.PhaseNormal
		}

	case types.ActionOfferDraw:
		ctx.DrawOfferBy = side

	case types.ActionRejectDraw:
		if ctx.DrawOfferBy == side.Opponent() {
			ctx.DrawOfferBy = types.None
		}
	}
}

func (r *Renju) EvaluateAfterAction(ctx *types.GameContext, b *board.Board, side types.Side, a types.Action) types.Outcome {
	switch a.Kind {
	case types.ActionResign:
		return types.Outcome{Status: types.StatusWin, Winner: side.Opponent(), Reason: types.ReasonResignation}

	case types.ActionClaimForbidden:
		return types.Outcome{Status: types.StatusForbidden, Winner: types.White, Reason: types.ReasonForbiddenClaimed}

	case types.ActionOfferDraw:
		return types.Ongoing(types.ReasonDrawOffered)

	case types.ActionAcceptDraw:
		if ctx.DrawOfferBy != types.None && ctx.DrawOfferBy == side.Opponent() {
			return types.Outcome{Status: types.StatusDraw, Reason: types.ReasonDrawAgreed}
		}
		return types.Ongoing(types.ReasonNoDrawOffer)

	case types.ActionRejectDraw:
		return types.Ongoing(types.ReasonDrawRejected)

	case types.ActionUndo:
		return types.Ongoing(types.ReasonUndone)

	case types.ActionPlace:
		return r.evaluatePlace(b, side, a.Pos)
	}
	return types.Ongoing(types.ReasonNone)
}

func (r *Renju) evaluatePlace(b *board.Board, side types.Side, p types.Pos) types.Outcome {
	five := MakesFive(b, p, side)
	overline := MakesLongChain(b, p, side)

	if side == types.White {
		if overline {
			return types.Outcome{Status: types.StatusWin, Winner: types.White, Reason: types.ReasonLongChain}
		}
		if five {
			return types.Outcome{Status: types.StatusWin, Winner: types.White, Reason: types.ReasonFive}
		}
	} else {
		if five {
			return types.Outcome{Status: types.StatusWin, Winner: types.Black, Reason: types.ReasonFive}
		}
		if foul, ok := r.IsForbidden(b, p); ok {
			return types.Outcome{Status: types.StatusPendingClaim, Reason: types.ReasonForbiddenMove, Foul: foul}
		}
	}

	if b.IsFull() {
		return types.Outcome{Status: types.StatusDraw, Reason: types.ReasonBoardFull}
	}
	return types.Ongoing(types.ReasonNone)
}

func (r *Renju) OnTimeout(ctx *types.GameContext, side types.Side) types.Outcome {
	warnings := ctx.AddWarning(side)
	if warnings > MaxTimeoutWarnings {
		return types.Outcome{Status: types.StatusTimeoutLose, Winner: side.Opponent(), Reason: types.ReasonTimeoutLimit}
	}
	return types.Outcome{
		Status: types.StatusOngoing,
		Reason: types.ReasonTimeoutWarning,
		Detail: fmt.Sprintf("%d/%d", warnings, MaxTimeoutWarnings),
	}
}

func (r *Renju) IsForbidden(b *board.Board, p types.Pos) (types.ForbiddenKind, bool) {
	return IsForbidden(b, p)
}

// Conclude moves the phase machine to follow an outcome: a foul opens the
// claim window, a terminal outcome finishes the game.
func Conclude(ctx *types.GameContext, o types.Outcome) {
	switch {
	case o.Status == types.StatusPendingClaim:
		ctx.Phase = types.PhasePendingClaim
		ctx.PendingForbidden = true
	case o.Terminal():
		ctx.Phase = types.PhaseFinished
		ctx.PendingForbidden = false
		ctx.DrawOfferBy = types.None
	}
}

// Play validates, applies, evaluates and concludes one action.
// A rejected action leaves board and context untouched.
func Play(rs RuleSet, ctx *types.GameContext, b *board.Board, side types.Side, a types.Action) (types.Outcome, error) {
	if err := rs.ValidateAction(ctx, b, side, a); err != nil {
		return types.Outcome{}, err
	}
	rs.ApplyAction(ctx, b, side, a)
	outcome := rs.EvaluateAfterAction(ctx, b, side, a)
	Conclude(ctx, outcome)
	return outcome, nil
}

// Replay rebuilds a game from its move history. The first entry must be
// Black's opening stone at the centre.
func Replay(rs RuleSet, history []types.HistoryEntry, total time.Duration) (board.Board, types.GameContext, types.Outcome, error) {
	b := board.New()
	ctx := types.NewGameContext(total)
	rs.InitGame(&ctx, &b)
	outcome := types.Ongoing(types.ReasonNone)

	if len(history) == 0 {
		return b, ctx, outcome, nil
	}
	first := history[0]
	if p, ok := first.Action.Position(); !ok || first.Side != types.Black || p != board.Center {
		return b, ctx, outcome, fmt.Errorf("replay: first move must be black at center, got %s %s", first.Side, first.Action)
	}

	for i, entry := range history[1:] {
		if entry.Action.Kind == types.ActionPlace && entry.Side != ctx.ToMove {
			return b, ctx, outcome, fmt.Errorf("replay entry %d (%s %s): %w", i+1, entry.Side, entry.Action, ErrOutOfTurn)
		}
		out, err := Play(rs, &ctx, &b, entry.Side, entry.Action)
		if err != nil {
			return b, ctx, outcome, fmt.Errorf("replay entry %d (%s %s): %w", i+1, entry.Side, entry.Action, err)
		}
		outcome = out
	}
	return b, ctx, outcome, nil
}

func canUndo(ctx *types.GameContext) bool {
	for i := len(ctx.History) - 1; i >= 1; i-- {
		if ctx.History[i].Action.Kind == types.ActionPlace {
			return true
		}
	}
	return false
}

// undo pops history back to and including the latest placement after the
// opening stone, and reverses it on the board. Time spent on the popped
// actions is returned to the game clock.
func undo(ctx *types.GameContext, b *board.Board) {
	for len(ctx.History) > 1 {
		entry := ctx.History[len(ctx.History)-1]
		ctx.History = ctx.History[:len(ctx.History)-1]
		ctx.ElapsedGame -= entry.Action.Spent
		if ctx.ElapsedGame < 0 {
			ctx.ElapsedGame = 0
		}
		if p, ok := entry.Action.Position(); ok {
			b.Clear(p)
			ctx.TurnIndex--
			ctx.ToMove = entry.Side
			break
		}
	}

	ctx.PendingForbidden = false
	ctx.DrawOfferBy = types.None
	if ctx.TurnIndex <= 2 {
		ctx.Phase = types.PhaseOpening
	} else {
		ctx.Phase = types.PhaseNormal
	}
	ctx.LastAction = nil
	if p, ok := ctx.LastPlace(); ok {
		last := types.Place(p)
		ctx.LastAction = &last
	}
}
