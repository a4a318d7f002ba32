// Package types contains shared data structures for renju-local.
package types

import (
	"fmt"
	"time"
)

// Side is the owner of a stone or the player to move.
// The zero value is None, which doubles as an empty cell.
type Side int

const (
	None Side = iota
	Black
	White
)

// Opponent returns the other player. None has no opponent.
func (s Side) Opponent() Side {
	switch s {
	case Black:
		return White
	case White:
		return Black
	}
	return None
}

func (s Side) String() string {
	switch s {
	case Black:
		return "Black"
	case White:
		return "White"
	}
	return "None"
}

// Pos is a 0-indexed (row, col) board coordinate.
type Pos struct {
	Row int
	Col int
}

// InvalidPos is the sentinel used for malformed input. It is always out of bounds.
var InvalidPos = Pos{Row: -1, Col: -1}

// Offset returns the position n steps away in direction (dr, dc).
func (p Pos) Offset(dr, dc, n int) Pos {
	return Pos{Row: p.Row + dr*n, Col: p.Col + dc*n}
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// ActionKind enumerates what a player can do on their turn.
type ActionKind int

const (
	ActionPlace ActionKind = iota
	ActionResign
	ActionClaimForbidden
	ActionOfferDraw
	ActionAcceptDraw
	ActionRejectDraw
	ActionUndo
)

func (k ActionKind) String() string {
	switch k {
	case ActionPlace:
		return "place"
	case ActionResign:
		return "resign"
	case ActionClaimForbidden:
		return "claim"
	case ActionOfferDraw:
		return "offer-draw"
	case ActionAcceptDraw:
		return "accept-draw"
	case ActionRejectDraw:
		return "reject-draw"
	case ActionUndo:
		return "undo"
	}
	return fmt.Sprintf("action(%d)", int(k))
}

// Action is a single player decision. Only ActionPlace carries a position.
type Action struct {
	Kind   ActionKind
	Pos    Pos
	HasPos bool
	Spent  time.Duration // think time
}

// Place builds a placement action at p.
func Place(p Pos) Action {
	return Action{Kind: ActionPlace, Pos: p, HasPos: true}
}

// NewAction builds a position-less action of the given kind.
func NewAction(kind ActionKind) Action {
	return Action{Kind: kind}
}

// Position returns the placement position, if any.
func (a Action) Position() (Pos, bool) {
	if a.Kind != ActionPlace || !a.HasPos {
		return InvalidPos, false
	}
	return a.Pos, true
}

func (a Action) String() string {
	if p, ok := a.Position(); ok {
		return fmt.Sprintf("place %s", p)
	}
	return a.Kind.String()
}

// Status is the kind of result produced after an action or timeout.
type Status int

const (
	StatusOngoing Status = iota
	StatusWin
	StatusDraw
	StatusForbidden
	StatusTimeoutLose
	StatusPendingClaim
)

func (s Status) String() string {
	switch s {
	case StatusOngoing:
		return "ongoing"
	case StatusWin:
		return "win"
	case StatusDraw:
		return "draw"
	case StatusForbidden:
		return "forbidden"
	case StatusTimeoutLose:
		return "timeout"
	case StatusPendingClaim:
		return "pending-claim"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// ForbiddenKind identifies which foul a Black move committed.
type ForbiddenKind int

const (
	NotForbidden ForbiddenKind = iota
	Overline
	ThreeThree
	FourFour
)

func (f ForbiddenKind) String() string {
	switch f {
	case Overline:
		return "Overline (6+)"
	case ThreeThree:
		return "Three-Three"
	case FourFour:
		return "Four-Four"
	}
	return ""
}

// Reason tags why an outcome was produced.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonFive
	ReasonLongChain
	ReasonResignation
	ReasonForbiddenMove
	ReasonForbiddenClaimed
	ReasonBoardFull
	ReasonDrawOffered
	ReasonDrawAgreed
	ReasonDrawRejected
	ReasonNoDrawOffer
	ReasonTimeoutWarning
	ReasonTimeoutLimit
	ReasonUndone
)

func (r Reason) String() string {
	switch r {
	case ReasonFive:
		return "Five"
	case ReasonLongChain:
		return "Long Chain"
	case ReasonResignation:
		return "Resignation"
	case ReasonForbiddenMove:
		return "Forbidden move"
	case ReasonForbiddenClaimed:
		return "Forbidden move claimed"
	case ReasonBoardFull:
		return "Board Full"
	case ReasonDrawOffered:
		return "Draw offered"
	case ReasonDrawAgreed:
		return "Draw agreed"
	case ReasonDrawRejected:
		return "Draw rejected"
	case ReasonNoDrawOffer:
		return "No draw offer to accept"
	case ReasonTimeoutWarning:
		return "Timeout Warning"
	case ReasonTimeoutLimit:
		return "Timeout (Max Warnings)"
	case ReasonUndone:
		return "Move undone"
	}
	return ""
}

// Outcome is the rule engine's verdict after an action.
type Outcome struct {
	Status Status
	Winner Side // None when there is no winner
	Reason Reason
	Foul   ForbiddenKind // set for StatusPendingClaim
	Detail string        // optional display text
}

// Ongoing is the neutral outcome.
func Ongoing(reason Reason) Outcome {
	return Outcome{Status: StatusOngoing, Reason: reason}
}

// Terminal reports whether the outcome ends the game.
func (o Outcome) Terminal() bool {
	switch o.Status {
	case StatusWin, StatusDraw, StatusForbidden, StatusTimeoutLose:
		return true
	}
	return false
}

// Message renders the outcome for display.
func (o Outcome) Message() string {
	text := o.Reason.String()
	if o.Foul != NotForbidden {
		text = o.Foul.String()
	}
	if o.Detail != "" {
		if text == "" {
			text = o.Detail
		} else {
			text = fmt.Sprintf("%s %s", text, o.Detail)
		}
	}
	switch o.Status {
	case StatusWin, StatusForbidden, StatusTimeoutLose:
		return fmt.Sprintf("%s wins (%s)", o.Winner, text)
	case StatusDraw:
		return fmt.Sprintf("Draw (%s)", text)
	case StatusPendingClaim:
		return fmt.Sprintf("Black played a forbidden move (%s). White can claim to win!", text)
	}
	return text
}

// Phase drives which actions are legal.
type Phase int

const (
	PhaseOpening Phase = iota
	PhaseNormal
	PhasePendingClaim
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseOpening:
		return "opening"
	case PhaseNormal:
		return "normal"
	case PhasePendingClaim:
		return "pending-claim"
	case PhaseFinished:
		return "finished"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// HistoryEntry is one accepted action in play order.
type HistoryEntry struct {
	Side   Side
	Action Action
}

// GameContext is the mutable session state shared with the rule engine and AI.
type GameContext struct {
	ToMove           Side
	TurnIndex        int
	LastAction       *Action
	BlackWarnings    int
	WhiteWarnings    int
	Phase            Phase
	PendingForbidden bool
	DrawOfferBy      Side
	History          []HistoryEntry

	TotalGameDuration time.Duration // zero means unlimited
	ElapsedGame       time.Duration
}

// NewGameContext returns a context for a fresh game with Black to move.
func NewGameContext(total time.Duration) GameContext {
	return GameContext{
		ToMove:            Black,
		Phase:             PhaseOpening,
		TotalGameDuration: total,
	}
}

// Warnings returns the timeout warnings issued to side.
func (c *GameContext) Warnings(side Side) int {
	if side == Black {
		return c.BlackWarnings
	}
	return c.WhiteWarnings
}

// AddWarning increments side's timeout warnings and returns the new count.
func (c *GameContext) AddWarning(side Side) int {
	if side == Black {
		c.BlackWarnings++
		return c.BlackWarnings
	}
	c.WhiteWarnings++
	return c.WhiteWarnings
}

// Remaining reports the unused part of the total game duration.
// It returns zero when the game is untimed or the budget is spent.
func (c *GameContext) Remaining() time.Duration {
	if c.TotalGameDuration <= 0 || c.ElapsedGame >= c.TotalGameDuration {
		return 0
	}
	return c.TotalGameDuration - c.ElapsedGame
}

// LastPlace returns the most recent placement, if any.
func (c *GameContext) LastPlace() (Pos, bool) {
	for i := len(c.History) - 1; i >= 0; i-- {
		if p, ok := c.History[i].Action.Position(); ok {
			return p, true
		}
	}
	return InvalidPos, false
}

// Clone returns a deep copy safe to hand to another goroutine.
func (c GameContext) Clone() GameContext {
	clone := c
	clone.History = append([]HistoryEntry(nil), c.History...)
	if c.LastAction != nil {
		last := *c.LastAction
		clone.LastAction = &last
	}
	return clone
}
