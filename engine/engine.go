// Package engine defines the contracts between the game session, its players and the UI.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"renju-local/board"
	"renju-local/types"
)

var (
	ErrNotYourTurn  = errors.New("not your turn")
	ErrGameOver     = errors.New("game is over")
	ErrNotConnected = errors.New("game not started")
)

// Player produces one action per turn. It receives copies of the game
// state and may keep them.
type Player interface {
	Name() string
	IsHuman() bool

	// NextAction blocks until the player decides or ctx is done.
	NextAction(ctx context.Context, gc types.GameContext, b board.Board) (types.Action, error)
}

// DrawResponder is implemented by players that answer draw offers on their own.
// side is the responder's colour; the returned action is AcceptDraw or RejectDraw.
type DrawResponder interface {
	RespondToDraw(side types.Side, gc types.GameContext, b board.Board) types.Action
}

// Snapshot is a read-only copy of a session's state for rendering.
type Snapshot struct {
	Board   board.Board
	Context types.GameContext
	Outcome types.Outcome
	Message string
	// Human reports whether the side to move is played from the keyboard.
	Human bool
}

// GameEngine is what the UI drives.
type GameEngine interface {
	// Connect sets up the board and starts the first turn.
	Connect() error

	// Snapshot returns a copy of the current state.
	Snapshot() Snapshot

	// Submit hands a human action to the session. Rule violations are
	// returned as errors and leave the game unchanged.
	Submit(a types.Action) error

	// IsMyTurn returns true if the side to move is human.
	IsMyTurn() bool

	// OnMove registers a callback run after every accepted action or timeout.
	OnMove(func(Snapshot))

	// OnGameEnd registers a callback for when the game ends.
	OnGameEnd(func(types.Outcome))

	// Close stops any pending turn and flushes the game record.
	Close()
}

// Recorder persists the game as it is played.
type Recorder interface {
	AddMove(side types.Side, p types.Pos) error
	UndoMoves(n int) error
	SetResult(o types.Outcome) error
	Close() error
}

// Mode selects which sides are played by humans.
type Mode int

const (
	HumanVsAI Mode = iota // human plays Black
	AIVsHuman             // human plays White
	HumanVsHuman
	AIVsAI
)

var modeNames = map[Mode]string{
	HumanVsAI:    "hva",
	AIVsHuman:    "avh",
	HumanVsHuman: "hvh",
	AIVsAI:       "ava",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Label is the menu text for m.
func (m Mode) Label() string {
	switch m {
	case HumanVsAI:
		return "Human vs AI (Human is Black)"
	case AIVsHuman:
		return "AI vs Human (Human is White)"
	case HumanVsHuman:
		return "Human vs Human"
	case AIVsAI:
		return "AI vs AI"
	}
	return m.String()
}

// HumanPlays reports whether side is controlled from the keyboard in m.
func (m Mode) HumanPlays(side types.Side) bool {
	switch m {
	case HumanVsAI:
		return side == types.Black
	case AIVsHuman:
		return side == types.White
	case HumanVsHuman:
		return true
	}
	return false
}

// ParseMode accepts the short names and a few spelled-out aliases.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hva", "human-ai", "black":
		return HumanVsAI, nil
	case "avh", "ai-human", "white":
		return AIVsHuman, nil
	case "hvh", "human-human", "local":
		return HumanVsHuman, nil
	case "ava", "ai-ai", "watch":
		return AIVsAI, nil
	}
	return HumanVsAI, fmt.Errorf("unknown mode %q", s)
}

// ModeFor picks the mode where a single human plays side.
func ModeFor(side types.Side) Mode {
	if side == types.White {
		return AIVsHuman
	}
	return HumanVsAI
}

// Difficulty selects the AI's time budget and depth.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return fmt.Sprintf("difficulty(%d)", int(d))
}

// ParseDifficulty accepts names or 1-3.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy", "1":
		return Easy, nil
	case "medium", "2":
		return Medium, nil
	case "hard", "3":
		return Hard, nil
	}
	return Medium, fmt.Errorf("unknown difficulty %q", s)
}

// GameConfig holds configuration for starting a new game.
type GameConfig struct {
	Mode       Mode
	Difficulty Difficulty
	TurnLimit  time.Duration // per human turn; zero disables timeouts
	TotalTime  time.Duration // overall game budget; zero means unlimited
	AIBudget   time.Duration // overrides the difficulty default when non-zero
	AIDepth    int           // overrides the difficulty default when non-zero
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		Mode:       HumanVsAI,
		Difficulty: Medium,
		TurnLimit:  15 * time.Second,
	}
}
