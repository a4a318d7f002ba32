package local

import (
	"context"

	"go.uber.org/zap"

	"renju-local/ai"
	"renju-local/board"
	"renju-local/engine"
	"renju-local/rules"
	"renju-local/types"
)

// Human relays actions typed at the keyboard to the session.
type Human struct {
	label   string
	actions chan types.Action
}

// NewHuman creates a keyboard player.
func NewHuman(label string) *Human {
	return &Human{
		label:   label,
		actions: make(chan types.Action, 1),
	}
}

func (h *Human) Name() string {
	return h.label
}

func (h *Human) IsHuman() bool {
	return true
}

// NextAction waits for the next relayed action.
func (h *Human) NextAction(ctx context.Context, _ types.GameContext, _ board.Board) (types.Action, error) {
	select {
	case a := <-h.actions:
		return a, nil
	case <-ctx.Done():
		return types.Action{}, ctx.Err()
	}
}

// Relay hands an action to a waiting NextAction. It never blocks; a
// second action before the first is consumed is refused.
func (h *Human) Relay(a types.Action) error {
	select {
	case h.actions <- a:
		return nil
	default:
		return engine.ErrNotYourTurn
	}
}

// NewPlayers builds the Black and White players for cfg.Mode.
func NewPlayers(cfg engine.GameConfig, rs rules.RuleSet, log *zap.SugaredLogger) (black, white engine.Player) {
	budget, depth := ai.BudgetFor(cfg.Difficulty)
	if cfg.AIBudget > 0 {
		budget = cfg.AIBudget
	}
	if cfg.AIDepth > 0 {
		depth = cfg.AIDepth
	}

	if log == nil {
		log = zap.NewNop().Sugar()
	}

	player := func(side types.Side) engine.Player {
		if cfg.Mode.HumanPlays(side) {
			if cfg.Mode == engine.HumanVsHuman {
				return NewHuman(side.String())
			}
			return NewHuman("Player")
		}
		return ai.NewPlayer(rs, budget, depth, log.With("player", side.String()))
	}
	return player(types.Black), player(types.White)
}
