// Package local runs a renju game in-process against the search AI or another person.
package local

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"renju-local/board"
	"renju-local/engine"
	"renju-local/notation"
	"renju-local/rules"
	"renju-local/types"
)

// Session implements engine.GameEngine. Each turn runs in its own
// goroutine that asks the side to move for an action; results from a
// superseded turn are dropped.
type Session struct {
	config   engine.GameConfig
	rules    rules.RuleSet
	players  map[types.Side]engine.Player
	recorder engine.Recorder
	log      *zap.SugaredLogger
	now      func() time.Time

	board     board.Board
	gc        types.GameContext
	outcome   types.Outcome
	message   string
	connected bool
	gameOver  bool
	turn      uint64
	cancel    context.CancelFunc
	turnStart time.Time

	moveCallback func(engine.Snapshot)
	endCallback  func(types.Outcome)

	mu sync.Mutex
	wg sync.WaitGroup
}

// New creates a session. rec may be nil when the game is not recorded.
func New(cfg engine.GameConfig, rs rules.RuleSet, black, white engine.Player, rec engine.Recorder, log *zap.SugaredLogger) *Session {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Session{
		config:   cfg,
		rules:    rs,
		players:  map[types.Side]engine.Player{types.Black: black, types.White: white},
		recorder: rec,
		log:      log,
		now:      time.Now,
		board:    board.New(),
		gc:       types.NewGameContext(cfg.TotalTime),
	}
}

// Player returns the player for side.
func (s *Session) Player(side types.Side) engine.Player {
	return s.players[side]
}

// Connect places the opening stone and starts the first turn.
func (s *Session) Connect() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.connected {
		return fmt.Errorf("session already started")
	}
	if s.players[types.Black] == nil || s.players[types.White] == nil {
		return fmt.Errorf("both players are required")
	}

	s.rules.InitGame(&s.gc, &s.board)
	s.connected = true
	s.message = "Game Start!"
	s.record(func(r engine.Recorder) error { return r.AddMove(types.Black, board.Center) })
	s.log.Infow("game started",
		"rules", s.rules.Name(),
		"mode", s.config.Mode.String(),
		"black", s.players[types.Black].Name(),
		"white", s.players[types.White].Name(),
	)

	s.startTurn()
	return nil
}

// startTurn supersedes any pending turn and asks the side to move for an
// action. Must be called while holding the lock.
func (s *Session) startTurn() {
	if s.cancel != nil {
		s.cancel()
	}
	s.turn++

	side := s.gc.ToMove
	p := s.players[side]
	var ctx context.Context
	var cancel context.CancelFunc
	if p.IsHuman() && s.config.TurnLimit > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), s.config.TurnLimit)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	s.cancel = cancel
	s.turnStart = s.now()

	turn := s.turn
	gc := s.gc.Clone()
	b := s.board

	s.wg.Add(1)
	go s.runTurn(ctx, turn, side, p, gc, b)
}

func (s *Session) runTurn(ctx context.Context, turn uint64, side types.Side, p engine.Player, gc types.GameContext, b board.Board) {
	defer s.wg.Done()

	a, err := p.NextAction(ctx, gc, b)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			s.handleTimeout(turn, side)
		}
		return
	}
	s.apply(turn, side, a)
}

// apply runs one action through the rule engine.
func (s *Session) apply(turn uint64, side types.Side, a types.Action) {
	s.mu.Lock()

	if turn != s.turn || s.gameOver {
		s.mu.Unlock()
		return
	}

	if a.Spent == 0 {
		a.Spent = s.now().Sub(s.turnStart)
	}

	outcome, err := rules.Play(s.rules, &s.gc, &s.board, side, a)
	if err != nil {
		s.message = fmt.Sprintf("Invalid Action: %v", err)
		s.log.Infow("action rejected", "action", notation.FormatAction(side, a), "err", err)
		s.startTurn()
		s.notify(false)
		return
	}
	s.log.Debugw("action accepted", "action", notation.FormatAction(side, a), "turn", s.gc.TurnIndex, "spent", a.Spent)
	s.accepted(side, a, outcome)

	if a.Kind == types.ActionUndo && !s.players[s.gc.ToMove].IsHuman() {
		// Against the AI, undo also takes back the AI's reply.
		if again, err := rules.Play(s.rules, &s.gc, &s.board, side, a); err == nil {
			s.accepted(side, a, again)
		}
	}

	if !outcome.Terminal() && a.Kind == types.ActionOfferDraw {
		s.offerDraw(side)
	}

	if !s.gameOver {
		s.startTurn()
	}
	s.notify(s.gameOver)
}

// accepted updates the record and status after a legal action.
// Must be called while holding the lock.
func (s *Session) accepted(side types.Side, a types.Action, outcome types.Outcome) {
	s.outcome = outcome
	s.message = outcome.Message()
	if outcome.Reason == types.ReasonNone {
		s.message = notation.FormatAction(side, a)
	}

	switch a.Kind {
	case types.ActionPlace:
		s.record(func(r engine.Recorder) error { return r.AddMove(side, a.Pos) })
	case types.ActionUndo:
		s.record(func(r engine.Recorder) error { return r.UndoMoves(1) })
	}

	if outcome.Terminal() {
		s.finish(outcome)
	}
}

// offerDraw lets a computer opponent answer a draw offer at once.
// Must be called while holding the lock.
func (s *Session) offerDraw(side types.Side) {
	opp := side.Opponent()
	p := s.players[opp]
	responder, ok := p.(engine.DrawResponder)
	if !ok || p.IsHuman() {
		return
	}
	reply := responder.RespondToDraw(opp, s.gc.Clone(), s.board)
	outcome, err := rules.Play(s.rules, &s.gc, &s.board, opp, reply)
	if err != nil {
		s.log.Warnw("draw reply rejected", "action", notation.FormatAction(opp, reply), "err", err)
		return
	}
	s.accepted(opp, reply, outcome)
}

func (s *Session) handleTimeout(turn uint64, side types.Side) {
	s.mu.Lock()

	if turn != s.turn || s.gameOver {
		s.mu.Unlock()
		return
	}

	outcome := s.rules.OnTimeout(&s.gc, side)
	rules.Conclude(&s.gc, outcome)
	s.outcome = outcome
	s.message = fmt.Sprintf("%s: %s", side, outcome.Message())
	s.log.Infow("turn timed out", "side", side, "warnings", s.gc.Warnings(side))

	if outcome.Terminal() {
		s.finish(outcome)
	} else {
		s.startTurn()
	}
	s.notify(s.gameOver)
}

// finish ends the game. Must be called while holding the lock.
func (s *Session) finish(outcome types.Outcome) {
	s.gameOver = true
	s.outcome = outcome
	if s.cancel != nil {
		s.cancel()
	}
	s.record(func(r engine.Recorder) error { return r.SetResult(outcome) })
	s.log.Infow("game over", "outcome", outcome.Message(), "turns", s.gc.TurnIndex)
}

// notify releases the lock and runs the callbacks outside it.
func (s *Session) notify(ended bool) {
	snap := s.snapshot()
	moveCallback := s.moveCallback
	endCallback := s.endCallback
	outcome := s.outcome
	s.mu.Unlock()

	if moveCallback != nil {
		moveCallback(snap)
	}
	if ended && endCallback != nil {
		endCallback(outcome)
	}
}

func (s *Session) record(f func(engine.Recorder) error) {
	if s.recorder == nil {
		return
	}
	if err := f(s.recorder); err != nil {
		s.log.Warnw("game record update failed", "err", err)
	}
}

// Submit validates a human action and relays it to the waiting turn.
func (s *Session) Submit(a types.Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return engine.ErrNotConnected
	}
	if s.gameOver {
		return engine.ErrGameOver
	}

	side := s.gc.ToMove
	human, ok := s.players[side].(*Human)
	if !ok {
		return engine.ErrNotYourTurn
	}
	if err := s.rules.ValidateAction(&s.gc, &s.board, side, a); err != nil {
		s.message = fmt.Sprintf("Invalid Action: %v", err)
		s.log.Infow("action rejected", "action", notation.FormatAction(side, a), "err", err)
		return err
	}
	return human.Relay(a)
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() engine.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// snapshot must be called while holding the lock.
func (s *Session) snapshot() engine.Snapshot {
	human := false
	if p := s.players[s.gc.ToMove]; p != nil {
		human = p.IsHuman()
	}
	return engine.Snapshot{
		Board:   s.board,
		Context: s.gc.Clone(),
		Outcome: s.outcome,
		Message: s.message,
		Human:   human && !s.gameOver,
	}
}

// IsMyTurn returns true if the side to move is played from the keyboard.
func (s *Session) IsMyTurn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.players[s.gc.ToMove]
	return s.connected && !s.gameOver && p != nil && p.IsHuman()
}

// OnMove registers a callback for accepted actions and timeouts.
func (s *Session) OnMove(callback func(engine.Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moveCallback = callback
}

// OnGameEnd registers a callback for when the game ends.
func (s *Session) OnGameEnd(callback func(types.Outcome)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endCallback = callback
}

// Close stops the pending turn, waits for it to return and closes the record.
func (s *Session) Close() {
	s.mu.Lock()
	s.turn++
	if s.cancel != nil {
		s.cancel()
	}
	rec := s.recorder
	s.recorder = nil
	s.mu.Unlock()

	s.wg.Wait()
	if rec != nil {
		if err := rec.Close(); err != nil {
			s.log.Warnw("closing game record", "err", err)
		}
	}
}
