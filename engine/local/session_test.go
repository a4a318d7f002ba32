package local

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"renju-local/board"
	"renju-local/engine"
	"renju-local/rules"
	"renju-local/types"
)

// bot is a computer player driven by the test.
type bot struct {
	next  chan types.Action
	reply types.ActionKind
}

func newBot(reply types.ActionKind) *bot {
	return &bot{next: make(chan types.Action, 4), reply: reply}
}

func (b *bot) Name() string  { return "bot" }
func (b *bot) IsHuman() bool { return false }

func (b *bot) NextAction(ctx context.Context, _ types.GameContext, _ board.Board) (types.Action, error) {
	select {
	case a := <-b.next:
		return a, nil
	case <-ctx.Done():
		return types.Action{}, ctx.Err()
	}
}

func (b *bot) RespondToDraw(types.Side, types.GameContext, board.Board) types.Action {
	return types.NewAction(b.reply)
}

type fakeRecorder struct {
	mu     sync.Mutex
	moves  []types.Pos
	result types.Outcome
	closed bool
}

func (r *fakeRecorder) AddMove(_ types.Side, p types.Pos) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.moves = append(r.moves, p)
	return nil
}

func (r *fakeRecorder) UndoMoves(n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.moves = r.moves[:len(r.moves)-n]
	return nil
}

func (r *fakeRecorder) SetResult(o types.Outcome) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result = o
	return nil
}

func (r *fakeRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *fakeRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.moves)
}

type harness struct {
	session *Session
	black   *bot
	white   *Human
	rec     *fakeRecorder
	moves   chan engine.Snapshot
	ended   chan types.Outcome
}

func start(t *testing.T, cfg engine.GameConfig, reply types.ActionKind) *harness {
	t.Helper()
	h := &harness{
		black: newBot(reply),
		white: NewHuman("Player"),
		rec:   &fakeRecorder{},
		moves: make(chan engine.Snapshot, 64),
		ended: make(chan types.Outcome, 1),
	}
	cfg.Mode = engine.AIVsHuman
	h.session = New(cfg, rules.NewRenju(), h.black, h.white, h.rec, nil)
	h.session.OnMove(func(s engine.Snapshot) { h.moves <- s })
	h.session.OnGameEnd(func(o types.Outcome) { h.ended <- o })
	if err := h.session.Connect(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(h.session.Close)
	return h
}

func (h *harness) waitFor(t *testing.T, what string, cond func(engine.Snapshot) bool) engine.Snapshot {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case s := <-h.moves:
			if cond(s) {
				return s
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s; last state %+v", what, h.session.Snapshot().Context)
		}
	}
}

func (h *harness) waitEnd(t *testing.T) types.Outcome {
	t.Helper()
	select {
	case o := <-h.ended:
		return o
	case <-time.After(2 * time.Second):
		t.Fatal("game did not end")
	}
	return types.Outcome{}
}

func TestSubmitBeforeConnect(t *testing.T) {
	s := New(engine.DefaultConfig(), rules.NewRenju(), NewHuman("a"), NewHuman("b"), nil, nil)
	if err := s.Submit(types.Place(types.Pos{Row: 8, Col: 8})); !errors.Is(err, engine.ErrNotConnected) {
		t.Fatalf("err = %v, want ErrNotConnected", err)
	}
	if s.IsMyTurn() {
		t.Fatal("IsMyTurn before Connect")
	}
}

func TestTurnsAndUndo(t *testing.T) {
	h := start(t, engine.GameConfig{}, types.ActionRejectDraw)
	s := h.session

	if !s.IsMyTurn() {
		t.Fatal("human white should move first after the opening stone")
	}
	if err := s.Submit(types.Place(types.Pos{Row: 3, Col: 3})); !errors.Is(err, rules.ErrOpeningHalfBoard) {
		t.Fatalf("upper-half opening err = %v", err)
	}
	if snap := s.Snapshot(); snap.Board.Stones() != 1 || snap.Context.TurnIndex != 1 {
		t.Fatal("rejected move changed the game")
	}

	if err := s.Submit(types.Place(types.Pos{Row: 8, Col: 8})); err != nil {
		t.Fatal(err)
	}
	h.waitFor(t, "white move", func(s engine.Snapshot) bool { return s.Context.ToMove == types.Black })

	if err := s.Submit(types.Place(types.Pos{Row: 9, Col: 9})); !errors.Is(err, engine.ErrNotYourTurn) {
		t.Fatalf("submit during bot turn err = %v", err)
	}

	h.black.next <- types.Place(types.Pos{Row: 6, Col: 6})
	h.waitFor(t, "bot reply", func(s engine.Snapshot) bool { return s.Board.Stones() == 3 })
	if h.rec.count() != 3 {
		t.Fatalf("recorded moves = %d, want 3", h.rec.count())
	}

	if err := s.Submit(types.NewAction(types.ActionUndo)); err != nil {
		t.Fatal(err)
	}
	snap := h.waitFor(t, "undo", func(s engine.Snapshot) bool { return s.Board.Stones() == 1 })
	if snap.Context.ToMove != types.White || snap.Context.TurnIndex != 1 {
		t.Fatalf("after undo toMove=%v turn=%d", snap.Context.ToMove, snap.Context.TurnIndex)
	}
	if h.rec.count() != 1 {
		t.Fatalf("record after undo = %d moves, want 1", h.rec.count())
	}
}

func TestTimeoutsEndGame(t *testing.T) {
	h := start(t, engine.GameConfig{TurnLimit: 20 * time.Millisecond}, types.ActionRejectDraw)

	out := h.waitEnd(t)
	if out.Status != types.StatusTimeoutLose || out.Winner != types.Black {
		t.Fatalf("outcome = %+v", out)
	}
	snap := h.session.Snapshot()
	if got := snap.Context.Warnings(types.White); got != rules.MaxTimeoutWarnings+1 {
		t.Fatalf("warnings = %d", got)
	}
	if snap.Context.Phase != types.PhaseFinished || snap.Human {
		t.Fatalf("phase = %v human = %v", snap.Context.Phase, snap.Human)
	}
	if err := h.session.Submit(types.Place(types.Pos{Row: 8, Col: 8})); !errors.Is(err, engine.ErrGameOver) {
		t.Fatalf("submit after end err = %v", err)
	}
}

func TestDrawAcceptedByComputer(t *testing.T) {
	h := start(t, engine.GameConfig{}, types.ActionAcceptDraw)

	if err := h.session.Submit(types.NewAction(types.ActionOfferDraw)); err != nil {
		t.Fatal(err)
	}
	out := h.waitEnd(t)
	if out.Status != types.StatusDraw || out.Reason != types.ReasonDrawAgreed {
		t.Fatalf("outcome = %+v", out)
	}

	h.session.Close()
	h.rec.mu.Lock()
	defer h.rec.mu.Unlock()
	if h.rec.result.Status != types.StatusDraw || !h.rec.closed {
		t.Fatalf("record result = %+v closed = %v", h.rec.result, h.rec.closed)
	}
}

func TestDrawRejectedByComputer(t *testing.T) {
	h := start(t, engine.GameConfig{}, types.ActionRejectDraw)

	if err := h.session.Submit(types.NewAction(types.ActionOfferDraw)); err != nil {
		t.Fatal(err)
	}
	snap := h.waitFor(t, "draw reply", func(s engine.Snapshot) bool {
		return s.Outcome.Reason == types.ReasonDrawRejected
	})
	if snap.Context.DrawOfferBy != types.None || snap.Context.ToMove != types.White {
		t.Fatalf("offer=%v toMove=%v", snap.Context.DrawOfferBy, snap.Context.ToMove)
	}
	if !h.session.IsMyTurn() {
		t.Fatal("offering a draw should not pass the turn")
	}
}

func TestNewPlayers(t *testing.T) {
	rs := rules.NewRenju()
	tests := []struct {
		mode         engine.Mode
		black, white bool
	}{
		{engine.HumanVsAI, true, false},
		{engine.AIVsHuman, false, true},
		{engine.HumanVsHuman, true, true},
		{engine.AIVsAI, false, false},
	}
	for _, tt := range tests {
		cfg := engine.DefaultConfig()
		cfg.Mode = tt.mode
		black, white := NewPlayers(cfg, rs, nil)
		if black.IsHuman() != tt.black || white.IsHuman() != tt.white {
			t.Errorf("%v: black human=%v white human=%v", tt.mode, black.IsHuman(), white.IsHuman())
		}
		if _, ok := white.(engine.DrawResponder); ok == tt.white {
			t.Errorf("%v: white draw responder = %v", tt.mode, ok)
		}
	}
}

func TestHumanRelay(t *testing.T) {
	h := NewHuman("p")
	if err := h.Relay(types.NewAction(types.ActionResign)); err != nil {
		t.Fatal(err)
	}
	if err := h.Relay(types.NewAction(types.ActionResign)); !errors.Is(err, engine.ErrNotYourTurn) {
		t.Fatalf("second relay err = %v", err)
	}
	a, err := h.NextAction(context.Background(), types.GameContext{}, board.New())
	if err != nil || a.Kind != types.ActionResign {
		t.Fatalf("NextAction = %v, %v", a, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	if _, err := h.NextAction(ctx, types.GameContext{}, board.New()); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("idle NextAction err = %v", err)
	}
}
