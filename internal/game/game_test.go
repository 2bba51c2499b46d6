package game_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/hexpop/internal/board"
	"github.com/vovakirdan/hexpop/internal/config"
	"github.com/vovakirdan/hexpop/internal/core"
	"github.com/vovakirdan/hexpop/internal/fixed"
	"github.com/vovakirdan/hexpop/internal/game"
	"github.com/vovakirdan/hexpop/internal/rng"
	"github.com/vovakirdan/hexpop/internal/shot"
)

func newGame(t *testing.T, rules config.Ruleset, seed int64, opts ...game.Option) *game.Game {
	t.Helper()
	g, err := game.New(rules, rng.New(seed), opts...)
	if err != nil {
		t.Fatalf("game.New: %v", err)
	}
	return g
}

func load(t *testing.T, g *game.Game, lines ...string) {
	t.Helper()
	rows, err := board.ParseRows(lines)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.LoadLayout(rows); err != nil {
		t.Fatalf("LoadLayout: %v", err)
	}
}

// shoot fires at angle and ticks until the shot has been resolved.
func shoot(t *testing.T, g *game.Game, angle fixed.Fixed) []game.Event {
	t.Helper()
	if err := g.SetAim(angle); err != nil {
		t.Fatalf("SetAim: %v", err)
	}
	if err := g.Fire(); err != nil {
		t.Fatalf("Fire: %v", err)
	}
	for i := 0; i < 1000 && g.Shot().Phase != shot.Idle; i++ {
		g.Tick(core.InputFrame{})
	}
	if g.Shot().Phase != shot.Idle {
		t.Fatal("shot never resolved")
	}
	return g.DrainEvents(nil)
}

func find(events []game.Event, kind game.EventKind) (game.Event, bool) {
	for _, e := range events {
		if e.Kind == kind {
			return e, true
		}
	}
	return game.Event{}, false
}

func puzzle() config.Ruleset {
	r := config.Preset(config.ModePuzzle)
	r.InitialRows = 0
	return r
}

func TestStraightUpLandsOnCeiling(t *testing.T) {
	g := newGame(t, puzzle(), 1)
	events := shoot(t, g, fixed.HalfPi)

	placed, ok := find(events, game.EventBubblePlaced)
	if !ok {
		t.Fatal("no BubblePlaced event")
	}
	if cell := placed.CellAt(0); cell.Row != 0 {
		t.Errorf("landing cell = %+v, want row 0", cell)
	}
	if g.Phase() != game.PhasePlaying {
		t.Errorf("phase = %s, want Playing", g.Phase())
	}
	if g.Board().Count() != 1 {
		t.Errorf("board count = %d, want 1", g.Board().Count())
	}
}

func TestCompletingRunPops(t *testing.T) {
	r := puzzle()
	r.AllowedColors = board.Red.Bit()
	g := newGame(t, r, 1)
	load(t, g, ". . . R R . . #")

	events := shoot(t, g, fixed.HalfPi)
	popped, ok := find(events, game.EventBubblesPopped)
	if !ok {
		t.Fatalf("no BubblesPopped event in %v", events)
	}
	if popped.Count < 3 || popped.Value <= 0 {
		t.Errorf("popped count %d value %d, want >= 3 and positive", popped.Count, popped.Value)
	}
	if g.Score() != 30 {
		t.Errorf("score = %d, want 30", g.Score())
	}
	if g.Combo() != 1 || g.Quantifier() != 3 {
		t.Errorf("combo %d quantifier %d, want 1 and 3", g.Combo(), g.Quantifier())
	}
	if g.Board().Count() != 1 {
		t.Errorf("only the blocker should remain, board:\n%s", g.Board())
	}
}

func TestArcadeInsertsRowAfterEightPlacements(t *testing.T) {
	g := newGame(t, config.Preset(config.ModeArcade), 5)
	load(t, g, "# # # # # # # #")

	angles := []int{80, 100, 70, 110, 60, 120, 85, 95}
	for i, deg := range angles {
		before := g.Board().Count()
		events := shoot(t, g, fixed.FromDegrees(deg))
		if g.Phase() != game.PhasePlaying {
			t.Fatalf("shot %d: phase %s (%s)", i+1, g.Phase(), g.LoseReason())
		}
		if _, ok := find(events, game.EventBubblePlaced); !ok {
			t.Fatalf("shot %d: no placement", i+1)
		}

		inserted, ok := find(events, game.EventRowInserted)
		if i < len(angles)-1 {
			if ok {
				t.Fatalf("row inserted after %d placements", i+1)
			}
			continue
		}
		if !ok {
			t.Fatal("no RowInserted after 8 placements")
		}

		b := g.Board()
		if int(inserted.Count) != b.RowCount(0) || b.RowCount(0) != b.Cols(0) {
			t.Errorf("inserted %d, row 0 holds %d of %d", inserted.Count, b.RowCount(0), b.Cols(0))
		}
		want := before + 1 + int(inserted.Count)
		for _, e := range events {
			if e.Kind == game.EventBubblesPopped || e.Kind == game.EventBubblesDropped {
				want -= int(e.Count)
			}
		}
		if b.Count() != want {
			t.Errorf("board count = %d, want %d", b.Count(), want)
		}
		if g.ShotsUntilRow() != 8 {
			t.Errorf("countdown = %d, want reset to 8", g.ShotsUntilRow())
		}
	}
}

func TestDeterministicSessions(t *testing.T) {
	run := func(seed int64) (uint64, []game.Event) {
		g := newGame(t, config.Preset(config.ModeArcade), seed)
		var events []game.Event
		angles := []int{75, 120, 95, 40, 140, 88, 101, 63}
		for f := 0; f < 3000 && !g.Phase().Over(); f++ {
			var in core.InputFrame
			if f%40 == 0 {
				in.SetAim(fixed.FromDegrees(angles[(f/40)%len(angles)]))
				in.Set(core.ActionFire)
			}
			if f%97 == 0 {
				in.Set(core.ActionSwap)
			}
			g.Tick(in)
			events = g.DrainEvents(events)
		}
		return g.Checksum(), events
	}

	sum1, ev1 := run(99)
	sum2, ev2 := run(99)
	if sum1 != sum2 {
		t.Fatalf("checksums differ: %x vs %x", sum1, sum2)
	}
	if len(ev1) != len(ev2) {
		t.Fatalf("event counts differ: %d vs %d", len(ev1), len(ev2))
	}
	for i := range ev1 {
		if ev1[i] != ev2[i] {
			t.Fatalf("event %d differs: %+v vs %+v", i, ev1[i], ev2[i])
		}
	}
	if sum3, _ := run(100); sum3 == sum1 {
		t.Error("different seeds produced the same checksum")
	}
}

func TestNewRejects(t *testing.T) {
	r := puzzle()
	r.MatchThreshold = 0
	if _, err := game.New(r, rng.New(1)); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("bad ruleset err = %v", err)
	}

	r = puzzle()
	r.InitialRows = r.Rows + 1
	if _, err := game.New(r, rng.New(1)); !errors.Is(err, core.ErrOutOfBounds) {
		t.Errorf("too many initial rows err = %v", err)
	}

	if _, err := game.New(puzzle(), nil); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("nil random err = %v", err)
	}
}

func TestLoadLayoutTooDeep(t *testing.T) {
	g := newGame(t, puzzle(), 1)
	rows := make([][]board.Bubble, g.Board().Rows()+1)
	if err := g.LoadLayout(rows); !errors.Is(err, core.ErrOutOfBounds) {
		t.Errorf("err = %v, want ErrOutOfBounds", err)
	}
}

func TestFireWhileInFlight(t *testing.T) {
	g := newGame(t, puzzle(), 1)
	if err := g.Fire(); err != nil {
		t.Fatal(err)
	}
	sum := g.Checksum()
	if err := g.Fire(); !errors.Is(err, core.ErrInvalidState) {
		t.Errorf("second Fire err = %v", err)
	}
	if err := g.Swap(); !errors.Is(err, core.ErrInvalidState) {
		t.Errorf("Swap mid-shot err = %v", err)
	}
	if g.Checksum() != sum || g.ShotsFired() != 1 {
		t.Error("rejected requests changed state")
	}
}

func TestSwap(t *testing.T) {
	g := newGame(t, puzzle(), 1)
	cur, next := g.Current(), g.Next()
	if err := g.Swap(); err != nil {
		t.Fatal(err)
	}
	if g.Current() != next || g.Next() != cur {
		t.Error("Swap did not exchange bubbles")
	}

	r := puzzle()
	r.AllowColorSwitch = false
	g = newGame(t, r, 1)
	if err := g.Swap(); !errors.Is(err, core.ErrInvalidState) {
		t.Errorf("disallowed Swap err = %v", err)
	}
}

func TestPause(t *testing.T) {
	g := newGame(t, puzzle(), 1)
	if err := g.Unpause(); !errors.Is(err, core.ErrInvalidState) {
		t.Errorf("Unpause while playing err = %v", err)
	}

	var in core.InputFrame
	in.Set(core.ActionPause)
	g.Tick(in)
	if g.Phase() != game.PhasePaused {
		t.Fatalf("phase = %s, want Paused", g.Phase())
	}
	frame := g.Frame()
	for i := 0; i < 10; i++ {
		g.Tick(core.InputFrame{})
	}
	if g.Frame() != frame {
		t.Errorf("paused ticks advanced frame %d -> %d", frame, g.Frame())
	}
	if err := g.Fire(); !errors.Is(err, core.ErrInvalidState) {
		t.Errorf("Fire while paused err = %v", err)
	}

	g.Tick(in)
	if g.Phase() != game.PhasePlaying {
		t.Errorf("phase after toggle = %s, want Playing", g.Phase())
	}
	events := g.DrainEvents(nil)
	if _, ok := find(events, game.EventPause); !ok {
		t.Error("missing Pause event")
	}
	if _, ok := find(events, game.EventUnpause); !ok {
		t.Error("missing Unpause event")
	}
}

func TestSetAimRejectsOutOfRange(t *testing.T) {
	g := newGame(t, puzzle(), 1)
	for _, a := range []fixed.Fixed{0, fixed.Pi, -fixed.HalfPi, game.MinAim - 1} {
		if err := g.SetAim(a); !errors.Is(err, core.ErrInvalidArgument) {
			t.Errorf("SetAim(%v) err = %v", a.Float(), err)
		}
	}
	if g.Aim() != fixed.HalfPi {
		t.Errorf("aim changed to %v", g.Aim().Float())
	}

	var in core.InputFrame
	in.Set(core.ActionAimLeft)
	for i := 0; i < 200; i++ {
		g.Tick(in)
	}
	if g.Aim() != game.MaxAim {
		t.Errorf("aim after holding left = %v, want clamp at %v", g.Aim().Float(), game.MaxAim.Float())
	}
}

func TestHurryAndAutoFire(t *testing.T) {
	r := puzzle()
	r.HurryFrames = 10
	r.AutoFireFrames = 20
	g := newGame(t, r, 1)

	for i := 0; i < 10; i++ {
		g.Tick(core.InputFrame{})
	}
	if g.Phase() != game.PhaseHurry {
		t.Fatalf("phase after 10 idle frames = %s, want Hurry", g.Phase())
	}
	for i := 0; i < 10; i++ {
		g.Tick(core.InputFrame{})
	}
	if g.ShotsFired() != 1 {
		t.Fatalf("shots fired = %d, want auto-fire", g.ShotsFired())
	}
	if g.Phase() != game.PhasePlaying {
		t.Errorf("phase after auto-fire = %s, want Playing", g.Phase())
	}
}

func TestTimeout(t *testing.T) {
	r := config.Preset(config.ModeTimeAttack)
	r.TimeLimitFrames = 30
	g := newGame(t, r, 1)
	for i := 0; i < 29; i++ {
		g.Tick(core.InputFrame{})
	}
	if g.Phase().Over() {
		t.Fatalf("lost early at frame %d", g.Frame())
	}
	g.Tick(core.InputFrame{})
	if g.Phase() != game.PhaseLost || g.LoseReason() != game.LoseTimeout {
		t.Errorf("phase %s reason %s, want Lost by timeout", g.Phase(), g.LoseReason())
	}
	if _, ok := find(g.DrainEvents(nil), game.EventGameOver); !ok {
		t.Error("missing GameOver event")
	}
}

func TestObserverSeesEvents(t *testing.T) {
	var seen []game.EventKind
	obs := game.ObserverFunc(func(e game.Event) { seen = append(seen, e.Kind) })
	g := newGame(t, puzzle(), 1, game.WithObserver(obs))
	events := shoot(t, g, fixed.HalfPi)
	if len(seen) != len(events) {
		t.Fatalf("observer saw %d events, log has %d", len(seen), len(events))
	}
	if seen[0] != game.EventFire {
		t.Errorf("first event = %s, want Fire", seen[0])
	}
}

func TestPreviewMatchesPlacement(t *testing.T) {
	g := newGame(t, puzzle(), 1)
	load(t, g,
		"R G B Y R G B Y",
		"G B Y R G B Y",
	)
	angle := fixed.FromDegrees(72)
	before := g.Checksum()
	path := g.Preview(angle)
	if g.Checksum() != before {
		t.Fatal("Preview mutated the board")
	}

	events := shoot(t, g, angle)
	placed, ok := find(events, game.EventBubblePlaced)
	if !ok {
		t.Fatal("no placement")
	}
	if placed.CellAt(0) != path.Landing {
		t.Errorf("placed at %+v, preview said %+v", placed.CellAt(0), path.Landing)
	}
}

func TestSettleHoldsFireAfterPop(t *testing.T) {
	r := puzzle()
	r.AllowedColors = board.Red.Bit()
	r.SettleFrames = 5
	g := newGame(t, r, 1)
	load(t, g, ". . . R R . . #")

	events := shoot(t, g, fixed.HalfPi)
	if _, ok := find(events, game.EventBubblesPopped); !ok {
		t.Fatalf("no BubblesPopped event in %v", events)
	}
	if g.Phase() != game.PhaseAnimating {
		t.Fatalf("phase = %s, want Animating", g.Phase())
	}
	if err := g.Fire(); !errors.Is(err, core.ErrInvalidState) {
		t.Errorf("Fire while animating = %v, want ErrInvalidState", err)
	}

	fire := core.NewInputFrame()
	fire.Set(core.ActionFire)
	for i := 0; i < r.SettleFrames-1; i++ {
		g.Tick(fire)
		if g.Phase() != game.PhaseAnimating || g.Shot().Phase != shot.Idle {
			t.Fatalf("tick %d: phase %s shot %s", i+1, g.Phase(), g.Shot().Phase)
		}
	}
	g.Tick(core.InputFrame{})
	if g.Phase() != game.PhasePlaying {
		t.Fatalf("phase after settle = %s, want Playing", g.Phase())
	}
	if err := g.Fire(); err != nil {
		t.Errorf("Fire after settle: %v", err)
	}
}

func TestSettleSkippedWithoutPop(t *testing.T) {
	r := puzzle()
	r.SettleFrames = 5
	g := newGame(t, r, 1)
	shoot(t, g, fixed.HalfPi)
	if g.Phase() != game.PhasePlaying {
		t.Errorf("phase = %s, want Playing after a plain placement", g.Phase())
	}
}
