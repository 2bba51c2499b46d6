package game

import (
	"errors"
	"testing"

	"github.com/vovakirdan/hexpop/internal/board"
	"github.com/vovakirdan/hexpop/internal/config"
	"github.com/vovakirdan/hexpop/internal/core"
	"github.com/vovakirdan/hexpop/internal/rng"
	"github.com/vovakirdan/hexpop/internal/shot"
)

func setup(t *testing.T, mode config.Mode, lines ...string) *Game {
	t.Helper()
	r := config.Preset(mode)
	r.AllowedSpecials = 0
	r.SpecialChance = 0
	g, err := New(r, rng.New(3))
	if err != nil {
		t.Fatal(err)
	}
	rows, err := board.ParseRows(lines)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.LoadLayout(rows); err != nil {
		t.Fatal(err)
	}
	g.DrainEvents(nil)
	return g
}

// place resolves a shot of bub that came to rest over cell.
func place(g *Game, bub board.Bubble, cell, struck board.Cell) []Event {
	g.shot.Bubble = bub
	g.resolve(shot.Collision{
		Type:  shot.Bubble,
		Point: g.board.Center(cell, g.arena.Radius),
		Cell:  struck,
	})
	return g.DrainEvents(nil)
}

func eventOf(events []Event, kind EventKind) (Event, bool) {
	for _, e := range events {
		if e.Kind == kind {
			return e, true
		}
	}
	return Event{}, false
}

func TestMatchAndOrphansAccrueGarbage(t *testing.T) {
	g := setup(t, config.ModeVersus,
		"R R R . . . . #",
		". G . . . . .",
		". G . . . . . .",
	)
	events := place(g, board.Colored(board.Red), board.Cell{Row: 1, Col: 0}, board.Cell{Row: 0, Col: 0})

	popped, ok := eventOf(events, EventBubblesPopped)
	if !ok || popped.Count != 4 {
		t.Fatalf("popped = %+v, want 4 cells", popped)
	}
	dropped, ok := eventOf(events, EventBubblesDropped)
	if !ok || dropped.Count != 2 {
		t.Fatalf("dropped = %+v, want 2 cells", dropped)
	}
	if g.Score() != 80 {
		t.Errorf("score = %d, want 80", g.Score())
	}
	if g.PendingGarbage() != 4 {
		t.Errorf("garbage = %d, want 4", g.PendingGarbage())
	}
	if n := g.TakeGarbage(); n != 4 || g.PendingGarbage() != 0 {
		t.Errorf("TakeGarbage = %d, pending after = %d", n, g.PendingGarbage())
	}
	if g.Board().Count() != 1 || g.Phase() != PhasePlaying {
		t.Errorf("count %d phase %s, want only the blocker left", g.Board().Count(), g.Phase())
	}
	if g.ShotsUntilRow() != 9 {
		t.Errorf("countdown = %d, want 9", g.ShotsUntilRow())
	}
}

func TestComboAndTiers(t *testing.T) {
	g := setup(t, config.ModePuzzle, "R R . . B B G #")

	place(g, board.Colored(board.Red), board.Cell{Row: 1, Col: 0}, board.Cell{Row: 0, Col: 0})
	if g.Score() != 30 || g.Combo() != 1 {
		t.Fatalf("after first match score %d combo %d", g.Score(), g.Combo())
	}

	place(g, board.Colored(board.Blue), board.Cell{Row: 1, Col: 4}, board.Cell{Row: 0, Col: 4})
	if g.Score() != 90 || g.Combo() != 2 {
		t.Fatalf("after second match score %d combo %d, want 90 and 2", g.Score(), g.Combo())
	}

	place(g, board.Colored(board.Yellow), board.Cell{Row: 1, Col: 6}, board.Cell{Row: 0, Col: 6})
	if g.Combo() != 0 || g.Quantifier() != 6 || g.Score() != 90 {
		t.Errorf("after miss combo %d quantifier %d score %d", g.Combo(), g.Quantifier(), g.Score())
	}

	g.quantifier = 19
	if got := g.tiered(3, MatchBase); got != 50 {
		t.Errorf("tiered across a boundary = %d, want 50", got)
	}
}

func TestClearingBoardWins(t *testing.T) {
	g := setup(t, config.ModePuzzle, "R R")
	events := place(g, board.Colored(board.Red), board.Cell{Row: 1, Col: 0}, board.Cell{Row: 0, Col: 0})
	if g.Phase() != PhaseWon {
		t.Fatalf("phase = %s, want Won", g.Phase())
	}
	clear, ok := eventOf(events, EventLevelClear)
	if !ok || clear.Value != 30 {
		t.Errorf("LevelClear = %+v, want value 30", clear)
	}
	if _, ok := eventOf(events, EventGameOver); ok {
		t.Error("a won game logged GameOver")
	}
	if err := g.Fire(); !errors.Is(err, core.ErrInvalidState) {
		t.Errorf("Fire after win err = %v", err)
	}
}

func TestLoseConditions(t *testing.T) {
	t.Run("placement", func(t *testing.T) {
		lines := make([]string, 10)
		for i := range lines {
			lines[i] = "#"
		}
		g := setup(t, config.ModePuzzle, lines...)
		place(g, board.Colored(board.Red), board.Cell{Row: 10, Col: 0}, board.Cell{Row: 9, Col: 0})
		if g.Phase() != PhaseLost || g.LoseReason() != LosePlacement {
			t.Errorf("phase %s reason %s", g.Phase(), g.LoseReason())
		}
	})

	t.Run("placement cleared by its own match", func(t *testing.T) {
		lines := make([]string, 11)
		for i := range lines {
			lines[i] = "#"
		}
		lines[10] = "R R"
		g := setup(t, config.ModePuzzle, lines...)
		events := place(g, board.Colored(board.Red), board.Cell{Row: 10, Col: 2}, board.Cell{Row: 10, Col: 1})
		if popped, ok := eventOf(events, EventBubblesPopped); !ok || popped.Count != 3 {
			t.Fatalf("popped = %+v, want 3 cells", popped)
		}
		if g.Phase() != PhasePlaying || g.LoseReason() != LoseNone {
			t.Errorf("phase %s reason %s, want the game to continue", g.Phase(), g.LoseReason())
		}
	})

	t.Run("floor", func(t *testing.T) {
		g := setup(t, config.ModePuzzle, "R")
		g.resolve(shot.Collision{Type: shot.Floor, Cell: board.InvalidCell})
		if g.LoseReason() != LoseFloor {
			t.Errorf("reason = %s, want floor", g.LoseReason())
		}
		over, ok := eventOf(g.DrainEvents(nil), EventGameOver)
		if !ok || LoseReason(over.Value) != LoseFloor {
			t.Errorf("GameOver = %+v", over)
		}
	})

	t.Run("unplaceable", func(t *testing.T) {
		lines := make([]string, 12)
		for i := range lines {
			if i%2 == 0 {
				lines[i] = "# # # # # # # #"
			} else {
				lines[i] = "# # # # # # #"
			}
		}
		g := setup(t, config.ModePuzzle, lines...)
		place(g, board.Colored(board.Red), board.Cell{Row: 5, Col: 3}, board.Cell{Row: 5, Col: 3})
		if g.LoseReason() != LoseUnplaceable {
			t.Errorf("reason = %s, want unplaceable", g.LoseReason())
		}
	})

	t.Run("overflow", func(t *testing.T) {
		lines := make([]string, 12)
		for i := range lines {
			lines[i] = "#"
		}
		g := setup(t, config.ModeVersus, lines...)
		if err := g.ReceiveGarbage(1); err != nil {
			t.Fatal(err)
		}
		if g.LoseReason() != LoseOverflow {
			t.Errorf("reason = %s, want overflow", g.LoseReason())
		}
		if err := g.ReceiveGarbage(1); !errors.Is(err, core.ErrInvalidState) {
			t.Errorf("garbage after loss err = %v", err)
		}
	})
}

func TestReceiveGarbage(t *testing.T) {
	g := setup(t, config.ModeVersus, "R G B Y R G B Y")
	if err := g.ReceiveGarbage(0); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("ReceiveGarbage(0) err = %v", err)
	}

	if err := g.ReceiveGarbage(9); err != nil {
		t.Fatal(err)
	}
	events := g.DrainEvents(nil)
	rows := 0
	for _, e := range events {
		if e.Kind == EventRowInserted {
			rows++
		}
	}
	if rows != 2 {
		t.Errorf("inserted %d rows, want 2", rows)
	}
	if recv, ok := eventOf(events, EventGarbageReceived); !ok || recv.Value != 9 {
		t.Errorf("GarbageReceived = %+v", recv)
	}
	if got := g.Board().RowCount(2); got != 8 {
		t.Errorf("original top row now holds %d, want 8", got)
	}
}

func TestSpecials(t *testing.T) {
	full := []string{
		"R G B Y R G B Y",
		"G B Y R G B Y",
	}

	t.Run("bomb", func(t *testing.T) {
		g := setup(t, config.ModePuzzle, full...)
		events := place(g, board.SpecialBubble(board.Bomb, 0), board.Cell{Row: 2, Col: 3}, board.Cell{Row: 1, Col: 3})
		popped, ok := eventOf(events, EventBubblesPopped)
		if !ok || popped.Count != 3 {
			t.Fatalf("bomb popped %+v, want 3", popped)
		}
		if g.Board().Count() != 13 {
			t.Errorf("count = %d, want 13", g.Board().Count())
		}
	})

	t.Run("lightning", func(t *testing.T) {
		g := setup(t, config.ModePuzzle, append(full, ". Y R G . . . .")...)
		events := place(g, board.SpecialBubble(board.Lightning, 0), board.Cell{Row: 2, Col: 0}, board.Cell{Row: 1, Col: 0})
		popped, ok := eventOf(events, EventBubblesPopped)
		if !ok || popped.Count != 4 {
			t.Fatalf("lightning popped %+v, want 4", popped)
		}
		if g.Board().RowCount(2) != 0 {
			t.Errorf("row 2 not cleared:\n%s", g.Board())
		}
	})

	t.Run("star", func(t *testing.T) {
		g := setup(t, config.ModePuzzle, "R G R G R G R #")
		events := place(g, board.SpecialBubble(board.Star, 0), board.Cell{Row: 1, Col: 0}, board.Cell{Row: 0, Col: 0})
		popped, ok := eventOf(events, EventBubblesPopped)
		if !ok || popped.Count != 5 {
			t.Fatalf("star popped %+v, want 5", popped)
		}
		if g.Board().ColorMask().Has(board.Red) {
			t.Error("red survived the star")
		}
	})

	t.Run("magnet", func(t *testing.T) {
		g := setup(t, config.ModePuzzle, "R G B Y R G B Y")
		cell := board.Cell{Row: 1, Col: 2}
		place(g, board.SpecialBubble(board.Magnet, 2), cell, board.Cell{Row: 0, Col: 2})
		got := g.Board().Get(cell)
		if s, _, ok := got.Special(); !ok || s != board.Magnet || !got.Has(board.FlagAnchor) {
			t.Errorf("magnet cell = %+v", got)
		}
		if g.Combo() != 0 {
			t.Errorf("inert magnet scored a combo")
		}
	})
}

func TestEventLogCap(t *testing.T) {
	var l EventLog
	for i := 0; i < MaxEvents+44; i++ {
		l.Append(Event{Frame: uint32(i)})
	}
	if l.Len() != MaxEvents || l.Dropped() != 44 {
		t.Fatalf("len %d dropped %d", l.Len(), l.Dropped())
	}
	out := l.Drain(nil)
	if len(out) != MaxEvents || out[MaxEvents-1].Frame != MaxEvents-1 {
		t.Errorf("drained %d events", len(out))
	}
	if l.Len() != 0 || l.Dropped() != 0 {
		t.Error("Drain did not reset the log")
	}
}

func TestEventCellsTruncate(t *testing.T) {
	g := setup(t, config.ModePuzzle, "R")
	cells := make([]board.Cell, 30)
	for i := range cells {
		cells[i] = board.Cell{Row: i / 8, Col: i % 8}
	}
	g.emit(EventBubblesPopped, cells, 0)
	e := g.Events()[0]
	if e.Count != 30 || len(e.Indices()) != MaxEventCells {
		t.Errorf("count %d stored %d", e.Count, len(e.Indices()))
	}
	if e.CellAt(9) != cells[9] {
		t.Errorf("CellAt(9) = %+v, want %+v", e.CellAt(9), cells[9])
	}
}

func TestDrawRestrictedToBoardColors(t *testing.T) {
	g := setup(t, config.ModePuzzle, "G # G # G # G #")
	if !g.rules.RestrictColorsToBoard || g.rules.AllowedColors.Count() < 2 {
		t.Fatalf("puzzle rules = %+v", g.rules)
	}
	for i := 0; i < 200; i++ {
		if c, ok := g.draw().Color(); !ok || c != board.Green {
			t.Fatalf("draw %d = %v (colored %v), want green", i, c, ok)
		}
	}
}

func TestDrawIgnoresColorsNotAllowed(t *testing.T) {
	g := setup(t, config.ModePuzzle, "G # W # W")
	g.rules.AllowedColors = board.Green.Bit() | board.Red.Bit()
	for i := 0; i < 200; i++ {
		if c, _ := g.draw().Color(); c != board.Green {
			t.Fatalf("draw %d = %v, want green", i, c)
		}
	}
}

func TestDrawSpecialChance(t *testing.T) {
	g := setup(t, config.ModeArcade)
	g.rules.AllowedSpecials = board.Bomb.Bit()
	g.rules.SpecialChance = 1000
	for i := 0; i < 100; i++ {
		if s, _, ok := g.draw().Special(); !ok || s != board.Bomb {
			t.Fatalf("draw %d is not a bomb", i)
		}
	}

	g.rules.AllowedSpecials = board.Lightning.Bit() | board.Star.Bit()
	seen := map[board.Special]int{}
	for i := 0; i < 200; i++ {
		s, _, ok := g.draw().Special()
		if !ok {
			t.Fatalf("draw %d is not special", i)
		}
		seen[s]++
	}
	if len(seen) != 2 || seen[board.Lightning] == 0 || seen[board.Star] == 0 {
		t.Errorf("specials drawn = %v, want both lightning and star", seen)
	}

	g.rules.SpecialChance = 0
	for i := 0; i < 100; i++ {
		if _, _, ok := g.draw().Special(); ok {
			t.Fatalf("draw %d is special with zero chance", i)
		}
	}
}
