package headless

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hexpop/internal/board"
	"github.com/vovakirdan/hexpop/internal/config"
	"github.com/vovakirdan/hexpop/internal/core"
	"github.com/vovakirdan/hexpop/internal/game"
	"github.com/vovakirdan/hexpop/internal/multiplayer"
	"github.com/vovakirdan/hexpop/internal/rng"
	"github.com/vovakirdan/hexpop/internal/storage"
)

// Outcomes recorded for a finished run.
const (
	OutcomeWon        = "won"
	OutcomeQuit       = "quit"
	OutcomeFrameLimit = "frame-limit"
	OutcomeCancelled  = "cancelled"
)

// Options configures a Runner.
type Options struct {
	Rules      config.Ruleset
	Difficulty config.Difficulty
	Runtime    core.RuntimeConfig
	Layout     [][]board.Bubble       // optional starting layout
	Player     multiplayer.Controller // nil means an AutoPlayer with DefaultDelay
	Store      *storage.Store         // optional; receives the score and a session record
	Logger     *log.Logger            // nil discards
	Paced      bool                   // tick at Runtime.TickRate instead of flat out
}

// Summary describes a finished run.
type Summary struct {
	SessionID  string
	Mode       string
	Difficulty string
	Seed       int64
	Frames     int
	Score      int64
	Shots      int
	Checksum   uint64
	Outcome    string
}

// Runner drives one game with one controller.
type Runner struct {
	opts       Options
	game       *game.Game
	player     multiplayer.Controller
	logger     *log.Logger
	ticks      int
	scoreSaved bool
	layout     string // loaded starting board, recorded with the session
}

// NewRunner creates the game. A zero seed is replaced by the current time
// and reported in the Summary.
func NewRunner(opts Options) (*Runner, error) {
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Difficulty == "" {
		opts.Difficulty = config.DifficultyNormal
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	g, err := game.New(opts.Rules, rng.New(opts.Runtime.Seed), game.WithObserver(NewLogObserver(logger)))
	if err != nil {
		return nil, err
	}
	var layout string
	if opts.Layout != nil {
		if err := g.LoadLayout(opts.Layout); err != nil {
			return nil, err
		}
		layout = g.Board().String()
	}

	player := opts.Player
	if player == nil {
		player = NewAutoPlayer(DefaultDelay)
	}

	return &Runner{
		opts:   opts,
		game:   g,
		player: player,
		logger: logger,
		layout: layout,
	}, nil
}

// Game returns the running game.
func (r *Runner) Game() *game.Game { return r.game }

// Run ticks until the game ends, the controller quits, the frame limit is
// reached or ctx is done. The score and session are saved once at the end
// when a store is configured; storage failures are logged, not returned.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	r.logger.Info("session start",
		"mode", r.opts.Rules.Mode, "difficulty", r.opts.Difficulty, "seed", r.opts.Runtime.Seed)

	var tick <-chan time.Time
	if r.opts.Paced {
		ticker := time.NewTicker(time.Second / time.Duration(r.opts.Runtime.TickRate))
		defer ticker.Stop()
		tick = ticker.C
	}

	outcome := ""
	var runErr error
loop:
	for !r.game.Phase().Over() {
		if limit := r.opts.Runtime.MaxFrames; limit > 0 && r.ticks >= limit {
			outcome = OutcomeFrameLimit
			break
		}
		if tick != nil {
			select {
			case <-ctx.Done():
				outcome, runErr = OutcomeCancelled, ctx.Err()
				break loop
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			outcome, runErr = OutcomeCancelled, err
			break
		}

		in := r.player.Input(r.game)
		if in.Has(core.ActionQuit) {
			outcome = OutcomeQuit
			break
		}
		r.game.Tick(in)
		r.ticks++
	}

	switch r.game.Phase() {
	case game.PhaseWon:
		outcome = OutcomeWon
	case game.PhaseLost:
		outcome = "lost:" + r.game.LoseReason().String()
	}

	sum := r.summary(outcome)
	if runErr == nil {
		sum.SessionID = r.save(sum)
	}
	r.logger.Info("session end", "outcome", sum.Outcome, "frames", sum.Frames, "score", sum.Score)
	return sum, runErr
}

func (r *Runner) summary(outcome string) Summary {
	return Summary{
		Mode:       r.opts.Rules.Mode.String(),
		Difficulty: string(r.opts.Difficulty),
		Seed:       r.opts.Runtime.Seed,
		Frames:     r.ticks,
		Score:      r.game.Score(),
		Shots:      r.game.ShotsFired(),
		Checksum:   r.game.Checksum(),
		Outcome:    outcome,
	}
}

// save records the score (once, when positive) and the session.
func (r *Runner) save(sum Summary) string {
	if r.opts.Store == nil {
		return ""
	}
	if !r.scoreSaved && sum.Score > 0 {
		if _, err := r.opts.Store.SaveScore(sum.Mode, sum.Score); err != nil {
			r.logger.Warn("could not save score", "error", err)
		}
		r.scoreSaved = true
	}

	id, err := r.opts.Store.SaveSession(storage.SessionRecord{
		Mode:       sum.Mode,
		Difficulty: sum.Difficulty,
		Seed:       sum.Seed,
		Frames:     sum.Frames,
		Score:      sum.Score,
		Shots:      sum.Shots,
		Checksum:   sum.Checksum,
		Outcome:    sum.Outcome,
		Layout:     r.layout,
	})
	if err != nil {
		r.logger.Warn("could not save session", "error", err)
		return ""
	}
	r.logger.Info("session saved", "id", id)
	return id
}

// Verify replays a recorded autoplayer session and reports whether it
// reproduces the recorded frame count and checksum.
func Verify(ctx context.Context, rec storage.SessionRecord, rules config.Ruleset, logger *log.Logger) (Summary, bool, error) {
	if rec.Seed == 0 {
		return Summary{}, false, fmt.Errorf("headless: session %s has no seed: %w", rec.ID, core.ErrInvalidArgument)
	}
	var layout [][]board.Bubble
	if rec.Layout != "" {
		rows, err := board.ParseRows(strings.Split(strings.TrimRight(rec.Layout, "\n"), "\n"))
		if err != nil {
			return Summary{}, false, fmt.Errorf("headless: session %s layout: %w", rec.ID, err)
		}
		layout = rows
	}
	r, err := NewRunner(Options{
		Rules:      rules,
		Difficulty: config.Difficulty(rec.Difficulty),
		Runtime:    core.RuntimeConfig{Seed: rec.Seed, MaxFrames: rec.Frames},
		Layout:     layout,
		Logger:     logger,
	})
	if err != nil {
		return Summary{}, false, err
	}
	sum, err := r.Run(ctx)
	if err != nil {
		return sum, false, err
	}
	return sum, sum.Frames == rec.Frames && sum.Checksum == rec.Checksum, nil
}
