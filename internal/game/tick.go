package game

import (
	"fmt"

	"github.com/vovakirdan/hexpop/internal/core"
	"github.com/vovakirdan/hexpop/internal/fixed"
	"github.com/vovakirdan/hexpop/internal/shot"
)

// Tick advances the session by one frame. Paused and finished games ignore
// everything except a pause toggle. Requests in the frame that are invalid
// in the current phase are dropped without changing state.
func (g *Game) Tick(in core.InputFrame) {
	if g.phase.Over() {
		return
	}
	if in.Has(core.ActionPause) {
		if g.phase == PhasePaused {
			_ = g.Unpause()
		} else {
			_ = g.Pause()
		}
	}
	if g.phase == PhasePaused {
		return
	}

	g.frame++
	if g.rules.LoseOn.Timeout && g.frame >= g.rules.TimeLimitFrames {
		g.lose(LoseTimeout)
		return
	}

	if g.phase == PhaseAnimating {
		g.settle--
		if g.settle <= 0 {
			g.phase = PhasePlaying
		}
	}

	g.applyAim(in)
	if in.Has(core.ActionSwap) {
		_ = g.Swap()
	}
	if in.Has(core.ActionFire) {
		_ = g.Fire()
	}

	switch g.shot.Phase {
	case shot.Idle:
		g.pressureIdle()
	case shot.Moving:
		if res := g.shot.Step(g.board, g.arena); res.Type != shot.None {
			g.resolve(res)
		}
	}
}

// pressureIdle counts idle frames and applies hurry-up and auto-fire.
func (g *Game) pressureIdle() {
	if g.phase != PhasePlaying && g.phase != PhaseHurry {
		return
	}
	g.idleFrames++
	if g.rules.HurryFrames > 0 && g.idleFrames >= g.rules.HurryFrames && g.phase == PhasePlaying {
		g.phase = PhaseHurry
	}
	if g.rules.AutoFireFrames > 0 && g.idleFrames >= g.rules.AutoFireFrames {
		_ = g.Fire()
	}
}

func (g *Game) applyAim(in core.InputFrame) {
	if in.HasAim {
		_ = g.SetAim(in.Aim)
	}
	step := fixed.FromDegrees(g.rules.AimStep)
	if in.Has(core.ActionAimLeft) {
		g.aim = fixed.Clamp(g.aim+step, MinAim, MaxAim)
	}
	if in.Has(core.ActionAimRight) {
		g.aim = fixed.Clamp(g.aim-step, MinAim, MaxAim)
	}
}

// SetAim points the launcher. Angles outside [MinAim, MaxAim] are rejected.
func (g *Game) SetAim(angle fixed.Fixed) error {
	if angle < MinAim || angle > MaxAim {
		return fmt.Errorf("game: aim %.4f outside [%.4f, %.4f]: %w",
			angle.Float(), MinAim.Float(), MaxAim.Float(), core.ErrInvalidArgument)
	}
	g.aim = angle
	return nil
}

// Fire launches the current bubble at the current aim.
func (g *Game) Fire() error {
	if g.phase != PhasePlaying && g.phase != PhaseHurry {
		return fmt.Errorf("game: fire during %s: %w", g.phase, core.ErrInvalidState)
	}
	if err := g.shot.Fire(g.arena.Launcher(), g.aim, g.rules.Speed(), g.current, g.rules.MaxBounces); err != nil {
		return err
	}
	g.shotsFired++
	g.idleFrames = 0
	g.phase = PhasePlaying
	g.emit(EventFire, nil, int32(g.aim>>16))
	return nil
}

// Swap exchanges the current and preview bubbles.
func (g *Game) Swap() error {
	if !g.rules.AllowColorSwitch {
		return fmt.Errorf("game: color switch disabled: %w", core.ErrInvalidState)
	}
	if g.shot.Phase != shot.Idle {
		return fmt.Errorf("game: swap with shot %s: %w", g.shot.Phase, core.ErrInvalidState)
	}
	if g.phase != PhasePlaying && g.phase != PhaseHurry {
		return fmt.Errorf("game: swap during %s: %w", g.phase, core.ErrInvalidState)
	}
	g.current, g.next = g.next, g.current
	g.emit(EventSwitchBubble, nil, 0)
	return nil
}

// Pause withholds ticks until Unpause.
func (g *Game) Pause() error {
	switch g.phase {
	case PhasePlaying, PhaseHurry, PhaseAnimating:
	default:
		return fmt.Errorf("game: pause during %s: %w", g.phase, core.ErrInvalidState)
	}
	g.resume = g.phase
	g.phase = PhasePaused
	g.emit(EventPause, nil, 0)
	return nil
}

// Unpause resumes the phase that was active before Pause.
func (g *Game) Unpause() error {
	if g.phase != PhasePaused {
		return fmt.Errorf("game: unpause during %s: %w", g.phase, core.ErrInvalidState)
	}
	g.phase = g.resume
	g.emit(EventUnpause, nil, 0)
	return nil
}
