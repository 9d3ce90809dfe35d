package session

import (
	"chosenoffset.com/kizilcik/internal/core/entity"
	"chosenoffset.com/kizilcik/internal/core/progress"
)

// Step advances the game by one frame. It does nothing unless a level or boss stage is
// being played.
func (s *Session) Step(in *Input) {
	if !s.ctrl.Phase().Active() {
		return
	}
	if in == nil {
		in = &Input{}
	}

	if s.ctrl.Phase() == progress.PhaseRunning && s.ctrl.TargetMet() {
		s.enterBossFight()
		if !s.ctrl.Phase().Active() {
			return
		}
	}

	s.movePlayer(in)
	if in.Fire {
		s.fire()
		in.Fire = false
	}

	if s.ctrl.Phase() == progress.PhaseBossFight {
		if s.world.Boss != nil {
			s.world.Boss.Move(s.world.Width)
		}
		s.moveProjectiles()
		if s.world.Boss != nil {
			s.bossCollisions()
		}
	} else {
		s.moveProjectiles()
		for _, t := range s.world.Targets {
			t.Move(s.world.Width)
		}
		for _, o := range s.world.Obstacles {
			o.Move(s.world.Width)
		}
		s.regularCollisions()
	}

	s.world.PruneTexts(s.clock.Now())
}

func (s *Session) movePlayer(in *Input) {
	p := &s.world.Player
	if in.Left {
		p.X -= p.Speed
	}
	if in.Right {
		p.X += p.Speed
	}
	if in.Up {
		p.Y -= p.Speed
	}
	if in.Down {
		p.Y += p.Speed
	}
	p.X = entity.Clamp(p.X, 0, s.world.Width-p.W)
	p.Y = entity.Clamp(p.Y, s.world.Height/2, s.world.Height-p.H)
}

func (s *Session) fire() {
	p := s.world.Player
	w := s.cfg.Projectile.Width
	proj := entity.Projectile{Rect: entity.Rect{
		X: p.X + p.W/2 - w/2,
		Y: p.Y,
		W: w,
		H: s.cfg.Projectile.Height,
	}}
	s.world.Projectiles = append(s.world.Projectiles, proj)
	s.emit(Event{Kind: EventFire, X: proj.CenterX(), Y: proj.Y})
}

// moveProjectiles flies every projectile up and drops the ones past the top edge.
func (s *Session) moveProjectiles() {
	kept := s.world.Projectiles[:0]
	for _, p := range s.world.Projectiles {
		p.Y -= s.cfg.Projectile.Speed
		if p.Y+p.H < 0 {
			continue
		}
		kept = append(kept, p)
	}
	s.world.Projectiles = kept
}

// regularCollisions resolves projectile hits on targets, then on obstacles. A projectile
// consumed in the first pass is skipped in the second, and each projectile affects at
// most one character. Removed projectiles are compacted out after both passes.
func (s *Session) regularCollisions() {
	projs := s.world.Projectiles
	spent := make([]bool, len(projs))
	reached := false

	for i := len(projs) - 1; i >= 0; i-- {
		for j := len(s.world.Targets) - 1; j >= 0; j-- {
			t := s.world.Targets[j]
			if !projs[i].Overlaps(t.Rect) {
				continue
			}
			spent[i] = true
			s.world.Targets = append(s.world.Targets[:j], s.world.Targets[j+1:]...)

			met := s.ctrl.AddPoint()
			s.addText(s.cfg.Effects.Score, t.CenterX(), t.Y)
			s.emit(Event{Kind: EventTargetHit, X: t.CenterX(), Y: t.Y, Name: t.Name})
			s.spawner.Target(s.world)
			if met {
				reached = true
			}
			break
		}
	}

	for i := len(projs) - 1; i >= 0; i-- {
		if spent[i] {
			continue
		}
		for k := len(s.world.Obstacles) - 1; k >= 0; k-- {
			o := s.world.Obstacles[k]
			if !projs[i].Overlaps(o.Rect) {
				continue
			}
			spent[i] = true
			s.addText(s.cfg.Effects.Blocked, o.CenterX(), o.Y)
			s.emit(Event{Kind: EventBlocked, X: o.CenterX(), Y: o.Y, Name: o.Name})
			break
		}
	}

	s.world.Projectiles = compact(projs, spent)

	if reached {
		s.enterBossFight()
	}
}

// bossCollisions resolves projectile hits on the boss. Scanning stops once the boss
// falls.
func (s *Session) bossCollisions() {
	projs := s.world.Projectiles
	spent := make([]bool, len(projs))
	boss := s.world.Boss

	for i := len(projs) - 1; i >= 0; i-- {
		if !projs[i].Overlaps(boss.Rect) {
			continue
		}
		spent[i] = true
		from, to := s.ctrl.Apply(bossHitEvent)
		s.addText(s.cfg.Effects.BossHit, boss.CenterX(), boss.CenterY())

		if fight, ok := to.(progress.BossFight); ok {
			boss.HitPoints = fight.HP
			s.emit(Event{Kind: EventBossHit, X: boss.CenterX(), Y: boss.CenterY(), Name: boss.Name})
			continue
		}

		boss.HitPoints = 0
		s.logger.Printf("session %s: boss %s defeated on level %d", s.shortID(), boss.Name, progress.LevelOf(from))
		s.addText(s.cfg.Effects.BossDefeated, s.world.Width/2, s.world.Height/2)
		s.emit(Event{Kind: EventBossDefeated, X: boss.CenterX(), Y: boss.CenterY(), Name: boss.Name})
		s.world.Projectiles = compact(projs, spent)
		s.afterBoss(to)
		return
	}

	s.world.Projectiles = compact(projs, spent)
}

var bossHitEvent = progress.Event{Kind: progress.EventBossHit}

func compact(projs []entity.Projectile, spent []bool) []entity.Projectile {
	kept := projs[:0]
	for i, p := range projs {
		if !spent[i] {
			kept = append(kept, p)
		}
	}
	return kept
}
