package systems

import (
	"testing"

	"skrillax-agent/internal/domain"
	"skrillax-agent/internal/navmesh"
)

func finishCheck(e *domain.Entity) {
	e.Stroll.Check.Elapsed = e.Stroll.Check.Duration
}

func TestRandomStroll_ActiveGoalIsKept(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Game.Stroll.Chance = 1
	origin := domain.Vec3{X: 1000, Y: 7, Z: 1000}
	m := newTestMonster(ctx, origin)
	finishCheck(m)

	existing := domain.Vec3{X: 1005, Y: 7, Z: 1005}
	m.Goal.MoveTo(existing)

	for i := 0; i < 20; i++ {
		_ = RandomStroll(ctx)
	}
	if m.Goal.Target != existing {
		t.Errorf("goal reassigned: %+v", m.Goal.Target)
	}
}

func TestRandomStroll_WaitsForRecheck(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Game.Stroll.Chance = 1
	m := newTestMonster(ctx, domain.Vec3{X: 1000, Y: 7, Z: 1000})

	// 9 тиков по 100ms: таймер на 1s еще не истек
	for i := 0; i < 9; i++ {
		_ = RandomStroll(ctx)
	}
	if !m.Goal.IsNone() {
		t.Fatalf("goal assigned before recheck: %+v", m.Goal)
	}

	_ = RandomStroll(ctx) // таймер истекает
	_ = RandomStroll(ctx) // проверка
	if m.Goal.IsNone() {
		t.Fatal("goal not assigned after recheck elapsed")
	}
	if m.Stroll.Check.Finished() {
		t.Error("recheck timer not reset after assignment")
	}
}

func TestRandomStroll_TargetWithinRadius(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Game.Stroll.Chance = 1
	origin := domain.Vec3{X: 1000, Y: 3, Z: 1000}
	m := newTestMonster(ctx, origin)

	for i := 0; i < 50; i++ {
		finishCheck(m)
		m.Goal.Clear()
		_ = RandomStroll(ctx)

		target := m.Goal.Target
		dx, dz := target.X-origin.X, target.Z-origin.Z
		if dx*dx+dz*dz > m.Stroll.Radius*m.Stroll.Radius+0.01 {
			t.Fatalf("target %+v outside radius %v", target, m.Stroll.Radius)
		}
		if target.Y != 7 {
			t.Fatalf("target height = %v, want terrain height 7", target.Y)
		}
	}
	if !m.Changes().Has(domain.CompGoal) {
		t.Error("goal change not tracked")
	}
}

func TestRandomStroll_TerrainGapKeepsHeight(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Game.Stroll.Chance = 1
	ctx.Terrain = navmesh.Flat{Height: 50, Bounds: domain.Bounds{MaxX: 1, MaxZ: 1}}
	m := newTestMonster(ctx, domain.Vec3{X: 1000, Y: 3, Z: 1000})
	finishCheck(m)

	_ = RandomStroll(ctx)
	if m.Goal.IsNone() || m.Goal.Target.Y != 3 {
		t.Errorf("goal = %+v, want current height 3", m.Goal)
	}
}

func TestRandomStroll_Skips(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *domain.Entity)
	}{
		{"Dead", func(m *domain.Entity) { m.Kill(domain.NewMonsterDead(0)) }},
		{"Moving", func(m *domain.Entity) { m.State = domain.StateMoving }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newTestContext(t)
			ctx.Game.Stroll.Chance = 1
			m := newTestMonster(ctx, domain.Vec3{X: 1000, Y: 7, Z: 1000})
			finishCheck(m)
			tt.setup(m)

			_ = RandomStroll(ctx)
			if !m.Goal.IsNone() {
				t.Errorf("goal assigned: %+v", m.Goal)
			}
		})
	}
}

func TestRandomStroll_ZeroChanceNeverMoves(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Game.Stroll.Chance = 0
	m := newTestMonster(ctx, domain.Vec3{X: 1000, Y: 7, Z: 1000})
	finishCheck(m)

	for i := 0; i < 100; i++ {
		_ = RandomStroll(ctx)
	}
	if !m.Goal.IsNone() {
		t.Errorf("goal assigned with zero chance: %+v", m.Goal)
	}
}
