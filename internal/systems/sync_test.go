package systems

import (
	"testing"

	"skrillax-agent/internal/domain"
)

func TestCollectChanges_OnlyChangedComponents(t *testing.T) {
	ctx := newTestContext(t)
	p := newTestPlayer(ctx, domain.CharacterState{Name: "Sync", StatPoints: 2, SP: 5})
	quiet := newTestPlayer(ctx, domain.CharacterState{Name: "Quiet"})

	SpendPoints(p, domain.StatStrength, 1)
	p.Gold.Gain(7)
	p.Touch(domain.CompGold)

	_ = CollectChanges(ctx)

	changes := ctx.Changes.Drain()
	if len(changes) != 1 {
		t.Fatalf("changes = %+v", changes)
	}
	cs := changes[0]
	if cs.Entity != p.ID.Decimal() || cs.Kind != "PLAYER" {
		t.Errorf("change set header = %q %q", cs.Entity, cs.Kind)
	}
	if cs.StatPoints == nil || !cs.StatPoints.Spent || cs.StatPoints.Remaining != 1 {
		t.Errorf("stat points = %+v", cs.StatPoints)
	}
	if cs.Gold == nil || *cs.Gold != 7 {
		t.Errorf("gold = %v", cs.Gold)
	}
	if cs.Health != nil || cs.SP != nil || cs.Position != nil {
		t.Errorf("unchanged components leaked: %+v", cs)
	}

	if p.Changes() != 0 || quiet.Changes() != 0 {
		t.Error("change masks not cleared")
	}
	if p.Stats.HasSpent() || p.Stats.HasGained() {
		t.Error("stat point flags not reset")
	}

	// Следующий тик без изменений - пусто
	_ = CollectChanges(ctx)
	if ctx.Changes.Len() != 0 {
		t.Error("changes reported twice")
	}
}

func TestBuildChangeSet_Dead(t *testing.T) {
	ctx := newTestContext(t)
	m := newTestMonster(ctx, domain.Vec3{X: 1, Y: 2, Z: 3})
	m.Kill(domain.NewMonsterDead(0))

	cs := BuildChangeSet(m, m.Changes())
	if cs.Dead == nil || !*cs.Dead {
		t.Errorf("dead = %v", cs.Dead)
	}

	cs = BuildChangeSet(m, domain.CompPosition)
	if cs.Position == nil || cs.Position.X != 1 || cs.Position.Z != 3 {
		t.Errorf("position = %+v", cs.Position)
	}
}
