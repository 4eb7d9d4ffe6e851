package systems

import (
	"testing"
	"time"

	"skrillax-agent/internal/domain"
)

func TestDeadMarker_TimedDespawn(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Delta = time.Second
	m := newTestMonster(ctx, domain.Vec3{X: 100, Z: 100})
	m.Kill(domain.NewMonsterDead(5 * time.Second))

	for tick := 1; tick <= 4; tick++ {
		_ = TickDead(ctx)
		_ = FlushStore(ctx)
		if ctx.Store.Get(m.ID) == nil {
			t.Fatalf("monster despawned after %d ticks", tick)
		}
	}

	_ = TickDead(ctx)
	_ = FlushStore(ctx)
	if ctx.Store.Get(m.ID) != nil {
		t.Fatal("monster still present after despawn delay")
	}

	changes := ctx.Changes.Drain()
	if len(changes) != 1 || !changes[0].Removed || changes[0].Entity != m.ID.Decimal() {
		t.Errorf("changes = %+v", changes)
	}
}

func TestDeadMarker_UntimedStays(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Delta = time.Hour
	p := newTestPlayer(ctx, domain.CharacterState{Name: "Ghost"})
	p.Kill(domain.NewPlayerDead())

	for i := 0; i < 10; i++ {
		_ = TickDead(ctx)
		_ = FlushStore(ctx)
	}
	if ctx.Store.Get(p.ID) == nil {
		t.Fatal("player without despawn timer removed")
	}
	if !p.IsDead() {
		t.Error("player revived by itself")
	}
}

func TestFlushStore_SpawnedEntitiesFullySynced(t *testing.T) {
	ctx := newTestContext(t)
	m := domain.NewMonster(domain.MonsterSpec{RefID: mobWolf, Name: "Wolf", Level: 3, MaxHP: 100})
	ctx.Store.QueueSpawn(m)

	if ctx.Store.Len() != 0 {
		t.Fatal("queued spawn applied before flush")
	}
	_ = FlushStore(ctx)
	if ctx.Store.Get(m.ID) == nil {
		t.Fatal("entity not spawned on flush")
	}
	if m.Changes()&domain.TrackedComponents != domain.TrackedComponents {
		t.Errorf("spawned entity mask = %v", m.Changes())
	}
}

func TestFlushStore_ClearsTickEvents(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Deaths.Push(domain.DeathEvent{})
	ctx.Experience.Push(domain.ExperienceEvent{})
	ctx.LevelUps.Push(domain.LevelUpEvent{})

	_ = FlushStore(ctx)

	if ctx.Deaths.Len()+ctx.Experience.Len()+ctx.LevelUps.Len() != 0 {
		t.Error("tick events survived flush")
	}
}
