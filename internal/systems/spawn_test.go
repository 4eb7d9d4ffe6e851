package systems

import (
	"testing"

	"skrillax-agent/internal/config"
	"skrillax-agent/internal/domain"
)

func TestSpawnMonsters_KeepsPopulation(t *testing.T) {
	ctx := newTestContext(t)
	center := domain.Vec3{X: 1000, Y: 7, Z: 1000}
	ctx.Game.Spawns = []config.SpawnArea{
		{Name: "wolves", RefID: mobWolf, Center: center, Radius: 20, Count: 4, StrollRadius: 5},
		{Name: "ghosts", RefID: 404, Center: center, Radius: 20, Count: 2},
	}

	_ = SpawnMonsters(ctx)
	_ = FlushStore(ctx)
	if ctx.Store.Len() != 4 {
		t.Fatalf("entities = %d, want 4", ctx.Store.Len())
	}

	// Повторный вызов при полной численности ничего не добавляет
	_ = SpawnMonsters(ctx)
	_ = FlushStore(ctx)
	if ctx.Store.Len() != 4 {
		t.Fatalf("entities = %d after refill, want 4", ctx.Store.Len())
	}

	var victim *domain.Entity
	ctx.Store.Each(func(e *domain.Entity) {
		if victim == nil {
			victim = e
		}
		if e.Monster.SpawnArea != "wolves" || e.Pos.Location.DistanceTo(center) > 21 {
			t.Errorf("monster %v misplaced at %+v", e.ID, e.Pos.Location)
		}
		if e.Pos.Location.Y != 7 {
			t.Errorf("monster height = %v, want terrain height", e.Pos.Location.Y)
		}
	})

	// Мертвый монстр замещается, пока его тело еще в мире
	victim.Kill(domain.NewMonsterDead(0))
	_ = SpawnMonsters(ctx)
	_ = FlushStore(ctx)
	if ctx.Store.Len() != 5 {
		t.Errorf("entities = %d, want 5", ctx.Store.Len())
	}
}
