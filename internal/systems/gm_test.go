package systems

import (
	"testing"

	"skrillax-agent/internal/domain"
)

func newTestGM(ctx *Context) *domain.Entity {
	return newTestPlayer(ctx, domain.CharacterState{Name: "GM", GM: true, Location: domain.Vec3{X: 100, Y: 7, Z: 100}})
}

func TestHandleGMCommands_NotPermitted(t *testing.T) {
	ctx := newTestContext(t)
	p := newTestPlayer(ctx, domain.CharacterState{Name: "Plain"})

	_ = p.Input.GM.Put(domain.GMCommand{Kind: domain.GMSpawnMonster, RefID: mobWolf})
	_ = HandleGMCommands(ctx)

	resps := ctx.Responses.Drain()
	if len(resps) != 1 || resps[0].Reason != "NOT_PERMITTED" {
		t.Errorf("responses = %+v", resps)
	}
	_ = FlushStore(ctx)
	if ctx.Store.Len() != 1 {
		t.Error("monster spawned without permission")
	}
}

func TestHandleGMCommands_SpawnMonster(t *testing.T) {
	ctx := newTestContext(t)
	gm := newTestGM(ctx)

	_ = gm.Input.GM.Put(domain.GMCommand{Kind: domain.GMSpawnMonster, RefID: mobWolf, Amount: 3})
	_ = HandleGMCommands(ctx)
	_ = FlushStore(ctx)

	monsters := ctx.Store.CountWhere(func(e *domain.Entity) bool { return e.Monster != nil })
	if monsters != 3 {
		t.Fatalf("monsters = %d, want 3", monsters)
	}
	ctx.Store.Each(func(e *domain.Entity) {
		if e.Monster == nil {
			return
		}
		if d := e.Pos.Location.DistanceTo(gm.Pos.Location); d > 3 {
			t.Errorf("monster spawned %v away from GM", d)
		}
		if e.Health.Max != 100 || e.Stroll == nil {
			t.Errorf("monster not built from template: %+v", e)
		}
	})
}

func TestHandleGMCommands_KillMonster(t *testing.T) {
	ctx := newTestContext(t)
	gm := newTestGM(ctx)
	m := newTestMonster(ctx, domain.Vec3{X: 100, Z: 100})

	_ = gm.Input.GM.Put(domain.GMCommand{Kind: domain.GMKillMonster, Target: m.ID})
	_ = HandleGMCommands(ctx)
	_ = HandleDamage(ctx)

	if !m.IsDead() {
		t.Fatal("monster survived GM kill")
	}
	deaths := ctx.Deaths.Items()
	if len(deaths) != 1 || deaths[0].Killer != gm.ID {
		t.Errorf("deaths = %+v", deaths)
	}
}

func TestHandleGMCommands_MakeItem(t *testing.T) {
	tests := []struct {
		name     string
		refID    uint32
		fill     bool
		expected string
	}{
		{"Success", itemSword, false, ""},
		{"Unknown item", 404, false, "UNKNOWN_TARGET"},
		{"Inventory full", itemSword, true, "INVENTORY_FULL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newTestContext(t)
			gm := newTestGM(ctx)
			if tt.fill {
				for i := uint8(0); i < gm.Inventory.Capacity; i++ {
					gm.Inventory.Add(domain.InventoryItem{RefID: itemSword, Amount: 1})
				}
			}
			before := len(gm.Inventory.Items)

			_ = gm.Input.GM.Put(domain.GMCommand{Kind: domain.GMMakeItem, RefID: tt.refID, Amount: 5, Upgrade: 3})
			_ = HandleGMCommands(ctx)

			resps := ctx.Responses.Drain()
			if len(resps) != 1 || resps[0].Reason != tt.expected {
				t.Fatalf("responses = %+v", resps)
			}
			if tt.expected != "" {
				if len(gm.Inventory.Items) != before {
					t.Error("inventory changed on failure")
				}
				return
			}
			item := gm.Inventory.Items[len(gm.Inventory.Items)-1]
			// Меч не стакается, но точится
			if item.Amount != 1 || item.Upgrade != 3 || item.Slot != 0 {
				t.Errorf("item = %+v", item)
			}
		})
	}
}

func TestHandleGMCommands_Teleport(t *testing.T) {
	ctx := newTestContext(t)
	gm := newTestGM(ctx)
	gm.Goal.MoveTo(domain.Vec3{X: 1, Z: 1})

	_ = gm.Input.GM.Put(domain.GMCommand{Kind: domain.GMTeleport, Location: 1})
	_ = HandleGMCommands(ctx)

	want := domain.Vec3{X: 500, Y: 2, Z: 600}
	if gm.Pos.Location != want {
		t.Errorf("location = %+v, want %+v", gm.Pos.Location, want)
	}
	if !gm.Goal.IsNone() {
		t.Error("goal survived teleport")
	}
	if !gm.Changes().Has(domain.CompPosition) {
		t.Error("position change not tracked")
	}
}
