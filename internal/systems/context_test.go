package systems

import (
	"errors"
	"testing"

	"skrillax-agent/internal/domain"
	"skrillax-agent/internal/worlddata"
	"skrillax-agent/pkg/logger"
)

func TestForEach_SkipsFailingEntity(t *testing.T) {
	ctx := newTestContext(t)
	var ids []domain.EntityID
	for i := 0; i < 4; i++ {
		ids = append(ids, newTestMonster(ctx, domain.Vec3{X: 100, Z: 100}).ID)
	}

	var visited []domain.EntityID
	forEach(ctx.Store, logger.Component("test"), func(e *domain.Entity) error {
		switch e.ID {
		case ids[1]:
			panic("broken entity")
		case ids[2]:
			return errors.New("bad state")
		}
		visited = append(visited, e.ID)
		return nil
	})

	if len(visited) != 2 || visited[0] != ids[0] || visited[1] != ids[3] {
		t.Errorf("visited = %v, want %v and %v", visited, ids[0], ids[3])
	}
}

func TestEachEvent_SkipsFailingEvent(t *testing.T) {
	var handled []int
	eachEvent([]int{1, 2, 3, 4, 5}, logger.Component("test"), func(ev int) error {
		switch ev {
		case 2:
			panic("broken event")
		case 4:
			return errors.New("bad event")
		}
		handled = append(handled, ev)
		return nil
	})

	if len(handled) != 3 || handled[0] != 1 || handled[1] != 3 || handled[2] != 5 {
		t.Errorf("handled = %v, want [1 3 5]", handled)
	}
}

func TestDropGold_PanicOnOneDeathKeepsTheRest(t *testing.T) {
	ctx := newTestContext(t)
	loader := testData()
	loader.Gold = append(loader.Gold, worlddata.GoldEntry{Level: 4, Min: 7, Max: 7})
	data := worlddata.NewRegistry()
	if err := data.Load(loader); err != nil {
		t.Fatal(err)
	}
	ctx.Data = data
	// Без генератора первая смерть (диапазон 10..20) паникует
	ctx.Rng = nil

	killer := newTestPlayer(ctx, domain.CharacterState{Name: "Hunter"})
	random := newTestMonster(ctx, domain.Vec3{X: 100, Z: 100})
	fixed := newTestMonster(ctx, domain.Vec3{X: 100, Z: 100})
	fixed.Level.Current = 4

	ctx.Deaths.Push(domain.DeathEvent{Entity: random.ID, Killer: killer.ID})
	ctx.Deaths.Push(domain.DeathEvent{Entity: fixed.ID, Killer: killer.ID})

	if err := DropGold(ctx); err != nil {
		t.Fatalf("DropGold = %v", err)
	}
	if killer.Gold.Amount != 7 {
		t.Errorf("gold = %d, want 7 from the second death", killer.Gold.Amount)
	}
}
