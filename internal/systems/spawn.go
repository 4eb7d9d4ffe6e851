package systems

import (
	"skrillax-agent/internal/config"
	"skrillax-agent/internal/domain"
	"skrillax-agent/pkg/logger"
	"skrillax-agent/pkg/utils"

	"github.com/sirupsen/logrus"
)

// SpawnMonsters держит численность живых монстров в каждой области появления
func SpawnMonsters(ctx *Context) error {
	if len(ctx.Game.Spawns) == 0 {
		return nil
	}
	log := logger.Component("spawn_system")

	alive := make(map[string]int, len(ctx.Game.Spawns))
	ctx.Store.Each(func(e *domain.Entity) {
		if e.Monster != nil && e.Monster.SpawnArea != "" && !e.IsDead() {
			alive[e.Monster.SpawnArea]++
		}
	})

	for _, area := range ctx.Game.Spawns {
		missing := area.Count - alive[area.Name]
		if missing <= 0 {
			continue
		}
		tpl, ok := ctx.Data.Characters().Find(area.RefID)
		if !ok {
			log.WithFields(logrus.Fields{"area": area.Name, "ref_id": area.RefID}).Warn("Spawn area references unknown character")
			continue
		}
		for i := 0; i < missing; i++ {
			ctx.Store.QueueSpawn(domain.NewMonster(monsterSpec(ctx, tpl.ID, tpl.Name, tpl.Level, tpl.MaxHP, area)))
		}
		log.WithFields(logrus.Fields{"area": area.Name, "count": missing}).Debug("Monsters queued")
	}
	return nil
}

func monsterSpec(ctx *Context, refID uint32, name string, level uint8, maxHP uint32, area config.SpawnArea) domain.MonsterSpec {
	x, z := utils.RandomInRadius(ctx.Rng, area.Center.X, area.Center.Z, area.Radius)
	origin := ctx.Game.Bounds.Clamp(domain.Vec3{X: x, Z: z})
	origin.Y = area.Center.Y
	if h, ok := ctx.Terrain.HeightFor(origin); ok {
		origin.Y = h
	}
	return domain.MonsterSpec{
		RefID:   refID,
		Name:    name,
		Level:   level,
		MaxHP:   maxHP,
		Origin:  origin,
		Radius:  area.StrollRadius,
		Recheck: ctx.Game.Stroll.Recheck,
		Area:    area.Name,
	}
}
