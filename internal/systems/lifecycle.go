package systems

import (
	"skrillax-agent/internal/domain"
	"skrillax-agent/pkg/api"
	"skrillax-agent/pkg/logger"
)

// TickDead продвигает таймеры маркеров смерти и ставит сущность в очередь на удаление
func TickDead(ctx *Context) error {
	log := logger.Component("lifecycle_system")
	forEach(ctx.Store, log, func(e *domain.Entity) error {
		if e.Dead == nil {
			return nil
		}
		if e.Dead.Tick(ctx.Delta) && ctx.Store.QueueDespawn(e.ID) {
			log.WithField("entity_id", e.ID).Debug("Despawn queued")
		}
		return nil
	})
	return nil
}

// FlushStore - финальная стадия: применяет появление и удаление сущностей,
// очищает события тика
func FlushStore(ctx *Context) error {
	spawned, despawned := ctx.Store.Flush()
	for _, id := range despawned {
		ctx.Changes.Push(api.ChangeSet{Entity: id.Decimal(), Kind: id.Kind().String(), Removed: true})
	}
	// Новые сущности целиком уйдут наблюдателям на следующем тике
	for _, id := range spawned {
		if e := ctx.Store.Get(id); e != nil {
			e.Touch(domain.TrackedComponents)
		}
	}
	if len(spawned) > 0 || len(despawned) > 0 {
		logger.Component("lifecycle_system").
			WithField("spawned", len(spawned)).
			WithField("despawned", len(despawned)).
			Debug("Store flushed")
	}

	ctx.Deaths.Clear()
	ctx.Experience.Clear()
	ctx.LevelUps.Clear()
	return nil
}
