package systems

import (
	"skrillax-agent/internal/domain"
	"skrillax-agent/pkg/logger"
	"skrillax-agent/pkg/utils"

	"github.com/sirupsen/logrus"
)

// RandomStroll раздает цели бродящим монстрам.
// Система только публикует цель; перемещает сущность внешняя система движения.
func RandomStroll(ctx *Context) error {
	log := logger.Component("movement_system")
	chance := ctx.Game.Stroll.Chance
	forEach(ctx.Store, log, func(e *domain.Entity) error {
		if e.Stroll == nil || e.Goal == nil || e.Pos == nil {
			return nil
		}
		if e.IsDead() || e.State != domain.StateIdle || !e.Goal.IsNone() {
			return nil
		}

		stroll := e.Stroll
		// Случайное число тянется только когда таймер истек
		if stroll.Check.Finished() && ctx.Rng.Float64() <= chance {
			x, z := utils.RandomInRadius(ctx.Rng, stroll.Origin.X, stroll.Origin.Z, stroll.Radius)
			target := ctx.Game.Bounds.Clamp(domain.Vec3{X: x, Z: z})
			if h, ok := ctx.Terrain.HeightFor(target); ok {
				target.Y = h
			} else {
				target.Y = e.Pos.Location.Y
			}

			e.Goal.MoveTo(target)
			e.Touch(domain.CompGoal)
			stroll.Check.Reset()

			log.WithFields(logrus.Fields{
				"entity_id": e.ID,
				"x":         target.X,
				"y":         target.Y,
				"z":         target.Z,
			}).Debug("Stroll goal assigned")
			return nil
		}

		stroll.Check.Tick(ctx.Delta)
		return nil
	})
	return nil
}
