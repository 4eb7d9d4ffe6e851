package systems

import (
	"skrillax-agent/internal/domain"
	"skrillax-agent/pkg/api"
	"skrillax-agent/pkg/logger"
)

// CollectChanges - пост-стадия: собирает изменения отслеживаемых компонентов.
// Маска изменений и флаги очков сбрасываются здесь, после того как наблюдатели их увидели.
func CollectChanges(ctx *Context) error {
	log := logger.Component("sync_system")
	forEach(ctx.Store, log, func(e *domain.Entity) error {
		mask := e.TakeChanges() & domain.TrackedComponents
		if mask != 0 {
			ctx.Changes.Push(BuildChangeSet(e, mask))
		}
		if e.Stats != nil {
			e.Stats.ResetFlags()
		}
		return nil
	})
	return nil
}

// BuildChangeSet переводит компоненты из маски в DTO
func BuildChangeSet(e *domain.Entity, mask domain.Component) api.ChangeSet {
	cs := api.ChangeSet{Entity: e.ID.Decimal(), Kind: e.Kind.String()}

	if mask.Has(domain.CompPosition) && e.Pos != nil {
		cs.Position = &api.PositionView{
			X: e.Pos.Location.X, Y: e.Pos.Location.Y, Z: e.Pos.Location.Z,
			Region:  uint16(e.Pos.Region),
			Heading: e.Pos.Heading,
		}
	}
	if mask.Has(domain.CompHealth) && e.Health != nil {
		cs.Health = &api.PoolView{Current: e.Health.Current, Max: e.Health.Max}
	}
	if mask.Has(domain.CompMana) && e.Mana != nil {
		cs.Mana = &api.PoolView{Current: e.Mana.Current, Max: e.Mana.Max}
	}
	if mask.Has(domain.CompLevel) && e.Level != nil {
		cs.Level = &api.LevelView{Current: e.Level.Current, Max: e.Level.Max}
	}
	if mask.Has(domain.CompExperience) && e.Exp != nil {
		cs.Experience = &api.ExperienceView{Exp: e.Exp.Exp, SPExp: e.Exp.SPExp}
	}
	if mask.Has(domain.CompSP) && e.SP != nil {
		sp := e.SP.Current
		cs.SP = &sp
	}
	if mask.Has(domain.CompStatPoints) && e.Stats != nil {
		cs.StatPoints = &api.StatPointsView{
			Strength:     e.Stats.Stats.Strength,
			Intelligence: e.Stats.Stats.Intelligence,
			Remaining:    e.Stats.Remaining,
			Gained:       e.Stats.HasGained(),
			Spent:        e.Stats.HasSpent(),
		}
	}
	if mask.Has(domain.CompGold) && e.Gold != nil {
		gold := e.Gold.Amount
		cs.Gold = &gold
	}
	if mask.Has(domain.CompMasteries) && e.Masteries != nil {
		for _, m := range e.Masteries.Entries() {
			cs.Masteries = append(cs.Masteries, api.MasteryView{ID: m.ID, Level: m.Level})
		}
	}
	if mask.Has(domain.CompSkills) && e.Skills != nil {
		cs.Skills = e.Skills.IDs()
	}
	if mask.Has(domain.CompInventory) && e.Inventory != nil {
		for _, it := range e.Inventory.Items {
			cs.Inventory = append(cs.Inventory, api.ItemView{Slot: it.Slot, RefID: it.RefID, Upgrade: it.Upgrade, Amount: it.Amount})
		}
	}
	if mask.Has(domain.CompDead) {
		dead := e.IsDead()
		cs.Dead = &dead
	}
	return cs
}
