package systems

import (
	"skrillax-agent/internal/domain"
	"skrillax-agent/internal/schedule"
)

// Ресурсы, не являющиеся компонентами. Младшие 32 бита заняты domain.Component.
const (
	ResRng schedule.AccessSet = 1 << (32 + iota)
	ResStructure
	ResDamageEvents
	ResDeathEvents
	ResExperienceEvents
	ResLevelUpEvents
	ResResponses
	ResChanges
	ResSlotStats
	ResSlotMastery
	ResSlotSkill
	ResSlotGM
)

// C - доступ к компонентам
func C(c domain.Component) schedule.AccessSet {
	return schedule.AccessSet(c)
}

// AccessNames - имена битов для отладочного вывода
var AccessNames = func() map[schedule.AccessSet]string {
	names := map[schedule.AccessSet]string{
		ResRng:              "rng",
		ResStructure:        "structure",
		ResDamageEvents:     "damage_events",
		ResDeathEvents:      "death_events",
		ResExperienceEvents: "experience_events",
		ResLevelUpEvents:    "level_up_events",
		ResResponses:        "responses",
		ResChanges:          "changes",
		ResSlotStats:        "slot_stats",
		ResSlotMastery:      "slot_mastery",
		ResSlotSkill:        "slot_skill",
		ResSlotGM:           "slot_gm",
	}
	for bit := domain.Component(1); bit <= domain.CompRace; bit <<= 1 {
		names[C(bit)] = bit.String()
	}
	return names
}()

const allTracked = domain.TrackedComponents

// Plan - полный список систем тика с зависимостями и декларациями доступа
func Plan() []schedule.System[*Context] {
	return []schedule.System[*Context]{
		{
			Name:   "tick_dead",
			Stage:  schedule.StagePreUpdate,
			Writes: C(domain.CompDead) | ResStructure,
			Run:    TickDead,
		},
		{
			Name:   "handle_gm_commands",
			Stage:  schedule.StageUpdate,
			Reads:  C(domain.CompHealth | domain.CompDead),
			Writes: ResSlotGM | C(domain.CompInventory|domain.CompPosition|domain.CompGoal) | ResDamageEvents | ResStructure | ResResponses | ResRng,
			Run:    HandleGMCommands,
		},
		{
			Name:   "increase_stats",
			Stage:  schedule.StageUpdate,
			Writes: ResSlotStats | C(domain.CompStatPoints) | ResResponses,
			Run:    IncreaseStats,
		},
		{
			Name:   "update_max_on_stat_change",
			Stage:  schedule.StageUpdate,
			After:  []string{"increase_stats"},
			Reads:  C(domain.CompStatPoints | domain.CompLevel),
			Writes: C(domain.CompHealth | domain.CompMana),
			Run:    UpdateMaxOnStatChange,
		},
		{
			Name:   "handle_mastery_levelup",
			Stage:  schedule.StageUpdate,
			Reads:  C(domain.CompLevel | domain.CompRace),
			Writes: ResSlotMastery | C(domain.CompMasteries|domain.CompSP) | ResResponses,
			Run:    HandleMasteryLevelUp,
		},
		{
			Name:   "learn_skill",
			Stage:  schedule.StageUpdate,
			Reads:  C(domain.CompMasteries | domain.CompRace),
			Writes: ResSlotSkill | C(domain.CompSkills|domain.CompSP) | ResResponses,
			Run:    HandleLearnSkill,
		},
		{
			Name:   "random_stroll",
			Stage:  schedule.StageUpdate,
			Reads:  C(domain.CompPosition | domain.CompState | domain.CompDead),
			Writes: C(domain.CompGoal|domain.CompStroll) | ResRng,
			Run:    RandomStroll,
		},
		{
			Name:   "handle_damage",
			Stage:  schedule.StageUpdate,
			After:  []string{"handle_gm_commands"},
			Writes: C(domain.CompHealth|domain.CompDamage|domain.CompDead|domain.CompState|domain.CompGoal) | ResDamageEvents | ResDeathEvents,
			Run:    HandleDamage,
		},
		{
			Name:   "distribute_experience",
			Stage:  schedule.StageUpdate,
			After:  []string{"handle_damage"},
			Reads:  ResDeathEvents | C(domain.CompExperience),
			Writes: ResExperienceEvents,
			Run:    DistributeExperience,
		},
		{
			Name:   "drop_gold",
			Stage:  schedule.StageUpdate,
			After:  []string{"handle_damage"},
			Reads:  ResDeathEvents | C(domain.CompLevel),
			Writes: C(domain.CompGold) | ResRng,
			Run:    DropGold,
		},
		{
			Name:   "receive_experience",
			Stage:  schedule.StageUpdate,
			After:  []string{"distribute_experience"},
			Reads:  ResExperienceEvents,
			Writes: C(domain.CompExperience|domain.CompLevel|domain.CompSP|domain.CompStatPoints) | ResLevelUpEvents,
			Run:    ReceiveExperience,
		},
		{
			Name:   "reset_health_mana_on_level",
			Stage:  schedule.StageUpdate,
			After:  []string{"receive_experience"},
			Reads:  ResLevelUpEvents | C(domain.CompStatPoints|domain.CompLevel|domain.CompDead),
			Writes: C(domain.CompHealth | domain.CompMana),
			Run:    ResetHealthManaOnLevel,
		},
		{
			Name:   "spawn_monsters",
			Stage:  schedule.StageUpdate,
			Reads:  C(domain.CompDead),
			Writes: ResStructure | ResRng,
			Run:    SpawnMonsters,
		},
		{
			Name:   "collect_changes",
			Stage:  schedule.StagePostUpdate,
			Reads:  C(allTracked),
			Writes: C(domain.CompStatPoints) | ResChanges,
			Run:    CollectChanges,
		},
		{
			Name:   "flush_store",
			Stage:  schedule.StageLast,
			Writes: ResStructure | ResChanges | ResDeathEvents | ResExperienceEvents | ResLevelUpEvents,
			Run:    FlushStore,
		},
	}
}
