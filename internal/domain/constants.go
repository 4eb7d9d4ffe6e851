package domain

import "time"

// Размер региона карты в игровых единицах
const RegionSize float32 = 1920

// Значения по умолчанию для поведения агентов
const (
	DefaultMonsterDespawnDelay = 5 * time.Second
	DefaultStrollRecheck       = time.Second
	DefaultStrollChance        = 0.1
	DefaultStatPointsPerLevel  = 3
	DefaultSPExpPerSP          = 400
	DefaultInventorySlots      = 45
)

// Стартовые характеристики персонажа первого уровня
const (
	BaseStrength     uint16 = 20
	BaseIntelligence uint16 = 20
)
