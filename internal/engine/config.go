package engine

import (
	"time"

	"skrillax-agent/internal/config"
)

// Config хранит параметры запуска движка
type Config struct {
	// Seed - мастер-зерно генератора. Один сид и одни команды дают один и тот же мир.
	Seed     int64
	Parallel bool
	Game     config.GameConfig
}

// NewConfig собирает конфиг движка из правил мира. Нулевой сид заменяется временем запуска.
func NewConfig(game config.GameConfig) Config {
	seed := game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return Config{
		Seed:     seed,
		Parallel: game.Parallel,
		Game:     game,
	}
}
