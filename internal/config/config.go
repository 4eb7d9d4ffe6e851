package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"skrillax-agent/internal/domain"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config - параметры запуска сервера симуляции
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Game    GameConfig    `yaml:"game"`
	Data    DataConfig    `yaml:"data"`
	Storage StorageConfig `yaml:"storage"`
	Agents  []AgentConfig `yaml:"agents"`
}

type ServerConfig struct {
	Port string `yaml:"port" env:"SKRILLAX_PORT"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

// GameConfig - правила мира
type GameConfig struct {
	TickRate int `yaml:"tick_rate" env:"SKRILLAX_TICK_RATE"`
	// Seed - мастер-зерно генератора случайных чисел. 0 - взять из времени запуска.
	Seed     int64 `yaml:"seed" env:"SKRILLAX_SEED"`
	Parallel bool  `yaml:"parallel" env:"SKRILLAX_PARALLEL"`

	Masteries          MasteryCaps   `yaml:"masteries"`
	Stroll             StrollConfig  `yaml:"stroll"`
	MonsterDespawn     time.Duration `yaml:"monster_despawn" env:"SKRILLAX_MONSTER_DESPAWN"`
	StatPointsPerLevel uint16        `yaml:"stat_points_per_level"`
	SPExpPerSP         uint64        `yaml:"sp_exp_per_sp"`
	Bounds             domain.Bounds `yaml:"bounds"`
	Spawns             []SpawnArea   `yaml:"spawns"`
}

// MasteryCaps - сколько уровней мастерства дает каждый уровень персонажа
type MasteryCaps struct {
	ChinesePerLevel  uint16 `yaml:"chinese_per_level"`
	EuropeanPerLevel uint16 `yaml:"european_per_level"`
}

type StrollConfig struct {
	Chance  float64       `yaml:"chance"`
	Recheck time.Duration `yaml:"recheck"`
}

// SpawnArea - область, в которой поддерживается численность монстров
type SpawnArea struct {
	Name         string      `yaml:"name"`
	RefID        uint32      `yaml:"ref_id"`
	Center       domain.Vec3 `yaml:"center"`
	Radius       float32     `yaml:"radius"`
	Count        int         `yaml:"count"`
	StrollRadius float32     `yaml:"stroll_radius"`
}

// AgentConfig - персонаж из снимка, которым управляет встроенный бот
type AgentConfig struct {
	Character uint32 `yaml:"character"`
	// Stats - str, int или balanced
	Stats   string `yaml:"stats"`
	Mastery uint32 `yaml:"mastery"`
}

type DataConfig struct {
	ContentDir string `yaml:"content_dir" env:"SKRILLAX_CONTENT_DIR"`
	// Heightmap - JSON-сетка высот. Пусто - плоский мир высоты FlatHeight.
	Heightmap  string  `yaml:"heightmap" env:"SKRILLAX_HEIGHTMAP"`
	FlatHeight float32 `yaml:"flat_height"`
}

type StorageConfig struct {
	SnapshotDir string        `yaml:"snapshot_dir" env:"SKRILLAX_SNAPSHOT_DIR"`
	Autosave    time.Duration `yaml:"autosave" env:"SKRILLAX_AUTOSAVE"`
}

// Default - рабочие значения без конфиг-файла
func Default() Config {
	return Config{
		Server: ServerConfig{Port: "8080"},
		Log:    LogConfig{Level: "info"},
		Game: GameConfig{
			TickRate: 10,
			Masteries: MasteryCaps{
				ChinesePerLevel:  3,
				EuropeanPerLevel: 2,
			},
			Stroll: StrollConfig{
				Chance:  domain.DefaultStrollChance,
				Recheck: domain.DefaultStrollRecheck,
			},
			MonsterDespawn:     domain.DefaultMonsterDespawnDelay,
			StatPointsPerLevel: domain.DefaultStatPointsPerLevel,
			SPExpPerSP:         domain.DefaultSPExpPerSP,
			Bounds: domain.Bounds{
				MaxX: 256 * domain.RegionSize,
				MaxZ: 256 * domain.RegionSize,
			},
		},
		Data:    DataConfig{ContentDir: "data"},
		Storage: StorageConfig{SnapshotDir: "snapshots", Autosave: 5 * time.Minute},
	}
}

// Load читает YAML поверх значений по умолчанию, затем применяет переменные окружения.
// Пустой path - только значения по умолчанию и окружение.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate проверяет значения, без которых мир не запустится
func (c Config) Validate() error {
	var errs []error
	g := c.Game
	if g.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("game.tick_rate must be positive, got %d", g.TickRate))
	}
	if g.Stroll.Chance < 0 || g.Stroll.Chance > 1 {
		errs = append(errs, fmt.Errorf("game.stroll.chance must be within [0,1], got %v", g.Stroll.Chance))
	}
	if g.Stroll.Recheck <= 0 {
		errs = append(errs, errors.New("game.stroll.recheck must be positive"))
	}
	if g.SPExpPerSP == 0 {
		errs = append(errs, errors.New("game.sp_exp_per_sp must be positive"))
	}
	if g.Bounds.MinX < 0 || g.Bounds.MinZ < 0 || g.Bounds.MaxX <= g.Bounds.MinX || g.Bounds.MaxZ <= g.Bounds.MinZ {
		errs = append(errs, fmt.Errorf("game.bounds are invalid: %+v", g.Bounds))
	}
	for i, s := range g.Spawns {
		if s.RefID == 0 || s.Count <= 0 {
			errs = append(errs, fmt.Errorf("game.spawns[%d] (%s) needs ref_id and a positive count", i, s.Name))
		}
		if !g.Bounds.Contains(s.Center) {
			errs = append(errs, fmt.Errorf("game.spawns[%d] (%s) center is outside world bounds", i, s.Name))
		}
	}
	for i, a := range c.Agents {
		if a.Character == 0 {
			errs = append(errs, fmt.Errorf("agents[%d] needs a character id", i))
		}
		switch a.Stats {
		case "", "str", "int", "balanced":
		default:
			errs = append(errs, fmt.Errorf("agents[%d] stats must be str, int or balanced, got %q", i, a.Stats))
		}
	}
	return errors.Join(errs...)
}

// TickDuration - длительность одного тика
func (g GameConfig) TickDuration() time.Duration {
	if g.TickRate <= 0 {
		return 100 * time.Millisecond
	}
	return time.Second / time.Duration(g.TickRate)
}

// PerLevelCap - лимит уровней мастерства на уровень персонажа для расы
func (g GameConfig) PerLevelCap(race domain.Race) uint16 {
	if race == domain.RaceEuropean {
		return g.Masteries.EuropeanPerLevel
	}
	return g.Masteries.ChinesePerLevel
}
