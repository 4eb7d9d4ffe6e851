package worlddata

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// ErrNotLoaded - справочник прочитан до загрузки. Ошибка порядка запуска, а не рантайма.
var ErrNotLoaded = errors.New("world data not loaded")

// Tables - все справочные таблицы процесса
type Tables struct {
	Items      Table[Item]
	Characters Table[Character]
	Skills     Table[Skill]
	Masteries  Table[Mastery]
	Teleports  Table[Teleport]
	Levels     LevelMap
	Gold       GoldMap
}

// Loader - внешний источник справочных данных (архив контента, тестовые фикстуры)
type Loader interface {
	LoadTables() (*Tables, error)
}

// Registry - однократно загружаемый справочник.
// Чтение после загрузки не блокируется: таблицы лежат за атомарным указателем.
type Registry struct {
	mu     sync.Mutex
	tables atomic.Pointer[Tables]
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Load заполняет справочник. Повторный вызов после успешной загрузки ничего не делает.
func (r *Registry) Load(loader Loader) error {
	if r.tables.Load() != nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tables.Load() != nil {
		return nil
	}
	t, err := loader.LoadTables()
	if err != nil {
		return fmt.Errorf("load world data: %w", err)
	}
	if t == nil {
		return fmt.Errorf("load world data: loader returned no tables")
	}
	r.tables.Store(t)
	return nil
}

func (r *Registry) Loaded() bool {
	return r.tables.Load() != nil
}

func (r *Registry) mustTables() *Tables {
	t := r.tables.Load()
	if t == nil {
		panic(ErrNotLoaded)
	}
	return t
}

func (r *Registry) Items() Table[Item]           { return r.mustTables().Items }
func (r *Registry) Characters() Table[Character] { return r.mustTables().Characters }
func (r *Registry) Skills() Table[Skill]         { return r.mustTables().Skills }
func (r *Registry) Masteries() Table[Mastery]    { return r.mustTables().Masteries }
func (r *Registry) Teleports() Table[Teleport]   { return r.mustTables().Teleports }
func (r *Registry) Levels() LevelMap             { return r.mustTables().Levels }
func (r *Registry) Gold() GoldMap                { return r.mustTables().Gold }

// Summary - размеры таблиц для логов загрузки
func (r *Registry) Summary() map[string]int {
	t := r.mustTables()
	return map[string]int{
		"items":      t.Items.Len(),
		"characters": t.Characters.Len(),
		"skills":     t.Skills.Len(),
		"masteries":  t.Masteries.Len(),
		"teleports":  t.Teleports.Len(),
		"levels":     t.Levels.Len(),
		"gold":       t.Gold.Len(),
	}
}
