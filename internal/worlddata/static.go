package worlddata

import "fmt"

// StaticLoader собирает таблицы из записей в памяти.
// Используется в тестах и как общий путь для файловых загрузчиков.
type StaticLoader struct {
	Items      []Item
	Characters []Character
	Skills     []Skill
	Masteries  []Mastery
	Teleports  []Teleport
	Levels     []LevelEntry
	Gold       []GoldEntry
}

func (s StaticLoader) LoadTables() (*Tables, error) {
	var (
		t   Tables
		err error
	)
	if t.Items, err = NewTable(s.Items, func(r Item) uint32 { return r.ID }); err != nil {
		return nil, fmt.Errorf("items: %w", err)
	}
	if t.Characters, err = NewTable(s.Characters, func(r Character) uint32 { return r.ID }); err != nil {
		return nil, fmt.Errorf("characters: %w", err)
	}
	if t.Skills, err = NewTable(s.Skills, func(r Skill) uint32 { return r.ID }); err != nil {
		return nil, fmt.Errorf("skills: %w", err)
	}
	if t.Masteries, err = NewTable(s.Masteries, func(r Mastery) uint32 { return r.ID }); err != nil {
		return nil, fmt.Errorf("masteries: %w", err)
	}
	if t.Teleports, err = NewTable(s.Teleports, func(r Teleport) uint32 { return r.ID }); err != nil {
		return nil, fmt.Errorf("teleports: %w", err)
	}
	t.Levels = NewLevelMap(s.Levels)
	t.Gold = NewGoldMap(s.Gold)
	return &t, nil
}
