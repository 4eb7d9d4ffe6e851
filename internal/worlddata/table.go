package worlddata

import (
	"fmt"
	"slices"
)

// Table - неизменяемая таблица справочных записей с доступом по числовому ID
type Table[T any] struct {
	rows map[uint32]T
	ids  []uint32
}

// NewTable строит таблицу; дубликат ID считается ошибкой контента
func NewTable[T any](records []T, key func(T) uint32) (Table[T], error) {
	t := Table[T]{rows: make(map[uint32]T, len(records)), ids: make([]uint32, 0, len(records))}
	for _, rec := range records {
		id := key(rec)
		if _, dup := t.rows[id]; dup {
			return Table[T]{}, fmt.Errorf("duplicate id %d", id)
		}
		t.rows[id] = rec
		t.ids = append(t.ids, id)
	}
	slices.Sort(t.ids)
	return t, nil
}

// Find возвращает запись или false. ID от клиента без записи - недоверенный ввод.
func (t Table[T]) Find(id uint32) (T, bool) {
	rec, ok := t.rows[id]
	return rec, ok
}

func (t Table[T]) Len() int {
	return len(t.rows)
}

// IDs в порядке возрастания
func (t Table[T]) IDs() []uint32 {
	return slices.Clone(t.ids)
}
