// Package scenario - хранилище данных одного сценария. Шаги передают через
// него значения друг другу: например, регистрация кладет имя пользователя,
// а шаг входа его читает.
package scenario

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

var ErrMissingKey = errors.New("missing scenario key")

// MissingKeyError - шаг читает ключ, который в этом сценарии не записывался.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("ключ %q не задан в контексте сценария", e.Key)
}

func (e *MissingKeyError) Is(target error) bool {
	return target == ErrMissingKey
}

// Store создается раннером на каждый сценарий и очищается после него.
// Разные сценарии никогда не делят один Store.
type Store struct {
	mu      sync.RWMutex
	id      string
	entries map[string]any
}

func NewStore() *Store {
	return &Store{
		id:      uuid.NewString(),
		entries: make(map[string]any),
	}
}

func (s *Store) ID() string {
	return s.id
}

// Set записывает значение, перезаписывая предыдущее под тем же ключом.
func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
}

func (s *Store) Get(key string) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	if !ok {
		return nil, &MissingKeyError{Key: key}
	}
	return v, nil
}

func (s *Store) Contains(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[key]
	return ok
}

// Clear удаляет все записи. Повторный вызов безопасен.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.entries)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Keys возвращает отсортированные ключи, для отчетов о падении шага.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Value читает значение и приводит его к T. Несовпадение типа - ошибка
// программиста в шагах, поэтому возвращается отдельно от ErrMissingKey.
func Value[T any](s *Store, key string) (T, error) {
	var zero T
	v, err := s.Get(key)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("ключ %q: ожидался %T, записан %T", key, zero, v)
	}
	return typed, nil
}
