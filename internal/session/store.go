// Пакет session — внутрипроцессное хранилище сессий с LRU-вытеснением
// и скользящим TTL. Сессия живёт до таймаута простоя (по умолчанию
// 7 дней); между процессами и устройствами не разделяется.
package session

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/kursovoi/storefront/internal/ports"
	"github.com/kursovoi/storefront/pkg/metrics"
)

var _ ports.SessionStore = (*Store)(nil)

type entry struct {
	id        string
	values    map[string][]byte
	expiresAt time.Time
}

type Store struct {
	capacity int
	ttl      time.Duration

	ll    *list.List
	index map[string]*list.Element

	mu sync.Mutex
}

func NewStore(capacity int, ttl time.Duration) *Store {
	if capacity <= 0 {
		capacity = 1
	}
	return &Store{
		capacity: capacity,
		ttl:      ttl,
		ll:       list.New(),
		index:    make(map[string]*list.Element),
	}
}

// GetValue — значение ключа в сессии. Чтение продлевает TTL сессии.
func (s *Store) GetValue(_ context.Context, sessionID, key string) ([]byte, bool) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	ent := s.live(sessionID, now)
	if ent == nil {
		return nil, false
	}
	val, ok := ent.values[key]
	if !ok {
		return nil, false
	}
	return cloneBytes(val), true
}

// SetValue — записать значение; сессия создаётся при первом обращении.
func (s *Store) SetValue(_ context.Context, sessionID, key string, value []byte) error {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	ent := s.live(sessionID, now)
	if ent == nil {
		s.pruneExpiredFromBack(now)
		elem := s.ll.PushFront(&entry{
			id:        sessionID,
			values:    make(map[string][]byte),
			expiresAt: s.expiryFrom(now),
		})
		s.index[sessionID] = elem
		metrics.SessionCount.Set(float64(len(s.index)))
		if s.ll.Len() > s.capacity {
			s.evictLRU()
		}
		ent = elem.Value.(*entry)
	}
	ent.values[key] = cloneBytes(value)
	return nil
}

func (s *Store) DeleteValue(_ context.Context, sessionID, key string) error {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if ent := s.live(sessionID, now); ent != nil {
		delete(ent.values, key)
	}
	return nil
}

// Drop — удаление сессии целиком (logout, удаление аккаунта).
func (s *Store) Drop(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.index[sessionID]; ok {
		s.removeElement(elem)
		metrics.SessionCount.Set(float64(len(s.index)))
	}
	return nil
}

// Len — число живых сессий.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ll.Len()
}

// ------вспомогательные функции------

// live возвращает живую сессию, продлевая её TTL, либо nil.
func (s *Store) live(sessionID string, now time.Time) *entry {
	elem, ok := s.index[sessionID]
	if !ok {
		return nil
	}
	ent := elem.Value.(*entry)
	if s.isExpired(ent, now) {
		s.removeElement(elem)
		metrics.SessionCount.Set(float64(len(s.index)))
		return nil
	}
	s.ll.MoveToFront(elem)
	if s.ttl > 0 {
		ent.expiresAt = s.expiryFrom(now)
	}
	return ent
}

func (s *Store) evictLRU() {
	if back := s.ll.Back(); back != nil {
		s.removeElement(back)
		metrics.SessionCount.Set(float64(len(s.index)))
	}
}

func (s *Store) removeElement(elem *list.Element) {
	ent := elem.Value.(*entry)
	delete(s.index, ent.id)
	s.ll.Remove(elem)
}

func (s *Store) isExpired(ent *entry, now time.Time) bool {
	if s.ttl <= 0 {
		return false
	}
	return now.After(ent.expiresAt)
}

func (s *Store) expiryFrom(now time.Time) time.Time {
	if s.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(s.ttl)
}

func (s *Store) pruneExpiredFromBack(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for {
		back := s.ll.Back()
		if back == nil {
			return
		}
		ent := back.Value.(*entry)
		if !now.After(ent.expiresAt) {
			return
		}
		s.removeElement(back)
		metrics.SessionCount.Set(float64(len(s.index)))
	}
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
