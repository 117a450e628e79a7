package usecase

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/visor-crm/internal/domain"
)

// DefaultSeenEvents - сколько последних event_id хранится для дедупликации
const DefaultSeenEvents = 1024

// ConversationStore - состояние живой ленты диалогов в памяти
type ConversationStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.ConversationSnapshot
	seen     map[uuid.UUID]struct{}
	order    []uuid.UUID
	next     int
	capacity int
}

func NewConversationStore(capacity int) *ConversationStore {
	if capacity <= 0 {
		capacity = DefaultSeenEvents
	}
	return &ConversationStore{
		sessions: make(map[string]*domain.ConversationSnapshot),
		seen:     make(map[uuid.UUID]struct{}, capacity),
		order:    make([]uuid.UUID, 0, capacity),
		capacity: capacity,
	}
}

// Apply вливает событие в ленту. Повторное событие с тем же event_id игнорируется.
func (s *ConversationStore) Apply(ev domain.ChatUpdateEvent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.seen[ev.EventID]; dup {
		return false
	}
	s.remember(ev.EventID)

	snap, ok := s.sessions[ev.SessionID]
	if !ok {
		snap = &domain.ConversationSnapshot{SessionID: ev.SessionID}
		s.sessions[ev.SessionID] = snap
	}

	switch ev.Kind {
	case domain.ChatEventMessage:
		snap.MessageCount++
		if ev.Message != nil && !ev.Message.Time.Before(snap.LastTime) {
			snap.LastMessage = ev.Message.Message
			snap.LastTime = ev.Message.Time
		}
	case domain.ChatEventBotStatus:
		if ev.IsActive != nil {
			active := *ev.IsActive
			snap.IsActive = &active
		}
		if snap.LastTime.IsZero() {
			snap.LastTime = ev.Time
		}
	}

	return true
}

// Seed заполняет ленту последними сообщениями, если сессии ещё нет
func (s *ConversationStore) Seed(latest []*domain.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range latest {
		if _, ok := s.sessions[m.SessionID]; ok {
			continue
		}
		s.sessions[m.SessionID] = &domain.ConversationSnapshot{
			SessionID:    m.SessionID,
			LastMessage:  m.Message,
			LastTime:     m.Time,
			MessageCount: 1,
		}
	}
}

// Snapshot - копия ленты, свежие диалоги сверху
func (s *ConversationStore) Snapshot() []domain.ConversationSnapshot {
	s.mu.RLock()
	out := make([]domain.ConversationSnapshot, 0, len(s.sessions))
	for _, snap := range s.sessions {
		cp := *snap
		if snap.IsActive != nil {
			active := *snap.IsActive
			cp.IsActive = &active
		}
		out = append(out, cp)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastTime.Equal(out[j].LastTime) {
			return out[i].LastTime.After(out[j].LastTime)
		}
		return out[i].SessionID < out[j].SessionID
	})
	return out
}

// Len - число диалогов в ленте
func (s *ConversationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// remember добавляет id в кольцо; самый старый id вытесняется
func (s *ConversationStore) remember(id uuid.UUID) {
	if len(s.order) < s.capacity {
		s.order = append(s.order, id)
	} else {
		delete(s.seen, s.order[s.next])
		s.order[s.next] = id
		s.next = (s.next + 1) % s.capacity
	}
	s.seen[id] = struct{}{}
}
