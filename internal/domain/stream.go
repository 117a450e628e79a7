package domain

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// StreamChatUpdates - стрим обновлений чатов
const StreamChatUpdates = "stream:chat:updates"

// Виды событий в стриме
const (
	ChatEventMessage   = "message"
	ChatEventBotStatus = "bot_status"
)

// ChatUpdateEvent - событие живой ленты диалогов
type ChatUpdateEvent struct {
	EventID   uuid.UUID    `json:"event_id"`
	Kind      string       `json:"kind"`
	SessionID string       `json:"session_id"`
	Message   *ChatMessage `json:"message,omitempty"`
	IsActive  *bool        `json:"is_active,omitempty"`
	Time      time.Time    `json:"time"`
}

// messageEventSpace - пространство имён event_id сообщений
var messageEventSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("visor-crm:chat-message"))

// MessageEventID - event_id сообщения выводится из id строки, поэтому одна строка,
// опубликованная API и поллером, даёт одно и то же событие
func MessageEventID(messageID int64) uuid.UUID {
	return uuid.NewSHA1(messageEventSpace, []byte(strconv.FormatInt(messageID, 10)))
}

// NewMessageEvent - событие о новом сообщении в диалоге
func NewMessageEvent(msg *ChatMessage) ChatUpdateEvent {
	return ChatUpdateEvent{
		EventID:   MessageEventID(msg.ID),
		Kind:      ChatEventMessage,
		SessionID: msg.SessionID,
		Message:   msg,
		Time:      msg.Time,
	}
}

// NewBotStatusEvent - событие о включении или паузе бота
func NewBotStatusEvent(sessionID string, active bool, at time.Time) ChatUpdateEvent {
	return ChatUpdateEvent{
		EventID:   uuid.New(),
		Kind:      ChatEventBotStatus,
		SessionID: sessionID,
		IsActive:  &active,
		Time:      at,
	}
}

// Validate проверяет обязательные поля события после десериализации
func (e *ChatUpdateEvent) Validate() bool {
	if e.EventID == uuid.Nil || e.SessionID == "" {
		return false
	}
	switch e.Kind {
	case ChatEventMessage:
		return e.Message != nil
	case ChatEventBotStatus:
		return e.IsActive != nil
	}
	return false
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
