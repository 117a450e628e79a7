package domain

import (
	"bytes"
	"database/sql/driver"
	"errors"
	"time"
)

// MaxMediaSize - предельный размер вложения
const MaxMediaSize = 30 * 1024 * 1024

// AllowedMediaTypes - типы вложений, которые можно отправить клиенту
var AllowedMediaTypes = []string{
	"image/jpeg",
	"image/png",
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

func IsAllowedMediaType(mediaType string) bool {
	for _, t := range AllowedMediaTypes {
		if t == mediaType {
			return true
		}
	}
	return false
}

// RawJSON - содержимое jsonb колонки без разбора
type RawJSON []byte

func (r *RawJSON) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*r = nil
	case []byte:
		*r = append((*r)[:0], v...)
	case string:
		*r = RawJSON(v)
	default:
		return errors.New("domain: unsupported type for RawJSON")
	}
	return nil
}

func (r RawJSON) Value() (driver.Value, error) {
	if len(r) == 0 {
		return nil, nil
	}
	return []byte(r), nil
}

func (r RawJSON) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r, nil
}

func (r *RawJSON) UnmarshalJSON(data []byte) error {
	*r = append((*r)[:0], data...)
	return nil
}

// ContainsFold - поиск подстроки в сыром JSON без учёта регистра
func (r RawJSON) ContainsFold(q []byte) bool {
	return bytes.Contains(bytes.ToLower(r), bytes.ToLower(q))
}

// ChatMessage - строка n8n_chat_pravi
type ChatMessage struct {
	ID        int64     `json:"id" db:"id"`
	SessionID string    `json:"session_id" db:"session_id"`
	Message   RawJSON   `json:"message" db:"message"`
	Time      time.Time `json:"time" db:"time"`
}

// BotActivation - строка chat_activation_pravi
type BotActivation struct {
	SessionID string `json:"session_id" db:"session_id"`
	IsActive  bool   `json:"is_active" db:"is_active"`
}

// AdvisorPayload - сообщение от имени бота в формате истории LangChain
type AdvisorPayload struct {
	Type             string                 `json:"type"`
	Content          string                 `json:"content"`
	MediaURL         string                 `json:"mediaUrl,omitempty"`
	ToolCalls        []interface{}          `json:"tool_calls"`
	AdditionalKwargs map[string]interface{} `json:"additional_kwargs"`
	ResponseMetadata map[string]interface{} `json:"response_metadata"`
	InvalidToolCalls []interface{}          `json:"invalid_tool_calls"`
}

// NewAdvisorPayload заполняет служебные поля пустыми значениями
func NewAdvisorPayload(kind, content, mediaURL string) AdvisorPayload {
	return AdvisorPayload{
		Type:             kind,
		Content:          content,
		MediaURL:         mediaURL,
		ToolCalls:        []interface{}{},
		AdditionalKwargs: map[string]interface{}{},
		ResponseMetadata: map[string]interface{}{},
		InvalidToolCalls: []interface{}{},
	}
}

// ConversationSnapshot - состояние диалога в живой ленте
type ConversationSnapshot struct {
	SessionID    string    `json:"session_id"`
	LastMessage  RawJSON   `json:"last_message"`
	LastTime     time.Time `json:"last_time"`
	IsActive     *bool     `json:"is_active"`
	MessageCount int       `json:"message_count"`
}
