package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatUpdateEvent_Validate(t *testing.T) {
	msg := &ChatMessage{ID: 1, SessionID: "51999888777", Message: RawJSON(`{"type":"human"}`), Time: time.Now()}

	tests := []struct {
		name     string
		event    ChatUpdateEvent
		expected bool
	}{
		{"message event", NewMessageEvent(msg), true},
		{"bot status event", NewBotStatusEvent("51999888777", false, time.Now()), true},
		{"missing session", ChatUpdateEvent{EventID: NewMessageEvent(msg).EventID, Kind: ChatEventMessage, Message: msg}, false},
		{"message without payload", ChatUpdateEvent{EventID: NewMessageEvent(msg).EventID, Kind: ChatEventMessage, SessionID: "x"}, false},
		{"unknown kind", ChatUpdateEvent{EventID: NewMessageEvent(msg).EventID, Kind: "typing", SessionID: "x"}, false},
		{"zero event", ChatUpdateEvent{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.event.Validate())
		})
	}
}

func TestChatUpdateEvent_RoundTripKeepsRawMessage(t *testing.T) {
	msg := &ChatMessage{ID: 7, SessionID: "s1", Message: RawJSON(`{"type":"ai","content":"Hola"}`), Time: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)}

	data, err := json.Marshal(NewMessageEvent(msg))
	require.NoError(t, err)

	var decoded ChatUpdateEvent
	require.NoError(t, json.Unmarshal(data, &decoded))

	require.NotNil(t, decoded.Message)
	assert.JSONEq(t, `{"type":"ai","content":"Hola"}`, string(decoded.Message.Message))
	assert.True(t, decoded.Time.Equal(msg.Time))
	assert.Nil(t, decoded.IsActive)
}

func TestMessageEventID_Deterministic(t *testing.T) {
	a := NewMessageEvent(&ChatMessage{ID: 42, SessionID: "s1"})
	b := NewMessageEvent(&ChatMessage{ID: 42, SessionID: "s1"})
	c := NewMessageEvent(&ChatMessage{ID: 43, SessionID: "s1"})

	assert.Equal(t, a.EventID, b.EventID)
	assert.NotEqual(t, a.EventID, c.EventID)
	assert.NotEqual(t, NewBotStatusEvent("s1", true, time.Now()).EventID, NewBotStatusEvent("s1", true, time.Now()).EventID)
}

func TestRawJSON_Scan(t *testing.T) {
	var r RawJSON
	require.NoError(t, r.Scan([]byte(`{"a":1}`)))
	assert.Equal(t, `{"a":1}`, string(r))

	require.NoError(t, r.Scan(`{"b":2}`))
	assert.Equal(t, `{"b":2}`, string(r))

	require.NoError(t, r.Scan(nil))
	assert.Nil(t, r)

	assert.Error(t, r.Scan(42))

	data, err := json.Marshal(struct {
		M RawJSON `json:"m"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"m":null}`, string(data))
}

func TestIsAllowedMediaType(t *testing.T) {
	assert.True(t, IsAllowedMediaType("image/png"))
	assert.True(t, IsAllowedMediaType("application/pdf"))
	assert.False(t, IsAllowedMediaType("video/mp4"))
	assert.False(t, IsAllowedMediaType(""))
}
