//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/visor-crm/internal/domain"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	apiURL := flag.String("api", "http://localhost:8000", "API base URL")
	session := flag.String("session", "51999888777", "session_id (номер WhatsApp)")
	text := flag.String("text", "Hola, quiero cotizar una cocina", "message content")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	content, _ := json.Marshal(map[string]string{"type": "human", "content": *text})
	msg := &domain.ChatMessage{
		ID:        time.Now().UnixNano(),
		SessionID: *session,
		Message:   domain.RawJSON(content),
		Time:      time.Now().UTC(),
	}
	event := domain.NewMessageEvent(msg)

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamChatUpdates,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("✅ Event published successfully!\n")
	fmt.Printf("   Stream: %s\n", domain.StreamChatUpdates)
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Event ID: %s\n", event.EventID)
	fmt.Printf("   Session: %s\n", event.SessionID)

	fmt.Printf("\n⏳ Waiting for the session in %s/chat/live...\n", *apiURL)

	timeout := time.After(15 * time.Second)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("❌ Timeout waiting for live feed (CHAT_FEED_ENABLED?)")
			return
		case <-ticker.C:
			snap, err := fetchLive(*apiURL)
			if err != nil {
				continue
			}
			for _, c := range snap {
				if c.SessionID == *session {
					fmt.Printf("✅ Live feed updated: %d messages, last at %s\n", c.MessageCount, c.LastTime.Format(time.RFC3339))
					return
				}
			}
		}
	}
}

func fetchLive(base string) ([]domain.ConversationSnapshot, error) {
	resp, err := http.Get(base + "/chat/live")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var snap []domain.ConversationSnapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, err
	}
	return snap, nil
}
