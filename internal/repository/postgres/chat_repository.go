package postgres

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/visor-crm/internal/domain"
	"github.com/visor-crm/internal/domain/repository"
)

type chatRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewChatRepository создает репозиторий истории чатов
func NewChatRepository(db *DB, logger *zap.Logger) repository.ChatRepository {
	return &chatRepository{
		db:     db,
		logger: logger,
	}
}

func (r *chatRepository) LatestPerSession(ctx context.Context) ([]*domain.ChatMessage, error) {
	query := `
		SELECT id, session_id, message, "time" FROM (
			SELECT DISTINCT ON (session_id) id, session_id, message, "time"
			FROM n8n_chat_pravi
			ORDER BY session_id, "time" DESC, id DESC
		) latest
		ORDER BY "time" DESC
	`

	var messages []*domain.ChatMessage
	if err := r.db.SelectContext(ctx, &messages, query); err != nil {
		return nil, fmt.Errorf("select latest messages: %w", err)
	}
	return messages, nil
}

func (r *chatRepository) Messages(ctx context.Context, sessionID string) ([]*domain.ChatMessage, error) {
	query := `
		SELECT id, session_id, message, "time"
		FROM n8n_chat_pravi
		WHERE session_id = $1
		ORDER BY "time", id
	`

	messages := make([]*domain.ChatMessage, 0)
	if err := r.db.SelectContext(ctx, &messages, query, sessionID); err != nil {
		return nil, fmt.Errorf("select messages for %s: %w", sessionID, err)
	}
	return messages, nil
}

func (r *chatRepository) Since(ctx context.Context, t time.Time) ([]*domain.ChatMessage, error) {
	query := `
		SELECT id, session_id, message, "time"
		FROM n8n_chat_pravi
		WHERE "time" > $1
		ORDER BY "time", id
	`

	messages := make([]*domain.ChatMessage, 0)
	if err := r.db.SelectContext(ctx, &messages, query, t.UTC()); err != nil {
		return nil, fmt.Errorf("select messages since %s: %w", t.Format(time.RFC3339), err)
	}
	return messages, nil
}

func (r *chatRepository) Insert(ctx context.Context, sessionID string, payload domain.RawJSON) (*domain.ChatMessage, error) {
	query := `
		INSERT INTO n8n_chat_pravi (session_id, message, "time")
		VALUES ($1, $2::jsonb, now())
		RETURNING id, session_id, message, "time"
	`

	var msg domain.ChatMessage
	if err := r.db.GetContext(ctx, &msg, query, sessionID, string(payload)); err != nil {
		return nil, fmt.Errorf("insert message for %s: %w", sessionID, err)
	}

	r.logger.Debug("Chat message persisted",
		zap.String("session_id", sessionID),
		zap.Int64("id", msg.ID))

	return &msg, nil
}

type botActivationRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewBotActivationRepository создает репозиторий флагов активности бота
func NewBotActivationRepository(db *DB, logger *zap.Logger) repository.BotActivationRepository {
	return &botActivationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *botActivationRepository) Get(ctx context.Context, sessionID string) (bool, bool, error) {
	var active []bool
	query := "SELECT is_active FROM chat_activation_pravi WHERE session_id = $1"
	if err := r.db.SelectContext(ctx, &active, query, sessionID); err != nil {
		return false, false, fmt.Errorf("select bot status for %s: %w", sessionID, err)
	}
	if len(active) == 0 {
		return false, false, nil
	}
	return active[0], true, nil
}

func (r *botActivationRepository) Upsert(ctx context.Context, sessionID string, active bool) (*domain.BotActivation, error) {
	query := `
		INSERT INTO chat_activation_pravi (session_id, is_active)
		VALUES ($1, $2)
		ON CONFLICT (session_id) DO UPDATE SET is_active = EXCLUDED.is_active
		RETURNING session_id, is_active
	`

	var rec domain.BotActivation
	if err := r.db.GetContext(ctx, &rec, query, sessionID, active); err != nil {
		return nil, fmt.Errorf("upsert bot status for %s: %w", sessionID, err)
	}
	return &rec, nil
}
