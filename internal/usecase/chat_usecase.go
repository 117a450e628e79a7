package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/visor-crm/internal/domain"
	"github.com/visor-crm/internal/domain/repository"
	"github.com/visor-crm/internal/pkg/errors"
	"github.com/visor-crm/internal/pkg/validator"
	"github.com/visor-crm/internal/usecase/dto"
)

// Статусы ответов чата
const (
	StatusBotResumed  = "bot_resumed"
	StatusBotPaused   = "bot_paused"
	StatusMessageSent = "message_sent"
	StatusMediaSent   = "media_sent"

	advisorMessageType = "ai"
)

// ChatUseCase - просмотр диалогов и вмешательство консультанта
type ChatUseCase struct {
	chatRepo   repository.ChatRepository
	botRepo    repository.BotActivationRepository
	messenger  repository.MessengerRepository
	mediaStore repository.MediaStore
	streamRepo repository.StreamRepository
	maxFile    int64
	logger     *zap.Logger
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	botRepo repository.BotActivationRepository,
	messenger repository.MessengerRepository,
	mediaStore repository.MediaStore,
	streamRepo repository.StreamRepository,
	maxFile int64,
	logger *zap.Logger,
) *ChatUseCase {
	if maxFile <= 0 {
		maxFile = domain.MaxMediaSize
	}
	return &ChatUseCase{
		chatRepo:   chatRepo,
		botRepo:    botRepo,
		messenger:  messenger,
		mediaStore: mediaStore,
		streamRepo: streamRepo,
		maxFile:    maxFile,
		logger:     logger,
	}
}

// ListConversations - последнее сообщение каждой сессии с поиском и пагинацией.
// Нулевые page или size отдают все диалоги.
func (uc *ChatUseCase) ListConversations(ctx context.Context, req dto.ConversationListRequest) ([]*domain.ChatMessage, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	latest, err := uc.chatRepo.LatestPerSession(ctx)
	if err != nil {
		uc.logger.Error("Failed to list conversations", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	q := strings.TrimSpace(req.Q)
	out := make([]*domain.ChatMessage, 0, len(latest))
	for _, m := range latest {
		if q == "" || matchesConversation(m, q) {
			out = append(out, m)
		}
	}

	if req.Page > 0 && req.Size > 0 {
		start := (req.Page - 1) * req.Size
		if start >= len(out) {
			return []*domain.ChatMessage{}, nil
		}
		end := start + req.Size
		if end > len(out) {
			end = len(out)
		}
		out = out[start:end]
	}

	return out, nil
}

func matchesConversation(m *domain.ChatMessage, q string) bool {
	if strings.Contains(strings.ToLower(m.SessionID), strings.ToLower(q)) {
		return true
	}
	return m.Message.ContainsFold([]byte(q))
}

// Messages - вся история сессии
func (uc *ChatUseCase) Messages(ctx context.Context, sessionID string) ([]*domain.ChatMessage, error) {
	msgs, err := uc.chatRepo.Messages(ctx, sessionID)
	if err != nil {
		uc.logger.Error("Failed to get messages", zap.String("session_id", sessionID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	if msgs == nil {
		msgs = []*domain.ChatMessage{}
	}
	return msgs, nil
}

// Updates - сообщения после метки времени в формате RFC 3339
func (uc *ChatUseCase) Updates(ctx context.Context, since string) ([]*domain.ChatMessage, error) {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(since))
	if err != nil {
		return nil, errors.ErrInvalidRequest.WithMessage("since must be an RFC 3339 timestamp")
	}

	msgs, err := uc.chatRepo.Since(ctx, t)
	if err != nil {
		uc.logger.Error("Failed to get updates", zap.Time("since", t), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	if msgs == nil {
		msgs = []*domain.ChatMessage{}
	}
	return msgs, nil
}

// BotStatus - активен ли бот. Новая сессия получает активного бота, ошибки тоже дают true.
func (uc *ChatUseCase) BotStatus(ctx context.Context, sessionID string) bool {
	active, found, err := uc.botRepo.Get(ctx, sessionID)
	if err != nil {
		uc.logger.Warn("Failed to get bot status, assuming active",
			zap.String("session_id", sessionID), zap.Error(err))
		return true
	}
	if found {
		return active
	}

	if _, err := uc.botRepo.Upsert(ctx, sessionID, true); err != nil {
		uc.logger.Warn("Failed to create bot activation",
			zap.String("session_id", sessionID), zap.Error(err))
	}
	return true
}

// SetBotStatus включает или ставит бота на паузу
func (uc *ChatUseCase) SetBotStatus(ctx context.Context, req dto.BotStatusRequest) (*dto.BotStatusUpdateResponse, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	active := *req.IsActive
	record, err := uc.botRepo.Upsert(ctx, req.SessionID, active)
	if err != nil {
		uc.logger.Error("Failed to update bot status", zap.String("session_id", req.SessionID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	uc.publish(ctx, domain.NewBotStatusEvent(req.SessionID, active, time.Now().UTC()))

	status := StatusBotPaused
	if active {
		status = StatusBotResumed
	}

	uc.logger.Info("Bot status updated", zap.String("session_id", req.SessionID), zap.Bool("is_active", active))
	return &dto.BotStatusUpdateResponse{Status: status, Data: []*domain.BotActivation{record}}, nil
}

// SendAdvisorMessage сохраняет сообщение консультанта и отправляет его клиенту
func (uc *ChatUseCase) SendAdvisorMessage(ctx context.Context, req dto.AdvisorMessageRequest) (*dto.SendMessageResponse, error) {
	if err := validator.Validate(req); err != nil {
		return nil, errors.ErrInvalidRequest.WithMessage("session_id y message son requeridos")
	}

	if uc.BotStatus(ctx, req.SessionID) {
		return nil, errors.ErrBotActive
	}

	msg, err := uc.persist(ctx, req.SessionID, domain.NewAdvisorPayload(advisorMessageType, req.Message, ""))
	if err != nil {
		return nil, err
	}

	if err := uc.messenger.SendText(ctx, req.SessionID, req.Message); err != nil {
		uc.logger.Error("Failed to send WhatsApp message", zap.String("session_id", req.SessionID), zap.Error(err))
		return nil, errors.ErrExternalService.WithMessage("Error enviando mensaje a WhatsApp")
	}

	uc.publish(ctx, domain.NewMessageEvent(msg))

	return &dto.SendMessageResponse{Status: StatusMessageSent, Data: []*domain.ChatMessage{msg}}, nil
}

// SendMedia сохраняет файл, отправляет его в WhatsApp и пишет сообщение в историю
func (uc *ChatUseCase) SendMedia(ctx context.Context, upload dto.MediaUpload) (*dto.SendMessageResponse, error) {
	if strings.TrimSpace(upload.SessionID) == "" || upload.Filename == "" {
		return nil, errors.ErrInvalidRequest.WithMessage("session_id y file son requeridos")
	}
	if !domain.IsAllowedMediaType(upload.MediaType) {
		return nil, errors.ErrUnsupportedMediaType.WithDetails(map[string]interface{}{"media_type": upload.MediaType})
	}
	if int64(len(upload.Data)) > uc.maxFile {
		return nil, errors.ErrFileTooLarge
	}

	if uc.BotStatus(ctx, upload.SessionID) {
		return nil, errors.ErrBotActive
	}

	name := filepath.Base(upload.Filename)
	path := fmt.Sprintf("chat/%s-%s", uuid.New().String(), name)

	publicURL, err := uc.mediaStore.Save(ctx, path, upload.Data)
	if err != nil {
		uc.logger.Error("Failed to store media", zap.String("path", path), zap.Error(err))
		return nil, errors.ErrInternalServer.WithMessage("Error subiendo archivo")
	}

	mediaID, err := uc.messenger.UploadMedia(ctx, upload.Data, name, upload.MediaType)
	if err == nil {
		err = uc.messenger.SendMedia(ctx, upload.SessionID, mediaID, upload.MediaType)
	}
	if err != nil {
		uc.logger.Error("Failed to send media to WhatsApp", zap.String("session_id", upload.SessionID), zap.Error(err))
		return nil, errors.ErrExternalService.WithMessage("Error enviando multimedia a WhatsApp")
	}

	content := fmt.Sprintf("Archivo enviado (%s)", name)
	msg, err := uc.persist(ctx, upload.SessionID, domain.NewAdvisorPayload(upload.MediaType, content, publicURL))
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, domain.NewMessageEvent(msg))

	return &dto.SendMessageResponse{
		Status:   StatusMediaSent,
		MediaURL: publicURL,
		Data:     []*domain.ChatMessage{msg},
	}, nil
}

// LatestPerSession - последние сообщения для начального заполнения ленты
func (uc *ChatUseCase) LatestPerSession(ctx context.Context) ([]*domain.ChatMessage, error) {
	return uc.chatRepo.LatestPerSession(ctx)
}

// PublishNewSince публикует в стрим сообщения после since и возвращает время последнего из них
func (uc *ChatUseCase) PublishNewSince(ctx context.Context, since time.Time) (time.Time, int, error) {
	msgs, err := uc.chatRepo.Since(ctx, since)
	if err != nil {
		return since, 0, fmt.Errorf("get messages since %s: %w", since.Format(time.RFC3339), err)
	}

	last := since
	for i, m := range msgs {
		if err := uc.streamRepo.PublishToStream(ctx, domain.StreamChatUpdates, domain.NewMessageEvent(m)); err != nil {
			return last, i, fmt.Errorf("publish message %d: %w", m.ID, err)
		}
		if m.Time.After(last) {
			last = m.Time
		}
	}
	return last, len(msgs), nil
}

func (uc *ChatUseCase) persist(ctx context.Context, sessionID string, payload domain.AdvisorPayload) (*domain.ChatMessage, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	msg, err := uc.chatRepo.Insert(ctx, sessionID, raw)
	if err != nil {
		uc.logger.Error("Failed to persist message", zap.String("session_id", sessionID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return msg, nil
}

// publish отправляет событие в ленту; сбой стрима запрос не ломает
func (uc *ChatUseCase) publish(ctx context.Context, ev domain.ChatUpdateEvent) {
	if uc.streamRepo == nil {
		return
	}
	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamChatUpdates, ev); err != nil {
		uc.logger.Warn("Failed to publish chat update",
			zap.String("session_id", ev.SessionID),
			zap.String("kind", ev.Kind),
			zap.Error(err))
	}
}
