package handler

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/visor-crm/internal/domain"
	"github.com/visor-crm/internal/pkg/errors"
	"github.com/visor-crm/internal/pkg/utils"
	"github.com/visor-crm/internal/usecase"
	"github.com/visor-crm/internal/usecase/dto"
)

// LiveFeed - снимок живой ленты диалогов
type LiveFeed interface {
	Snapshot() []domain.ConversationSnapshot
}

// ChatHandler - просмотр диалогов и вмешательство консультанта
type ChatHandler struct {
	chatUC  *usecase.ChatUseCase
	feed    LiveFeed
	maxFile int64
	logger  *zap.Logger
}

// NewChatHandler - feed может быть nil, если лента выключена
func NewChatHandler(chatUC *usecase.ChatUseCase, feed LiveFeed, maxFile int64, logger *zap.Logger) *ChatHandler {
	if maxFile <= 0 {
		maxFile = domain.MaxMediaSize
	}
	return &ChatHandler{
		chatUC:  chatUC,
		feed:    feed,
		maxFile: maxFile,
		logger:  logger,
	}
}

// Conversations godoc
// @Summary Active conversations
// @Description Последнее сообщение каждой сессии, новые сверху. page/size = 0 отдают всё.
// @Tags Chat
// @Produce json
// @Param q query string false "Поиск по session_id и тексту"
// @Param page query int false "Страница"
// @Param size query int false "Размер страницы"
// @Success 200 {array} domain.ChatMessage
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /chat/conversation [get]
func (h *ChatHandler) Conversations(c *fiber.Ctx) error {
	var req dto.ConversationListRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage(err.Error()))
	}

	rows, err := h.chatUC.ListConversations(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendJSON(c, rows)
}

// Messages godoc
// @Summary Session history
// @Tags Chat
// @Produce json
// @Param session_id path string true "Сессия (номер WhatsApp)"
// @Success 200 {array} domain.ChatMessage
// @Failure 500 {object} utils.ErrorResponse
// @Router /chat/messages/{session_id} [get]
func (h *ChatHandler) Messages(c *fiber.Ctx) error {
	rows, err := h.chatUC.Messages(c.Context(), c.Params("session_id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendJSON(c, rows)
}

// Updates godoc
// @Summary Messages since a moment
// @Tags Chat
// @Produce json
// @Param since query string true "RFC3339"
// @Success 200 {array} domain.ChatMessage
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /chat/updates [get]
func (h *ChatHandler) Updates(c *fiber.Ctx) error {
	rows, err := h.chatUC.Updates(c.Context(), c.Query("since"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendJSON(c, rows)
}

// Live godoc
// @Summary Live conversation feed
// @Description Снимок ленты из stream:chat:updates; пустой список, если лента выключена
// @Tags Chat
// @Produce json
// @Success 200 {array} domain.ConversationSnapshot
// @Router /chat/live [get]
func (h *ChatHandler) Live(c *fiber.Ctx) error {
	if h.feed == nil {
		return utils.SendJSON(c, []domain.ConversationSnapshot{})
	}
	return utils.SendJSON(c, h.feed.Snapshot())
}

// BotStatus godoc
// @Summary Bot status
// @Description Нет записи - создаётся активной
// @Tags Chat
// @Produce json
// @Param session_id path string true "Сессия"
// @Success 200 {object} dto.BotStatusResponse
// @Router /chat/bot-status/{session_id} [get]
func (h *ChatHandler) BotStatus(c *fiber.Ctx) error {
	session := c.Params("session_id")
	return utils.SendJSON(c, dto.BotStatusResponse{
		SessionID: session,
		IsActive:  h.chatUC.BotStatus(c.Context(), session),
	})
}

// SetBotStatus godoc
// @Summary Pause or resume the bot
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body dto.BotStatusRequest true "Сессия и флаг"
// @Success 200 {object} dto.BotStatusUpdateResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /chat/bot-status [post]
func (h *ChatHandler) SetBotStatus(c *fiber.Ctx) error {
	var req dto.BotStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	res, err := h.chatUC.SetBotStatus(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendJSON(c, res)
}

// SendAdvisorMessage godoc
// @Summary Send an advisor message
// @Description Только при выключенном боте, иначе 403 BOT_ACTIVE
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body dto.AdvisorMessageRequest true "Сообщение"
// @Success 200 {object} dto.SendMessageResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /chat/send-advisor-message [post]
func (h *ChatHandler) SendAdvisorMessage(c *fiber.Ctx) error {
	var req dto.AdvisorMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	res, err := h.chatUC.SendAdvisorMessage(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendJSON(c, res)
}

// SendMedia godoc
// @Summary Send a file
// @Description multipart: session_id, media_type, file. Допустимы jpeg, png, pdf, doc, docx до 30MB.
// @Tags Chat
// @Accept mpfd
// @Produce json
// @Param session_id formData string true "Сессия"
// @Param media_type formData string true "MIME тип"
// @Param file formData file true "Файл"
// @Success 200 {object} dto.SendMessageResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /chat/send-media [post]
func (h *ChatHandler) SendMedia(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("file es requerido"))
	}
	f, err := fh.Open()
	if err != nil {
		h.logger.Error("Failed to open upload", zap.Error(err))
		return utils.SendError(c, errors.ErrInternalServer)
	}
	defer f.Close()

	// maxFile+1 байт достаточно, чтобы use case увидел превышение
	data, err := io.ReadAll(io.LimitReader(f, h.maxFile+1))
	if err != nil {
		h.logger.Error("Failed to read upload", zap.Error(err))
		return utils.SendError(c, errors.ErrInternalServer)
	}

	upload := dto.MediaUpload{
		SessionID: c.FormValue("session_id"),
		MediaType: c.FormValue("media_type"),
		Filename:  fh.Filename,
		Data:      data,
	}

	res, err := h.chatUC.SendMedia(c.Context(), upload)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendJSON(c, res)
}

