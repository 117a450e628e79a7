package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"go.uber.org/zap"

	"github.com/visor-crm/internal/config"
	"github.com/visor-crm/internal/domain/repository"
)

const messagingProduct = "whatsapp"

type client struct {
	httpClient    *http.Client
	baseURL       string
	accessToken   string
	phoneNumberID string
	logger        *zap.Logger
}

// NewClient создает клиент WhatsApp Cloud API
func NewClient(cfg *config.WhatsAppConfig, logger *zap.Logger) repository.MessengerRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:       strings.TrimRight(cfg.APIURL, "/"),
		accessToken:   cfg.AccessToken,
		phoneNumberID: cfg.PhoneNumberID,
		logger:        logger,
	}
}

type textMessage struct {
	MessagingProduct string   `json:"messaging_product"`
	RecipientType    string   `json:"recipient_type"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             textBody `json:"text"`
}

type textBody struct {
	Body string `json:"body"`
}

type uploadResponse struct {
	ID string `json:"id"`
}

// SendText отправляет текстовое сообщение
func (c *client) SendText(ctx context.Context, to, body string) error {
	payload := textMessage{
		MessagingProduct: messagingProduct,
		RecipientType:    "individual",
		To:               to,
		Type:             "text",
		Text:             textBody{Body: body},
	}

	return c.postJSON(ctx, "/messages", payload, nil)
}

// UploadMedia загружает файл multipart-запросом и возвращает media id
func (c *client) UploadMedia(ctx context.Context, data []byte, filename, mimeType string) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("messaging_product", messagingProduct); err != nil {
		return "", fmt.Errorf("failed to write form field: %w", err)
	}
	if err := w.WriteField("type", mimeType); err != nil {
		return "", fmt.Errorf("failed to write form field: %w", err)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	h.Set("Content-Type", mimeType)
	part, err := w.CreatePart(h)
	if err != nil {
		return "", fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to write file part: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	var resp uploadResponse
	if err := c.do(ctx, "/media", w.FormDataContentType(), &buf, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", fmt.Errorf("whatsapp API returned empty media id")
	}

	c.logger.Debug("Media uploaded",
		zap.String("filename", filename),
		zap.String("media_id", resp.ID))

	return resp.ID, nil
}

// SendMedia отправляет загруженный файл; mediaType - MIME тип файла
func (c *client) SendMedia(ctx context.Context, to, mediaID, mediaType string) error {
	kind := MessageType(mediaType)
	payload := map[string]interface{}{
		"messaging_product": messagingProduct,
		"to":                to,
		"type":              kind,
		kind:                map[string]string{"id": mediaID},
	}

	return c.postJSON(ctx, "/messages", payload, nil)
}

// MessageType - тип сообщения Cloud API для MIME типа
func MessageType(mimeType string) string {
	if strings.HasPrefix(mimeType, "image/") {
		return "image"
	}
	return "document"
}

func (c *client) endpoint(path string) string {
	if c.phoneNumberID == "" {
		return c.baseURL + path
	}
	return c.baseURL + "/" + c.phoneNumberID + path
}

func (c *client) postJSON(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	return c.do(ctx, path, "application/json", bytes.NewReader(body), out)
}

func (c *client) do(ctx context.Context, path, contentType string, body io.Reader, out interface{}) error {
	url := c.endpoint(path)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", contentType)

	c.logger.Debug("Calling WhatsApp API", zap.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("WhatsApp API returned error",
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(respBody)))
		return fmt.Errorf("whatsapp API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
