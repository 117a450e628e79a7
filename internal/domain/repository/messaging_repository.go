package repository

import "context"

// MessengerRepository - исходящие сообщения в WhatsApp
type MessengerRepository interface {
	// SendText отправляет текстовое сообщение
	SendText(ctx context.Context, to, body string) error

	// UploadMedia загружает файл и возвращает media id
	UploadMedia(ctx context.Context, data []byte, filename, mimeType string) (string, error)

	// SendMedia отправляет ранее загруженный файл
	SendMedia(ctx context.Context, to, mediaID, mediaType string) error
}

// MediaStore - хранилище отправленных файлов
type MediaStore interface {
	// Save сохраняет файл и возвращает публичный URL
	Save(ctx context.Context, path string, data []byte) (string, error)
}
