package media

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/visor-crm/internal/config"
	"github.com/visor-crm/internal/domain/repository"
)

// RoutePrefix - путь, по которому Fiber раздаёт каталог с файлами
const RoutePrefix = "/media"

type localStore struct {
	dir           string
	publicBaseURL string
	logger        *zap.Logger
}

// NewLocalStore создает хранилище файлов в локальном каталоге
func NewLocalStore(cfg *config.MediaConfig, logger *zap.Logger) (repository.MediaStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media dir: %w", err)
	}

	return &localStore{
		dir:           cfg.Dir,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		logger:        logger,
	}, nil
}

// Save записывает файл по относительному пути и возвращает публичный URL
func (s *localStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rel, err := CleanPath(name)
	if err != nil {
		return "", err
	}

	full := filepath.Join(s.dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create media subdir: %w", err)
	}

	// запись через временный файл, чтобы не отдать наружу недописанный
	tmp := full + ".part"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write media file: %w", err)
	}
	if err := os.Rename(tmp, full); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to move media file: %w", err)
	}

	s.logger.Info("Media file stored",
		zap.String("path", rel),
		zap.Int("size", len(data)))

	return s.publicBaseURL + RoutePrefix + "/" + rel, nil
}

// CleanPath нормализует относительный путь: только безопасные символы, без выхода из каталога
func CleanPath(name string) (string, error) {
	parts := strings.Split(strings.ReplaceAll(name, `\`, "/"), "/")
	clean := make([]string, 0, len(parts))
	for _, p := range parts {
		p = sanitizeComponent(p)
		if p == "" || p == "." || p == ".." {
			continue
		}
		clean = append(clean, p)
	}

	if len(clean) == 0 {
		return "", fmt.Errorf("invalid media path %q", name)
	}

	return path.Join(clean...), nil
}

func sanitizeComponent(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	return b.String()
}
