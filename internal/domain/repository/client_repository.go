package repository

import (
	"context"

	"github.com/visor-crm/internal/domain"
)

// ClientRepository - доступ к таблице clients_pravi
type ClientRepository interface {
	// Page возвращает страницу лидов по ultima_interaccion desc
	Page(ctx context.Context, page, size int) ([]*domain.Client, error)

	// Count - общее число лидов
	Count(ctx context.Context) (int, error)

	// Paginated - страница с серверными фильтрами и общее число подходящих строк
	Paginated(ctx context.Context, page, size int, filter domain.ClientFilter) ([]*domain.Client, int, error)
}
