package postgres

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/visor-crm/internal/domain"
	"github.com/visor-crm/internal/domain/repository"
)

type clientRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewClientRepository создает репозиторий лидов
func NewClientRepository(db *DB, logger *zap.Logger) repository.ClientRepository {
	return &clientRepository{
		db:     db,
		logger: logger,
	}
}

func (r *clientRepository) Page(ctx context.Context, page, size int) ([]*domain.Client, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM clients_pravi
		ORDER BY ultima_interaccion DESC NULLS LAST, id DESC
		LIMIT $1 OFFSET $2
	`, domain.ClientColumns)

	clients := make([]*domain.Client, 0, size)
	if err := r.db.SelectContext(ctx, &clients, query, size, offset(page, size)); err != nil {
		return nil, fmt.Errorf("select clients page %d: %w", page, err)
	}

	return clients, nil
}

func (r *clientRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM clients_pravi"); err != nil {
		return 0, fmt.Errorf("count clients: %w", err)
	}
	return total, nil
}

func (r *clientRepository) Paginated(ctx context.Context, page, size int, filter domain.ClientFilter) ([]*domain.Client, int, error) {
	where := clientWhere(filter)

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM clients_pravi"+where.clause(), where.args...); err != nil {
		return nil, 0, fmt.Errorf("count filtered clients: %w", err)
	}

	n := where.next()
	query := fmt.Sprintf(
		"SELECT %s FROM clients_pravi%s ORDER BY ultima_interaccion DESC NULLS LAST, id DESC LIMIT $%d OFFSET $%d",
		domain.ClientColumns, where.clause(), n, n+1,
	)
	args := append(where.args, size, offset(page, size))

	clients := make([]*domain.Client, 0, size)
	if err := r.db.SelectContext(ctx, &clients, query, args...); err != nil {
		return nil, 0, fmt.Errorf("select filtered clients: %w", err)
	}

	r.logger.Debug("Filtered clients loaded",
		zap.Int("page", page),
		zap.Int("returned", len(clients)),
		zap.Int("total", total))

	return clients, total, nil
}

func clientWhere(f domain.ClientFilter) *whereBuilder {
	where := &whereBuilder{}
	if v := strings.TrimSpace(f.Phone); v != "" {
		where.add("telefono ILIKE $%[1]d", containsPattern(v))
	}
	if v := strings.TrimSpace(f.Name); v != "" {
		where.add("nombre ILIKE $%[1]d", containsPattern(v))
	}
	if v := strings.TrimSpace(f.Category); v != "" {
		where.add("categoria = $%[1]d", v)
	}
	if v := strings.TrimSpace(f.Style); v != "" {
		where.add("estilo = $%[1]d", v)
	}
	if f.Budget != nil {
		where.add("presupuesto = $%[1]d", *f.Budget)
	}
	if f.DateFrom != nil {
		where.add("primera_interaccion >= $%[1]d", f.DateFrom.UTC())
	}
	if f.DateTo != nil {
		where.add("primera_interaccion <= $%[1]d", f.DateTo.UTC())
	}
	return where
}
