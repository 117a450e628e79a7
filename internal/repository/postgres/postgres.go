package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/visor-crm/internal/config"
)

const pingTimeout = 5 * time.Second

// Таблицы CRM, без которых API не отвечает
var requiredTables = []string{
	"clients_pravi",
	"cotizaciones",
	"n8n_chat_pravi",
	"chat_activation_pravi",
}

// DB - пул sqlx поверх pgx stdlib
type DB struct {
	*sqlx.DB
	logger *zap.Logger
}

func New(cfg *config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	db, err := sqlx.Connect("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("PostgreSQL connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.DBName),
		zap.Int("max_conns", cfg.MaxConns),
	)

	return &DB{DB: db, logger: logger}, nil
}

func (db *DB) Close() error {
	db.logger.Info("Closing PostgreSQL connection", db.PoolStats()...)
	return db.DB.Close()
}

// Health - ping и наличие таблиц CRM; используется /health и при старте
func (db *DB) Health(ctx context.Context) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}

	var missing []string
	for _, table := range requiredTables {
		var exists bool
		if err := db.GetContext(ctx, &exists, "SELECT to_regclass($1) IS NOT NULL", table); err != nil {
			return fmt.Errorf("check table %s: %w", table, err)
		}
		if !exists {
			missing = append(missing, table)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing tables: %s", strings.Join(missing, ", "))
	}

	return nil
}

// PoolStats - состояние пула в виде полей лога
func (db *DB) PoolStats() []zap.Field {
	st := db.Stats()
	return []zap.Field{
		zap.Int("open", st.OpenConnections),
		zap.Int("in_use", st.InUse),
		zap.Int("idle", st.Idle),
		zap.Int64("wait_count", st.WaitCount),
	}
}

// NewDBForTest оборачивает готовое подключение (для тестов)
func NewDBForTest(sqlxDB *sqlx.DB, logger *zap.Logger) *DB {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DB{
		DB:     sqlxDB,
		logger: logger,
	}
}

// offset для 1-based номера страницы
func offset(page, size int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * size
}
