package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/visor-crm/internal/domain/repository"
	"github.com/visor-crm/internal/repository/postgres"
)

// NewQuotationRepositoryForTest - репозиторий котировок поверх тестовой БД
func NewQuotationRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.QuotationRepository {
	return postgres.NewQuotationRepository(postgres.NewDBForTest(db, logger), logger)
}

// NewClientRepositoryForTest - репозиторий лидов поверх тестовой БД
func NewClientRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.ClientRepository {
	return postgres.NewClientRepository(postgres.NewDBForTest(db, logger), logger)
}

// NewChatRepositoryForTest - репозиторий истории чатов поверх тестовой БД
func NewChatRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.ChatRepository {
	return postgres.NewChatRepository(postgres.NewDBForTest(db, logger), logger)
}

// NewBotActivationRepositoryForTest - репозиторий флагов бота поверх тестовой БД
func NewBotActivationRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.BotActivationRepository {
	return postgres.NewBotActivationRepository(postgres.NewDBForTest(db, logger), logger)
}
