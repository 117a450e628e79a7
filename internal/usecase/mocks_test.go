package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/visor-crm/internal/domain"
)

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *MockCacheRepository) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, maxCount int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, maxCount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessages(ctx context.Context, stream, group string, messageIDs []string) error {
	args := m.Called(ctx, stream, group, messageIDs)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) DeleteConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// MockQuotationRepository is a mock of QuotationRepository
type MockQuotationRepository struct {
	mock.Mock
}

func (m *MockQuotationRepository) ListPage(ctx context.Context, q domain.QuotationQuery) (int, []*domain.Quotation, error) {
	args := m.Called(ctx, q)
	if args.Get(1) == nil {
		return args.Int(0), nil, args.Error(2)
	}
	return args.Int(0), args.Get(1).([]*domain.Quotation), args.Error(2)
}

func (m *MockQuotationRepository) ListAll(ctx context.Context, chunkSize int) ([]*domain.Quotation, error) {
	args := m.Called(ctx, chunkSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Quotation), args.Error(1)
}

func (m *MockQuotationRepository) AreaValues(ctx context.Context) ([]*float64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*float64), args.Error(1)
}

func (m *MockQuotationRepository) MonthTotals(ctx context.Context, from, to time.Time) (int, float64, error) {
	args := m.Called(ctx, from, to)
	return args.Int(0), args.Get(1).(float64), args.Error(2)
}

func (m *MockQuotationRepository) Latest(ctx context.Context, limit int) ([]*domain.QuotationBrief, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.QuotationBrief), args.Error(1)
}

// MockClientRepository is a mock of ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) Page(ctx context.Context, page, size int) ([]*domain.Client, error) {
	args := m.Called(ctx, page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Client), args.Error(1)
}

func (m *MockClientRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockClientRepository) Paginated(ctx context.Context, page, size int, filter domain.ClientFilter) ([]*domain.Client, int, error) {
	args := m.Called(ctx, page, size, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Client), args.Int(1), args.Error(2)
}

// MockChatRepository is a mock of ChatRepository
type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) LatestPerSession(ctx context.Context) ([]*domain.ChatMessage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ChatMessage), args.Error(1)
}

func (m *MockChatRepository) Messages(ctx context.Context, sessionID string) ([]*domain.ChatMessage, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ChatMessage), args.Error(1)
}

func (m *MockChatRepository) Since(ctx context.Context, t time.Time) ([]*domain.ChatMessage, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ChatMessage), args.Error(1)
}

func (m *MockChatRepository) Insert(ctx context.Context, sessionID string, payload domain.RawJSON) (*domain.ChatMessage, error) {
	args := m.Called(ctx, sessionID, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChatMessage), args.Error(1)
}

// MockBotActivationRepository is a mock of BotActivationRepository
type MockBotActivationRepository struct {
	mock.Mock
}

func (m *MockBotActivationRepository) Get(ctx context.Context, sessionID string) (bool, bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), args.Bool(1), args.Error(2)
}

func (m *MockBotActivationRepository) Upsert(ctx context.Context, sessionID string, active bool) (*domain.BotActivation, error) {
	args := m.Called(ctx, sessionID, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BotActivation), args.Error(1)
}

// MockMessenger is a mock of MessengerRepository
type MockMessenger struct {
	mock.Mock
}

func (m *MockMessenger) SendText(ctx context.Context, to, body string) error {
	args := m.Called(ctx, to, body)
	return args.Error(0)
}

func (m *MockMessenger) UploadMedia(ctx context.Context, data []byte, filename, mimeType string) (string, error) {
	args := m.Called(ctx, data, filename, mimeType)
	return args.String(0), args.Error(1)
}

func (m *MockMessenger) SendMedia(ctx context.Context, to, mediaID, mediaType string) error {
	args := m.Called(ctx, to, mediaID, mediaType)
	return args.Error(0)
}

// MockMediaStore is a mock of MediaStore
type MockMediaStore struct {
	mock.Mock
}

func (m *MockMediaStore) Save(ctx context.Context, path string, data []byte) (string, error) {
	args := m.Called(ctx, path, data)
	return args.String(0), args.Error(1)
}

func ptrString(s string) *string { return &s }

func ptrFloat64(v float64) *float64 { return &v }

func ptrTime(t time.Time) *time.Time { return &t }

func ptrBool(b bool) *bool { return &b }
