package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/visor-crm/internal/domain"
	"github.com/visor-crm/internal/domain/repository"
	"github.com/visor-crm/internal/repository/postgres"
	"github.com/visor-crm/internal/repository/postgres/testhelpers"
)

// ClientRepositoryTestSuite тестирует ClientRepository на реальной БД
type ClientRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repo   repository.ClientRepository
	ctx    context.Context
}

func (s *ClientRepositoryTestSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())

	s.Require().NoError(s.testDB.Migrate(context.Background(), migrationsPath))
	s.Require().NoError(s.testDB.Cleanup(context.Background()))
	s.Require().NoError(testhelpers.LoadFixtures(s.testDB.DB.DB, fixturesPath, []string{"clients.sql"}))

	s.repo = testhelpers.NewClientRepositoryForTest(s.testDB.DB, s.testDB.Logger)
}

func (s *ClientRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

func (s *ClientRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *ClientRepositoryTestSuite) TestPage_OrderedByLastInteraction() {
	clients, err := s.repo.Page(s.ctx, 1, 2)

	s.NoError(err)
	s.Require().Len(clients, 2)
	s.Equal("Jorge Salas", *clients[0].Name)
	s.Equal("Carla Ruiz", *clients[1].Name)
}

func (s *ClientRepositoryTestSuite) TestPage_BeyondEnd() {
	clients, err := s.repo.Page(s.ctx, 5, 50)

	s.NoError(err)
	s.Empty(clients)
}

func (s *ClientRepositoryTestSuite) TestCount() {
	total, err := s.repo.Count(s.ctx)

	s.NoError(err)
	s.Equal(4, total)
}

func (s *ClientRepositoryTestSuite) TestPaginated_Filters() {
	budget := 15000.0
	from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 28, 23, 59, 59, 0, time.UTC)

	tests := []struct {
		name   string
		filter domain.ClientFilter
		total  int
	}{
		{"no filters", domain.ClientFilter{}, 4},
		{"category", domain.ClientFilter{Category: "Facebook"}, 2},
		{"phone substring", domain.ClientFilter{Phone: "9222"}, 1},
		{"name case insensitive", domain.ClientFilter{Name: "ana"}, 1},
		{"style", domain.ClientFilter{Style: "Moderno"}, 1},
		{"budget", domain.ClientFilter{Budget: &budget}, 1},
		{"date range", domain.ClientFilter{DateFrom: &from, DateTo: &to}, 2},
		{"category and date range", domain.ClientFilter{Category: "Facebook", DateFrom: &from, DateTo: &to}, 1},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			clients, total, err := s.repo.Paginated(s.ctx, 1, 50, tt.filter)
			s.NoError(err)
			s.Equal(tt.total, total)
			s.Len(clients, tt.total)
		})
	}
}

func (s *ClientRepositoryTestSuite) TestPaginated_ScansNullableColumns() {
	clients, _, err := s.repo.Paginated(s.ctx, 1, 50, domain.ClientFilter{Phone: "51911111111"})

	s.NoError(err)
	s.Require().Len(clients, 1)

	c := clients[0]
	s.Require().NotNil(c.Budget)
	s.Equal(15000.0, *c.Budget)
	s.Require().NotNil(c.Appointment)
	s.True(c.Appointment.Equal(time.Date(2025, 1, 20, 19, 0, 0, 0, time.UTC)))
	s.Nil(c.Qualification)
	s.Equal(domain.QualificationQualified, c.ComputeQualification())
}

func (s *ClientRepositoryTestSuite) TestHealth_SchemaPresent() {
	db := postgres.NewDBForTest(s.testDB.DB, s.testDB.Logger)
	s.NoError(db.Health(s.ctx))
	s.NotEmpty(db.PoolStats())
}

func TestClientRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(ClientRepositoryTestSuite))
}
