package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/visor-crm/internal/domain"
	"github.com/visor-crm/internal/domain/repository"
	"github.com/visor-crm/internal/repository/postgres/testhelpers"
)

const (
	migrationsPath = "../../../migrations"
	fixturesPath   = "testdata/fixtures"
)

// QuotationRepositoryTestSuite тестирует QuotationRepository на реальной БД
type QuotationRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repo   repository.QuotationRepository
	ctx    context.Context
}

func (s *QuotationRepositoryTestSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())

	s.Require().NoError(s.testDB.Migrate(context.Background(), migrationsPath))
	s.Require().NoError(s.testDB.Cleanup(context.Background()))
	s.Require().NoError(testhelpers.LoadFixtures(s.testDB.DB.DB, fixturesPath, []string{"cotizaciones.sql"}))

	s.repo = testhelpers.NewQuotationRepositoryForTest(s.testDB.DB, s.testDB.Logger)
}

func (s *QuotationRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

func (s *QuotationRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *QuotationRepositoryTestSuite) TestListPage_DefaultSort() {
	total, rows, err := s.repo.ListPage(s.ctx, domain.QuotationQuery{Page: 1, Size: 2})

	s.NoError(err)
	s.Equal(4, total)
	s.Require().Len(rows, 2)
	s.Equal(int64(4), rows[0].ID)
	s.Equal(int64(3), rows[1].ID)
}

func (s *QuotationRepositoryTestSuite) TestListPage_SecondPage() {
	total, rows, err := s.repo.ListPage(s.ctx, domain.QuotationQuery{Page: 2, Size: 3})

	s.NoError(err)
	s.Equal(4, total)
	s.Require().Len(rows, 1)
	s.Equal(int64(1), rows[0].ID)
}

func (s *QuotationRepositoryTestSuite) TestListPage_Search() {
	total, rows, err := s.repo.ListPage(s.ctx, domain.QuotationQuery{Page: 1, Size: 30, Q: "  miraflores "})

	s.NoError(err)
	s.Equal(2, total)
	s.Len(rows, 2)
	for _, r := range rows {
		s.Equal("Miraflores", *r.District)
	}
}

func (s *QuotationRepositoryTestSuite) TestListPage_SearchEscapesWildcards() {
	total, rows, err := s.repo.ListPage(s.ctx, domain.QuotationQuery{Page: 1, Size: 30, Q: "%"})

	s.NoError(err)
	s.Zero(total)
	s.Empty(rows)
}

func (s *QuotationRepositoryTestSuite) TestListPage_SortAscNullsLast() {
	_, rows, err := s.repo.ListPage(s.ctx, domain.QuotationQuery{Page: 1, Size: 30, SortKey: "area_m2", SortDir: "asc"})

	s.NoError(err)
	s.Require().Len(rows, 4)
	s.Equal([]int64{1, 4, 2, 3}, quotationIDs(rows))
	s.Nil(rows[3].AreaM2)
}

func (s *QuotationRepositoryTestSuite) TestListPage_UnknownSortKeyFallsBack() {
	_, rows, err := s.repo.ListPage(s.ctx, domain.QuotationQuery{Page: 1, Size: 30, SortKey: "id; DROP TABLE cotizaciones"})

	s.NoError(err)
	s.Equal([]int64{4, 3, 2, 1}, quotationIDs(rows))
}

func (s *QuotationRepositoryTestSuite) TestListPage_ScansArrays() {
	_, rows, err := s.repo.ListPage(s.ctx, domain.QuotationQuery{Page: 1, Size: 30, SortKey: "fecha_hora", SortDir: "asc"})

	s.NoError(err)
	s.Require().NotEmpty(rows)
	s.Equal([]string{"cocina", "sala"}, []string(rows[0].Spaces))
	s.Require().NotNil(rows[0].Rooms)
	s.Equal(int64(2), *rows[0].Rooms)
}

func (s *QuotationRepositoryTestSuite) TestListAll_Chunks() {
	rows, err := s.repo.ListAll(s.ctx, 3)

	s.NoError(err)
	s.Equal([]int64{1, 2, 3, 4}, quotationIDs(rows))
}

func (s *QuotationRepositoryTestSuite) TestAreaValues() {
	values, err := s.repo.AreaValues(s.ctx)

	s.NoError(err)
	s.Len(values, 4)

	nulls := 0
	for _, v := range values {
		if v == nil {
			nulls++
		}
	}
	s.Equal(1, nulls)
}

func (s *QuotationRepositoryTestSuite) TestMonthTotals() {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	count, sum, err := s.repo.MonthTotals(s.ctx, from, to)

	s.NoError(err)
	s.Equal(2, count)
	s.InDelta(34500.0, sum, 1e-9)
}

func (s *QuotationRepositoryTestSuite) TestMonthTotals_EmptyRange() {
	from := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	count, sum, err := s.repo.MonthTotals(s.ctx, from, from.AddDate(0, 1, 0))

	s.NoError(err)
	s.Zero(count)
	s.Zero(sum)
}

func (s *QuotationRepositoryTestSuite) TestLatest() {
	rows, err := s.repo.Latest(s.ctx, 2)

	s.NoError(err)
	s.Require().Len(rows, 2)
	s.Equal("Pedro Rojas", *rows[0].Name)
	s.Equal("Marta Quispe", *rows[1].Name)
}

func quotationIDs(rows []*domain.Quotation) []int64 {
	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids
}

func TestQuotationRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(QuotationRepositoryTestSuite))
}
