package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/brtdigital/remesa-backend/internal/apperrors"
	portssvc "github.com/brtdigital/remesa-backend/internal/core/ports/services"
	"github.com/brtdigital/remesa-backend/internal/core/services"
	"github.com/brtdigital/remesa-backend/internal/dto"
	"github.com/brtdigital/remesa-backend/internal/models"
)

// --- Mock CommissionRepository ---
type MockCommissionRepository struct {
	mock.Mock
}

func (m *MockCommissionRepository) FindCommissionByID(ctx context.Context, commissionID string) (*models.Commission, error) {
	args := m.Called(ctx, commissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Commission), args.Error(1)
}

func (m *MockCommissionRepository) FindCommissionByPairAndRange(ctx context.Context, baseCode, targetCode string, minAmount, maxAmount decimal.Decimal) (*models.Commission, error) {
	args := m.Called(ctx, baseCode, targetCode, minAmount, maxAmount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Commission), args.Error(1)
}

func (m *MockCommissionRepository) ResolveForAmount(ctx context.Context, baseCode, targetCode string, amount decimal.Decimal) (*models.Commission, error) {
	args := m.Called(ctx, baseCode, targetCode, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Commission), args.Error(1)
}

func (m *MockCommissionRepository) ListCommissions(ctx context.Context) ([]models.Commission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Commission), args.Error(1)
}

func (m *MockCommissionRepository) ListOverlapping(ctx context.Context, baseCode, targetCode string, minAmount, maxAmount decimal.Decimal, excludeID string) ([]models.Commission, error) {
	args := m.Called(ctx, baseCode, targetCode, minAmount, maxAmount, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Commission), args.Error(1)
}

func (m *MockCommissionRepository) SaveCommission(ctx context.Context, c models.Commission) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCommissionRepository) UpdateCommission(ctx context.Context, c models.Commission) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCommissionRepository) DeleteCommission(ctx context.Context, commissionID string) error {
	args := m.Called(ctx, commissionID)
	return args.Error(0)
}

// --- Mock RangeRepository ---
type MockRangeRepository struct {
	mock.Mock
}

func (m *MockRangeRepository) FindRangeByID(ctx context.Context, rangeID string) (*models.AmountRange, error) {
	args := m.Called(ctx, rangeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AmountRange), args.Error(1)
}

func (m *MockRangeRepository) ListRanges(ctx context.Context) ([]models.AmountRange, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AmountRange), args.Error(1)
}

func (m *MockRangeRepository) SaveRange(ctx context.Context, r models.AmountRange) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRangeRepository) UpdateRange(ctx context.Context, r models.AmountRange) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRangeRepository) DeleteRange(ctx context.Context, rangeID string) error {
	args := m.Called(ctx, rangeID)
	return args.Error(0)
}

// --- Test Suite ---
type CommissionServiceTestSuite struct {
	suite.Suite
	mockRepo      *MockCommissionRepository
	mockRangeRepo *MockRangeRepository
	service       portssvc.CommissionSvcFacade
}

func (suite *CommissionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCommissionRepository)
	suite.mockRangeRepo = new(MockRangeRepository)
	suite.service = services.NewCommissionService(suite.mockRepo, suite.mockRangeRepo)
}

func commissionRow(base, target string, minAmount, maxAmount, pct, reverse string) models.Commission {
	return models.Commission{
		CommissionID:       uuid.NewString(),
		BaseCurrencyCode:   base,
		TargetCurrencyCode: target,
		RangeID:            uuid.NewString(),
		Range: models.AmountRange{
			RangeID:   uuid.NewString(),
			MinAmount: decimal.RequireFromString(minAmount),
			MaxAmount: decimal.RequireFromString(maxAmount),
		},
		CommissionPercentage: decimal.RequireFromString(pct),
		ReverseCommission:    decimal.RequireFromString(reverse),
	}
}

func (suite *CommissionServiceTestSuite) TestResolveCommission_Success() {
	ctx := context.Background()
	amount := decimal.NewFromInt(500)
	row := commissionRow("USD", "PEN", "0", "1000", "2.5", "2.0")
	row.RangeID = "range-1"

	suite.mockRepo.On("ResolveForAmount", ctx, "USD", "PEN", amount).Return(&row, nil).Once()

	resolved, err := suite.service.ResolveCommission(ctx, "USD", "PEN", amount)

	suite.Require().NoError(err)
	suite.True(resolved.Percentage.Equal(decimal.RequireFromString("2.5")))
	suite.Equal("range-1", resolved.RangeID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CommissionServiceTestSuite) TestResolveTieBreakDelegatedPerAmount() {
	// The repository resolves the narrowest tier (then the lowest minimum):
	// the service must hand the amount through untouched so that ordering
	// can happen where the tiers live.
	ctx := context.Background()
	amount := decimal.RequireFromString("500")
	narrow := commissionRow("USD", "PEN", "400", "600", "2.5", "2.0")

	suite.mockRepo.On("ResolveForAmount", ctx, "USD", "PEN", amount).Return(&narrow, nil).Once()

	resolved, err := suite.service.ResolveCommission(ctx, "USD", "PEN", amount)

	suite.Require().NoError(err)
	suite.True(resolved.Percentage.Equal(decimal.RequireFromString("2.5")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CommissionServiceTestSuite) TestResolveCommission_NonPositiveAmount() {
	ctx := context.Background()

	_, err := suite.service.ResolveCommission(ctx, "USD", "PEN", decimal.Zero)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ResolveForAmount")
}

func (suite *CommissionServiceTestSuite) TestResolveCommission_UnknownPair() {
	ctx := context.Background()
	amount := decimal.NewFromInt(100)

	suite.mockRepo.On("ResolveForAmount", ctx, "USD", "BRL", amount).
		Return(nil, apperrors.NewNotFoundError("no commission schedule for USD-BRL")).Once()

	_, err := suite.service.ResolveCommission(ctx, "USD", "BRL", amount)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CommissionServiceTestSuite) TestResolveCommission_UncoveredAmount() {
	ctx := context.Background()
	amount := decimal.NewFromInt(99999)

	suite.mockRepo.On("ResolveForAmount", ctx, "USD", "PEN", amount).
		Return(nil, apperrors.NewUnprocessableError("no commission tier covers amount")).Once()

	_, err := suite.service.ResolveCommission(ctx, "USD", "PEN", amount)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnprocessable)
}

func (suite *CommissionServiceTestSuite) TestResolveReverseCommission_UsesMirroredPair() {
	// Asking for PEN->USD reads the row stored under USD-PEN and returns its
	// reverse percentage.
	ctx := context.Background()
	amount := decimal.NewFromInt(500)
	row := commissionRow("USD", "PEN", "0", "1000", "2.5", "2.0")

	suite.mockRepo.On("ResolveForAmount", ctx, "USD", "PEN", amount).Return(&row, nil).Once()

	resolved, err := suite.service.ResolveReverseCommission(ctx, "PEN", "USD", amount)

	suite.Require().NoError(err)
	suite.True(resolved.Percentage.Equal(decimal.RequireFromString("2.0")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CommissionServiceTestSuite) TestCreateCommission_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	r := models.AmountRange{
		RangeID:   "range-1",
		MinAmount: decimal.NewFromInt(0),
		MaxAmount: decimal.NewFromInt(1000),
	}
	req := dto.CreateCommissionRequest{
		BaseCurrencyCode:     "USD",
		TargetCurrencyCode:   "PEN",
		RangeID:              "range-1",
		CommissionPercentage: decimal.RequireFromString("2.5"),
		ReverseCommission:    decimal.RequireFromString("2.0"),
	}

	suite.mockRangeRepo.On("FindRangeByID", ctx, "range-1").Return(&r, nil).Once()
	suite.mockRepo.On("ListOverlapping", ctx, "USD", "PEN", r.MinAmount, r.MaxAmount, "").
		Return([]models.Commission{}, nil).Once()
	suite.mockRepo.On("SaveCommission", ctx, mock.MatchedBy(func(c models.Commission) bool {
		return c.BaseCurrencyCode == "USD" && c.TargetCurrencyCode == "PEN" &&
			c.RangeID == "range-1" && c.CreatedBy == creatorUserID
	})).Return(nil).Once()

	c, err := suite.service.CreateCommission(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(c)
	suite.Equal("range-1", c.RangeID)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRangeRepo.AssertExpectations(suite.T())
}

func (suite *CommissionServiceTestSuite) TestCreateCommission_OverlapConflict() {
	ctx := context.Background()
	r := models.AmountRange{
		RangeID:   "range-2",
		MinAmount: decimal.NewFromInt(500),
		MaxAmount: decimal.NewFromInt(1500),
	}
	existing := commissionRow("USD", "PEN", "0", "1000", "2.5", "2.0")
	req := dto.CreateCommissionRequest{
		BaseCurrencyCode:     "USD",
		TargetCurrencyCode:   "PEN",
		RangeID:              "range-2",
		CommissionPercentage: decimal.RequireFromString("1.5"),
		ReverseCommission:    decimal.RequireFromString("1.0"),
	}

	suite.mockRangeRepo.On("FindRangeByID", ctx, "range-2").Return(&r, nil).Once()
	suite.mockRepo.On("ListOverlapping", ctx, "USD", "PEN", r.MinAmount, r.MaxAmount, "").
		Return([]models.Commission{existing}, nil).Once()

	_, err := suite.service.CreateCommission(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Contains(err.Error(), "USD-PEN")
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCommission")
}

func (suite *CommissionServiceTestSuite) TestCreateCommission_SamePair() {
	ctx := context.Background()
	req := dto.CreateCommissionRequest{
		BaseCurrencyCode:     "USD",
		TargetCurrencyCode:   "USD",
		RangeID:              "range-1",
		CommissionPercentage: decimal.NewFromInt(2),
		ReverseCommission:    decimal.NewFromInt(2),
	}

	_, err := suite.service.CreateCommission(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CommissionServiceTestSuite) TestCreateCommission_PercentageOutOfBounds() {
	ctx := context.Background()
	req := dto.CreateCommissionRequest{
		BaseCurrencyCode:     "USD",
		TargetCurrencyCode:   "PEN",
		RangeID:              "range-1",
		CommissionPercentage: decimal.NewFromInt(101),
		ReverseCommission:    decimal.NewFromInt(2),
	}

	_, err := suite.service.CreateCommission(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CommissionServiceTestSuite) TestListGroupedByPair() {
	ctx := context.Background()
	rows := []models.Commission{
		commissionRow("USD", "PEN", "0", "500", "2.5", "2.0"),
		commissionRow("USD", "PEN", "501", "5000", "2.0", "1.5"),
		commissionRow("USD", "BRL", "0", "1000", "3.0", "2.5"),
	}

	suite.mockRepo.On("ListCommissions", ctx).Return(rows, nil).Once()

	grouped, err := suite.service.ListGroupedByPair(ctx)

	suite.Require().NoError(err)
	suite.Len(grouped, 2)
	suite.Len(grouped["USD-PEN"], 2)
	suite.True(grouped["USD-PEN"][0].Rate.Equal(decimal.RequireFromString("2.5")))
	suite.True(grouped["USD-PEN"][1].Rate.Equal(decimal.RequireFromString("2.0")))
	suite.Len(grouped["USD-BRL"], 1)
}

func (suite *CommissionServiceTestSuite) TestListReverseGroupedByPair_MirrorsKeys() {
	ctx := context.Background()
	rows := []models.Commission{
		commissionRow("USD", "PEN", "0", "500", "2.5", "2.0"),
	}

	suite.mockRepo.On("ListCommissions", ctx).Return(rows, nil).Once()

	grouped, err := suite.service.ListReverseGroupedByPair(ctx)

	suite.Require().NoError(err)
	suite.Len(grouped["PEN-USD"], 1)
	suite.Empty(grouped["USD-PEN"])
	suite.True(grouped["PEN-USD"][0].Rate.Equal(decimal.RequireFromString("2.0")))
}

func (suite *CommissionServiceTestSuite) TestListRangeSummary() {
	ctx := context.Background()
	rows := []models.Commission{
		commissionRow("USD", "PEN", "0", "500", "2.5", "2.0"),
		commissionRow("USD", "PEN", "501", "5000", "2.0", "1.5"),
		commissionRow("USD", "BRL", "0", "1000", "3.0", "2.5"),
	}

	suite.mockRepo.On("ListCommissions", ctx).Return(rows, nil).Once()

	summaries, err := suite.service.ListRangeSummary(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(summaries, 2)

	suite.Equal("USD", summaries[0].BaseCurrencyCode)
	suite.Equal("PEN", summaries[0].TargetCurrencyCode)
	suite.True(summaries[0].LowestRange.Min.Equal(decimal.Zero))
	suite.True(summaries[0].HighestRange.Max.Equal(decimal.NewFromInt(5000)))

	// A pair with a single tier reports it as both lowest and highest.
	suite.Equal("BRL", summaries[1].TargetCurrencyCode)
	suite.True(summaries[1].LowestRange.Max.Equal(summaries[1].HighestRange.Max))
}

func TestCommissionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CommissionServiceTestSuite))
}
