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

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindRateByPair(ctx context.Context, baseCode, targetCode string) (*models.ExchangeRate, error) {
	args := m.Called(ctx, baseCode, targetCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindExchangeRateByID(ctx context.Context, rateID string) (*models.ExchangeRate, error) {
	args := m.Called(ctx, rateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListExchangeRates(ctx context.Context) ([]models.ExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) UpsertExchangeRate(ctx context.Context, rate models.ExchangeRate) (*models.ExchangeRate, error) {
	args := m.Called(ctx, rate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) DeleteExchangeRate(ctx context.Context, rateID string) error {
	args := m.Called(ctx, rateID)
	return args.Error(0)
}

// --- Test Suite ---
type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRepo        *MockExchangeRateRepository
	mockCurrencySvc *MockCurrencyService
	service         portssvc.ExchangeRateSvcFacade
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockExchangeRateRepository)
	suite.mockCurrencySvc = new(MockCurrencyService)
	suite.service = services.NewExchangeRateService(suite.mockRepo, suite.mockCurrencySvc)
}

func (suite *ExchangeRateServiceTestSuite) expectCurrencyExists(code string) {
	suite.mockCurrencySvc.On("GetCurrencyByCode", mock.Anything, code).
		Return(&models.Currency{CurrencyCode: code, IsActive: true}, nil).Once()
}

func (suite *ExchangeRateServiceTestSuite) TestSetRate_Success() {
	ctx := context.Background()
	staffID := uuid.NewString()
	req := dto.UpsertExchangeRateRequest{
		BaseCurrencyCode:   "USD",
		TargetCurrencyCode: "PEN",
		Rate:               decimal.NewFromFloat(3.70),
	}

	suite.expectCurrencyExists("USD")
	suite.expectCurrencyExists("PEN")
	suite.mockRepo.On("UpsertExchangeRate", ctx, mock.MatchedBy(func(r models.ExchangeRate) bool {
		return r.BaseCurrencyCode == "USD" && r.TargetCurrencyCode == "PEN" &&
			r.Rate.Equal(decimal.NewFromFloat(3.70)) && r.CreatedBy == staffID
	})).Return(&models.ExchangeRate{
		ExchangeRateID:     uuid.NewString(),
		BaseCurrencyCode:   "USD",
		TargetCurrencyCode: "PEN",
		Rate:               decimal.NewFromFloat(3.70),
	}, nil).Once()

	rate, err := suite.service.SetRate(ctx, req, staffID)

	suite.Require().NoError(err)
	suite.Equal("USD", rate.BaseCurrencyCode)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockCurrencySvc.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestSetRate_RejectsNonPositiveRate() {
	ctx := context.Background()
	req := dto.UpsertExchangeRateRequest{
		BaseCurrencyCode:   "USD",
		TargetCurrencyCode: "PEN",
		Rate:               decimal.Zero,
	}

	_, err := suite.service.SetRate(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertExchangeRate")
}

func (suite *ExchangeRateServiceTestSuite) TestSetRate_RejectsSamePair() {
	ctx := context.Background()
	req := dto.UpsertExchangeRateRequest{
		BaseCurrencyCode:   "USD",
		TargetCurrencyCode: "USD",
		Rate:               decimal.NewFromInt(1),
	}

	_, err := suite.service.SetRate(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCurrencySvc.AssertNotCalled(suite.T(), "GetCurrencyByCode")
}

func (suite *ExchangeRateServiceTestSuite) TestSetRate_UnknownCurrency() {
	ctx := context.Background()
	req := dto.UpsertExchangeRateRequest{
		BaseCurrencyCode:   "USD",
		TargetCurrencyCode: "XYZ",
		Rate:               decimal.NewFromFloat(3.70),
	}

	suite.expectCurrencyExists("USD")
	suite.mockCurrencySvc.On("GetCurrencyByCode", mock.Anything, "XYZ").
		Return(nil, apperrors.NewNotFoundError("currency not found")).Once()

	_, err := suite.service.SetRate(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "XYZ")
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertExchangeRate")
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_IsDirectional() {
	ctx := context.Background()

	// USD->PEN is stored; the mirrored query must not fall back to it.
	suite.mockRepo.On("FindRateByPair", ctx, "PEN", "USD").
		Return(nil, apperrors.NewNotFoundError("exchange rate not found")).Once()

	_, err := suite.service.GetRate(ctx, "PEN", "USD")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "FindRateByPair", 1)
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRateByPair_UppercasesCodes() {
	ctx := context.Background()
	stored := &models.ExchangeRate{
		ExchangeRateID:     uuid.NewString(),
		BaseCurrencyCode:   "USD",
		TargetCurrencyCode: "PEN",
		Rate:               decimal.NewFromFloat(3.70),
	}

	suite.mockRepo.On("FindRateByPair", ctx, "USD", "PEN").Return(stored, nil).Once()

	rate, err := suite.service.GetExchangeRateByPair(ctx, "usd", "pen")

	suite.Require().NoError(err)
	suite.Equal(stored.ExchangeRateID, rate.ExchangeRateID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRateByPair_RejectsBadCodes() {
	ctx := context.Background()

	_, err := suite.service.GetExchangeRateByPair(ctx, "US", "PEN")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindRateByPair")
}

func (suite *ExchangeRateServiceTestSuite) TestUpdateExchangeRate_LoadsThenUpserts() {
	ctx := context.Background()
	staffID := uuid.NewString()
	existing := &models.ExchangeRate{
		ExchangeRateID:     "rate-1",
		BaseCurrencyCode:   "USD",
		TargetCurrencyCode: "PEN",
		Rate:               decimal.NewFromFloat(3.70),
	}

	suite.mockRepo.On("FindExchangeRateByID", ctx, "rate-1").Return(existing, nil).Once()
	suite.mockRepo.On("UpsertExchangeRate", ctx, mock.MatchedBy(func(r models.ExchangeRate) bool {
		return r.ExchangeRateID == "rate-1" && r.Rate.Equal(decimal.NewFromFloat(3.75)) &&
			r.LastUpdatedBy == staffID
	})).Return(existing, nil).Once()

	_, err := suite.service.UpdateExchangeRate(ctx, "rate-1", dto.UpdateExchangeRateRequest{
		Rate: decimal.NewFromFloat(3.75),
	}, staffID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
