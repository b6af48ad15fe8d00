package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/brtdigital/remesa-backend/internal/apperrors"
	portsrepo "github.com/brtdigital/remesa-backend/internal/core/ports/repositories"
	portssvc "github.com/brtdigital/remesa-backend/internal/core/ports/services"
	"github.com/brtdigital/remesa-backend/internal/core/services"
	"github.com/brtdigital/remesa-backend/internal/dto"
	"github.com/brtdigital/remesa-backend/internal/models"
)

// --- Mock CouponRepository ---
type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) FindCouponByID(ctx context.Context, couponID string, couponType models.CouponType) (*models.Coupon, error) {
	args := m.Called(ctx, couponID, couponType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Coupon), args.Error(1)
}

func (m *MockCouponRepository) FindCouponByCode(ctx context.Context, code string, couponType models.CouponType) (*models.Coupon, error) {
	args := m.Called(ctx, code, couponType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Coupon), args.Error(1)
}

func (m *MockCouponRepository) ListCoupons(ctx context.Context, filter portsrepo.CouponFilter) ([]models.Coupon, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Coupon), args.Error(1)
}

func (m *MockCouponRepository) FindAutomaticByPair(ctx context.Context, sourceCode, targetCode string) ([]models.Coupon, error) {
	args := m.Called(ctx, sourceCode, targetCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Coupon), args.Error(1)
}

func (m *MockCouponRepository) SaveCoupon(ctx context.Context, coupon models.Coupon) error {
	args := m.Called(ctx, coupon)
	return args.Error(0)
}

func (m *MockCouponRepository) UpdateCoupon(ctx context.Context, coupon models.Coupon) error {
	args := m.Called(ctx, coupon)
	return args.Error(0)
}

func (m *MockCouponRepository) DeleteCoupon(ctx context.Context, couponID string) error {
	args := m.Called(ctx, couponID)
	return args.Error(0)
}

func (m *MockCouponRepository) RecordUse(ctx context.Context, couponID string) error {
	args := m.Called(ctx, couponID)
	return args.Error(0)
}

// --- Test Suite ---
type CouponServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCouponRepository
	service  portssvc.CouponSvcFacade
}

func (suite *CouponServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCouponRepository)
	suite.service = services.NewCouponService(suite.mockRepo)
}

func testCoupon(code string, couponType models.CouponType) models.Coupon {
	return models.Coupon{
		CouponID:           uuid.NewString(),
		Code:               code,
		DiscountPercentage: decimal.NewFromInt(10),
		StartDate:          time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:            time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		SourceCurrencyCode: "USD",
		TargetCurrencyCode: "PEN",
		MinimumAmount:      decimal.NewFromInt(100),
		Type:               couponType,
		IsActive:           true,
	}
}

func (suite *CouponServiceTestSuite) TestCreateCoupon_ManualRequiresCode() {
	ctx := context.Background()
	req := dto.CreateCouponRequest{
		DiscountPercentage: decimal.NewFromInt(10),
		StartDate:          time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:            time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		SourceCurrencyCode: "USD",
		TargetCurrencyCode: "PEN",
	}

	_, err := suite.service.CreateCoupon(ctx, req, models.CouponManual, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCoupon")
}

func (suite *CouponServiceTestSuite) TestCreateCoupon_ManualNormalizesCode() {
	ctx := context.Background()
	req := dto.CreateCouponRequest{
		Code:               "  welcome10 ",
		DiscountPercentage: decimal.NewFromInt(10),
		StartDate:          time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:            time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		SourceCurrencyCode: "USD",
		TargetCurrencyCode: "PEN",
	}

	suite.mockRepo.On("SaveCoupon", ctx, mock.MatchedBy(func(c models.Coupon) bool {
		return c.Code == "WELCOME10" && c.Type == models.CouponManual && c.IsActive
	})).Return(nil).Once()

	coupon, err := suite.service.CreateCoupon(ctx, req, models.CouponManual, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal("WELCOME10", coupon.Code)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CouponServiceTestSuite) TestCreateCoupon_AutomaticDiscardsCode() {
	ctx := context.Background()
	req := dto.CreateCouponRequest{
		Code:               "IGNORED",
		DiscountPercentage: decimal.NewFromInt(5),
		StartDate:          time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:            time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		SourceCurrencyCode: "USD",
		TargetCurrencyCode: "PEN",
	}

	suite.mockRepo.On("SaveCoupon", ctx, mock.MatchedBy(func(c models.Coupon) bool {
		return c.Code == "" && c.Type == models.CouponAutomatic
	})).Return(nil).Once()

	coupon, err := suite.service.CreateCoupon(ctx, req, models.CouponAutomatic, uuid.NewString())

	suite.Require().NoError(err)
	suite.Empty(coupon.Code)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CouponServiceTestSuite) TestCreateCoupon_EndBeforeStart() {
	ctx := context.Background()
	req := dto.CreateCouponRequest{
		Code:               "BAD",
		DiscountPercentage: decimal.NewFromInt(10),
		StartDate:          time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		EndDate:            time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		SourceCurrencyCode: "USD",
		TargetCurrencyCode: "PEN",
	}

	_, err := suite.service.CreateCoupon(ctx, req, models.CouponManual, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CouponServiceTestSuite) TestFindApplicable_ManualSuccess() {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	coupon := testCoupon("WELCOME10", models.CouponManual)

	suite.mockRepo.On("FindCouponByCode", ctx, "WELCOME10", models.CouponManual).Return(&coupon, nil).Once()

	found, err := suite.service.FindApplicable(ctx, "welcome10", "USD", "PEN", decimal.NewFromInt(500), now)

	suite.Require().NoError(err)
	suite.Require().NotNil(found)
	suite.Equal(coupon.CouponID, found.CouponID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CouponServiceTestSuite) TestFindApplicable_ManualUnknownCode() {
	ctx := context.Background()
	now := time.Now()

	suite.mockRepo.On("FindCouponByCode", ctx, "NOPE", models.CouponManual).
		Return(nil, apperrors.NewNotFoundError("coupon not found")).Once()

	_, err := suite.service.FindApplicable(ctx, "NOPE", "USD", "PEN", decimal.NewFromInt(500), now)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CouponServiceTestSuite) TestFindApplicable_ManualNotApplicable() {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	coupon := testCoupon("WELCOME10", models.CouponManual)

	suite.mockRepo.On("FindCouponByCode", ctx, "WELCOME10", models.CouponManual).Return(&coupon, nil).Once()

	// Below the coupon's minimum amount.
	_, err := suite.service.FindApplicable(ctx, "WELCOME10", "USD", "PEN", decimal.NewFromInt(50), now)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnprocessable)
}

func (suite *CouponServiceTestSuite) TestFindApplicable_AutomaticFirstMatch() {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	expired := testCoupon("", models.CouponAutomatic)
	expired.EndDate = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	valid := testCoupon("", models.CouponAutomatic)

	suite.mockRepo.On("FindAutomaticByPair", ctx, "USD", "PEN").
		Return([]models.Coupon{expired, valid}, nil).Once()

	found, err := suite.service.FindApplicable(ctx, "", "USD", "PEN", decimal.NewFromInt(500), now)

	suite.Require().NoError(err)
	suite.Require().NotNil(found)
	suite.Equal(valid.CouponID, found.CouponID)
}

func (suite *CouponServiceTestSuite) TestFindApplicable_AutomaticNoMatchIsQuiet() {
	ctx := context.Background()

	suite.mockRepo.On("FindAutomaticByPair", ctx, "USD", "PEN").
		Return([]models.Coupon{}, nil).Once()

	found, err := suite.service.FindApplicable(ctx, "", "USD", "PEN", decimal.NewFromInt(500), time.Now())

	suite.Require().NoError(err)
	suite.Nil(found)
}

func (suite *CouponServiceTestSuite) TestRecordUse_ConflictPassesThrough() {
	ctx := context.Background()
	couponID := uuid.NewString()

	suite.mockRepo.On("RecordUse", ctx, couponID).
		Return(apperrors.NewConflictError("cupón agotado")).Once()

	err := suite.service.RecordUse(ctx, couponID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *CouponServiceTestSuite) TestDeleteCoupon_TypeScoped() {
	ctx := context.Background()
	couponID := uuid.NewString()

	// The manual delete path cannot find the automatic coupon, so nothing
	// gets deleted.
	suite.mockRepo.On("FindCouponByID", ctx, couponID, models.CouponManual).
		Return(nil, apperrors.NewNotFoundError("coupon not found")).Once()

	err := suite.service.DeleteCoupon(ctx, couponID, models.CouponManual)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteCoupon")
}

func TestCouponServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CouponServiceTestSuite))
}
