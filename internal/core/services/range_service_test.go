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

type RangeServiceTestSuite struct {
	suite.Suite
	mockRepo *MockRangeRepository
	service  portssvc.RangeSvcFacade
}

func (suite *RangeServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockRangeRepository)
	suite.service = services.NewRangeService(suite.mockRepo)
}

func (suite *RangeServiceTestSuite) TestCreateRange_Success() {
	ctx := context.Background()
	staffID := uuid.NewString()
	req := dto.CreateRangeRequest{
		MinAmount: decimal.NewFromInt(100),
		MaxAmount: decimal.NewFromFloat(500.50),
	}

	suite.mockRepo.On("SaveRange", ctx, mock.MatchedBy(func(r models.AmountRange) bool {
		return r.MinAmount.Equal(decimal.NewFromInt(100)) &&
			r.MaxAmount.Equal(decimal.NewFromFloat(500.50)) &&
			r.CreatedBy == staffID
	})).Return(nil).Once()

	r, err := suite.service.CreateRange(ctx, req, staffID)

	suite.Require().NoError(err)
	suite.NotEmpty(r.RangeID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RangeServiceTestSuite) TestCreateRange_RejectsBadBounds() {
	ctx := context.Background()

	cases := []struct {
		name     string
		min, max decimal.Decimal
	}{
		{"negative min", decimal.NewFromInt(-1), decimal.NewFromInt(100)},
		{"max equals min", decimal.NewFromInt(100), decimal.NewFromInt(100)},
		{"max below min", decimal.NewFromInt(500), decimal.NewFromInt(100)},
	}

	for _, tc := range cases {
		_, err := suite.service.CreateRange(ctx, dto.CreateRangeRequest{MinAmount: tc.min, MaxAmount: tc.max}, uuid.NewString())

		suite.Require().Error(err, tc.name)
		suite.ErrorIs(err, apperrors.ErrValidation, tc.name)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveRange")
}

func (suite *RangeServiceTestSuite) TestCreateRange_DuplicateBounds() {
	ctx := context.Background()
	req := dto.CreateRangeRequest{
		MinAmount: decimal.NewFromInt(100),
		MaxAmount: decimal.NewFromInt(500),
	}

	suite.mockRepo.On("SaveRange", ctx, mock.Anything).
		Return(apperrors.NewDuplicateError("range 100-500 already exists")).Once()

	_, err := suite.service.CreateRange(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *RangeServiceTestSuite) TestUpdateRange_LoadsThenWrites() {
	ctx := context.Background()
	staffID := uuid.NewString()
	existing := &models.AmountRange{
		RangeID:   "range-1",
		MinAmount: decimal.NewFromInt(100),
		MaxAmount: decimal.NewFromInt(500),
	}

	suite.mockRepo.On("FindRangeByID", ctx, "range-1").Return(existing, nil).Once()
	suite.mockRepo.On("UpdateRange", ctx, mock.MatchedBy(func(r models.AmountRange) bool {
		return r.RangeID == "range-1" &&
			r.MaxAmount.Equal(decimal.NewFromInt(1000)) &&
			r.LastUpdatedBy == staffID
	})).Return(nil).Once()

	r, err := suite.service.UpdateRange(ctx, "range-1", dto.CreateRangeRequest{
		MinAmount: decimal.NewFromInt(100),
		MaxAmount: decimal.NewFromInt(1000),
	}, staffID)

	suite.Require().NoError(err)
	suite.True(r.MaxAmount.Equal(decimal.NewFromInt(1000)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RangeServiceTestSuite) TestListRanges_EmptyIsNotNil() {
	ctx := context.Background()

	suite.mockRepo.On("ListRanges", ctx).Return(nil, nil).Once()

	ranges, err := suite.service.ListRanges(ctx)

	suite.Require().NoError(err)
	suite.NotNil(ranges)
	suite.Empty(ranges)
}

func TestRangeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RangeServiceTestSuite))
}
