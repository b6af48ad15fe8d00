package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/brtdigital/remesa-backend/internal/apperrors"
	portssvc "github.com/brtdigital/remesa-backend/internal/core/ports/services"
	"github.com/brtdigital/remesa-backend/internal/core/services"
	"github.com/brtdigital/remesa-backend/internal/dto"
	"github.com/brtdigital/remesa-backend/internal/models"
)

// --- Mock BankAccountRepository ---
type MockBankAccountRepository struct {
	mock.Mock
}

func (m *MockBankAccountRepository) FindBankAccountByID(ctx context.Context, accountID string) (*models.BankAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) ListBankAccounts(ctx context.Context, userID string) ([]models.BankAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) SaveBankAccount(ctx context.Context, account models.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockBankAccountRepository) UpdateBankAccount(ctx context.Context, account models.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockBankAccountRepository) DeactivateBankAccount(ctx context.Context, accountID, updaterUserID string) error {
	args := m.Called(ctx, accountID, updaterUserID)
	return args.Error(0)
}

// --- Test Suite ---
type BankAccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockBankAccountRepository
	service  portssvc.BankAccountSvcFacade
}

func (suite *BankAccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockBankAccountRepository)
	suite.service = services.NewBankAccountService(suite.mockRepo)
}

func peruAccountRequest() dto.CreateBankAccountRequest {
	return dto.CreateBankAccountRequest{
		Country:              models.CountryPeru,
		BankName:             "BCP",
		HolderNames:          "Ana",
		HolderSurname:        "Quispe",
		DocumentNum:          "45678912",
		AccountType:          models.AccountPersonal,
		AccountNumber:        "19112345678901",
		ConfirmAccountNumber: "19112345678901",
		CurrencyCode:         "PEN",
	}
}

func brazilAccountRequest() dto.CreateBankAccountRequest {
	return dto.CreateBankAccountRequest{
		Country:       models.CountryBrazil,
		BankName:      "Nubank",
		HolderNames:   "João",
		HolderSurname: "Silva",
		AccountType:   models.AccountPersonal,
		PixKey:        "joao@example.com",
		ConfirmPixKey: "joao@example.com",
		PixKeyType:    "email",
		CPF:           "123.456.789-09",
		CurrencyCode:  "BRL",
	}
}

func (suite *BankAccountServiceTestSuite) TestCreatePeruAccount_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := peruAccountRequest()
	// Stray Brazil fields must not survive on a Peru account.
	req.PixKey = "stray@example.com"
	req.CPF = "123.456.789-09"

	suite.mockRepo.On("SaveBankAccount", ctx, mock.MatchedBy(func(a models.BankAccount) bool {
		return a.Country == models.CountryPeru &&
			a.AccountNumber == "19112345678901" &&
			a.PixKey == "" && a.CPF == "" &&
			a.UserID == userID && a.IsActive
	})).Return(nil).Once()

	account, err := suite.service.CreateBankAccount(ctx, userID, req, userID)

	suite.Require().NoError(err)
	suite.Empty(account.PixKey)
	suite.Empty(account.CPF)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BankAccountServiceTestSuite) TestCreatePeruAccount_MissingAccountNumber() {
	ctx := context.Background()
	req := peruAccountRequest()
	req.AccountNumber = ""
	req.ConfirmAccountNumber = ""

	_, err := suite.service.CreateBankAccount(ctx, uuid.NewString(), req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveBankAccount")
}

func (suite *BankAccountServiceTestSuite) TestCreatePeruAccount_ConfirmationMismatch() {
	ctx := context.Background()
	req := peruAccountRequest()
	req.ConfirmAccountNumber = "19100000000000"

	_, err := suite.service.CreateBankAccount(ctx, uuid.NewString(), req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BankAccountServiceTestSuite) TestCreatePeruAccount_CCIMismatch() {
	ctx := context.Background()
	req := peruAccountRequest()
	req.CCINumber = "00219112345678901234"
	req.ConfirmCCINumber = "00219199999999999999"

	_, err := suite.service.CreateBankAccount(ctx, uuid.NewString(), req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BankAccountServiceTestSuite) TestCreateBrazilAccount_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := brazilAccountRequest()
	// Peru-only fields are dropped on Brazil accounts.
	req.AccountNumber = "19112345678901"
	req.ConfirmAccountNumber = "19112345678901"

	suite.mockRepo.On("SaveBankAccount", ctx, mock.MatchedBy(func(a models.BankAccount) bool {
		return a.Country == models.CountryBrazil &&
			a.PixKey == "joao@example.com" && a.CPF == "123.456.789-09" &&
			a.AccountNumber == "" && a.CCINumber == ""
	})).Return(nil).Once()

	account, err := suite.service.CreateBankAccount(ctx, userID, req, userID)

	suite.Require().NoError(err)
	suite.Empty(account.AccountNumber)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BankAccountServiceTestSuite) TestCreateBrazilAccount_MissingCPF() {
	ctx := context.Background()
	req := brazilAccountRequest()
	req.CPF = ""

	_, err := suite.service.CreateBankAccount(ctx, uuid.NewString(), req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BankAccountServiceTestSuite) TestCreateBrazilAccount_PixMismatch() {
	ctx := context.Background()
	req := brazilAccountRequest()
	req.ConfirmPixKey = "other@example.com"

	_, err := suite.service.CreateBankAccount(ctx, uuid.NewString(), req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BankAccountServiceTestSuite) TestCreateAccount_UnsupportedCountry() {
	ctx := context.Background()
	req := peruAccountRequest()
	req.Country = "AR"

	_, err := suite.service.CreateBankAccount(ctx, uuid.NewString(), req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "AR")
}

func (suite *BankAccountServiceTestSuite) TestCreateBusinessAccount_RequiresBusinessName() {
	ctx := context.Background()
	req := peruAccountRequest()
	req.AccountType = models.AccountBusiness
	req.RUCNumber = "20123456789"

	_, err := suite.service.CreateBankAccount(ctx, uuid.NewString(), req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BankAccountServiceTestSuite) TestCreatePeruBusinessAccount_RequiresRUC() {
	ctx := context.Background()
	req := peruAccountRequest()
	req.AccountType = models.AccountBusiness
	req.BusinessName = "Importaciones Quispe SAC"

	_, err := suite.service.CreateBankAccount(ctx, uuid.NewString(), req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BankAccountServiceTestSuite) TestUpdateBankAccount_RevalidatesCountryFields() {
	ctx := context.Background()
	existing := &models.BankAccount{
		BankAccountID: "acc-1",
		Country:       models.CountryPeru,
		AccountType:   models.AccountPersonal,
		AccountNumber: "19112345678901",
		IsActive:      true,
	}
	newNumber := "19198765432109"
	staleConfirm := "19112345678901"

	suite.mockRepo.On("FindBankAccountByID", ctx, "acc-1").Return(existing, nil).Once()

	// Changing the number while confirming the old one must fail.
	_, err := suite.service.UpdateBankAccount(ctx, "acc-1", dto.UpdateBankAccountRequest{
		AccountNumber:        &newNumber,
		ConfirmAccountNumber: &staleConfirm,
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateBankAccount")
}

func (suite *BankAccountServiceTestSuite) TestDeactivate_AlreadyInactive() {
	ctx := context.Background()
	existing := &models.BankAccount{BankAccountID: "acc-1", Country: models.CountryPeru, IsActive: false}

	suite.mockRepo.On("FindBankAccountByID", ctx, "acc-1").Return(existing, nil).Once()

	err := suite.service.DeactivateBankAccount(ctx, "acc-1", uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeactivateBankAccount")
}

func (suite *BankAccountServiceTestSuite) TestDeactivate_Success() {
	ctx := context.Background()
	staffID := uuid.NewString()
	existing := &models.BankAccount{BankAccountID: "acc-1", Country: models.CountryPeru, IsActive: true}

	suite.mockRepo.On("FindBankAccountByID", ctx, "acc-1").Return(existing, nil).Once()
	suite.mockRepo.On("DeactivateBankAccount", ctx, "acc-1", staffID).Return(nil).Once()

	err := suite.service.DeactivateBankAccount(ctx, "acc-1", staffID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestBankAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BankAccountServiceTestSuite))
}
