package services

import (
	portsrepo "github.com/brtdigital/remesa-backend/internal/core/ports/repositories"
	portssvc "github.com/brtdigital/remesa-backend/internal/core/ports/services"
	"github.com/brtdigital/remesa-backend/pkg/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, notifier portssvc.Notifier) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, container.Currency)
	container.Range = NewRangeService(repos.RangeRepo)
	container.Commission = NewCommissionService(repos.CommissionRepo, repos.RangeRepo)
	container.Coupon = NewCouponService(repos.CouponRepo)
	container.BankAccount = NewBankAccountService(repos.BankAccountRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Auth = NewAuthService(cfg, repos.UserRepo)

	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		container.Currency,
		container.ExchangeRate,
		container.Commission,
		container.Coupon,
		container.BankAccount,
		container.User,
		notifier,
	)

	return container
}
