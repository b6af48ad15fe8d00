package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	CurrencyRepo     CurrencyRepositoryFacade
	ExchangeRateRepo ExchangeRateRepositoryFacade
	RangeRepo        RangeRepositoryFacade
	CommissionRepo   CommissionRepositoryFacade
	CouponRepo       CouponRepositoryFacade
	BankAccountRepo  BankAccountRepositoryFacade
	TransactionRepo  TransactionRepositoryFacade
	UserRepo         UserRepositoryFacade
}
