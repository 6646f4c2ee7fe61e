package app

import (
	"fmt"

	investorHTTP "github.com/allisson/onboarding/internal/investor/http"
	investorRepository "github.com/allisson/onboarding/internal/investor/repository"
	investorUseCase "github.com/allisson/onboarding/internal/investor/usecase"
)

// ProfileRepository returns the investor profile repository.
func (c *Container) ProfileRepository() (investorUseCase.ProfileRepository, error) {
	var err error
	c.profileRepositoryInit.Do(func() {
		c.profileRepository, err = c.initProfileRepository()
		if err != nil {
			c.initErrors["profileRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["profileRepository"]; exists {
		return nil, storedErr
	}
	return c.profileRepository, nil
}

// InvestorUseCase returns the investor use case.
func (c *Container) InvestorUseCase() (investorUseCase.InvestorUseCase, error) {
	var err error
	c.investorUseCaseInit.Do(func() {
		c.investorUseCase, err = c.initInvestorUseCase()
		if err != nil {
			c.initErrors["investorUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["investorUseCase"]; exists {
		return nil, storedErr
	}
	return c.investorUseCase, nil
}

// InvestorHandler returns the HTTP handler for investor profiles.
func (c *Container) InvestorHandler() (*investorHTTP.InvestorHandler, error) {
	var err error
	c.investorHandlerInit.Do(func() {
		c.investorHandler, err = c.initInvestorHandler()
		if err != nil {
			c.initErrors["investorHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["investorHandler"]; exists {
		return nil, storedErr
	}
	return c.investorHandler, nil
}

// initProfileRepository creates the dialect-neutral profile repository.
func (c *Container) initProfileRepository() (investorUseCase.ProfileRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for profile repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres", "mysql":
		return investorRepository.NewSQLProfileRepository(db, c.config.DBDriver), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initInvestorUseCase creates the investor use case with all its dependencies.
func (c *Container) initInvestorUseCase() (investorUseCase.InvestorUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for investor use case: %w", err)
	}

	profileRepository, err := c.ProfileRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get profile repository for investor use case: %w", err)
	}

	fieldCipher, err := c.FieldCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get field cipher for investor use case: %w", err)
	}

	auditLogUseCase, err := c.AuditLogUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log use case for investor use case: %w", err)
	}

	baseUseCase := investorUseCase.NewInvestorUseCase(
		txManager,
		profileRepository,
		fieldCipher,
		auditLogUseCase,
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for investor use case: %w", err)
		}
		return investorUseCase.NewInvestorUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initInvestorHandler creates the investor HTTP handler with all its dependencies.
func (c *Container) initInvestorHandler() (*investorHTTP.InvestorHandler, error) {
	useCase, err := c.InvestorUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get investor use case for investor handler: %w", err)
	}
	return investorHTTP.NewInvestorHandler(useCase, c.Logger()), nil
}
