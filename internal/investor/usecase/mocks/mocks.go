// Package mocks provides mock implementations of the investor use case for testing.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/onboarding/internal/investor/domain"
	investorUseCase "github.com/allisson/onboarding/internal/investor/usecase"
)

// MockInvestorUseCase is a mock implementation of InvestorUseCase.
type MockInvestorUseCase struct {
	mock.Mock
}

func (m *MockInvestorUseCase) SelectType(
	ctx context.Context,
	userID uuid.UUID,
	input investorUseCase.SelectTypeInput,
) (*domain.Profile, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockInvestorUseCase) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockInvestorUseCase) UpdateAccreditation(
	ctx context.Context,
	profileID uuid.UUID,
	isAccredited bool,
	accreditationType *domain.AccreditationType,
) error {
	args := m.Called(ctx, profileID, isAccredited, accreditationType)
	return args.Error(0)
}

func (m *MockInvestorUseCase) RevealTaxID(ctx context.Context, profileID, actorID uuid.UUID) (string, error) {
	args := m.Called(ctx, profileID, actorID)
	return args.String(0), args.Error(1)
}

func (m *MockInvestorUseCase) Delete(ctx context.Context, profileID uuid.UUID) error {
	args := m.Called(ctx, profileID)
	return args.Error(0)
}

var _ investorUseCase.InvestorUseCase = (*MockInvestorUseCase)(nil)
