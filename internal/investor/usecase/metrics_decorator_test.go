package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/onboarding/internal/investor/domain"
	"github.com/allisson/onboarding/internal/investor/usecase"
	usecaseMocks "github.com/allisson/onboarding/internal/investor/usecase/mocks"
)

type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func expectMetrics(ctx context.Context, m *mockBusinessMetrics, operation, status string) {
	m.On("RecordOperation", ctx, "investor", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "investor", operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

func TestInvestorUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())
	profileID := uuid.Must(uuid.NewV7())

	t.Run("SelectType success", func(t *testing.T) {
		mockNext := &usecaseMocks.MockInvestorUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewInvestorUseCaseWithMetrics(mockNext, mockMetrics)
		input := usecase.SelectTypeInput{Type: domain.InvestorTypeIRA, Detail: usecase.IRAInput{}}
		profile := &domain.Profile{ID: profileID, UserID: userID, Type: domain.InvestorTypeIRA}

		mockNext.On("SelectType", ctx, userID, input).Return(profile, nil).Once()
		expectMetrics(ctx, mockMetrics, "profile_select_type", "success")

		res, err := uc.SelectType(ctx, userID, input)
		assert.NoError(t, err)
		assert.Equal(t, profile, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("SelectType error", func(t *testing.T) {
		mockNext := &usecaseMocks.MockInvestorUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewInvestorUseCaseWithMetrics(mockNext, mockMetrics)
		input := usecase.SelectTypeInput{Type: domain.InvestorTypeIRA, Detail: usecase.IRAInput{}}

		mockNext.On("SelectType", ctx, userID, input).Return(nil, domain.ErrProfileAlreadyExists).Once()
		expectMetrics(ctx, mockMetrics, "profile_select_type", "rejected")

		res, err := uc.SelectType(ctx, userID, input)
		assert.ErrorIs(t, err, domain.ErrProfileAlreadyExists)
		assert.Nil(t, res)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("GetByUserID error", func(t *testing.T) {
		mockNext := &usecaseMocks.MockInvestorUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewInvestorUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("GetByUserID", ctx, userID).Return(nil, domain.ErrProfileNotFound).Once()
		expectMetrics(ctx, mockMetrics, "profile_get", "rejected")

		_, err := uc.GetByUserID(ctx, userID)
		assert.ErrorIs(t, err, domain.ErrProfileNotFound)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("UpdateAccreditation success", func(t *testing.T) {
		mockNext := &usecaseMocks.MockInvestorUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewInvestorUseCaseWithMetrics(mockNext, mockMetrics)
		income := domain.AccreditationIncome

		mockNext.On("UpdateAccreditation", ctx, profileID, true, &income).Return(nil).Once()
		expectMetrics(ctx, mockMetrics, "accreditation_update", "success")

		err := uc.UpdateAccreditation(ctx, profileID, true, &income)
		assert.NoError(t, err)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("RevealTaxID success", func(t *testing.T) {
		mockNext := &usecaseMocks.MockInvestorUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewInvestorUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("RevealTaxID", ctx, profileID, userID).Return("123-45-6789", nil).Once()
		expectMetrics(ctx, mockMetrics, "tax_id_reveal", "success")

		taxID, err := uc.RevealTaxID(ctx, profileID, userID)
		assert.NoError(t, err)
		assert.Equal(t, "123-45-6789", taxID)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Delete error", func(t *testing.T) {
		mockNext := &usecaseMocks.MockInvestorUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewInvestorUseCaseWithMetrics(mockNext, mockMetrics)
		dbErr := errors.New("delete failed")

		mockNext.On("Delete", ctx, profileID).Return(dbErr).Once()
		expectMetrics(ctx, mockMetrics, "profile_delete", "error")

		err := uc.Delete(ctx, profileID)
		assert.ErrorIs(t, err, dbErr)
		mockMetrics.AssertExpectations(t)
	})
}
