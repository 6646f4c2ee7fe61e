package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/onboarding/internal/user/domain"
	"github.com/allisson/onboarding/internal/user/usecase"
	usecaseMocks "github.com/allisson/onboarding/internal/user/usecase/mocks"
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
	m.On("RecordOperation", ctx, "user", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "user", operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

func TestUserUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("RegisterUser success", func(t *testing.T) {
		mockNext := &usecaseMocks.MockUserUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewUserUseCaseWithMetrics(mockNext, mockMetrics)
		input := usecase.RegisterUserInput{Name: "John", Email: "john@example.com", Password: "SecurePass123!"}
		user := &domain.User{ID: uuid.Must(uuid.NewV7()), Email: "john@example.com"}

		mockNext.On("RegisterUser", ctx, input).Return(user, nil).Once()
		expectMetrics(ctx, mockMetrics, "user_register", "success")

		res, err := uc.RegisterUser(ctx, input)
		assert.NoError(t, err)
		assert.Equal(t, user, res)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("RegisterUser error", func(t *testing.T) {
		mockNext := &usecaseMocks.MockUserUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewUserUseCaseWithMetrics(mockNext, mockMetrics)
		input := usecase.RegisterUserInput{Email: "john@example.com"}

		mockNext.On("RegisterUser", ctx, input).Return(nil, domain.ErrUserAlreadyExists).Once()
		expectMetrics(ctx, mockMetrics, "user_register", "rejected")

		_, err := uc.RegisterUser(ctx, input)
		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("GetUserByEmail and GetUserByID", func(t *testing.T) {
		mockNext := &usecaseMocks.MockUserUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewUserUseCaseWithMetrics(mockNext, mockMetrics)
		id := uuid.Must(uuid.NewV7())

		mockNext.On("GetUserByEmail", ctx, "john@example.com").Return(nil, domain.ErrUserNotFound).Once()
		mockNext.On("GetUserByID", ctx, id).Return(&domain.User{ID: id}, nil).Once()
		expectMetrics(ctx, mockMetrics, "user_get", "rejected")
		expectMetrics(ctx, mockMetrics, "user_get", "success")

		_, err := uc.GetUserByEmail(ctx, "john@example.com")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)

		user, err := uc.GetUserByID(ctx, id)
		assert.NoError(t, err)
		assert.Equal(t, id, user.ID)
		mockMetrics.AssertExpectations(t)
	})
}
