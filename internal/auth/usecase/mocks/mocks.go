// Package mocks provides mock implementations of the auth use cases for testing.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/onboarding/internal/auth/domain"
	authUseCase "github.com/allisson/onboarding/internal/auth/usecase"
)

// MockCredentialUseCase is a mock implementation of CredentialUseCase.
type MockCredentialUseCase struct {
	mock.Mock
}

func (m *MockCredentialUseCase) IssueAccessToken(
	userID uuid.UUID,
	email, name, role string,
) (string, time.Time, error) {
	args := m.Called(userID, email, name, role)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockCredentialUseCase) IssueRefreshToken(ctx context.Context, userID uuid.UUID) (string, time.Time, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockCredentialUseCase) ValidateRefreshToken(ctx context.Context, token string) (*uuid.UUID, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*uuid.UUID), args.Error(1)
}

func (m *MockCredentialUseCase) RevokeToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockCredentialUseCase) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockCredentialUseCase) RecoverClaimsFromExpiredToken(token string) (*authDomain.AccessClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.AccessClaims), args.Error(1)
}

func (m *MockCredentialUseCase) Login(ctx context.Context, email, password string) (*authDomain.TokenPair, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.TokenPair), args.Error(1)
}

func (m *MockCredentialUseCase) Refresh(
	ctx context.Context,
	refreshToken, expiredAccessToken string,
) (*authDomain.TokenPair, error) {
	args := m.Called(ctx, refreshToken, expiredAccessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.TokenPair), args.Error(1)
}

func (m *MockCredentialUseCase) Logout(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

func (m *MockCredentialUseCase) CleanupExpired(ctx context.Context, days int, dryRun bool) (int64, error) {
	args := m.Called(ctx, days, dryRun)
	return args.Get(0).(int64), args.Error(1)
}

// MockAuditLogUseCase is a mock implementation of AuditLogUseCase.
type MockAuditLogUseCase struct {
	mock.Mock
}

func (m *MockAuditLogUseCase) Record(
	ctx context.Context,
	userID uuid.UUID,
	action string,
	metadata map[string]any,
) error {
	args := m.Called(ctx, userID, action, metadata)
	return args.Error(0)
}

func (m *MockAuditLogUseCase) List(
	ctx context.Context,
	offset, limit int,
	filter authDomain.AuditLogFilter,
) ([]*authDomain.AuditLog, error) {
	args := m.Called(ctx, offset, limit, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.AuditLog), args.Error(1)
}

func (m *MockAuditLogUseCase) VerifyBatch(
	ctx context.Context,
	filter authDomain.AuditLogFilter,
) (*authUseCase.VerificationReport, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authUseCase.VerificationReport), args.Error(1)
}

var (
	_ authUseCase.CredentialUseCase = (*MockCredentialUseCase)(nil)
	_ authUseCase.AuditLogUseCase   = (*MockAuditLogUseCase)(nil)
)
