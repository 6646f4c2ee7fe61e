package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authDomain "github.com/allisson/onboarding/internal/auth/domain"
	apperrors "github.com/allisson/onboarding/internal/errors"
)

// AccessTokenConfig configures access token signing.
type AccessTokenConfig struct {
	Secret     []byte
	Issuer     string
	Audience   string
	Expiration time.Duration
}

type accessTokenService struct {
	cfg AccessTokenConfig
	now func() time.Time
}

// Issue signs an HS256 token with a fresh jti.
func (a *accessTokenService) Issue(
	userID uuid.UUID,
	email, name, role string,
) (string, time.Time, error) {
	now := a.now().UTC()
	expiresAt := now.Add(a.cfg.Expiration)

	jti, err := uuid.NewRandom()
	if err != nil {
		return "", time.Time{}, apperrors.Wrap(err, "failed to generate token id")
	}

	claims := authDomain.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti.String(),
			Subject:   userID.String(),
			Issuer:    a.cfg.Issuer,
			Audience:  jwt.ClaimStrings{a.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email: email,
		Name:  name,
		Role:  role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.cfg.Secret)
	if err != nil {
		return "", time.Time{}, apperrors.Wrap(err, "failed to sign access token")
	}

	return signed, expiresAt, nil
}

// Parse runs full validation.
func (a *accessTokenService) Parse(token string) (*authDomain.AccessClaims, error) {
	return a.parse(token,
		jwt.WithIssuer(a.cfg.Issuer),
		jwt.WithAudience(a.cfg.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(a.now),
	)
}

// ParseIgnoringExpiry skips time based claim validation, so issuer and
// audience are checked by hand afterwards.
func (a *accessTokenService) ParseIgnoringExpiry(token string) (*authDomain.AccessClaims, error) {
	claims, err := a.parse(token, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, err
	}

	if claims.Issuer != a.cfg.Issuer {
		return nil, authDomain.ErrInvalidAccessToken
	}

	audienceOK := false
	for _, aud := range claims.Audience {
		if aud == a.cfg.Audience {
			audienceOK = true
			break
		}
	}
	if !audienceOK {
		return nil, authDomain.ErrInvalidAccessToken
	}

	return claims, nil
}

func (a *accessTokenService) parse(token string, opts ...jwt.ParserOption) (*authDomain.AccessClaims, error) {
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	claims := &authDomain.AccessClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.cfg.Secret, nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return nil, authDomain.ErrInvalidAccessToken
	}

	if claims.Subject == "" {
		return nil, authDomain.ErrInvalidAccessToken
	}

	return claims, nil
}

// NewAccessTokenService creates an AccessTokenService.
func NewAccessTokenService(cfg AccessTokenConfig) AccessTokenService {
	return &accessTokenService{cfg: cfg, now: time.Now}
}
