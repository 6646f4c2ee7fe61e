package app

import (
	"context"
	"fmt"

	cryptoDomain "github.com/allisson/onboarding/internal/crypto/domain"
	cryptoService "github.com/allisson/onboarding/internal/crypto/service"
	cryptoUseCase "github.com/allisson/onboarding/internal/crypto/usecase"
)

// KMSService returns the KMS service used to open key keepers.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = c.initKMSService()
	})
	return c.kmsService
}

// KMSKeeper returns the keeper sealing database-stored secrets.
func (c *Container) KMSKeeper(ctx context.Context) (cryptoDomain.KMSKeeper, error) {
	var err error
	c.kmsKeeperInit.Do(func() {
		c.kmsKeeper, err = c.initKMSKeeper(ctx)
		if err != nil {
			c.initErrors["kmsKeeper"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["kmsKeeper"]; exists {
		return nil, storedErr
	}
	return c.kmsKeeper, nil
}

// FieldCipher returns the cipher protecting tax identifiers at rest.
func (c *Container) FieldCipher() (cryptoUseCase.FieldCipher, error) {
	var err error
	c.fieldCipherInit.Do(func() {
		c.fieldCipher, err = c.initFieldCipher()
		if err != nil {
			c.initErrors["fieldCipher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["fieldCipher"]; exists {
		return nil, storedErr
	}
	return c.fieldCipher, nil
}

// initKMSService creates the KMS service instance.
func (c *Container) initKMSService() cryptoService.KMSService {
	return cryptoService.NewKMSService()
}

// initKMSKeeper opens the keeper named by KMS_KEY_URI.
func (c *Container) initKMSKeeper(ctx context.Context) (cryptoDomain.KMSKeeper, error) {
	if c.config.KMSKeyURI == "" {
		return nil, fmt.Errorf("KMS_KEY_URI is required for the database secret store")
	}

	keeper, err := c.KMSService().OpenKeeper(ctx, c.config.KMSKeyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open kms keeper: %w", err)
	}
	return keeper, nil
}

// initFieldCipher creates the field cipher, resolving its key through the secret provider.
func (c *Container) initFieldCipher() (cryptoUseCase.FieldCipher, error) {
	secretProvider, err := c.SecretProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret provider for field cipher: %w", err)
	}

	baseCipher := cryptoUseCase.NewFieldCipher(secretProvider, c.config.EncryptionKeySecretName)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for field cipher: %w", err)
		}
		return cryptoUseCase.NewFieldCipherWithMetrics(baseCipher, businessMetrics), nil
	}

	return baseCipher, nil
}
