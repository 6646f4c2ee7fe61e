package app

import (
	"context"
	"fmt"

	"github.com/allisson/onboarding/internal/config"
	secretsRepository "github.com/allisson/onboarding/internal/secrets/repository"
	secretsUseCase "github.com/allisson/onboarding/internal/secrets/usecase"
)

// SecretStore returns the remote secret store selected by SECRET_STORE_PROVIDER.
// A nil store means remote lookups are disabled.
func (c *Container) SecretStore() (secretsUseCase.SecretStore, error) {
	var err error
	c.secretStoreInit.Do(func() {
		c.secretStore, err = c.initSecretStore()
		if err != nil {
			c.initErrors["secretStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secretStore"]; exists {
		return nil, storedErr
	}
	return c.secretStore, nil
}

// SecretProvider returns the caching secret provider.
func (c *Container) SecretProvider() (secretsUseCase.SecretProvider, error) {
	var err error
	c.secretProviderInit.Do(func() {
		c.secretProvider, err = c.initSecretProvider()
		if err != nil {
			c.initErrors["secretProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secretProvider"]; exists {
		return nil, storedErr
	}
	return c.secretProvider, nil
}

// initSecretStore creates the remote store for the configured provider.
func (c *Container) initSecretStore() (secretsUseCase.SecretStore, error) {
	switch c.config.SecretStoreProvider {
	case config.SecretStoreNone:
		return nil, nil
	case config.SecretStoreVault:
		client, err := secretsRepository.NewVaultClient(secretsRepository.VaultConfig{
			Address:   c.config.VaultAddress,
			Token:     c.config.VaultToken,
			MountPath: c.config.VaultMountPath,
			Prefix:    c.config.VaultSecretPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create vault client: %w", err)
		}
		return secretsRepository.NewVaultSecretStore(
			client,
			c.config.VaultMountPath,
			c.config.VaultSecretPrefix,
		), nil
	case config.SecretStoreDatabase:
		return c.initDatabaseSecretStore()
	default:
		return nil, fmt.Errorf("unsupported secret store provider: %s", c.config.SecretStoreProvider)
	}
}

// initDatabaseSecretStore creates the KMS-sealed database store based on the database driver.
func (c *Container) initDatabaseSecretStore() (secretsUseCase.SecretStore, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for secret store: %w", err)
	}

	keeper, err := c.KMSKeeper(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get kms keeper for secret store: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return secretsRepository.NewPostgreSQLSecretStore(db, keeper), nil
	case "mysql":
		return secretsRepository.NewMySQLSecretStore(db, keeper), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initSecretProvider creates the secret provider with its store and local fallback.
func (c *Container) initSecretProvider() (secretsUseCase.SecretProvider, error) {
	store, err := c.SecretStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret store for secret provider: %w", err)
	}

	baseProvider := secretsUseCase.NewSecretProvider(store, secretsUseCase.ProviderConfig{
		StoreTimeout:      c.config.SecretStoreTimeout,
		EncryptionKeyName: c.config.EncryptionKeySecretName,
		EncryptionKey:     c.config.EncryptionKey,
	}, c.Logger())

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for secret provider: %w", err)
		}
		return secretsUseCase.NewSecretProviderWithMetrics(baseProvider, businessMetrics), nil
	}

	return baseProvider, nil
}
