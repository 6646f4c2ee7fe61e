// Package repository implements the remote secret stores: HashiCorp Vault KV v2
// and a database table sealed by a KMS keeper.
package repository

import (
	"context"
	"fmt"
	"path"
	"time"

	vault "github.com/hashicorp/vault/api"

	apperrors "github.com/allisson/onboarding/internal/errors"
	secretsDomain "github.com/allisson/onboarding/internal/secrets/domain"
)

// vaultValueKey is the data key that holds the secret value in each KV entry.
const vaultValueKey = "value"

// VaultConfig holds the connection settings of a Vault KV v2 engine.
type VaultConfig struct {
	Address   string
	Token     string
	MountPath string
	Prefix    string
}

// VaultSecretStore reads and writes secrets in a Vault KV v2 mount.
type VaultSecretStore struct {
	kv     *vault.KVv2
	prefix string
}

// NewVaultClient creates an authenticated Vault API client.
func NewVaultClient(cfg VaultConfig) (*vault.Client, error) {
	vaultCfg := vault.DefaultConfig()
	if cfg.Address != "" {
		vaultCfg.Address = cfg.Address
	}

	client, err := vault.NewClient(vaultCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}

	if cfg.Token != "" {
		client.SetToken(cfg.Token)
	}
	return client, nil
}

// NewVaultSecretStore creates a VaultSecretStore on the given mount.
func NewVaultSecretStore(client *vault.Client, mountPath, prefix string) *VaultSecretStore {
	if mountPath == "" {
		mountPath = "secret"
	}
	return &VaultSecretStore{
		kv:     client.KVv2(mountPath),
		prefix: prefix,
	}
}

func (v *VaultSecretStore) secretPath(name string) string {
	if v.prefix == "" {
		return name
	}
	return path.Join(v.prefix, name)
}

// Get reads the latest version of the secret.
func (v *VaultSecretStore) Get(ctx context.Context, name string) (*secretsDomain.Secret, error) {
	kvSecret, err := v.kv.Get(ctx, v.secretPath(name))
	if err != nil {
		if apperrors.Is(err, vault.ErrSecretNotFound) {
			return nil, secretsDomain.ErrSecretNotFound
		}
		return nil, apperrors.Wrap(err, "failed to read secret from vault")
	}

	value, ok := kvSecret.Data[vaultValueKey].(string)
	if !ok {
		return nil, secretsDomain.ErrSecretNotFound
	}

	secret := &secretsDomain.Secret{Name: name, Value: value}
	if kvSecret.VersionMetadata != nil {
		secret.UpdatedAt = kvSecret.VersionMetadata.CreatedTime
	}
	return secret, nil
}

// Set writes a new version of the secret.
func (v *VaultSecretStore) Set(ctx context.Context, name, value string) error {
	_, err := v.kv.Put(ctx, v.secretPath(name), map[string]any{
		vaultValueKey: value,
		"updated_at":  time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return apperrors.Wrap(err, "failed to write secret to vault")
	}
	return nil
}
