package app

import (
	"context"
	"fmt"

	cryptoHTTP "github.com/allisson/mealguard/internal/crypto/http"
	cryptoService "github.com/allisson/mealguard/internal/crypto/service"
)

// KMSService returns the KMS service.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// KeyStore returns the field encryption key store. The key slots are loaded and
// validated on first access so that a misconfiguration fails at startup.
func (c *Container) KeyStore() (*cryptoService.KeyStore, error) {
	c.keyStoreInit.Do(func() {
		var err error
		c.keyStore, err = c.initKeyStore()
		c.storeInitError("keyStore", err)
	})
	return c.keyStore, c.initError("keyStore")
}

// FieldCipher returns the field encryptor.
func (c *Container) FieldCipher() (cryptoService.FieldEncryptor, error) {
	c.fieldCipherInit.Do(func() {
		var err error
		c.fieldCipher, err = c.initFieldCipher()
		c.storeInitError("fieldCipher", err)
	})
	return c.fieldCipher, c.initError("fieldCipher")
}

// KeyHandler returns the HTTP handler listing field key versions.
func (c *Container) KeyHandler() (*cryptoHTTP.KeyHandler, error) {
	c.keyHandlerInit.Do(func() {
		var err error
		c.keyHandler, err = c.initKeyHandler()
		c.storeInitError("keyHandler", err)
	})
	return c.keyHandler, c.initError("keyHandler")
}

// initKeyStore builds the key store from the environment, unwrapping slots with
// the configured KMS key when one is set.
func (c *Container) initKeyStore() (*cryptoService.KeyStore, error) {
	ctx := context.Background()
	logger := c.Logger()

	var opts []cryptoService.KeyStoreOption
	if c.config.FieldEncryptionKMSKeyURI != "" {
		keeper, err := c.KMSService().OpenKeeper(ctx, c.config.FieldEncryptionKMSKeyURI)
		if err != nil {
			return nil, fmt.Errorf("failed to open kms keeper for key store: %w", err)
		}
		c.kmsKeeper = keeper
		opts = append(opts, cryptoService.WithKMSKeeper(keeper))
	}

	source := cryptoService.NewEnvKeySource(
		c.config.FieldEncryptionKeyPrefix,
		c.config.FieldEncryptionMaxVersions,
	)
	store := cryptoService.NewKeyStore(source, c.config.FieldEncryptionCurrentVersion, logger, opts...)

	if err := store.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load field encryption keys: %w", err)
	}
	return store, nil
}

// initFieldCipher creates the field cipher, wrapped with metrics when enabled.
func (c *Container) initFieldCipher() (cryptoService.FieldEncryptor, error) {
	keyStore, err := c.KeyStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get key store for field cipher: %w", err)
	}

	var fieldCipher cryptoService.FieldEncryptor = cryptoService.NewFieldCipher(keyStore, c.Logger())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for field cipher: %w", err)
		}
		return cryptoService.NewFieldEncryptorWithMetrics(fieldCipher, businessMetrics), nil
	}

	return fieldCipher, nil
}

// initKeyHandler creates the key listing handler over the key store.
func (c *Container) initKeyHandler() (*cryptoHTTP.KeyHandler, error) {
	keyStore, err := c.KeyStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get key store for key handler: %w", err)
	}
	return cryptoHTTP.NewKeyHandler(keyStore, c.Logger()), nil
}
