package app

import (
	cryptoService "github.com/allisson/clinicnotes/internal/crypto/service"
)

// AEADManager returns the AEAD manager service.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = cryptoService.NewAEADManager()
	})
	return c.aeadManager
}

// RandomGenerator returns the CSPRNG-backed generator for salts, nonces and keys.
func (c *Container) RandomGenerator() cryptoService.RandomGenerator {
	c.randomInit.Do(func() {
		c.random = cryptoService.NewRandomService()
	})
	return c.random
}

// KeyDeriver returns the Argon2id key deriver.
func (c *Container) KeyDeriver() cryptoService.KeyDeriver {
	c.keyDeriverInit.Do(func() {
		c.keyDeriver = cryptoService.NewArgon2idKeyDeriver(c.RandomGenerator())
	})
	return c.keyDeriver
}

// KeyManager returns the key manager service.
func (c *Container) KeyManager() cryptoService.KeyManager {
	c.keyManagerInit.Do(func() {
		c.keyManager = cryptoService.NewKeyManager(c.AEADManager(), c.RandomGenerator())
	})
	return c.keyManager
}

// RecordCipher returns the record cipher.
func (c *Container) RecordCipher() cryptoService.RecordCipher {
	c.recordCipherInit.Do(func() {
		c.recordCipher = cryptoService.NewRecordCipher(c.AEADManager(), c.RandomGenerator())
	})
	return c.recordCipher
}
