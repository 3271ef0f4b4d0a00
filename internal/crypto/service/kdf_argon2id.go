package service

import (
	"golang.org/x/crypto/argon2"

	cryptoDomain "github.com/allisson/clinicnotes/internal/crypto/domain"
)

// Argon2idKeyDeriver implements KeyDeriver with Argon2id.
//
// The output is requested at exactly KeySize bytes, so no truncation or padding
// happens. Derivation is deterministic in (password, salt, cost) and takes
// hundreds of milliseconds with the default cost; callers must not run it on a
// latency-sensitive goroutine.
type Argon2idKeyDeriver struct {
	random RandomGenerator
}

// NewArgon2idKeyDeriver creates a new Argon2idKeyDeriver drawing salts from random.
func NewArgon2idKeyDeriver(random RandomGenerator) *Argon2idKeyDeriver {
	return &Argon2idKeyDeriver{random: random}
}

// GenerateSalt draws SaltSize bytes from the CSPRNG.
func (d *Argon2idKeyDeriver) GenerateSalt() ([]byte, error) {
	return d.random.GenerateSalt()
}

// DeriveKey derives a 32-byte key from password using the stored parameters.
func (d *Argon2idKeyDeriver) DeriveKey(password []byte, params cryptoDomain.KdfParams) ([]byte, error) {
	if params.Algorithm != cryptoDomain.Argon2id {
		return nil, cryptoDomain.ErrUnsupportedKdfAlgorithm
	}
	if len(params.Salt) < cryptoDomain.MinSaltSize || len(params.Salt) > cryptoDomain.MaxSaltSize {
		return nil, cryptoDomain.ErrInvalidSalt
	}
	if err := params.Cost().Validate(); err != nil {
		return nil, err
	}

	key := argon2.IDKey(
		password,
		params.Salt,
		params.Iterations,
		params.MemoryKiB,
		uint8(params.Parallelism),
		cryptoDomain.KeySize,
	)
	if len(key) != cryptoDomain.KeySize {
		cryptoDomain.Zero(key)
		return nil, cryptoDomain.ErrKeyDerivationFailed
	}
	return key, nil
}
