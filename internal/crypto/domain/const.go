// Package domain defines the cryptographic building blocks of the account envelope.
//
// A random DEK encrypts every record. The DEK is stored only in wrapped form,
// sealed under a KEK derived from the user's password with Argon2id, so changing
// the password re-wraps one key and leaves the records untouched.
package domain

// Algorithm identifies the AEAD cipher used to wrap the DEK and to seal records.
//
// Only AES-256-GCM is accepted. The identifier is persisted with every wrapped
// DEK so an unknown value read back from storage fails fast instead of silently
// falling back to a default cipher.
type Algorithm string

// KdfAlgorithm identifies the password hashing function used to derive the KEK.
type KdfAlgorithm string

const (
	// AES256GCM represents the AES-256-GCM authenticated encryption algorithm
	// (256-bit key, 12-byte nonce, 16-byte tag appended to the ciphertext).
	AES256GCM Algorithm = "aes-256-gcm"

	// Argon2id represents the memory-hard Argon2id key derivation function (RFC 9106).
	Argon2id KdfAlgorithm = "argon2id"
)

const (
	// KeySize is the size in bytes of every symmetric key (KEK and DEK).
	KeySize = 32

	// NonceSize is the AES-GCM nonce size in bytes (96 bits).
	NonceSize = 12

	// TagSize is the AES-GCM authentication tag size in bytes.
	TagSize = 16

	// SaltSize is the number of random bytes drawn for a new Argon2id salt.
	SaltSize = 16

	// MinSaltSize and MaxSaltSize bound the salts accepted by the KDF.
	MinSaltSize = 8
	MaxSaltSize = 64

	// DefaultKdfMemoryKiB, DefaultKdfIterations and DefaultKdfParallelism are the
	// Argon2id cost parameters stamped on new accounts.
	DefaultKdfMemoryKiB   uint32 = 65536
	DefaultKdfIterations  uint32 = 3
	DefaultKdfParallelism uint32 = 2

	// MaxKdfMemoryKiB (4 GiB) and MaxKdfIterations cap the cost read back from
	// storage. argon2.IDKey allocates the whole memory cost up front.
	MaxKdfMemoryKiB  uint32 = 4 * 1024 * 1024
	MaxKdfIterations uint32 = 64

	// MaxKdfParallelism is the largest lane count Argon2id accepts.
	MaxKdfParallelism uint32 = 255
)

// ParseAlgorithm converts a persisted identifier into an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case AES256GCM:
		return AES256GCM, nil
	default:
		return "", ErrUnsupportedAlgorithm
	}
}

// ParseKdfAlgorithm converts a persisted identifier into a KdfAlgorithm.
func ParseKdfAlgorithm(s string) (KdfAlgorithm, error) {
	switch KdfAlgorithm(s) {
	case Argon2id:
		return Argon2id, nil
	default:
		return "", ErrUnsupportedKdfAlgorithm
	}
}
