package service

import (
	"crypto/rand"
	"io"

	cryptoDomain "github.com/allisson/clinicnotes/internal/crypto/domain"
)

// RandomService implements RandomGenerator on top of a CSPRNG reader.
type RandomService struct {
	reader io.Reader
}

// NewRandomService creates a RandomService reading from crypto/rand.
func NewRandomService() *RandomService {
	return &RandomService{reader: rand.Reader}
}

// NewRandomServiceFromReader creates a RandomService over an arbitrary reader.
// Only tests should pass anything other than crypto/rand.Reader.
func NewRandomServiceFromReader(r io.Reader) *RandomService {
	return &RandomService{reader: r}
}

// GenerateNonce returns 12 fresh random bytes.
func (r *RandomService) GenerateNonce() ([]byte, error) {
	return r.read(cryptoDomain.NonceSize)
}

// GenerateKey returns 32 fresh random bytes.
func (r *RandomService) GenerateKey() ([]byte, error) {
	return r.read(cryptoDomain.KeySize)
}

// GenerateSalt returns 16 fresh random bytes.
func (r *RandomService) GenerateSalt() ([]byte, error) {
	return r.read(cryptoDomain.SaltSize)
}

func (r *RandomService) read(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(r.reader, b); err != nil {
		return nil, cryptoDomain.ErrRandomFailed
	}
	return b, nil
}
