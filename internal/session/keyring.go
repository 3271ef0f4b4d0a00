package session

import (
	"sync"

	"github.com/awnumar/memguard"

	accountDomain "github.com/allisson/clinicnotes/internal/account/domain"
	cryptoDomain "github.com/allisson/clinicnotes/internal/crypto/domain"
)

// Keyring caches an unlocked DEK encrypted in memory for the lifetime of an
// interactive session. Safe for concurrent use.
type Keyring struct {
	mu      sync.Mutex
	enclave *memguard.Enclave
}

// NewKeyring creates an empty keyring.
func NewKeyring() *Keyring {
	return &Keyring{}
}

// Store seals the DEK into the keyring, replacing any previous one. The Dek is
// destroyed in the process.
func (k *Keyring) Store(dek *cryptoDomain.Dek) error {
	enclave, err := dek.Seal()
	if err != nil {
		return err
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	k.enclave = enclave
	return nil
}

// Open decrypts a copy of the cached DEK. The caller must Destroy it.
func (k *Keyring) Open() (*cryptoDomain.Dek, error) {
	k.mu.Lock()
	enclave := k.enclave
	k.mu.Unlock()

	if enclave == nil {
		return nil, accountDomain.ErrNotAuthenticated
	}

	buf, err := enclave.Open()
	if err != nil {
		return nil, cryptoDomain.ErrDekDestroyed
	}
	return cryptoDomain.NewDekFromBuffer(buf)
}

// Loaded reports whether a DEK is cached.
func (k *Keyring) Loaded() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.enclave != nil
}

// Clear drops the keyring's reference to the sealed DEK. The enclave's
// ciphertext stays on the heap until garbage collected, so scrubbing is
// best-effort; the plaintext key only ever lives in guarded buffers.
func (k *Keyring) Clear() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.enclave = nil
}
