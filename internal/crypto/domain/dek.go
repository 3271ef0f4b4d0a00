package domain

import (
	"github.com/awnumar/memguard"
)

// Dek is the plaintext Data Encryption Key of an unlocked account.
//
// The key lives in a memguard LockedBuffer: mlocked, surrounded by guard pages and
// wiped by Destroy. It is never persisted and never formatted; the String and
// GoString methods redact it so a stray %v cannot leak it into logs or errors.
// A Dek is only obtained by unwrapping an account with the correct password.
type Dek struct {
	buf *memguard.LockedBuffer
}

// NewDek moves key into protected memory and wipes the caller's slice.
func NewDek(key []byte) (*Dek, error) {
	if len(key) != KeySize {
		Zero(key)
		return nil, ErrInvalidKeySize
	}
	return &Dek{buf: memguard.NewBufferFromBytes(key)}, nil
}

// NewDekFromBuffer adopts an already protected buffer, e.g. one opened from an enclave.
func NewDekFromBuffer(buf *memguard.LockedBuffer) (*Dek, error) {
	if buf == nil || !buf.IsAlive() {
		return nil, ErrDekDestroyed
	}
	if buf.Size() != KeySize {
		buf.Destroy()
		return nil, ErrInvalidKeySize
	}
	return &Dek{buf: buf}, nil
}

// Key returns the protected key bytes. The slice aliases locked memory and must
// not be retained after Destroy.
func (d *Dek) Key() ([]byte, error) {
	if d == nil || d.buf == nil || !d.buf.IsAlive() {
		return nil, ErrDekDestroyed
	}
	return d.buf.Bytes(), nil
}

// Seal moves the key into an encrypted memguard Enclave and destroys the Dek.
func (d *Dek) Seal() (*memguard.Enclave, error) {
	if d == nil || d.buf == nil || !d.buf.IsAlive() {
		return nil, ErrDekDestroyed
	}
	return d.buf.Seal(), nil
}

// Destroy wipes the key. Safe to call more than once.
func (d *Dek) Destroy() {
	if d == nil || d.buf == nil {
		return
	}
	d.buf.Destroy()
}

// String redacts the key.
func (d *Dek) String() string {
	return "Dek(REDACTED)"
}

// GoString redacts the key.
func (d *Dek) GoString() string {
	return d.String()
}
