package domain

// WrappedDek is the DEK sealed under the password-derived KEK.
//
// Ciphertext is the raw AEAD output with the 16-byte tag appended; there is no
// separate tag field. Nonce is drawn fresh for every wrap, including re-wraps of
// the same DEK under a new password.
type WrappedDek struct {
	Algorithm  Algorithm
	Nonce      []byte
	Ciphertext []byte
}
