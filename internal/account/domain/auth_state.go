package domain

// AuthStatus is the authentication status of the running process.
type AuthStatus string

const (
	NotAuthenticated AuthStatus = "not_authenticated"
	Authenticated    AuthStatus = "authenticated"
)

// AuthState is the in-memory authentication state. It is never persisted and
// carries identity only, no key material.
type AuthState struct {
	Status   AuthStatus
	Identity *Identity
}

// NewAuthState returns the initial, unauthenticated state.
func NewAuthState() AuthState {
	return AuthState{Status: NotAuthenticated}
}

// IsAuthenticated reports whether a password has been verified in this process.
func (s AuthState) IsAuthenticated() bool {
	return s.Status == Authenticated && s.Identity != nil
}

// Authenticate returns the state after a successful password check.
func (s AuthState) Authenticate(identity *Identity) AuthState {
	return AuthState{Status: Authenticated, Identity: identity}
}

// Lock returns the unauthenticated state.
func (s AuthState) Lock() AuthState {
	return NewAuthState()
}
