package domain

// KdfParams are the Argon2id inputs stored with an account.
//
// They are immutable for the life of a password: only a password change draws a
// new salt (and stamps the then-current cost defaults). Derivation always uses
// the stored values so accounts keep unlocking if defaults change later.
type KdfParams struct {
	Algorithm   KdfAlgorithm
	Salt        []byte
	MemoryKiB   uint32
	Iterations  uint32
	Parallelism uint32
}

// KdfCost is the cost half of KdfParams, used to configure defaults for new accounts.
type KdfCost struct {
	MemoryKiB   uint32
	Iterations  uint32
	Parallelism uint32
}

// DefaultKdfCost returns the cost parameters stamped on new accounts.
func DefaultKdfCost() KdfCost {
	return KdfCost{
		MemoryKiB:   DefaultKdfMemoryKiB,
		Iterations:  DefaultKdfIterations,
		Parallelism: DefaultKdfParallelism,
	}
}

// NewKdfParams binds a salt to a cost.
func NewKdfParams(salt []byte, cost KdfCost) KdfParams {
	return KdfParams{
		Algorithm:   Argon2id,
		Salt:        salt,
		MemoryKiB:   cost.MemoryKiB,
		Iterations:  cost.Iterations,
		Parallelism: cost.Parallelism,
	}
}

// Cost returns the cost half of the parameters.
func (p KdfParams) Cost() KdfCost {
	return KdfCost{MemoryKiB: p.MemoryKiB, Iterations: p.Iterations, Parallelism: p.Parallelism}
}

// Validate checks the cost parameters against what Argon2id accepts.
func (c KdfCost) Validate() error {
	if c.Iterations == 0 || c.Iterations > MaxKdfIterations {
		return ErrInvalidKdfParams
	}
	if c.Parallelism == 0 || c.Parallelism > MaxKdfParallelism {
		return ErrInvalidKdfParams
	}
	if c.MemoryKiB < 8*c.Parallelism || c.MemoryKiB > MaxKdfMemoryKiB {
		return ErrInvalidKdfParams
	}
	return nil
}
