package domain

import "errors"

// Core error taxonomy. Every operation fails with exactly one of these,
// wrapped with context via fmt.Errorf("%w: ..."); callers branch with errors.Is.
var (
	// ErrInvariantViolation means a ledger transition would leave a bucket
	// negative or the bucket sum out of balance with the total.
	ErrInvariantViolation = errors.New("inventory invariant violation")

	// ErrInvalidTransition means a state-machine rule was violated, e.g.
	// deciding on an agreement that is already terminal.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrOutOfStock means the requested quantity exceeds available units.
	ErrOutOfStock = errors.New("out of stock")

	// ErrInvalidPricing means a non-positive price, rental length, or quantity.
	ErrInvalidPricing = errors.New("invalid pricing")

	// ErrUnauthorized means the caller is neither party to the agreement.
	ErrUnauthorized = errors.New("unauthorized")

	ErrNotFound = errors.New("not found")
)
