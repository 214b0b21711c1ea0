package trade

import "errors"

var (
	// ErrInvalidSide is returned when a side is not in the vocabulary
	// for the leg's instrument kind.
	ErrInvalidSide = errors.New("trade: invalid side for instrument kind")

	// ErrInvalidQuantity is returned for zero or negative quantities.
	ErrInvalidQuantity = errors.New("trade: quantity must be a positive integer")

	// ErrMissingEntry is returned when an option leg carries no resolved
	// chain entry.
	ErrMissingEntry = errors.New("trade: option leg requires a chain entry")

	// ErrNoDeltaMatch is returned when delta-based selection finds no
	// candidate within the margin-adjusted bound.
	ErrNoDeltaMatch = errors.New("trade: no contract matches the target delta")

	// ErrStrikeNotListed is returned when a manually entered strike is
	// not in the fetched strike list.
	ErrStrikeNotListed = errors.New("trade: strike is not listed for this expiration")
)
