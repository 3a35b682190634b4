package usecase

import "time"

const (
	// DefaultPageSize is used when a caller passes size zero.
	DefaultPageSize = 20

	// MaxPageSize caps a single page of accounts or transactions.
	MaxPageSize = 100

	// BalanceCacheTTL bounds staleness of the cached balance between the
	// explicit invalidations done on transfer and delete.
	BalanceCacheTTL = 30 * time.Second
)
