package explorer

import (
	"context"
	"errors"
)

var (
	// ErrNullAddress ...
	ErrNullAddress = errors.New("address must not be null")
	// ErrNullProviders ...
	ErrNullProviders = errors.New("provider list must not be null")
	// ErrMalformedResponse ...
	ErrMalformedResponse = errors.New("provider returned a malformed response")
)

// BalanceResult is the normalized outcome of one balance lookup.
// Known distinguishes "queried, balance is Sats" from "could not
// determine". An unknown result must never be read as a zero balance,
// a funded address would otherwise be misreported as empty.
type BalanceResult struct {
	Sats  uint64
	Known bool
}

// Positive returns whether the lookup proved the address funded.
func (r BalanceResult) Positive() bool {
	return r.Known && r.Sats > 0
}

// Provider queries a single external balance source. Implementations
// own their wire format and always return the balance in satoshis.
type Provider interface {
	Name() string
	GetBalance(ctx context.Context, address string) (uint64, error)
}

// Service resolves the balance of an address with provider failover.
// An exhausted lookup yields an explicit unknown BalanceResult, not an
// error and not a zero.
type Service interface {
	GetBalance(ctx context.Context, address string) (BalanceResult, error)
}
