package explorer

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	// DefaultMaxRetries is the number of full passes over the provider
	// list before a lookup gives up.
	DefaultMaxRetries = 3
	// DefaultBackoffBase is the backoff unit between passes, the wait
	// before pass n is DefaultBackoffBase * 2^(n-1).
	DefaultBackoffBase = time.Second
)

// ServiceOpts groups the parameters for creating a failover balance
// service with NewService.
type ServiceOpts struct {
	// Providers are tried in the given priority order.
	Providers []Provider
	// MaxRetries defaults to DefaultMaxRetries when 0.
	MaxRetries int
	// BackoffBase defaults to DefaultBackoffBase when 0.
	BackoffBase time.Duration
}

func (o ServiceOpts) validate() error {
	if len(o.Providers) <= 0 {
		return ErrNullProviders
	}
	return nil
}

func (o ServiceOpts) maxRetries() int {
	if o.MaxRetries <= 0 {
		return DefaultMaxRetries
	}
	return o.MaxRetries
}

func (o ServiceOpts) backoffBase() time.Duration {
	if o.BackoffBase <= 0 {
		return DefaultBackoffBase
	}
	return o.BackoffBase
}

type service struct {
	providers   []Provider
	maxRetries  int
	backoffBase time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
}

// NewService returns a Service that iterates the given providers in
// priority order, falling through to the next provider on any
// transport or parse failure and retrying the whole list with
// exponential backoff between passes.
func NewService(opts ServiceOpts) (Service, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &service{
		providers:   opts.Providers,
		maxRetries:  opts.maxRetries(),
		backoffBase: opts.backoffBase(),
		sleep:       sleepWithContext,
	}, nil
}

func (s *service) GetBalance(
	ctx context.Context, address string,
) (BalanceResult, error) {
	if address == "" {
		return BalanceResult{}, ErrNullAddress
	}

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		for _, provider := range s.providers {
			sats, err := provider.GetBalance(ctx, address)
			if err != nil {
				log.WithError(err).Warnf(
					"balance lookup failed on provider %s", provider.Name(),
				)
				continue
			}
			return BalanceResult{Sats: sats, Known: true}, nil
		}

		if attempt < s.maxRetries-1 {
			backoff := s.backoffBase * (1 << attempt)
			log.Debugf(
				"all providers failed, next pass in %s", backoff,
			)
			if err := s.sleep(ctx, backoff); err != nil {
				return BalanceResult{}, err
			}
		}
	}

	log.Warnf(
		"balance of %s is unknown, all providers failed for %d passes",
		address, s.maxRetries,
	)
	return BalanceResult{Known: false}, nil
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
