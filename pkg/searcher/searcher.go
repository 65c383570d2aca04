package searcher

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"

	"github.com/seedrescue/seedrescue/pkg/explorer"
	"github.com/seedrescue/seedrescue/pkg/mnemonic"
	"github.com/seedrescue/seedrescue/pkg/wallet"
)

const (
	eventQueueMaxSize = 100

	// DefaultProgressEvery is the number of candidates between two
	// progress events.
	DefaultProgressEvery = 100
)

var (
	// ErrNullGenerator ...
	ErrNullGenerator = errors.New("candidate generator must not be null")
	// ErrNullExplorer ...
	ErrNullExplorer = errors.New("explorer service must not be null")
	// ErrNullDeriveFunc ...
	ErrNullDeriveFunc = errors.New("derive function must not be null")
)

// DeriveFunc turns a candidate mnemonic into its bounded address set.
type DeriveFunc func(candidate []string) ([]wallet.DerivedAddress, error)

// Result is the terminal outcome of a search.
type Result struct {
	Found    bool
	Mnemonic []string
	Address  wallet.DerivedAddress
	Balance  uint64
	Checked  uint64
	Elapsed  time.Duration
}

// Opts defines the parameters needed for creating a search service
// with the NewService method.
type Opts struct {
	Generator   *mnemonic.Generator
	ExplorerSvc explorer.Service
	Derive      DeriveFunc
	// RequestDelay is the pause enforced between two consecutive
	// balance checks to respect provider rate limits. Zero disables
	// pacing.
	RequestDelay time.Duration
	// ProgressEvery defaults to DefaultProgressEvery when 0.
	ProgressEvery uint64
}

func (o Opts) validate() error {
	if o.Generator == nil {
		return ErrNullGenerator
	}
	if o.ExplorerSvc == nil {
		return ErrNullExplorer
	}
	if o.Derive == nil {
		return ErrNullDeriveFunc
	}
	return nil
}

func (o Opts) progressEvery() uint64 {
	if o.ProgressEvery <= 0 {
		return DefaultProgressEvery
	}
	return o.ProgressEvery
}

func (o Opts) rateLimiter() ratelimit.Limiter {
	if o.RequestDelay <= 0 {
		return ratelimit.NewUnlimited()
	}
	return ratelimit.New(1, ratelimit.Per(o.RequestDelay))
}

// Service drives one recovery search to completion.
type Service interface {
	Search(ctx context.Context) (*Result, error)
	GetEventChannel() chan Event
}

type searchService struct {
	runID         uuid.UUID
	generator     *mnemonic.Generator
	explorerSvc   explorer.Service
	derive        DeriveFunc
	rateLimiter   ratelimit.Limiter
	progressEvery uint64
	eventChan     chan Event
}

// NewService returns a Service that pulls candidates from the
// generator one at a time, derives each candidate's address set and
// checks every address against the explorer until a positive known
// balance shows up or the space is exhausted. Candidates are processed
// strictly sequentially, parallel lookups would defeat the provider
// rate limits and make the enumeration order useless for reasoning
// about an interrupted run.
func NewService(opts Opts) (Service, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &searchService{
		runID:         uuid.New(),
		generator:     opts.Generator,
		explorerSvc:   opts.ExplorerSvc,
		derive:        opts.Derive,
		rateLimiter:   opts.rateLimiter(),
		progressEvery: opts.progressEvery(),
		eventChan:     make(chan Event, eventQueueMaxSize),
	}, nil
}

func (s *searchService) GetEventChannel() chan Event {
	return s.eventChan
}

func (s *searchService) Search(ctx context.Context) (*Result, error) {
	startTime := time.Now()
	var checked uint64

	log.Infof(
		"search %s started over at most %d combinations",
		s.runID, s.generator.MaxCombinations(),
	)

	for {
		if err := ctx.Err(); err != nil {
			s.publishEvent(QuitEvent{})
			return nil, err
		}

		candidate, ok := s.generator.Next()
		if !ok {
			break
		}
		checked++

		addresses, err := s.derive(candidate)
		if err != nil {
			// fatal to this candidate only
			log.WithError(err).Warn("skipping underivable candidate")
			continue
		}

		for _, address := range addresses {
			if err := ctx.Err(); err != nil {
				s.publishEvent(QuitEvent{})
				return nil, err
			}
			s.rateLimiter.Take()

			result, err := s.explorerSvc.GetBalance(ctx, address.Address)
			if err != nil {
				if ctx.Err() != nil {
					s.publishEvent(QuitEvent{})
					return nil, err
				}
				log.WithError(err).Warnf(
					"balance check failed for %s", address.Address,
				)
				continue
			}

			if result.Positive() {
				log.Infof(
					"search %s found funded address %s (path %s, %d sats)",
					s.runID, address.Address, address.Path, result.Sats,
				)
				s.publishEvent(FoundEvent{
					Mnemonic: candidate,
					Address:  address,
					Balance:  result.Sats,
				})
				return &Result{
					Found:    true,
					Mnemonic: candidate,
					Address:  address,
					Balance:  result.Sats,
					Checked:  checked,
					Elapsed:  time.Since(startTime),
				}, nil
			}
		}

		if checked%s.progressEvery == 0 {
			elapsed := time.Since(startTime)
			perSecond := float64(checked) / elapsed.Seconds()
			log.Infof(
				"search %s checked %d mnemonics (%.2f/sec)",
				s.runID, checked, perSecond,
			)
			s.publishEvent(ProgressEvent{
				Checked:   checked,
				PerSecond: perSecond,
			})
		}
	}

	log.Infof(
		"search %s exhausted the candidate space after %d mnemonics",
		s.runID, checked,
	)
	s.publishEvent(ExhaustedEvent{Checked: checked})
	return &Result{
		Found:   false,
		Checked: checked,
		Elapsed: time.Since(startTime),
	}, nil
}

// publishEvent never blocks, a slow or absent consumer must not stall
// the search itself.
func (s *searchService) publishEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
	}
}
