package searcher

import "github.com/seedrescue/seedrescue/pkg/wallet"

const (
	QuitSignal EventType = iota
	Progress
	BalanceFound
	SpaceExhausted
)

type EventType int

func (et EventType) String() string {
	switch et {
	case QuitSignal:
		return "QuitSignal"
	case Progress:
		return "Progress"
	case BalanceFound:
		return "BalanceFound"
	case SpaceExhausted:
		return "SpaceExhausted"
	default:
		return "Unknown"
	}
}

// Event are emitted through a channel while a search runs.
type Event interface {
	Type() EventType
}

type QuitEvent struct{}

func (e QuitEvent) Type() EventType {
	return QuitSignal
}

// ProgressEvent reports throughput every ProgressEvery candidates.
type ProgressEvent struct {
	Checked   uint64
	PerSecond float64
}

func (e ProgressEvent) Type() EventType {
	return Progress
}

// FoundEvent reports the first derived address with a positive known
// balance, along with the candidate mnemonic that produced it.
type FoundEvent struct {
	Mnemonic []string
	Address  wallet.DerivedAddress
	Balance  uint64
}

func (e FoundEvent) Type() EventType {
	return BalanceFound
}

// ExhaustedEvent reports that the candidate space ran out without a
// positive balance. This is a normal terminal outcome, not an error.
type ExhaustedEvent struct {
	Checked uint64
}

func (e ExhaustedEvent) Type() EventType {
	return SpaceExhausted
}
