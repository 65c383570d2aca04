package mnemonic

import (
	"fmt"
	"math"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tyler-smith/go-bip39"
)

// MaxPracticalMissing is the number of placeholders above which the
// search space grows beyond any practical runtime. Crossing it is
// logged as a warning, not rejected, the caller decides whether to
// proceed.
const MaxPracticalMissing = 5

// Generator lazily enumerates the candidate completions of a partial
// phrase: the Cartesian product of wordlist assignments to the
// placeholder positions, in wordlist order with the rightmost
// placeholder varying fastest, filtered down to the candidates whose
// final word satisfies the BIP39 checksum.
//
// Enumeration is deterministic for identical inputs and finite, at
// most len(wordlist)^NumMissing candidates are visited. A generator
// cannot be rewound or resumed from an arbitrary midpoint.
type Generator struct {
	phrase    *PartialPhrase
	wordlist  []string
	odometer  []int
	exhausted bool
}

// NewGenerator returns a generator over the candidate completions of
// the given phrase. Concrete words of the phrase are checked against
// the wordlist upfront so that an unrecoverable typo surfaces before
// any candidate is enumerated.
func NewGenerator(phrase *PartialPhrase, wordlist []string) (*Generator, error) {
	if phrase == nil {
		return nil, ErrNullPhrase
	}
	if len(wordlist) <= 0 {
		return nil, ErrNullWordlist
	}

	wordSet := make(map[string]struct{}, len(wordlist))
	for _, word := range wordlist {
		wordSet[word] = struct{}{}
	}
	for i, token := range phrase.tokens {
		if token == Placeholder {
			continue
		}
		if _, ok := wordSet[token]; !ok {
			return nil, fmt.Errorf("position %d (%s): %w", i, token, ErrWordNotInList)
		}
	}

	if phrase.NumMissing() > MaxPracticalMissing {
		log.Warnf(
			"%d words are missing, the search space counts up to %.3g "+
				"combinations and recovery is likely impractical",
			phrase.NumMissing(),
			math.Pow(float64(len(wordlist)), float64(phrase.NumMissing())),
		)
	}

	return &Generator{
		phrase:   phrase,
		wordlist: wordlist,
		odometer: make([]int, phrase.NumMissing()),
	}, nil
}

// MaxCombinations returns the upper bound of candidates the generator
// can visit, saturating at MaxUint64.
func (g *Generator) MaxCombinations() uint64 {
	total := uint64(1)
	for range g.phrase.missing {
		next := total * uint64(len(g.wordlist))
		if next/uint64(len(g.wordlist)) != total {
			return math.MaxUint64
		}
		total = next
	}
	return total
}

// Next returns the next checksum-valid candidate, or false once the
// space is exhausted. The returned slice is owned by the caller.
func (g *Generator) Next() ([]string, bool) {
	for !g.exhausted {
		candidate := make([]string, len(g.phrase.tokens))
		copy(candidate, g.phrase.tokens)
		for i, pos := range g.phrase.missing {
			candidate[pos] = g.wordlist[g.odometer[i]]
		}
		g.advance()

		if bip39.IsMnemonicValid(strings.Join(candidate, " ")) {
			return candidate, true
		}
	}
	return nil, false
}

// advance moves the odometer to the next wordlist assignment, the
// rightmost placeholder varies fastest.
func (g *Generator) advance() {
	if len(g.odometer) <= 0 {
		g.exhausted = true
		return
	}
	for i := len(g.odometer) - 1; i >= 0; i-- {
		g.odometer[i]++
		if g.odometer[i] < len(g.wordlist) {
			return
		}
		g.odometer[i] = 0
	}
	g.exhausted = true
}
