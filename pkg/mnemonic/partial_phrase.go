package mnemonic

import (
	"strings"
)

// Placeholder is the marker for a missing word in a partial phrase.
const Placeholder = "?"

var validPhraseLengths = map[int]struct{}{
	12: {}, 15: {}, 18: {}, 21: {}, 24: {},
}

// PartialPhrase is an ordered sequence of mnemonic tokens where some
// positions may be unknown. Unknown positions are marked with the
// Placeholder token.
type PartialPhrase struct {
	tokens  []string
	missing []int
}

// ParsePartialPhrase splits a whitespace separated phrase into a
// PartialPhrase. It fails with ErrInvalidPhraseLength if the token
// count is not a valid BIP39 mnemonic length.
func ParsePartialPhrase(phrase string) (*PartialPhrase, error) {
	tokens := strings.Fields(strings.ToLower(phrase))
	if len(tokens) <= 0 {
		return nil, ErrNullPhrase
	}
	if _, ok := validPhraseLengths[len(tokens)]; !ok {
		return nil, ErrInvalidPhraseLength
	}

	missing := make([]int, 0)
	for i, token := range tokens {
		if token == Placeholder {
			missing = append(missing, i)
		}
	}

	return &PartialPhrase{tokens: tokens, missing: missing}, nil
}

// Len returns the total number of tokens of the phrase.
func (p *PartialPhrase) Len() int {
	return len(p.tokens)
}

// NumMissing returns the number of placeholder positions.
func (p *PartialPhrase) NumMissing() int {
	return len(p.missing)
}

func (p *PartialPhrase) String() string {
	return strings.Join(p.tokens, " ")
}
