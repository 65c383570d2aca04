package mnemonic

import (
	"errors"
)

var (
	// ErrNullPhrase ...
	ErrNullPhrase = errors.New("partial phrase must not be null")
	// ErrInvalidPhraseLength ...
	ErrInvalidPhraseLength = errors.New(
		"phrase length must be one of 12, 15, 18, 21 or 24 words",
	)
	// ErrNullWordlist ...
	ErrNullWordlist = errors.New("wordlist must not be null")
	// ErrWordNotInList ...
	ErrWordNotInList = errors.New("word is not included in the wordlist")
)
