package game

import "errors"

var (
	// ErrInvalidWord is returned by NewRound for empty or whitespace-only words.
	ErrInvalidWord = errors.New("game: invalid word")
	// ErrInvalidLetter is returned by GuessLetter for input that is not exactly one character.
	ErrInvalidLetter = errors.New("game: invalid letter")
)
