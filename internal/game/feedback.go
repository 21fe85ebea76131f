package game

import "github.com/robalobadob/wordle/apps/solver/internal/words"

// Evaluate scores guess against secret with the standard two-pass algorithm.
//
// Pass 1 marks exact matches Correct and counts the secret's unmatched letters.
// Pass 2 walks the remaining positions left to right: a letter still available
// in the count is WrongPosition (and consumed), otherwise Absent. Surplus
// duplicates in the guess therefore come out Absent.
func Evaluate(secret, guess words.Word) Pattern {
	var p Pattern
	var remaining LetterCounts

	for i := 0; i < wordLen; i++ {
		if guess[i] == secret[i] {
			p[i] = Correct
		} else {
			remaining.Add(secret[i])
		}
	}

	for i := 0; i < wordLen; i++ {
		if p[i] == Correct {
			continue
		}
		if remaining.Take(guess[i]) {
			p[i] = WrongPosition
		} else {
			p[i] = Absent
		}
	}
	return p
}
