package game

import "github.com/robalobadob/wordle/apps/solver/internal/words"

// IsAdmissible applies the hard-mode rule to guess.
//
// A guess is rejected when it does not repeat a letter that was Correct in the
// previous guess at the same position, or when it leaves out a letter whose
// best status is WrongPosition. Exact counts and ruled-out positions are not
// checked here; hard mode only enforces the hints a player can see.
func IsAdmissible(guess words.Word, last *GuessRecord, alpha *Alphabet) bool {
	if last != nil {
		for i := 0; i < wordLen; i++ {
			if last.Pattern[i] == Correct && guess[i] != last.Guess[i] {
				return false
			}
		}
	}
	if alpha == nil {
		return true
	}
	counts := CountLetters(guess)
	for _, l := range alpha.MustContain() {
		if counts.Count(l) == 0 {
			return false
		}
	}
	return true
}
