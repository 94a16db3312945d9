package strength

import (
	"github.com/Picocrypt/zxcvbn-go"
)

// Report combines the additive score with the zxcvbn guessability estimate.
// Guesses is advisory; Score and Label only depend on PasswordScore.
type Report struct {
	Score   int
	Label   Label
	Guesses int     // zxcvbn score 0-4
	Entropy float64 // bits
}

// Estimate builds a Report for p. userInputs are words zxcvbn should treat
// as known to an attacker, such as the file name.
func Estimate(p string, userInputs ...string) Report {
	score := PasswordScore(p)
	r := Report{Score: score, Label: LabelFor(score)}
	if p == "" {
		return r
	}
	m := zxcvbn.PasswordStrength(p, userInputs)
	r.Guesses = m.Score
	r.Entropy = m.Entropy
	return r
}

// EncryptionReport is the encryption counterpart of Report.
type EncryptionReport struct {
	Rounds     int
	Algorithms []string
	Score      int
	Label      Label
}

// EstimateEncryption resolves the round count the same way the backend
// does and scores the result.
func EstimateEncryption(code string, manualRounds int, algorithms []string) EncryptionReport {
	rounds := ResolveRounds(code, manualRounds)
	score := EncryptionScore(rounds, algorithms)
	return EncryptionReport{
		Rounds:     rounds,
		Algorithms: algorithms,
		Score:      score,
		Label:      LabelFor(score),
	}
}
