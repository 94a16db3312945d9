package strength

import (
	"crypto/md5"

	"github.com/samber/lo"
)

// Round limits accepted by the encryption backend.
const (
	MinRounds     = 1
	MaxRounds     = 10
	DefaultRounds = 3
)

// SupportedAlgorithms are the compression algorithms a round can use.
var SupportedAlgorithms = []string{"zip", "tar", "gzip", "tar.gz", "tar.bz2"}

// EncryptionScore rates a configuration as rounds*10 plus 5 per distinct
// algorithm, capped at MaxScore. Negative rounds count as zero.
func EncryptionScore(rounds int, algorithms []string) int {
	distinct := lo.Uniq(lo.Compact(algorithms))
	score := max(rounds, 0)*10 + len(distinct)*5
	return min(score, MaxScore)
}

// ClampRounds limits a manually chosen round count to [MinRounds, MaxRounds].
func ClampRounds(n int) int {
	return min(max(n, MinRounds), MaxRounds)
}

// RoundsFromCode derives a round count in [1, 10] from a user's specific
// code: the first byte of its MD5 digest modulo 10, plus one.
func RoundsFromCode(code string) int {
	sum := md5.Sum([]byte(code))
	return int(sum[0])%10 + 1
}

// ResolveRounds picks the round count the backend will use: the code wins
// when given, otherwise the manual value is clamped.
func ResolveRounds(code string, manual int) int {
	if code != "" {
		return RoundsFromCode(code)
	}
	return ClampRounds(manual)
}

// IsSupported reports whether alg is one of SupportedAlgorithms.
func IsSupported(alg string) bool {
	return lo.Contains(SupportedAlgorithms, alg)
}
