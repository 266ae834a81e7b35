package similarity

import (
	"math/bits"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
)

// FingerprintBits is the width of the SimHash fingerprint.
const FingerprintBits = 64

// Fingerprint computes the 64-bit SimHash of text: each word token votes on
// every bit position according to its 64-bit hash, and the final bit is set
// iff the votes are positive. Empty or untokenizable text yields 0; callers
// must never compare two zero fingerprints as similar.
func Fingerprint(text string) uint64 {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return 0
	}

	var votes [FingerprintBits]int
	for _, token := range tokens {
		tokenHash := xxhash.Sum64String(token)
		for i := 0; i < FingerprintBits; i++ {
			if tokenHash&(1<<uint(i)) != 0 {
				votes[i]++
			} else {
				votes[i]--
			}
		}
	}

	var fingerprint uint64
	for i := 0; i < FingerprintBits; i++ {
		if votes[i] > 0 {
			fingerprint |= 1 << uint(i)
		}
	}
	return fingerprint
}

// HammingDistance counts differing bits between two fingerprints.
func HammingDistance(h1, h2 uint64) int {
	return bits.OnesCount64(h1 ^ h2)
}

// FingerprintSimilarity maps Hamming distance onto [0, 1]; identical
// fingerprints score 1.0.
func FingerprintSimilarity(h1, h2 uint64) float64 {
	return 1.0 - float64(HammingDistance(h1, h2))/float64(FingerprintBits)
}

// tokenize splits text into lower-cased word tokens (letters, digits,
// underscore), the same token class the original classifier patterns assume.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}
