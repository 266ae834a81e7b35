package similarity

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/unicode/norm"
)

// Fixed weights for the combined score.
const (
	WeightContent  = 0.50
	WeightFilename = 0.30
	WeightSize     = 0.20
)

// Input carries the per-record attributes similarity scoring needs.
type Input struct {
	Filename    string
	SizeBytes   int64
	Fingerprint uint64
	// HasText records whether source text was available when the
	// fingerprint was computed. Two empty documents must not look alike.
	HasText bool
}

// Score is the combined similarity with its per-component breakdown.
type Score struct {
	Content  float64
	Filename float64
	Size     float64
	Combined float64
}

// FilenameSimilarity is a normalized edit-distance ratio over lower-cased,
// NFC-normalized names: 1 - distance/max(len). Two empty names score 1.0.
func FilenameSimilarity(name1, name2 string) float64 {
	a := norm.NFC.String(strings.ToLower(name1))
	b := norm.NFC.String(strings.ToLower(name2))

	lenA := len([]rune(a))
	lenB := len([]rune(b))
	longest := lenA
	if lenB > longest {
		longest = lenB
	}
	if longest == 0 {
		return 1.0
	}

	distance := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(distance)/float64(longest)
}

// SizeSimilarity compares byte sizes on [0, 1]: equal sizes score 1.0, a
// zero size against a non-zero one scores 0.0.
func SizeSimilarity(size1, size2 int64) float64 {
	if size1 == 0 && size2 == 0 {
		return 1.0
	}
	larger := size1
	if size2 > larger {
		larger = size2
	}
	if larger <= 0 {
		return 0.0
	}
	diff := size1 - size2
	if diff < 0 {
		diff = -diff
	}
	return 1.0 - float64(diff)/float64(larger)
}

// Combined computes the weighted similarity of two records. The content term
// drops to zero unless both sides had extractable text.
func Combined(a, b Input) Score {
	score := Score{
		Filename: FilenameSimilarity(a.Filename, b.Filename),
		Size:     SizeSimilarity(a.SizeBytes, b.SizeBytes),
	}
	if a.HasText && b.HasText {
		score.Content = FingerprintSimilarity(a.Fingerprint, b.Fingerprint)
	}
	score.Combined = WeightContent*score.Content +
		WeightFilename*score.Filename +
		WeightSize*score.Size
	return score
}
