// Package similarity computes content fingerprints and pairwise similarity
// scores between file records.
//
// Content similarity uses a 64-bit SimHash over word tokens so near-identical
// documents land within a small Hamming distance. Filename similarity is a
// normalized edit-distance ratio, size similarity a relative difference, and
// the combined score a fixed 0.50/0.30/0.20 weighting of the three. All
// scores are symmetric and lie in [0, 1].
package similarity
