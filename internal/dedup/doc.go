// Package dedup partitions the manifest into exact-duplicate groups and
// finds near-duplicate pairs for human review.
//
// Exact grouping keys on the content digest; each group elects one keeper
// deterministically (most recently modified, then shortest path) so repeated
// runs over permuted input agree. Near-duplicate search compares document
// files within same-extension buckets under a bounded comparison window, an
// explicit recall/cost tradeoff carried over from the original pipeline.
package dedup
