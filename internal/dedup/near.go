package dedup

import (
	"context"
	"runtime"
	"sync"

	"docket/internal/extract"
	"docket/internal/inventory"
	"docket/internal/similarity"
)

// Pair is an unordered near-duplicate pair at or above the threshold,
// canonicalized so A always carries the lexicographically smaller path.
type Pair struct {
	A     inventory.FileRecord
	B     inventory.FileRecord
	Score similarity.Score
}

// NearOptions tunes the near-duplicate search.
type NearOptions struct {
	// Threshold is the minimum combined similarity for a pair to be
	// reported.
	Threshold float64
	// Window bounds the lookahead within an extension bucket: record i is
	// compared against records i+1 through i+Window-1. Pairs further apart
	// are silently missed; that recall loss is the accepted price of
	// avoiding quadratic comparison on large buckets.
	Window int
	// DocumentExtensions restricts the search to document-like files.
	DocumentExtensions []string
	// MaxTextChars caps the extracted text fed into each fingerprint.
	MaxTextChars int
}

// FindNearDuplicates fingerprints document records and reports pairs whose
// combined similarity reaches the threshold. Exact duplicates (equal digests)
// are skipped; they belong to FindExactGroups.
func FindNearDuplicates(ctx context.Context, records []inventory.FileRecord, extractor extract.Extractor, opts NearOptions) ([]Pair, error) {
	docExts := make(map[string]struct{}, len(opts.DocumentExtensions))
	for _, ext := range opts.DocumentExtensions {
		docExts[ext] = struct{}{}
	}

	var docs []inventory.FileRecord
	for _, rec := range records {
		if _, ok := docExts[rec.Extension]; !ok {
			continue
		}
		if !rec.HasDigest() {
			continue
		}
		docs = append(docs, rec)
	}

	inputs, err := fingerprintAll(ctx, docs, extractor, opts.MaxTextChars)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string][]int)
	var bucketOrder []string
	for idx, rec := range docs {
		if _, seen := buckets[rec.Extension]; !seen {
			bucketOrder = append(bucketOrder, rec.Extension)
		}
		buckets[rec.Extension] = append(buckets[rec.Extension], idx)
	}

	var pairs []Pair
	seen := make(map[[2]string]struct{})
	for _, ext := range bucketOrder {
		bucket := buckets[ext]
		n := len(bucket)
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			limit := i + opts.Window - 1
			if limit > n-1 {
				limit = n - 1
			}
			for j := i + 1; j <= limit; j++ {
				a, b := docs[bucket[i]], docs[bucket[j]]
				if a.ContentDigest == b.ContentDigest {
					continue
				}
				score := similarity.Combined(inputs[bucket[i]], inputs[bucket[j]])
				if score.Combined < opts.Threshold {
					continue
				}
				pair := canonicalize(a, b, score)
				key := [2]string{pair.A.Path, pair.B.Path}
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				pairs = append(pairs, pair)
			}
		}
	}
	return pairs, nil
}

// fingerprintAll extracts text and computes fingerprints across a bounded
// worker pool; each record's result is independent of every other record.
func fingerprintAll(ctx context.Context, docs []inventory.FileRecord, extractor extract.Extractor, maxChars int) ([]similarity.Input, error) {
	inputs := make([]similarity.Input, len(docs))

	workerCount := runtime.GOMAXPROCS(0)
	if workerCount > len(docs) && len(docs) > 0 {
		workerCount = len(docs)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				rec := docs[idx]
				input := similarity.Input{
					Filename:  rec.Filename,
					SizeBytes: rec.SizeBytes,
				}
				if extractor != nil {
					if text := extractor.Text(rec.Path, maxChars); text != "" {
						if fp := similarity.Fingerprint(text); fp != 0 {
							input.Fingerprint = fp
							input.HasText = true
						}
					}
				}
				inputs[idx] = input
			}
		}()
	}

	var cancelErr error
dispatch:
	for idx := range docs {
		select {
		case <-ctx.Done():
			cancelErr = ctx.Err()
			break dispatch
		case jobs <- idx:
		}
	}
	close(jobs)
	wg.Wait()

	if cancelErr != nil {
		return nil, cancelErr
	}
	return inputs, nil
}

func canonicalize(a, b inventory.FileRecord, score similarity.Score) Pair {
	if a.Path > b.Path {
		a, b = b, a
	}
	return Pair{A: a, B: b, Score: score}
}
