package classify

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"docket/internal/extract"
	"docket/internal/inventory"
	"docket/internal/logging"
)

// FallbackRuleName labels results no rule matched.
const FallbackRuleName = "unclassified"

// FallbackTarget is the destination for unmatched files, relative to the
// practice root.
const FallbackTarget = "09_Inbox/01_Unsorted/"

// Result is the classification outcome for a single file.
type Result struct {
	Path        string
	Filename    string
	Extension   string
	SizeBytes   int64
	RuleName    string
	Kind        Kind
	Target      string
	Confidence  float64
	NeedsReview bool
}

var emailExtensions = map[string]bool{
	".eml": true,
	".msg": true,
}

// Options configure an Engine.
type Options struct {
	// ReviewThreshold marks results with lower confidence for manual review.
	ReviewThreshold float64
	// IdentifierScanChars bounds how much extracted text is mined for
	// client and matter identifiers.
	IdentifierScanChars int
	// MaxTextChars bounds text extraction per file.
	MaxTextChars int
	// Workers bounds plan-building concurrency. Zero means GOMAXPROCS.
	Workers int
}

// Engine evaluates an ordered rule set against inventory records.
type Engine struct {
	rules     []Rule
	extractor extract.Extractor
	opts      Options
	logger    *slog.Logger
}

// NewEngine builds an engine over a compiled rule set. A nil extractor
// disables content, metadata, and email body matching.
func NewEngine(rules []Rule, extractor extract.Extractor, opts Options, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Engine{rules: rules, extractor: extractor, opts: opts, logger: logger}
}

// Classify evaluates every rule against one record and returns the
// highest-confidence match. A strictly greater confidence displaces the
// current best, so the earliest rule wins ties. Files nothing matches fall
// back to the unsorted inbox with zero confidence.
func (e *Engine) Classify(record inventory.FileRecord, text string) Result {
	best := Result{
		Path:       record.Path,
		Filename:   record.Filename,
		Extension:  record.Extension,
		SizeBytes:  record.SizeBytes,
		RuleName:   FallbackRuleName,
		Target:     FallbackTarget,
		Confidence: 0,
	}
	matched := false
	for _, rule := range e.rules {
		if !ruleMatches(rule, record, text) {
			continue
		}
		if matched && rule.Confidence <= best.Confidence {
			continue
		}
		matched = true
		best.RuleName = rule.Name
		best.Kind = rule.Kind
		best.Confidence = rule.Confidence
		best.Target = e.resolveTarget(rule.Target, record, text)
	}
	best.NeedsReview = best.Confidence < e.opts.ReviewThreshold
	return best
}

// ruleMatches dispatches on the rule kind. Content and metadata rules need
// extracted text; without it they cannot match. Email rules match on the
// container format alone: every message file belongs in correspondence no
// matter what the body says, so their pattern is inert configuration.
func ruleMatches(rule Rule, record inventory.FileRecord, text string) bool {
	switch rule.Kind {
	case KindFilename:
		return rule.Pattern.MatchString(record.Filename)
	case KindExtension:
		return rule.Pattern.MatchString(record.Extension)
	case KindContent, KindMetadata:
		return text != "" && rule.Pattern.MatchString(text)
	case KindEmail:
		return emailExtensions[record.Extension]
	default:
		return false
	}
}

func (e *Engine) resolveTarget(tmpl Template, record inventory.FileRecord, text string) string {
	if !tmpl.HasPlaceholders() {
		return tmpl.Resolve(nil)
	}
	vars := ExtractIdentifiers(record.Filename, text, e.opts.IdentifierScanChars)
	return tmpl.Resolve(vars)
}

// Plan is an ordered set of classification results plus its run totals.
type Plan struct {
	Results     []Result
	Matched     int
	NeedsReview int
}

// BuildPlan classifies every record concurrently and returns results in
// record order. Text is extracted at most once per file.
func (e *Engine) BuildPlan(ctx context.Context, records []inventory.FileRecord) (*Plan, error) {
	results := make([]Result, len(records))
	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < e.opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				record := records[i]
				var text string
				if e.extractor != nil {
					text = e.extractor.Text(record.Path, e.opts.MaxTextChars)
				}
				results[i] = e.Classify(record, text)
			}
		}()
	}

	var cancelled error
feed:
	for i := range records {
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()
	if cancelled != nil {
		return nil, cancelled
	}

	plan := &Plan{Results: results}
	for i := range results {
		if results[i].RuleName != FallbackRuleName {
			plan.Matched++
		}
		if results[i].NeedsReview {
			plan.NeedsReview++
		}
	}
	e.logger.Info("classification plan built",
		logging.Int("files", len(results)),
		logging.Int("matched", plan.Matched),
		logging.Int("needs_review", plan.NeedsReview))
	return plan, nil
}

// TargetCounts summarizes a plan by destination directory, most files first.
func (p *Plan) TargetCounts() []TargetCount {
	counts := make(map[string]int)
	for i := range p.Results {
		counts[p.Results[i].Target]++
	}
	out := make([]TargetCount, 0, len(counts))
	for target, n := range counts {
		out = append(out, TargetCount{Target: target, Files: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Files != out[j].Files {
			return out[i].Files > out[j].Files
		}
		return out[i].Target < out[j].Target
	})
	return out
}

// TargetCount pairs a destination with how many files a plan routes there.
type TargetCount struct {
	Target string
	Files  int
}

// DestinationPath joins a practice root with a result target and the
// record's filename to form the file's final path.
func DestinationPath(root string, result Result, filename string) string {
	target := strings.TrimSuffix(result.Target, "/")
	return filepath.Join(root, filepath.FromSlash(target), filename)
}
