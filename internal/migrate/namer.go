package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"docket/internal/pipeline"
)

// maxCollisionSuffix bounds the numbered-suffix search per destination.
const maxCollisionSuffix = 999

// namer hands out collision-free destination paths. A path is taken if it
// already exists on disk or has been claimed earlier in the same run, so
// two plan entries aiming at the same destination never overwrite each
// other even before the first transfer completes.
type namer struct {
	mu      sync.Mutex
	claimed map[string]bool
}

func newNamer() *namer {
	return &namer{claimed: make(map[string]bool)}
}

// Claim reserves and returns a free variant of path. Collisions get a
// numbered suffix before the extension: report.pdf, report_001.pdf,
// report_002.pdf.
func (n *namer) Claim(path string) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.free(path) {
		n.claimed[path] = true
		return path, nil
	}
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for i := 1; i <= maxCollisionSuffix; i++ {
		candidate := fmt.Sprintf("%s_%03d%s", stem, i, ext)
		if n.free(candidate) {
			n.claimed[candidate] = true
			return candidate, nil
		}
	}
	return "", pipeline.Wrap(pipeline.ErrValidation, "migrate", "claim",
		fmt.Sprintf("no free destination for %s after %d attempts", path, maxCollisionSuffix), nil)
}

func (n *namer) free(path string) bool {
	if n.claimed[path] {
		return false
	}
	_, err := os.Lstat(path)
	return os.IsNotExist(err)
}
