package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Trail is an append-only, timestamped log file recording index and
// export actions. Writes are best effort: a trail that cannot be
// written never surfaces an error to the caller.
type Trail struct {
	mu   sync.Mutex
	path string
}

// NewTrail returns a trail writing to path. The file and its parent
// directories are created on first write.
func NewTrail(path string) *Trail {
	return &Trail{path: path}
}

// Append writes one timestamped line to the trail. Failures are
// swallowed; the trail is a side channel, not a source of truth.
func (t *Trail) Append(format string, args ...any) {
	if t == nil || t.path == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(t.path), 0o700); err != nil {
		return
	}
	f, err := os.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return
	}
	defer f.Close()

	stamp := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(f, "[%s] %s\n", stamp, fmt.Sprintf(format, args...))
}
