package httpx

import (
	"fmt"
	"io"
	"sync"
	"time"
)

const maxBodyLogSize = 1024

// DebugLogger traces requests and responses. All methods are safe on a
// nil receiver, so callers never need to guard the verbose path.
type DebugLogger struct {
	out io.Writer
	mu  sync.Mutex
}

func NewDebugLogger(out io.Writer) *DebugLogger {
	return &DebugLogger{out: out}
}

func (d *DebugLogger) LogRequest(method, url, body string) {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.out, "\n>>> %s %s\n", method, url)
	if body != "" {
		fmt.Fprintf(d.out, "  Body: %s\n", truncateBody([]byte(body)))
	}
}

func (d *DebugLogger) LogResponse(method, url string, status int, body []byte, duration time.Duration) {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.out, "<<< %s %s: %d (%s)\n", method, url, status, duration.Round(time.Millisecond))
	if len(body) > 0 {
		fmt.Fprintf(d.out, "  Body: %s\n", truncateBody(body))
	}
}

func (d *DebugLogger) LogError(method, url, errMsg string, duration time.Duration) {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.out, "!!! %s %s (%s)\n  %s\n", method, url, duration.Round(time.Millisecond), errMsg)
}

func truncateBody(body []byte) string {
	if len(body) <= maxBodyLogSize {
		return string(body)
	}
	return string(body[:maxBodyLogSize]) + fmt.Sprintf("... (truncated, %d bytes total)", len(body))
}
