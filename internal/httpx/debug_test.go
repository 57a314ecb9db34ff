package httpx

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestDebugLogger_NilSafe(t *testing.T) {
	var d *DebugLogger
	// Must not panic.
	d.LogRequest("GET", "http://x", "")
	d.LogResponse("GET", "http://x", 200, nil, time.Millisecond)
	d.LogError("GET", "http://x", "boom", time.Millisecond)
}

func TestDebugLogger_LogsRequestAndResponse(t *testing.T) {
	var buf bytes.Buffer
	d := NewDebugLogger(&buf)

	d.LogRequest("POST", "http://forge/agents/register", `{"name":"a"}`)
	d.LogResponse("POST", "http://forge/agents/register", 200, []byte(`{"id":"1"}`), 12*time.Millisecond)

	out := buf.String()
	if !strings.Contains(out, ">>> POST http://forge/agents/register") {
		t.Errorf("missing request line: %q", out)
	}
	if !strings.Contains(out, `{"name":"a"}`) {
		t.Errorf("missing request body: %q", out)
	}
	if !strings.Contains(out, "200") {
		t.Errorf("missing status: %q", out)
	}
}

func TestDebugLogger_TruncatesLargeBody(t *testing.T) {
	var buf bytes.Buffer
	d := NewDebugLogger(&buf)

	large := bytes.Repeat([]byte("x"), maxBodyLogSize+100)
	d.LogResponse("GET", "http://forge/feed", 200, large, time.Millisecond)

	if !strings.Contains(buf.String(), "truncated") {
		t.Error("expected truncation marker")
	}
}
