// Package progress prints the live run narration.
package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Printer writes the run's step-by-step narration. Quiet mode drops
// everything; the final summary is rendered elsewhere.
type Printer struct {
	out   io.Writer
	quiet bool
	mu    sync.Mutex
}

func New(out io.Writer, quiet bool) *Printer {
	return &Printer{out: out, quiet: quiet}
}

// Header prints a banner for a step or step family.
func (p *Printer) Header(msg string) {
	p.print(fmt.Sprintf("\n%s\n  %s\n%s\n", rule(), msg, rule()))
}

func (p *Printer) Stepf(format string, args ...any) {
	p.print(fmt.Sprintf("\n>> "+format+"\n", args...))
}

func (p *Printer) OKf(format string, args ...any) {
	p.print(fmt.Sprintf("   [OK] "+format+"\n", args...))
}

func (p *Printer) Errorf(format string, args ...any) {
	p.print(fmt.Sprintf("   [ERROR] "+format+"\n", args...))
}

func (p *Printer) Infof(format string, args ...any) {
	p.print(fmt.Sprintf("   [INFO] "+format+"\n", args...))
}

func (p *Printer) Printf(format string, args ...any) {
	p.print(fmt.Sprintf(format+"\n", args...))
}

func (p *Printer) print(s string) {
	if p == nil || p.quiet {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprint(p.out, s)
}

func rule() string { return strings.Repeat("=", 60) }
