package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"Cryptbook/internal/app"

	"github.com/gookit/color"
)

var _ app.ProgressReporter = (*Reporter)(nil)

var (
	styleError   = color.New(color.FgRed, color.OpBold)
	styleSuccess = color.New(color.FgGreen)
)

// Reporter draws job progress on a single terminal line that gets
// overwritten.
type Reporter struct {
	mu        sync.Mutex
	out       io.Writer
	status    string
	progress  float32
	info      string
	quiet     bool
	cancelled atomic.Bool
	lastLine  int // length of last printed line (for clearing)
}

// NewReporter creates a reporter writing to out.
// If quiet is true, only errors are printed.
func NewReporter(out io.Writer, quiet bool) *Reporter {
	return &Reporter{out: out, quiet: quiet}
}

func (r *Reporter) SetStatus(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = text
}

func (r *Reporter) SetProgress(fraction float32, info string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = fraction
	r.info = info
}

// SetCanCancel is a no-op; Ctrl+C always cancels through the context.
func (r *Reporter) SetCanCancel(bool) {}

// Update prints the current state.
func (r *Reporter) Update() {
	if r.quiet {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	const barWidth = 30
	filled := min(max(int(r.progress*barWidth), 0), barWidth)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	// [████████░░░░░░░░░░░░░░░░░░░░░░] 25.00% (ETA 00:00:03) | Fingerprinting report.pdf
	line := fmt.Sprintf("\r[%s] %s | %s", bar, r.info, r.status)
	if len(line) < r.lastLine {
		line += strings.Repeat(" ", r.lastLine-len(line))
	}
	r.lastLine = len(line)

	fmt.Fprint(r.out, line)
}

func (r *Reporter) IsCancelled() bool {
	return r.cancelled.Load()
}

// Cancel marks the operation as cancelled.
func (r *Reporter) Cancel() {
	r.cancelled.Store(true)
}

// Finish prints a newline to move past the progress line.
func (r *Reporter) Finish() {
	if !r.quiet && r.lastLine > 0 {
		fmt.Fprintln(r.out)
	}
}

// PrintError prints an error message, even in quiet mode.
func (r *Reporter) PrintError(format string, args ...any) {
	if !r.quiet && r.lastLine > 0 {
		fmt.Fprintln(r.out)
		r.lastLine = 0
	}
	fmt.Fprintln(r.out, styleError.Sprint("Error: ")+fmt.Sprintf(format, args...))
}

// PrintSuccess prints a success message.
func (r *Reporter) PrintSuccess(format string, args ...any) {
	if r.quiet {
		return
	}
	fmt.Fprintln(r.out, styleSuccess.Sprintf(format, args...))
}
