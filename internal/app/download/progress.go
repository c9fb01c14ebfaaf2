package download

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/deckgen/deckgen/internal/printer"
)

// progressWriter wraps an io.Writer to display download progress.
type progressWriter struct {
	dst          io.Writer
	statusWriter io.Writer
	total        int64
	written      int64
	mu           sync.Mutex
}

// newProgressWriter creates a new progress writer. dst receives the actual
// data, statusWriter receives progress output. If total is 0 or negative,
// only bytes written are shown (no percentage).
func newProgressWriter(dst io.Writer, statusWriter io.Writer, total int64) *progressWriter {
	return &progressWriter{
		dst:          dst,
		statusWriter: statusWriter,
		total:        total,
	}
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n, err := pw.dst.Write(p)

	pw.mu.Lock()
	pw.written += int64(n)
	pw.printProgress()
	pw.mu.Unlock()

	return n, err
}

// Finish prints the final progress line with a newline.
func (pw *progressWriter) Finish() {
	fmt.Fprintln(pw.statusWriter)
}

func (pw *progressWriter) printProgress() {
	if pw.total > 0 {
		pct := float64(pw.written) / float64(pw.total) * 100
		barWidth := 40
		filled := int(pct / 100 * float64(barWidth))
		if filled > barWidth {
			filled = barWidth
		}
		bar := strings.Repeat("=", filled) + strings.Repeat(" ", barWidth-filled)
		fmt.Fprintf(pw.statusWriter, "\r  [%s] %3.0f%% %s / %s", bar, pct, printer.FormatBytes(pw.written), printer.FormatBytes(pw.total))
	} else {
		fmt.Fprintf(pw.statusWriter, "\r  %s downloaded", printer.FormatBytes(pw.written))
	}
}
