package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-velan/velan"
)

const barWidth = 40

// BarProgress redraws a single-line progress bar.
type BarProgress struct {
	w     io.Writer
	drawn bool
}

// NewBarProgress returns a bar drawing to w.
func NewBarProgress(w io.Writer) *BarProgress {
	return &BarProgress{w: w}
}

// Report redraws the bar at fraction with status appended.
func (b *BarProgress) Report(fraction float64, status string) {
	fraction = min(max(fraction, 0), 1)
	filled := int(fraction * barWidth)
	_, _ = fmt.Fprintf(b.w, "\r[%s%s] %5.1f%% %s",
		strings.Repeat("#", filled), strings.Repeat(" ", barWidth-filled), fraction*100, status)
	b.drawn = true
}

// Done terminates the bar line.
func (b *BarProgress) Done() {
	if b.drawn {
		_, _ = fmt.Fprintln(b.w)
		b.drawn = false
	}
}

// LogProgress reports progress as structured log entries.
type LogProgress struct {
	logger *zap.Logger
}

// NewLogProgress returns a reporter logging at Info level.
func NewLogProgress(logger *zap.Logger) *LogProgress {
	return &LogProgress{logger: logger}
}

// Report logs one progress entry.
func (p *LogProgress) Report(fraction float64, status string) {
	p.logger.Info("progress", zap.Float64("fraction", fraction), zap.String("status", status))
}

// Done is a no-op so LogProgress and BarProgress share a shape.
func (p *LogProgress) Done() {}

// Reporter is a progress sink that can be finalized.
type Reporter interface {
	velan.Progress
	Done()
}

// NewProgress draws a bar when f is a terminal and logs otherwise. A logger
// with debug output enabled also gets log entries, since its lines would
// break the bar apart.
func NewProgress(f *os.File, logger *zap.Logger) Reporter {
	tty := isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	return selectProgress(tty, f, logger)
}

func selectProgress(tty bool, w io.Writer, logger *zap.Logger) Reporter {
	if tty && !logger.Core().Enabled(zap.DebugLevel) {
		return NewBarProgress(w)
	}
	return NewLogProgress(logger)
}
