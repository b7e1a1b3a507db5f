package display

import (
	"fmt"
	"gfd/pkg/decision"
	"gfd/pkg/i18n"
	"io"
	"os"
	"sync"
)

// consoleDisplay handles terminal output.
// Mutable
type consoleDisplay struct {
	out     io.Writer
	theme   *Theme
	verbose bool
	mu      sync.Mutex
}

// NewConsole creates a Display that writes to standard output.
func NewConsole() Display {
	return NewWriterDisplay(os.Stdout)
}

// NewWriterDisplay creates a Display that writes to the provided io.Writer.
func NewWriterDisplay(w io.Writer) Display {
	return &consoleDisplay{
		out:   w,
		theme: DefaultTheme(),
	}
}

// Print writes a message directly to the output writer.
func (d *consoleDisplay) Print(msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprint(d.out, msg)
}

func (d *consoleDisplay) Log(msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.verbose {
		fmt.Fprintln(d.out, d.theme.Dim.Render(msg))
	}
}

func (d *consoleDisplay) RenderReport(r *decision.Report, tr *i18n.Translator) {
	if r == nil {
		return
	}
	d.Print(d.theme.Card.Render(RenderReport(r, tr, d.theme)) + "\n")
}

func (d *consoleDisplay) SetVerbose(v bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.verbose = v
}

func (d *consoleDisplay) Close() {}
