// Package display renders reconciliation reports and routine output to a terminal.
package display

import (
	"gfd/pkg/decision"
	"gfd/pkg/i18n"
)

// Display handles the visualization of reports and messages.
type Display interface {
	// Print adds a primary output message (e.g. table, info) to the display.
	Print(msg string)
	// Log adds a secondary message; only shown in verbose mode.
	Log(msg string)
	// RenderReport prints a reconciliation report.
	RenderReport(r *decision.Report, tr *i18n.Translator)
	// SetVerbose enables or disables verbose logging.
	SetVerbose(v bool)
	// Close cleans up any resources and ensures final output is rendered.
	Close()
}
