package display

import (
	"fmt"
	"gfd/pkg/common"
	"gfd/pkg/decision"
	"gfd/pkg/i18n"
	"strings"
)

// RenderReport returns the textual screen for a report. It is a pure
// function of its inputs so the console and the interactive UI share it.
func RenderReport(r *decision.Report, tr *i18n.Translator, th *Theme) string {
	var sb strings.Builder
	sb.WriteString(th.Title.Render(tr.T("window_title")))
	sb.WriteString("\n")
	if r.Family != "" {
		fmt.Fprintf(&sb, "%s %s\n", th.Dim.Render(tr.T("os_family")+":"), r.Family)
	}
	sb.WriteString("\n")

	switch r.Outcome {
	case decision.NotInstalled:
		sb.WriteString(tr.T("no_install_message") + "\n")
		sb.WriteString(tr.T("recommended_version") + "\n")
		sb.WriteString(th.Bold.Render(r.Recommended.Name) + "\n\n")
		sb.WriteString(th.Cyan.Render(th.Arrow+" "+tr.T("install")) + "\n\n")
		sb.WriteString(renderAvailable(r.Available, tr, th))
	case decision.UpToDate:
		sb.WriteString(renderInstalled(r.Installed, tr, th))
		sb.WriteString(th.Green.Render("✔ "+tr.T("latest_version_installed")) + "\n")
	case decision.UpdateAvailable:
		sb.WriteString(renderInstalled(r.Installed, tr, th))
		sb.WriteString(th.Yellow.Render(th.Arrow+" "+tr.T("update_digital_signature")) + "\n\n")
		sb.WriteString(renderAvailable(r.Available, tr, th))
	default:
		sb.WriteString(th.Red.Render(tr.T("no_installers_found")) + "\n")
		if r.Reason != decision.ReasonNone {
			sb.WriteString(th.Dim.Render(tr.T("reason_"+string(r.Reason))) + "\n")
		}
	}
	return sb.String()
}

func renderInstalled(inst *common.Installer, tr *i18n.Translator, th *Theme) string {
	if inst == nil {
		return ""
	}
	return fmt.Sprintf("%s\n%s\nMD5: %s\n\n",
		tr.T("installed_version"), th.Bold.Render(inst.Name), inst.ChecksumOrNA())
}

func renderAvailable(list []common.Installer, tr *i18n.Translator, th *Theme) string {
	var sb strings.Builder
	sb.WriteString(th.Dim.Render(tr.T("available_installers")+":") + "\n")
	for i, inst := range list {
		box := th.BoxTree
		if i == len(list)-1 {
			box = th.BoxLast
		}
		fmt.Fprintf(&sb, "%s %s (MD5: %s)\n", box, inst.Name, inst.ChecksumOrNA())
	}
	return sb.String()
}

// RenderTable lays out a plain text table with padded columns.
func RenderTable(header []string, rows [][]string) string {
	if len(header) == 0 {
		return ""
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		var line strings.Builder
		for i, cell := range cells {
			if i < len(widths) {
				fmt.Fprintf(&line, "%-*s  ", widths[i], cell)
			}
		}
		sb.WriteString(strings.TrimRight(line.String(), " ") + "\n")
	}

	writeRow(header)
	totalWidth := 0
	for _, w := range widths {
		totalWidth += w + 2
	}
	sb.WriteString(strings.Repeat("-", totalWidth-2) + "\n")
	for _, row := range rows {
		writeRow(row)
	}
	return sb.String()
}
