// Package tui is the interactive front end. Checks run as bubbletea commands
// off the update loop; each result carries the sequence number of the request
// that produced it and stale results are dropped.
package tui

import (
	"context"
	"fmt"
	"gfd/pkg/decision"
	"gfd/pkg/display"
	"gfd/pkg/i18n"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// CheckFunc produces a fresh report.
type CheckFunc func(ctx context.Context) (*decision.Report, error)

// InstallFunc runs the installation routine for the recommended installer
// and returns what the routine printed.
type InstallFunc func(ctx context.Context, r *decision.Report) (string, error)

type checkDoneMsg struct {
	seq    uint64
	report *decision.Report
	err    error
}

type installDoneMsg struct {
	output string
	err    error
}

// Model is the bubbletea model.
// Mutable
type Model struct {
	ctx     context.Context
	check   CheckFunc
	install InstallFunc
	tr      *i18n.Translator
	theme   *display.Theme
	spinner spinner.Model

	seq        uint64
	loading    bool
	installing bool
	report     *decision.Report
	err        error
	notice     string
}

// New creates the model; the first check starts with Init.
func New(ctx context.Context, check CheckFunc, install InstallFunc, tr *i18n.Translator) Model {
	th := display.DefaultTheme()
	return Model{
		ctx:     ctx,
		check:   check,
		install: install,
		tr:      tr,
		theme:   th,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(th.Cyan)),
		seq:     1,
		loading: true,
	}
}

// Run starts the interactive program and blocks until it exits.
func Run(ctx context.Context, m Model) error {
	_, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runCheck(m.seq))
}

func (m Model) runCheck(seq uint64) tea.Cmd {
	return func() tea.Msg {
		r, err := m.check(m.ctx)
		return checkDoneMsg{seq: seq, report: r, err: err}
	}
}

func (m Model) runInstall(r *decision.Report) tea.Cmd {
	return func() tea.Msg {
		out, err := m.install(m.ctx, r)
		return installDoneMsg{output: out, err: err}
	}
}

// refresh starts a new check unless one is already in flight or an
// install is running.
func (m Model) refresh() (Model, tea.Cmd) {
	if m.loading || m.installing {
		return m, nil
	}
	return m.restart()
}

// restart starts a new check unconditionally. Any check still in flight
// becomes stale.
func (m Model) restart() (Model, tea.Cmd) {
	m.seq++
	m.loading = true
	m.err = nil
	return m, tea.Batch(m.spinner.Tick, m.runCheck(m.seq))
}

func (m Model) canInstall() bool {
	if m.loading || m.installing || m.install == nil || m.report == nil || m.report.Recommended == nil {
		return false
	}
	return m.report.Outcome == decision.NotInstalled || m.report.Outcome == decision.UpdateAvailable
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			m.notice = ""
			return m.refresh()
		case "i":
			if !m.canInstall() {
				return m, nil
			}
			m.installing = true
			return m, m.runInstall(m.report)
		}
		return m, nil

	case checkDoneMsg:
		if msg.seq != m.seq {
			// A newer request has been started since.
			return m, nil
		}
		m.loading = false
		m.report = msg.report
		m.err = msg.err
		return m, nil

	case installDoneMsg:
		m.installing = false
		if msg.err != nil {
			m.notice = msg.err.Error()
			return m, nil
		}
		m.notice = strings.TrimSpace(msg.output)
		if m.notice == "" {
			m.notice = m.tr.T("install_done")
		}
		// A check started before the install finished read the old state.
		return m.restart()

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	var body string
	switch {
	case m.loading:
		body = fmt.Sprintf("%s %s…", m.spinner.View(), m.tr.T("loading_installers"))
	case m.err != nil:
		body = m.theme.Red.Render("Error: " + m.err.Error())
	case m.report != nil:
		body = strings.TrimRight(display.RenderReport(m.report, m.tr, m.theme), "\n")
	}

	if m.notice != "" {
		body += "\n\n" + m.theme.Dim.Render(m.notice)
	}

	help := m.tr.T("help_keys")
	if m.loading || m.installing {
		// refresh is disabled until the running check or install completes
		help = m.theme.Dim.Render(help)
	}
	return m.theme.Card.Render(body) + "\n" + help + "\n"
}
