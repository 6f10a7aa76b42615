package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bnema/offline-cache/internal/application"
	"github.com/bnema/offline-cache/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type syncFinishedMsg struct {
	report application.SyncReport
	err    error
}

// syncProgressModel shows which kinds are being synced and keeps the report
// once the service returns.
type syncProgressModel struct {
	spinner spinner.Model
	mode    application.SyncMode
	kinds   []domain.Kind
	run     tea.Cmd
	report  application.SyncReport
	err     error
	done    bool
}

func newSyncProgressModel(mode application.SyncMode, kinds []domain.Kind, run tea.Cmd) syncProgressModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return syncProgressModel{spinner: s, mode: mode, kinds: kinds, run: run}
}

func (m syncProgressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m syncProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case syncFinishedMsg:
		m.done = true
		m.report = msg.report
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m syncProgressModel) View() string {
	if m.done {
		return ""
	}

	names := make([]string, 0, len(m.kinds))
	for _, kind := range m.kinds {
		names = append(names, string(kind))
	}

	return fmt.Sprintf("%s %s %s...", m.spinner.View(), syncVerb(m.mode), strings.Join(names, ", "))
}

// Summary renders the per-kind counters of a finished run.
func (m syncProgressModel) Summary() string {
	var b strings.Builder
	for _, kind := range m.report.Kinds {
		line := fmt.Sprintf("%-9s", string(kind.Kind)+":")
		if m.mode != application.SyncPullOnly {
			line += fmt.Sprintf(" pushed %d/%d (failed %d)", kind.Push.Pushed, kind.Push.Attempted, kind.Push.Failed)
		}
		if m.mode == application.SyncAll {
			line += ","
		}
		if m.mode != application.SyncPushOnly {
			line += fmt.Sprintf(" pulled %d (applied %d, kept local %d)", kind.Pull.Fetched, kind.Pull.Applied, kind.Pull.Skipped)
		}
		b.WriteString(line + "\n")
	}

	switch {
	case m.report.Failed() > 0:
		fmt.Fprintf(&b, "%d records still pending, retry with `oc sync`\n", m.report.Failed())
	case !m.report.CompletedAt.IsZero():
		fmt.Fprintf(&b, "synced at %s\n", m.report.CompletedAt.Format(time.RFC3339))
	}

	return b.String()
}

func syncVerb(mode application.SyncMode) string {
	switch mode {
	case application.SyncPushOnly:
		return "Pushing"
	case application.SyncPullOnly:
		return "Pulling"
	default:
		return "Syncing"
	}
}

// runSyncProgress drives the sync service behind a spinner on output.
func runSyncProgress(ctx context.Context, output io.Writer, service *application.SyncService, mode application.SyncMode) (syncProgressModel, error) {
	run := func() tea.Msg {
		report, err := service.Sync(ctx, mode)
		return syncFinishedMsg{report: report, err: err}
	}

	p := tea.NewProgram(
		newSyncProgressModel(mode, service.Kinds(), run),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return syncProgressModel{}, err
	}

	result, ok := finalModel.(syncProgressModel)
	if !ok {
		return syncProgressModel{}, fmt.Errorf("unexpected final sync model type %T", finalModel)
	}

	return result, result.err
}
