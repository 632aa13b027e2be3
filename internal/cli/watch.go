package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/consonum/timetrack/internal/cli/formatter"
	"github.com/consonum/timetrack/internal/domain"
	"github.com/consonum/timetrack/internal/service"
	"github.com/spf13/cobra"
)

func newTimerWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the active timer tick live",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			timer, err := app.Timers.Current(ctx, app.UserID)
			if err != nil {
				if service.IsNotFound(err) {
					fmt.Println(formatter.Dim("No active timer."))
					return nil
				}
				return err
			}

			m := newWatchModel(app, timer)
			_, err = tea.NewProgram(m).Run()
			return err
		},
	}
}

type watchTickMsg time.Time

func watchTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

type watchModel struct {
	app      *App
	spinner  spinner.Model
	timer    *domain.ActiveTimer
	project  *domain.Project
	category *domain.Category
	now      time.Time
	gone     bool
}

func newWatchModel(app *App, timer *domain.ActiveTimer) watchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StyleHeader

	m := watchModel{
		app:     app,
		spinner: sp,
		timer:   timer,
		now:     time.Now().UTC(),
	}

	ctx := context.Background()
	if p, err := app.Projects.GetProject(ctx, timer.ProjectID); err == nil {
		m.project = p
	}
	if c, err := resolveCategory(ctx, app, timer.ProjectID, timer.CategoryID); err == nil {
		m.category = c
	}
	return m
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, watchTick())
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}

	case watchTickMsg:
		m.now = time.Now().UTC()
		// Re-read so a pause, resume or stop from another shell shows up.
		timer, err := m.app.Timers.Current(context.Background(), m.app.UserID)
		if err != nil {
			m.gone = true
			return m, tea.Quit
		}
		m.timer = timer
		return m, watchTick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m watchModel) View() string {
	if m.gone {
		return formatter.Dim("Timer stopped.") + "\n"
	}

	status := formatter.FormatTimerStatus(formatter.TimerStatusData{
		Timer:    m.timer,
		Project:  m.project,
		Category: m.category,
		Now:      m.now,
	})
	return fmt.Sprintf("%s %s\n%s\n", m.spinner.View(), formatter.Dim("watching — q to quit"), status)
}
