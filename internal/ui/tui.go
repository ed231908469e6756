// Package ui provides an optional terminal dashboard.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ndokic/tempo/internal/model"
	"github.com/ndokic/tempo/internal/tracker"
)

// RunTUI starts the dashboard over the given tracker service.
func RunTUI(ctx context.Context, svc *tracker.Service) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	m := newTUIModel(svc)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type tuiTab int

const (
	tabTasks tuiTab = iota
	tabHabits
	tabGoals
)

type tuiModel struct {
	svc          *tracker.Service
	tab          tuiTab
	data         *tuiData
	showHelp     bool
	tickInterval time.Duration
}

type goalRow struct {
	goal     model.Goal
	progress tracker.GoalProgress
}

type habitRow struct {
	habit  model.Habit
	streak int
}

type tuiData struct {
	tasks   []model.Task
	habits  []habitRow
	goals   []goalRow
	done    int
	pending int
}

type tickMsg time.Time

func newTUIModel(svc *tracker.Service) *tuiModel {
	return &tuiModel{
		svc:          svc,
		tab:          tabTasks,
		tickInterval: time.Second,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
			return m, nil
		case "h", "?":
			m.showHelp = !m.showHelp
			return m, nil
		case "1":
			m.tab = tabTasks
			return m, nil
		case "2":
			m.tab = tabHabits
			return m, nil
		case "3":
			m.tab = tabGoals
			return m, nil
		}
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}
	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	if m.data == nil {
		b.WriteString("Loading...\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	writeOverview(&b, m.data)

	switch m.tab {
	case tabTasks:
		writeTasks(&b, m.data.tasks)
	case tabHabits:
		writeHabits(&b, m.data.habits)
	case tabGoals:
		writeGoals(&b, m.data.goals)
	}

	writeFooter(&b, m.tickInterval)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *tuiModel) refresh() {
	data := &tuiData{tasks: m.svc.Tasks()}

	for _, t := range data.tasks {
		if t.Completed {
			data.done++
		} else {
			data.pending++
		}
	}

	for _, h := range m.svc.Habits() {
		count, _ := m.svc.Streak(h.ID)
		data.habits = append(data.habits, habitRow{habit: h, streak: count})
	}

	for _, g := range m.svc.Goals() {
		data.goals = append(data.goals, goalRow{goal: g, progress: m.svc.Progress(g.ID)})
	}

	// Pending first, then by priority order within each half.
	rank := map[model.Priority]int{
		model.PriorityNow:   0,
		model.PriorityNext:  1,
		model.PriorityLater: 2,
	}
	sort.SliceStable(data.tasks, func(i, j int) bool {
		if data.tasks[i].Completed != data.tasks[j].Completed {
			return !data.tasks[i].Completed
		}
		ri, ok := rank[data.tasks[i].Priority]
		if !ok {
			ri = 3
		}
		rj, ok := rank[data.tasks[j].Priority]
		if !ok {
			rj = 3
		}
		return ri < rj
	})

	m.data = data
}

func writeTitle(b *strings.Builder) {
	title := "Tempo Dashboard"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeOverview(b *strings.Builder, data *tuiData) {
	b.WriteString(fmt.Sprintf("  Pending: %d  Done: %d  Habits: %d  Goals: %d\n\n",
		data.pending, data.done, len(data.habits), len(data.goals)))
}

func writeTasks(b *strings.Builder, tasks []model.Task) {
	b.WriteString("Tasks\n\n")
	if len(tasks) == 0 {
		b.WriteString("  No tasks yet.\n\n")
		return
	}
	shown := tasks
	if len(shown) > 15 {
		shown = shown[:15]
	}
	for _, t := range shown {
		b.WriteString(formatTask(&t))
		b.WriteString("\n")
	}
	if len(tasks) > len(shown) {
		b.WriteString(fmt.Sprintf("  ... and %d more\n", len(tasks)-len(shown)))
	}
	b.WriteString("\n")
}

func writeHabits(b *strings.Builder, habits []habitRow) {
	b.WriteString("Habits\n\n")
	if len(habits) == 0 {
		b.WriteString("  No habits yet.\n\n")
		return
	}
	today := model.DateOf(time.Now())
	for _, row := range habits {
		icon := " "
		if row.habit.CheckedInOn(today) {
			icon = "x"
		}
		b.WriteString(fmt.Sprintf("  %s [%d] %s (%s, streak %d)\n",
			icon, row.habit.ID, row.habit.Title, row.habit.Frequency, row.streak))
	}
	b.WriteString("\n")
}

func writeGoals(b *strings.Builder, goals []goalRow) {
	b.WriteString("Goals\n\n")
	if len(goals) == 0 {
		b.WriteString("  No goals yet.\n\n")
		return
	}
	for _, row := range goals {
		b.WriteString(fmt.Sprintf("  [%d] %s: %d/%d tasks (%.0f%%)\n",
			row.goal.ID, row.goal.Title,
			row.progress.Completed, row.progress.Total, row.progress.Percentage))
	}
	b.WriteString("\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Refresh data\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  1            Tasks tab\n")
	b.WriteString("  2            Habits tab\n")
	b.WriteString("  3            Goals tab\n\n")
}

func writeFooter(b *strings.Builder, interval time.Duration) {
	b.WriteString(fmt.Sprintf("Press h for help | q to quit | Refreshing every %s\n", interval))
}

func formatTask(t *model.Task) string {
	icon := " "
	if t.Completed {
		icon = "x"
	}
	line := fmt.Sprintf("  %s [%d] (%s) %s", icon, t.ID, t.Priority, t.Title)
	if t.DueDate != "" && !t.Completed {
		line += " due " + t.DueDate
	}
	return line
}

// IsTTY returns true if the writer is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, _ := f.Stat()
	return (info.Mode() & os.ModeCharDevice) != 0
}
