// Package tui is the interactive terminal front end: a pot that cracks and
// leaks where spending runs past its threshold, with slider-style threshold
// editing per category.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dookkeobi/leakpot/internal/budget"
	"github.com/dookkeobi/leakpot/internal/leak"
	"github.com/dookkeobi/leakpot/internal/model"
	"github.com/dookkeobi/leakpot/internal/mutation"
	"github.com/dookkeobi/leakpot/internal/tui/themes"
	"github.com/dookkeobi/leakpot/internal/tui/viewmodel"
)

// BudgetService loads the budget data shown in the pot view.
type BudgetService interface {
	GetMonthlyBudgets(ctx context.Context, period model.Period) ([]model.Category, error)
	GetYearlyBudgets(ctx context.Context) ([]model.MonthSummary, error)
}

// Config holds the configuration for the pot TUI.
type Config struct {
	Service BudgetService
	Updater mutation.BudgetUpdater
	Theme   string
	Period  model.Period
	Window  time.Duration
}

// Model holds the main TUI state.
type Model struct {
	editor    *budget.Editor
	service   BudgetService
	updater   mutation.BudgetUpdater
	ctx       context.Context
	lastError error
	yearIndex map[model.Period]bool
	status    string
	theme     themes.Theme
	keymap    KeyMap
	help      help.Model
	config    Config
	period    model.Period
	cursor    int
	width     int
	height    int
	loading   bool
	showHelp  bool
	quitting  bool
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, cfg Config) Model {
	return Model{
		editor:    budget.NewEditor(ctx, cfg.Updater, cfg.Period, cfg.Window),
		service:   cfg.Service,
		updater:   cfg.Updater,
		ctx:       ctx,
		yearIndex: make(map[model.Period]bool),
		theme:     themes.GetTheme(cfg.Theme),
		keymap:    DefaultKeyMap(),
		help:      help.New(),
		config:    cfg,
		period:    cfg.Period,
		loading:   true,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.loadBudgets(),
		m.loadYear(),
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case budgetsLoadedMsg:
		// A stale fetch for a month the user already left is ignored.
		if msg.period != m.period {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.lastError = msg.err
			m.status = "Couldn't load budgets; showing defaults"
			return m, nil
		}
		m.lastError = nil
		m.status = ""
		m.editor.SetBaseline(msg.categories)
		m.clampCursor()
		return m, nil

	case yearLoadedMsg:
		if msg.err != nil {
			return m, nil
		}
		m.yearIndex = leak.BuildYearIndex(msg.summaries)
		return m, nil

	case commitResultMsg:
		if msg.err != nil {
			m.status = "Save failed; threshold reverted"
			return m, nil
		}
		m.status = "Saved"
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keymap

	switch {
	case key.Matches(msg, k.ForceQuit), key.Matches(msg, k.Quit):
		m.quitting = true
		m.editor.Close()
		return m, tea.Quit

	case key.Matches(msg, k.ToggleHelp):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, k.ClearScreen):
		return m, tea.ClearScreen

	case key.Matches(msg, k.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, k.Down):
		if m.cursor < len(m.editor.Categories())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, k.Home):
		m.cursor = 0
		return m, nil

	case key.Matches(msg, k.End):
		if n := len(m.editor.Categories()); n > 0 {
			m.cursor = n - 1
		}
		return m, nil

	case key.Matches(msg, k.Decrease):
		m.adjust(-viewmodel.ThresholdStep)
		return m, nil

	case key.Matches(msg, k.Increase):
		m.adjust(viewmodel.ThresholdStep)
		return m, nil

	case key.Matches(msg, k.FastDecrease):
		m.adjust(-5 * viewmodel.ThresholdStep)
		return m, nil

	case key.Matches(msg, k.FastIncrease):
		m.adjust(5 * viewmodel.ThresholdStep)
		return m, nil

	case key.Matches(msg, k.Commit):
		if cat, ok := m.selected(); ok {
			return m, m.flush(cat.ID)
		}
		return m, nil

	case key.Matches(msg, k.PrevMonth):
		return m.changeMonth(-1)

	case key.Matches(msg, k.NextMonth):
		return m.changeMonth(1)

	case key.Matches(msg, k.Refresh):
		m.loading = true
		return m, m.loadBudgets()
	}

	return m, nil
}

// adjust moves the selected category's threshold and restarts its commit
// window. The edit is visible immediately through the pending overlay.
func (m *Model) adjust(delta int64) {
	cat, ok := m.selected()
	if !ok {
		return
	}

	value := cat.Threshold + delta
	if value < 0 {
		value = 0
	}
	m.editor.OnThresholdChange(cat.ID, value)
}

func (m Model) selected() (model.Category, bool) {
	categories := m.editor.Categories()
	if len(categories) == 0 || m.cursor >= len(categories) {
		return model.Category{}, false
	}
	return categories[m.cursor], true
}

func (m *Model) clampCursor() {
	if n := len(m.editor.Categories()); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	}
}

func (m Model) changeMonth(delta int) (tea.Model, tea.Cmd) {
	next := m.period
	next.Month += delta
	if next.Month < 1 {
		next.Month = 12
		next.Year--
	} else if next.Month > 12 {
		next.Month = 1
		next.Year++
	}

	// Each month gets its own editor; the old one stops scheduling commits
	// and in-flight requests settle through the staleness guard.
	m.editor.Close()
	m.editor = budget.NewEditor(m.ctx, m.updater, next, m.config.Window)
	m.period = next
	m.cursor = 0
	m.loading = true
	m.status = ""
	return m, m.loadBudgets()
}

func (m Model) loadBudgets() tea.Cmd {
	period := m.period
	return func() tea.Msg {
		categories, err := m.service.GetMonthlyBudgets(m.ctx, period)
		return budgetsLoadedMsg{categories: categories, period: period, err: err}
	}
}

func (m Model) loadYear() tea.Cmd {
	return func() tea.Msg {
		summaries, err := m.service.GetYearlyBudgets(m.ctx)
		return yearLoadedMsg{summaries: summaries, err: err}
	}
}

func (m Model) flush(id int64) tea.Cmd {
	return func() tea.Msg {
		return commitResultMsg{id: id, err: m.editor.Flush(id)}
	}
}
