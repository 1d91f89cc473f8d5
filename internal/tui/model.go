// Package tui is the interactive dashboard: a daily checklist, a month
// heatmap, and the ranking reports, over the same engine the CLI uses.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"cadence/internal/calendar"
	"cadence/internal/constants"
	"cadence/internal/logger"
	"cadence/internal/models"
	"cadence/internal/schedule"
	"cadence/internal/storage"
	"cadence/internal/tracker"
	"cadence/internal/utils"
)

type tab int

const (
	tabToday tab = iota
	tabMonth
	tabStats
	tabCount
)

type Model struct {
	store    storage.Provider
	settings models.Settings
	habits   []models.Habit
	track    *tracker.Store

	tab         tab
	cursor      int
	monthAnchor time.Time
	now         time.Time

	keys     KeyMap
	help     help.Model
	err      error
	quitting bool
	width    int
	height   int
}

func NewModel(store storage.Provider) Model {
	m := Model{
		store: store,
		keys:  DefaultKeyMap(),
		help:  help.New(),
	}
	m.reload()
	m.monthAnchor = m.now
	return m
}

// reload re-reads habits, settings, and completion records from the store.
func (m *Model) reload() {
	settings, err := m.store.GetSettings()
	if err != nil {
		settings = models.Settings{
			WeekStartDay: constants.DefaultWeekStartDay,
			Timezone:     constants.DefaultTimezone,
		}
	}
	m.settings = settings

	now, err := utils.NowFromSettings(settings)
	if err != nil {
		now = time.Now()
	}
	m.now = now

	habits, err := m.store.GetAllHabits(false, false)
	if err != nil {
		m.err = err
		return
	}
	m.habits = habits

	track := tracker.New(habits)
	records, err := m.store.GetAllCompletions()
	if err != nil {
		m.err = err
		return
	}
	for _, rec := range records {
		track.Register(rec.HabitID)
	}
	if err := track.Seed(records); err != nil {
		m.err = err
		return
	}
	m.track = track
	m.err = nil
}

// dueToday returns the habits scheduled for the current day.
func (m *Model) dueToday() []models.Habit {
	days, err := calendar.Range(calendar.DayKey(m.now), calendar.DayKey(m.now), m.now)
	if err != nil || len(days) == 0 {
		return nil
	}
	return schedule.DueOn(m.habits, days[0])
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % tabCount
			m.cursor = 0
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tab = (m.tab + tabCount - 1) % tabCount
			m.cursor = 0
			return m, nil

		case key.Matches(msg, m.keys.Up):
			if m.tab == tabToday && m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.tab == tabToday && m.cursor < len(m.dueToday())-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			if m.tab == tabToday {
				m.toggleSelected()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevUnit):
			if m.tab == tabMonth {
				m.monthAnchor = m.monthAnchor.AddDate(0, -1, 0)
			}
			return m, nil

		case key.Matches(msg, m.keys.NextUnit):
			if m.tab == tabMonth {
				m.monthAnchor = m.monthAnchor.AddDate(0, 1, 0)
			}
			return m, nil
		}
	}
	return m, nil
}

func (m *Model) toggleSelected() {
	due := m.dueToday()
	if m.cursor < 0 || m.cursor >= len(due) {
		return
	}
	habit := due[m.cursor]

	rec, err := m.track.Toggle(habit.ID, calendar.DayKey(m.now), m.now)
	if err != nil {
		m.err = err
		return
	}
	if err := m.store.UpsertCompletion(rec); err != nil {
		logger.Error("Failed to persist completion", "habit", habit.ID, "error", err)
		m.err = err
		return
	}
	m.err = nil
}
