// Package tui provides the Bubble Tea terminal interface for browsing a
// connector's indexing history.
//
// Paging is backed by the batch cache: pages already fetched render
// synchronously, anything else shows the spinner for exactly one batch
// fetch. Fetch failures keep the last good page on screen with an error
// line, matching the console's "stale but valid beats blank" policy.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/koopa0/scout/internal/console"
	"github.com/koopa0/scout/internal/i18n"
	"github.com/koopa0/scout/internal/pagecache"
)

// keyMap holds key bindings for help bar display.
type keyMap struct {
	PrevPage key.Binding
	NextPage key.Binding
	Refresh  key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		PrevPage: key.NewBinding(key.WithKeys("left", "pgup"), key.WithHelp("←/pgup", "prev page")),
		NextPage: key.NewBinding(key.WithKeys("right", "pgdown"), key.WithHelp("→/pgdn", "next page")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// pageLoadedMsg reports the outcome of an asynchronous page request.
type pageLoadedMsg struct {
	page int
	err  error
}

// Model is the Bubble Tea model for the attempts browser.
type Model struct {
	browser *console.AttemptsBrowser
	ctx     context.Context
	cancel  context.CancelFunc

	spinner spinner.Model
	keys    keyMap
	help    help.Model
	styles  Styles

	width   int
	loading bool
	errText string
}

// New creates the TUI model. ctx bounds all fetches; canceling it aborts
// any in-flight page load.
func New(ctx context.Context, browser *console.AttemptsBrowser) *Model {
	ctx, cancel := context.WithCancel(ctx)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		browser: browser,
		ctx:     ctx,
		cancel:  cancel,
		spinner: sp,
		keys:    newKeyMap(),
		help:    help.New(),
		styles:  DefaultStyles(),
		width:   80, // Default width until WindowSizeMsg arrives
		loading: true,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadPage(0))
}

// loadPage requests a page off the event loop; the cache decides whether a
// network fetch is needed.
func (m *Model) loadPage(page int) tea.Cmd {
	return func() tea.Msg {
		err := m.browser.GoToPage(m.ctx, page)
		return pageLoadedMsg{page: page, err: err}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pageLoadedMsg:
		if errors.Is(msg.err, pagecache.ErrInvalidated) {
			// A refresh superseded this load; the follow-up request owns
			// the display.
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			// Last good page stays on screen; only the error line changes.
			m.errText = i18n.Sprintf("attempts.fetch.error", msg.err)
		} else {
			m.errText = ""
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	k := msg.Key()

	if k.Mod&tea.ModCtrl != 0 && k.Code == 'c' {
		return m.quit()
	}

	switch k.Code {
	case 'q':
		return m.quit()

	case 'r':
		m.browser.Refresh()
		m.loading = true
		return m, m.loadPage(0)

	case tea.KeyLeft, tea.KeyPgUp:
		if page := m.browser.CurrentPage() - 1; page >= 0 {
			m.loading = true
			return m, m.loadPage(page)
		}

	case tea.KeyRight, tea.KeyPgDown:
		page := m.browser.CurrentPage() + 1
		if total := m.browser.TotalPages(); total == 0 || page < total {
			m.loading = true
			return m, m.loadPage(page)
		}
	}
	return m, nil
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.cancel()
	return m, tea.Quit
}

// View implements tea.Model.
func (m *Model) View() tea.View {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render(i18n.T("attempts.title")))
	b.WriteString("\n\n")
	b.WriteString(m.renderTable())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	v := tea.NewView(b.String())
	v.AltScreen = true
	return v
}

func (m *Model) renderTable() string {
	rows := m.browser.CurrentPageData()
	if len(rows) == 0 {
		if m.loading {
			return m.styles.Muted.Render(m.spinner.View() + " " + i18n.T("page.loading"))
		}
		return m.styles.Muted.Render(i18n.T("attempts.none"))
	}

	var b strings.Builder
	b.WriteString(m.styles.TableHeader.Render(
		fmt.Sprintf("%-8s %-12s %10s %10s  %s", "ID", "STATUS", "NEW", "TOTAL", "UPDATED")))
	b.WriteString("\n")
	for _, a := range rows {
		line := fmt.Sprintf("%-8d %-12s %10d %10d  %s",
			a.ID, a.Status, a.NewDocsIndexed, a.TotalDocsIndexed,
			a.TimeUpdated.Format("2006-01-02 15:04"))
		if a.Status == "failed" {
			line = m.styles.Error.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderStatus() string {
	if m.errText != "" {
		return m.styles.Error.Render(m.errText)
	}
	var b strings.Builder
	if m.loading {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
	}
	total := m.browser.TotalPages()
	if total > 0 {
		b.WriteString(i18n.Sprintf("page.indicator", m.browser.CurrentPage()+1, total))
	}
	return m.styles.StatusBar.Render(b.String())
}

func (m *Model) renderHelp() string {
	return m.help.ShortHelpView([]key.Binding{
		m.keys.PrevPage, m.keys.NextPage, m.keys.Refresh, m.keys.Quit,
	})
}

// Styles contains all lipgloss styles for the TUI.
type Styles struct {
	Header      lipgloss.Style
	TableHeader lipgloss.Style
	StatusBar   lipgloss.Style
	Error       lipgloss.Style
	Muted       lipgloss.Style
}

// DefaultStyles returns the default style configuration.
func DefaultStyles() Styles {
	return Styles{
		Header:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
		TableHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250")),
		StatusBar:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}
