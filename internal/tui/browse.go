// Package tui provides interactive terminal UI components.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mlahtinen/bookfind/internal/enrich"
	"github.com/mlahtinen/bookfind/internal/favorites"
	"github.com/mlahtinen/bookfind/internal/session"
)

const (
	defaultListWidth  = 72
	defaultListHeight = 20
)

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

type bookItem struct {
	enrich.EnrichedBook
	favorited bool
}

func (i bookItem) Title() string {
	if i.FirstPublishYear > 0 {
		return fmt.Sprintf("%s (%d)", i.EnrichedBook.Title, i.FirstPublishYear)
	}
	return i.EnrichedBook.Title
}

func (i bookItem) FilterValue() string {
	return i.EnrichedBook.Title
}

func (i bookItem) Description() string {
	return enrich.FormatAuthors(i.AuthorNames)
}

type itemStyles struct {
	normal        lipgloss.Style
	selected      lipgloss.Style
	titleStyle    lipgloss.Style
	authorStyle   lipgloss.Style
	ratingStyle   lipgloss.Style
	metadataStyle lipgloss.Style
	favoriteStyle lipgloss.Style
}

// newItemStyles builds the palette for the given theme name. Anything other
// than "light" gets the dark palette.
func newItemStyles(theme string) itemStyles {
	asciiBorder := lipgloss.Border{
		Top:         "-",
		Bottom:      "-",
		Left:        "|",
		Right:       "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	}

	text, dimmed, accent := lipgloss.Color("252"), lipgloss.Color("247"), lipgloss.Color("214")
	selectedText, selectedBg := lipgloss.Color("230"), lipgloss.Color("237")
	if theme == "light" {
		text, dimmed, accent = lipgloss.Color("235"), lipgloss.Color("243"), lipgloss.Color("130")
		selectedText, selectedBg = lipgloss.Color("232"), lipgloss.Color("254")
	}

	container := lipgloss.NewStyle().
		Border(asciiBorder).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Foreground(text)

	selected := container.Copy().
		BorderForeground(accent).
		Foreground(selectedText).
		Background(selectedBg)

	return itemStyles{
		normal:   container,
		selected: selected,
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(text),
		authorStyle: lipgloss.NewStyle().
			Foreground(dimmed),
		ratingStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("178")),
		metadataStyle: lipgloss.NewStyle().
			Foreground(dimmed).
			Faint(true),
		favoriteStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),
	}
}

type bookDelegate struct {
	styles itemStyles
}

func (d bookDelegate) Height() int                         { return 5 }
func (d bookDelegate) Spacing() int                        { return 1 }
func (d bookDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d bookDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	book, ok := item.(bookItem)
	if !ok {
		return
	}

	title := book.Title()
	if book.favorited {
		title = d.styles.favoriteStyle.Render("* ") + title
	}

	titleLine := d.styles.titleStyle.Render(title)
	authorLine := d.styles.authorStyle.Render("by " + enrich.FormatAuthors(book.AuthorNames))
	ratingLine := d.styles.ratingStyle.Render(formatRating(book.EnrichedBook))
	metadataLine := d.styles.metadataStyle.Render(formatBookMetadata(book.EnrichedBook, m.Width()-4))

	content := lipgloss.JoinVertical(lipgloss.Left, titleLine, authorLine, ratingLine, metadataLine)

	container := d.styles.normal
	if idx == m.Index() {
		container = d.styles.selected
	}
	_, _ = fmt.Fprint(w, container.Render(content))
}

type browseModel struct {
	list  list.Model
	state *session.State
	favs  *favorites.List
	// saveErr is surfaced in the footer when a favorite write fails
	saveErr error
	theme   string
}

func newBrowseModel(state *session.State, favs *favorites.List, theme string) *browseModel {
	delegate := bookDelegate{styles: newItemStyles(theme)}
	l := list.New(nil, delegate, defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()

	m := &browseModel{list: l, state: state, favs: favs, theme: theme}
	m.reload()
	return m
}

// reload rebuilds the list items from the session's current page.
func (m *browseModel) reload() {
	page := m.state.View()
	items := make([]list.Item, len(page.Books))
	for i, book := range page.Books {
		items[i] = bookItem{
			EnrichedBook: book,
			favorited:    m.favs.IsFavorited(book.Key),
		}
	}
	m.list.SetItems(items)
	m.list.ResetSelected()
}

func (m *browseModel) Init() tea.Cmd { return nil }

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "f":
			if selected, ok := m.list.SelectedItem().(bookItem); ok {
				_, err := m.favs.Toggle(selected.BookRecord)
				m.saveErr = err
				idx := m.list.Index()
				m.reload()
				m.list.Select(idx)
			}
			return m, nil
		case "right", "n":
			m.state.NextPage()
			m.reload()
			return m, nil
		case "left", "p":
			m.state.PrevPage()
			m.reload()
			return m, nil
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		width := clamp(defaultListWidth, msg.Width-4, 40)
		height := clamp(defaultListHeight, msg.Height-6, 5)
		m.list.SetSize(width, height)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *browseModel) View() string {
	page := m.state.View()

	header := headerStyle.Render(fmt.Sprintf("Results for: %s", m.state.Term()))
	listView := m.list.View()
	status := fmt.Sprintf("Page %d/%d | %d results | %d favorites",
		page.Number, max(page.TotalPages, 1), page.TotalItems, m.favs.Count())
	if m.saveErr != nil {
		status += " | save failed: " + m.saveErr.Error()
	}
	statusLine := statusStyle.Render(status)
	help := helpStyle.Render("Up/Down navigate | Enter favorite | Left/Right page | q quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, listView, statusLine, help)
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("178"))

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))
)

// Browse opens the interactive result browser. It returns once the user
// quits; favorite toggles are persisted as they happen.
func Browse(state *session.State, favs *favorites.List, theme string) error {
	m := newBrowseModel(state, favs, theme)
	_, err := runProgram(m)
	return err
}

func formatRating(book enrich.EnrichedBook) string {
	if book.RatingsAverage <= 0 {
		return "unrated"
	}
	return fmt.Sprintf("%.1f/5 (%d ratings)", book.RatingsAverage, book.RatingsCount)
}

// formatBookMetadata builds the genre / level / read time / availability line.
func formatBookMetadata(book enrich.EnrichedBook, availableWidth int) string {
	var parts []string

	if book.PrimaryGenre != "" {
		parts = append(parts, book.PrimaryGenre)
	}
	if book.ReadingLevel != "" {
		parts = append(parts, string(book.ReadingLevel))
	}
	if readTime := enrich.FormatReadTime(book.PageCountMedian); readTime != "" {
		parts = append(parts, readTime)
	}
	if book.AvailabilityStatus != "" {
		parts = append(parts, string(book.AvailabilityStatus))
	}

	if len(parts) == 0 {
		return "No metadata available"
	}

	metadata := strings.Join(parts, " | ")
	if availableWidth > 0 && len(metadata) > availableWidth {
		metadata = truncate(metadata, availableWidth)
	}
	return metadata
}

func truncate(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	if width <= 0 || len(value) <= width {
		return value
	}
	if width <= 3 {
		return value[:width]
	}
	return value[:width-3] + "..."
}

func clamp(defaultValue, available, minimum int) int {
	width := defaultValue
	if available > 0 && available < defaultValue {
		width = available
	}
	if width < minimum {
		width = minimum
	}
	return width
}
