// Package tui provides the Bubble Tea terminal interface of the media catalog.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/amaumene/mediacatalog/internal/catalog"
	"github.com/amaumene/mediacatalog/internal/models"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

// Service is the part of the catalog controller the TUI drives
type Service interface {
	List(q catalog.Query) (*catalog.Result, error)
	Create(fields models.MediaFields) (*models.MediaItem, error)
	Update(id int64, fields models.MediaFields) (*models.MediaItem, error)
	Delete(id int64) error
	ToggleFinished(id int64) (*models.MediaItem, error)
	SetRating(id int64, rating *int) (*models.MediaItem, error)
	Suggest(text string) ([]catalog.Suggestion, error)
}

// Exporter writes the visible items to a CSV file
type Exporter interface {
	Export(items []models.MediaItem) (string, error)
}

type focus int

const (
	focusTable focus = iota
	focusFilters
	focusAdd
	focusCount
)

type filterRow int

const (
	rowSearch filterRow = iota
	rowCategory
	rowStatus
	rowMinRating
	rowSortField
	rowSortOrder
	filterRowCount
)

// Model is the Bubble Tea model for the TUI.
type Model struct {
	service  Service
	exporter Exporter
	logger   *logrus.Logger

	state  ViewState
	result *catalog.Result

	focus     focus
	filterRow filterRow

	// Central panel
	table         table.Model
	pendingDelete int64
	edit          *editForm // non-nil while the selected item is being edited

	// Left panel
	search      textinput.Model
	minRating   textinput.Model
	categoryIdx int
	statusIdx   int
	sortIdx     int
	order       catalog.SortOrder

	// Bottom panel
	title       textinput.Model
	newCategory int

	width  int
	height int
}

// NewModel creates a new TUI model showing the result of q.
func NewModel(service Service, exporter Exporter, q catalog.Query, logger *logrus.Logger) Model {
	search := textinput.New()
	search.Placeholder = "e.g. Dune"
	search.Prompt = ""
	search.CharLimit = 200
	search.Width = 20

	minRating := textinput.New()
	minRating.Placeholder = "0..10"
	minRating.Prompt = ""
	minRating.CharLimit = 2
	minRating.Width = 5

	title := textinput.New()
	title.Placeholder = "Title"
	title.Prompt = ""
	title.CharLimit = 300
	title.Width = 40

	t := table.New(
		table.WithColumns(columns()),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	styles := table.DefaultStyles()
	styles.Selected = selectedStyle
	t.SetStyles(styles)

	m := Model{
		service:   service,
		exporter:  exporter,
		logger:    logger,
		state:     ViewState{Query: q},
		table:     t,
		search:    search,
		minRating: minRating,
		sortIdx:   sortFieldIndex(q.Sort.Field),
		order:     q.Sort.Order,
		title:     title,
	}
	m.loadForm(q)
	m.refresh()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(5, msg.Height-14))
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.edit != nil {
			return m.updateEdit(msg)
		}

		switch msg.String() {
		case "tab":
			return m, m.setFocus(focus(cycle(int(m.focus), 1, int(focusCount))))
		case "shift+tab":
			return m, m.setFocus(focus(cycle(int(m.focus), -1, int(focusCount))))
		case "ctrl+e":
			m.export()
			return m, nil
		}

		switch m.focus {
		case focusFilters:
			return m.updateFilters(msg)
		case focusAdd:
			return m.updateAdd(msg)
		default:
			return m.updateTable(msg)
		}
	}

	// Cursor blink and other ticks go to the focused input
	var cmd tea.Cmd
	switch {
	case m.edit != nil:
		cmd = m.edit.update(msg)
	case m.focus == focusAdd:
		m.title, cmd = m.title.Update(msg)
	case m.focus == focusFilters && m.filterRow == rowSearch:
		m.search, cmd = m.search.Update(msg)
	case m.focus == focusFilters && m.filterRow == rowMinRating:
		m.minRating, cmd = m.minRating.Update(msg)
	}
	return m, cmd
}

func (m Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.pendingDelete != 0 {
		id := m.pendingDelete
		m.pendingDelete = 0
		if msg.String() == "y" {
			if err := m.service.Delete(id); err != nil {
				m.state.SetError(err)
			} else {
				m.state.SetNotice("Deleted")
			}
			m.refresh()
		} else {
			m.state.SetNotice("Delete cancelled")
		}
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case " ", "space", "x":
		if item, ok := m.selected(); ok {
			if _, err := m.service.ToggleFinished(item.ID); err != nil {
				m.state.SetError(err)
			}
			m.refresh()
		}
		return m, nil
	case "e", "enter":
		if item, ok := m.selected(); ok {
			m.edit = newEditForm(item)
			m.state.SetNotice(fmt.Sprintf("Editing %q", item.Title))
			return m, m.edit.focusRow()
		}
		return m, nil
	case "d":
		if item, ok := m.selected(); ok {
			m.pendingDelete = item.ID
			m.state.SetNotice(fmt.Sprintf("Delete %q? Press y to confirm", item.Title))
		}
		return m, nil
	case "+", "=":
		m.stepRating(1)
		return m, nil
	case "-":
		m.stepRating(-1)
		return m, nil
	case "r":
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.edit = nil
		m.state.SetNotice("Edit cancelled")
		return m, nil
	case "enter":
		m.saveEdit()
		return m, nil
	}
	return m, m.edit.update(msg)
}

func (m Model) updateFilters(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up":
		m.filterRow = filterRow(cycle(int(m.filterRow), -1, int(filterRowCount)))
		return m, m.focusFilterRow()
	case "down":
		m.filterRow = filterRow(cycle(int(m.filterRow), 1, int(filterRowCount)))
		return m, m.focusFilterRow()
	case "enter":
		m.applyFilters()
		return m, nil
	case "ctrl+l":
		m.state.ClearFilters()
		m.loadForm(m.state.Query)
		m.refresh()
		return m, nil
	case "esc":
		return m, m.setFocus(focusTable)
	case "left", "right":
		delta := 1
		if msg.String() == "left" {
			delta = -1
		}
		switch m.filterRow {
		case rowCategory:
			m.categoryIdx = cycle(m.categoryIdx, delta, len(categoryOptions()))
			return m, nil
		case rowStatus:
			m.statusIdx = cycle(m.statusIdx, delta, len(statusOptions()))
			return m, nil
		case rowSortField:
			m.sortIdx = cycle(m.sortIdx, delta, len(catalog.SortFields))
			return m, nil
		case rowSortOrder:
			if m.order == catalog.Ascending {
				m.order = catalog.Descending
			} else {
				m.order = catalog.Ascending
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.filterRow {
	case rowSearch:
		m.search, cmd = m.search.Update(msg)
	case rowMinRating:
		m.minRating, cmd = m.minRating.Update(msg)
	}
	return m, cmd
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.addItem()
		return m, nil
	case "up":
		m.newCategory = cycle(m.newCategory, -1, len(models.Categories))
		return m, nil
	case "down":
		m.newCategory = cycle(m.newCategory, 1, len(models.Categories))
		return m, nil
	case "esc":
		return m, m.setFocus(focusTable)
	}

	var cmd tea.Cmd
	m.title, cmd = m.title.Update(msg)
	return m, cmd
}

// refresh reloads the table from the service using the applied query
func (m *Model) refresh() {
	result, err := m.service.List(m.state.Query)
	if err != nil {
		m.state.SetError(err)
		m.logger.WithError(err).Error("Failed to list media")
		return
	}
	m.result = result
	m.table.SetRows(rows(result.Items))
	if m.table.Cursor() >= len(result.Items) {
		m.table.SetCursor(max(0, len(result.Items)-1))
	}

	if len(result.Items) == 0 && m.state.Query.SearchText != "" && m.state.Err == "" {
		m.suggest(m.state.Query.SearchText)
	}
}

func (m *Model) suggest(text string) {
	suggestions, err := m.service.Suggest(text)
	if err != nil || len(suggestions) == 0 {
		return
	}
	titles := make([]string, len(suggestions))
	for i, s := range suggestions {
		titles[i] = strconv.Quote(s.Title)
	}
	m.state.SetNotice("No matches. Did you mean " + strings.Join(titles, ", ") + "?")
}

func (m *Model) applyFilters() {
	q, err := m.form().Query()
	if err != nil {
		m.state.SetError(err)
		return
	}
	m.state.Query = q
	m.state.SetError(nil)
	m.refresh()
}

func (m *Model) addItem() {
	fields := models.MediaFields{
		Title:    m.title.Value(),
		Category: models.Categories[m.newCategory],
	}
	item, err := m.service.Create(fields)
	if err != nil {
		// Keep the input so the user can correct it
		m.state.SetError(err)
		return
	}
	m.title.SetValue("")
	m.state.SetNotice(fmt.Sprintf("Added %q", item.Title))
	m.refresh()
}

// saveEdit submits the edit form; on error the form stays open for correction
func (m *Model) saveEdit() {
	item, err := m.service.Update(m.edit.id, m.edit.Fields())
	if err != nil {
		m.state.SetError(err)
		return
	}
	m.edit = nil
	m.state.SetNotice(fmt.Sprintf("Saved %q", item.Title))
	m.refresh()
}

func (m *Model) stepRating(delta int) {
	item, ok := m.selected()
	if !ok {
		return
	}
	next := StepRating(item.Rating, delta)
	if models.SameRating(item.Rating, next) {
		return
	}
	if _, err := m.service.SetRating(item.ID, next); err != nil {
		m.state.SetError(err)
	}
	m.refresh()
}

func (m *Model) export() {
	if m.result == nil {
		return
	}
	path, err := m.exporter.Export(m.result.Items)
	if err != nil {
		m.state.SetError(fmt.Errorf("export failed: %w", err))
		return
	}
	m.state.SetNotice("Exported: " + path)
}

func (m *Model) selected() (models.MediaItem, bool) {
	if m.result == nil {
		return models.MediaItem{}, false
	}
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.result.Items) {
		return models.MediaItem{}, false
	}
	return m.result.Items[idx], true
}

func (m *Model) form() FilterForm {
	return FilterForm{
		Search:    m.search.Value(),
		Category:  categoryOptions()[m.categoryIdx],
		Status:    statusOptions()[m.statusIdx],
		MinRating: m.minRating.Value(),
		Sort:      catalog.Sort{Field: catalog.SortFields[m.sortIdx], Order: m.order},
	}
}

// loadForm puts q back into the filter panel inputs
func (m *Model) loadForm(q catalog.Query) {
	m.search.SetValue(q.SearchText)
	m.categoryIdx, m.statusIdx = 0, 0
	if q.Category != nil {
		m.categoryIdx = q.Category.Rank() + 1
	}
	if q.Status != nil {
		m.statusIdx = q.Status.Rank() + 1
	}
	m.minRating.SetValue("")
	if q.MinRating != nil {
		m.minRating.SetValue(strconv.Itoa(*q.MinRating))
	}
	m.sortIdx = sortFieldIndex(q.Sort.Field)
	m.order = q.Sort.Order
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.pendingDelete = 0
	m.table.Blur()
	m.search.Blur()
	m.minRating.Blur()
	m.title.Blur()

	switch f {
	case focusFilters:
		return m.focusFilterRow()
	case focusAdd:
		return m.title.Focus()
	default:
		m.table.Focus()
	}
	return nil
}

func (m *Model) focusFilterRow() tea.Cmd {
	m.search.Blur()
	m.minRating.Blur()
	switch m.filterRow {
	case rowSearch:
		return m.search.Focus()
	case rowMinRating:
		return m.minRating.Focus()
	}
	return nil
}

// View renders the UI.
func (m Model) View() string {
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		panel(m.focus == focusFilters).Render(m.viewFilters()),
		panel(m.focus == focusTable).Render(m.table.View()),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewHeader(),
		body,
		m.viewBottom(),
		m.viewMessage(),
		dimStyle.Render(m.helpText()),
	)
}

func (m Model) viewHeader() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Media Catalog"))
	if m.result != nil {
		s := m.result.Stats
		line := fmt.Sprintf("  Total: %d | Finished: %d | Unfinished: %d", s.Total, s.Finished, s.Unfinished)
		for _, cc := range s.Categories() {
			line += fmt.Sprintf(" | %s: %d", cc.Category, cc.Count)
		}
		b.WriteString(statsStyle.Render(line))
	}
	b.WriteString(dimStyle.Render("  [ctrl+e] export CSV"))
	return b.String()
}

func (m Model) viewFilters() string {
	label := func(row filterRow, name string) string {
		if m.focus == focusFilters && m.filterRow == row {
			return selectedStyle.Render("> " + name)
		}
		return "  " + name
	}
	selector := func(value string) string {
		return "< " + value + " >"
	}

	lines := []string{
		titleStyle.Render("Filters"),
		label(rowSearch, "Title contains:"),
		"  " + m.search.View(),
		label(rowCategory, "Category:"),
		"  " + selector(categoryOptions()[m.categoryIdx]),
		label(rowStatus, "Status:"),
		"  " + selector(statusOptions()[m.statusIdx]),
		label(rowMinRating, "Min rating:"),
		"  " + m.minRating.View(),
		label(rowSortField, "Sort by:"),
		"  " + selector(string(catalog.SortFields[m.sortIdx])),
		label(rowSortOrder, "Order:"),
		"  " + selector(string(m.order)),
		"",
		dimStyle.Render("[enter] apply  [ctrl+l] clear"),
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewBottom() string {
	if m.edit != nil {
		return focusedPanelStyle.Render(m.edit.View())
	}
	return panel(m.focus == focusAdd).Render(m.viewAdd())
}

func (m Model) viewAdd() string {
	return fmt.Sprintf("Add new: %s  Category: %s",
		m.title.View(),
		"< "+models.Categories[m.newCategory].String()+" >",
	)
}

func (m Model) viewMessage() string {
	switch {
	case m.state.Err != "":
		return errorStyle.Render("Error: " + m.state.Err)
	case m.state.Notice != "":
		return noticeStyle.Render(m.state.Notice)
	}
	return ""
}

func (m Model) helpText() string {
	if m.edit != nil {
		return "↑/↓ field • ←/→ change • enter save • esc cancel"
	}
	switch m.focus {
	case focusFilters:
		return "↑/↓ field • ←/→ change • enter apply • ctrl+l clear • esc table • tab next panel"
	case focusAdd:
		return "enter add • ↑/↓ category • esc table • tab next panel"
	default:
		return "↑/↓ move • e edit • space toggle finished • +/- rating • d delete • r refresh • tab next panel • q quit"
	}
}

func columns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Title", Width: 30},
		{Title: "Category", Width: 9},
		{Title: "Status", Width: 12},
		{Title: "Rating", Width: 6},
		{Title: "Notes", Width: 20},
		{Title: "Cover", Width: 16},
		{Title: "Updated", Width: 16},
	}
}

func rows(items []models.MediaItem) []table.Row {
	out := make([]table.Row, len(items))
	for i, item := range items {
		rating, notes, cover := "", "", "(none)"
		if item.Rating != nil {
			rating = strconv.Itoa(*item.Rating)
		}
		if item.Notes != nil {
			notes = *item.Notes
		}
		if item.CoverPath != nil {
			cover = *item.CoverPath
		}
		out[i] = table.Row{
			strconv.FormatInt(item.ID, 10),
			item.Title,
			item.Category.String(),
			item.Status.Label(),
			rating,
			notes,
			cover,
			item.UpdatedAt.Local().Format("2006-01-02 15:04"),
		}
	}
	return out
}

// Run starts the TUI and blocks until the user quits
func Run(service Service, exporter Exporter, q catalog.Query, logger *logrus.Logger) error {
	p := tea.NewProgram(NewModel(service, exporter, q, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
