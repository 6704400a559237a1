package tui

import (
	"strings"

	"github.com/amaumene/mediacatalog/internal/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type editRow int

const (
	editTitle editRow = iota
	editCategory
	editStatus
	editNotes
	editCover
	editRowCount
)

// editForm edits the selected item in place. Rating is kept as is.
type editForm struct {
	id   int64
	base models.MediaFields
	row  editRow

	title    textinput.Model
	notes    textinput.Model
	cover    textinput.Model
	category int // index into models.Categories
	status   int // index into models.Statuses
}

func newEditForm(item models.MediaItem) *editForm {
	fields := item.Fields()

	f := &editForm{
		id:       item.ID,
		base:     fields,
		title:    newFormInput("Title", 300, 40),
		notes:    newFormInput("Notes", 1000, 40),
		cover:    newFormInput("/path/to/cover.jpg", 500, 40),
		category: max(0, fields.Category.Rank()),
		status:   max(0, fields.Status.Rank()),
	}
	f.title.SetValue(fields.Title)
	if fields.Notes != nil {
		f.notes.SetValue(*fields.Notes)
	}
	if fields.CoverPath != nil {
		f.cover.SetValue(*fields.CoverPath)
	}
	return f
}

func newFormInput(placeholder string, limit, width int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = ""
	in.CharLimit = limit
	in.Width = width
	return in
}

// Fields returns the edited fields. Blank notes and cover become unset.
func (f *editForm) Fields() models.MediaFields {
	fields := f.base
	fields.Title = f.title.Value()
	fields.Category = models.Categories[f.category]
	fields.Status = models.Statuses[f.status]
	fields.Notes = models.StringPtr(f.notes.Value())
	fields.CoverPath = models.StringPtr(f.cover.Value())
	return fields
}

func (f *editForm) input() *textinput.Model {
	switch f.row {
	case editTitle:
		return &f.title
	case editNotes:
		return &f.notes
	case editCover:
		return &f.cover
	}
	return nil
}

func (f *editForm) focusRow() tea.Cmd {
	f.title.Blur()
	f.notes.Blur()
	f.cover.Blur()
	if in := f.input(); in != nil {
		return in.Focus()
	}
	return nil
}

// update handles row navigation, selector cycling and typing
func (f *editForm) update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up", "shift+tab":
			f.row = editRow(cycle(int(f.row), -1, int(editRowCount)))
			return f.focusRow()
		case "down", "tab":
			f.row = editRow(cycle(int(f.row), 1, int(editRowCount)))
			return f.focusRow()
		case "left", "right":
			delta := 1
			if key.String() == "left" {
				delta = -1
			}
			switch f.row {
			case editCategory:
				f.category = cycle(f.category, delta, len(models.Categories))
				return nil
			case editStatus:
				f.status = cycle(f.status, delta, len(models.Statuses))
				return nil
			}
		}
	}

	in := f.input()
	if in == nil {
		return nil
	}
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return cmd
}

func (f *editForm) View() string {
	label := func(row editRow, name string) string {
		if f.row == row {
			return selectedStyle.Render("> " + name)
		}
		return "  " + name
	}

	lines := []string{
		titleStyle.Render("Edit item"),
		label(editTitle, "Title:    ") + f.title.View(),
		label(editCategory, "Category: ") + "< " + models.Categories[f.category].String() + " >",
		label(editStatus, "Status:   ") + "< " + models.Statuses[f.status].Label() + " >",
		label(editNotes, "Notes:    ") + f.notes.View(),
		label(editCover, "Cover:    ") + f.cover.View(),
	}
	return strings.Join(lines, "\n")
}
