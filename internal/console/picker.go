package console

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	pickerWidth  = 48
	pickerHeight = 16
)

type pickerItem string

func (i pickerItem) FilterValue() string { return string(i) }
func (i pickerItem) Title() string       { return string(i) }
func (i pickerItem) Description() string { return "" }

// Picker is the BubbleTea model behind the pick command: a filterable
// list of game files.
// https://github.com/charmbracelet/bubbles/tree/master/list
type Picker struct {
	list     list.Model
	choice   string
	quitting bool
}

func NewPicker(title string, names []string) Picker {
	items := make([]list.Item, len(names))
	for i, n := range names {
		items[i] = pickerItem(n)
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	l := list.New(items, delegate, pickerWidth, pickerHeight)
	l.Title = title
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(false)
	return Picker{list: l}
}

func (m Picker) Init() tea.Cmd {
	return nil
}

func (m Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := modalStyle.GetFrameSize()
		m.list.SetSize(min(msg.Width-h, pickerWidth), min(msg.Height-v, pickerHeight))

	case tea.KeyMsg:
		// Keys belong to the filter input while the operator is typing.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.Type {
		case tea.KeyEsc:
			if m.list.FilterState() == list.FilterApplied {
				break
			}
			m.quitting = true
			return m, tea.Quit
		case tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			if item, ok := m.list.SelectedItem().(pickerItem); ok {
				m.choice = string(item)
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Picker) View() string {
	if m.choice != "" || m.quitting {
		return ""
	}
	return modalStyle.Render(m.list.View())
}

// Choice is the picked name, or "" when the picker was cancelled.
func (m Picker) Choice() string {
	return m.choice
}

// Pick shows the picker on the terminal and returns the chosen name.
// ok is false when the operator cancelled.
func Pick(ctx context.Context, in io.Reader, out io.Writer, title string, names []string) (string, bool, error) {
	p := tea.NewProgram(NewPicker(title, names),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out))

	final, err := p.Run()
	if err != nil {
		return "", false, fmt.Errorf("picker failed: %w", err)
	}
	m, ok := final.(Picker)
	if !ok || m.Choice() == "" {
		return "", false, nil
	}
	return m.Choice(), true, nil
}
