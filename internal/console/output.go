// Package console is the terminal side of the engine: line input,
// styled output and the interactive game picker.
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	dialogueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
)

// Styled writes engine output to a terminal and keeps a plain-text
// transcript of everything written since the last reset.
type Styled struct {
	w     io.Writer
	width int

	mu         sync.Mutex
	transcript strings.Builder
}

func NewStyled(w io.Writer, width int) *Styled {
	return &Styled{w: w, width: width}
}

func (s *Styled) Title(text string) {
	s.write(text, titleStyle)
}

func (s *Styled) Line(text string) {
	s.write(text, lipgloss.NewStyle())
}

func (s *Styled) Dialogue(text string) {
	s.write(text, dialogueStyle)
}

func (s *Styled) Error(text string) {
	s.write(text, errorStyle)
}

func (s *Styled) write(text string, style lipgloss.Style) {
	wrapped := text
	if s.width > 0 {
		wrapped = wordwrap.String(text, s.width)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript.WriteString(wrapped)
	s.transcript.WriteByte('\n')
	fmt.Fprintln(s.w, style.Render(wrapped))
}

// Transcript returns the unstyled text written since the last reset.
func (s *Styled) Transcript() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript.String()
}

func (s *Styled) ResetTranscript() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript.Reset()
}
