package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrInterrupted is returned when the player abandons a prompt with ctrl+c
var ErrInterrupted = errors.New("input interrupted")

// LineReader shows a prompt and waits for one line of input
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// ScannerReader reads lines from any reader. It is used when stdin is not a
// terminal and in tests.
type ScannerReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewScannerReader reads from in and writes prompts to out
func NewScannerReader(in io.Reader, out io.Writer) *ScannerReader {
	return &ScannerReader{scanner: bufio.NewScanner(in), out: out}
}

func (r *ScannerReader) ReadLine(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	line := r.scanner.Text()
	fmt.Fprintln(r.out)
	return strings.TrimRight(line, "\r"), nil
}

// PromptReader runs a short bubbletea program with a text input for every
// prompt, giving line editing on interactive terminals.
type PromptReader struct {
	in     io.Reader
	out    io.Writer
	styles styles
}

// NewPromptReader reads key presses from in and renders to out
func NewPromptReader(in io.Reader, out io.Writer, renderer *lipgloss.Renderer) *PromptReader {
	return &PromptReader{in: in, out: out, styles: newStyles(renderer)}
}

func (r *PromptReader) ReadLine(prompt string) (string, error) {
	m := newPromptModel(prompt, r.styles)
	final, err := tea.NewProgram(m, tea.WithInput(r.in), tea.WithOutput(r.out)).Run()
	if err != nil {
		return "", fmt.Errorf("prompt: %w", err)
	}

	result := final.(promptModel)
	if result.cancelled {
		return "", ErrInterrupted
	}
	fmt.Fprintln(r.out, r.styles.Prompt.Render(prompt)+result.value)
	return result.value, nil
}

type promptModel struct {
	input     textinput.Model
	value     string
	done      bool
	cancelled bool
}

func newPromptModel(prompt string, s styles) promptModel {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.PromptStyle = s.Prompt
	ti.CharLimit = 100
	ti.Width = 60
	ti.Focus()
	return promptModel{input: ti}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.value = strings.TrimSpace(m.input.Value())
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.done {
		return ""
	}
	return m.input.View() + "\n"
}
