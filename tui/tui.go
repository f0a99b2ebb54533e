package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Oudwins/seedance/internals/schemas"
)

const (
	fieldPrompt = iota
	fieldImage
	fieldLastFrame
	fieldModel
	fieldDuration
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	hintStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

type createModel struct {
	inputs    []textinput.Model
	focus     int
	base      schemas.CreateArgs
	err       string
	submitted bool
	cancelled bool
}

// RunCreateForm asks for the prompt and frames interactively, starting from
// base. The bool is false when the user cancelled.
func RunCreateForm(base schemas.CreateArgs) (schemas.CreateArgs, bool, error) {
	program := tea.NewProgram(newCreateModel(base))
	result, err := program.Run()
	if err != nil {
		return base, false, err
	}
	final, ok := result.(createModel)
	if !ok || final.cancelled || !final.submitted {
		return base, false, nil
	}
	args, err := final.args()
	if err != nil {
		return base, false, err
	}
	return args, true, nil
}

func newCreateModel(base schemas.CreateArgs) createModel {
	prompt := textinput.New()
	prompt.Prompt = "Prompt: "
	prompt.CharLimit = 2000
	prompt.SetValue(base.Prompt)

	image := textinput.New()
	image.Prompt = "First frame image (optional): "
	image.SetValue(base.Image)

	lastFrame := textinput.New()
	lastFrame.Prompt = "Last frame image (optional): "
	lastFrame.SetValue(base.LastFrame)

	model := textinput.New()
	model.Prompt = "Model: "
	model.SetValue(base.Model)

	duration := textinput.New()
	duration.Prompt = "Duration (2-12, -1 auto): "
	duration.SetValue(strconv.Itoa(base.Duration))

	inputs := []textinput.Model{prompt, image, lastFrame, model, duration}
	inputs[fieldPrompt].Focus()
	return createModel{inputs: inputs, base: base}
}

// args merges the form into the base arguments and validates the result.
func (m createModel) args() (schemas.CreateArgs, error) {
	args := m.base
	args.Prompt = strings.TrimSpace(m.inputs[fieldPrompt].Value())
	args.Image = strings.TrimSpace(m.inputs[fieldImage].Value())
	args.LastFrame = strings.TrimSpace(m.inputs[fieldLastFrame].Value())
	args.Model = strings.TrimSpace(m.inputs[fieldModel].Value())

	duration, err := strconv.Atoi(strings.TrimSpace(m.inputs[fieldDuration].Value()))
	if err != nil {
		return args, fmt.Errorf("duration must be a number")
	}
	args.Duration = duration

	if err := args.Validate(); err != nil {
		return args, err
	}
	return args, nil
}

func (m createModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m createModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "tab", "down":
			return m.moveFocus(1)
		case "shift+tab", "up":
			return m.moveFocus(-1)
		case "enter":
			if m.focus == len(m.inputs)-1 {
				if _, err := m.args(); err != nil {
					m.err = err.Error()
					return m, nil
				}
				m.submitted = true
				return m, tea.Quit
			}
			return m.moveFocus(1)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m createModel) View() string {
	lines := []string{titleStyle.Render("New video task"), ""}
	for i, input := range m.inputs {
		marker := " "
		if i == m.focus {
			marker = ">"
		}
		lines = append(lines, fmt.Sprintf("%s %s", marker, input.View()))
	}
	if m.err != "" {
		lines = append(lines, "", errorStyle.Render(m.err))
	}
	lines = append(lines, "", hintStyle.Render("Tab: next field  Enter: submit  Esc: cancel"))
	return strings.Join(lines, "\n")
}

func (m createModel) moveFocus(delta int) (tea.Model, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}
	m.inputs[m.focus].Blur()
	count := len(m.inputs)
	m.focus = (m.focus + delta + count) % count
	return m, m.inputs[m.focus].Focus()
}
