package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// form is a small group of text inputs with a single focused field.
type form struct {
	inputs []textinput.Model
	focus  int
}

type fieldSpec struct {
	label  string
	secret bool
}

func newForm(fields ...fieldSpec) form {
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		in := textinput.New()
		in.Placeholder = f.label
		in.CharLimit = 64
		if f.secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '*'
		}
		if i == 0 {
			in.Focus()
		}
		inputs[i] = in
	}
	return form{inputs: inputs}
}

func (f *form) Update(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(f.inputs))
	for i := range f.inputs {
		f.inputs[i], cmds[i] = f.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func (f *form) next() {
	f.setFocus((f.focus + 1) % len(f.inputs))
}

func (f *form) prev() {
	f.setFocus((f.focus - 1 + len(f.inputs)) % len(f.inputs))
}

func (f *form) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

func (f *form) values() []string {
	out := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		out[i] = in.Value()
	}
	return out
}

func (f *form) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.setFocus(0)
}
