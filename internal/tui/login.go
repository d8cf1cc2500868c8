package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"store_admin/internal/usecase"
)

type loginView struct {
	email    textinput.Model
	password textinput.Model
	focus    int
	register bool
	err      error
}

func newLoginView() loginView {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 120
	password.EchoMode = textinput.EchoPassword

	return loginView{email: email, password: password}
}

func (v *loginView) reset(register bool) {
	v.email.SetValue("")
	v.password.SetValue("")
	v.focus = 0
	v.register = register
	v.err = nil
	v.password.Blur()
}

func (v *loginView) focusCmd() tea.Cmd {
	return v.email.Focus()
}

func (v *loginView) cycle() tea.Cmd {
	v.focus = (v.focus + 1) % 2
	if v.focus == 0 {
		v.password.Blur()
		return v.email.Focus()
	}
	v.email.Blur()
	return v.password.Focus()
}

func (m *Model) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		return loginDoneMsg{err: m.auth.Login(context.Background(), email, password)}
	}
}

func (m *Model) registerCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		return registerDoneMsg{err: m.auth.Register(context.Background(), email, password)}
	}
}

func (m *Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := &m.login
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		return m, v.cycle()
	case "ctrl+r":
		if m.route == usecase.RouteLogin {
			return m, m.enterRoute(usecase.RouteRegister)
		}
		return m, m.enterRoute(usecase.RouteLogin)
	case "enter":
		m.loading = true
		v.err = nil
		if v.register {
			return m, m.registerCmd(v.email.Value(), v.password.Value())
		}
		return m, m.loginCmd(v.email.Value(), v.password.Value())
	}

	var cmd tea.Cmd
	if v.focus == 0 {
		v.email, cmd = v.email.Update(msg)
	} else {
		v.password, cmd = v.password.Update(msg)
	}
	return m, cmd
}

func (m *Model) viewLogin() string {
	v := &m.login
	title := "Log in"
	hint := "enter: log in · ctrl+r: register · ctrl+c: quit"
	if v.register {
		title = "Create account"
		hint = "enter: register · ctrl+r: back to login · ctrl+c: quit"
	}

	lines := []string{
		m.styles.Title.Render(title),
		"",
		v.email.View(),
		v.password.View(),
	}
	if v.err != nil {
		lines = append(lines, "", m.styles.Error.Render(v.err.Error()))
	}
	form := m.styles.Dialog.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	return form + "\n" + m.styles.Help.Render(hint)
}
