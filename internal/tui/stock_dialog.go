package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type stockDialog struct {
	input textinput.Model
}

func newStockDialog() stockDialog {
	in := textinput.New()
	in.Placeholder = "0"
	in.CharLimit = 8
	return stockDialog{input: in}
}

func (d *stockDialog) reset() tea.Cmd {
	d.input.SetValue("")
	return d.input.Focus()
}

func (d *stockDialog) syncFromDelta(delta int) {
	d.input.SetValue(strconv.Itoa(delta))
	d.input.CursorEnd()
}

func (m *Model) commitStockCmd() tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{err: m.stock.Commit(context.Background())}
	}
}

func (m *Model) updateStockDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.stock.Cancel()
		return m, nil
	case "enter":
		// The dialog is dismissed whether or not the update succeeds;
		// failures surface through the transient notice.
		m.loading = true
		return m, m.commitStockCmd()
	case "up", "+":
		m.stock.Inc()
		m.stockDlg.syncFromDelta(m.stock.Delta())
		return m, nil
	case "down":
		m.stock.Dec()
		m.stockDlg.syncFromDelta(m.stock.Delta())
		return m, nil
	}

	var cmd tea.Cmd
	m.stockDlg.input, cmd = m.stockDlg.input.Update(msg)
	m.stock.SetDeltaInput(m.stockDlg.input.Value())
	return m, cmd
}

func (m *Model) viewStockDialog() string {
	p := m.stock.Product()

	lines := []string{
		m.styles.Title.Render("Manage Inventory"),
		"",
		p.Name,
		m.styles.Faint.Render(fmt.Sprintf("Current Stock: %d", p.Stock)),
		"",
		"Add/Remove Stock: " + m.stockDlg.input.View(),
		"",
		fmt.Sprintf("New Stock Level: %d", m.stock.NewStock()),
	}

	dialog := m.styles.Dialog.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	help := m.styles.Help.Render("enter: update stock · up/down: +1/-1 · esc: cancel")
	return dialog + "\n" + help
}
