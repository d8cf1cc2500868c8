package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type cartView struct {
	open bool
	sel  int
}

func newCartView() cartView {
	return cartView{}
}

func (m *Model) updateCart(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := &m.cart
	lines := m.checkout.Lines()

	clamp := func() {
		if v.sel >= len(m.checkout.Lines()) {
			v.sel = len(m.checkout.Lines()) - 1
		}
		if v.sel < 0 {
			v.sel = 0
		}
	}

	switch msg.String() {
	case "esc", "c":
		v.open = false
		return m, nil
	case "up", "k":
		v.sel--
		clamp()
		return m, nil
	case "down", "j":
		v.sel++
		clamp()
		return m, nil
	case "+", "right":
		if v.sel < len(lines) {
			l := lines[v.sel]
			m.checkout.UpdateQuantity(l.ProductID, l.Quantity+1)
		}
		return m, nil
	case "-", "left":
		// Driving quantity to zero removes the line; that is the designed
		// remove path.
		if v.sel < len(lines) {
			l := lines[v.sel]
			m.checkout.UpdateQuantity(l.ProductID, l.Quantity-1)
			clamp()
		}
		return m, nil
	case "x", "d":
		if v.sel < len(lines) {
			m.checkout.UpdateQuantity(lines[v.sel].ProductID, 0)
			clamp()
		}
		return m, nil
	case "enter":
		if m.checkout.Len() > 0 {
			m.loading = true
			return m, m.checkoutCmd()
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) viewCart() string {
	v := &m.cart
	lines := m.checkout.Lines()

	var rows []string
	rows = append(rows, m.styles.Title.Render("Shopping Cart"), "")

	if len(lines) == 0 {
		rows = append(rows, m.styles.Faint.Render("Cart is empty"))
	} else {
		rows = append(rows, fmt.Sprintf("%-24s %5s %10s %12s", "Product", "Qty", "Price", "Total"))
		for i, l := range lines {
			row := fmt.Sprintf("%-24s %5d %10s %12s",
				truncate(l.Name, 24),
				l.Quantity,
				"$"+l.UnitPrice.StringFixed(2),
				"$"+l.Total().StringFixed(2))
			if i == v.sel {
				row = m.styles.Selected.Render(row)
			}
			rows = append(rows, row)
		}
		rows = append(rows, "",
			m.styles.Total.Render(fmt.Sprintf("%43s $%s", "Total:", m.checkout.Total().StringFixed(2))))
	}

	dialog := m.styles.Dialog.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	help := m.styles.Help.Render("enter: checkout · +/-: quantity · x: remove · esc: continue shopping")
	return strings.Join([]string{dialog, help}, "\n")
}
