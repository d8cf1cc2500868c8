package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"store_admin/internal/usecase"
)

func (m *Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "p", "tab":
		return m, m.enterRoute(usecase.RouteProducts)
	case "r":
		m.loading = true
		return m, m.fetchDashboardCmd()
	case "l":
		if err := m.auth.Logout(); err != nil {
			m.log.Errorf("Shell: Logout failed: %v", err)
		}
		return m, m.enterRoute(usecase.RouteLogin)
	}
	return m, nil
}

func (m *Model) viewDashboard() string {
	stats := m.dash.Stats()

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		m.statCard("Total Products", fmt.Sprintf("%d", stats.TotalProducts)),
		m.statCard("Total Sales", fmt.Sprintf("%d", stats.TotalSales)),
		m.statCard("Revenue", fmt.Sprintf("$%.2f", stats.TotalRevenue)),
		m.statCard("Low Stock", fmt.Sprintf("%d", stats.LowStockProducts)),
	)

	chart := m.styles.Card.Render(
		m.styles.CardLabel.Render("Sales Overview (last 7 days)") + "\n" + m.sparkline(),
	)

	recent := m.styles.Card.Render(m.recentSalesTable())

	help := m.styles.Help.Render("p: products · r: refresh · l: logout · q: quit")
	return lipgloss.JoinVertical(lipgloss.Left, cards, chart, recent, help)
}

func (m *Model) statCard(label, value string) string {
	return m.styles.Card.Render(
		m.styles.CardLabel.Render(label) + "\n" + m.styles.CardValue.Render(value),
	)
}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// sparkline renders the daily sales series as a one-line bar chart with the
// date range underneath.
func (m *Model) sparkline() string {
	series := m.dash.Series()
	if len(series) == 0 {
		return m.styles.Faint.Render("No sales data")
	}

	max := series[0].Sales
	for _, p := range series {
		if p.Sales > max {
			max = p.Sales
		}
	}

	var b strings.Builder
	for _, p := range series {
		idx := 0
		if max > 0 {
			idx = int(p.Sales / max * float64(len(sparkRunes)-1))
		}
		b.WriteRune(sparkRunes[idx])
	}

	span := series[0].Date
	if len(series) > 1 {
		span += " … " + series[len(series)-1].Date
	}
	return b.String() + "\n" + m.styles.Faint.Render(span)
}

func (m *Model) recentSalesTable() string {
	recent := m.dash.Recent()
	if len(recent) == 0 {
		return m.styles.CardLabel.Render("Recent Sales") + "\n" +
			m.styles.Faint.Render("No recent sales")
	}

	rows := []string{
		m.styles.CardLabel.Render("Recent Sales"),
		fmt.Sprintf("%-24s %8s %12s  %s", "Product", "Qty", "Amount", "Date"),
	}
	for _, s := range recent {
		rows = append(rows, fmt.Sprintf("%-24s %8d %12s  %s",
			truncate(s.ProductName, 24), s.Quantity, fmt.Sprintf("$%.2f", s.TotalAmount), s.SaleDate))
	}
	return strings.Join(rows, "\n")
}

// truncate shortens to n characters, counting runes so multibyte names are
// never cut mid-encoding.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
