package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"store_admin/internal/domain"
	"store_admin/internal/usecase"
)

type productsMode int

const (
	modeBrowse productsMode = iota
	modeAdding
	modeEditing
)

type productForm struct {
	name  textinput.Model
	price textinput.Model
	stock textinput.Model
	focus int
	err   error
}

func newProductForm() productForm {
	name := textinput.New()
	name.Placeholder = "Product Name"
	price := textinput.New()
	price.Placeholder = "Price"
	stock := textinput.New()
	stock.Placeholder = "Stock"
	return productForm{name: name, price: price, stock: stock}
}

func (f *productForm) inputs() []*textinput.Model {
	return []*textinput.Model{&f.name, &f.price, &f.stock}
}

func (f *productForm) reset() tea.Cmd {
	for _, in := range f.inputs() {
		in.SetValue("")
		in.Blur()
	}
	f.focus = 0
	f.err = nil
	return f.name.Focus()
}

func (f *productForm) prefill(p domain.Product) tea.Cmd {
	cmd := f.reset()
	f.name.SetValue(p.Name)
	f.price.SetValue(strconv.FormatFloat(p.Price, 'f', -1, 64))
	f.stock.SetValue(strconv.Itoa(p.Stock))
	return cmd
}

func (f *productForm) cycle(back bool) tea.Cmd {
	ins := f.inputs()
	ins[f.focus].Blur()
	if back {
		f.focus = (f.focus + len(ins) - 1) % len(ins)
	} else {
		f.focus = (f.focus + 1) % len(ins)
	}
	return ins[f.focus].Focus()
}

type productsView struct {
	table     table.Model
	search    textinput.Model
	searching bool
	filtered  []domain.Product
	form      productForm
	mode      productsMode
	editID    int
}

func newProductsView() productsView {
	cols := []table.Column{
		{Title: "Name", Width: 28},
		{Title: "Price", Width: 10},
		{Title: "Stock", Width: 7},
		{Title: "Status", Width: 12},
	}
	t := table.New(table.WithColumns(cols), table.WithHeight(12))
	t.Focus()

	search := textinput.New()
	search.Placeholder = "Search products..."
	search.CharLimit = 60

	return productsView{table: t, search: search, form: newProductForm()}
}

func (v *productsView) resize(width, height int) {
	if height > 16 {
		v.table.SetHeight(height - 10)
	}
}

// syncRows recomputes the filtered slice from the directory cache and the
// current search term. Called after every fetch and on every search
// keystroke; the filter itself never touches the network.
func (v *productsView) syncRows(dir *usecase.Directory) {
	v.filtered = dir.Search(v.search.Value())
	rows := make([]table.Row, 0, len(v.filtered))
	for _, p := range v.filtered {
		status := "In Stock"
		if p.Stock <= 0 {
			status = "Out of Stock"
		}
		rows = append(rows, table.Row{
			p.Name,
			fmt.Sprintf("$%.2f", p.Price),
			strconv.Itoa(p.Stock),
			status,
		})
	}
	v.table.SetRows(rows)
	if cur := v.table.Cursor(); cur >= len(rows) && len(rows) > 0 {
		v.table.SetCursor(len(rows) - 1)
	}
}

func (v *productsView) selected() (domain.Product, bool) {
	cur := v.table.Cursor()
	if cur < 0 || cur >= len(v.filtered) {
		return domain.Product{}, false
	}
	return v.filtered[cur], true
}

func (m *Model) createCmd(name, price, stock string) tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{err: m.dir.Create(context.Background(), name, price, stock)}
	}
}

func (m *Model) updateCmd(id int, draft domain.ProductDraft) tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{err: m.dir.Update(context.Background(), id, draft)}
	}
}

func (m *Model) removeCmd(id int) tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{err: m.dir.Remove(context.Background(), id)}
	}
}

func (m *Model) updateProducts(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := &m.products

	if v.mode != modeBrowse {
		return m.updateProductForm(msg)
	}

	if v.searching {
		switch msg.String() {
		case "esc", "enter":
			v.searching = false
			v.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		v.syncRows(m.dir)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab", "g":
		return m, m.enterRoute(usecase.RouteDashboard)
	case "r":
		m.loading = true
		return m, m.fetchProductsCmd()
	case "l":
		if err := m.auth.Logout(); err != nil {
			m.log.Errorf("Shell: Logout failed: %v", err)
		}
		return m, m.enterRoute(usecase.RouteLogin)
	case "/":
		v.searching = true
		return m, v.search.Focus()
	case "a":
		v.mode = modeAdding
		return m, v.form.reset()
	case "e":
		if p, ok := v.selected(); ok {
			v.mode = modeEditing
			v.editID = p.ID
			return m, v.form.prefill(p)
		}
		return m, nil
	case "d":
		if p, ok := v.selected(); ok {
			m.loading = true
			return m, m.removeCmd(p.ID)
		}
		return m, nil
	case "s":
		if p, ok := v.selected(); ok {
			m.stock.Open(p)
			return m, m.stockDlg.reset()
		}
		return m, nil
	case "enter", " ":
		// Out-of-stock products cannot be added, same guard as the
		// original's disabled button. The cart itself never checks stock.
		if p, ok := v.selected(); ok && p.Stock > 0 {
			m.checkout.AddToCart(p)
		}
		return m, nil
	case "c":
		m.cart.open = true
		m.cart.sel = 0
		return m, nil
	}

	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return m, cmd
}

func (m *Model) updateProductForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := &m.products
	f := &v.form

	switch msg.String() {
	case "esc":
		v.mode = modeBrowse
		return m, nil
	case "tab", "down":
		return m, f.cycle(false)
	case "shift+tab", "up":
		return m, f.cycle(true)
	case "enter":
		if v.mode == modeAdding {
			m.loading = true
			return m, m.createCmd(f.name.Value(), f.price.Value(), f.stock.Value())
		}
		draft, err := domain.ParseDraft(f.name.Value(), f.price.Value(), f.stock.Value())
		if err != nil {
			f.err = err
			return m, nil
		}
		m.loading = true
		return m, m.updateCmd(v.editID, draft)
	}

	ins := f.inputs()
	var cmd tea.Cmd
	*ins[f.focus], cmd = ins[f.focus].Update(msg)
	return m, cmd
}

func (m *Model) viewProducts() string {
	v := &m.products

	if v.mode != modeBrowse {
		return m.viewProductForm()
	}

	search := v.search.View()
	cartBadge := m.styles.Faint.Render(fmt.Sprintf("Cart (%d)", m.checkout.Len()))
	top := lipgloss.JoinHorizontal(lipgloss.Center, search, "  ", cartBadge)

	help := m.styles.Help.Render(
		"enter: add to cart · c: cart · a: add · e: edit · d: delete · s: stock · /: search · r: refresh · g: dashboard · l: logout · q: quit")

	return lipgloss.JoinVertical(lipgloss.Left, top, v.table.View(), help)
}

func (m *Model) viewProductForm() string {
	v := &m.products
	f := &v.form

	title := "Add New Product"
	if v.mode == modeEditing {
		title = "Edit Product Details"
	}

	lines := []string{
		m.styles.Title.Render(title),
		"",
		f.name.View(),
		f.price.View(),
		f.stock.View(),
	}
	if f.err != nil {
		lines = append(lines, "", m.styles.Error.Render(f.err.Error()))
	}
	form := m.styles.Dialog.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	return form + "\n" + m.styles.Help.Render("enter: save · tab: next field · esc: cancel")
}
