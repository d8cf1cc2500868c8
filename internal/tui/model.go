// Package tui is the presentation and routing shell. It mounts the product
// directory, dashboard and checkout use cases behind a single bubbletea
// model with route-based view switching; the cart and stock dialogs render
// as overlays on top of the product list. All network work runs as tea.Cmd
// closures and reports back through typed messages.
package tui

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"store_admin/internal/usecase"
)

// notice is a transient banner. Success notices auto-dismiss after
// noticeDuration; error notices do too, so a failed retry re-raises them.
type notice struct {
	text  string
	isErr bool
}

const noticeDuration = 3 * time.Second

// shell receives navigation and notification calls from use cases running
// inside command goroutines. The update loop drains it after every async
// message.
type shell struct {
	mu           sync.Mutex
	route        string
	routeChanged bool
	pending      *notice
}

func (s *shell) Goto(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.route = route
	s.routeChanged = true
}

func (s *shell) Success(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = &notice{text: msg}
}

func (s *shell) Error(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = &notice{text: msg, isErr: true}
}

func (s *shell) drain() (route string, routed bool, n *notice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	route, routed, n = s.route, s.routeChanged, s.pending
	s.routeChanged = false
	s.pending = nil
	return route, routed, n
}

// Messages produced by command goroutines.
type (
	productsFetchedMsg struct{ err error }
	dashboardMsg       struct{ err error }
	loginDoneMsg       struct{ err error }
	registerDoneMsg    struct{ err error }
	mutationDoneMsg    struct{ err error }
	checkoutDoneMsg    struct{ err error }
	noticeExpiredMsg   struct{ seq int }
)

// Model is the root model for the admin console.
type Model struct {
	auth     *usecase.Auth
	dir      *usecase.Directory
	checkout *usecase.Checkout
	stock    *usecase.StockFlow
	dash     *usecase.Dashboard
	shell    *shell
	log      *logrus.Logger

	styles  styles
	spinner spinner.Model
	width   int
	height  int

	route   string
	loading bool

	notice    *notice
	noticeSeq int

	login    loginView
	products productsView
	cart     cartView
	stockDlg stockDialog
}

// Deps bundles the wired use cases for the shell.
type Deps struct {
	Auth      *usecase.Auth
	Directory *usecase.Directory
	Checkout  *usecase.Checkout
	Stock     *usecase.StockFlow
	Dashboard *usecase.Dashboard
	Shell     *shell
	Log       *logrus.Logger
}

// NewShell returns the navigation/notification sink handed to the use cases.
func NewShell() (usecase.Navigator, usecase.Notifier, *shell) {
	s := &shell{}
	return s, s, s
}

func New(deps Deps) *Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	// A stored credential lands on the dashboard, like the original's
	// protected default route; otherwise the login screen.
	route := usecase.RouteLogin
	if deps.Auth.LoggedIn() {
		route = usecase.RouteDashboard
	}

	return &Model{
		auth:     deps.Auth,
		dir:      deps.Directory,
		checkout: deps.Checkout,
		stock:    deps.Stock,
		dash:     deps.Dashboard,
		shell:    deps.Shell,
		log:      deps.Log,
		styles:   defaultStyles(),
		spinner:  sp,
		route:    route,
		login:    newLoginView(),
		products: newProductsView(),
		cart:     newCartView(),
		stockDlg: newStockDialog(),
	}
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.route == usecase.RouteDashboard {
		m.loading = true
		cmds = append(cmds, m.fetchDashboardCmd())
	} else {
		cmds = append(cmds, m.login.focusCmd())
	}
	return tea.Batch(cmds...)
}

func (m *Model) fetchProductsCmd() tea.Cmd {
	return func() tea.Msg {
		return productsFetchedMsg{err: m.dir.Fetch(context.Background())}
	}
}

func (m *Model) fetchDashboardCmd() tea.Cmd {
	return func() tea.Msg {
		return dashboardMsg{err: m.dash.Refresh(context.Background())}
	}
}

func (m *Model) checkoutCmd() tea.Cmd {
	return func() tea.Msg {
		return checkoutDoneMsg{err: m.checkout.Submit(context.Background())}
	}
}

// raise shows a notice and schedules its expiry. The sequence number keeps a
// stale timer from clearing a newer notice.
func (m *Model) raise(n *notice) tea.Cmd {
	m.notice = n
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// drainShell applies navigation and notices produced by use cases during the
// command that just finished.
func (m *Model) drainShell() tea.Cmd {
	route, routed, n := m.shell.drain()
	var cmds []tea.Cmd
	if routed && route != m.route {
		cmds = append(cmds, m.enterRoute(route))
	}
	if n != nil {
		cmds = append(cmds, m.raise(n))
	}
	return tea.Batch(cmds...)
}

// enterRoute switches views and kicks off the route's initial fetch.
func (m *Model) enterRoute(route string) tea.Cmd {
	m.route = route
	m.cart.open = false
	m.stock.Cancel()
	switch route {
	case usecase.RouteLogin, usecase.RouteRegister:
		m.loading = false
		m.login.reset(route == usecase.RouteRegister)
		return m.login.focusCmd()
	case usecase.RouteDashboard:
		m.loading = true
		return m.fetchDashboardCmd()
	case usecase.RouteProducts:
		m.loading = true
		return m.fetchProductsCmd()
	}
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.products.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = nil
		}
		return m, nil

	case productsFetchedMsg:
		m.loading = false
		m.products.syncRows(m.dir)
		return m, m.drainShell()

	case dashboardMsg:
		m.loading = false
		return m, m.drainShell()

	case loginDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.login.err = msg.err
			return m, m.drainShell()
		}
		return m, tea.Batch(m.enterRoute(usecase.RouteDashboard), m.drainShell())

	case registerDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.login.err = msg.err
			return m, m.drainShell()
		}
		cmd := m.enterRoute(usecase.RouteLogin)
		return m, tea.Batch(cmd, m.raise(&notice{text: "Registration successful, please log in."}), m.drainShell())

	case mutationDoneMsg:
		m.loading = false
		if m.products.mode != modeBrowse {
			if msg.err != nil {
				m.products.form.err = msg.err
			} else {
				m.products.mode = modeBrowse
			}
		}
		m.products.syncRows(m.dir)
		return m, m.drainShell()

	case checkoutDoneMsg:
		m.loading = false
		if msg.err == nil {
			m.cart.open = false
		}
		m.products.syncRows(m.dir)
		return m, m.drainShell()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Overlays capture input before the underlying view.
	if m.stock.Active() {
		return m.updateStockDialog(msg)
	}
	if m.cart.open {
		return m.updateCart(msg)
	}

	switch m.route {
	case usecase.RouteLogin, usecase.RouteRegister:
		return m.updateLogin(msg)
	case usecase.RouteDashboard:
		return m.updateDashboard(msg)
	case usecase.RouteProducts:
		return m.updateProducts(msg)
	}
	return m, nil
}

func (m *Model) View() string {
	var body string
	switch {
	case m.stock.Active():
		body = m.viewStockDialog()
	case m.cart.open:
		body = m.viewCart()
	default:
		switch m.route {
		case usecase.RouteLogin, usecase.RouteRegister:
			body = m.viewLogin()
		case usecase.RouteDashboard:
			body = m.viewDashboard()
		case usecase.RouteProducts:
			body = m.viewProducts()
		}
	}

	header := m.viewHeader()
	return header + "\n" + body
}

func (m *Model) viewHeader() string {
	title := m.styles.Title.Render("E-commerce Dashboard")

	var tabs string
	if m.route == usecase.RouteDashboard || m.route == usecase.RouteProducts {
		dash := m.styles.Tab.Render("Dashboard")
		prods := m.styles.Tab.Render("Products")
		if m.route == usecase.RouteDashboard {
			dash = m.styles.ActiveTab.Render("Dashboard")
		} else {
			prods = m.styles.ActiveTab.Render("Products")
		}
		tabs = dash + prods
	}

	line := title + tabs
	if m.loading {
		line += " " + m.spinner.View()
	}
	if m.notice != nil {
		if m.notice.isErr {
			line += "  " + m.styles.Error.Render(m.notice.text)
		} else {
			line += "  " + m.styles.Success.Render(m.notice.text)
		}
	}
	return line
}
