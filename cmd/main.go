package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"store_admin/config"
	"store_admin/internal/clients"
	"store_admin/internal/session"
	"store_admin/internal/tui"
	"store_admin/internal/usecase"
)

// deps is everything a command needs, wired in the same order for the TUI
// and the scripting subcommands: config, logger, session store, API client.
type deps struct {
	cfg    *config.Config
	log    *logrus.Logger
	store  *session.Store
	client clients.APIClient
}

func buildDeps() *deps {
	cfg := config.LoadConfig()

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	store := session.NewStore(cfg.TokenFile, logger)
	client := clients.NewAPIClient(cfg.APIBaseURL, cfg.RequestTimeout, store, logger)

	return &deps{cfg: cfg, log: logger, store: store, client: client}
}

var rootCmd = &cobra.Command{
	Use:   "store-admin",
	Short: "Terminal client for the e-commerce inventory and sales backend",
	Long: `store-admin is the terminal client of the e-commerce administration
backend: dashboard overview, product management, stock adjustments and
cart-based batch checkout.

Run without arguments to start the interactive interface. Subcommands
drive the same operations non-interactively for scripting.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := buildDeps()

		// The TUI owns the terminal; keep log noise out of it unless the
		// user explicitly asked for debug output.
		if d.log.GetLevel() < logrus.DebugLevel {
			d.log.SetOutput(io.Discard)
		}

		nav, notifier, shell := tui.NewShell()
		auth := usecase.NewAuth(d.client, d.store, d.log)
		dir := usecase.NewDirectory(d.client, nav, notifier, d.log)
		checkout := usecase.NewCheckout(d.client, dir, nav, notifier, d.log)
		stock := usecase.NewStockFlow(dir, d.log)
		dash := usecase.NewDashboard(d.client, nav, d.log)

		model := tui.New(tui.Deps{
			Auth:      auth,
			Directory: dir,
			Checkout:  checkout,
			Stock:     stock,
			Dashboard: dash,
			Shell:     shell,
			Log:       d.log,
		})

		p := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("interface terminated: %w", err)
		}
		return nil
	},
}

func main() {
	rootCmd.AddCommand(loginCmd, logoutCmd, registerCmd, productsCmd, dashboardCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
