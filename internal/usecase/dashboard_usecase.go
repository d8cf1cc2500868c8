package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"store_admin/internal/clients"
	"store_admin/internal/domain"
)

// Dashboard fetches the summary view data: stat cards, the sales series and
// the recent sales table. Failures keep whatever was last fetched. Refresh
// runs inside a command goroutine while the view reads the cached data, so
// access goes through mu.
type Dashboard struct {
	client clients.APIClient
	nav    Navigator
	log    *logrus.Logger

	mu     sync.RWMutex
	stats  domain.DashboardStats
	series []domain.SalesPoint
	recent []domain.RecentSale
}

func NewDashboard(client clients.APIClient, nav Navigator, logger *logrus.Logger) *Dashboard {
	return &Dashboard{client: client, nav: nav, log: logger}
}

// Refresh fetches all three dashboard resources.
func (d *Dashboard) Refresh(ctx context.Context) error {
	stats, err := d.client.DashboardStats(ctx)
	if err != nil {
		return d.fail("stats", err)
	}
	series, err := d.client.SalesChart(ctx)
	if err != nil {
		return d.fail("sales chart", err)
	}
	recent, err := d.client.RecentSales(ctx)
	if err != nil {
		return d.fail("recent sales", err)
	}

	d.mu.Lock()
	d.stats = *stats
	d.series = series
	d.recent = recent
	d.mu.Unlock()

	d.log.Debug("Dashboard: Refreshed stats, sales chart and recent sales")
	return nil
}

func (d *Dashboard) fail(what string, err error) error {
	if errors.Is(err, domain.ErrNoSession) || errors.Is(err, domain.ErrSessionExpired) {
		d.log.Warnf("Dashboard: No valid session while fetching %s, redirecting to login", what)
		d.nav.Goto(RouteLogin)
		return err
	}
	d.log.Errorf("Dashboard: Failed to fetch %s: %v", what, err)
	return err
}

func (d *Dashboard) Stats() domain.DashboardStats {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.stats
}

func (d *Dashboard) Series() []domain.SalesPoint {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.series
}

func (d *Dashboard) Recent() []domain.RecentSale {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.recent
}
