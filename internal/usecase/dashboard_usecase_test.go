package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"store_admin/internal/domain"
)

func TestDashboardRefresh(t *testing.T) {
	client := &fakeClient{
		stats:  domain.DashboardStats{TotalProducts: 3, TotalSales: 12, TotalRevenue: 240.5, LowStockProducts: 1},
		series: []domain.SalesPoint{{Date: "2026-08-29", Sales: 40}},
		recent: []domain.RecentSale{{ID: 1, ProductName: "Widget", Quantity: 2, TotalAmount: 20, SaleDate: "2026-08-29 10:00"}},
	}
	nav := &fakeNav{}
	dash := NewDashboard(client, nav, testLogger())

	require.NoError(t, dash.Refresh(context.Background()))

	assert.Equal(t, 12, dash.Stats().TotalSales)
	require.Len(t, dash.Series(), 1)
	assert.Equal(t, 40.0, dash.Series()[0].Sales)
	require.Len(t, dash.Recent(), 1)
	assert.Equal(t, "Widget", dash.Recent()[0].ProductName)
	assert.Empty(t, nav.routes)
}

func TestDashboardSessionExpiredRedirects(t *testing.T) {
	client := &fakeClient{dashErr: domain.ErrSessionExpired}
	nav := &fakeNav{}
	dash := NewDashboard(client, nav, testLogger())

	err := dash.Refresh(context.Background())
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.Equal(t, []string{RouteLogin}, nav.routes)
}

func TestDashboardKeepsLastGoodDataOnFailure(t *testing.T) {
	client := &fakeClient{
		stats: domain.DashboardStats{TotalProducts: 3},
	}
	dash := NewDashboard(client, &fakeNav{}, testLogger())
	require.NoError(t, dash.Refresh(context.Background()))

	client.dashErr = errors.New("connection refused")
	require.Error(t, dash.Refresh(context.Background()))

	assert.Equal(t, 3, dash.Stats().TotalProducts, "stale data is kept until the next good fetch")
}

func TestDashboardReadsDuringRefresh(t *testing.T) {
	client := &fakeClient{stats: domain.DashboardStats{TotalProducts: 3}}
	dash := NewDashboard(client, &fakeNav{}, testLogger())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 25; i++ {
			assert.NoError(t, dash.Refresh(context.Background()))
		}
	}()
	for i := 0; i < 50; i++ {
		_ = dash.Stats()
		_ = dash.Series()
		_ = dash.Recent()
	}
	wg.Wait()

	assert.Equal(t, 3, dash.Stats().TotalProducts)
}
