package usecase

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"store_admin/internal/domain"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

type fakeNav struct {
	mu     sync.Mutex
	routes []string
}

func (n *fakeNav) Goto(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, route)
}

type fakeNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *fakeNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *fakeNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

type updateCall struct {
	ID    int
	Draft domain.ProductDraft
}

// fakeClient is a programmable APIClient double with call capture. Calls are
// serialized with mu so tests can exercise use cases from several goroutines.
type fakeClient struct {
	mu sync.Mutex

	products []domain.Product
	listErr  error
	listCnt  int

	createErr error
	created   []domain.ProductDraft

	updateErr error
	updates   []updateCall

	deleteErr error
	deleted   []int

	saleErr  error
	sales    [][]domain.SaleItem
	saleHook func()

	stats   domain.DashboardStats
	series  []domain.SalesPoint
	recent  []domain.RecentSale
	dashErr error
}

func (f *fakeClient) Login(ctx context.Context, email, password string) error { return nil }

func (f *fakeClient) Register(ctx context.Context, email, password string) error { return nil }

func (f *fakeClient) ListProducts(ctx context.Context) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCnt++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.products, nil
}

func (f *fakeClient) CreateProduct(ctx context.Context, draft domain.ProductDraft) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, draft)
	p := domain.Product{ID: 100 + len(f.created), Name: draft.Name, Price: draft.Price, Stock: draft.Stock}
	return &p, nil
}

func (f *fakeClient) UpdateProduct(ctx context.Context, id int, draft domain.ProductDraft) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updates = append(f.updates, updateCall{ID: id, Draft: draft})
	p := domain.Product{ID: id, Name: draft.Name, Price: draft.Price, Stock: draft.Stock}
	return &p, nil
}

func (f *fakeClient) DeleteProduct(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeClient) SubmitSale(ctx context.Context, items []domain.SaleItem) error {
	f.mu.Lock()
	hook := f.saleHook
	f.mu.Unlock()
	if hook != nil {
		hook()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saleErr != nil {
		return f.saleErr
	}
	f.sales = append(f.sales, items)
	return nil
}

func (f *fakeClient) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.dashErr != nil {
		return nil, f.dashErr
	}
	stats := f.stats
	return &stats, nil
}

func (f *fakeClient) SalesChart(ctx context.Context) ([]domain.SalesPoint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.dashErr != nil {
		return nil, f.dashErr
	}
	return f.series, nil
}

func (f *fakeClient) RecentSales(ctx context.Context) ([]domain.RecentSale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.dashErr != nil {
		return nil, f.dashErr
	}
	return f.recent, nil
}
