package usecase

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"store_admin/internal/domain"
)

// StockFlow is the bounded stock adjustment dialog state. Opening it
// snapshots the product; committing sends a full-record update with stock
// replaced by snapshot + delta. The dialog state is discarded on commit
// regardless of the update's outcome, and on cancel. Commit runs inside a
// command goroutine while the view keeps polling Active, so state access
// goes through mu.
type StockFlow struct {
	dir *Directory
	log *logrus.Logger

	mu      sync.Mutex
	product domain.Product
	adj     *domain.StockAdjustment
}

func NewStockFlow(dir *Directory, logger *logrus.Logger) *StockFlow {
	return &StockFlow{dir: dir, log: logger}
}

// Open snapshots the product's current stock and zeroes the delta.
func (f *StockFlow) Open(p domain.Product) {
	adj := domain.NewStockAdjustment(p)
	f.mu.Lock()
	f.product = p
	f.adj = &adj
	f.mu.Unlock()
	f.log.Debugf("StockFlow: Opened for product ID %d, current stock %d", p.ID, p.Stock)
}

func (f *StockFlow) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.adj != nil
}

func (f *StockFlow) Product() domain.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.product
}

func (f *StockFlow) Delta() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.adj == nil {
		return 0
	}
	return f.adj.Delta
}

func (f *StockFlow) Inc() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.adj != nil {
		f.adj.Inc()
	}
}

func (f *StockFlow) Dec() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.adj != nil {
		f.adj.Dec()
	}
}

// SetDeltaInput applies direct numeric entry; unparseable input becomes 0.
func (f *StockFlow) SetDeltaInput(input string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.adj != nil {
		f.adj.SetDeltaInput(input)
	}
}

// NewStock is the derived value that would be committed.
func (f *StockFlow) NewStock() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.adj == nil {
		return 0
	}
	return f.adj.NewStock()
}

func (f *StockFlow) Cancel() {
	f.mu.Lock()
	f.adj = nil
	f.mu.Unlock()
	f.log.Debug("StockFlow: Cancelled")
}

// Commit sends the product's full record with stock replaced by the derived
// new stock. The delta itself is never sent, and no lower bound is enforced
// here. The adjustment is discarded before the update resolves, so the
// dialog never lingers on failure.
func (f *StockFlow) Commit(ctx context.Context) error {
	f.mu.Lock()
	if f.adj == nil {
		f.mu.Unlock()
		return nil
	}
	draft := domain.DraftOf(f.product)
	draft.Stock = f.adj.NewStock()
	id := f.product.ID
	delta := f.adj.Delta
	f.adj = nil
	f.mu.Unlock()

	f.log.Infof("StockFlow: Committing stock %d (delta %+d) for product ID %d", draft.Stock, delta, id)
	return f.dir.Update(ctx, id, draft)
}
