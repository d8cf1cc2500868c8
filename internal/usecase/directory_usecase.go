package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"store_admin/internal/clients"
	"store_admin/internal/domain"
)

// Directory is the product directory client: it owns the cached product list
// and every mutation against it. The cache is replaced wholesale on each
// successful fetch, and every successful mutation triggers a full re-fetch
// rather than an optimistic local patch. Overlapping calls are not sequenced;
// the last response to arrive wins. Fetches run inside command goroutines
// while the update loop reads the cache, so access goes through mu.
type Directory struct {
	client   clients.APIClient
	nav      Navigator
	notifier Notifier
	log      *logrus.Logger

	mu       sync.RWMutex
	products []domain.Product
}

func NewDirectory(client clients.APIClient, nav Navigator, notifier Notifier, logger *logrus.Logger) *Directory {
	return &Directory{
		client:   client,
		nav:      nav,
		notifier: notifier,
		log:      logger,
	}
}

// handleSession routes missing or expired credentials to the login screen.
// Returns true when the error was a session error.
func (d *Directory) handleSession(err error) bool {
	if errors.Is(err, domain.ErrNoSession) || errors.Is(err, domain.ErrSessionExpired) {
		d.log.Warn("Directory: No valid session, redirecting to login")
		d.nav.Goto(RouteLogin)
		return true
	}
	return false
}

// Fetch replaces the entire cached list with the backend's response.
func (d *Directory) Fetch(ctx context.Context) error {
	d.log.Debug("Directory: Fetching product list")
	products, err := d.client.ListProducts(ctx)
	if err != nil {
		if d.handleSession(err) {
			return err
		}
		d.log.Errorf("Directory: Failed to fetch products: %v", err)
		return err
	}
	d.mu.Lock()
	d.products = products
	d.mu.Unlock()
	d.log.Debugf("Directory: Cache replaced with %d products", len(products))
	return nil
}

// Products returns the cached list. The slice is never mutated in place, only
// replaced wholesale, so callers may keep iterating a stale copy.
func (d *Directory) Products() []domain.Product {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.products
}

// Product looks up a cached product by ID.
func (d *Directory) Product(id int) (domain.Product, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, p := range d.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Search filters the cached list with a case-insensitive substring match on
// the name. It never touches the network.
func (d *Directory) Search(term string) []domain.Product {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if term == "" {
		return d.products
	}
	needle := strings.ToLower(term)
	var matched []domain.Product
	for _, p := range d.products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			matched = append(matched, p)
		}
	}
	return matched
}

// Create coerces raw form input into a draft and submits it. Success triggers
// a full re-fetch; there is no optimistic insert.
func (d *Directory) Create(ctx context.Context, name, price, stock string) error {
	draft, err := domain.ParseDraft(name, price, stock)
	if err != nil {
		d.log.Warnf("Directory: Rejected product draft: %v", err)
		return err
	}

	created, err := d.client.CreateProduct(ctx, draft)
	if err != nil {
		if d.handleSession(err) {
			return err
		}
		d.log.Errorf("Directory: Failed to create product '%s': %v", draft.Name, err)
		d.notifier.Error(failureMessage(err, "Failed to create product"))
		return err
	}

	d.log.Infof("Directory: Product '%s' created with ID %d", created.Name, created.ID)
	return d.Fetch(ctx)
}

// Update replaces the full record: name, price and stock are all resent.
// Success triggers a full re-fetch.
func (d *Directory) Update(ctx context.Context, id int, draft domain.ProductDraft) error {
	if _, err := d.client.UpdateProduct(ctx, id, draft); err != nil {
		if d.handleSession(err) {
			return err
		}
		d.log.Errorf("Directory: Failed to update product ID %d: %v", id, err)
		d.notifier.Error(failureMessage(err, "Failed to update product"))
		return err
	}
	d.log.Infof("Directory: Product ID %d updated", id)
	return d.Fetch(ctx)
}

// Remove deletes a product and re-fetches the list on success.
func (d *Directory) Remove(ctx context.Context, id int) error {
	if err := d.client.DeleteProduct(ctx, id); err != nil {
		if d.handleSession(err) {
			return err
		}
		d.log.Errorf("Directory: Failed to delete product ID %d: %v", id, err)
		d.notifier.Error(failureMessage(err, "Failed to delete product"))
		return err
	}
	d.log.Infof("Directory: Product ID %d deleted", id)
	return d.Fetch(ctx)
}

// failureMessage prefers the server-provided detail and falls back to a
// generic message for transport failures and bodiless errors.
func failureMessage(err error, fallback string) string {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
