package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"store_admin/internal/clients"
	"store_admin/internal/domain"
)

// Checkout is the cart/checkout reconciler. It keeps the local line-item
// collection keyed by product ID, derives totals from the add-time price
// snapshots, and submits the whole cart as one batch sale. No stock
// validation happens locally; over-selling is caught by the backend.
// Submission runs inside a command goroutine while the cart view keeps
// handling quantity keys, so cart access goes through mu.
type Checkout struct {
	client   clients.APIClient
	dir      *Directory
	nav      Navigator
	notifier Notifier
	log      *logrus.Logger

	mu   sync.Mutex
	cart domain.Cart
}

func NewCheckout(client clients.APIClient, dir *Directory, nav Navigator, notifier Notifier, logger *logrus.Logger) *Checkout {
	return &Checkout{
		client:   client,
		dir:      dir,
		nav:      nav,
		notifier: notifier,
		log:      logger,
	}
}

// AddToCart adds one unit of the product, merging into an existing line.
// Purely local; repeated clicks each add exactly one unit.
func (u *Checkout) AddToCart(p domain.Product) {
	u.mu.Lock()
	u.cart.Add(p)
	lines := u.cart.Len()
	u.mu.Unlock()
	u.log.Debugf("Checkout: Added product ID %d to cart, %d lines total", p.ID, lines)
}

// UpdateQuantity sets a line's quantity. Zero or less removes the line; an
// unknown product ID is a no-op.
func (u *Checkout) UpdateQuantity(productID, quantity int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.cart.SetQuantity(productID, quantity)
}

// Lines returns a copy of the current line items, safe to iterate while the
// cart keeps changing.
func (u *Checkout) Lines() []domain.CartLine {
	u.mu.Lock()
	defer u.mu.Unlock()
	lines := make([]domain.CartLine, len(u.cart.Lines))
	copy(lines, u.cart.Lines)
	return lines
}

func (u *Checkout) Len() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.cart.Len()
}

// Total is the checkout amount shown to the user.
func (u *Checkout) Total() decimal.Decimal {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.cart.Total()
}

// Submit sends the batch sale. On success the cart is cleared, a transient
// success notice is raised and the product directory is re-fetched so the
// displayed stock reflects the sale. On any failure the cart is preserved so
// the user can retry; a session failure additionally redirects to login.
func (u *Checkout) Submit(ctx context.Context) error {
	// The payload is snapshotted up front; edits made while the request is in
	// flight are wiped by the post-success clear, as a click during an
	// in-flight checkout would be.
	u.mu.Lock()
	items := u.cart.SaleItems()
	total := u.cart.Total()
	u.mu.Unlock()
	if len(items) == 0 {
		return nil
	}

	u.log.Infof("Checkout: Submitting batch sale with %d lines, total %s", len(items), total.StringFixed(2))
	err := u.client.SubmitSale(ctx, items)
	if err != nil {
		if errors.Is(err, domain.ErrNoSession) || errors.Is(err, domain.ErrSessionExpired) {
			u.log.Warn("Checkout: No valid session, redirecting to login; cart preserved")
			u.nav.Goto(RouteLogin)
			return err
		}
		var apiErr *domain.APIError
		if errors.As(err, &apiErr) {
			u.log.Warnf("Checkout: Backend rejected sale with status %d: %s", apiErr.Status, apiErr.Detail)
			u.notifier.Error(failureMessage(err, "Checkout failed"))
			return err
		}
		u.log.Errorf("Checkout: Transport failure during sale submission: %v", err)
		u.notifier.Error("Error processing checkout. Please try again.")
		return err
	}

	u.mu.Lock()
	u.cart.Clear()
	u.mu.Unlock()
	u.notifier.Success("Checkout completed successfully!")
	u.log.Info("Checkout: Sale recorded, cart cleared, refreshing products")
	if err := u.dir.Fetch(ctx); err != nil {
		u.log.Warnf("Checkout: Post-checkout product refresh failed: %v", err)
	}
	return nil
}
