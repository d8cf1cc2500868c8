package usecase

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"store_admin/internal/domain"
)

func newCheckoutFixture(client *fakeClient) (*Checkout, *fakeNav, *fakeNotifier) {
	nav := &fakeNav{}
	notifier := &fakeNotifier{}
	dir := NewDirectory(client, nav, notifier, testLogger())
	co := NewCheckout(client, dir, nav, notifier, testLogger())
	return co, nav, notifier
}

func TestAddToCartRepeatedClicks(t *testing.T) {
	co, _, _ := newCheckoutFixture(&fakeClient{})
	widget := domain.Product{ID: 1, Name: "Widget", Price: 10.00, Stock: 5}

	co.AddToCart(widget)
	co.AddToCart(widget)
	co.AddToCart(widget)

	require.Equal(t, 1, co.Len())
	assert.Equal(t, 3, co.Lines()[0].Quantity)
	assert.Equal(t, "30.00", co.Total().StringFixed(2))
}

func TestUpdateQuantityRemoveAndNoOp(t *testing.T) {
	co, _, _ := newCheckoutFixture(&fakeClient{})
	co.AddToCart(domain.Product{ID: 1, Name: "Widget", Price: 10.00})

	co.UpdateQuantity(99, 5)
	assert.Equal(t, 1, co.Len(), "unknown id must not create a line")

	co.UpdateQuantity(1, 0)
	assert.Equal(t, 0, co.Len())
}

func TestCheckoutSuccess(t *testing.T) {
	client := &fakeClient{products: []domain.Product{{ID: 1, Name: "Widget", Price: 10.00, Stock: 3}}}
	co, nav, notifier := newCheckoutFixture(client)

	co.AddToCart(domain.Product{ID: 1, Name: "Widget", Price: 10.00, Stock: 5})
	co.AddToCart(domain.Product{ID: 1, Name: "Widget", Price: 10.00, Stock: 5})
	require.Equal(t, "20.00", co.Total().StringFixed(2))

	require.NoError(t, co.Submit(context.Background()))

	assert.Equal(t, 0, co.Len(), "cart must be cleared on success")
	require.Len(t, client.sales, 1)
	assert.Equal(t, []domain.SaleItem{{ProductID: 1, Quantity: 2, Price: 10.00}}, client.sales[0])
	assert.Equal(t, 1, client.listCnt, "success must trigger a product re-fetch")
	assert.Equal(t, []string{"Checkout completed successfully!"}, notifier.successes)
	assert.Empty(t, nav.routes)
}

func TestCheckoutEmptyCartIsNoOp(t *testing.T) {
	client := &fakeClient{}
	co, _, notifier := newCheckoutFixture(client)

	require.NoError(t, co.Submit(context.Background()))
	assert.Empty(t, client.sales)
	assert.Empty(t, notifier.successes)
}

func TestCheckoutSessionExpiredPreservesCart(t *testing.T) {
	client := &fakeClient{saleErr: domain.ErrSessionExpired}
	co, nav, notifier := newCheckoutFixture(client)
	co.AddToCart(domain.Product{ID: 1, Name: "Widget", Price: 10.00})

	err := co.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrSessionExpired)

	assert.Equal(t, []string{RouteLogin}, nav.routes)
	assert.Equal(t, 1, co.Len(), "cart must be preserved on session expiry")
	assert.Empty(t, notifier.errors, "session expiry redirects without a user-visible error")
	assert.Equal(t, 0, client.listCnt)
}

func TestCheckoutMissingSessionRedirects(t *testing.T) {
	client := &fakeClient{saleErr: domain.ErrNoSession}
	co, nav, _ := newCheckoutFixture(client)
	co.AddToCart(domain.Product{ID: 1, Name: "Widget", Price: 10.00})

	err := co.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoSession)
	assert.Equal(t, []string{RouteLogin}, nav.routes)
	assert.Equal(t, 1, co.Len())
}

func TestCheckoutBackendRejectionSurfacesDetail(t *testing.T) {
	client := &fakeClient{saleErr: &domain.APIError{Status: http.StatusBadRequest, Detail: "Not enough stock"}}
	co, nav, notifier := newCheckoutFixture(client)
	co.AddToCart(domain.Product{ID: 1, Name: "Widget", Price: 10.00})

	err := co.Submit(context.Background())
	require.Error(t, err)

	assert.Equal(t, []string{"Not enough stock"}, notifier.errors)
	assert.Equal(t, 1, co.Len(), "cart must be preserved so the user can retry")
	assert.Empty(t, nav.routes)
}

func TestCheckoutBackendRejectionWithoutDetailUsesFallback(t *testing.T) {
	client := &fakeClient{saleErr: &domain.APIError{Status: http.StatusInternalServerError}}
	co, _, notifier := newCheckoutFixture(client)
	co.AddToCart(domain.Product{ID: 1, Name: "Widget", Price: 10.00})

	_ = co.Submit(context.Background())
	assert.Equal(t, []string{"Checkout failed"}, notifier.errors)
	assert.Equal(t, 1, co.Len())
}

func TestCheckoutTransportFailure(t *testing.T) {
	client := &fakeClient{saleErr: errors.New("connection refused")}
	co, nav, notifier := newCheckoutFixture(client)
	co.AddToCart(domain.Product{ID: 1, Name: "Widget", Price: 10.00})

	err := co.Submit(context.Background())
	require.Error(t, err)

	assert.Equal(t, []string{"Error processing checkout. Please try again."}, notifier.errors)
	assert.Equal(t, 1, co.Len())
	assert.Empty(t, nav.routes)
}

func TestQuantityEditDuringSubmitIsSafe(t *testing.T) {
	client := &fakeClient{}
	co, _, _ := newCheckoutFixture(client)
	co.AddToCart(domain.Product{ID: 1, Name: "Widget", Price: 10.00, Stock: 5})

	inFlight := make(chan struct{})
	release := make(chan struct{})
	client.saleHook = func() {
		close(inFlight)
		<-release
	}

	done := make(chan error, 1)
	go func() { done <- co.Submit(context.Background()) }()

	<-inFlight
	co.UpdateQuantity(1, 4)
	close(release)
	require.NoError(t, <-done)

	require.Len(t, client.sales, 1)
	require.Len(t, client.sales[0], 1)
	assert.Equal(t, 1, client.sales[0][0].Quantity, "payload is the snapshot taken at submit time")
	assert.Equal(t, 0, co.Len(), "post-success clear wipes edits made while the request was in flight")
}

func TestConcurrentCartMutationsKeepOneLinePerProduct(t *testing.T) {
	co, _, _ := newCheckoutFixture(&fakeClient{})
	widget := domain.Product{ID: 1, Name: "Widget", Price: 10.00, Stock: 5}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				co.AddToCart(widget)
				_ = co.Lines()
				_ = co.Total()
			}
		}()
	}
	wg.Wait()

	lines := co.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 100, lines[0].Quantity)
}
