package usecase

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"store_admin/internal/domain"
)

func newDirectoryFixture(client *fakeClient) (*Directory, *fakeNav, *fakeNotifier) {
	nav := &fakeNav{}
	notifier := &fakeNotifier{}
	return NewDirectory(client, nav, notifier, testLogger()), nav, notifier
}

func TestFetchReplacesCacheWholesale(t *testing.T) {
	client := &fakeClient{products: []domain.Product{
		{ID: 1, Name: "Widget", Price: 10, Stock: 5},
		{ID: 2, Name: "Gadget", Price: 2.5, Stock: 0},
	}}
	dir, _, _ := newDirectoryFixture(client)

	require.NoError(t, dir.Fetch(context.Background()))
	assert.Len(t, dir.Products(), 2)

	client.products = []domain.Product{{ID: 3, Name: "Gizmo", Price: 1, Stock: 1}}
	require.NoError(t, dir.Fetch(context.Background()))
	require.Len(t, dir.Products(), 1)
	assert.Equal(t, "Gizmo", dir.Products()[0].Name)
}

func TestFetchWithoutSessionRedirects(t *testing.T) {
	client := &fakeClient{listErr: domain.ErrNoSession}
	dir, nav, _ := newDirectoryFixture(client)

	err := dir.Fetch(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoSession)
	assert.Equal(t, []string{RouteLogin}, nav.routes)
}

func TestFetchSessionExpiredRedirects(t *testing.T) {
	client := &fakeClient{listErr: domain.ErrSessionExpired}
	dir, nav, _ := newDirectoryFixture(client)

	err := dir.Fetch(context.Background())
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.Equal(t, []string{RouteLogin}, nav.routes)
}

func TestSearchIsPureAndCaseInsensitive(t *testing.T) {
	client := &fakeClient{products: []domain.Product{
		{ID: 1, Name: "Blue Widget"},
		{ID: 2, Name: "Red widget"},
		{ID: 3, Name: "Gadget"},
	}}
	dir, _, _ := newDirectoryFixture(client)
	require.NoError(t, dir.Fetch(context.Background()))
	fetchesBefore := client.listCnt

	matches := dir.Search("WIDGET")
	assert.Len(t, matches, 2)
	assert.Len(t, dir.Search("gad"), 1)
	assert.Len(t, dir.Search("zzz"), 0)
	assert.Len(t, dir.Search(""), 3)

	assert.Equal(t, fetchesBefore, client.listCnt, "search must never touch the network")
}

func TestCreateCoercesAndRefetches(t *testing.T) {
	client := &fakeClient{}
	dir, _, _ := newDirectoryFixture(client)

	require.NoError(t, dir.Create(context.Background(), " Widget ", "19.99", "7"))

	require.Len(t, client.created, 1)
	assert.Equal(t, domain.ProductDraft{Name: "Widget", Price: 19.99, Stock: 7}, client.created[0])
	assert.Equal(t, 1, client.listCnt, "create must trigger a full re-fetch")
}

func TestCreateRejectsInvalidDraftWithoutNetwork(t *testing.T) {
	client := &fakeClient{}
	dir, _, notifier := newDirectoryFixture(client)

	err := dir.Create(context.Background(), "", "1.00", "1")
	require.Error(t, err)
	assert.Empty(t, client.created)
	assert.Equal(t, 0, client.listCnt)
	assert.Empty(t, notifier.errors, "validation errors go back to the form, not the notice bar")
}

func TestCreateBackendFailureSurfaces(t *testing.T) {
	client := &fakeClient{createErr: &domain.APIError{Status: http.StatusBadRequest, Detail: "duplicate name"}}
	dir, _, notifier := newDirectoryFixture(client)

	err := dir.Create(context.Background(), "Widget", "1.00", "1")
	require.Error(t, err)
	assert.Equal(t, []string{"duplicate name"}, notifier.errors)
	assert.Equal(t, 0, client.listCnt, "no re-fetch on failure")
}

func TestUpdateSendsFullRecordAndRefetches(t *testing.T) {
	client := &fakeClient{}
	dir, _, _ := newDirectoryFixture(client)

	draft := domain.ProductDraft{Name: "Widget", Price: 10, Stock: 42}
	require.NoError(t, dir.Update(context.Background(), 5, draft))

	require.Len(t, client.updates, 1)
	assert.Equal(t, updateCall{ID: 5, Draft: draft}, client.updates[0])
	assert.Equal(t, 1, client.listCnt)
}

func TestUpdateSessionExpiredRedirects(t *testing.T) {
	client := &fakeClient{updateErr: domain.ErrSessionExpired}
	dir, nav, notifier := newDirectoryFixture(client)

	err := dir.Update(context.Background(), 5, domain.ProductDraft{Name: "W", Price: 1, Stock: 1})
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.Equal(t, []string{RouteLogin}, nav.routes)
	assert.Empty(t, notifier.errors)
}

func TestRemoveRefetches(t *testing.T) {
	client := &fakeClient{}
	dir, _, _ := newDirectoryFixture(client)

	require.NoError(t, dir.Remove(context.Background(), 2))
	assert.Equal(t, []int{2}, client.deleted)
	assert.Equal(t, 1, client.listCnt)
}

func TestRemoveFailureUsesFallbackMessage(t *testing.T) {
	client := &fakeClient{deleteErr: &domain.APIError{Status: http.StatusNotFound}}
	dir, _, notifier := newDirectoryFixture(client)

	err := dir.Remove(context.Background(), 2)
	require.Error(t, err)
	assert.Equal(t, []string{"Failed to delete product"}, notifier.errors)
}

func TestProductLookup(t *testing.T) {
	client := &fakeClient{products: []domain.Product{{ID: 4, Name: "Widget"}}}
	dir, _, _ := newDirectoryFixture(client)
	require.NoError(t, dir.Fetch(context.Background()))

	p, ok := dir.Product(4)
	require.True(t, ok)
	assert.Equal(t, "Widget", p.Name)

	_, ok = dir.Product(99)
	assert.False(t, ok)
}

func TestConcurrentFetchesKeepCacheConsistent(t *testing.T) {
	client := &fakeClient{products: []domain.Product{
		{ID: 1, Name: "Widget", Price: 10.00, Stock: 5},
		{ID: 2, Name: "Gadget", Price: 2.50, Stock: 0},
	}}
	dir, _, _ := newDirectoryFixture(client)

	// Refreshes overlap with reads the way spammed refresh keys overlap with
	// the view re-rendering; the cache must stay a coherent snapshot.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, dir.Fetch(context.Background()))
		}()
	}
	for i := 0; i < 50; i++ {
		_ = dir.Search("widget")
		_, _ = dir.Product(1)
	}
	wg.Wait()

	assert.Len(t, dir.Products(), 2)
	assert.Equal(t, 8, client.listCnt)
}
