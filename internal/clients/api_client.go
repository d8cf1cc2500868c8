package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"store_admin/internal/domain"
	"store_admin/internal/session"
)

// APIClient is the client side of the admin backend's REST contract. Every
// authenticated call reads the credential fresh from the session store; a
// missing credential short-circuits with domain.ErrNoSession before any
// network traffic, and a 401 from the backend clears the store and returns
// domain.ErrSessionExpired. That is the only place credential invalidation
// happens.
type APIClient interface {
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, email, password string) error

	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, draft domain.ProductDraft) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int, draft domain.ProductDraft) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int) error

	SubmitSale(ctx context.Context, items []domain.SaleItem) error

	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
	SalesChart(ctx context.Context) ([]domain.SalesPoint, error)
	RecentSales(ctx context.Context) ([]domain.RecentSale, error)
}

type httpAPIClient struct {
	baseURL string
	client  *http.Client
	store   *session.Store
	log     *logrus.Logger
}

// NewAPIClient builds the HTTP implementation. A zero timeout disables the
// client-side deadline; overlapping calls are not queued or de-duplicated.
func NewAPIClient(baseURL string, timeout time.Duration, store *session.Store, logger *logrus.Logger) APIClient {
	return &httpAPIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		store:   store,
		log:     logger,
	}
}

type errorBody struct {
	Detail string `json:"detail"`
}

// do runs one authenticated round trip. body is JSON-encoded when non-nil,
// and the response is decoded into out when out is non-nil and the status is
// 2xx.
func (c *httpAPIClient) do(ctx context.Context, method, path string, body, out any) error {
	token, err := c.store.Token()
	if err != nil {
		c.log.Warnf("APIClient: No stored credential for %s %s", method, path)
		return err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debugf("APIClient: %s %s", method, path)
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("APIClient: %s %s transport failure: %v", method, path, err)
		return fmt.Errorf("failed to reach backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.log.Warnf("APIClient: %s %s rejected with 401, clearing stored credential", method, path)
		if err := c.store.Clear(); err != nil {
			c.log.Errorf("APIClient: Failed to clear credential after 401: %v", err)
		}
		return domain.ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err != nil {
			c.log.Debugf("APIClient: Could not decode error body for %s %s: %v", method, path, err)
		}
		c.log.Warnf("APIClient: %s %s failed with status %d: %s", method, path, resp.StatusCode, eb.Detail)
		return &domain.APIError{Status: resp.StatusCode, Detail: eb.Detail}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.log.Errorf("APIClient: Failed to decode %s %s response: %v", method, path, err)
			return fmt.Errorf("failed to decode backend response: %w", err)
		}
	}
	return nil
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for a bearer token and stores it. The backend
// exposes an OAuth2 password flow, so the payload is form-encoded.
func (c *httpAPIClient) Login(ctx context.Context, email, password string) error {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login",
		strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	c.log.Infof("APIClient: Logging in as %s", email)
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("APIClient: Login transport failure: %v", err)
		return fmt.Errorf("failed to reach backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		c.log.Warnf("APIClient: Login failed with status %d: %s", resp.StatusCode, eb.Detail)
		return &domain.APIError{Status: resp.StatusCode, Detail: eb.Detail}
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return fmt.Errorf("failed to decode login response: %w", err)
	}
	if lr.AccessToken == "" {
		return fmt.Errorf("backend returned an empty access token")
	}
	if err := c.store.Save(lr.AccessToken); err != nil {
		return err
	}
	c.log.Info("APIClient: Login succeeded, credential stored")
	return nil
}

func (c *httpAPIClient) Register(ctx context.Context, email, password string) error {
	payload := map[string]string{"email": email, "password": password}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode register request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/register",
		bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create register request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Infof("APIClient: Registering %s", email)
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("APIClient: Register transport failure: %v", err)
		return fmt.Errorf("failed to reach backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		c.log.Warnf("APIClient: Register failed with status %d: %s", resp.StatusCode, eb.Detail)
		return &domain.APIError{Status: resp.StatusCode, Detail: eb.Detail}
	}
	c.log.Info("APIClient: Registration succeeded")
	return nil
}

func (c *httpAPIClient) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &products); err != nil {
		return nil, err
	}
	c.log.Debugf("APIClient: Fetched %d products", len(products))
	return products, nil
}

func (c *httpAPIClient) CreateProduct(ctx context.Context, draft domain.ProductDraft) (*domain.Product, error) {
	var created domain.Product
	if err := c.do(ctx, http.MethodPost, "/api/products", draft, &created); err != nil {
		return nil, err
	}
	c.log.Infof("APIClient: Created product '%s' with ID %d", created.Name, created.ID)
	return &created, nil
}

func (c *httpAPIClient) UpdateProduct(ctx context.Context, id int, draft domain.ProductDraft) (*domain.Product, error) {
	var updated domain.Product
	path := fmt.Sprintf("/api/products/%d", id)
	if err := c.do(ctx, http.MethodPut, path, draft, &updated); err != nil {
		return nil, err
	}
	c.log.Infof("APIClient: Updated product ID %d", id)
	return &updated, nil
}

func (c *httpAPIClient) DeleteProduct(ctx context.Context, id int) error {
	path := fmt.Sprintf("/api/products/%d", id)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return err
	}
	c.log.Infof("APIClient: Deleted product ID %d", id)
	return nil
}

type bulkSaleRequest struct {
	Items []domain.SaleItem `json:"items"`
}

func (c *httpAPIClient) SubmitSale(ctx context.Context, items []domain.SaleItem) error {
	if err := c.do(ctx, http.MethodPost, "/api/sales/bulk", bulkSaleRequest{Items: items}, nil); err != nil {
		return err
	}
	c.log.Infof("APIClient: Submitted batch sale with %d items", len(items))
	return nil
}

func (c *httpAPIClient) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *httpAPIClient) SalesChart(ctx context.Context) ([]domain.SalesPoint, error) {
	var series []domain.SalesPoint
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/sales-chart", nil, &series); err != nil {
		return nil, err
	}
	return series, nil
}

func (c *httpAPIClient) RecentSales(ctx context.Context) ([]domain.RecentSale, error) {
	var sales []domain.RecentSale
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/recent-sales", nil, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}
