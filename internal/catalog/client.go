package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"amalkitchen-be/internal/logger"

	"go.uber.org/zap"
)

var ErrProductNotFound = errors.New("product not found")

// Client reads product records from the headless catalog store. The core
// never writes to the catalog.
type Client interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	CategoriesByTitle(ctx context.Context) (map[string]string, error)
}

type httpClient struct {
	baseURL  string
	token    string
	httpDoer *http.Client
}

func NewClient(baseURL, token string) Client {
	if baseURL == "" {
		logger.L().Warn("catalog base URL is empty")
	}

	return &httpClient{
		baseURL: baseURL,
		token:   token,
		httpDoer: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *httpClient) ListProducts(ctx context.Context) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "catalog"),
		zap.String("method", "ListProducts"),
	)

	body, err := c.get(ctx, "/api/products?active=true")
	if err != nil {
		log.Error("failed to fetch products", zap.Error(err))
		return nil, err
	}

	var payload struct {
		Products []Product `json:"products"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Error("failed to decode products", zap.Error(err))
		return nil, err
	}

	log.Debug("products fetched", zap.Int("count", len(payload.Products)))
	return payload.Products, nil
}

func (c *httpClient) GetProduct(ctx context.Context, id string) (*Product, error) {
	body, err := c.get(ctx, "/api/products/"+id)
	if err != nil {
		return nil, err
	}

	var p Product
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, err
	}
	if p.ID == "" {
		return nil, ErrProductNotFound
	}
	return &p, nil
}

// CategoriesByTitle returns the catalog category for every active product,
// keyed by title. The prep sheet groups order items through this map.
func (c *httpClient) CategoriesByTitle(ctx context.Context) (map[string]string, error) {
	products, err := c.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	categories := make(map[string]string, len(products))
	for _, p := range products {
		categories[p.Title] = p.Category
	}
	return categories, nil
}

func (c *httpClient) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpDoer.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog request failed: status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
