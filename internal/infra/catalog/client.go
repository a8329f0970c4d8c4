package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"kanap/internal/domain/model"
	repo "kanap/internal/repository"
)

var ErrUnexpectedStatus = errors.New("unexpected status from catalog")

// カタログAPI（GET /api/products/{id}）のクライアント
type Client struct {
	baseURL string
	http    *http.Client
}

// DI
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// 1商品を取得（404は repo.ErrNotFound）
func (c *Client) FetchProduct(ctx context.Context, id string) (model.Product, error) {
	var p model.Product
	if err := c.getJSON(ctx, "/api/products/"+url.PathEscape(id), &p); err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 全商品を取得
func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	var ps []model.Product
	if err := c.getJSON(ctx, "/api/products", &ps); err != nil {
		return nil, err
	}
	return ps, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return repo.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("GET %s: %w (%d)", path, ErrUnexpectedStatus, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// 使い終わったら keep-alive の接続を閉じる
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}
