package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/glowmance/glowmance-backend/internal/domain/products"
)

// Client adalah product Source di depan external product API.
// Hasil sukses dipercaya sudah deduplicated dan bounded, dikembalikan
// verbatim oleh resolver. Error dari sini bikin resolver jatuh ke
// katalog lokal.
type Client struct {
	url    string
	apiKey string
	http   *http.Client
}

func NewClient(apiURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		url:    apiURL,
		apiKey: apiKey,
		http:   &http.Client{Timeout: timeout},
	}
}

func (c *Client) Name() string { return "external-api" }

func (c *Client) Find(ctx context.Context, q products.Query) ([]products.Product, error) {
	params := url.Values{}
	if q.SkinType != "" {
		params.Set("skin_type", q.SkinType)
	}
	if q.Condition != "" {
		params.Set("condition", q.Condition)
	}
	params.Set("limit", strconv.Itoa(q.Limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("product api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("product api status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var payload struct {
		Products []products.Product `json:"products"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("product api decode: %w", err)
	}
	return payload.Products, nil
}
