package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	domain "github.com/glowmance/glowmance-backend/internal/domain/analysis"
)

// Client untuk ML service (FastAPI). Satu call bounded timeout, tanpa
// retry: caller-nya live user request.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Classify kirim image multipart ke POST /predict.
// Python service expect field name "file".
func (c *Client) Classify(ctx context.Context, image []byte, filename string) (*domain.Classification, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(image); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ml service request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("ml service status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var payload struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("ml service decode: %w", err)
	}
	if payload.Data == nil {
		return nil, fmt.Errorf("ml service: empty data payload")
	}

	return classificationFromData(payload.Data), nil
}

// classificationFromData map field-field yang dikenal; response service
// tidak seragam (skinType vs skin_type, disease vs disease_prediction).
func classificationFromData(data map[string]any) *domain.Classification {
	cl := &domain.Classification{Raw: data}

	for _, k := range []string{"skin_type", "skinType"} {
		if s, ok := data[k].(string); ok && s != "" {
			cl.SkinType = s
			break
		}
	}
	if cl.SkinType == "" {
		cl.SkinType = string(domain.SkinNormal)
	}

	for _, k := range []string{"disease", "disease_prediction"} {
		if s, ok := data[k].(string); ok && s != "" {
			cl.Disease = s
			break
		}
	}

	switch v := data["confidence"].(type) {
	case float64:
		cl.Confidence = v
	case json.Number:
		cl.Confidence, _ = v.Float64()
	default:
		// service lama tidak selalu kirim confidence
		cl.Confidence = 0.9
	}
	if cl.Confidence < 0 {
		cl.Confidence = 0
	}
	if cl.Confidence > 1 {
		cl.Confidence = 1
	}
	return cl
}

// Health cek GET /health, untuk health endpoint kita.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ml service unhealthy: status %d", resp.StatusCode)
	}
	return nil
}
