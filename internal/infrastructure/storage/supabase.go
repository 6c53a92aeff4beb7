// Package storage implementa o cliente do Supabase Storage usado para os
// anexos da prestação de contas (notas fiscais, atas, comprovantes).
// A API é REST pura: upload via POST no bucket e leitura via URL pública.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sigescola/sigescola-api/pkg/config"
)

// Client cliente HTTP do Supabase Storage.
type Client struct {
	baseURL    string
	serviceKey string
	bucket     string
	httpClient *http.Client
}

// NewClient constrói o cliente a partir da configuração.
func NewClient(cfg config.StorageConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		serviceKey: cfg.ServiceKey,
		bucket:     cfg.Bucket,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload envia um objeto para o bucket e devolve a URL pública.
// path é o caminho dentro do bucket (ex.: "escola-x/2026/nf-123.pdf").
func (c *Client) Upload(ctx context.Context, path, contentType string, data []byte) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("storage: BaseURL não configurado")
	}
	url := fmt.Sprintf("%s/object/%s/%s", c.baseURL, c.bucket, strings.TrimLeft(path, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("storage: montando request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", contentType)
	// x-upsert permite reenvio do mesmo documento sem erro 409
	req.Header.Set("x-upsert", "true")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("storage: upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("storage: upload falhou (%d): %s", resp.StatusCode, string(body))
	}
	return c.PublicURL(path), nil
}

// PublicURL devolve a URL pública de leitura de um objeto do bucket.
func (c *Client) PublicURL(path string) string {
	return fmt.Sprintf("%s/object/public/%s/%s", c.baseURL, c.bucket, strings.TrimLeft(path, "/"))
}
