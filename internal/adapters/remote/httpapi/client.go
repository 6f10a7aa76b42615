// Package httpapi is the JSON REST client behind each remote record source.
//
//	GET {base}/{kind}       -> JSON array of records
//	PUT {base}/{kind}/{id}  <- one JSON record
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/offline-cache/internal/adapters/repo/schema"
	"github.com/bnema/offline-cache/internal/domain"
	"github.com/bnema/offline-cache/internal/ports"
)

const (
	maxResponseBytes = 1 << 20
	defaultTimeout   = 30 * time.Second
	userAgent        = "oc/sync"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     ports.TokenSource
}

func NewClient(baseURL string, httpClient *http.Client, tokens ports.TokenSource) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid remote base url %q", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{baseURL: trimmed, httpClient: httpClient, tokens: tokens}, nil
}

// Source serves one record kind, encoding through the shared schema codec.
type Source[K domain.Key, R domain.Record[K, R], S any] struct {
	client *Client
	codec  schema.Codec[K, R, S]
}

var (
	_ ports.RemoteSource[domain.DesignID, domain.Design]   = (*Source[domain.DesignID, domain.Design, schema.Item])(nil)
	_ ports.RemoteSource[domain.ArtworkID, domain.Artwork] = (*Source[domain.ArtworkID, domain.Artwork, schema.Item])(nil)
	_ ports.RemoteSource[domain.PostID, domain.Post]       = (*Source[domain.PostID, domain.Post, schema.Post])(nil)
)

func NewSource[K domain.Key, R domain.Record[K, R], S any](client *Client, codec schema.Codec[K, R, S]) *Source[K, R, S] {
	return &Source[K, R, S]{client: client, codec: codec}
}

func (c *Client) Designs() *Source[domain.DesignID, domain.Design, schema.Item] {
	return NewSource(c, schema.Designs)
}

func (c *Client) Artworks() *Source[domain.ArtworkID, domain.Artwork, schema.Item] {
	return NewSource(c, schema.Artworks)
}

func (c *Client) Posts() *Source[domain.PostID, domain.Post, schema.Post] {
	return NewSource(c, schema.Posts)
}

func (s *Source[K, R, S]) Fetch(ctx context.Context) ([]R, error) {
	body, err := s.client.do(ctx, http.MethodGet, "/"+string(s.codec.Kind), nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.codec.Kind, err)
	}

	var payload []S
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", s.codec.Kind, err)
	}

	records := make([]R, 0, len(payload))
	for _, item := range payload {
		records = append(records, s.codec.Decode(item))
	}

	return records, nil
}

func (s *Source[K, R, S]) Push(ctx context.Context, record R) error {
	encoded, err := json.Marshal(s.codec.Encode(record))
	if err != nil {
		return fmt.Errorf("encode %s %s: %w", s.codec.Kind, record.Key(), err)
	}

	path := "/" + string(s.codec.Kind) + "/" + url.PathEscape(record.Key().String())
	if _, err := s.client.do(ctx, http.MethodPut, path, encoded); err != nil {
		return fmt.Errorf("push %s %s: %w", s.codec.Kind, record.Key(), err)
	}

	return nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", userAgent)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	if c.tokens != nil {
		token, err := c.tokens.AccessToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolve access token: %w", err)
		}
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("perform request: %w", err)
	}
	defer func() { _ = response.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if len(body) > maxResponseBytes {
		return nil, errors.New("response exceeds 1 MiB")
	}

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		detail := strings.TrimSpace(string(body))
		if response.StatusCode == http.StatusUnauthorized || response.StatusCode == http.StatusForbidden {
			return nil, fmt.Errorf("%w: status %d: %s", domain.ErrSessionExpired, response.StatusCode, detail)
		}
		return nil, fmt.Errorf("status %d: %s", response.StatusCode, detail)
	}

	return body, nil
}
