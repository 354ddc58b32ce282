package dummyapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client fetches JSON resources from the upstream API.
type Client interface {
	// Fetch performs one GET for resource and returns the decoded body.
	// It never fails: any transport error or non-200 status yields an empty Payload.
	Fetch(ctx context.Context, resource string, limit, skip int) Payload
}

// HTTPClient is the net/http implementation of Client.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a new API client based on the configuration.
func NewClient(cfg Config, logger *zap.Logger) *HTTPClient {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &HTTPClient{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Transport: transport, Timeout: timeout},
		logger:  logger,
	}
}

// BuildURL joins base and resource and appends the page parameters.
// The query string is only added when limit is non-zero, and skip only
// alongside a non-zero limit: there is no way to skip without limiting.
func BuildURL(base, resource string, limit, skip int) string {
	u := strings.TrimRight(base, "/") + "/" + strings.TrimLeft(resource, "/")

	if limit != 0 {
		u += "?limit=" + strconv.Itoa(limit)
		if skip != 0 {
			u += "&skip=" + strconv.Itoa(skip)
		}
	}
	return u
}

// Fetch implements Client.
func (c *HTTPClient) Fetch(ctx context.Context, resource string, limit, skip int) Payload {
	url := BuildURL(c.baseURL, resource, limit, skip)
	l := c.logger.With(zap.String("url", url))

	payload, err := c.get(ctx, url)
	if err != nil {
		l.Warn("Fetch failed, treating as empty result", zap.Error(err))
		return Payload{}
	}

	l.Debug("Fetched resource", zap.Int("keys", len(payload)))
	return payload
}

func (c *HTTPClient) get(ctx context.Context, url string) (Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()

	var payload Payload
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode body: %w", err)
	}
	if payload == nil {
		payload = Payload{}
	}
	return payload, nil
}
