package enrich

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/storefolioapp/storefolio-server/internal/domain"
	"github.com/storefolioapp/storefolio-server/internal/ratelimit"
)

const (
	defaultRPS     = 2.0
	defaultBurst   = 3
	defaultTimeout = 10 * time.Second

	// Image payloads are capped so a misbehaving provider can't balloon memory.
	maxImageBytes = 8 << 20
)

// Client is a rate-limited HTTP client for an enrichment provider.
// It implements both Provider and ImageProvider.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *ratelimit.KeyedLimiter
	logger  *slog.Logger
}

// ClientOptions configures the HTTP client.
type ClientOptions struct {
	BaseURL           string
	RequestsPerSecond float64       // <= 0 uses the default
	Timeout           time.Duration // <= 0 uses the default
	Logger            *slog.Logger
}

// NewClient creates an enrichment client for the given provider base URL.
func NewClient(opts ClientOptions) *Client {
	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRPS
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: opts.BaseURL,
		http:    &http.Client{Timeout: timeout},
		limiter: ratelimit.New(rps, defaultBurst),
		logger:  logger,
	}
}

// rawPayload is the provider's wire format. Descriptions may arrive as HTML.
type rawPayload struct {
	Name           string              `json:"name"`
	Description    string              `json:"description"`
	Website        string              `json:"website"`
	Country        string              `json:"country"`
	City           string              `json:"city"`
	Tags           []string            `json:"tags"`
	PriceRange     string              `json:"price_range"`
	OnSale         bool                `json:"on_sale"`
	Rating         float64             `json:"rating"`
	Sustainability string              `json:"sustainability"`
	CustomFields   map[string][]string `json:"custom_fields"`
}

// Enrich looks the store up by name and website.
func (c *Client) Enrich(ctx context.Context, store *domain.Store) (domain.PartialStore, error) {
	query := url.Values{}
	query.Set("name", store.Name)
	if store.Website != "" {
		query.Set("website", store.Website)
	}
	if store.City != "" {
		query.Set("city", store.City)
	}
	if store.Country != "" {
		query.Set("country", store.Country)
	}

	body, err := c.doRequest(ctx, "/v1/stores", query)
	if err != nil {
		return domain.PartialStore{}, wrapError("enrich", store.ID, err)
	}

	var raw rawPayload
	if err := json.Unmarshal(body, &raw); err != nil {
		return domain.PartialStore{}, wrapError("enrich", store.ID, fmt.Errorf("decode response: %w", err))
	}

	return domain.PartialStore{
		Name:           raw.Name,
		Description:    htmlToMarkdown(raw.Description),
		Website:        raw.Website,
		Country:        raw.Country,
		City:           raw.City,
		Tags:           raw.Tags,
		PriceRange:     raw.PriceRange,
		OnSale:         raw.OnSale,
		Rating:         raw.Rating,
		Sustainability: raw.Sustainability,
		CustomFields:   raw.CustomFields,
	}, nil
}

// GenerateImage fetches a representative image for the store.
func (c *Client) GenerateImage(ctx context.Context, store *domain.Store) ([]byte, error) {
	query := url.Values{}
	query.Set("name", store.Name)
	if store.Website != "" {
		query.Set("website", store.Website)
	}

	body, err := c.doRequest(ctx, "/v1/stores/image", query)
	if err != nil {
		return nil, wrapError("generateImage", store.ID, err)
	}
	return body, nil
}

// doRequest executes a rate-limited GET against the provider.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	if err := c.limiter.Wait(ctx, base.Host); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := base.JoinPath(path)
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Storefolio/1.0")

	c.logger.Debug("enrichment request", "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		return nil, ErrNoMatch
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case http.StatusBadRequest:
		return nil, ErrBadRequest
	default:
		if resp.StatusCode >= 500 {
			return nil, ErrServer
		}
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
}
