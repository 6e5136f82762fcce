package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/pokedex/internal/domain"
)

const (
	DefaultBaseURL = "https://pokeapi.co/api/v2"
	defaultTimeout = 15 * time.Second
	userAgent      = "Pokedex/1.0"
)

var _ domain.CatalogRepository = (*Client)(nil)

// StatusError is returned for non-2xx responses that have no sentinel of
// their own. Err carries the sentinel when there is one.
type StatusError struct {
	StatusCode int
	URL        string
	Err        error
}

func (e *StatusError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog request failed (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("catalog request failed (status %d)", e.StatusCode)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *StatusError) Unwrap() error {
	return e.Err
}

// Client implements domain.CatalogRepository for PokeAPI
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new PokeAPI client. A zero timeout uses the default.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// doRequest performs a GET and returns the body of a 200 response
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	reqURL := fmt.Sprintf("%s%s", c.baseURL, path)
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("catalog request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		c.logger.Error("catalog request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: reqURL, Err: domain.ErrPokemonNotFound}
	case http.StatusTooManyRequests:
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: reqURL, Err: domain.ErrRateLimited}
	default:
		c.logger.Error("catalog request error", "status", resp.StatusCode, "body", string(body))
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: reqURL}
	}
}

// FetchPokemonList returns one page of the catalog
func (c *Client) FetchPokemonList(ctx context.Context, page int) ([]domain.Pokemon, error) {
	if page < 0 {
		return nil, fmt.Errorf("invalid page %d", page)
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(domain.PageSize))
	query.Set("offset", strconv.Itoa(page*domain.PageSize))

	body, err := c.doRequest(ctx, "/pokemon", query)
	if err != nil {
		return nil, err
	}

	var resp PokemonListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return MapPokemonList(resp.Results, page), nil
}

// FetchPokemonInfo returns the detail record for name
func (c *Client) FetchPokemonInfo(ctx context.Context, name string) (*domain.PokemonInfo, error) {
	if name == "" {
		return nil, domain.ErrPokemonNotFound
	}

	body, err := c.doRequest(ctx, "/pokemon/"+url.PathEscape(name), nil)
	if err != nil {
		return nil, err
	}

	var resp PokemonResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return MapPokemonInfo(&resp), nil
}
