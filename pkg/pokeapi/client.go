// Package pokeapi is the client for the upstream PokeAPI-shaped REST service.
// The upstream is treated as unreliable: every failure is translated into the
// typed error taxonomy before it leaves this package.
package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/arturpasiut/poke-sky-api/pkg/apperrors"
	"github.com/arturpasiut/poke-sky-api/pkg/metrics"
)

const (
	// DefaultBaseURL points at the public PokeAPI service.
	DefaultBaseURL = "https://pokeapi.co/api/v2/"

	// DefaultDetailTimeout bounds a single pokemon detail fetch.
	DefaultDetailTimeout = 12 * time.Second

	// MaxResponseSize is the maximum response body size (10MB)
	MaxResponseSize = 10 * 1024 * 1024
)

// Config holds upstream client configuration
type Config struct {
	BaseURL         string
	DetailTimeout   time.Duration
	MaxIdleConns    int
	IdleConnTimeout time.Duration
}

// DefaultConfig returns default upstream client configuration
func DefaultConfig() Config {
	return Config{
		BaseURL:         DefaultBaseURL,
		DetailTimeout:   DefaultDetailTimeout,
		MaxIdleConns:    100,
		IdleConnTimeout: 90 * time.Second,
	}
}

// Client fetches upstream resources with timeouts and typed error translation
type Client struct {
	client        *http.Client
	baseURL       string
	detailTimeout time.Duration
	logger        ectologger.Logger
}

// NewClient creates a new upstream client
func NewClient(cfg Config, logger ectologger.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	detailTimeout := cfg.DetailTimeout
	if detailTimeout <= 0 {
		detailTimeout = DefaultDetailTimeout
	}

	transport := &http.Transport{
		MaxIdleConns:    cfg.MaxIdleConns,
		IdleConnTimeout: cfg.IdleConnTimeout,
	}

	return &Client{
		client: &http.Client{
			Transport: transport,
		},
		baseURL:       baseURL,
		detailTimeout: detailTimeout,
		logger:        logger,
	}
}

// EvolutionChainByID fetches evolution-chain/{id}. The id must be a positive
// number; anything else is a caller error, not an upstream one.
func (c *Client) EvolutionChainByID(ctx context.Context, chainID int64) (*EvolutionChain, error) {
	if chainID <= 0 {
		return nil, apperrors.InvalidInput("chain id must be a positive number")
	}

	var chain EvolutionChain
	if err := c.getJSON(ctx, "evolution-chain", fmt.Sprintf("evolution-chain/%d", chainID), 0, &chain); err != nil {
		return nil, err
	}
	return &chain, nil
}

// EvolutionChainByURL fetches a chain by an upstream-provided URL. No id
// validation happens here; the caller already resolved the link.
func (c *Client) EvolutionChainByURL(ctx context.Context, url string) (*EvolutionChain, error) {
	var chain EvolutionChain
	if err := c.getJSON(ctx, "evolution-chain", url, 0, &chain); err != nil {
		return nil, err
	}
	return &chain, nil
}

// Species fetches pokemon-species/{identifier}.
func (c *Client) Species(ctx context.Context, identifier string) (*PokemonSpecies, error) {
	if identifier == "" {
		return nil, apperrors.InvalidInput("species identifier is required")
	}

	var species PokemonSpecies
	if err := c.getJSON(ctx, "pokemon-species", "pokemon-species/"+identifier, 0, &species); err != nil {
		return nil, err
	}
	return &species, nil
}

// PokemonDetail fetches pokemon/{identifier} with a per-call timeout. A
// non-positive timeout selects the configured default.
func (c *Client) PokemonDetail(ctx context.Context, identifier string, timeout time.Duration) (*Pokemon, error) {
	if identifier == "" {
		return nil, apperrors.InvalidInput("pokemon identifier is required")
	}
	if timeout <= 0 {
		timeout = c.detailTimeout
	}

	var pokemon Pokemon
	if err := c.getJSON(ctx, "pokemon", "pokemon/"+identifier, timeout, &pokemon); err != nil {
		return nil, err
	}
	return &pokemon, nil
}

// ListPokemon fetches one page of the pokemon index.
func (c *Client) ListPokemon(ctx context.Context, limit, offset int) (*ResourcePage, error) {
	var page ResourcePage
	path := fmt.Sprintf("pokemon?limit=%d&offset=%d", limit, offset)
	if err := c.getJSON(ctx, "pokemon-index", path, 0, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListMoves fetches one page of the move index.
func (c *Client) ListMoves(ctx context.Context, limit, offset int) (*ResourcePage, error) {
	var page ResourcePage
	path := fmt.Sprintf("move?limit=%d&offset=%d", limit, offset)
	if err := c.getJSON(ctx, "move-index", path, 0, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// getJSON performs one GET and translates every failure mode into the typed
// taxonomy: network errors to POKEAPI_ERROR, deadline hits to POKEAPI_TIMEOUT,
// 404 to POKEAPI_NOT_FOUND and every other non-2xx to POKEAPI_ERROR.
func (c *Client) getJSON(ctx context.Context, resource, path string, timeout time.Duration, dest any) error {
	url := BuildURL(c.baseURL, path)

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return apperrors.Upstream("failed to build upstream request").WithCause(err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)
	metrics.UpstreamRequestDuration.WithLabelValues(resource).Observe(duration.Seconds())

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			metrics.UpstreamRequestsTotal.WithLabelValues(resource, "timeout").Inc()
			c.logger.WithContext(ctx).WithError(err).Warnf("PokeAPI request timed out: GET %s", url)
			return apperrors.UpstreamTimeout("PokeAPI request timed out").WithCause(err)
		}
		metrics.UpstreamRequestsTotal.WithLabelValues(resource, "error").Inc()
		c.logger.WithContext(ctx).WithError(err).Errorf("PokeAPI request failed: GET %s", url)
		return apperrors.Upstream("PokeAPI request failed").WithCause(err)
	}
	defer resp.Body.Close()

	metrics.UpstreamRequestsTotal.WithLabelValues(resource, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode == http.StatusNotFound {
		return apperrors.UpstreamNotFound("resource not found in PokeAPI")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.Upstream("PokeAPI returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return apperrors.Upstream("failed to read PokeAPI response").WithCause(err)
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return apperrors.Upstream("PokeAPI returned a malformed response").WithCause(err)
	}

	c.logger.WithContext(ctx).Debugf("PokeAPI GET %s -> %d (%s)", url, resp.StatusCode, duration)
	return nil
}
