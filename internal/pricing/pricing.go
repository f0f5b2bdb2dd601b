// Package pricing talks to the upstream catalog service that decides
// which book is currently featured.
//
// The upstream is outside our control, so the call goes through a
// circuit breaker (sony/gobreaker). After a run of consecutive
// failures the breaker opens and requests short-circuit locally for a
// cool-off period, instead of hammering a service that is already
// down. In every failure mode the caller receives a placeholder book —
// the endpoint never propagates an upstream outage to the client.
package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/akshat-sharma/bookstore-api/internal/config"
	"github.com/akshat-sharma/bookstore-api/internal/types"
)

// fallbackBook is the placeholder served whenever the upstream cannot
// answer. ID 0 marks it as not coming from our own catalog.
var fallbackBook = types.Book{
	ID:     0,
	Title:  "The Go Programming Language",
	Author: "Donovan & Kernighan",
	Price:  39.99,
}

// Client fetches the featured book from the upstream catalog.
type Client struct {
	url     string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	log     *slog.Logger
}

// New builds a Client from the pricing section of the config.
func New(cfg config.Pricing, log *slog.Logger) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "featured-book",
		Timeout: 30 * time.Second, // how long the breaker stays open
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	return &Client{
		url:     cfg.FeaturedURL,
		client:  &http.Client{Timeout: cfg.Timeout},
		breaker: breaker,
		log:     log,
	}
}

// FeaturedBook returns the upstream's featured book, or the placeholder
// with fallback=true when the upstream is unreachable, answers badly,
// or the breaker is open.
func (c *Client) FeaturedBook(ctx context.Context) (types.Book, bool) {
	// No upstream configured: the placeholder IS the feature.
	if c.url == "" {
		return fallbackBook, true
	}

	// Execute runs the function only when the breaker is closed or
	// half-open; when open it fails fast with ErrOpenState.
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx)
	})
	if err != nil {
		c.log.Warn("featured book lookup failed, serving fallback",
			slog.String("error", err.Error()))
		return fallbackBook, true
	}

	return result.(types.Book), false
}

// fetch performs the actual upstream HTTP call.
func (c *Client) fetch(ctx context.Context) (types.Book, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return types.Book{}, fmt.Errorf("pricing: build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return types.Book{}, fmt.Errorf("pricing: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.Book{}, fmt.Errorf("pricing: upstream status %d", resp.StatusCode)
	}

	var book types.Book
	if err := json.NewDecoder(resp.Body).Decode(&book); err != nil {
		return types.Book{}, fmt.Errorf("pricing: decode response: %w", err)
	}

	return book, nil
}
