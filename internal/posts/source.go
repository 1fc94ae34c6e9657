// Package posts retrieves posts from the remote source. It hides the wire
// protocol (REST or GraphQL) behind a two-method Source interface.
package posts

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/h0rv/showcase/internal/domain"
	"github.com/h0rv/showcase/internal/logger"
)

// ListLimit is the number of posts requested per fetch.
const ListLimit = 6

// Transport names accepted by New.
const (
	TransportREST    = "rest"
	TransportGraphQL = "graphql"
)

// Default endpoints.
const (
	DefaultBaseURL    = "https://jsonplaceholder.typicode.com"
	DefaultGraphQLURL = "https://graphqlzero.almansi.me/api"
	DefaultTimeout    = 15 * time.Second
)

// ErrNotFound indicates the source has no post with the requested ID.
var ErrNotFound = errors.New("post not found")

// StatusError is returned when the source answers with a non-2xx status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.Code)
}

// Source is a read-only post source.
type Source interface {
	// List returns up to limit posts in source order.
	List(ctx context.Context, limit int) ([]domain.Post, error)
	// Get returns the post with the given ID.
	Get(ctx context.Context, id int) (domain.Post, error)
}

// Config selects and configures a Source.
type Config struct {
	Transport  string
	BaseURL    string
	GraphQLURL string
	Timeout    time.Duration
	HTTPClient *http.Client // optional, overrides Timeout
	Logger     *logger.Logger
}

// New creates the Source selected by cfg.Transport.
func New(cfg Config) (Source, error) {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	switch strings.ToLower(cfg.Transport) {
	case TransportREST, "":
		base := cfg.BaseURL
		if base == "" {
			base = DefaultBaseURL
		}
		return NewRESTClient(base, httpClient, cfg.Logger), nil
	case TransportGraphQL:
		endpoint := cfg.GraphQLURL
		if endpoint == "" {
			endpoint = DefaultGraphQLURL
		}
		return NewGraphQLClient(endpoint, httpClient, cfg.Logger), nil
	default:
		return nil, fmt.Errorf("unknown transport %q", cfg.Transport)
	}
}

// URL returns the browser URL of post id on the REST source rooted at base.
func URL(base string, id int) string {
	if base == "" {
		base = DefaultBaseURL
	}
	return fmt.Sprintf("%s/posts/%d", strings.TrimRight(base, "/"), id)
}

// truncate keeps at most limit posts (all when limit <= 0).
func truncate(posts []domain.Post, limit int) []domain.Post {
	if limit > 0 && len(posts) > limit {
		return posts[:limit]
	}
	return posts
}
