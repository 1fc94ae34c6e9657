package posts

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/h0rv/showcase/internal/domain"
	"github.com/h0rv/showcase/internal/logger"
)

// Header values for content negotiation.
const (
	acceptEncoding = "gzip, br"
	userAgent      = "showcase/1.0"
)

// RESTClient reads posts from a JSONPlaceholder-style REST API.
type RESTClient struct {
	base string
	http *http.Client
	log  *logger.Logger
}

// NewRESTClient creates a RESTClient rooted at base (e.g. https://jsonplaceholder.typicode.com).
func NewRESTClient(base string, httpClient *http.Client, log *logger.Logger) *RESTClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &RESTClient{
		base: strings.TrimRight(base, "/"),
		http: httpClient,
		log:  log,
	}
}

// restPost is the wire shape of a post.
type restPost struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID int    `json:"userId"`
}

func (p restPost) toDomain() domain.Post {
	return domain.Post{ID: p.ID, Title: p.Title, Body: p.Body, UserID: p.UserID}
}

// List issues GET /posts?_limit=N.
func (c *RESTClient) List(ctx context.Context, limit int) ([]domain.Post, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("_limit", strconv.Itoa(limit))
	}
	endpoint := c.base + "/posts"
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var wire []restPost
	if err := c.getJSON(ctx, endpoint, &wire); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	out := make([]domain.Post, 0, len(wire))
	for _, p := range wire {
		out = append(out, p.toDomain())
	}
	return truncate(out, limit), nil
}

// Get issues GET /posts/{id}.
func (c *RESTClient) Get(ctx context.Context, id int) (domain.Post, error) {
	var wire restPost
	err := c.getJSON(ctx, fmt.Sprintf("%s/posts/%d", c.base, id), &wire)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return domain.Post{}, fmt.Errorf("post %d: %w", id, ErrNotFound)
		}
		return domain.Post{}, fmt.Errorf("failed to get post %d: %w", id, err)
	}
	if wire.ID == 0 {
		return domain.Post{}, fmt.Errorf("post %d: %w", id, ErrNotFound)
	}
	return wire.toDomain(), nil
}

// getJSON performs a GET and decodes the (possibly compressed) JSON body into out.
func (c *RESTClient) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", acceptEncoding)
	req.Header.Set("User-Agent", userAgent)

	c.log.WithFields(map[string]any{"url": endpoint}).Debug("requesting")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Code: resp.StatusCode}
	}

	body, err := decodeBody(resp)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// decodeBody wraps the response body according to its Content-Encoding.
func decodeBody(resp *http.Response) (io.ReadCloser, error) {
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "gzip":
		zr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("creating gzip reader: %w", err)
		}
		return zr, nil
	case "br":
		return io.NopCloser(brotli.NewReader(resp.Body)), nil
	default:
		return io.NopCloser(resp.Body), nil
	}
}
