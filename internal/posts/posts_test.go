package posts

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePosts(n int) []map[string]any {
	out := make([]map[string]any, n)
	for i := range out {
		out[i] = map[string]any{
			"id":     i + 1,
			"title":  fmt.Sprintf("title %d", i+1),
			"body":   fmt.Sprintf("body %d", i+1),
			"userId": 1,
		}
	}
	return out
}

func TestRESTClient_List(t *testing.T) {
	var gotLimit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts", r.URL.Path)
		gotLimit = r.URL.Query().Get("_limit")
		// Ignore the limit to check client-side truncation.
		_ = json.NewEncoder(w).Encode(samplePosts(10))
	}))
	defer srv.Close()

	c := NewRESTClient(srv.URL, srv.Client(), nil)
	got, err := c.List(context.Background(), ListLimit)
	require.NoError(t, err)

	assert.Equal(t, "6", gotLimit)
	require.Len(t, got, 6)
	for i, p := range got {
		assert.Equal(t, i+1, p.ID)
		assert.Equal(t, 1, p.UserID)
	}
	assert.Equal(t, "title 1", got[0].Title)
}

func TestRESTClient_ListFewer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(samplePosts(2))
	}))
	defer srv.Close()

	got, err := NewRESTClient(srv.URL, srv.Client(), nil).List(context.Background(), ListLimit)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestRESTClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewRESTClient(srv.URL, srv.Client(), nil).List(context.Background(), ListLimit)
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 500, se.Code)
	assert.Contains(t, err.Error(), "HTTP error! status: 500")
}

func TestRESTClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewRESTClient(url, nil, nil).List(context.Background(), ListLimit)
	assert.Error(t, err)
}

func TestRESTClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/posts/3":
			_ = json.NewEncoder(w).Encode(samplePosts(3)[2])
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewRESTClient(srv.URL+"/", srv.Client(), nil)

	p, err := c.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, p.ID)
	assert.Equal(t, "body 3", p.Body)

	_, err = c.Get(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRESTClient_DecodesCompressedBodies(t *testing.T) {
	payload, err := json.Marshal(samplePosts(1))
	require.NoError(t, err)

	tests := []struct {
		encoding string
		writer   func(io.Writer) io.WriteCloser
	}{
		{"gzip", func(w io.Writer) io.WriteCloser { return gzip.NewWriter(w) }},
		{"br", func(w io.Writer) io.WriteCloser { return brotli.NewWriter(w) }},
	}

	for _, tt := range tests {
		t.Run(tt.encoding, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Contains(t, r.Header.Get("Accept-Encoding"), tt.encoding)
				w.Header().Set("Content-Encoding", tt.encoding)
				zw := tt.writer(w)
				_, _ = zw.Write(payload)
				_ = zw.Close()
			}))
			defer srv.Close()

			got, err := NewRESTClient(srv.URL, srv.Client(), nil).List(context.Background(), ListLimit)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "title 1", got[0].Title)
		})
	}
}

// graphqlServer answers the posts and post queries with fixed data.
func graphqlServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.Contains(req.Query, "posts("):
			data := make([]map[string]any, 0, 8)
			for i := 1; i <= 8; i++ {
				data = append(data, map[string]any{
					"id": fmt.Sprint(i), "title": fmt.Sprintf("title %d", i), "body": "b",
					"user": map[string]any{"id": "2"},
				})
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"posts": map[string]any{"data": data}}})
		case req.Variables["id"] == "5":
			_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"post": map[string]any{
				"id": "5", "title": "five", "body": "full body", "user": map[string]any{"id": "1"},
			}}})
		case req.Variables["id"] == "500":
			_ = json.NewEncoder(w).Encode(map[string]any{"errors": []map[string]any{{"message": "internal"}}})
		default:
			_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"post": map[string]any{
				"id": nil, "title": nil, "body": nil, "user": nil,
			}}})
		}
	}))
}

func TestGraphQLClient_List(t *testing.T) {
	srv := graphqlServer(t)
	defer srv.Close()

	got, err := NewGraphQLClient(srv.URL, srv.Client(), nil).List(context.Background(), ListLimit)
	require.NoError(t, err)
	require.Len(t, got, ListLimit)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 2, got[0].UserID)
	assert.Equal(t, 6, got[5].ID)
}

func TestGraphQLClient_Get(t *testing.T) {
	srv := graphqlServer(t)
	defer srv.Close()

	c := NewGraphQLClient(srv.URL, srv.Client(), nil)

	p, err := c.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, p.ID)
	assert.Equal(t, "full body", p.Body)
	assert.Equal(t, 1, p.UserID)

	_, err = c.Get(context.Background(), 77)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.Get(context.Background(), 500)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestNew_SelectsTransport(t *testing.T) {
	s, err := New(Config{})
	require.NoError(t, err)
	assert.IsType(t, &RESTClient{}, s)

	s, err = New(Config{Transport: "GraphQL"})
	require.NoError(t, err)
	assert.IsType(t, &GraphQLClient{}, s)

	_, err = New(Config{Transport: "soap"})
	assert.Error(t, err)
}

func TestURL(t *testing.T) {
	assert.Equal(t, "https://jsonplaceholder.typicode.com/posts/4", URL("", 4))
	assert.Equal(t, "http://x/posts/1", URL("http://x/", 1))
}
