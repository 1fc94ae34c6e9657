package posts

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/h0rv/showcase/internal/domain"
	"github.com/h0rv/showcase/internal/logger"
	"github.com/machinebox/graphql"
)

// GraphQLClient reads posts from a GraphQLZero-style endpoint, which mirrors
// the REST data set with string IDs and a nested user.
type GraphQLClient struct {
	gql *graphql.Client
	log *logger.Logger
}

// NewGraphQLClient creates a GraphQLClient for endpoint.
func NewGraphQLClient(endpoint string, httpClient *http.Client, log *logger.Logger) *GraphQLClient {
	opts := []graphql.ClientOption{}
	if httpClient != nil {
		opts = append(opts, graphql.WithHTTPClient(httpClient))
	}
	return &GraphQLClient{
		gql: graphql.NewClient(endpoint, opts...),
		log: log,
	}
}

// gqlPost is the wire shape of a post.
type gqlPost struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
	User  *struct {
		ID string `json:"id"`
	} `json:"user"`
}

func (p gqlPost) toDomain() (domain.Post, error) {
	id, err := strconv.Atoi(p.ID)
	if err != nil {
		return domain.Post{}, fmt.Errorf("invalid post id %q: %w", p.ID, err)
	}
	post := domain.Post{ID: id, Title: p.Title, Body: p.Body}
	if p.User != nil && p.User.ID != "" {
		userID, err := strconv.Atoi(p.User.ID)
		if err != nil {
			return domain.Post{}, fmt.Errorf("invalid user id %q: %w", p.User.ID, err)
		}
		post.UserID = userID
	}
	return post, nil
}

// List returns the first page of limit posts.
func (c *GraphQLClient) List(ctx context.Context, limit int) ([]domain.Post, error) {
	req := graphql.NewRequest(`
		query ($limit: Int) {
			posts(options: { paginate: { page: 1, limit: $limit } }) {
				data {
					id
					title
					body
					user {
						id
					}
				}
			}
		}
	`)
	req.Var("limit", limit)

	var resp struct {
		Posts struct {
			Data []gqlPost `json:"data"`
		} `json:"posts"`
	}

	c.log.WithFields(map[string]any{"limit": limit}).Debug("querying posts")
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	out := make([]domain.Post, 0, len(resp.Posts.Data))
	for _, p := range resp.Posts.Data {
		post, err := p.toDomain()
		if err != nil {
			return nil, fmt.Errorf("failed to list posts: %w", err)
		}
		out = append(out, post)
	}
	return truncate(out, limit), nil
}

// Get returns a single post. The endpoint answers unknown IDs with an empty record.
func (c *GraphQLClient) Get(ctx context.Context, id int) (domain.Post, error) {
	req := graphql.NewRequest(`
		query ($id: ID!) {
			post(id: $id) {
				id
				title
				body
				user {
					id
				}
			}
		}
	`)
	req.Var("id", strconv.Itoa(id))

	var resp struct {
		Post *gqlPost `json:"post"`
	}

	c.log.WithFields(map[string]any{"id": id}).Debug("querying post")
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return domain.Post{}, fmt.Errorf("failed to get post %d: %w", id, err)
	}
	if resp.Post == nil || resp.Post.ID == "" {
		return domain.Post{}, fmt.Errorf("post %d: %w", id, ErrNotFound)
	}
	return resp.Post.toDomain()
}
