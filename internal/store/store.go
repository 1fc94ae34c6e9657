// Package store provides the in-memory state of the post list: the rendered
// posts in source order and the fetch trigger state machine.
package store

import (
	"errors"

	"github.com/h0rv/showcase/internal/domain"
)

var (
	// ErrPostNotFound indicates the requested post is not rendered.
	ErrPostNotFound = errors.New("post not found")
)

// FetchState is the state of the fetch trigger.
type FetchState int

const (
	// Idle: nothing rendered, the trigger starts a fetch.
	Idle FetchState = iota
	// Loading: a request is in flight, the trigger is disabled.
	Loading
	// Loaded: posts are rendered, the trigger clears them.
	Loaded
	// Error: the last fetch failed, the trigger retries it.
	Error
)

// String returns the state name.
func (s FetchState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// TriggerLabel returns the fetch trigger label for state s.
func TriggerLabel(s FetchState) string {
	switch s {
	case Loading:
		return "Loading..."
	case Loaded:
		return "Clear Posts"
	case Error:
		return "Retry Fetch"
	default:
		return "Fetch Posts"
	}
}

// Store manages the fetched posts and the fetch state.
type Store struct {
	limit int

	posts []domain.Post       // Source order
	byID  map[int]domain.Post // ID -> Post

	state   FetchState
	lastErr error
}

// New creates an empty Store that keeps at most limit posts (no limit when limit <= 0).
func New(limit int) *Store {
	return &Store{
		limit: limit,
		byID:  make(map[int]domain.Post),
	}
}

// State returns the current fetch state.
func (s *Store) State() FetchState {
	return s.state
}

// Disabled reports whether the trigger is disabled (a request is in flight).
func (s *Store) Disabled() bool {
	return s.state == Loading
}

// Err returns the error of the last failed fetch, nil unless in Error state.
func (s *Store) Err() error {
	return s.lastErr
}

// Begin marks a fetch as in flight.
func (s *Store) Begin() {
	s.state = Loading
	s.lastErr = nil
}

// Complete replaces all posts with the fetched ones, keeping source order and
// at most the configured limit.
func (s *Store) Complete(posts []domain.Post) {
	if s.limit > 0 && len(posts) > s.limit {
		posts = posts[:s.limit]
	}

	s.posts = make([]domain.Post, len(posts))
	copy(s.posts, posts)
	s.byID = make(map[int]domain.Post, len(posts))
	for _, p := range s.posts {
		s.byID[p.ID] = p
	}
	s.state = Loaded
	s.lastErr = nil
}

// Fail drops all rendered posts and records err.
func (s *Store) Fail(err error) {
	s.dropPosts()
	s.state = Error
	s.lastErr = err
}

// Clear drops all rendered posts and returns to Idle.
func (s *Store) Clear() {
	s.dropPosts()
	s.state = Idle
	s.lastErr = nil
}

// Posts returns a copy of the rendered posts in source order.
func (s *Store) Posts() []domain.Post {
	out := make([]domain.Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// Len returns the number of rendered posts.
func (s *Store) Len() int {
	return len(s.posts)
}

// Post retrieves a rendered post by ID, returning ErrPostNotFound if absent.
func (s *Store) Post(id int) (domain.Post, error) {
	p, ok := s.byID[id]
	if !ok {
		return domain.Post{}, ErrPostNotFound
	}
	return p, nil
}

func (s *Store) dropPosts() {
	s.posts = nil
	s.byID = make(map[int]domain.Post)
}
