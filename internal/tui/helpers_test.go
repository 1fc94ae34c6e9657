package tui

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/h0rv/showcase/internal/domain"
	"github.com/h0rv/showcase/internal/posts"
)

// mockSource implements posts.Source with canned data.
type mockSource struct {
	mu        sync.Mutex
	posts     []domain.Post
	err       error
	listCalls int
}

func (s *mockSource) List(ctx context.Context, limit int) ([]domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	if s.err != nil {
		return nil, s.err
	}
	out := s.posts
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *mockSource) Get(ctx context.Context, id int) (domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return domain.Post{}, s.err
	}
	for _, p := range s.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Post{}, posts.ErrNotFound
}

func (s *mockSource) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls
}

// createTestPosts creates n posts with lower-case titles and bodies.
func createTestPosts(n int) []domain.Post {
	out := make([]domain.Post, n)
	for i := range out {
		out[i] = domain.Post{
			ID:     i + 1,
			Title:  fmt.Sprintf("title number %d", i+1),
			Body:   fmt.Sprintf("body of post %d", i+1),
			UserID: 1,
		}
	}
	return out
}

// fakeSubmitter records submissions and returns err.
type fakeSubmitter struct {
	mu    sync.Mutex
	err   error
	calls int
	got   map[string]string
}

func (f *fakeSubmitter) Submit(ctx context.Context, values map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.got = values
	return f.err
}

// drain runs cmd and returns the messages it produces right away, flattening
// batches. Timer commands (toasts, banners, cursor blink) are left running.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, drain(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

// findMsg returns the first message of type T in msgs.
func findMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, msg := range msgs {
		if m, ok := msg.(T); ok {
			return m, true
		}
	}
	var zero T
	return zero, false
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}
