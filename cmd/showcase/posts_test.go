package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/h0rv/showcase/internal/domain"
	"github.com/h0rv/showcase/internal/posts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	list []domain.Post
	err  error
}

func (s stubSource) List(ctx context.Context, limit int) ([]domain.Post, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.list) > limit {
		return s.list[:limit], nil
	}
	return s.list, nil
}

func (s stubSource) Get(ctx context.Context, id int) (domain.Post, error) {
	for _, p := range s.list {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Post{}, posts.ErrNotFound
}

func TestPrintList(t *testing.T) {
	src := stubSource{list: []domain.Post{
		{ID: 1, UserID: 3, Title: "sunt aut facere", Body: "quia et suscipit"},
		{ID: 2, UserID: 3, Title: "qui est esse", Body: "est rerum tempore"},
	}}

	var buf bytes.Buffer
	require.NoError(t, printList(context.Background(), &buf, src))

	out := buf.String()
	assert.Contains(t, out, "Posts (2):")
	assert.Contains(t, out, "Sunt aut facere (user 3)")
	assert.Contains(t, out, "Qui est esse")
}

func TestPrintList_Error(t *testing.T) {
	var buf bytes.Buffer
	err := printList(context.Background(), &buf, stubSource{err: errors.New("boom")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Empty(t, buf.String())
}

func TestPrintPost(t *testing.T) {
	src := stubSource{list: []domain.Post{{ID: 7, UserID: 1, Title: "title", Body: "body text"}}}

	var buf bytes.Buffer
	require.NoError(t, printPost(context.Background(), &buf, src, 7))
	assert.Contains(t, buf.String(), "Post #7 (user 1)")
	assert.Contains(t, buf.String(), "Body text")

	err := printPost(context.Background(), &buf, src, 99)
	assert.ErrorIs(t, err, posts.ErrNotFound)
}

func TestPostsCmd_RejectsBadID(t *testing.T) {
	cmd := newPostsCmd()
	cmd.SetArgs([]string{"abc"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid post id")
}
